package host

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/control"
	"github.com/GriffinCanCode/framewidget/internal/dom"
	"github.com/GriffinCanCode/framewidget/internal/shared/id"
)

// Navigation is a request to open an address outside the page.
type Navigation struct {
	URL         string    `json:"url"`
	Target      string    `json:"target"`
	RequestedAt time.Time `json:"requested_at"`
}

// Summary describes an instance as it is currently rendered.
type Summary struct {
	ID             string             `json:"id"`
	Address        string             `json:"address"`
	Expanded       bool               `json:"expanded"`
	Width          string             `json:"width"`
	Height         string             `json:"height"`
	Controls       map[string]bool    `json:"controls"`
	Parameters     control.Parameters `json:"parameters"`
	LastNavigation *Navigation        `json:"last_navigation,omitempty"`
	Revision       uint64             `json:"revision"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Frame is one rendering of an instance's page.
type Frame struct {
	Revision uint64
	HTML     string
}

// instance is one mounted control. Every field is guarded by mu; the control
// itself is single-threaded and only ever called with mu held.
type instance struct {
	mu sync.Mutex

	id      id.WidgetID
	doc     *dom.Document
	ctrl    control.Control
	params  control.Parameters
	logger  *zap.Logger
	closed  bool
	pending *Navigation
	lastNav *Navigation

	revision  uint64
	createdAt time.Time
	updatedAt time.Time

	subs    map[uint64]chan Frame
	nextSub uint64
}

func (i *instance) context() *control.Context {
	return &control.Context{
		Parameters: i.params.Clone(),
		Navigation: control.NavigatorFunc(i.open),
	}
}

// open records a navigation. Controls call it from inside a click handler,
// so mu is already held.
func (i *instance) open(url, target string) {
	nav := &Navigation{URL: url, Target: target, RequestedAt: time.Now()}
	i.pending = nav
	i.lastNav = nav
	i.logger.Info("Navigation requested", zap.String("url", url), zap.String("target", target))
}

func (i *instance) notifyOutputChanged() {
	i.logger.Debug("Control reported output change")
}

func (i *instance) touch() {
	i.revision++
	i.updatedAt = time.Now()
}

func (i *instance) summary() Summary {
	s := Summary{
		ID:             i.id.String(),
		Controls:       make(map[string]bool),
		Parameters:     i.params.Clone(),
		LastNavigation: i.lastNav,
		Revision:       i.revision,
		CreatedAt:      i.createdAt,
		UpdatedAt:      i.updatedAt,
	}

	if frame := i.doc.Query("iframe"); frame != nil {
		s.Address, _ = frame.Attr("src")
		s.Width = frame.Style("width")
		s.Height = frame.Style("height")
		s.Expanded = frame.Style("position") == "fixed"
	}
	for _, c := range i.doc.QueryAll("[" + control.Attr + "]") {
		name, _ := c.Attr(control.Attr)
		s.Controls[name] = c.Visible()
	}
	return s
}

package widget

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/control"
	"github.com/GriffinCanCode/framewidget/internal/dom"
)

// Names of the widget's controls, stored in their control.Attr attribute.
const (
	ControlNewTab = "new-tab"
	ControlExpand = "expand"
	ControlExit   = "exit"
)

// FrameWidget embeds an external document in an iframe and offers controls
// to open it in a new tab or expand it over the viewport.
//
// FrameWidget is not safe for concurrent use; the host serialises calls.
type FrameWidget struct {
	cfg    Config
	logger *zap.Logger

	container *dom.Element
	frame     *dom.Element
	newTab    *dom.Element
	expand    *dom.Element
	exit      *dom.Element // attached to <body>, outside container

	// inline container styles replaced by the overlay, restored on collapse
	savedContainer []rule

	navigator control.Navigator
	snapshot  Snapshot
	address   string
	geometry  Geometry
	mode      DisplayMode
}

var _ control.Control = (*FrameWidget)(nil)

// New creates a widget. It renders nothing until Init.
func New(cfg Config) *FrameWidget {
	cfg = cfg.Normalize()
	return &FrameWidget{
		cfg:    cfg,
		logger: zap.NewNop(),
		geometry: Geometry{
			Width:  cfg.DefaultWidth,
			Height: pixels(cfg.DefaultHeight),
		},
	}
}

// WithLogger sets the logger used for lifecycle events.
func (w *FrameWidget) WithLogger(logger *zap.Logger) *FrameWidget {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Init builds the iframe and the controls. The frame and the two inline
// controls go under container; the exit control goes under the document body
// so it stays visible when container is clipped.
func (w *FrameWidget) Init(ctx *control.Context, notifyOutputChanged func(), state map[string]any, container *dom.Element) {
	if container == nil {
		w.logger.Warn("frame widget initialised without a container")
		return
	}
	doc := container.Document()
	w.container = container
	if ctx != nil {
		w.navigator = ctx.Navigation
	}

	w.frame = doc.CreateElement("iframe")
	w.frame.SetStyle("position", "relative")
	w.frame.SetStyle("width", w.geometry.Width)
	w.frame.SetStyle("height", w.geometry.Height)
	w.frame.SetStyle("border", "1px solid #e1e1e1")
	w.frame.SetStyle("border-radius", "8px")
	w.frame.SetStyle("box-shadow", "0px 4px 12px rgba(0, 0, 0, 0.1)")
	container.AppendChild(w.frame)

	w.newTab = w.button(ControlNewTab, w.cfg.Labels.NewTab, w.OpenInNewTab)
	w.newTab.SetStyle("margin-top", "10px")
	container.AppendChild(w.newTab)

	w.expand = w.button(ControlExpand, w.cfg.Labels.Expand, w.ToggleDisplay)
	w.expand.SetStyle("margin-top", "10px")
	w.expand.SetStyle("margin-left", "10px")
	container.AppendChild(w.expand)

	w.exit = w.button(ControlExit, w.cfg.Labels.Close, w.ToggleDisplay)
	w.exit.SetStyle("position", "fixed")
	w.exit.SetStyle("top", "15px")
	w.exit.SetStyle("right", "15px")
	w.exit.SetStyle("z-index", "1001")
	w.exit.SetStyle("font-size", "16px")
	w.exit.SetStyle("cursor", "pointer")
	w.exit.SetStyle("background", "none")
	w.exit.SetStyle("border", "none")
	w.exit.SetStyle("display", exitDisplay(w.mode))
	doc.Body().AppendChild(w.exit)

	w.logger.Debug("frame widget initialised")
}

func (w *FrameWidget) button(name, label string, onClick func()) *dom.Element {
	b := w.container.Document().CreateElement("button")
	b.SetAttr("type", "button")
	b.SetAttr(control.Attr, name)
	b.SetText(label)
	b.OnClick(onClick)
	return b
}

// UpdateView applies the parameters in ctx.
func (w *FrameWidget) UpdateView(ctx *control.Context) {
	if ctx == nil {
		return
	}
	if ctx.Navigation != nil {
		w.navigator = ctx.Navigation
	}
	w.ApplyConfiguration(SnapshotFrom(ctx.Parameters))
}

// ApplyConfiguration makes s the current configuration. Dimensions absent
// from s keep their previous values. While expanded, new dimensions are
// recorded and take effect on the next collapse.
func (w *FrameWidget) ApplyConfiguration(s Snapshot) {
	w.snapshot = s
	address := s.Address()
	if address != w.address {
		w.logger.Debug("frame address changed", zap.String("address", address))
	}
	w.address = address

	if s.Height != nil {
		w.geometry.Height = pixels(*s.Height)
	}
	if s.Width != nil {
		w.geometry.Width = pixels(*s.Width)
	}

	if w.frame == nil {
		return
	}

	w.frame.SetAttr("src", address)
	if w.mode == Embedded {
		w.frame.SetStyle("width", w.geometry.Width)
		w.frame.SetStyle("height", w.geometry.Height)
	}
	w.newTab.SetStyle("display", inlineDisplay(s.NewTabEnabled()))
	w.expand.SetStyle("display", inlineDisplay(s.ExpandEnabled()))
}

// OpenInNewTab asks the navigator to open the current address in a new
// top-level browsing context. It does nothing when the address is empty.
func (w *FrameWidget) OpenInNewTab() {
	if w.address == "" || w.navigator == nil {
		return
	}
	w.logger.Debug("opening frame address in new tab", zap.String("address", w.address))
	w.navigator.Open(w.address, "_blank")
}

// ToggleDisplay switches between the embedded and expanded presentations.
// It does nothing before Init.
func (w *FrameWidget) ToggleDisplay() {
	if w.frame == nil {
		return
	}
	w.mode = w.mode.Toggle()

	for _, r := range frameRules(w.mode, w.geometry, w.cfg.Inset) {
		w.frame.SetStyle(r.prop, r.value)
	}
	if w.mode == Expanded {
		w.coverViewport()
	} else {
		w.restoreContainer()
	}
	w.exit.SetStyle("display", exitDisplay(w.mode))
	if w.mode == Expanded {
		w.expand.SetText(w.cfg.Labels.Collapse)
	} else {
		w.expand.SetText(w.cfg.Labels.Expand)
	}

	w.logger.Debug("frame display toggled", zap.Stringer("mode", w.mode))
}

// coverViewport records the container's inline geometry and replaces it with
// the overlay geometry.
func (w *FrameWidget) coverViewport() {
	overlay := overlayRules()
	w.savedContainer = make([]rule, 0, len(overlay))
	for _, r := range overlay {
		w.savedContainer = append(w.savedContainer, rule{r.prop, w.container.Style(r.prop)})
		w.container.SetStyle(r.prop, r.value)
	}
}

// restoreContainer puts back the inline values recorded by coverViewport.
func (w *FrameWidget) restoreContainer() {
	for _, r := range w.savedContainer {
		w.container.SetStyle(r.prop, r.value)
	}
	w.savedContainer = nil
}

// GetOutputs returns no values; the widget has no bound outputs.
func (w *FrameWidget) GetOutputs() control.Outputs {
	return control.Outputs{}
}

// Destroy detaches the exit control from the document body and drops every
// element reference. It tolerates elements that were already removed and
// repeated calls.
func (w *FrameWidget) Destroy() {
	if w.container != nil {
		w.restoreContainer()
	}
	for _, el := range []*dom.Element{w.newTab, w.expand, w.exit} {
		if el != nil {
			el.OnClick(nil)
		}
	}
	w.exit.Remove()

	w.container = nil
	w.frame = nil
	w.newTab = nil
	w.expand = nil
	w.exit = nil
	w.navigator = nil
	w.mode = Embedded

	w.logger.Debug("frame widget destroyed")
}

// Address returns the most recently composed frame address.
func (w *FrameWidget) Address() string { return w.address }

// Mode returns the current display mode.
func (w *FrameWidget) Mode() DisplayMode { return w.mode }

// Geometry returns the embedded frame size currently in effect.
func (w *FrameWidget) Geometry() Geometry { return w.geometry }

// Snapshot returns the most recently applied configuration.
func (w *FrameWidget) Snapshot() Snapshot { return w.snapshot }

func pixels(n int) string {
	return strconv.Itoa(n) + "px"
}

func inlineDisplay(enabled bool) string {
	if enabled {
		return "inline-block"
	}
	return "none"
}

package host

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/control"
	"github.com/GriffinCanCode/framewidget/internal/dom"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/logging"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/framewidget/internal/shared/id"
)

// DefaultPageShell is the page each instance is mounted into.
const DefaultPageShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Frame</title></head>
<body><div id="frame-root"></div></body>
</html>`

// DefaultMountSelector locates the mount point in DefaultPageShell.
const DefaultMountSelector = "#frame-root"

var (
	ErrNotFound       = errors.New("widget instance not found")
	ErrUnknownControl = errors.New("unknown control")
	ErrControlHidden  = errors.New("control is hidden")
	ErrLimitReached   = errors.New("widget instance limit reached")
	ErrMountNotFound  = errors.New("mount point not found in page shell")
)

var controlName = regexp.MustCompile(`^[a-z][a-z0-9-]{0,31}$`)

// Factory builds a fresh control for each mounted instance.
type Factory func(logger *zap.Logger) control.Control

// Options configures the host page layout.
type Options struct {
	PageShell     string
	MountSelector string // CSS selector, or XPath when it starts with "/"
	MaxInstances  int    // 0 means unlimited
}

// CheckShell verifies that a page shell parses and contains its mount point.
func CheckShell(shell, selector string) error {
	if shell == "" {
		shell = DefaultPageShell
	}
	if selector == "" {
		selector = DefaultMountSelector
	}
	doc, err := dom.Parse(shell)
	if err != nil {
		return fmt.Errorf("failed to build page: %w", err)
	}
	mount, err := doc.Locate(selector)
	if err != nil || mount == nil {
		return fmt.Errorf("%w: %s", ErrMountNotFound, selector)
	}
	return nil
}

// Manager owns widget instances: their documents, controls and parameters.
type Manager struct {
	instances sync.Map // id.WidgetID -> *instance
	count     atomic.Int64
	factory   Factory
	opts      Options
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// NewManager creates a host manager.
func NewManager(factory Factory, opts Options, logger *logging.Logger) *Manager {
	if opts.PageShell == "" {
		opts.PageShell = DefaultPageShell
	}
	if opts.MountSelector == "" {
		opts.MountSelector = DefaultMountSelector
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		factory: factory,
		opts:    opts,
		logger:  logger,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Mount creates a new instance, initialises its control and delivers the
// first parameter snapshot.
func (m *Manager) Mount(params control.Parameters) (Summary, error) {
	if err := params.Validate(); err != nil {
		return Summary{}, err
	}

	// Reserve a slot first so concurrent mounts cannot overshoot the limit
	if n := m.count.Add(1); m.opts.MaxInstances > 0 && n > int64(m.opts.MaxInstances) {
		m.count.Add(-1)
		return Summary{}, ErrLimitReached
	}

	doc, err := dom.Parse(m.opts.PageShell)
	if err != nil {
		m.count.Add(-1)
		return Summary{}, fmt.Errorf("failed to build page: %w", err)
	}
	mount, err := doc.Locate(m.opts.MountSelector)
	if err != nil || mount == nil {
		m.count.Add(-1)
		return Summary{}, fmt.Errorf("%w: %s", ErrMountNotFound, m.opts.MountSelector)
	}

	wid := id.NewWidgetID()
	now := time.Now()
	inst := &instance{
		id:        wid,
		doc:       doc,
		params:    params.Clone(),
		createdAt: now,
		updatedAt: now,
		subs:      make(map[uint64]chan Frame),
		logger:    m.logger.ForWidget(wid.String()),
	}
	inst.ctrl = m.factory(inst.logger)

	inst.mu.Lock()
	defer inst.mu.Unlock()

	ctx := inst.context()
	inst.ctrl.Init(ctx, inst.notifyOutputChanged, nil, mount)
	inst.ctrl.UpdateView(ctx)
	inst.revision = 1

	m.instances.Store(wid, inst)
	if m.metrics != nil {
		m.metrics.WidgetMounted()
		m.metrics.SnapshotApplied()
	}

	m.logger.Info("Widget mounted", zap.String("widget_id", wid.String()))
	return inst.summary(), nil
}

// Update delivers a complete parameter snapshot to an instance.
func (m *Manager) Update(wid id.WidgetID, params control.Parameters) (Summary, error) {
	if err := params.Validate(); err != nil {
		return Summary{}, err
	}
	inst, err := m.lookup(wid)
	if err != nil {
		return Summary{}, err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return Summary{}, ErrNotFound
	}

	inst.params = params.Clone()
	inst.ctrl.UpdateView(inst.context())
	inst.touch()
	if m.metrics != nil {
		m.metrics.SnapshotApplied()
	}
	m.publish(inst)

	return inst.summary(), nil
}

// Activate clicks the named control, as a user would. It returns the
// navigation the click requested, if any.
func (m *Manager) Activate(wid id.WidgetID, name string) (Summary, *Navigation, error) {
	if !controlName.MatchString(name) {
		return Summary{}, nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	inst, err := m.lookup(wid)
	if err != nil {
		return Summary{}, nil, err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return Summary{}, nil, ErrNotFound
	}

	el := inst.doc.Query(`[` + control.Attr + `="` + name + `"]`)
	if el == nil {
		return Summary{}, nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	if !el.Visible() {
		return Summary{}, nil, fmt.Errorf("%w: %q", ErrControlHidden, name)
	}

	inst.pending = nil
	el.Click()
	nav := inst.pending
	inst.pending = nil
	inst.touch()

	if m.metrics != nil {
		m.metrics.ControlClicked(name)
		if nav != nil {
			m.metrics.NavigationRequested()
		}
	}
	m.publish(inst)

	return inst.summary(), nav, nil
}

// Get returns an instance summary.
func (m *Manager) Get(wid id.WidgetID) (Summary, error) {
	inst, err := m.lookup(wid)
	if err != nil {
		return Summary{}, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return Summary{}, ErrNotFound
	}
	return inst.summary(), nil
}

// List returns summaries of all instances, oldest first.
func (m *Manager) List() []Summary {
	var out []Summary
	m.instances.Range(func(_, v any) bool {
		inst := v.(*instance)
		inst.mu.Lock()
		if !inst.closed {
			out = append(out, inst.summary())
		}
		inst.mu.Unlock()
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Document renders an instance's page.
func (m *Manager) Document(wid id.WidgetID) (string, error) {
	inst, err := m.lookup(wid)
	if err != nil {
		return "", err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return "", ErrNotFound
	}
	return inst.doc.Render()
}

// Outputs returns the values the instance's control reports.
func (m *Manager) Outputs(wid id.WidgetID) (control.Outputs, error) {
	inst, err := m.lookup(wid)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return nil, ErrNotFound
	}
	return inst.ctrl.GetOutputs(), nil
}

// Destroy tears an instance down. Its control is destroyed exactly once.
func (m *Manager) Destroy(wid id.WidgetID) error {
	v, ok := m.instances.LoadAndDelete(wid)
	if !ok {
		return ErrNotFound
	}
	inst := v.(*instance)

	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return ErrNotFound
	}
	inst.ctrl.Destroy()
	inst.closed = true
	for key, ch := range inst.subs {
		close(ch)
		delete(inst.subs, key)
	}

	m.count.Add(-1)
	if m.metrics != nil {
		m.metrics.WidgetDestroyed()
	}
	m.logger.Info("Widget destroyed", zap.String("widget_id", wid.String()))
	return nil
}

// Close destroys every instance.
func (m *Manager) Close() {
	m.instances.Range(func(k, _ any) bool {
		_ = m.Destroy(k.(id.WidgetID))
		return true
	})
}

// Count returns the number of mounted instances.
func (m *Manager) Count() int {
	return int(m.count.Load())
}

func (m *Manager) lookup(wid id.WidgetID) (*instance, error) {
	v, ok := m.instances.Load(wid)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*instance), nil
}

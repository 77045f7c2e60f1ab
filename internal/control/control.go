// Package control defines the lifecycle contract between a hosting page and
// the embedded controls it mounts.
//
// The host calls Init once, UpdateView whenever any parameter changes,
// GetOutputs after the control reports an output change, and Destroy once at
// the end of the control's life. All calls happen on one goroutine at a time.
package control

import (
	"github.com/GriffinCanCode/framewidget/internal/dom"
)

// Attr is the attribute naming a control element so hosts can locate it in
// the rendered document.
const Attr = "data-control"

// Navigator opens addresses outside the control's own render target.
type Navigator interface {
	Open(url, target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(url, target string)

// Open calls f(url, target).
func (f NavigatorFunc) Open(url, target string) { f(url, target) }

// Context is handed to the control on Init and on every UpdateView.
type Context struct {
	Parameters Parameters
	Navigation Navigator
}

// Outputs holds values a control reports back to its host.
type Outputs map[string]any

// Control is implemented by embeddable controls.
type Control interface {
	Init(ctx *Context, notifyOutputChanged func(), state map[string]any, container *dom.Element)
	UpdateView(ctx *Context)
	GetOutputs() Outputs
	Destroy()
}

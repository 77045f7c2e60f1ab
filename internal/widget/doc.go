// Package widget implements the content-frame control: an iframe whose
// address is composed from host-bound fragments and an optional query
// parameter, with controls to open the address in a new tab and to expand
// the frame over the whole viewport.
//
// The widget follows the host lifecycle in package control. Each UpdateView
// call applies a complete configuration Snapshot; repeated calls with the
// same snapshot leave the document unchanged, and dimensions missing from a
// snapshot keep their previous values.
//
// Example Usage:
//
//	w := widget.New(widget.DefaultConfig()).WithLogger(logger)
//	w.Init(ctx, notify, nil, container)
//	w.UpdateView(&control.Context{Parameters: params})
//	w.ToggleDisplay()
//	defer w.Destroy()
package widget

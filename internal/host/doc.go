// Package host mounts embedded controls into server-side pages and drives
// their lifecycle on behalf of remote callers.
//
// Each instance gets its own page, parsed from a configurable shell, and a
// control mounted at the element matched by a CSS selector. The Manager
// serialises every call on an instance, so controls run single-threaded
// even though API handlers run concurrently. Control clicks are dispatched
// through the rendered document, and navigation requests made by a click
// are recorded and returned to the caller.
//
// Example Usage:
//
//	mgr := host.NewManager(factory, host.Options{}, logger)
//	sum, _ := mgr.Mount(control.Parameters{"UrlValue": "https://example.com"})
//	wid, _ := id.ParseWidgetID(sum.ID)
//	_, nav, _ := mgr.Activate(wid, "new-tab")
//	_ = mgr.Destroy(wid)
package host

// Package shell loads the HTML pages widgets are mounted into.
//
// A shell comes from a local file or an http(s) URL. Remote shells are
// fetched with resty over a go-retryablehttp transport, and each origin has
// a small circuit breaker so an unreachable host fails fast. Every shell is
// checked to be HTML (gabriel-vasile/mimetype) and transcoded to UTF-8 using
// its declared charset, or saintfish/chardet when it declares none.
//
// Example Usage:
//
//	loader := shell.NewLoader(shell.DefaultOptions(), logger)
//	page, err := loader.Load(ctx, "https://intranet.example/layout.html")
package shell

// Package main renders frame widgets to files or stdout.
//
// A widget is mounted into a page, configured from a parameter file and
// optionally expanded, then the page (or a JSON summary) is printed. With
// -dir every parameter file under a directory is rendered into -out; files
// that fail are listed and the rest are still written. -expand is skipped for
// widgets whose parameters disable the expand control.
//
// Usage:
//
//	./render -params frame.yaml > page.html
//	./render -params frame.toml -expand -summary
//	./render -params frame.json -shell https://intranet.example/layout.html -selector "//main/section"
//	./render -dir frames -glob "**/*.yaml" -out build
package main

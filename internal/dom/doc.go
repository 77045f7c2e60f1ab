// Package dom models the slice of the browser DOM that embedded controls use.
//
// A Document wraps a golang.org/x/net/html tree. Elements expose attribute,
// inline style, text and click-handler operations, and can be located with
// CSS selectors through goquery or XPath through htmlquery.
//
// Example Usage:
//
//	doc := dom.NewDocument()
//	frame := doc.CreateElement("iframe")
//	frame.SetStyle("height", "300px")
//	doc.Body().AppendChild(frame)
//	page, _ := doc.Render()
package dom

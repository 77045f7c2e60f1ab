package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle on a node of a Document.
type Element struct {
	node *html.Node
	doc  *Document
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the document that owns the element.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.node.Data }

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	if e.node.Parent == nil || e.node.Parent.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(e.node.Parent)
}

// AppendChild moves child under e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Remove detaches e from its parent. Removing a detached element is a no-op.
func (e *Element) Remove() {
	if e == nil || e.node.Parent == nil {
		return
	}
	e.node.Parent.RemoveChild(e.node)
}

// Attr returns the value of an attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping its position if it already exists.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	e.node.Attr = attrs
}

// Text returns the concatenated text content of e.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// SetText replaces all children of e with a single text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Style returns the value of an inline style property.
func (e *Element) Style(prop string) string {
	raw, _ := e.Attr("style")
	return parseStyle(raw).get(prop)
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	raw, _ := e.Attr("style")
	s := parseStyle(raw)
	s.set(prop, value)
	if len(s) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", s.String())
}

// Visible reports whether e is not hidden with display: none.
func (e *Element) Visible() bool {
	return e.Style("display") != "none"
}

// OnClick registers the handler run by Click.
func (e *Element) OnClick(fn func()) {
	if fn == nil {
		delete(e.doc.handlers, e.node)
		return
	}
	e.doc.handlers[e.node] = fn
}

// Click runs the element's click handler and reports whether one ran.
func (e *Element) Click() bool {
	fn, ok := e.doc.handlers[e.node]
	if !ok {
		return false
	}
	fn()
	return true
}

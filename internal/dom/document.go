package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// ErrNoBody is returned when a parsed page has no <body> element.
var ErrNoBody = errors.New("document has no body")

// Document is an HTML tree with click handlers attached to its elements.
type Document struct {
	root     *html.Node
	body     *html.Node
	handlers map[*html.Node]func()
}

// NewDocument returns an empty HTML document.
func NewDocument() *Document {
	doc, err := Parse(blankPage)
	if err != nil {
		// blankPage is a constant and always parses
		panic(err)
	}
	return doc
}

// Parse builds a Document from an HTML page.
func Parse(page string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	body := goquery.NewDocumentFromNode(root).Find("body").First()
	if body.Length() == 0 {
		return nil, ErrNoBody
	}

	return &Document{
		root:     root,
		body:     body.Get(0),
		handlers: make(map[*html.Node]func()),
	}, nil
}

// Body returns the document's <body> element.
func (d *Document) Body() *Element {
	return d.wrap(d.body)
}

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n)
}

// Query returns the first element matching a CSS selector, or nil.
func (d *Document) Query(selector string) *Element {
	sel := goquery.NewDocumentFromNode(d.root).Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return d.wrap(sel.Get(0))
}

// QueryAll returns every element matching a CSS selector in document order.
func (d *Document) QueryAll(selector string) []*Element {
	var out []*Element
	goquery.NewDocumentFromNode(d.root).Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.wrap(s.Get(0)))
	})
	return out
}

// QueryXPath returns the first element matching an XPath expression, or nil.
func (d *Document) QueryXPath(expr string) (*Element, error) {
	n, err := htmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	if n == nil || n.Type != html.ElementNode {
		return nil, nil
	}
	return d.wrap(n), nil
}

// Locate finds an element by XPath when expr starts with "/" or "(", and by
// CSS selector otherwise.
func (d *Document) Locate(expr string) (*Element, error) {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "/") || strings.HasPrefix(expr, "(") {
		return d.QueryXPath(expr)
	}
	return d.Query(expr), nil
}

// Contains reports whether e is attached to this document's tree.
func (d *Document) Contains(e *Element) bool {
	if e == nil || e.doc != d {
		return false
	}
	for n := e.node; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// Render serialises the document to HTML.
func (d *Document) Render() (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, d.root); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return sb.String(), nil
}

// Selection exposes the document to goquery.
func (d *Document) Selection() *goquery.Document {
	return goquery.NewDocumentFromNode(d.root)
}

func (d *Document) wrap(n *html.Node) *Element {
	return &Element{node: n, doc: d}
}

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleSetAndRemove(t *testing.T) {
	el := NewDocument().CreateElement("div")

	el.SetStyle("position", "fixed")
	el.SetStyle("z-index", "999")
	assert.Equal(t, "fixed", el.Style("position"))

	v, _ := el.Attr("style")
	assert.Equal(t, "position: fixed; z-index: 999;", v)

	el.SetStyle("position", "relative")
	v, _ = el.Attr("style")
	assert.Equal(t, "position: relative; z-index: 999;", v, "order is preserved on update")

	el.SetStyle("z-index", "")
	el.SetStyle("position", "")
	_, ok := el.Attr("style")
	assert.False(t, ok)
}

func TestStyleParsesExistingAttribute(t *testing.T) {
	el := NewDocument().CreateElement("div")
	el.SetAttr("style", "Width:calc(100% - 20px) ;box-shadow: 0px 4px 12px rgba(0, 0, 0, 0.1);;garbage")

	assert.Equal(t, "calc(100% - 20px)", el.Style("width"))
	assert.Equal(t, "0px 4px 12px rgba(0, 0, 0, 0.1)", el.Style("box-shadow"))
	assert.Equal(t, "", el.Style("height"))
}

func TestVisible(t *testing.T) {
	el := NewDocument().CreateElement("button")
	assert.True(t, el.Visible())

	el.SetStyle("display", "none")
	assert.False(t, el.Visible())

	el.SetStyle("display", "inline-block")
	assert.True(t, el.Visible())
}

func TestSetText(t *testing.T) {
	el := NewDocument().CreateElement("button")
	el.SetText("Open")
	el.SetText("Close")
	assert.Equal(t, "Close", el.Text())
}

func TestAttrs(t *testing.T) {
	el := NewDocument().CreateElement("iframe")
	el.SetAttr("src", "a")
	el.SetAttr("title", "t")
	el.SetAttr("src", "b")

	v, ok := el.Attr("src")
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Len(t, el.Node().Attr, 2)

	el.RemoveAttr("src")
	_, ok = el.Attr("src")
	assert.False(t, ok)
}

func TestClick(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("button")
	assert.False(t, el.Click())

	clicks := 0
	el.OnClick(func() { clicks++ })
	doc.Body().AppendChild(el)

	// Handlers survive re-wrapping the same node.
	found := doc.Query("button")
	assert.True(t, found.Click())
	assert.Equal(t, 1, clicks)

	el.OnClick(nil)
	assert.False(t, el.Click())
}

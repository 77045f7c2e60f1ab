package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayModeToggle(t *testing.T) {
	assert.Equal(t, Expanded, Embedded.Toggle())
	assert.Equal(t, Embedded, Expanded.Toggle())
	assert.Equal(t, Embedded, Embedded.Toggle().Toggle())
}

func TestDisplayModeString(t *testing.T) {
	assert.Equal(t, "embedded", Embedded.String())
	assert.Equal(t, "expanded", Expanded.String())
	assert.Equal(t, "unknown", DisplayMode(7).String())
}

func TestFrameRules(t *testing.T) {
	g := Geometry{Width: "640px", Height: "480px"}

	embedded := frameRules(Embedded, g, 10)
	assert.Contains(t, embedded, rule{"width", "640px"})
	assert.Contains(t, embedded, rule{"height", "480px"})
	assert.Contains(t, embedded, rule{"z-index", ""})

	expanded := frameRules(Expanded, g, 5)
	assert.Contains(t, expanded, rule{"top", "5px"})
	assert.Contains(t, expanded, rule{"width", "calc(100% - 10px)"})
	assert.Contains(t, expanded, rule{"z-index", "1000"})
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{Inset: -1, Labels: Labels{NewTab: "  <script>x</script>  ", Close: "Done"}}.Normalize()

	def := DefaultConfig()
	assert.Equal(t, def.DefaultWidth, cfg.DefaultWidth)
	assert.Equal(t, def.DefaultHeight, cfg.DefaultHeight)
	assert.Equal(t, def.Inset, cfg.Inset)
	assert.Equal(t, def.Labels.NewTab, cfg.Labels.NewTab, "markup-only label falls back")
	assert.Equal(t, def.Labels.Expand, cfg.Labels.Expand)
	assert.Equal(t, "Done", cfg.Labels.Close)
}

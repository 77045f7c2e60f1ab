package widget

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Labels holds the text shown on the widget's controls.
type Labels struct {
	NewTab   string
	Expand   string
	Collapse string
	Close    string
}

// Config controls the widget's default geometry and labels.
type Config struct {
	DefaultWidth  string // CSS width while embedded and unconfigured
	DefaultHeight int    // pixels
	Inset         int    // pixels kept clear around the expanded frame
	Labels        Labels
}

// DefaultLabels returns the stock control labels.
func DefaultLabels() Labels {
	return Labels{
		NewTab:   "Open in New Tab",
		Expand:   "Open Full Page",
		Collapse: "Exit Full Page",
		Close:    "Close",
	}
}

// DefaultConfig returns the stock widget configuration.
func DefaultConfig() Config {
	return Config{
		DefaultWidth:  "100%",
		DefaultHeight: 300,
		Inset:         10,
		Labels:        DefaultLabels(),
	}
}

var labelPolicy = bluemonday.StrictPolicy()

// Normalize strips markup from labels and replaces unusable values with the
// defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if strings.TrimSpace(c.DefaultWidth) == "" {
		c.DefaultWidth = def.DefaultWidth
	}
	if c.DefaultHeight <= 0 {
		c.DefaultHeight = def.DefaultHeight
	}
	if c.Inset < 0 {
		c.Inset = def.Inset
	}
	c.Labels.NewTab = plainLabel(c.Labels.NewTab, def.Labels.NewTab)
	c.Labels.Expand = plainLabel(c.Labels.Expand, def.Labels.Expand)
	c.Labels.Collapse = plainLabel(c.Labels.Collapse, def.Labels.Collapse)
	c.Labels.Close = plainLabel(c.Labels.Close, def.Labels.Close)
	return c
}

// plainLabel reduces s to plain text. bluemonday escapes what it keeps, and
// the DOM escapes text again on render, so the result is unescaped here.
func plainLabel(s, fallback string) string {
	text := strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(s)))
	if text == "" {
		return fallback
	}
	return text
}

package widget

import "strconv"

// DisplayMode is the frame's presentation state.
type DisplayMode int

const (
	// Embedded renders the frame inside the host container.
	Embedded DisplayMode = iota
	// Expanded overlays the frame on the whole viewport.
	Expanded
)

func (m DisplayMode) String() string {
	switch m {
	case Embedded:
		return "embedded"
	case Expanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode.
func (m DisplayMode) Toggle() DisplayMode {
	if m == Expanded {
		return Embedded
	}
	return Expanded
}

// rule is a single inline style assignment. An empty value clears the
// property.
type rule struct {
	prop  string
	value string
}

// Geometry holds the frame size the widget returns to when embedded.
type Geometry struct {
	Width  string
	Height string
}

// frameRules returns the frame styles for mode. Embedded uses g; Expanded
// fills the viewport minus inset pixels on every side.
func frameRules(mode DisplayMode, g Geometry, inset int) []rule {
	if mode == Expanded {
		px := strconv.Itoa(inset) + "px"
		fill := "calc(100% - " + strconv.Itoa(2*inset) + "px)"
		return []rule{
			{"position", "fixed"},
			{"top", px},
			{"left", px},
			{"width", fill},
			{"height", fill},
			{"z-index", "1000"},
		}
	}
	return []rule{
		{"position", "relative"},
		{"top", ""},
		{"left", ""},
		{"width", g.Width},
		{"height", g.Height},
		{"z-index", ""},
	}
}

// overlayRules returns the host container styles while expanded. Collapsing
// restores whatever inline values the container had before.
func overlayRules() []rule {
	return []rule{
		{"position", "fixed"},
		{"top", "0"},
		{"left", "0"},
		{"width", "100vw"},
		{"height", "100vh"},
		{"z-index", "999"},
	}
}

// exitDisplay returns the display value of the overlay exit control.
func exitDisplay(mode DisplayMode) string {
	if mode == Expanded {
		return "flex"
	}
	return "none"
}

package widget

import (
	"github.com/GriffinCanCode/framewidget/internal/control"
)

// Property names the widget reads from its host.
const (
	PropURLValue           = "UrlValue"
	PropURLPart1           = "UrlPart1"
	PropURLPart2           = "UrlPart2"
	PropURLPart3           = "UrlPart3"
	PropQueryStringName    = "QueryStringName"
	PropQueryStringValue   = "QueryStringValue"
	PropHeight             = "Height"
	PropWidth              = "Width"
	PropEnableOpenInNewTab = "EnableOpenInNewTab"
	PropEnableOpenFullPage = "EnableOpenFullPage"
	PropDisabled           = "Disabled"
	PropMasked             = "Masked"
)

var urlParts = []string{PropURLPart1, PropURLPart2, PropURLPart3}

// Snapshot is one complete reading of the widget's configuration. Pointer
// fields are nil when the host did not supply a usable value.
type Snapshot struct {
	URLFragments []string
	QueryKey     string
	QueryValue   string
	Height       *int
	Width        *int
	EnableNewTab *bool
	EnableExpand *bool

	// Disabled and Masked mirror the host's field security for the address
	// properties. They are recorded but do not change the composed address.
	Disabled bool
	Masked   bool
}

// SnapshotFrom reads a Snapshot from host parameters. The multi-part address
// properties take precedence over the single UrlValue property when any of
// them holds a non-empty string. Hosts send unused properties as null, so a
// part that is merely present does not switch modes.
func SnapshotFrom(p control.Parameters) Snapshot {
	var s Snapshot

	multi := false
	for _, name := range urlParts {
		if _, ok := p.String(name); ok {
			multi = true
			break
		}
	}
	if multi {
		for _, name := range urlParts {
			v, _ := p.String(name)
			s.URLFragments = append(s.URLFragments, v)
		}
	} else if v, ok := p.String(PropURLValue); ok {
		s.URLFragments = []string{v}
	}

	s.QueryKey, _ = p.String(PropQueryStringName)
	s.QueryValue, _ = p.String(PropQueryStringValue)

	if v, ok := p.Int(PropHeight); ok && v > 0 {
		s.Height = &v
	}
	if v, ok := p.Int(PropWidth); ok && v > 0 {
		s.Width = &v
	}
	if v, ok := p.Bool(PropEnableOpenInNewTab); ok {
		s.EnableNewTab = &v
	}
	if v, ok := p.Bool(PropEnableOpenFullPage); ok {
		s.EnableExpand = &v
	}

	s.Disabled, _ = p.Bool(PropDisabled)
	s.Masked, _ = p.Bool(PropMasked)
	return s
}

// Address returns the composed frame address for s.
func (s Snapshot) Address() string {
	return Compose(s.URLFragments, s.QueryKey, s.QueryValue)
}

// NewTabEnabled reports whether the open-in-new-tab control is shown.
// Unset means enabled.
func (s Snapshot) NewTabEnabled() bool {
	return s.EnableNewTab == nil || *s.EnableNewTab
}

// ExpandEnabled reports whether the expand control is shown. Unset means
// enabled.
func (s Snapshot) ExpandEnabled() bool {
	return s.EnableExpand == nil || *s.EnableExpand
}

package dom

import "strings"

type declaration struct {
	prop  string
	value string
}

// style is an inline style attribute in declaration order.
type style []declaration

func parseStyle(raw string) style {
	var s style
	for _, part := range strings.Split(raw, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		s.set(prop, value)
	}
	return s
}

func (s style) get(prop string) string {
	for _, d := range s {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

func (s *style) set(prop, value string) {
	for i, d := range *s {
		if d.prop != prop {
			continue
		}
		if value == "" {
			*s = append((*s)[:i], (*s)[i+1:]...)
		} else {
			(*s)[i].value = value
		}
		return
	}
	if value != "" {
		*s = append(*s, declaration{prop: prop, value: value})
	}
}

func (s style) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ") + ";"
}

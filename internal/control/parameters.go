package control

import (
	"math"
	"strconv"
	"strings"
)

// Parameters holds the raw values the host has bound to a control's
// properties. Values arrive from JSON, YAML or TOML decoders, so accessors
// accept every numeric and string representation those produce. A value that
// cannot be read as the requested type is reported as absent.
type Parameters map[string]any

// String returns a non-empty string parameter.
func (p Parameters) String(name string) (string, bool) {
	switch v := p[name].(type) {
	case string:
		return v, v != ""
	case []byte:
		return string(v), len(v) > 0
	default:
		return "", false
	}
}

// Int returns an integral parameter within the 32-bit range. Whole-valued
// floats and numeric strings are accepted; fractions, out-of-range numbers
// and anything else are absent.
func (p Parameters) Int(name string) (int, bool) {
	switch v := p[name].(type) {
	case int:
		return fromInt64(int64(v))
	case int32:
		return int(v), true
	case int64:
		return fromInt64(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case float64:
		return fromFloat(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromInt64(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromFloat(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func fromInt64(n int64) (int, bool) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Bool returns a boolean parameter. The strings "true" and "false" are
// accepted in any case.
func (p Parameters) Bool(name string) (bool, bool) {
	switch v := p[name].(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// Clone returns a shallow copy of p.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

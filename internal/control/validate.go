package control

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Parameter limits
const (
	MaxParameters     = 256
	MaxNameLength     = 128
	MaxValueLength    = 64 * 1024 // long enough for any practical URL
	MaxParameterDepth = 8
)

// ErrInvalidParameters is returned by Validate.
var ErrInvalidParameters = errors.New("invalid parameters")

// Validate checks a snapshot against the parameter limits. Nested maps and
// lists are allowed, since hosts may bind structured values to properties
// the control ignores, but their depth is bounded.
func (p Parameters) Validate() error {
	if len(p) > MaxParameters {
		return fmt.Errorf("%w: %d parameters exceeds maximum %d", ErrInvalidParameters, len(p), MaxParameters)
	}
	for name, value := range p {
		if name == "" {
			return fmt.Errorf("%w: empty parameter name", ErrInvalidParameters)
		}
		if len(name) > MaxNameLength {
			return fmt.Errorf("%w: parameter name exceeds %d bytes", ErrInvalidParameters, MaxNameLength)
		}
		if !utf8.ValidString(name) {
			return fmt.Errorf("%w: parameter name is not valid UTF-8", ErrInvalidParameters)
		}
		if err := checkValue(name, value, 1); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(name string, value any, depth int) error {
	if depth > MaxParameterDepth {
		return fmt.Errorf("%w: %s nests deeper than %d", ErrInvalidParameters, name, MaxParameterDepth)
	}

	switch v := value.(type) {
	case string:
		if len(v) > MaxValueLength {
			return fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidParameters, name, MaxValueLength)
		}
	case map[string]any:
		for _, inner := range v {
			if err := checkValue(name, inner, depth+1); err != nil {
				return err
			}
		}
	case []any:
		for _, inner := range v {
			if err := checkValue(name, inner, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Package manifest reads widget parameter snapshots from files.
//
// A file holds either a flat map of parameter names to values or a single
// "parameters" table containing that map:
//
//	parameters:
//	  UrlValue: https://example.com/report
//	  Height: 480
//	  EnableOpenFullPage: false
//
// YAML is decoded with goccy/go-yaml, TOML with pelletier/go-toml/v2 and
// JSON with bytedance/sonic.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/framewidget/internal/control"
)

// Format is a parameter file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for file types with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported parameter file format")

const parametersKey = "parameters"

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a parameter snapshot from path.
func Load(path string) (control.Parameters, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}
	params, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}

// Decode parses a parameter snapshot encoded in format.
func Decode(format Format, data []byte) (control.Parameters, error) {
	raw := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		switch format {
		case FormatYAML, FormatTOML, FormatJSON:
			return control.Parameters(raw), nil
		}
	}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatJSON:
		err = sonic.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s parameters: %w", format, err)
	}

	if len(raw) == 1 {
		if nested, ok := raw[parametersKey]; ok {
			table, ok := nested.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%q must be a table, got %T", parametersKey, nested)
			}
			raw = table
		}
	}
	return control.Parameters(raw), nil
}

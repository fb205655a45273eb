// Package render writes decoded records and error causes as pretty JSON or
// YAML. Ordered collections from the ocorren package keep their key order.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the output syntax.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	default:
		return "json"
	}
}

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("render: unknown format %q", s)
}

// Marshal renders v in format f, indented by two spaces and newline-terminated.
func Marshal(f Format, v any) ([]byte, error) {
	var b bytes.Buffer
	if err := Write(&b, f, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Write renders v to w.
func Write(w io.Writer, f Format, v any) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		return enc.Close()
	default:
		// locators contain '>', keep it readable
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("render json: %w", err)
		}
		return nil
	}
}

package ocorren

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	eng "github.com/reoring/ocorren/internal/engine"
	"github.com/reoring/ocorren/source/gojson"
	"github.com/reoring/ocorren/source/yamlnode"
)

// ErrMalformedLayout is wrapped by LoadError when a source parses but is not
// shaped as record type -> field name -> attributes.
var ErrMalformedLayout = errors.New("malformed layout")

// Format is the syntax of a layout source.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatOf picks the format from a file extension; anything but .yaml/.yml is JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a layout document from r. Only the document's shape is checked;
// field attribute values are validated when rows are decoded.
func Load(r io.Reader, format Format) (*LayoutRegistry, error) {
	return loadNamed("<reader>", r, format)
}

// LoadJSON loads a layout from JSON bytes.
func LoadJSON(data []byte) (*LayoutRegistry, error) {
	return loadNamed("<json>", bytes.NewReader(data), FormatJSON)
}

// LoadYAML loads a layout from YAML bytes.
func LoadYAML(data []byte) (*LayoutRegistry, error) {
	return loadNamed("<yaml>", bytes.NewReader(data), FormatYAML)
}

// LoadFile loads a layout from path, choosing the format by extension.
func LoadFile(path string) (*LayoutRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: notFound(err)}
	}
	return loadNamed(path, bytes.NewReader(data), FormatOf(path))
}

// LoadFS loads a layout named name from fsys, choosing the format by extension.
func LoadFS(fsys fs.FS, name string) (*LayoutRegistry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &LoadError{Source: name, Err: notFound(err)}
	}
	return loadNamed(name, bytes.NewReader(data), FormatOf(name))
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrLayoutNotFound, err)
	}
	return err
}

func loadNamed(name string, r io.Reader, format Format) (*LayoutRegistry, error) {
	var (
		doc any
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = yamlnode.Decode(r)
		if errors.Is(err, yamlnode.ErrRecursiveAlias) || errors.Is(err, yamlnode.ErrTooLarge) {
			err = fmt.Errorf("%w: %w", ErrMalformedLayout, err)
		}
	default:
		doc, err = eng.DecodeDocument(gojson.NewReader(r))
	}
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	reg, err := buildRegistry(name, doc)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	return reg, nil
}

func buildRegistry(name string, doc any) (*LayoutRegistry, error) {
	root, ok := doc.(eng.Object)
	if !ok {
		return nil, shapeErr("", "object of record types", doc)
	}
	schemas := make([]RecordTypeSchema, 0, len(root))
	for _, rec := range root {
		path := eng.JoinPath("", rec.Key)
		fields, ok := rec.Value.(eng.Object)
		if !ok {
			return nil, shapeErr(path, "object of fields", rec.Value)
		}
		s := RecordTypeSchema{Tag: rec.Key, Fields: make([]FieldSchema, 0, len(fields))}
		for _, fm := range fields {
			f, err := buildField(eng.JoinPath(path, fm.Key), fm.Key, fm.Value)
			if err != nil {
				return nil, err
			}
			s.Fields = append(s.Fields, f)
		}
		schemas = append(schemas, s)
	}
	return NewLayoutRegistry(name, schemas...), nil
}

func buildField(path, name string, v any) (FieldSchema, error) {
	f := FieldSchema{Name: name}
	attrs, ok := v.(eng.Object)
	if !ok {
		return f, shapeErr(path, "object of field attributes", v)
	}
	var err error
	for _, a := range attrs {
		ap := eng.JoinPath(path, a.Key)
		switch a.Key {
		case "position":
			f.Position, err = intAttr(ap, a.Value)
		case "length":
			f.Length, err = intAttr(ap, a.Value)
		case "mandatory":
			f.Mandatory, err = boolAttr(ap, a.Value)
		case "alphanumeric":
			f.Alphanumeric, err = boolAttr(ap, a.Value)
		default:
			err = fmt.Errorf("%w at %s: unknown attribute %q", ErrMalformedLayout, ap, a.Key)
		}
		if err != nil {
			return f, err
		}
	}
	return f, nil
}

func intAttr(path string, v any) (int, error) {
	n, ok := v.(eng.Number)
	if !ok {
		return 0, shapeErr(path, "integer", v)
	}
	i, err := strconv.Atoi(string(n))
	if err != nil {
		return 0, fmt.Errorf("%w at %s: %s is not an integer", ErrMalformedLayout, path, n)
	}
	return i, nil
}

func boolAttr(path string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, shapeErr(path, "boolean", v)
	}
	return b, nil
}

func shapeErr(path, want string, got any) error {
	if path == "" {
		path = "/"
	}
	return fmt.Errorf("%w at %s: expected %s, got %s", ErrMalformedLayout, path, want, eng.TypeName(got))
}

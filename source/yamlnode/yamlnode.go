// Package yamlnode reads a YAML document through gopkg.in/yaml.v3 nodes and
// converts it into the engine value model, keeping mapping order and
// rejecting duplicate keys with their positions.
package yamlnode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/ocorren/internal/engine"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Path      string
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

var (
	// ErrRecursiveAlias reports an alias that refers to a node containing it.
	ErrRecursiveAlias = errors.New("recursive alias")
	// ErrTooLarge reports a document whose aliases expand past maxNodes.
	ErrTooLarge = errors.New("document expands to too many nodes")
)

// maxNodes bounds the converted tree, aliases expanded. Layouts hold a few
// hundred nodes.
const maxNodes = 1 << 16

// Decode reads the first document of r. An empty stream is io.ErrUnexpectedEOF.
func Decode(r io.Reader) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	c := &converter{active: make(map[*yaml.Node]struct{})}
	return c.convert(&root, "")
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte) (any, error) { return Decode(bytes.NewReader(b)) }

// converter follows aliases; active holds the anchors being expanded.
type converter struct {
	active map[*yaml.Node]struct{}
	nodes  int
}

func (c *converter) convert(n *yaml.Node, path string) (any, error) {
	c.nodes++
	if c.nodes > maxNodes {
		return nil, fmt.Errorf("%w at %s: more than %d", ErrTooLarge, pathOrRoot(path), maxNodes)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0], path)
	case yaml.AliasNode:
		if _, loop := c.active[n.Alias]; loop {
			return nil, fmt.Errorf("%w at %s: *%s", ErrRecursiveAlias, pathOrRoot(path), n.Value)
		}
		c.active[n.Alias] = struct{}{}
		defer delete(c.active, n.Alias)
		return c.convert(n.Alias, path)
	case yaml.MappingNode:
		obj := make(eng.Object, 0, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			child := eng.JoinPath(path, key)
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Path: child, Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := c.convert(v, child)
			if err != nil {
				return nil, err
			}
			obj = append(obj, eng.Member{Key: key, Value: val})
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := c.convert(item, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(n), nil
	default:
		return nil, nil
	}
}

func pathOrRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
		return n.Value
	case "!!int":
		// normalize 0x/0o/underscore forms to plain decimal text
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return eng.Number(strconv.FormatInt(i, 10))
		}
		return eng.Number(n.Value)
	case "!!float":
		return eng.Number(n.Value)
	default:
		return n.Value
	}
}

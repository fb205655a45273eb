// Package ordered provides a string-keyed map that remembers insertion order.
// It backs the field, cause and record collections whose rendered key order
// must follow the input rather than Go's randomized map iteration.
package ordered

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair in insertion order.
type Entry[V any] struct {
	Key   string
	Value V
}

// Map is an insertion-ordered map. The zero value is ready to use.
type Map[V any] struct {
	keys []string
	vals map[string]V
}

// Set stores v under k. An existing key keeps its original position.
func (m *Map[V]) Set(k string, v V) {
	if m.vals == nil {
		m.vals = make(map[string]V)
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

// Get returns the value stored under k.
func (m Map[V]) Get(k string) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Len returns the number of keys.
func (m Map[V]) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in insertion order.
func (m Map[V]) Keys() []string { return append([]string(nil), m.keys...) }

// Entries returns the pairs in insertion order.
func (m Map[V]) Entries() []Entry[V] {
	out := make([]Entry[V], 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry[V]{Key: k, Value: m.vals[k]})
	}
	return out
}

// Range calls fn for each pair in insertion order until fn returns false.
func (m Map[V]) Range(fn func(k string, v V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

// MarshalJSON writes the map as a JSON object keeping insertion order.
func (m Map[V]) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.MarshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.MarshalNoEscape(m.vals[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalYAML returns a mapping node keeping insertion order.
func (m Map[V]) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var vn yaml.Node
		if err := vn.Encode(m.vals[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&vn,
		)
	}
	return n, nil
}

package ordered_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/reoring/ocorren/internal/ordered"
)

func TestMap_KeepsInsertionOrder(t *testing.T) {
	var m ordered.Map[int]
	m.Set("z", 1)
	m.Set("a", 2)
	m.Set("m", 3)
	m.Set("z", 4) // overwrite keeps position

	want := []ordered.Entry[int]{{Key: "z", Value: 4}, {Key: "a", Value: 2}, {Key: "m", Value: 3}}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if v, ok := m.Get("a"); !ok || v != 2 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatalf("expected missing key to be absent")
	}
}

func TestMap_RangeStops(t *testing.T) {
	var m ordered.Map[string]
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("c", "3")
	var seen []string
	m.Range(func(k, _ string) bool {
		seen = append(seen, k)
		return k != "b"
	})
	if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
		t.Fatalf("range mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_MarshalJSON(t *testing.T) {
	var inner ordered.Map[string]
	inner.Set("NAME", "ACME")
	inner.Set("CODE", "01")
	var outer ordered.Map[[]ordered.Map[string]]
	outer.Set("342", []ordered.Map[string]{inner})
	outer.Set("000", nil)

	b, err := outer.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"342":[{"NAME":"ACME","CODE":"01"}],"000":null}`
	if string(b) != want {
		t.Fatalf("got %s want %s", b, want)
	}

	var empty ordered.Map[string]
	b, _ = empty.MarshalJSON()
	if string(b) != "{}" {
		t.Fatalf("empty map rendered as %s", b)
	}
}

func TestMap_MarshalYAML(t *testing.T) {
	var m ordered.Map[string]
	m.Set("b", "2")
	m.Set("a", "1")
	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	if strings.Index(s, "b:") > strings.Index(s, "a:") {
		t.Fatalf("expected b before a, got:\n%s", s)
	}
}

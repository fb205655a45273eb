package ocorren_test

import (
	"os"
	"strings"
	"testing"

	"github.com/reoring/ocorren"
)

// exampleLayout is the two-field layout used across the row tests.
const exampleLayout = `{"001": {
	"COD":  {"position": 1, "length": 3, "mandatory": true,  "alphanumeric": false},
	"NOME": {"position": 4, "length": 5, "mandatory": false, "alphanumeric": true}
}}`

func mustLoadJSON(t *testing.T, doc string) *ocorren.LayoutRegistry {
	t.Helper()
	reg, err := ocorren.LoadJSON([]byte(doc))
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	return reg
}

// pairs flattens fields into "NAME=value" strings for comparison.
func pairs(f ocorren.Fields) []string {
	out := make([]string, 0, f.Len())
	f.Range(func(k, v string) bool {
		out = append(out, k+"="+v)
		return true
	})
	return out
}

func codes(iss ocorren.Issues) []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Locator+" "+it.Code)
	}
	return out
}

func readFixture(t *testing.T, name string) []string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	lines, err := ocorren.ReadLines(strings.NewReader(string(data)), "")
	if err != nil {
		t.Fatalf("split fixture: %v", err)
	}
	return lines
}

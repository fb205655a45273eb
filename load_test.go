package ocorren_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/ocorren"
)

func TestLoadJSON_KeepsDeclarationOrder(t *testing.T) {
	reg := mustLoadJSON(t, `{
		"342": {"Z": {"position": 5, "length": 1}, "A": {"position": 4, "length": 1, "mandatory": true}},
		"000": {"RECORD_ID": {"position": 1, "length": 3, "alphanumeric": true}}
	}`)
	if diff := cmp.Diff([]string{"342", "000"}, reg.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	s, _ := reg.Lookup("342")
	want := []ocorren.FieldSchema{
		{Name: "Z", Position: 5, Length: 1},
		{Name: "A", Position: 4, Length: 1, Mandatory: true},
	}
	if diff := cmp.Diff(want, s.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML_MatchesJSON(t *testing.T) {
	y := `
"001":
  COD: {position: 1, length: 3, mandatory: true, alphanumeric: false}
  NOME: {position: 4, length: 5, mandatory: false, alphanumeric: true}
`
	fromYAML, err := ocorren.LoadYAML([]byte(y))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	fromJSON := mustLoadJSON(t, exampleLayout)
	a, _ := fromYAML.Lookup("001")
	b, _ := fromJSON.Lookup("001")
	if diff := cmp.Diff(b, a); diff != "" {
		t.Fatalf("yaml and json differ (-json +yaml):\n%s", diff)
	}
}

func TestLoad_NoSemanticValidation(t *testing.T) {
	// bad positions, lengths and tags are reported by the row decoder, not here
	reg := mustLoadJSON(t, `{"1": {"X": {"position": 0, "length": -4}}, "0001": {}}`)
	s, ok := reg.Lookup("1")
	if !ok || s.Fields[0].Position != 0 || s.Fields[0].Length != -4 {
		t.Fatalf("unexpected schema: %+v", s)
	}
}

func TestLoad_MissingAttributesDefault(t *testing.T) {
	reg := mustLoadJSON(t, `{"001": {"X": {}}}`)
	s, _ := reg.Lookup("001")
	if diff := cmp.Diff([]ocorren.FieldSchema{{Name: "X"}}, s.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsMalformedShapes(t *testing.T) {
	cases := map[string]string{
		"root array":       `[]`,
		"record not obj":   `{"001": 5}`,
		"field not obj":    `{"001": {"A": "x"}}`,
		"position string":  `{"001": {"A": {"position": "1"}}}`,
		"length float":     `{"001": {"A": {"length": 1.5}}}`,
		"mandatory number": `{"001": {"A": {"mandatory": 1}}}`,
		"unknown attr":     `{"001": {"A": {"width": 3}}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ocorren.LoadJSON([]byte(doc))
			var le *ocorren.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected LoadError, got %v", err)
			}
			if !errors.Is(err, ocorren.ErrMalformedLayout) {
				t.Fatalf("expected ErrMalformedLayout, got %v", err)
			}
		})
	}
}

func TestLoad_RejectsSyntaxAndDuplicates(t *testing.T) {
	for name, doc := range map[string]string{
		"truncated":       `{"001": {"A": {"position": 1`,
		"empty":           ``,
		"duplicate field": `{"001": {"A": {"position": 1}, "A": {"position": 2}}}`,
		"duplicate type":  `{"001": {}, "001": {}}`,
		"trailing":        `{} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			var le *ocorren.LoadError
			if _, err := ocorren.LoadJSON([]byte(doc)); !errors.As(err, &le) {
				t.Fatalf("expected LoadError, got %v", err)
			}
		})
	}
	_, err := ocorren.LoadYAML([]byte("\"001\":\n  A: {position: 1}\n  A: {position: 2}\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected yaml duplicate error, got %v", err)
	}

	for name, doc := range map[string]string{
		"recursive alias": "\"001\": &r\n  F: *r\n",
		"alias bomb":      aliasBomb(7),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ocorren.LoadYAML([]byte(doc))
			var le *ocorren.LoadError
			if !errors.As(err, &le) || !errors.Is(err, ocorren.ErrMalformedLayout) {
				t.Fatalf("expected malformed LoadError, got %v", err)
			}
		})
	}
}

// aliasBomb nests levels of ten aliases, each expanding the previous level.
func aliasBomb(levels int) string {
	var b strings.Builder
	b.WriteString("\"000\": &l0 {F: {position: 1, length: 1}}\n")
	for i := 1; i <= levels; i++ {
		fmt.Fprintf(&b, "L%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	return b.String()
}

func TestLoadFile_ByExtensionAndMissing(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "layout.yml")
	if err := os.WriteFile(yml, []byte("\"001\":\n  COD: {position: 1, length: 3}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := ocorren.LoadFile(yml)
	if err != nil {
		t.Fatalf("load yml: %v", err)
	}
	if reg.Name() != yml {
		t.Fatalf("name = %q", reg.Name())
	}

	_, err = ocorren.LoadFile(filepath.Join(dir, "nope.json"))
	if !errors.Is(err, ocorren.ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound, got %v", err)
	}
	var le *ocorren.LoadError
	if !errors.As(err, &le) || !strings.HasSuffix(le.Source, "nope.json") {
		t.Fatalf("expected LoadError naming the source, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"layouts/a.json": {Data: []byte(exampleLayout)}}
	reg, err := ocorren.LoadFS(fsys, "layouts/a.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := reg.Lookup("001"); !ok {
		t.Fatalf("expected 001 schema")
	}
	if _, err := ocorren.LoadFS(fsys, "layouts/b.json"); !errors.Is(err, ocorren.ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound, got %v", err)
	}
}

func TestLoad_Reader(t *testing.T) {
	if _, err := ocorren.Load(strings.NewReader(exampleLayout), ocorren.FormatJSON); err != nil {
		t.Fatalf("load: %v", err)
	}
	if ocorren.FormatOf("x.YAML") != ocorren.FormatYAML || ocorren.FormatOf("x.txt") != ocorren.FormatJSON {
		t.Fatalf("unexpected FormatOf results")
	}
}

func TestLoadVersion_Embedded(t *testing.T) {
	for _, v := range ocorren.Versions() {
		reg, err := ocorren.LoadVersion(v)
		if err != nil {
			t.Fatalf("load %v: %v", v, err)
		}
		if diff := cmp.Diff(v.RequiredRecordTypes(), reg.Tags()); diff != "" {
			t.Fatalf("%v tags mismatch (-want +got):\n%s", v, diff)
		}
		if reg.Name() != "ocorren-"+v.String() {
			t.Fatalf("name = %q", reg.Name())
		}
	}
	s, _ := mustVersion(t, ocorren.Version31).Lookup("342")
	if got := s.MinLength(); got != 114 {
		t.Fatalf("3.1 342 MinLength = %d, want 114", got)
	}
	if _, err := ocorren.LoadVersion(ocorren.VersionAuto); !errors.Is(err, ocorren.ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
}

func mustVersion(t *testing.T, v ocorren.LayoutVersion) *ocorren.LayoutRegistry {
	t.Helper()
	reg, err := ocorren.LoadVersion(v)
	if err != nil {
		t.Fatalf("load %v: %v", v, err)
	}
	return reg
}

func TestParseVersion(t *testing.T) {
	for in, want := range map[string]ocorren.LayoutVersion{
		"": ocorren.VersionAuto, "auto": ocorren.VersionAuto,
		"3.1": ocorren.Version31, "v31": ocorren.Version31, "OCORREN-5.0": ocorren.Version50, "50": ocorren.Version50,
	} {
		got, err := ocorren.ParseVersion(in)
		if err != nil || got != want {
			t.Fatalf("ParseVersion(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ocorren.ParseVersion("4.0"); !errors.Is(err, ocorren.ErrUnknownVersion) {
		t.Fatalf("expected ErrUnknownVersion, got %v", err)
	}
}

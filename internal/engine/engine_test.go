package engine_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	eng "github.com/reoring/ocorren/internal/engine"
)

// sliceSource replays a fixed token list.
type sliceSource struct {
	toks []eng.Token
	i    int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.i >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return -1 }

func key(k string) eng.Token { return eng.Token{Kind: eng.KindKey, String: k} }
func num(n string) eng.Token { return eng.Token{Kind: eng.KindNumber, Number: n} }

var (
	begin = eng.Token{Kind: eng.KindBeginObject}
	end   = eng.Token{Kind: eng.KindEndObject}
)

func TestDecodeDocument_KeepsKeyOrder(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{
		begin,
		key("b"), num("2"),
		key("a"), {Kind: eng.KindBeginArray}, {Kind: eng.KindBool, Bool: true}, {Kind: eng.KindNull}, {Kind: eng.KindEndArray},
		key("c"), {Kind: eng.KindString, String: "x"},
		end,
	}}
	v, err := eng.DecodeDocument(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := eng.Object{
		{Key: "b", Value: eng.Number("2")},
		{Key: "a", Value: []any{true, nil}},
		{Key: "c", Value: "x"},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDocument_DuplicateKey(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{
		begin,
		key("000"), begin, key("A"), num("1"), key("A"), num("2"), end,
		end,
	}}
	_, err := eng.DecodeDocument(src)
	var ie eng.IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "/000/A" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestDecodeDocument_Truncated(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{begin, key("a")}}
	if _, err := eng.DecodeDocument(src); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
	if _, err := eng.DecodeDocument(&sliceSource{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF on empty input, got %v", err)
	}
}

func TestDecodeDocument_TrailingData(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{begin, end, begin, end}}
	if _, err := eng.DecodeDocument(src); !errors.Is(err, eng.ErrTrailingData) {
		t.Fatalf("expected trailing data error, got %v", err)
	}
}

func TestJoinPath_Escapes(t *testing.T) {
	if got := eng.JoinPath("/x", "a/b~c"); got != "/x/a~1b~0c" {
		t.Fatalf("got %q", got)
	}
}

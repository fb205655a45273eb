// Package engine turns a stream of document tokens into a value tree whose
// objects keep their key order. Layout documents depend on that order: field
// declaration order drives both output order and minimum-length computation.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Number keeps the literal text of a numeric token.
type Number string

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a decoded object in document order.
type Object []Member

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ErrTrailingData reports content after the first complete document.
var ErrTrailingData = errors.New("unexpected data after document")

// DecodeDocument reads exactly one value from src. Objects become Object,
// arrays []any, numbers Number. Duplicate keys inside one object are errors.
func DecodeDocument(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := decodeValue(src, tok, "")
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err == nil {
		return nil, ErrTrailingData
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}

func decodeValue(src TokenSource, tok Token, path string) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, path)
	case KindBeginArray:
		return decodeArray(src, path)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource, path string) (Object, error) {
	obj := Object{}
	seen := make(map[string]struct{})
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndObject {
			return obj, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		child := JoinPath(path, tok.String)
		if _, dup := seen[tok.String]; dup {
			return nil, IssueError{SimpleIssue{Code: "duplicate_key", Path: child, Message: fmt.Sprintf("duplicate key %q", tok.String)}}
		}
		seen[tok.String] = struct{}{}
		vt, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		v, err := decodeValue(src, vt, child)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: tok.String, Value: v})
	}
}

func decodeArray(src TokenSource, path string) ([]any, error) {
	arr := []any{}
	for i := 0; ; i++ {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// JoinPath appends an escaped JSON Pointer segment to path.
func JoinPath(path, key string) string {
	esc := strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
	return path + "/" + esc
}

// TypeName names the dynamic type of a decoded value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

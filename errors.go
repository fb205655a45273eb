package ocorren

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/ocorren/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Structural: the whole row is rejected.
	CodeLineTooShort      = "line_too_short"
	CodeUnknownRecordType = "unknown_record_type"
	CodeRecordTooShort    = "record_too_short"
	// Field level: only the field is rejected.
	CodeInvalidPosition = "invalid_position"
	CodeNotAlphanumeric = "not_alphanumeric"
	CodeNotNumeric      = "not_numeric"
	CodeMandatoryEmpty  = "mandatory_empty"
)

var (
	// ErrLayoutNotFound is wrapped by LoadError when the layout source does not exist.
	ErrLayoutNotFound = errors.New("layout source not found")
	// ErrUnrecognizedLayout is matched by every DetectionError.
	ErrUnrecognizedLayout = errors.New("unrecognized layout")
	// ErrUnknownVersion is returned for layout version names that are not registered.
	ErrUnknownVersion = errors.New("unknown layout version")
	// ErrInvalidEncoding reports input bytes that are not valid in the selected charset.
	ErrInvalidEncoding = errors.New("invalid character encoding")
)

// Issue represents a single row or field violation.
type Issue struct {
	Locator string // LINE_<n> or LINE_<n> > <field>
	Code    string // One of the codes listed above.
	Message string
	Line    int    // 1-based line number.
	Field   string // Empty for structural issues.
	// Params carries the values interpolated into Message.
	Params map[string]any
}

// Structural reports whether the issue rejected the whole row.
func (it Issue) Structural() bool { return it.Field == "" }

// Issues lists row and field issues in file order. It implements error.
type Issues []Issue

// maxIssuesInError bounds how many issues Issues.Error spells out.
const maxIssuesInError = 3

// Error lists the first issues as "locator: message" followed by the total
// count when some are left out.
func (iss Issues) Error() string {
	parts := make([]string, 0, maxIssuesInError+1)
	for i, it := range iss {
		if i == maxIssuesInError {
			parts = append(parts, fmt.Sprintf("and %d more", len(iss)-i))
			break
		}
		msg := it.Message
		if msg == "" {
			msg = it.Code
		}
		parts = append(parts, it.Locator+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// AppendIssues adds more to dst. The result is never nil.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = make(Issues, 0, len(more))
	}
	return append(dst, more...)
}

// AsIssues returns the issues carried by err, typically a *DecodeError.
func AsIssues(err error) (Issues, bool) {
	var iss Issues
	if err == nil || !errors.As(err, &iss) {
		return nil, false
	}
	return iss, true
}

// DecodeError is the single failure returned when any line of a file had an
// issue. It carries every issue found; no decoded rows accompany it.
type DecodeError struct {
	Issues  Issues
	summary string
}

func newDecodeError(iss Issues, tr i18n.Translator) *DecodeError {
	return &DecodeError{Issues: iss, summary: tr.Message(i18n.Summary, nil)}
}

// Causes groups issue messages by locator in the order they were reported.
func (e *DecodeError) Causes() *Causes {
	c := &Causes{}
	for _, it := range e.Issues {
		prev, _ := c.Get(it.Locator)
		c.Set(it.Locator, append(prev, it.Message))
	}
	return c
}

// JSON renders Causes as a JSON object. It returns "{}" if encoding fails.
func (e *DecodeError) JSON() string {
	b, err := json.MarshalNoEscape(e.Causes())
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (e *DecodeError) Error() string {
	summary := e.summary
	if summary == "" {
		summary = i18n.Default().Message(i18n.Summary, nil)
	}
	b := &strings.Builder{}
	b.WriteString(summary)
	i := 0
	e.Causes().Range(func(loc string, msgs []string) bool {
		if i > 0 {
			b.WriteString(", ")
		}
		i++
		b.WriteString(loc)
		b.WriteString(": ")
		b.WriteString(strings.Join(msgs, "; "))
		return true
	})
	return b.String()
}

// Unwrap exposes the issue list to errors.As.
func (e *DecodeError) Unwrap() error { return e.Issues }

// LoadError reports a layout source that is missing, unreadable or not shaped
// as record type -> field name -> attributes.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load layout %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DetectionError reports that no known layout version's required record
// types are all present. Observed is sorted.
type DetectionError struct {
	Observed []string
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("%v, record types found: [%s]", ErrUnrecognizedLayout, strings.Join(e.Observed, " "))
}

func (e *DetectionError) Is(target error) bool { return target == ErrUnrecognizedLayout }

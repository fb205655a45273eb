package ocorren

import (
	"strings"
	"unicode"

	"github.com/reoring/ocorren/i18n"
)

// DecodeRow decodes one line (lineNo is 1-based) against reg.
//
// The two results are independent: ok reports whether the row could be
// resolved at all, and issues lists every problem found. A row rejected
// structurally (short line, unknown type, below minimum length) has ok ==
// false and no fields. A resolved row keeps the fields that passed and
// omits the ones reported in issues.
func DecodeRow(reg *LayoutRegistry, lineNo int, line string, opts ...DecodeOpt) (DecodedRow, bool, Issues) {
	rd := rowDecoder{reg: reg, tr: lastOpt(opts).translator()}
	return rd.decode(lineNo, line)
}

type rowDecoder struct {
	reg *LayoutRegistry
	tr  i18n.Translator
}

func (rd rowDecoder) decode(lineNo int, line string) (DecodedRow, bool, Issues) {
	tag, ok := recordTag(line)
	if !ok {
		return DecodedRow{}, false, Issues{IssueAt(rd.tr, lineNo, "", CodeLineTooShort, nil)}
	}
	schema, ok := rd.reg.Lookup(tag)
	if !ok {
		return DecodedRow{}, false, Issues{IssueAt(rd.tr, lineNo, "", CodeUnknownRecordType, map[string]any{"type": tag})}
	}

	cols := []rune(line)
	if need := schema.MinLength(); len(cols) < need {
		return DecodedRow{}, false, Issues{IssueAt(rd.tr, lineNo, "", CodeRecordTooShort, map[string]any{"type": tag, "expected": need})}
	}

	row := DecodedRow{Line: lineNo, RecordType: tag}
	var iss Issues
	for _, f := range schema.Fields {
		value, code, params := checkField(f, cols)
		if code != "" {
			iss = AppendIssues(iss, IssueAt(rd.tr, lineNo, f.Name, code, params))
			continue
		}
		row.Fields.Set(f.Name, value)
	}
	return row, true, iss
}

// checkField extracts f from cols and returns its trimmed value, or the code
// of the first rule it breaks.
func checkField(f FieldSchema, cols []rune) (string, string, map[string]any) {
	if f.Position <= 0 {
		return "", CodeInvalidPosition, map[string]any{"position": f.Position}
	}
	value := trim(extract(cols, f.Position-1, f.Length))
	if value != "" {
		if f.Alphanumeric && !isAlphanumeric(value) && !(f.IsFiller() && isBlank(value)) {
			return "", CodeNotAlphanumeric, nil
		}
		if !f.Alphanumeric && !isDigits(value) {
			return "", CodeNotNumeric, nil
		}
	}
	if f.Mandatory && value == "" {
		return "", CodeMandatoryEmpty, nil
	}
	return value, "", nil
}

// extract returns cols[start:start+length] clamped to the line.
func extract(cols []rune, start, length int) string {
	if start >= len(cols) || length <= 0 {
		return ""
	}
	end := len(cols)
	if length < end-start {
		end = start + length
	}
	return string(cols[start:end])
}

// trim drops leading and trailing control characters and spaces.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// isBlank reports whether s holds only whitespace: ASCII control blanks
// \t-\r and \x1c-\x1f, plus Unicode space and line/paragraph separators
// other than the non-breaking ones (U+00A0, U+2007, U+202F). U+0085 is not
// whitespace.
func isBlank(s string) bool {
	for _, r := range s {
		switch {
		case r >= '\t' && r <= '\r', r >= 0x1c && r <= 0x1f:
		case r == 0x00a0, r == 0x2007, r == 0x202f:
			return false
		case unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp):
		default:
			return false
		}
	}
	return true
}

// isAlphanumeric accepts letters, digits, ASCII whitespace and . , ; :
func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r):
		case r == ' ', r == '\t', r == '\n', r == '\v', r == '\f', r == '\r':
		case r == '.', r == ',', r == ';', r == ':':
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

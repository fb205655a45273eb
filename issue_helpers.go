package ocorren

import (
	"fmt"
	"strconv"

	"github.com/reoring/ocorren/i18n"
)

// LineLocator returns the locator of a structural issue on line n.
func LineLocator(n int) string { return "LINE_" + strconv.Itoa(n) }

// FieldLocator returns the locator of a field issue on line n.
func FieldLocator(n int, field string) string { return LineLocator(n) + " > " + field }

// IssueAt creates an Issue for line n (and field, when non-empty) with the
// message resolved through tr.
func IssueAt(tr i18n.Translator, n int, field, code string, params map[string]any) Issue {
	loc := LineLocator(n)
	if field != "" {
		loc = FieldLocator(n, field)
	}
	var data map[string]string
	if len(params) > 0 {
		data = make(map[string]string, len(params))
		for k, v := range params {
			data[k] = fmt.Sprint(v)
		}
	}
	return Issue{Locator: loc, Code: code, Message: tr.Message(code, data), Line: n, Field: field, Params: params}
}

package i18n

import (
	"sort"
	"strings"
)

// Translator retrieves localized messages for issue codes.
// data fills {placeholders} in the message (for example "type" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Summary is the pseudo-code for the aggregated failure headline.
const Summary = "summary"

var catalogs = map[string]map[string]string{
	"en": {
		Summary:               "invalid fields with the following causes: ",
		"line_too_short":      "too short to contain a record type",
		"unknown_record_type": "unknown record type: {type}",
		"record_too_short":    "too short for record type {type}: expected at least {expected} characters",
		"invalid_position":    "invalid position: {position}",
		"not_alphanumeric":    "must contain only alphanumeric characters",
		"not_numeric":         "must be numeric",
		"mandatory_empty":     "mandatory field is empty",
	},
	"pt": {
		Summary:               "Campos inválidos com as seguintes causas: ",
		"line_too_short":      "Muito curta para conter um tipo de registro",
		"unknown_record_type": "Tipo de registro desconhecido: {type}",
		"record_too_short":    "Muito curta para tipo {type}: esperado no mínimo {expected} caracteres",
		"invalid_position":    "Posição inválida: {position}",
		"not_alphanumeric":    "Deve conter apenas caracteres alfanuméricos",
		"not_numeric":         "Deve ser numérico",
		"mandatory_empty":     "Campo obrigatório está vazio",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := catalogs[t.lang][code]
	if !ok {
		msg, ok = catalogs["en"][code]
	}
	if !ok {
		return code
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// For returns the built-in Translator for lang. Unknown languages fall back
// to English; "pt-BR" style tags match on the base language.
func For(lang string) Translator {
	base := strings.ToLower(lang)
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	if _, ok := catalogs[base]; !ok {
		base = "en"
	}
	return dictTranslator{lang: base}
}

// Default is the English Translator.
func Default() Translator { return dictTranslator{lang: "en"} }

// Languages lists the built-in catalog languages.
func Languages() []string {
	out := make([]string, 0, len(catalogs))
	for l := range catalogs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

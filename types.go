package ocorren

import (
	"go.uber.org/zap"

	"github.com/reoring/ocorren/i18n"
	"github.com/reoring/ocorren/internal/ordered"
	"github.com/reoring/ocorren/metrics"
)

// Fields maps field names to trimmed values in schema declaration order.
type Fields = ordered.Map[string]

// Causes maps locators to issue messages in the order they were reported.
type Causes = ordered.Map[[]string]

// Records maps record types to their rows' fields in first-seen order.
type Records = ordered.Map[[]Fields]

// DecodedRow is one successfully resolved line. Fields that failed
// validation are absent.
type DecodedRow struct {
	Line       int
	RecordType string
	Fields     Fields
}

// DecodeOpt bundles decoding options. When several are passed the last one wins.
type DecodeOpt struct {
	// Layout selects an explicit registry and skips detection.
	Layout *LayoutRegistry
	// Version selects an embedded layout; VersionAuto detects it from the file.
	Version LayoutVersion
	// Language selects the cause message catalog ("en", "pt"). Default "en".
	Language string
	// Charset is used by DecodeReader/DecodeFile ("utf-8", "latin1", "windows-1252").
	Charset string
	// Logger receives debug traces; nil disables logging.
	Logger *zap.Logger
	// Metrics counts files, lines and issues; nil disables it.
	Metrics *metrics.Recorder
}

func lastOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return DecodeOpt{}
}

func (o DecodeOpt) translator() i18n.Translator {
	if o.Language == "" {
		return i18n.Default()
	}
	return i18n.For(o.Language)
}

func (o DecodeOpt) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

package ocorren

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// DecodeRows resolves the layout for lines and decodes every line.
//
// Every structural and field issue of the whole file is collected before the
// result is decided: if there is at least one, a *DecodeError carrying all of
// them is returned and no rows are. Layout load and detection failures are
// returned as soon as they happen.
func DecodeRows(lines []string, opts ...DecodeOpt) ([]DecodedRow, error) {
	opt := lastOpt(opts)
	log := opt.logger()
	start := time.Now()

	reg, err := resolveLayout(lines, opt, log)
	if err != nil {
		opt.Metrics.ObserveFailure()
		return nil, err
	}

	rd := rowDecoder{reg: reg, tr: opt.translator()}
	rows := make([]DecodedRow, 0, len(lines))
	var iss Issues
	for i, line := range lines {
		row, ok, rowIssues := rd.decode(i+1, line)
		iss = append(iss, rowIssues...)
		if ok {
			rows = append(rows, row)
		}
	}

	codes := make([]string, len(iss))
	for i, it := range iss {
		codes[i] = it.Code
	}
	opt.Metrics.ObserveFile(reg.Name(), len(lines), codes, time.Since(start))

	log.Debug("decoded file",
		zap.String("layout", reg.Name()),
		zap.String("fingerprint", reg.Fingerprint()),
		zap.Int("lines", len(lines)),
		zap.Int("rows", len(rows)),
		zap.Int("issues", len(iss)),
	)
	if len(iss) > 0 {
		log.Info("file rejected", zap.String("layout", reg.Name()), zap.Int("issues", len(iss)))
		return nil, newDecodeError(iss, rd.tr)
	}
	return rows, nil
}

// Decode decodes lines and groups the rows by record type.
func Decode(lines []string, opts ...DecodeOpt) (*Records, error) {
	rows, err := DecodeRows(lines, opts...)
	if err != nil {
		return nil, err
	}
	return Group(rows), nil
}

// DecodeReader reads lines from r using the option's charset and decodes them.
func DecodeReader(r io.Reader, opts ...DecodeOpt) (*Records, error) {
	lines, err := ReadLines(r, lastOpt(opts).Charset)
	if err != nil {
		return nil, err
	}
	return Decode(lines, opts...)
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string, opts ...DecodeOpt) (*Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeReader(f, opts...)
}

// resolveLayout applies the option precedence: explicit registry, explicit
// version, then detection.
func resolveLayout(lines []string, opt DecodeOpt, log *zap.Logger) (*LayoutRegistry, error) {
	if opt.Layout != nil {
		log.Debug("using supplied layout", zap.String("layout", opt.Layout.Name()))
		return opt.Layout, nil
	}
	v := opt.Version
	if v == VersionAuto {
		detected, err := DetectLayout(lines)
		if err != nil {
			return nil, err
		}
		log.Debug("detected layout", zap.Stringer("version", detected))
		v = detected
	}
	return LoadVersion(v)
}

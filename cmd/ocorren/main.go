package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/ocorren"
	"github.com/reoring/ocorren/metrics"
	"github.com/reoring/ocorren/render"
)

// exit codes
const (
	exitOK      = 0
	exitInvalid = 1 // the file was read but has issues
	exitUsage   = 2
	exitFailure = 3 // layout, detection or I/O failure
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "decode":
		return decodeCmd(args[1:], stdout, stderr)
	case "detect":
		return detectCmd(args[1:], stdout, stderr)
	case "layouts":
		return layoutsCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "ocorren CLI\n\nUsage:\n  ocorren decode [-layout file | -version auto|3.1|5.0] [-format json|yaml] [-lang en|pt] [-charset utf-8|latin1|windows-1252] [-o out] [-metrics-file prom] [-v] FILE\n  ocorren detect [-charset ...] FILE\n  ocorren layouts [-dump 3.1|5.0]")
}

func decodeCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var layoutPath, version, format, lang, charset, out, metricsFile string
	var verbose bool
	fs.StringVar(&layoutPath, "layout", "", "layout file (.json, .yaml); overrides -version")
	fs.StringVar(&version, "version", "auto", "embedded layout version")
	fs.StringVar(&format, "format", "json", "output format")
	fs.StringVar(&lang, "lang", "en", "language of error causes")
	fs.StringVar(&charset, "charset", "utf-8", "input charset")
	fs.StringVar(&out, "o", "", "output file (default stdout)")
	fs.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	outFormat, err := render.ParseFormat(format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	v, err := ocorren.ParseVersion(version)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := newLogger(stderr, verbose).With(zap.String("run_id", uuid.NewString()))
	defer func() { _ = logger.Sync() }()

	opt := ocorren.DecodeOpt{Version: v, Language: lang, Charset: charset, Logger: logger}
	if metricsFile != "" {
		reg := prometheus.NewRegistry()
		opt.Metrics = metrics.New(reg)
		defer func() {
			if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
				logger.Error("write metrics", zap.String("file", metricsFile), zap.Error(err))
			}
		}()
	}
	if layoutPath != "" {
		reg, err := ocorren.LoadFile(layoutPath)
		if err != nil {
			logger.Error("layout load failed", zap.Error(err))
			return exitFailure
		}
		opt.Layout = reg
	}

	path := fs.Arg(0)
	recs, err := ocorren.DecodeFile(path, opt)
	if err != nil {
		var de *ocorren.DecodeError
		if errors.As(err, &de) {
			logger.Warn("file has invalid fields", zap.String("file", path), zap.Int("issues", len(de.Issues)))
			if werr := render.Write(stderr, outFormat, de.Causes()); werr != nil {
				logger.Error("render failed", zap.Error(werr))
			}
			return exitInvalid
		}
		logger.Error("decode failed", zap.String("file", path), zap.Error(err))
		return exitFailure
	}

	if err := writeOutput(stdout, out, outFormat, recs); err != nil {
		logger.Error("write output", zap.String("file", out), zap.Error(err))
		return exitFailure
	}
	logger.Debug("decoded", zap.String("file", path), zap.Int("record_types", recs.Len()))
	return exitOK
}

// writeOutput renders v to path, or to stdout when path is empty. The file's
// close error is returned.
func writeOutput(stdout io.Writer, path string, f render.Format, v any) error {
	if path == "" {
		return render.Write(stdout, f, v)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Write(file, f, v); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func detectCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var charset string
	fs.StringVar(&charset, "charset", "utf-8", "input charset")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	defer f.Close()
	lines, err := ocorren.ReadLines(f, charset)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	v, err := ocorren.DetectLayout(lines)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInvalid
	}
	fmt.Fprintln(stdout, v)
	return exitOK
}

func layoutsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("layouts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var dump string
	fs.StringVar(&dump, "dump", "", "print the embedded layout document of a version")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if dump != "" {
		v, err := ocorren.ParseVersion(dump)
		if err != nil || v == ocorren.VersionAuto {
			fmt.Fprintf(stderr, "unknown version %q\n", dump)
			return exitUsage
		}
		doc, err := ocorren.LayoutDocument(v)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
		_, _ = stdout.Write(doc)
		return exitOK
	}
	for _, v := range ocorren.Versions() {
		reg, err := ocorren.LoadVersion(v)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", v, reg.Fingerprint(), strings.Join(v.RequiredRecordTypes(), " "))
	}
	return exitOK
}

// newLogger builds a logger on w. LOG_LEVEL (debug, info, warn, error) sets
// the level, -v forces debug; LOG_FORMAT=json switches to the JSON encoder.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if l, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		level = l
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	var enc zapcore.Encoder
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		enc = zapcore.NewConsoleEncoder(encoderConfig)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).Named("ocorren")
}

// Package metrics counts decoded files, lines and issues with Prometheus
// collectors. A nil *Recorder records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "ocorren"
	subsystem = "decoder"
)

// File results.
const (
	ResultOK       = "ok"       // decoded without issues
	ResultRejected = "rejected" // at least one row or field issue
	ResultFailed   = "failed"   // layout could not be resolved
)

// Recorder holds the decoder collectors of one registry.
type Recorder struct {
	files    *prometheus.CounterVec
	lines    *prometheus.CounterVec
	issues   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the decoder collectors on reg. It panics if they are already
// registered there, like promauto.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		files: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "files_total",
				Help:      "Total number of decoded files by layout and result",
			},
			[]string{"layout", "result"},
		),
		lines: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "lines_total",
				Help:      "Total number of lines read by layout",
			},
			[]string{"layout"},
		),
		issues: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "issues_total",
				Help:      "Total number of row and field issues by layout and code",
			},
			[]string{"layout", "code"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "decode_duration_seconds",
				Help:      "Time taken to decode one file in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"layout"},
		),
	}
}

// ObserveFile records one file that reached the row decoder. codes holds the
// code of every issue found, repeated per occurrence.
func (r *Recorder) ObserveFile(layout string, lines int, codes []string, took time.Duration) {
	if r == nil {
		return
	}
	result := ResultOK
	if len(codes) > 0 {
		result = ResultRejected
	}
	r.files.WithLabelValues(layout, result).Inc()
	r.lines.WithLabelValues(layout).Add(float64(lines))
	for _, c := range codes {
		r.issues.WithLabelValues(layout, c).Inc()
	}
	r.duration.WithLabelValues(layout).Observe(took.Seconds())
}

// ObserveFailure records a file whose layout could not be loaded or detected.
func (r *Recorder) ObserveFailure() {
	if r == nil {
		return
	}
	r.files.WithLabelValues("", ResultFailed).Inc()
}

// Package metrics records batch counters on a private Prometheus registry
// and writes them in the node_exporter textfile format at the end of a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for FilesTotal.
const (
	OutcomeOptimized = "optimized"
	OutcomeFailed    = "failed"
	OutcomeDryRun    = "dry_run"
)

// Recorder owns one registry per run. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	reg *prometheus.Registry

	files    *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	duration prometheus.Histogram
	lastRun  prometheus.Gauge
	savings  prometheus.Gauge
}

// New registers the imgopt collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		reg: reg,
		files: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imgopt_files_total",
			Help: "The total number of source images processed, by outcome",
		}, []string{"outcome"}),
		bytes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imgopt_bytes_total",
			Help: "Bytes read from sources and written per artifact format",
		}, []string{"kind"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "imgopt_file_duration_seconds",
			Help:    "Time taken to optimize one source image",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "imgopt_last_run_timestamp_seconds",
			Help: "Unix time the last batch finished",
		}),
		savings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "imgopt_savings_ratio",
			Help: "Aggregate size reduction of the last batch (0.92 = 92%)",
		}),
	}
}

// ObserveFile counts one file and records how long it took.
func (r *Recorder) ObserveFile(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.files.WithLabelValues(outcome).Inc()
	r.duration.Observe(d.Seconds())
}

// AddBytes adds n to the byte counter for kind ("original", "jpeg", "webp").
func (r *Recorder) AddBytes(kind string, n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.bytes.WithLabelValues(kind).Add(float64(n))
}

// FinishRun stamps the completion time and, when known, the savings ratio.
func (r *Recorder) FinishRun(at time.Time, ratio float64, ok bool) {
	if r == nil {
		return
	}
	r.lastRun.Set(float64(at.Unix()))
	if ok {
		r.savings.Set(ratio)
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteFile atomically writes every collected metric to path.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}

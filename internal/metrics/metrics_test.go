package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()
	r.ObserveFile(OutcomeOptimized, 20*time.Millisecond)
	r.ObserveFile(OutcomeOptimized, 30*time.Millisecond)
	r.ObserveFile(OutcomeFailed, time.Millisecond)
	r.AddBytes("original", 1000)
	r.AddBytes("webp", 120)
	r.AddBytes("webp", 0)

	if got := testutil.ToFloat64(r.files.WithLabelValues(OutcomeOptimized)); got != 2 {
		t.Errorf("optimized = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.files.WithLabelValues(OutcomeFailed)); got != 1 {
		t.Errorf("failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.bytes.WithLabelValues("webp")); got != 120 {
		t.Errorf("webp bytes = %v, want 120", got)
	}
	if n := testutil.CollectAndCount(r.duration); n != 1 {
		t.Errorf("duration collectors = %d, want 1", n)
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveFile(OutcomeFailed, time.Second)
	r.AddBytes("original", 10)
	r.FinishRun(time.Now(), 0.5, true)
	if err := r.WriteFile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("WriteFile on nil recorder: %v", err)
	}
}

func TestRecorder_WriteFile(t *testing.T) {
	r := New()
	r.ObserveFile(OutcomeOptimized, 50*time.Millisecond)
	r.FinishRun(time.Unix(1700000000, 0), 0.92, true)

	path := filepath.Join(t.TempDir(), "imgopt.prom")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`imgopt_files_total{outcome="optimized"} 1`,
		"imgopt_savings_ratio 0.92",
		"imgopt_last_run_timestamp_seconds 1.7e+09",
		"imgopt_file_duration_seconds_count 1",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}

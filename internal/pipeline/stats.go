package pipeline

import (
	"time"

	"github.com/backmassage/imgopt/internal/display"
)

// OptimizationResult describes one successfully optimized source.
type OptimizationResult struct {
	Filename     string
	OriginalSize int64
	JPEGSize     int64
	WebPSize     int64
	Width        int // Output dimensions.
	Height       int
	JPEGPath     string
	WebPPath     string
}

// FileResult is the outcome of OptimizeImage: exactly one of Result or Err
// is set.
type FileResult struct {
	Path     string
	Result   *OptimizationResult
	Err      error
	Stage    string // "read", "decode", "encode", "write"; empty on success.
	DryRun   bool
	Duration time.Duration
}

// OK reports whether the file succeeded.
func (r *FileResult) OK() bool { return r.Err == nil && r.Result != nil }

// AggregateReport holds batch totals. Byte totals cover successful files
// only.
type AggregateReport struct {
	Files     int
	Succeeded int
	Failed    int

	TotalOriginal int64
	TotalJPEG     int64
	TotalWebP     int64

	DryRun bool
}

// TotalOptimized is the modern-format total the summary compares against.
func (a *AggregateReport) TotalOptimized() int64 { return a.TotalWebP }

// Reduction returns 1 - optimized/original; ok is false when nothing was
// measured.
func (a *AggregateReport) Reduction() (float64, bool) {
	return display.Reduction(a.TotalOriginal, a.TotalOptimized())
}

// Summary converts the report into the display block.
func (a *AggregateReport) Summary(outputDir string) display.Summary {
	return display.Summary{
		Succeeded:      a.Succeeded,
		Failed:         a.Failed,
		TotalOriginal:  a.TotalOriginal,
		TotalOptimized: a.TotalOptimized(),
		OutputDir:      outputDir,
		DryRun:         a.DryRun,
	}
}

// Aggregate folds per-file results into totals. Dry-run results count as
// succeeded but contribute no bytes.
func Aggregate(results []FileResult) AggregateReport {
	var a AggregateReport
	for i := range results {
		r := &results[i]
		a.Files++
		if !r.OK() {
			a.Failed++
			continue
		}
		a.Succeeded++
		if r.DryRun {
			a.DryRun = true
			continue
		}
		a.TotalOriginal += r.Result.OriginalSize
		a.TotalJPEG += r.Result.JPEGSize
		a.TotalWebP += r.Result.WebPSize
	}
	return a
}

// report builds the per-file display block.
func (r *OptimizationResult) report() display.FileReport {
	return display.FileReport{
		Name:     r.Filename,
		Original: r.OriginalSize,
		Artifacts: []display.ArtifactLine{
			{Label: "JPEG", Size: r.JPEGSize},
			{Label: "WebP", Size: r.WebPSize},
		},
	}
}

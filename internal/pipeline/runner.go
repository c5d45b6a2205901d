package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backmassage/imgopt/internal/codec"
	"github.com/backmassage/imgopt/internal/config"
	"github.com/backmassage/imgopt/internal/display"
	"github.com/backmassage/imgopt/internal/encode"
	"github.com/backmassage/imgopt/internal/metrics"
	"github.com/backmassage/imgopt/internal/naming"
	"github.com/backmassage/imgopt/internal/planner"
	"github.com/backmassage/imgopt/internal/probe"
)

// ErrNotDirectory is returned when the source path exists but is a file.
var ErrNotDirectory = errors.New("not a directory")

// Deps are the collaborators a batch runs against.
type Deps struct {
	Codec   codec.Codec
	Log     *zap.Logger
	Out     io.Writer         // Report stream. Defaults to os.Stdout.
	Metrics *metrics.Recorder // Optional.
}

// Batch carries the state shared by every file of one run.
type Batch struct {
	cfg      *config.Config
	codec    codec.Codec
	log      *zap.Logger
	metrics  *metrics.Recorder
	resolver *naming.CollisionResolver
	opts     codec.EncodeOptions
}

// NewBatch prepares a run. The logger gains a "run" field so every entry of
// one invocation can be correlated.
func NewBatch(cfg *config.Config, deps Deps) (*Batch, error) {
	opts, err := planner.EncodeOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Batch{
		cfg:      cfg,
		codec:    deps.Codec,
		log:      log.With(zap.String("run", uuid.NewString())),
		metrics:  deps.Metrics,
		resolver: naming.NewCollisionResolver(),
		opts:     opts,
	}, nil
}

// OptimizeDirectory is the top-level batch entry point. It validates the
// source directory, creates the output directory, processes each image
// sequentially, prints the per-file and summary report, and returns the
// aggregate. Per-file failures are folded into the report; only source and
// output directory problems are returned as errors. A cancelled ctx stops
// the batch between files and is returned alongside the partial report.
func OptimizeDirectory(ctx context.Context, cfg *config.Config, deps Deps) (AggregateReport, error) {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	fi, err := os.Stat(cfg.SourceDir)
	if err != nil {
		return AggregateReport{}, fmt.Errorf("source directory %s: %w", cfg.SourceDir, err)
	}
	if !fi.IsDir() {
		return AggregateReport{}, fmt.Errorf("source directory %s: %w", cfg.SourceDir, ErrNotDirectory)
	}

	files, err := Discover(cfg.SourceDir, cfg.OutputSubdir)
	if err != nil {
		return AggregateReport{}, fmt.Errorf("cannot read source directory %s: %w", cfg.SourceDir, err)
	}

	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir(), 0o755); err != nil {
			return AggregateReport{}, fmt.Errorf("cannot create output directory %s: %w", cfg.OutputDir(), err)
		}
	}

	b, err := NewBatch(cfg, deps)
	if err != nil {
		return AggregateReport{}, err
	}
	b.log.Info("batch started",
		zap.Int("files", len(files)),
		zap.String("source", cfg.SourceDir),
		zap.String("output", cfg.OutputDir()),
		zap.Bool("dry_run", cfg.DryRun))
	if len(files) == 0 {
		b.log.Warn("no images found", zap.String("source", cfg.SourceDir))
	}

	results := make([]FileResult, 0, len(files))
	for i, path := range files {
		if ctx.Err() != nil {
			b.log.Warn("interrupted", zap.Int("remaining", len(files)-i))
			break
		}

		r := b.OptimizeImage(ctx, path)
		results = append(results, r)
		if r.OK() && !r.DryRun && cfg.ShowFileStats {
			display.PrintFile(out, r.Result.report())
			fmt.Fprintln(out)
		}
	}

	report := Aggregate(results)
	report.DryRun = cfg.DryRun
	display.PrintSummary(out, report.Summary(cfg.OutputDir()))

	ratio, ok := report.Reduction()
	b.metrics.FinishRun(time.Now(), ratio, ok)
	b.log.Info("batch finished",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Int64("original_bytes", report.TotalOriginal),
		zap.Int64("optimized_bytes", report.TotalOptimized()))

	return report, ctx.Err()
}

// OptimizeImage runs one source through inspect, plan and encode. It never
// returns an error directly: failures are captured in the FileResult and
// logged once at ERROR.
func (b *Batch) OptimizeImage(ctx context.Context, path string) FileResult {
	start := time.Now()
	res := b.optimizeImage(ctx, path)
	res.Duration = time.Since(start)

	switch {
	case res.Err != nil:
		res.Stage = encode.Classify(res.Err)
		b.log.Error("failed to optimize image",
			zap.String("op", "optimize"),
			zap.String("file", filepath.Base(path)),
			zap.String("stage", res.Stage),
			zap.Error(res.Err))
		b.metrics.ObserveFile(metrics.OutcomeFailed, res.Duration)
	case res.DryRun:
		b.metrics.ObserveFile(metrics.OutcomeDryRun, res.Duration)
	default:
		b.metrics.ObserveFile(metrics.OutcomeOptimized, res.Duration)
		b.metrics.AddBytes("original", res.Result.OriginalSize)
		b.metrics.AddBytes("jpeg", res.Result.JPEGSize)
		b.metrics.AddBytes("webp", res.Result.WebPSize)
	}
	return res
}

func (b *Batch) optimizeImage(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}
	name := filepath.Base(path)

	info, err := probe.Inspect(path)
	if err != nil {
		stage := encode.ErrDecode
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			stage = encode.ErrRead
		}
		res.Err = fmt.Errorf("%w: %w", stage, err)
		return res
	}

	base := naming.BaseName(path)
	resolved := b.resolver.Resolve(path, base)
	if resolved != base {
		b.log.Warn("base name already taken, renaming outputs",
			zap.String("file", name),
			zap.String("base", resolved))
	}

	plan := planner.BuildPlan(b.cfg, info, resolved, b.opts)
	b.log.Debug("planned",
		zap.String("file", name),
		zap.String("format", string(info.Format)),
		zap.String("source", info.Resolution()),
		zap.String("target", display.FormatDimensions(plan.Width, plan.Height)),
		zap.Bool("resize", plan.NeedsResize()))

	if b.cfg.DryRun {
		for _, t := range plan.Targets {
			b.log.Info("[dry run] would write",
				zap.String("file", name),
				zap.String("output", t.Path))
		}
		res.DryRun = true
		res.Result = &OptimizationResult{
			Filename:     name,
			OriginalSize: info.Size,
			Width:        plan.Width,
			Height:       plan.Height,
		}
		return res
	}

	artifacts, err := encode.Execute(ctx, b.codec, plan, encode.Options{KeepPartial: b.cfg.KeepPartial})
	if err != nil {
		res.Err = err
		return res
	}

	r := &OptimizationResult{
		Filename:     name,
		OriginalSize: info.Size,
	}
	for _, a := range artifacts {
		r.Width, r.Height = a.Width, a.Height
		switch a.Format {
		case codec.FormatJPEG:
			r.JPEGSize, r.JPEGPath = a.Size, a.Path
		case codec.FormatWebP:
			r.WebPSize, r.WebPPath = a.Size, a.Path
		}
	}
	res.Result = r
	return res
}

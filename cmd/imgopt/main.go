// Command imgopt is the CLI entrypoint for the landing-page image optimizer.
//
// It loads configuration, validates paths, and either runs codec diagnostics
// (--check) or the batch pipeline that writes a JPEG and a WebP for every
// source image.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/backmassage/imgopt/internal/check"
	"github.com/backmassage/imgopt/internal/codec"
	"github.com/backmassage/imgopt/internal/config"
	"github.com/backmassage/imgopt/internal/display"
	"github.com/backmassage/imgopt/internal/logging"
	"github.com/backmassage/imgopt/internal/metrics"
	"github.com/backmassage/imgopt/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// exitInterrupted follows the shell convention for SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "imgopt: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "imgopt: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imgopt: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout, version)
	imgCodec := codec.NewNative(&cfg)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, imgCodec, log.Logger) {
			return 1
		}
		return 0
	}

	// The source must exist; the output must be the configured child of it
	// so discovery never feeds artifacts back into the batch.
	sourceAbs, err := absPath(cfg.SourceDir)
	if err != nil {
		log.Error("source directory not found", zap.String("path", cfg.SourceDir), zap.Error(err))
		return 1
	}
	outputAbs, err := resolveOutput(sourceAbs, cfg.OutputSubdir)
	if err != nil {
		log.Error("cannot resolve output path", zap.String("path", cfg.OutputDir()), zap.Error(err))
		return 1
	}
	if err := cfg.ValidatePaths(sourceAbs, outputAbs); err != nil {
		log.Error("invalid output directory", zap.Error(err))
		return 1
	}

	log.Info("imgopt starting",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("in", cfg.SourceDir),
		zap.String("out", cfg.OutputDir()))
	if cfg.DryRun {
		log.Warn("dry run, no files will be written")
	}

	// Fail fast if an encoder is unusable.
	if err := check.CheckDeps(imgCodec); err != nil {
		log.Error("codec self-test failed", zap.Error(err))
		return 1
	}

	// Phase 3: Signal handling. Cancel on SIGINT/SIGTERM so the pipeline
	// stops between files.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("received interrupt, finishing current file")
		cancel()
	}()

	// Phase 4: Run pipeline (discover, inspect, plan, encode).
	var rec *metrics.Recorder
	if cfg.MetricsFile != "" {
		rec = metrics.New()
	}
	_, err = pipeline.OptimizeDirectory(ctx, &cfg, pipeline.Deps{
		Codec:   imgCodec,
		Log:     log.Logger,
		Out:     os.Stdout,
		Metrics: rec,
	})

	if werr := rec.WriteFile(cfg.MetricsFile); werr != nil {
		log.Warn("cannot write metrics file", zap.String("path", cfg.MetricsFile), zap.Error(werr))
	}

	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case err != nil:
		log.Error("batch aborted", zap.Error(err))
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of source vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolveOutput joins sub onto sourceAbs and, when it already exists,
// resolves symlinks so a linked output directory is caught by ValidatePaths.
func resolveOutput(sourceAbs, sub string) (string, error) {
	out := filepath.Join(sourceAbs, sub)
	if _, err := os.Lstat(out); errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	return filepath.EvalSymlinks(out)
}

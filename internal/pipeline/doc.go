// Package pipeline orchestrates file discovery, per-file optimization, and
// batch summary reporting.
//
// Types:
//   - FileResult / OptimizationResult: outcome of one source image
//   - AggregateReport: totals over a batch, folded by Aggregate
//   - Batch: per-run state (codec, logger, collision resolver, metrics)
//
// Functions:
//   - OptimizeDirectory(ctx, cfg, deps) → AggregateReport
//     Validate source → discover → create output dir → for each file:
//     inspect → resolve base name → plan → encode → report line.
//   - Discover(sourceDir, outputSubdir) → []string
//     Top-level regular files with a .jpg/.jpeg/.png extension, sorted.
//
// A failing file is logged once at ERROR and counted; it never stops the
// batch. Only problems with the source or output directory are returned as
// errors.
package pipeline

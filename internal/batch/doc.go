// Package batch converts every PDF in a directory into an outline file.
//
// Files are processed independently by a bounded worker pool. A failing
// document yields the degraded error result and is reported in the
// summary; only environment failures (reading the input directory,
// creating the output directory, opening the index) stop the run.
//
// Basic usage:
//
//	cfg := batch.DefaultConfig()
//	cfg.InputDir = "/app/input"
//	cfg.OutputDir = "/app/output"
//	summary, err := batch.Run(ctx, cfg)
package batch

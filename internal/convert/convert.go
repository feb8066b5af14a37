// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the conversion driver: it selects between
// single-file and batch mode, walks the batch manifest, and delegates
// each export to a host engine.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/asset-engine/pkg/types"
)

// Exporter is the host export capability: it loads the scene at
// inputPath into a fresh scene slot and serializes it to outputPath.
type Exporter interface {
	Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error
}

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of entries processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// Driver runs conversions through an Exporter, writing progress lines
// to Out.
type Driver struct {
	// Exporter performs the actual scene load and glTF export.
	Exporter Exporter

	// Options is the export configuration passed on every call.
	Options types.ExportOptions

	// Out receives the per-file and completion log lines.
	Out io.Writer

	// Unchanged, when set, is consulted per batch entry; a true result
	// skips the entry. Used for incremental mode.
	Unchanged func(inputPath, outputPath string) bool

	// Verify, when set, runs after each successful export. An error is
	// fatal, same as an export failure.
	Verify func(outputPath string) error
}

// New returns a Driver with the fixed default export options.
func New(e Exporter, out io.Writer) *Driver {
	return &Driver{
		Exporter: e,
		Options:  types.DefaultExportOptions(),
		Out:      out,
	}
}

// Run converts either a single explicit input/output pair (two or more
// args) or the configured batch (fewer than two args). On success it
// prints the completion line; on failure the line is withheld and the
// error propagates.
func (d *Driver) Run(ctx context.Context, args []string, batch types.BatchConfig) (BatchResult, error) {
	var result BatchResult

	if len(args) >= 2 {
		if err := d.ConvertFile(ctx, args[0], args[1]); err != nil {
			result.Failed++
			return result, err
		}
		result.Converted++
	} else {
		var err error
		result, err = d.ConvertBatch(ctx, batch)
		if err != nil {
			return result, err
		}
	}

	fmt.Fprintln(d.Out, "Conversion complete!")
	return result, nil
}

// ConvertFile converts one explicit input/output pair. The input is not
// checked for existence; a missing file surfaces as an export error.
func (d *Driver) ConvertFile(ctx context.Context, inputPath, outputPath string) error {
	if err := d.export(ctx, inputPath, outputPath); err != nil {
		return err
	}
	fmt.Fprintf(d.Out, "Converted %s to %s\n", inputPath, outputPath)
	return nil
}

// ConvertBatch creates the output directory, then converts each
// manifest entry in order. Entries whose input file is missing are
// skipped silently. The first export failure aborts the batch.
func (d *Driver) ConvertBatch(ctx context.Context, cfg types.BatchConfig) (BatchResult, error) {
	var result BatchResult

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	for _, name := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		inputPath := filepath.Join(cfg.SourceDir, name)
		outputName := OutputName(name)
		outputPath := filepath.Join(cfg.OutputDir, outputName)

		// Any stat failure counts as missing: silent skip.
		if _, err := os.Stat(inputPath); err != nil {
			result.Skipped++
			continue
		}

		if d.Unchanged != nil && d.Unchanged(inputPath, outputPath) {
			fmt.Fprintf(d.Out, "skipped: %s (up to date)\n", name)
			result.Skipped++
			continue
		}

		if err := d.export(ctx, inputPath, outputPath); err != nil {
			result.Failed++
			return result, err
		}

		fmt.Fprintf(d.Out, "Converted %s to %s\n", name, outputName)
		result.Converted++
	}

	return result, nil
}

func (d *Driver) export(ctx context.Context, inputPath, outputPath string) error {
	if err := d.Exporter.Export(ctx, inputPath, outputPath, d.Options); err != nil {
		return fmt.Errorf("exporting %s: %w", inputPath, err)
	}
	if d.Verify != nil {
		if err := d.Verify(outputPath); err != nil {
			return fmt.Errorf("verifying %s: %w", outputPath, err)
		}
	}
	return nil
}

// OutputName swaps a scene filename's extension for .glb.
func OutputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".glb"
}

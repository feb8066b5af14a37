// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pdiddy/asset-engine/pkg/types"
)

// Engine is the host export capability the recorder wraps. It matches
// the blender engine surface.
type Engine interface {
	Name() string
	Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error
}

// RecordingEngine decorates an engine so every export attempt, failed
// or not, lands in the catalog. Recording failures are warnings on
// Errs and never mask the export outcome.
type RecordingEngine struct {
	engine Engine
	store  *Store

	// Errs receives recording warnings. Defaults to os.Stderr.
	Errs io.Writer
}

// NewRecording wraps an engine with catalog recording.
func NewRecording(engine Engine, store *Store) *RecordingEngine {
	return &RecordingEngine{engine: engine, store: store, Errs: os.Stderr}
}

func (r *RecordingEngine) Name() string { return r.engine.Name() }

// Export delegates to the wrapped engine, then records the attempt.
func (r *RecordingEngine) Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error {
	start := time.Now()
	exportErr := r.engine.Export(ctx, inputPath, outputPath, opts)

	rec := types.ConversionRecord{
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Engine:      r.engine.Name(),
		Status:      types.StatusConverted,
		DurationMS:  time.Since(start).Milliseconds(),
		ConvertedAt: time.Now().UTC(),
	}
	if exportErr != nil {
		rec.Status = types.StatusFailed
	}
	if info, err := os.Stat(inputPath); err == nil {
		rec.SourceModTime = info.ModTime().UTC()
	}
	if exportErr == nil {
		if info, err := os.Stat(outputPath); err == nil {
			rec.OutputSize = info.Size()
		}
	}

	// The record write must not use the export context: a cancelled
	// export still deserves its failure row.
	if _, err := r.store.Record(context.Background(), rec); err != nil {
		fmt.Fprintf(r.Errs, "warning: recording conversion of %s: %v\n", inputPath, err)
	}

	return exportErr
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of a single export attempt.
type ConversionStatus string

const (
	StatusConverted ConversionStatus = "converted"
	StatusFailed    ConversionStatus = "failed"
)

// ConversionRecord is one catalog row: a single export attempt with its
// provenance and outcome.
type ConversionRecord struct {
	// ID is the catalog row identifier, assigned on insert.
	ID int64 `json:"id" yaml:"id"`

	// InputPath is the source scene file as handed to the engine.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the target file as handed to the engine.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Engine identifies the host capability that ran the export
	// (e.g. "blender", "docker").
	Engine string `json:"engine" yaml:"engine"`

	// Status is the export outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// SourceModTime is the source file's modification time at export
	// time. Zero when the source could not be stat'ed.
	SourceModTime time.Time `json:"source_mod_time" yaml:"source_mod_time"`

	// OutputSize is the produced file's size in bytes. Zero on failure.
	OutputSize int64 `json:"output_size" yaml:"output_size"`

	// DurationMS is the wall-clock export duration in milliseconds.
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`

	// ConvertedAt is when the attempt finished.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

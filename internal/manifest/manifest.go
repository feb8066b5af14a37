// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest defines which scene files a batch conversion covers.
// The built-in default reproduces the original monster-pack batch; a
// YAML manifest file can substitute a different set.
package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/asset-engine/pkg/types"
)

// Default batch constants. These are load-bearing: the no-argument
// invocation converts exactly these files between exactly these
// directories.
const (
	DefaultSourceDir = "assets/monsters/Animated Monster Pack by @Quaternius/Blend"
	DefaultOutputDir = "public/models"
)

// defaultFiles lists the monster pack scene files, in conversion order.
var defaultFiles = []string{
	"Skeleton.blend",
	"Bat.blend",
	"Dragon.blend",
	"Slime.blend",
}

// Default returns the built-in batch configuration.
func Default() types.BatchConfig {
	files := make([]string, len(defaultFiles))
	copy(files, defaultFiles)
	return types.BatchConfig{
		SourceDir: DefaultSourceDir,
		OutputDir: DefaultOutputDir,
		Files:     files,
	}
}

// Load reads a batch manifest from a YAML file and validates it.
func Load(path string) (types.BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BatchConfig{}, fmt.Errorf("reading manifest: %w", err)
	}

	var cfg types.BatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.BatchConfig{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return types.BatchConfig{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return cfg, nil
}

// Write serializes a batch configuration to a YAML manifest file.
func Write(path string, cfg types.BatchConfig) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that a batch configuration is usable: both directories
// set and at least one file listed.
func Validate(cfg types.BatchConfig) error {
	if cfg.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if len(cfg.Files) == 0 {
		return fmt.Errorf("files list is empty")
	}
	for i, f := range cfg.Files {
		if f == "" {
			return fmt.Errorf("files[%d] is empty", i)
		}
	}
	return nil
}

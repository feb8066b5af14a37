// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blender

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/asset-engine/internal/container"
	"github.com/pdiddy/asset-engine/pkg/types"
)

// Detect selects an engine: the local binary when available, otherwise
// a detected container runtime with the configured image.
func Detect(cfg types.BlenderConfig) (Engine, error) {
	return detect(cfg, osRunner{}, container.DetectRuntime)
}

func detect(cfg types.BlenderConfig, run runner, detectRuntime func() (container.Runtime, error)) (Engine, error) {
	local := newLocalEngine(cfg.Binary, run)
	if local.Available() {
		return local, nil
	}

	rt, err := detectRuntime()
	if err != nil {
		return nil, fmt.Errorf("no blender binary on PATH and %w", err)
	}
	eng, err := NewContainerEngine(rt, cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("no blender binary on PATH and %w", err)
	}
	return eng, nil
}

// timeoutEngine bounds each export with a deadline.
type timeoutEngine struct {
	Engine
	limit time.Duration
}

// WithTimeout wraps an engine so each export runs under a deadline.
// A zero limit returns the engine unwrapped.
func WithTimeout(e Engine, limit time.Duration) Engine {
	if limit <= 0 {
		return e
	}
	return &timeoutEngine{Engine: e, limit: limit}
}

func (t *timeoutEngine) Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()
	return t.Engine.Export(ctx, inputPath, outputPath, opts)
}

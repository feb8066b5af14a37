// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blender

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/asset-engine/internal/container"
	"github.com/pdiddy/asset-engine/pkg/types"
)

// DefaultImage is the container image used when none is configured.
const DefaultImage = "linuxserver/blender:latest"

// Container-side mount points.
const (
	ctrInputDir  = "/work/in"
	ctrOutputDir = "/work/out"
	ctrScriptDir = "/work/scripts"
)

// ContainerEngine exports through a Blender container image. The input
// and script directories are mounted read-only; the output directory is
// mounted writable.
type ContainerEngine struct {
	runtime container.Runtime
	image   string
}

// NewContainerEngine creates an engine for the given runtime and image.
// It verifies the image exists locally before returning.
func NewContainerEngine(rt container.Runtime, image string) (*ContainerEngine, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("blender image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerEngine{runtime: rt, image: image}, nil
}

func (e *ContainerEngine) Name() string { return e.runtime.Name() }

// Export mounts the directories around inputPath and outputPath into a
// disposable container and runs blender with container-side paths.
func (e *ContainerEngine) Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error {
	inDir, err := filepath.Abs(filepath.Dir(inputPath))
	if err != nil {
		return fmt.Errorf("resolving input directory: %w", err)
	}
	outDir, err := filepath.Abs(filepath.Dir(outputPath))
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}

	script, err := RenderScript(opts)
	if err != nil {
		return err
	}
	scriptDir, err := os.MkdirTemp("", "asset-engine-")
	if err != nil {
		return fmt.Errorf("creating script directory: %w", err)
	}
	defer os.RemoveAll(scriptDir)

	if err := os.WriteFile(filepath.Join(scriptDir, "export.py"), []byte(script), 0o644); err != nil {
		return fmt.Errorf("writing export script: %w", err)
	}

	mounts := []container.Mount{
		{Host: inDir, Container: ctrInputDir, ReadOnly: true},
		{Host: outDir, Container: ctrOutputDir},
		{Host: scriptDir, Container: ctrScriptDir, ReadOnly: true},
	}

	argv := append([]string{"blender"}, cliArgs(
		ctrScriptDir+"/export.py",
		ctrInputDir+"/"+filepath.Base(inputPath),
		ctrOutputDir+"/"+filepath.Base(outputPath),
	)...)

	var out bytes.Buffer
	if err := e.runtime.RunCommand(ctx, e.image, mounts, argv, &out); err != nil {
		return fmt.Errorf("containerized export of %s failed: %w\n%s", inputPath, err, outputTail(out.String()))
	}
	return nil
}

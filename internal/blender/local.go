// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/asset-engine/pkg/types"
)

// DefaultBinary is the blender executable name looked up on PATH when
// no explicit binary is configured.
const DefaultBinary = "blender"

// Engine runs the host Blender exporter. Both the local binary and the
// container image implement it.
type Engine interface {
	// Name identifies the engine for logs and catalog records.
	Name() string

	// Export loads the scene at inputPath into a fresh scene and
	// serializes it to outputPath with the given options.
	Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error
}

// runner abstracts process execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) (string, error)
	Run(ctx context.Context, name string, args []string, out io.Writer) error
}

type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

func (osRunner) Run(ctx context.Context, name string, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

// LocalEngine exports through a blender binary installed on the host.
type LocalEngine struct {
	binary string
	run    runner
}

// NewLocalEngine creates an engine for the given blender binary. An
// empty binary means look up "blender" on PATH.
func NewLocalEngine(binary string) *LocalEngine {
	return newLocalEngine(binary, osRunner{})
}

func newLocalEngine(binary string, run runner) *LocalEngine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &LocalEngine{binary: binary, run: run}
}

func (e *LocalEngine) Name() string { return "blender" }

// Available reports whether the binary exists and answers --version.
func (e *LocalEngine) Available() bool {
	if _, err := e.run.LookPath(e.binary); err != nil {
		return false
	}
	_, err := e.run.Output(e.binary, "--version")
	return err == nil
}

// Version returns the Blender version string, parsed from the first
// line of the --version banner ("Blender 4.2.1 ...").
func (e *LocalEngine) Version() (string, error) {
	out, err := e.run.Output(e.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", e.binary, err)
	}
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "Blender" {
		return "", fmt.Errorf("unexpected version banner %q", line)
	}
	return fields[1], nil
}

// Export writes the export script to a temp file and runs blender in
// background mode against it.
func (e *LocalEngine) Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error {
	script, err := RenderScript(opts)
	if err != nil {
		return err
	}

	scriptDir, err := os.MkdirTemp("", "asset-engine-")
	if err != nil {
		return fmt.Errorf("creating script directory: %w", err)
	}
	defer os.RemoveAll(scriptDir)

	scriptPath := filepath.Join(scriptDir, "export.py")
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return fmt.Errorf("writing export script: %w", err)
	}

	var out bytes.Buffer
	if err := e.run.Run(ctx, e.binary, cliArgs(scriptPath, inputPath, outputPath), &out); err != nil {
		return fmt.Errorf("blender export of %s failed: %w\n%s", inputPath, err, outputTail(out.String()))
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/asset-engine/pkg/types"
)

// exportCall records one Export invocation.
type exportCall struct {
	input  string
	output string
	opts   types.ExportOptions
}

// fakeExporter records calls and fails on configured inputs.
type fakeExporter struct {
	calls   []exportCall
	failOn  map[string]error // input path -> error
	touched bool             // write an empty output file on success
}

func (f *fakeExporter) Export(ctx context.Context, inputPath, outputPath string, opts types.ExportOptions) error {
	f.calls = append(f.calls, exportCall{input: inputPath, output: outputPath, opts: opts})
	if err, ok := f.failOn[inputPath]; ok {
		return err
	}
	if f.touched {
		return os.WriteFile(outputPath, []byte("glb"), 0o644)
	}
	return nil
}

// testBatch returns a batch config rooted in a temp dir with the given
// source files created.
func testBatch(t *testing.T, present ...string) types.BatchConfig {
	t.Helper()
	root := t.TempDir()
	srcDir := filepath.Join(root, "blend")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	for _, name := range present {
		require.NoError(t, os.WriteFile(filepath.Join(srcDir, name), []byte("BLENDER"), 0o644))
	}
	return types.BatchConfig{
		SourceDir: srcDir,
		OutputDir: filepath.Join(root, "models"),
		Files:     []string{"Skeleton.blend", "Bat.blend", "Dragon.blend", "Slime.blend"},
	}
}

func TestRunSingleFile(t *testing.T) {
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	result, err := d.Run(context.Background(), []string{"a.blend", "b.glb"}, types.BatchConfig{})
	require.NoError(t, err)

	require.Len(t, exp.calls, 1)
	assert.Equal(t, "a.blend", exp.calls[0].input)
	assert.Equal(t, "b.glb", exp.calls[0].output)
	assert.Equal(t, types.DefaultExportOptions(), exp.calls[0].opts)

	assert.Equal(t, 1, result.Converted)
	assert.Contains(t, log.String(), "Converted a.blend to b.glb\n")
	assert.Contains(t, log.String(), "Conversion complete!\n")
}

func TestRunSingleFileExtraArgsIgnored(t *testing.T) {
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	_, err := d.Run(context.Background(), []string{"a.blend", "b.glb", "c.glb"}, types.BatchConfig{})
	require.NoError(t, err)

	require.Len(t, exp.calls, 1)
	assert.Equal(t, "b.glb", exp.calls[0].output)
}

func TestRunSingleFileNoExistenceCheck(t *testing.T) {
	// Single-file mode must not stat the input: the export call happens
	// even when the file is missing.
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	_, err := d.Run(context.Background(), []string{"/no/such/file.blend", "out.glb"}, types.BatchConfig{})
	require.NoError(t, err)
	assert.Len(t, exp.calls, 1)
}

func TestRunBatchCreatesOutputDir(t *testing.T) {
	cfg := testBatch(t)
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	_, err := d.Run(context.Background(), nil, cfg)
	require.NoError(t, err)

	info, err := os.Stat(cfg.OutputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunBatchSkipsMissingInputs(t *testing.T) {
	cfg := testBatch(t, "Bat.blend")
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	result, err := d.Run(context.Background(), nil, cfg)
	require.NoError(t, err)

	require.Len(t, exp.calls, 1)
	assert.Equal(t, filepath.Join(cfg.SourceDir, "Bat.blend"), exp.calls[0].input)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "Bat.glb"), exp.calls[0].output)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 3, result.Skipped)

	// Skips are silent: only the one conversion and the completion line.
	assert.Equal(t, "Converted Bat.blend to Bat.glb\nConversion complete!\n", log.String())
}

func TestRunBatchAllMissing(t *testing.T) {
	cfg := testBatch(t)
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	result, err := d.Run(context.Background(), nil, cfg)
	require.NoError(t, err)

	assert.Empty(t, exp.calls)
	assert.Equal(t, 0, result.Converted)
	assert.Equal(t, 4, result.Skipped)
	assert.Equal(t, "Conversion complete!\n", log.String())
}

func TestRunBatchOrderAndOptions(t *testing.T) {
	cfg := testBatch(t, "Skeleton.blend", "Bat.blend", "Dragon.blend", "Slime.blend")
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	_, err := d.Run(context.Background(), nil, cfg)
	require.NoError(t, err)

	require.Len(t, exp.calls, 4)
	wantOrder := []string{"Skeleton.blend", "Bat.blend", "Dragon.blend", "Slime.blend"}
	for i, call := range exp.calls {
		assert.Equal(t, filepath.Join(cfg.SourceDir, wantOrder[i]), call.input)
		assert.Equal(t, types.DefaultExportOptions(), call.opts, "export options must never vary")
	}
}

func TestRunExportFailureAbortsBatch(t *testing.T) {
	cfg := testBatch(t, "Skeleton.blend", "Bat.blend", "Dragon.blend")
	exp := &fakeExporter{
		failOn: map[string]error{
			filepath.Join(cfg.SourceDir, "Bat.blend"): errors.New("unsupported animation data"),
		},
	}
	var log bytes.Buffer
	d := New(exp, &log)

	result, err := d.Run(context.Background(), nil, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported animation data")

	// Skeleton converted, Bat failed, Dragon never attempted.
	require.Len(t, exp.calls, 2)
	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Failed)

	assert.Contains(t, log.String(), "Converted Skeleton.blend to Skeleton.glb")
	assert.NotContains(t, log.String(), "Conversion complete!")
}

func TestRunSingleFileFailureWithholdsCompletion(t *testing.T) {
	exp := &fakeExporter{failOn: map[string]error{"a.blend": errors.New("malformed scene")}}
	var log bytes.Buffer
	d := New(exp, &log)

	_, err := d.Run(context.Background(), []string{"a.blend", "b.glb"}, types.BatchConfig{})
	require.Error(t, err)
	assert.NotContains(t, log.String(), "Conversion complete!")
	assert.NotContains(t, log.String(), "Converted a.blend")
}

func TestRunBatchUncreatableOutputDir(t *testing.T) {
	cfg := testBatch(t, "Bat.blend")
	// A file where the output directory should go makes MkdirAll fail.
	require.NoError(t, os.WriteFile(cfg.OutputDir, []byte("in the way"), 0o644))

	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	_, err := d.Run(context.Background(), nil, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
	assert.Empty(t, exp.calls, "no conversion may start when the output directory cannot be created")
}

func TestRunBatchUnchangedHook(t *testing.T) {
	cfg := testBatch(t, "Skeleton.blend", "Bat.blend")
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)
	d.Unchanged = func(input, output string) bool {
		return strings.HasSuffix(input, "Skeleton.blend")
	}

	result, err := d.Run(context.Background(), nil, cfg)
	require.NoError(t, err)

	require.Len(t, exp.calls, 1)
	assert.Equal(t, filepath.Join(cfg.SourceDir, "Bat.blend"), exp.calls[0].input)
	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 3, result.Skipped)
	assert.Contains(t, log.String(), "skipped: Skeleton.blend (up to date)")
}

func TestRunVerifyHookFailureIsFatal(t *testing.T) {
	cfg := testBatch(t, "Skeleton.blend", "Bat.blend")
	exp := &fakeExporter{touched: true}
	var log bytes.Buffer
	d := New(exp, &log)
	d.Verify = func(output string) error {
		if strings.HasSuffix(output, "Skeleton.glb") {
			return errors.New("no scene in output")
		}
		return nil
	}

	result, err := d.Run(context.Background(), nil, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scene in output")

	// Verification failure counts as a failed entry and aborts the batch.
	assert.Equal(t, 1, result.Failed)
	require.Len(t, exp.calls, 1)
	assert.NotContains(t, log.String(), "Conversion complete!")
}

func TestRunBatchCancellation(t *testing.T) {
	cfg := testBatch(t, "Skeleton.blend", "Bat.blend")
	exp := &fakeExporter{}
	var log bytes.Buffer
	d := New(exp, &log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx, nil, cfg)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, exp.calls)
	assert.NotContains(t, log.String(), "Conversion complete!")
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Skeleton.blend", "Skeleton.glb"},
		{"Bat.blend", "Bat.glb"},
		{"scene.v2.blend", "scene.v2.glb"},
		{"noext", "noext.glb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputName(tt.in))
	}
}

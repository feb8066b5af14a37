// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package blender drives a host Blender process to export scene files
// as glTF. Two engines exist: a local blender binary and a container
// image run through docker or podman.
package blender

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/asset-engine/pkg/types"
)

// scriptTemplate is the bpy export script handed to Blender. The scene
// reset must stay before open_mainfile: the host scene slot is stateful
// and a load without the preceding reset inherits leftover data.
const scriptTemplate = `import bpy
import sys

argv = sys.argv
argv = argv[argv.index("--") + 1:] if "--" in argv else []

input_path = argv[0]
output_path = argv[1]

bpy.ops.wm.read_homefile(use_empty=True)
bpy.ops.wm.open_mainfile(filepath=input_path)

bpy.ops.export_scene.gltf(
    filepath=output_path,
    export_format='{{.Format}}',
    export_animations={{py .Animations}},
    export_skins={{py .Skins}},
    export_morph={{py .MorphTargets}},
    export_apply={{py .ApplyModifiers}},
)
`

var scriptTmpl = template.Must(
	template.New("export").Funcs(template.FuncMap{
		"py": func(b bool) string {
			if b {
				return "True"
			}
			return "False"
		},
	}).Parse(scriptTemplate),
)

// RenderScript produces the bpy export script for the given options.
// The script takes the input and output paths as its two trailing
// arguments after the -- separator.
func RenderScript(opts types.ExportOptions) (string, error) {
	var b strings.Builder
	if err := scriptTmpl.Execute(&b, opts); err != nil {
		return "", fmt.Errorf("rendering export script: %w", err)
	}
	return b.String(), nil
}

// cliArgs builds the blender argument vector for a rendered script.
// --python-exit-code makes a script exception fail the process instead
// of exiting zero.
func cliArgs(scriptPath, inputPath, outputPath string) []string {
	return []string{
		"--background",
		"--factory-startup",
		"--python-exit-code", "1",
		"--python", scriptPath,
		"--", inputPath, outputPath,
	}
}

// outputTail returns the last few lines of captured process output, for
// inclusion in error messages.
func outputTail(out string) string {
	const maxLines = 12
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return ""
	}
	lines := strings.Split(out, "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}

package types

import "time"

// ExportFormat selects the glTF container variant produced by the host
// exporter. Values match Blender's export_scene.gltf enum.
type ExportFormat string

const (
	FormatGLB          ExportFormat = "GLB"
	FormatGLTFSeparate ExportFormat = "GLTF_SEPARATE"
	FormatGLTFEmbedded ExportFormat = "GLTF_EMBEDDED"
)

// ExportOptions holds the configuration handed to the host export
// capability. The converter always passes DefaultExportOptions; the type
// exists so the engines and tests can see the exact values flow through.
type ExportOptions struct {
	// Format is the output container format.
	Format ExportFormat `json:"format" yaml:"format"`

	// Animations includes animation clips in the export.
	Animations bool `json:"animations" yaml:"animations"`

	// Skins includes skeletal skin/bone weight bindings.
	Skins bool `json:"skins" yaml:"skins"`

	// MorphTargets includes morph-target (blend shape) data.
	MorphTargets bool `json:"morph_targets" yaml:"morph_targets"`

	// ApplyModifiers applies pending non-destructive modifiers to the
	// exported geometry. Left off so rigs and shape keys survive.
	ApplyModifiers bool `json:"apply_modifiers" yaml:"apply_modifiers"`
}

// DefaultExportOptions returns the fixed export configuration used for
// every conversion: binary glTF with animations, skins, and morph
// targets, without applying modifiers.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:         FormatGLB,
		Animations:     true,
		Skins:          true,
		MorphTargets:   true,
		ApplyModifiers: false,
	}
}

// BatchConfig describes a batch conversion run: where the source scene
// files live, where converted files go, and which files to process.
type BatchConfig struct {
	// SourceDir is the directory containing the .blend source files.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir is the directory converted .glb files are written to.
	// Created (with parents) before the first conversion.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Files lists the source filenames to convert, in order.
	Files []string `json:"files" yaml:"files"`
}

// BlenderConfig holds settings for the host Blender process.
type BlenderConfig struct {
	// Binary is the path to the blender executable. Empty means look it
	// up on PATH.
	Binary string `json:"binary" yaml:"binary"`

	// Image is the container image used when no local binary is
	// available (or when the container engine is forced).
	Image string `json:"image" yaml:"image"`

	// Timeout bounds a single export run. Zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect decodes produced glTF files and reports what they
// contain. It backs the inspect command and the post-export --verify
// check.
package inspect

import (
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
)

// Report summarizes the contents of one glTF file.
type Report struct {
	Path         string `json:"path" yaml:"path"`
	Size         int64  `json:"size" yaml:"size"`
	Scenes       int    `json:"scenes" yaml:"scenes"`
	Nodes        int    `json:"nodes" yaml:"nodes"`
	Meshes       int    `json:"meshes" yaml:"meshes"`
	Materials    int    `json:"materials" yaml:"materials"`
	Animations   int    `json:"animations" yaml:"animations"`
	Skins        int    `json:"skins" yaml:"skins"`
	MorphTargets int    `json:"morph_targets" yaml:"morph_targets"`
}

// File decodes the glTF container at path and returns its report.
func File(path string) (Report, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	report := Report{
		Path:       path,
		Scenes:     len(doc.Scenes),
		Nodes:      len(doc.Nodes),
		Meshes:     len(doc.Meshes),
		Materials:  len(doc.Materials),
		Animations: len(doc.Animations),
		Skins:      len(doc.Skins),
	}

	// Morph targets count as target sets across all mesh primitives.
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			report.MorphTargets += len(prim.Targets)
		}
	}

	if info, err := os.Stat(path); err == nil {
		report.Size = info.Size()
	}

	return report, nil
}

// Verify checks that path decodes as glTF and declares a scene. Used
// after each export when verification is enabled.
func Verify(path string) error {
	doc, err := gltf.Open(path)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	if doc.Scene == nil && len(doc.Scenes) == 0 {
		return fmt.Errorf("%s declares no scene", path)
	}
	return nil
}

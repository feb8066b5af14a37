//go:build mage

// Package main contains Mage build targets for asset-engine developer tooling.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pdiddy/asset-engine/internal/manifest"
)

// projectDirs lists the working directories a conversion run expects.
var projectDirs = []string{
	manifest.DefaultSourceDir,
	manifest.DefaultOutputDir,
}

const manifestFile = "asset-engine-manifest.yaml"

// Init creates the project directory structure and seeds a starter
// batch manifest when none exists.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}

	if _, err := os.Stat(manifestFile); os.IsNotExist(err) {
		if err := manifest.Write(manifestFile, manifest.Default()); err != nil {
			return fmt.Errorf("writing starter manifest: %w", err)
		}
		fmt.Println("  ", manifestFile)
	}

	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "asset-engine"
	cmdPkg  = "./cmd/asset-engine"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

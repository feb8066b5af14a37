// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/asset-engine/internal/inspect"
	"github.com/pdiddy/asset-engine/internal/manifest"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [files...]",
	Short: "Report the contents of converted .glb files",
	Long: `Inspect decodes binary glTF files and reports what they contain:
scenes, nodes, meshes, materials, animation clips, skins, and morph
targets. With no arguments it inspects every .glb under the output
directory.`,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		outputDir, _ := cmd.Flags().GetString("output-dir")
		found, err := filepath.Glob(filepath.Join(outputDir, "*.glb"))
		if err != nil {
			return fmt.Errorf("scanning %s: %w", outputDir, err)
		}
		if len(found) == 0 {
			return fmt.Errorf("no .glb files under %s", outputDir)
		}
		sort.Strings(found)
		files = found
	}

	reports := make([]inspect.Report, 0, len(files))
	for _, f := range files {
		report, err := inspect.File(f)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatReports(reports, jsonOutput)
}

func formatReports(reports []inspect.Report, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	fmt.Fprintf(os.Stdout, "%-30s  %10s  %6s  %6s  %5s  %5s  %6s\n",
		"File", "Size", "Meshes", "Anims", "Skins", "Morph", "Nodes")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))

	for _, r := range reports {
		name := filepath.Base(r.Path)
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-30s  %10d  %6d  %6d  %5d  %5d  %6d\n",
			name, r.Size, r.Meshes, r.Animations, r.Skins, r.MorphTargets, r.Nodes)
	}

	fmt.Fprintf(os.Stdout, "\n%d file(s)\n", len(reports))
	return nil
}

func init() {
	inspectCmd.Flags().String("output-dir", manifest.DefaultOutputDir, "directory scanned when no files are given")
	inspectCmd.Flags().Bool("json", false, "output reports as JSON")

	rootCmd.AddCommand(inspectCmd)
}

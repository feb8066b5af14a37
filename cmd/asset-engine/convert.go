// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/asset-engine/internal/blender"
	"github.com/pdiddy/asset-engine/internal/catalog"
	"github.com/pdiddy/asset-engine/internal/container"
	"github.com/pdiddy/asset-engine/internal/convert"
	"github.com/pdiddy/asset-engine/internal/inspect"
	"github.com/pdiddy/asset-engine/internal/manifest"
	"github.com/pdiddy/asset-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input output]",
	Short: "Convert .blend scene files to .glb",
	Long: `Convert exports Blender scene files as binary glTF with animations,
skins, and morph targets.

With two positional arguments it converts that one input/output pair.
With fewer it runs the batch manifest: every listed scene file found
under the source directory is converted into the output directory, and
missing ones are skipped.`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	batch, err := resolveBatch(cmd)
	if err != nil {
		return err
	}

	engine, err := resolveEngine(cmd)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("blender.timeout")
	}
	engine = blender.WithTimeout(engine, timeout)

	driver := convert.New(engine, cmd.OutOrStdout())

	useCatalog, _ := cmd.Flags().GetBool("catalog")
	incremental, _ := cmd.Flags().GetBool("incremental")
	if useCatalog || incremental {
		dir, _ := cmd.Flags().GetString("catalog-dir")
		if dir == "" {
			dir = viper.GetString("catalog.dir")
		}
		store, err := catalog.Open(dir)
		if err != nil {
			return err
		}
		defer store.Close()

		driver.Exporter = catalog.NewRecording(engine, store)
		if incremental {
			driver.Unchanged = catalog.Unchanged(store)
		}
	}

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		driver.Verify = inspect.Verify
	}

	_, err = driver.Run(cmd.Context(), args, batch)
	return err
}

// resolveBatch layers the batch configuration: built-in defaults, then
// config file keys, then a manifest file, then explicit flags.
func resolveBatch(cmd *cobra.Command) (types.BatchConfig, error) {
	cfg := manifest.Default()

	if v := viper.GetString("batch.source_dir"); v != "" {
		cfg.SourceDir = v
	}
	if v := viper.GetString("batch.output_dir"); v != "" {
		cfg.OutputDir = v
	}
	if v := viper.GetStringSlice("batch.files"); len(v) > 0 {
		cfg.Files = v
	}

	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		loaded, err := manifest.Load(path)
		if err != nil {
			return types.BatchConfig{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("source-dir") {
		cfg.SourceDir, _ = cmd.Flags().GetString("source-dir")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("files") {
		cfg.Files, _ = cmd.Flags().GetStringSlice("files")
	}

	if err := manifest.Validate(cfg); err != nil {
		return types.BatchConfig{}, err
	}
	return cfg, nil
}

// resolveEngine picks the host engine per the --engine flag.
func resolveEngine(cmd *cobra.Command) (blender.Engine, error) {
	binary, _ := cmd.Flags().GetString("blender")
	if binary == "" {
		binary = viper.GetString("blender.binary")
	}
	image, _ := cmd.Flags().GetString("image")
	if image == "" {
		image = viper.GetString("blender.image")
	}

	mode, _ := cmd.Flags().GetString("engine")
	switch mode {
	case "local":
		engine := blender.NewLocalEngine(binary)
		if !engine.Available() {
			return nil, fmt.Errorf("blender binary %q not available", binary)
		}
		return engine, nil
	case "container":
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return blender.NewContainerEngine(rt, image)
	case "auto", "":
		return blender.Detect(types.BlenderConfig{Binary: binary, Image: image})
	default:
		return nil, fmt.Errorf("unknown engine %q: use auto, local, or container", mode)
	}
}

func init() {
	convertCmd.Flags().String("source-dir", manifest.DefaultSourceDir, "directory containing .blend source files")
	convertCmd.Flags().String("output-dir", manifest.DefaultOutputDir, "directory for converted .glb files")
	convertCmd.Flags().StringSlice("files", nil, "scene filenames to convert in batch mode")
	convertCmd.Flags().String("manifest", "", "YAML batch manifest file")
	convertCmd.Flags().String("blender", "", "path to the blender binary (default: blender on PATH)")
	convertCmd.Flags().String("engine", "auto", "host engine: auto, local, or container")
	convertCmd.Flags().String("image", "", "Blender container image for the container engine")
	convertCmd.Flags().Duration("timeout", 0, "per-export timeout (0 = none)")
	convertCmd.Flags().Bool("verify", false, "decode each produced .glb after export")
	convertCmd.Flags().Bool("incremental", false, "skip sources unchanged since their last successful conversion")
	convertCmd.Flags().Bool("catalog", false, "record conversion attempts in the catalog")
	convertCmd.Flags().String("catalog-dir", "", "catalog directory (default: "+catalog.DefaultDir+")")

	rootCmd.AddCommand(convertCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the asset-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the asset-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "asset-engine",
	Short: "Batch conversion of Blender scenes to binary glTF",
	Long: `asset-engine drives a host Blender process to convert .blend scene files
into .glb (binary glTF) files, with animations, skeletal skins, and morph
targets included. It converts either one explicit input/output pair or a
batch manifest of scene files, and can inspect the produced .glb output.

Blender runs either as a local binary or inside a container image; the
conversion itself is Blender's glTF exporter.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./asset-engine.yaml or ~/.config/asset-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("asset-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "asset-engine"))
		}
	}

	viper.SetEnvPrefix("ASSET_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

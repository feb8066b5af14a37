// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/asset-engine/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the conversion catalog (list, export)",
	Long: `Catalog inspects the local SQLite record of conversion attempts
written by convert --catalog. Use subcommands to list recent attempts
or export the full history.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversion attempts, newest first",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-9s  %-8s  %-30s  %10s  %8s  %s\n",
		"ID", "Status", "Engine", "Input", "Size", "Time", "When")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range records {
		input := filepath.Base(r.InputPath)
		if len(input) > 30 {
			input = input[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-9s  %-8s  %-30s  %10d  %6dms  %s\n",
			r.ID, r.Status, r.Engine, input, r.OutputSize, r.DurationMS,
			r.ConvertedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(os.Stdout, "\n%d record(s)\n", len(records))
	return nil
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion catalog to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), out, limit)
	case "json":
		return store.ExportJSON(cmd.Context(), out, limit)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	if dir == "" {
		dir = viper.GetString("catalog.dir")
	}
	return catalog.Open(dir)
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "", "catalog directory (default: "+catalog.DefaultDir+")")

	catalogListCmd.Flags().Int("limit", 20, "maximum records to list (0 = all)")
	catalogListCmd.Flags().Bool("json", false, "output records as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("out", "", "write to a file instead of stdout")
	catalogExportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}

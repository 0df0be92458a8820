// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all computed quality metrics to YAML or JSON",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.ListMetrics(context.Background())
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "yaml", "":
		data, err := yaml.Marshal(all)
		if err != nil {
			return fmt.Errorf("marshaling metrics: %w", err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(all); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	if outPath != "" {
		fmt.Printf("Exported %d metrics to %s\n", len(all), outPath)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

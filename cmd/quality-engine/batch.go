// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quality-engine/internal/analyze"
)

var batchCmd = &cobra.Command{
	Use:   "batch [record-id...]",
	Short: "Compute quality metrics for many records",
	Long: `Batch runs full analysis for each given record ID, or for up to 100
approved records when no IDs are given. One record's failure never stops
the batch: partial results are kept and failures are listed per record.`,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	analyzer := analyze.New(store)
	out, err := analyzer.AnalyzeBatch(context.Background(), args, cfg.Analysis.Workers, os.Stderr)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		for _, m := range out.Results {
			fmt.Printf("%-12s  overall %3d  (completeness %3d, readability %3d, engagement %3d, uniqueness %3d, spam %.2f)\n",
				m.RecordID, m.OverallQualityScore, m.CompletenessScore,
				m.ReadabilityScore, m.EngagementScore, m.UniquenessScore, m.SpamProbability)
		}
		for _, e := range out.Errors {
			fmt.Printf("%-12s  error: %s\n", e.RecordID, e.Message)
		}
	}

	if len(out.Errors) > 0 {
		return fmt.Errorf("%d record(s) failed analysis", len(out.Errors))
	}
	return nil
}

func init() {
	batchCmd.Flags().Bool("json", false, "output results and errors as JSON")
	rootCmd.AddCommand(batchCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quality-engine/internal/analyze"
	"github.com/pdiddy/quality-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <record-id>",
	Short: "Compute and store quality metrics for one record",
	Long: `Analyze computes completeness, readability, engagement, uniqueness, and
spam sub-scores for a single record, aggregates them into the overall
quality score, and writes the result back to the store.

A missing record is an error. If the write-back fails the computed scores
are still printed, with a warning that they were not saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	analyzer := analyze.New(store)
	m, err := analyzer.AnalyzeOne(context.Background(), args[0], os.Stderr)

	var persistErr *analyze.PersistenceError
	switch {
	case err == nil:
	case errors.As(err, &persistErr):
		fmt.Fprintf(os.Stderr, "warning: scores computed but not saved: %v\n", persistErr.Err)
	default:
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}

	printMetrics(m)
	return nil
}

func printMetrics(m types.QualityMetrics) {
	fmt.Printf("Record %s\n", m.RecordID)
	fmt.Printf("  completeness: %3d\n", m.CompletenessScore)
	fmt.Printf("  readability:  %3d\n", m.ReadabilityScore)
	fmt.Printf("  engagement:   %3d\n", m.EngagementScore)
	fmt.Printf("  uniqueness:   %3d\n", m.UniquenessScore)
	fmt.Printf("  spam:         %.2f\n", m.SpamProbability)
	fmt.Printf("  overall:      %3d\n", m.OverallQualityScore)

	if len(m.PotentialDuplicates) > 0 {
		fmt.Println("  potential duplicates:")
		for _, d := range m.PotentialDuplicates {
			title := d.Title
			if len(title) > 50 {
				title = title[:47] + "..."
			}
			fmt.Printf("    %.2f  %-12s  %s\n", d.SimilarityScore, d.RecordID, title)
		}
	}
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "output metrics as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func statusValues() string {
	return strings.Join([]string{
		string(types.StatusPending),
		string(types.StatusApproved),
		string(types.StatusRejected),
	}, ", ")
}

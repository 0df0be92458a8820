// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quality-engine/internal/analyze"
	"github.com/pdiddy/quality-engine/pkg/types"
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Detect clusters of near-duplicate records",
	Long: `Duplicates runs pairwise title similarity across the corpus and greedily
partitions records into duplicate clusters. Only groups of two or more
records are reported. Clustering is order-dependent: records are scanned
in stable storage order.`,
	RunE: runDuplicates,
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	analyzer := analyze.New(store)
	clusters, err := analyzer.DetectDuplicates(context.Background(), types.RecordFilter{
		Status: types.RecordStatus(status),
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(clusters)
	}

	if len(clusters) == 0 {
		fmt.Println("No duplicate clusters found.")
		return nil
	}

	for _, c := range clusters {
		fmt.Printf("Cluster %d (%d records)\n", c.ClusterID, len(c.Members))
		for _, m := range c.Members {
			title := m.Title
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			fmt.Printf("  %.2f  %-12s  %s\n", m.SimilarityScore, m.RecordID, title)
		}
	}
	fmt.Printf("\n%d cluster(s)\n", len(clusters))
	return nil
}

func init() {
	duplicatesCmd.Flags().String("status", "", "filter corpus by moderation status: "+statusValues())
	duplicatesCmd.Flags().Int("limit", 0, "cap the corpus size (0 = all)")
	duplicatesCmd.Flags().Bool("json", false, "output clusters as JSON")

	rootCmd.AddCommand(duplicatesCmd)
}

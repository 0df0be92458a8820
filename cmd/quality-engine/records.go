// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quality-engine/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the record store (import, list)",
}

var recordsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>...",
	Short: "Import records from YAML files into the store",
	Long: `Import reads YAML record files and upserts their contents by ID,
including vote counts, moderation status, and pending flag counts.
Individual bad records are skipped and reported; the import continues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecordsImport,
}

func runRecordsImport(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Import(context.Background(), args, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed import", summary.Failed)
	}
	return nil
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records with their current scores",
	RunE:  runRecordsList,
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	records, err := store.FetchRecords(context.Background(), types.RecordFilter{
		Status: types.RecordStatus(status),
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	fmt.Printf("%-12s  %-50s  %-8s  %-5s  %s\n", "ID", "Title", "Status", "Votes", "Score")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range records {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Printf("%-12s  %-50s  %-8s  %-5d  %d\n",
			r.ID, title, r.Status, r.VoteCount, r.OverallQualityScore)
	}
	fmt.Printf("\n%d record(s)\n", len(records))
	return nil
}

func init() {
	recordsListCmd.Flags().String("status", "", "filter by moderation status: "+statusValues())
	recordsListCmd.Flags().Int("limit", 0, "maximum records to list (0 = all)")

	recordsCmd.AddCommand(recordsImportCmd)
	recordsCmd.AddCommand(recordsListCmd)
	rootCmd.AddCommand(recordsCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quality-engine/pkg/types"
)

// ImportRecord is one record in an import file: the record fields plus the
// number of unresolved moderation flags to seed.
type ImportRecord struct {
	types.Record `yaml:",inline"`

	// PendingFlags seeds the record's unresolved moderation flag count.
	PendingFlags int `yaml:"pending_flags"`
}

// ImportFile is the YAML shape accepted by Import.
type ImportFile struct {
	Records []ImportRecord `yaml:"records"`
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Failed   int
}

// Total returns the number of records processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Failed
}

// Import reads record files and upserts their contents, printing per-record
// status to w. It continues after individual failures and reports a summary.
func (s *Store) Import(ctx context.Context, paths []string, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return summary, fmt.Errorf("reading %s: %w", path, err)
		}

		var file ImportFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return summary, fmt.Errorf("parsing %s: %w", path, err)
		}

		for _, ir := range file.Records {
			if ir.ID == "" || ir.Title == "" {
				fmt.Fprintf(w, "failed  %s: record needs id and title\n", ir.ID)
				summary.Failed++
				continue
			}
			if ir.Status == "" {
				ir.Status = types.StatusPending
			}

			if err := s.UpsertRecord(ctx, ir.Record); err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", ir.ID, err)
				summary.Failed++
				continue
			}
			if err := s.SetPendingFlags(ctx, ir.ID, ir.PendingFlags); err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", ir.ID, err)
				summary.Failed++
				continue
			}

			fmt.Fprintf(w, "imported %s\n", ir.ID)
			summary.Imported++
		}
	}

	fmt.Fprintf(w, "\nimported: %d, failed: %d\n", summary.Imported, summary.Failed)
	return summary, nil
}

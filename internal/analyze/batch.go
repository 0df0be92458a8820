// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/quality-engine/internal/cluster"
	"github.com/pdiddy/quality-engine/pkg/types"
)

const (
	// batchCeiling caps how many records a default (empty-ID) batch pulls.
	batchCeiling = 100

	defaultWorkers = 4
)

// BatchError records one record's failure inside a batch.
type BatchError struct {
	RecordID string `json:"record_id" yaml:"record_id"`
	Message  string `json:"message" yaml:"message"`
}

// BatchOutput holds the partial results and per-record errors of a batch
// run. Both slices follow the input ID order.
type BatchOutput struct {
	Results []types.QualityMetrics `json:"results" yaml:"results"`
	Errors  []BatchError           `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// AnalyzeBatch runs full analysis for each ID, isolating per-record
// failures: a missing record or failed write-back lands in Errors and the
// batch continues. When recordIDs is empty, up to 100 approved records are
// pulled from storage instead.
//
// The comparison corpus is fetched and tokenized once for the whole run.
// Per-record analyses fan out across a small worker pool; cancellation
// stops new work being issued while in-flight records run to completion.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, recordIDs []string, workers int, w io.Writer) (BatchOutput, error) {
	if len(recordIDs) == 0 {
		records, err := a.store.FetchRecords(ctx, types.RecordFilter{
			Status: types.StatusApproved,
			Limit:  batchCeiling,
		})
		if err != nil {
			return BatchOutput{}, fmt.Errorf("fetching default batch: %w", err)
		}
		for _, r := range records {
			recordIDs = append(recordIDs, r.ID)
		}
	}
	if len(recordIDs) == 0 {
		return BatchOutput{}, nil
	}

	corpus, err := a.comparisonCorpus(ctx)
	if err != nil {
		fmt.Fprintf(w, "warning: comparison corpus unavailable, treating records as unique: %v\n", err)
		corpus = nil
	}

	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(recordIDs) {
		workers = len(recordIDs)
	}

	type outcome struct {
		index   int
		metrics types.QualityMetrics
		err     error
	}

	jobs := make(chan int)
	results := make(chan outcome, len(recordIDs))
	var wg sync.WaitGroup

	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				m, err := a.analyzeAgainst(ctx, recordIDs[idx], corpus, w)
				results <- outcome{index: idx, metrics: m, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range recordIDs {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make(map[int]outcome, len(recordIDs))
	for o := range results {
		outcomes[o.index] = o
	}

	var out BatchOutput
	for i, id := range recordIDs {
		o, ok := outcomes[i]
		if !ok {
			// Cancelled before this record was issued.
			out.Errors = append(out.Errors, BatchError{RecordID: id, Message: ctx.Err().Error()})
			continue
		}
		if o.err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, o.err)
			out.Errors = append(out.Errors, BatchError{RecordID: id, Message: o.err.Error()})
			continue
		}
		out.Results = append(out.Results, o.metrics)
	}

	fmt.Fprintf(w, "\nBatch summary: %d analyzed, %d failed (total: %d)\n",
		len(out.Results), len(out.Errors), len(recordIDs))
	return out, nil
}

// analyzeAgainst is AnalyzeOne with a pre-fetched comparison corpus, used
// by batch runs so the corpus is tokenized once.
func (a *Analyzer) analyzeAgainst(ctx context.Context, recordID string, corpus []cluster.Entry, w io.Writer) (types.QualityMetrics, error) {
	record, err := a.store.FetchRecord(ctx, recordID)
	if err != nil {
		return types.QualityMetrics{}, err
	}

	m := a.compute(ctx, record, corpus, w)

	if err := a.store.UpsertMetrics(ctx, m); err != nil {
		return m, &PersistenceError{RecordID: recordID, Err: err}
	}
	if err := a.store.UpdateRecordScore(ctx, recordID, m.OverallQualityScore); err != nil {
		return m, &PersistenceError{RecordID: recordID, Err: err}
	}
	return m, nil
}

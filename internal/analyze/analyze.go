// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze combines the metric calculators, the similarity engine,
// and the storage collaborator into the engine's three operations:
// AnalyzeOne, AnalyzeBatch, and DetectDuplicates.
package analyze

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/pdiddy/quality-engine/internal/cluster"
	"github.com/pdiddy/quality-engine/internal/metrics"
	"github.com/pdiddy/quality-engine/internal/similarity"
	"github.com/pdiddy/quality-engine/internal/textstats"
	"github.com/pdiddy/quality-engine/pkg/types"
)

// Aggregation weights. Fixed constants summing to 1.0; the spam term is
// inverted so lower spam probability contributes a higher score.
const (
	completenessWeight = 0.25
	readabilityWeight  = 0.20
	engagementWeight   = 0.25
	uniquenessWeight   = 0.20
	spamWeight         = 0.10
)

// comparisonCorpusCap limits how many approved records the uniqueness and
// potential-duplicates scans compare against.
const comparisonCorpusCap = 50

// Uniqueness steps: the higher the maximum similarity observed against the
// corpus, the lower the uniqueness score.
var uniquenessSteps = []struct {
	maxSimilarity float64
	score         int
}{
	{0.9, 10},
	{0.8, 30},
	{0.7, 50},
	{0.6, 70},
}

const (
	uniquenessFloor    = 90  // some overlap, nothing above the steps
	uniquenessNoCorpus = 100 // no comparable records exist
)

// Analyzer runs quality analysis against a storage collaborator.
type Analyzer struct {
	store Storage
	now   func() time.Time
}

// New returns an Analyzer. The clock defaults to time.Now and is overridden
// in tests for deterministic engagement and timestamps.
func New(store Storage) *Analyzer {
	return &Analyzer{store: store, now: time.Now}
}

// WithClock replaces the analyzer's clock and returns it.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// AnalyzeOne computes and persists QualityMetrics for a single record.
//
// A missing record returns an error wrapping ErrNotFound with nothing
// written. Failure to load the comparison corpus or the flag count degrades
// that sub-score to its documented fallback, logs a warning to w, and the
// computation proceeds. A write-back failure returns the computed metrics
// together with a *PersistenceError so the caller knows the scores exist
// but were not saved.
func (a *Analyzer) AnalyzeOne(ctx context.Context, recordID string, w io.Writer) (types.QualityMetrics, error) {
	corpus, err := a.comparisonCorpus(ctx)
	if err != nil {
		fmt.Fprintf(w, "warning: comparison corpus unavailable for %s, treating record as unique: %v\n", recordID, err)
		corpus = nil
	}
	return a.analyzeAgainst(ctx, recordID, corpus, w)
}

// compute derives all sub-scores and the weighted overall score for one
// record against a pre-tokenized comparison corpus. corpus may be nil, in
// which case the record is treated as fully unique.
func (a *Analyzer) compute(ctx context.Context, record types.Record, corpus []cluster.Entry, w io.Writer) types.QualityMetrics {
	flagCount, err := a.store.CountPendingFlags(ctx, record.ID)
	if err != nil {
		fmt.Fprintf(w, "warning: flag count unavailable for %s, assuming none: %v\n", record.ID, err)
		flagCount = 0
	}

	stats := textstats.Analyze(record.Title, record.Description)
	now := a.now()

	completeness := metrics.Completeness(len(record.Title), len(record.Description), record.CategoryAssigned)
	readability := metrics.Readability(stats.WordCount, stats.SentenceCount, len(record.Description))
	engagement := metrics.Engagement(record.VoteCount, record.DaysSinceCreation(now))
	spam := metrics.SpamProbability(record.Title, record.Description, flagCount)

	titleWords := textstats.WordSet(record.Title)
	uniqueness := uniquenessScore(record.ID, titleWords, corpus)
	duplicates := cluster.PotentialDuplicates(record.ID, titleWords, corpus)

	return types.QualityMetrics{
		RecordID:            record.ID,
		CompletenessScore:   completeness,
		ReadabilityScore:    readability,
		EngagementScore:     engagement,
		UniquenessScore:     uniqueness,
		SpamProbability:     spam,
		OverallQualityScore: Overall(completeness, readability, engagement, uniqueness, spam),
		PotentialDuplicates: duplicates,
		CalculatedAt:        now,
	}
}

// Overall combines the five sub-scores into the weighted overall quality
// score, rounded half away from zero.
func Overall(completeness, readability, engagement, uniqueness int, spamProbability float64) int {
	weighted := float64(completeness)*completenessWeight +
		float64(readability)*readabilityWeight +
		float64(engagement)*engagementWeight +
		float64(uniqueness)*uniquenessWeight +
		(100-spamProbability*100)*spamWeight
	return int(math.Round(weighted))
}

// uniquenessScore maps the maximum title similarity observed against the
// corpus onto the fixed uniqueness steps. An empty corpus (or one holding
// only the record itself) scores 100.
func uniquenessScore(recordID string, words map[string]struct{}, corpus []cluster.Entry) int {
	maxSim := -1.0
	for _, entry := range corpus {
		if entry.ID == recordID {
			continue
		}
		if s := similarity.Jaccard(words, entry.Words); s > maxSim {
			maxSim = s
		}
	}
	if maxSim < 0 {
		return uniquenessNoCorpus
	}

	for _, step := range uniquenessSteps {
		if maxSim >= step.maxSimilarity {
			return step.score
		}
	}
	return uniquenessFloor
}

// comparisonCorpus fetches the approved records used for uniqueness and
// potential-duplicates scans and tokenizes their titles once.
func (a *Analyzer) comparisonCorpus(ctx context.Context) ([]cluster.Entry, error) {
	records, err := a.store.FetchRecords(ctx, types.RecordFilter{
		Status: types.StatusApproved,
		Limit:  comparisonCorpusCap,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]cluster.Entry, len(records))
	for i, r := range records {
		entries[i] = cluster.NewEntry(r.ID, r.Title)
	}
	return entries, nil
}

// DetectDuplicates fetches the corpus selected by filter and partitions it
// into duplicate clusters. An empty filter status defaults to approved
// records. Record order from storage is preserved exactly: the greedy
// clustering is order-dependent.
func (a *Analyzer) DetectDuplicates(ctx context.Context, filter types.RecordFilter) ([]types.DuplicateCluster, error) {
	if filter.Status == "" {
		filter.Status = types.StatusApproved
	}

	records, err := a.store.FetchRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching corpus: %w", err)
	}

	entries := make([]cluster.Entry, len(records))
	for i, r := range records {
		entries[i] = cluster.NewEntry(r.ID, r.Title)
	}
	return cluster.Build(entries), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quality-engine/internal/analyze"
	"github.com/pdiddy/quality-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.StorageConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(id string, created time.Time) types.Record {
	return types.Record{
		ID:               id,
		Title:            "Urban Air Quality Monitoring",
		Description:      "Particulate sensors report hourly readings across the city.",
		VoteCount:        7,
		CreatedAt:        created,
		CategoryAssigned: true,
		Status:           types.StatusApproved,
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	dataDir := t.TempDir()
	store, err := NewStore(types.StorageConfig{DataDir: dataDir})
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(dataDir, indexDir, dbFile))
	assert.NoError(t, err, "database file must exist after NewStore")
}

func TestRecordRoundtrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	created := time.Date(2026, 7, 1, 8, 30, 0, 0, time.UTC)
	want := sampleRecord("rec-1", created)
	require.NoError(t, store.UpsertRecord(ctx, want))

	got, err := store.FetchRecord(ctx, "rec-1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.VoteCount, got.VoteCount)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.CategoryAssigned)
	assert.Equal(t, types.StatusApproved, got.Status)
}

func TestFetchRecordNotFound(t *testing.T) {
	store := testStore(t)
	_, err := store.FetchRecord(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analyze.ErrNotFound))
}

func TestUpsertRecordReplaces(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	r := sampleRecord("rec-1", time.Now().UTC())
	require.NoError(t, store.UpsertRecord(ctx, r))
	require.NoError(t, store.UpdateRecordScore(ctx, "rec-1", 83))

	r.VoteCount = 12
	r.Status = types.StatusPending
	require.NoError(t, store.UpsertRecord(ctx, r))

	got, err := store.FetchRecord(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 12, got.VoteCount)
	assert.Equal(t, types.StatusPending, got.Status)
	assert.Equal(t, 83, got.OverallQualityScore, "re-import keeps the analysis-owned score")
}

func TestFetchRecordsFilterAndOrder(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i, status := range []types.RecordStatus{
		types.StatusApproved, types.StatusPending, types.StatusApproved, types.StatusRejected,
	} {
		r := sampleRecord(string(rune('a'+i))+"-rec", base.Add(time.Duration(i)*time.Hour))
		r.Status = status
		require.NoError(t, store.UpsertRecord(ctx, r))
	}

	approved, err := store.FetchRecords(ctx, types.RecordFilter{Status: types.StatusApproved})
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, "a-rec", approved[0].ID, "results ordered by creation time")
	assert.Equal(t, "c-rec", approved[1].ID)

	all, err := store.FetchRecords(ctx, types.RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	capped, err := store.FetchRecords(ctx, types.RecordFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestPendingFlags(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRecord(ctx, sampleRecord("rec-1", time.Now().UTC())))

	count, err := store.CountPendingFlags(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.SetPendingFlags(ctx, "rec-1", 3))
	count, err = store.CountPendingFlags(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Re-seeding replaces, not accumulates.
	require.NoError(t, store.SetPendingFlags(ctx, "rec-1", 1))
	count, err = store.CountPendingFlags(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsUpsertAndFetch(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRecord(ctx, sampleRecord("rec-1", time.Now().UTC())))

	calculated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m := types.QualityMetrics{
		RecordID:            "rec-1",
		CompletenessScore:   100,
		ReadabilityScore:    65,
		EngagementScore:     80,
		UniquenessScore:     90,
		SpamProbability:     0.1,
		OverallQualityScore: 86,
		PotentialDuplicates: []types.DuplicateMatch{
			{RecordID: "rec-2", Title: "Urban Air Monitoring", SimilarityScore: 0.75},
		},
		CalculatedAt: calculated,
	}
	require.NoError(t, store.UpsertMetrics(ctx, m))

	got, err := store.FetchMetrics(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, m.CompletenessScore, got.CompletenessScore)
	assert.Equal(t, m.SpamProbability, got.SpamProbability)
	require.Len(t, got.PotentialDuplicates, 1)
	assert.Equal(t, "rec-2", got.PotentialDuplicates[0].RecordID)
	assert.True(t, got.CalculatedAt.Equal(calculated))

	// Upsert overwrites the previous computation.
	m.OverallQualityScore = 42
	m.PotentialDuplicates = nil
	require.NoError(t, store.UpsertMetrics(ctx, m))

	got, err = store.FetchMetrics(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 42, got.OverallQualityScore)
	assert.Empty(t, got.PotentialDuplicates)
}

func TestFetchMetricsNotFound(t *testing.T) {
	store := testStore(t)
	_, err := store.FetchMetrics(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analyze.ErrNotFound))
}

func TestListMetrics(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"b-rec", "a-rec"} {
		require.NoError(t, store.UpsertRecord(ctx, sampleRecord(id, time.Now().UTC())))
		require.NoError(t, store.UpsertMetrics(ctx, types.QualityMetrics{
			RecordID: id, CalculatedAt: time.Now().UTC(),
		}))
	}

	all, err := store.ListMetrics(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a-rec", all[0].RecordID, "ordered by record ID")
}

func TestUpdateRecordScore(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRecord(ctx, sampleRecord("rec-1", time.Now().UTC())))
	require.NoError(t, store.UpdateRecordScore(ctx, "rec-1", 77))

	got, err := store.FetchRecord(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 77, got.OverallQualityScore)

	err = store.UpdateRecordScore(ctx, "missing", 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, analyze.ErrNotFound))
}

func TestImport(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "records.yaml")
	content := `records:
  - id: rec-1
    title: Urban Air Quality Monitoring
    description: Sensors report hourly.
    vote_count: 4
    created_at: 2026-07-01T08:30:00Z
    category_assigned: true
    status: approved
    pending_flags: 2
  - id: rec-2
    title: Community Garden Watering Schedule
  - id: ""
    title: missing identifier
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var out strings.Builder
	summary, err := store.Import(ctx, []string{path}, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.Total())

	r1, err := store.FetchRecord(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 4, r1.VoteCount)
	assert.Equal(t, types.StatusApproved, r1.Status)

	flags, err := store.CountPendingFlags(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 2, flags)

	r2, err := store.FetchRecord(ctx, "rec-2")
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, r2.Status, "status defaults to pending")
}

func TestImportBadFile(t *testing.T) {
	store := testStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":::bad\n"), 0o644))

	_, err := store.Import(context.Background(), []string{path}, &strings.Builder{})
	require.Error(t, err)
}

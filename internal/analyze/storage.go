// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"

	"github.com/pdiddy/quality-engine/pkg/types"
)

// Storage is the collaborator interface the analysis core consumes. The
// production implementation lives in internal/storage; tests substitute an
// in-memory fake.
type Storage interface {
	// FetchRecord returns the record with the given ID, or an error
	// wrapping ErrNotFound when it does not exist.
	FetchRecord(ctx context.Context, id string) (types.Record, error)

	// FetchRecords returns records matching the filter, in stable storage
	// order.
	FetchRecords(ctx context.Context, filter types.RecordFilter) ([]types.Record, error)

	// CountPendingFlags returns the number of unresolved moderation flags
	// on a record.
	CountPendingFlags(ctx context.Context, recordID string) (int, error)

	// UpsertMetrics writes a QualityMetrics row keyed by record ID,
	// replacing any previous row.
	UpsertMetrics(ctx context.Context, m types.QualityMetrics) error

	// UpdateRecordScore updates a record's denormalized overall score.
	UpdateRecordScore(ctx context.Context, recordID string, score int) error
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage implements the engine's storage collaborator on SQLite:
// records, their moderation flags, and the computed quality metrics.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quality-engine/internal/analyze"
	"github.com/pdiddy/quality-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "quality.db"
)

// Store manages the quality-engine SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at dataDir/index/quality.db
// and creates the schema if it does not exist.
func NewStore(cfg types.StorageConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			vote_count INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			category_assigned INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			overall_quality_score INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_status ON records(status)`,
		`CREATE TABLE IF NOT EXISTS moderation_flags (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			record_id TEXT NOT NULL REFERENCES records(id),
			reason TEXT NOT NULL DEFAULT '',
			resolved INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flags_record_id ON moderation_flags(record_id)`,
		`CREATE TABLE IF NOT EXISTS quality_metrics (
			record_id TEXT PRIMARY KEY REFERENCES records(id),
			completeness_score INTEGER NOT NULL,
			readability_score INTEGER NOT NULL,
			engagement_score INTEGER NOT NULL,
			uniqueness_score INTEGER NOT NULL,
			spam_probability REAL NOT NULL,
			overall_quality_score INTEGER NOT NULL,
			potential_duplicates TEXT,
			calculated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// FetchRecord returns one record by ID. A missing record returns an error
// wrapping analyze.ErrNotFound.
func (s *Store) FetchRecord(ctx context.Context, id string) (types.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, vote_count, created_at,
			category_assigned, status, overall_quality_score
		FROM records WHERE id = ?`, id)

	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Record{}, fmt.Errorf("%w: %s", analyze.ErrNotFound, id)
		}
		return types.Record{}, fmt.Errorf("fetching record %s: %w", id, err)
	}
	return r, nil
}

// FetchRecords returns records matching the filter, ordered by creation
// time then ID so corpus order is stable across runs.
func (s *Store) FetchRecords(ctx context.Context, filter types.RecordFilter) ([]types.Record, error) {
	query := `SELECT id, title, description, vote_count, created_at,
			category_assigned, status, overall_quality_score
		FROM records WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}

	query += ` ORDER BY created_at, id`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountPendingFlags returns the number of unresolved moderation flags on a
// record.
func (s *Store) CountPendingFlags(ctx context.Context, recordID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM moderation_flags WHERE record_id = ? AND resolved = 0`,
		recordID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting flags for %s: %w", recordID, err)
	}
	return count, nil
}

// UpsertMetrics writes a QualityMetrics row keyed by record ID, replacing
// any previous computation.
func (s *Store) UpsertMetrics(ctx context.Context, m types.QualityMetrics) error {
	duplicatesJSON, _ := json.Marshal(m.PotentialDuplicates)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quality_metrics (record_id, completeness_score, readability_score,
			engagement_score, uniqueness_score, spam_probability,
			overall_quality_score, potential_duplicates, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(record_id) DO UPDATE SET
			completeness_score=excluded.completeness_score,
			readability_score=excluded.readability_score,
			engagement_score=excluded.engagement_score,
			uniqueness_score=excluded.uniqueness_score,
			spam_probability=excluded.spam_probability,
			overall_quality_score=excluded.overall_quality_score,
			potential_duplicates=excluded.potential_duplicates,
			calculated_at=excluded.calculated_at`,
		m.RecordID, m.CompletenessScore, m.ReadabilityScore,
		m.EngagementScore, m.UniquenessScore, m.SpamProbability,
		m.OverallQualityScore, string(duplicatesJSON),
		m.CalculatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting metrics for %s: %w", m.RecordID, err)
	}
	return nil
}

// UpdateRecordScore updates a record's denormalized overall score.
func (s *Store) UpdateRecordScore(ctx context.Context, recordID string, score int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET overall_quality_score = ? WHERE id = ?`, score, recordID)
	if err != nil {
		return fmt.Errorf("updating score for %s: %w", recordID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", analyze.ErrNotFound, recordID)
	}
	return nil
}

// FetchMetrics returns the current QualityMetrics row for a record, or an
// error wrapping analyze.ErrNotFound when none exists.
func (s *Store) FetchMetrics(ctx context.Context, recordID string) (types.QualityMetrics, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record_id, completeness_score, readability_score, engagement_score,
			uniqueness_score, spam_probability, overall_quality_score,
			potential_duplicates, calculated_at
		FROM quality_metrics WHERE record_id = ?`, recordID)

	m, err := scanMetrics(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.QualityMetrics{}, fmt.Errorf("%w: no metrics for %s", analyze.ErrNotFound, recordID)
		}
		return types.QualityMetrics{}, fmt.Errorf("fetching metrics for %s: %w", recordID, err)
	}
	return m, nil
}

// ListMetrics returns all current QualityMetrics rows ordered by record ID.
func (s *Store) ListMetrics(ctx context.Context) ([]types.QualityMetrics, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id, completeness_score, readability_score, engagement_score,
			uniqueness_score, spam_probability, overall_quality_score,
			potential_duplicates, calculated_at
		FROM quality_metrics ORDER BY record_id`)
	if err != nil {
		return nil, fmt.Errorf("querying metrics: %w", err)
	}
	defer rows.Close()

	var all []types.QualityMetrics
	for rows.Next() {
		m, err := scanMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning metrics: %w", err)
		}
		all = append(all, m)
	}
	return all, rows.Err()
}

// UpsertRecord inserts or updates a record by ID. The denormalized overall
// score is preserved on update; analysis owns that column.
func (s *Store) UpsertRecord(ctx context.Context, r types.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (id, title, description, vote_count, created_at,
			category_assigned, status, overall_quality_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, description=excluded.description,
			vote_count=excluded.vote_count, created_at=excluded.created_at,
			category_assigned=excluded.category_assigned, status=excluded.status`,
		r.ID, r.Title, r.Description, r.VoteCount,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(r.CategoryAssigned), string(r.Status), r.OverallQualityScore,
	)
	if err != nil {
		return fmt.Errorf("upserting record %s: %w", r.ID, err)
	}
	return nil
}

// SetPendingFlags replaces a record's unresolved flag rows so that exactly
// count remain pending.
func (s *Store) SetPendingFlags(ctx context.Context, recordID string, count int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM moderation_flags WHERE record_id = ? AND resolved = 0`, recordID); err != nil {
		return fmt.Errorf("clearing flags for %s: %w", recordID, err)
	}
	for n := 0; n < count; n++ {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO moderation_flags (record_id, resolved) VALUES (?, 0)`, recordID); err != nil {
			return fmt.Errorf("inserting flag for %s: %w", recordID, err)
		}
	}
	return tx.Commit()
}

// scanner abstracts *sql.Row and *sql.Rows for the shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.Record, error) {
	var (
		r           types.Record
		createdAt   string
		categorized int
		status      string
	)
	if err := sc.Scan(&r.ID, &r.Title, &r.Description, &r.VoteCount,
		&createdAt, &categorized, &status, &r.OverallQualityScore); err != nil {
		return types.Record{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = t
	}
	r.CategoryAssigned = categorized != 0
	r.Status = types.RecordStatus(status)
	return r, nil
}

func scanMetrics(sc scanner) (types.QualityMetrics, error) {
	var (
		m              types.QualityMetrics
		duplicatesJSON sql.NullString
		calculatedAt   string
	)
	if err := sc.Scan(&m.RecordID, &m.CompletenessScore, &m.ReadabilityScore,
		&m.EngagementScore, &m.UniquenessScore, &m.SpamProbability,
		&m.OverallQualityScore, &duplicatesJSON, &calculatedAt); err != nil {
		return types.QualityMetrics{}, err
	}
	if duplicatesJSON.Valid {
		json.Unmarshal([]byte(duplicatesJSON.String), &m.PotentialDuplicates)
	}
	if t, err := time.Parse(time.RFC3339Nano, calculatedAt); err == nil {
		m.CalculatedAt = t
	}
	return m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the quality-engine core:
// the Record under evaluation, the computed QualityMetrics, duplicate
// cluster results, and stage configuration.
package types

import "time"

// RecordStatus tracks a record's moderation state.
type RecordStatus string

const (
	StatusPending  RecordStatus = "pending"
	StatusApproved RecordStatus = "approved"
	StatusRejected RecordStatus = "rejected"
)

// Record is one user-submitted title+description item being scored. It is
// created by the submission layer; this subsystem reads it and writes back
// only the denormalized overall quality score.
type Record struct {
	// ID is the record's stable, opaque identifier.
	ID string `json:"id" yaml:"id"`

	// Title is the short submitted title. Never empty for a stored record.
	Title string `json:"title" yaml:"title"`

	// Description is the longer body text. May be empty.
	Description string `json:"description" yaml:"description"`

	// VoteCount is the current number of community votes. Mutable externally.
	VoteCount int `json:"vote_count" yaml:"vote_count"`

	// CreatedAt is the submission time. Immutable once set.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// CategoryAssigned reports whether the record carries a category reference.
	CategoryAssigned bool `json:"category_assigned" yaml:"category_assigned"`

	// Status is the moderation state ("pending", "approved", "rejected").
	Status RecordStatus `json:"status" yaml:"status"`

	// OverallQualityScore is the denormalized copy of the most recent
	// computed overall score. Zero until first analysis.
	OverallQualityScore int `json:"overall_quality_score" yaml:"overall_quality_score"`
}

// DaysSinceCreation returns the whole number of days between CreatedAt and
// now, never negative.
func (r Record) DaysSinceCreation(now time.Time) int {
	if r.CreatedAt.IsZero() || !now.After(r.CreatedAt) {
		return 0
	}
	return int(now.Sub(r.CreatedAt).Hours() / 24)
}

// RecordFilter selects a subset of records from storage.
type RecordFilter struct {
	// Status restricts results to records in the given moderation state.
	// Empty matches all states.
	Status RecordStatus `json:"status" yaml:"status"`

	// Limit caps the number of results. Zero means no cap.
	Limit int `json:"limit" yaml:"limit"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DuplicateMatch links a record to another record it closely resembles,
// with the Jaccard similarity of their normalized title word sets.
type DuplicateMatch struct {
	// RecordID identifies the matched record.
	RecordID string `json:"record_id" yaml:"record_id"`

	// Title is the matched record's title, carried for display.
	Title string `json:"title" yaml:"title"`

	// SimilarityScore is in [0,1]. A cluster anchor lists itself with 1.0.
	SimilarityScore float64 `json:"similarity_score" yaml:"similarity_score"`
}

// QualityMetrics is the computed result for one Record at one point in time.
// Sub-scores are in [0,100] except SpamProbability, which is in [0,1].
// OverallQualityScore is always derived from the other five fields and the
// fixed weight table, never set independently.
type QualityMetrics struct {
	// RecordID references the scored Record.
	RecordID string `json:"record_id" yaml:"record_id"`

	// CompletenessScore rewards filled-in titles, descriptions, and category.
	CompletenessScore int `json:"completeness_score" yaml:"completeness_score"`

	// ReadabilityScore rewards sentence and word lengths in readable ranges.
	ReadabilityScore int `json:"readability_score" yaml:"readability_score"`

	// EngagementScore maps vote velocity onto a fixed step scale.
	EngagementScore int `json:"engagement_score" yaml:"engagement_score"`

	// UniquenessScore is derived from the maximum similarity observed
	// against the comparison corpus; 100 when no comparable records exist.
	UniquenessScore int `json:"uniqueness_score" yaml:"uniqueness_score"`

	// SpamProbability accumulates flag weight, pattern matches, and the
	// repetition heuristic, clamped to [0,1].
	SpamProbability float64 `json:"spam_probability" yaml:"spam_probability"`

	// OverallQualityScore is the weighted aggregate in [0,100].
	OverallQualityScore int `json:"overall_quality_score" yaml:"overall_quality_score"`

	// PotentialDuplicates lists up to five similar approved records,
	// similarity descending.
	PotentialDuplicates []DuplicateMatch `json:"potential_duplicates,omitempty" yaml:"potential_duplicates,omitempty"`

	// CalculatedAt is when this computation ran.
	CalculatedAt time.Time `json:"calculated_at" yaml:"calculated_at"`
}

// DuplicateCluster is a group of mutually similar records found in one
// clustering run. Only groups of two or more members are emitted.
type DuplicateCluster struct {
	// ClusterID is a sequential integer scoped to one clustering run.
	ClusterID int `json:"cluster_id" yaml:"cluster_id"`

	// Members lists the cluster's records with their similarity to the
	// anchor, descending. The anchor itself appears with similarity 1.0.
	Members []DuplicateMatch `json:"members" yaml:"members"`
}

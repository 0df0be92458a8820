// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cluster groups records into duplicate clusters by pairwise title
// similarity. The algorithm is single-pass greedy single-link: the first
// unprocessed record in input order anchors a group and absorbs every
// subsequent unprocessed record above the threshold. Members need not be
// mutually similar, only similar to the anchor, and a record consumed by an
// earlier anchor is never re-evaluated for a later one. Output therefore
// depends on input order, which callers must keep stable for reproducibility.
package cluster

import (
	"sort"

	"github.com/pdiddy/quality-engine/internal/similarity"
	"github.com/pdiddy/quality-engine/internal/textstats"
	"github.com/pdiddy/quality-engine/pkg/types"
)

const (
	// clusterThreshold is the strict lower bound on title similarity for a
	// record to join an anchor's cluster.
	clusterThreshold = 0.7

	// pairwiseThreshold is the strict lower bound for the per-record
	// potential-duplicates scan.
	pairwiseThreshold = 0.6

	// maxPotentialDuplicates caps the per-record match list.
	maxPotentialDuplicates = 5
)

// Entry is one record prepared for clustering: its identity plus the
// normalized word set of its title, tokenized once up front.
type Entry struct {
	ID    string
	Title string
	Words map[string]struct{}
}

// NewEntry tokenizes a record's title into a clustering entry.
func NewEntry(id, title string) Entry {
	return Entry{ID: id, Title: title, Words: textstats.WordSet(title)}
}

// Build partitions entries into disjoint duplicate clusters. Iteration
// follows input order exactly. Groups of a single record are discarded;
// cluster IDs are sequential within this run, starting at 1.
func Build(entries []Entry) []types.DuplicateCluster {
	processed := make(map[string]bool, len(entries))
	var clusters []types.DuplicateCluster

	for i, anchor := range entries {
		if processed[anchor.ID] {
			continue
		}
		processed[anchor.ID] = true

		members := []types.DuplicateMatch{
			{RecordID: anchor.ID, Title: anchor.Title, SimilarityScore: 1.0},
		}

		for _, candidate := range entries[i+1:] {
			if processed[candidate.ID] {
				continue
			}
			score := similarity.Jaccard(anchor.Words, candidate.Words)
			if score > clusterThreshold {
				processed[candidate.ID] = true
				members = append(members, types.DuplicateMatch{
					RecordID:        candidate.ID,
					Title:           candidate.Title,
					SimilarityScore: score,
				})
			}
		}

		if len(members) < 2 {
			continue
		}

		sortMatches(members)
		clusters = append(clusters, types.DuplicateCluster{
			ClusterID: len(clusters) + 1,
			Members:   members,
		})
	}

	return clusters
}

// PotentialDuplicates compares one record's title words against a corpus of
// entries and returns matches above the pairwise threshold, similarity
// descending, capped at five. An entry sharing the record's ID is skipped.
func PotentialDuplicates(recordID string, words map[string]struct{}, corpus []Entry) []types.DuplicateMatch {
	var matches []types.DuplicateMatch
	for _, candidate := range corpus {
		if candidate.ID == recordID {
			continue
		}
		score := similarity.Jaccard(words, candidate.Words)
		if score > pairwiseThreshold {
			matches = append(matches, types.DuplicateMatch{
				RecordID:        candidate.ID,
				Title:           candidate.Title,
				SimilarityScore: score,
			})
		}
	}

	sortMatches(matches)
	if len(matches) > maxPotentialDuplicates {
		matches = matches[:maxPotentialDuplicates]
	}
	return matches
}

// sortMatches orders matches by similarity descending, breaking ties by
// record ID so output is stable.
func sortMatches(matches []types.DuplicateMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].SimilarityScore != matches[j].SimilarityScore {
			return matches[i].SimilarityScore > matches[j].SimilarityScore
		}
		return matches[i].RecordID < matches[j].RecordID
	})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import "testing"

func TestCompleteness(t *testing.T) {
	tests := []struct {
		name        string
		titleLen    int
		descLen     int
		hasCategory bool
		want        int
	}{
		{"full record caps at 100", 28, 312, true, 100},
		{"empty record", 0, 0, false, 0},
		{"medium title and partial description", 12, 60, false, 40},
		{"short title and minimal description", 5, 20, false, 20},
		{"long title and full description without category", 25, 250, false, 80},
		{"category alone", 0, 0, true, 20},
		{"boundary title lengths", 20, 0, false, 30},
		{"boundary description lengths", 0, 200, false, 50},
		{"just below boundaries", 19, 199, false, 20 + 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Completeness(tt.titleLen, tt.descLen, tt.hasCategory)
			if got != tt.want {
				t.Errorf("Completeness(%d, %d, %v) = %d, want %d",
					tt.titleLen, tt.descLen, tt.hasCategory, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Completeness out of range: %d", got)
			}
		})
	}
}

func TestReadability(t *testing.T) {
	tests := []struct {
		name          string
		wordCount     int
		sentenceCount int
		descLen       int
		want          int
	}{
		{"zero sentences guards division", 5, 0, 100, 0},
		{"zero words guards division", 0, 0, 50, 0},
		{"ideal ranges on both axes", 50, 5, 250, 100},
		{"ok word length only", 40, 10, 140, 50 + 15},
		{"ok sentence length only", 30, 1, 300, 50 + 15},
		{"neither range hit", 200, 1, 2200, 50},
		{"sentence boundary at thirty words", 30, 1, 150, 50 + 15 + 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Readability(tt.wordCount, tt.sentenceCount, tt.descLen)
			if got != tt.want {
				t.Errorf("Readability(%d, %d, %d) = %d, want %d",
					tt.wordCount, tt.sentenceCount, tt.descLen, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Readability out of range: %d", got)
			}
		})
	}
}

func TestEngagement(t *testing.T) {
	tests := []struct {
		name      string
		voteCount int
		days      int
		want      int
	}{
		{"zero days is neutral", 0, 0, 50},
		{"zero days ignores votes", 100, 0, 50},
		{"five votes per day", 10, 2, 100},
		{"two votes per day", 4, 2, 80},
		{"one vote per day", 3, 3, 60},
		{"half vote per day", 1, 2, 40},
		{"tenth vote per day", 1, 10, 20},
		{"stale record", 0, 5, 10},
		{"boundary takes the step value", 1, 1, 60},
		{"just below a step", 9, 2, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Engagement(tt.voteCount, tt.days)
			if got != tt.want {
				t.Errorf("Engagement(%d, %d) = %d, want %d", tt.voteCount, tt.days, got, tt.want)
			}
		})
	}
}

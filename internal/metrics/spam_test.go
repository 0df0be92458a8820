// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"math"
	"testing"
)

func TestSpamProbability(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		flagCount   int
		want        float64
	}{
		{
			name:  "clean text",
			title: "Urban Air Quality Monitoring",
			description: "Particulate sensors report hourly readings across the city. " +
				"Residents can compare neighborhoods before choosing a commute route.",
			flagCount: 0,
			want:      0,
		},
		{
			// Promotional phrases "free money" and "buy now" (0.2), a caps
			// run, a triple exclamation, and a double dollar sign (0.3).
			name:      "classic spam text",
			title:     "FREE MONEY!!! buy now $$$",
			flagCount: 0,
			want:      0.5,
		},
		{
			name:      "flags alone",
			title:     "Urban Air Quality Monitoring",
			flagCount: 2,
			want:      0.4,
		},
		{
			name:      "clamped at one",
			title:     "Urban Air Quality Monitoring",
			flagCount: 6,
			want:      1.0,
		},
		{
			name:        "repetition heuristic",
			title:       "spam spam spam spam",
			description: "hello there",
			flagCount:   0,
			want:        0.3,
		},
		{
			name:        "short repeated words do not count",
			title:       "ha ha ha ha ha ha",
			description: "",
			flagCount:   0,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpamProbability(tt.title, tt.description, tt.flagCount)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SpamProbability = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("SpamProbability out of range: %v", got)
			}
		})
	}
}

func TestSpamProbabilityCapsNeedOriginalCase(t *testing.T) {
	// The caps-run family inspects the original casing; an all-lowercase
	// rendering of the same text must score lower.
	upper := SpamProbability("WINNER WINNER chicken dinner and more words here", "", 0)
	lower := SpamProbability("winner winner chicken dinner and more words here", "", 0)
	if upper <= lower {
		t.Errorf("caps run did not contribute: upper=%v lower=%v", upper, lower)
	}
}

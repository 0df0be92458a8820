// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"regexp"
	"strings"

	"github.com/pdiddy/quality-engine/internal/textstats"
)

// Spam weights. Each unresolved moderation flag contributes flagWeight, each
// pattern match contributes patternWeight, and heavy word repetition adds a
// single flat repetitionWeight. The result is clamped at 1.0, not
// re-normalized.
const (
	flagWeight       = 0.2
	patternWeight    = 0.1
	repetitionWeight = 0.3

	// repetitionShare is the fraction of all tokens above which a single
	// repeated word marks the text as repetition spam.
	repetitionShare = 0.3

	// repetitionMinLen excludes short filler words from the repetition
	// check; only words longer than this count.
	repetitionMinLen = 3
)

// Pattern families checked against the combined title+description text.
// All but capsRun match the lowercased text; capsRun needs the original
// casing to see uppercase runs.
var (
	promoPattern   = regexp.MustCompile(`\b(buy now|click here|limited time|act now|order now|free money|100% free)\b`)
	scamPattern    = regexp.MustCompile(`\b(lottery|winner|congratulations|claim your|wire transfer|casino|get rich)\b`)
	capsRunPattern = regexp.MustCompile(`[A-Z]{5,}`)
	bangsPattern   = regexp.MustCompile(`!{3,}`)
	dollarsPattern = regexp.MustCompile(`\${2,}`)
)

// SpamProbability estimates how likely a record is spam, in [0,1]. It starts
// from the unresolved flag count, adds pattern-family matches over the
// combined text, and adds a repetition heuristic: any single word longer
// than three characters making up more than 30% of all tokens.
func SpamProbability(title, description string, flagCount int) float64 {
	combined := title + " " + description
	lowered := strings.ToLower(combined)

	probability := float64(flagCount) * flagWeight

	for _, p := range []*regexp.Regexp{promoPattern, scamPattern, bangsPattern, dollarsPattern} {
		probability += patternWeight * float64(len(p.FindAllString(lowered, -1)))
	}
	probability += patternWeight * float64(len(capsRunPattern.FindAllString(combined, -1)))

	if hasRepetitionSpam(combined) {
		probability += repetitionWeight
	}

	if probability > 1.0 {
		probability = 1.0
	}
	return probability
}

// hasRepetitionSpam reports whether any single qualifying word exceeds the
// repetition share of all word tokens.
func hasRepetitionSpam(text string) bool {
	tokens := textstats.Tokens(strings.ToLower(text))
	if len(tokens) == 0 {
		return false
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		if len(tok) > repetitionMinLen {
			counts[tok]++
		}
	}

	limit := repetitionShare * float64(len(tokens))
	for _, n := range counts {
		if float64(n) > limit {
			return true
		}
	}
	return false
}

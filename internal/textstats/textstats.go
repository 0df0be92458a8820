// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textstats normalizes raw title+description text into the word sets
// and counts consumed by the metric calculators and the similarity engine.
package textstats

import (
	"strings"
	"unicode"
)

// minWordLen is the length below which a token is dropped from the
// normalized word set. Short tokens (articles, pronouns) carry no signal
// for similarity comparison.
const minWordLen = 3

// Stats holds the normalized view of one record's text.
type Stats struct {
	// Words is the normalized word set built from title and description:
	// lowercased, punctuation-stripped tokens longer than two characters.
	Words map[string]struct{}

	// WordCount counts all whitespace-delimited tokens from both fields,
	// including short ones.
	WordCount int

	// SentenceCount counts non-empty segments of the description split on
	// '.', '!', and '?'. Zero when the description is empty, which
	// short-circuits readability scoring.
	SentenceCount int
}

// Analyze tokenizes a record's title and description.
func Analyze(title, description string) Stats {
	combined := title + " " + description
	return Stats{
		Words:         WordSet(combined),
		WordCount:     len(Tokens(combined)),
		SentenceCount: countSentences(description),
	}
}

// WordSet returns the normalized word set for text: lowercased tokens with
// punctuation stripped, keeping only words longer than two characters.
func WordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(text) {
		word := normalizeToken(tok)
		if len(word) >= minWordLen {
			set[word] = struct{}{}
		}
	}
	return set
}

// Tokens splits text on whitespace without any normalization.
func Tokens(text string) []string {
	return strings.Fields(text)
}

// normalizeToken lowercases a token and strips everything except letters
// and digits.
func normalizeToken(tok string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(tok) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// countSentences counts non-empty segments split on sentence terminators.
func countSentences(description string) int {
	if strings.TrimSpace(description) == "" {
		return 0
	}
	segments := strings.FieldsFunc(description, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	count := 0
	for _, seg := range segments {
		if strings.TrimSpace(seg) != "" {
			count++
		}
	}
	return count
}

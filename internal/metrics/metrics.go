// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics implements the four quality sub-score calculators:
// completeness, readability, engagement, and spam probability. All are pure
// functions over counts and text; the thresholds and point buckets are fixed
// named constants with no configuration surface.
package metrics

// Completeness point buckets. Additive, capped at 100.
const (
	titleLongChars   = 20
	titleMediumChars = 10
	titleShortChars  = 5

	titleLongPoints   = 30
	titleMediumPoints = 20
	titleShortPoints  = 10

	descFullChars    = 200
	descGoodChars    = 100
	descPartialChars = 50
	descMinimalChars = 20

	descFullPoints    = 50
	descGoodPoints    = 35
	descPartialPoints = 20
	descMinimalPoints = 10

	categoryPoints = 20

	maxScore = 100
)

// Completeness scores how filled-in a record is from its title length,
// description length, and category assignment. Returns a value in [0,100].
func Completeness(titleLength, descriptionLength int, hasCategory bool) int {
	score := 0

	switch {
	case titleLength >= titleLongChars:
		score += titleLongPoints
	case titleLength >= titleMediumChars:
		score += titleMediumPoints
	case titleLength >= titleShortChars:
		score += titleShortPoints
	}

	switch {
	case descriptionLength >= descFullChars:
		score += descFullPoints
	case descriptionLength >= descGoodChars:
		score += descGoodPoints
	case descriptionLength >= descPartialChars:
		score += descPartialPoints
	case descriptionLength >= descMinimalChars:
		score += descMinimalPoints
	}

	if hasCategory {
		score += categoryPoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Readability ranges. Average words per sentence and average characters per
// word each contribute up to 25 points on top of a base of 50.
const (
	readabilityBase = 50

	idealWordsPerSentenceMin = 10.0
	idealWordsPerSentenceMax = 20.0
	okWordsPerSentenceMin    = 5.0
	okWordsPerSentenceMax    = 30.0

	idealCharsPerWordMin = 4.0
	idealCharsPerWordMax = 6.0
	okCharsPerWordMin    = 3.0
	okCharsPerWordMax    = 8.0

	idealRangePoints = 25
	okRangePoints    = 15
)

// Readability scores sentence and word lengths against readable ranges.
// Returns 0 when there are no sentences or no words, guarding the averages
// against division by zero. Returns a value in [0,100].
func Readability(wordCount, sentenceCount, descriptionLength int) int {
	if sentenceCount == 0 || wordCount == 0 {
		return 0
	}

	score := readabilityBase

	wordsPerSentence := float64(wordCount) / float64(sentenceCount)
	switch {
	case wordsPerSentence >= idealWordsPerSentenceMin && wordsPerSentence <= idealWordsPerSentenceMax:
		score += idealRangePoints
	case wordsPerSentence >= okWordsPerSentenceMin && wordsPerSentence <= okWordsPerSentenceMax:
		score += okRangePoints
	}

	charsPerWord := float64(descriptionLength) / float64(wordCount)
	switch {
	case charsPerWord >= idealCharsPerWordMin && charsPerWord <= idealCharsPerWordMax:
		score += idealRangePoints
	case charsPerWord >= okCharsPerWordMin && charsPerWord <= okCharsPerWordMax:
		score += okRangePoints
	}

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Engagement vote-velocity steps. Ties favor the lower threshold's score:
// a velocity exactly on a boundary takes that boundary's value.
const (
	neutralEngagement = 50
)

var engagementSteps = []struct {
	votesPerDay float64
	score       int
}{
	{5, 100},
	{2, 80},
	{1, 60},
	{0.5, 40},
	{0.1, 20},
}

const engagementFloor = 10

// Engagement maps vote velocity onto a fixed step scale. A record created
// today (zero whole days old) scores a neutral 50: there is not enough data
// to judge velocity. Returns a value in [0,100].
func Engagement(voteCount, daysSinceCreation int) int {
	if daysSinceCreation == 0 {
		return neutralEngagement
	}

	votesPerDay := float64(voteCount) / float64(daysSinceCreation)
	for _, step := range engagementSteps {
		if votesPerDay >= step.votesPerDay {
			return step.score
		}
	}
	return engagementFloor
}

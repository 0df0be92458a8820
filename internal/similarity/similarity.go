// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity computes lexical similarity between normalized word
// sets. The model is word-set based, not semantic: two records are similar
// when their vocabularies overlap.
package similarity

// Jaccard returns the Jaccard index |A∩B| / |A∪B| for two normalized word
// sets, in [0,1]. An empty union yields 0. The function is symmetric.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

package titles

import (
	"github.com/hbollon/go-edlib"
)

// Similarity returns the Jaro-Winkler similarity of two titles after
// normalization. Jaro-Winkler favors common prefixes, which works well for
// media titles that differ in subtitles or sequel suffixes.
func Similarity(a, b string) float64 {
	return float64(edlib.JaroWinklerSimilarity(Clean(a), Clean(b)))
}

// Match represents a ranked candidate title.
type Match struct {
	Title string
	Score float64 // Jaro-Winkler similarity (0.0-1.0)
}

// Rank scores candidates against a query title and returns them in
// descending score order, dropping anything below minScore.
func Rank(query string, candidates []string, minScore float64) []Match {
	normalized := Clean(query)

	var matches []Match
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, Clean(candidate)))
		if score >= minScore {
			matches = append(matches, Match{Title: candidate, Score: score})
		}
	}

	// Insertion sort keeps the common small-candidate case cheap.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Score > matches[j-1].Score; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	return matches
}

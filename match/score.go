// Package match scores and ranks candidate game titles against a query.
package match

import (
	"sort"

	"github.com/ryanm101/titlematch/normalize"
)

// Scorer computes a similarity score in [0,100] between a query and a
// candidate title. Implementations must be deterministic; alternative
// algorithms (trigram, phonetic) can be swapped in behind this interface.
type Scorer interface {
	Score(query, candidate string) int
}

// Scoring policy constants. Fixed here rather than tuned per call so that
// ranking is reproducible and testable.
const (
	prefixBonus = 5 // one normalized string is a prefix of the other
	// lengthPenalty applies when the longer string is more than twice the
	// length of the shorter, to keep "Mario" from matching
	// "Mario Party Superstars Deluxe Collection" too eagerly.
	lengthPenalty = 10
)

// LevenshteinScorer scores titles by normalized edit distance.
type LevenshteinScorer struct{}

// NewScorer returns the default title scorer.
func NewScorer() *LevenshteinScorer {
	return &LevenshteinScorer{}
}

// Score returns round(100 * (1 - lev/maxLen)) over the normalized forms of
// query and candidate, plus a prefix bonus and a length-disparity penalty,
// clamped to [0,100]. Equal normalized strings score exactly 100 and
// nothing else does.
func (s *LevenshteinScorer) Score(query, candidate string) int {
	a := normalize.MatchKey(query)
	b := normalize.MatchKey(candidate)

	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	// Distances are counted in runes so multibyte titles are not penalized
	// per byte.
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	maxLen, minLen := la, lb
	if lb > la {
		maxLen, minLen = lb, la
	}

	dist := levenshtein(ra, rb)
	score := int(float64(100*(maxLen-dist))/float64(maxLen) + 0.5)

	if hasPrefix(ra, rb) || hasPrefix(rb, ra) {
		score += prefixBonus
	}
	if maxLen > 2*minLen {
		score -= lengthPenalty
	}

	if score < 0 {
		return 0
	}
	// 100 is reserved for exact normalized matches.
	if score > 99 {
		return 99
	}
	return score
}

// Ranked pairs an index into the caller's candidate slice with its score.
type Ranked struct {
	Index int
	Score int
}

// Rank scores every candidate name against the query and returns them
// ordered by descending score. The sort is stable: equal scores keep the
// original candidate order, so the best match is reproducible across runs.
func Rank(s Scorer, query string, names []string) []Ranked {
	ranked := make([]Ranked, len(names))
	for i, name := range names {
		ranked[i] = Ranked{Index: i, Score: s.Score(query, name)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// levenshtein computes edit distance over runes with a two-row matrix.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	lenA, lenB := len(a), len(b)
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

func hasPrefix(s, prefix []rune) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

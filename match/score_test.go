package match

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "ab", 1},
		{"abc", "abcd", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"", "hello", 5},
		{"hello", "", 5},
		// Multibyte runes count as one edit each, not one per byte.
		{"さくら", "さすら", 1},
		{"ゼルダ", "ゼルダの", 1},
	}

	for _, tc := range tests {
		t.Run(tc.a+"_"+tc.b, func(t *testing.T) {
			if got := levenshtein([]rune(tc.a), []rune(tc.b)); got != tc.expected {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestScoreExactMatch(t *testing.T) {
	s := NewScorer()
	inputs := []string{
		"Mario Kart 8",
		"mario kart 8",
		"MARIO KART 8 (Europe)",
		"The Witcher 3",
		"x",
	}
	for _, in := range inputs {
		if got := s.Score(in, in); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", in, in, got)
		}
	}

	// Normalized-equal inputs also score 100.
	if got := s.Score("Mario Kart 8 (Europe)", "mario kart 8"); got != 100 {
		t.Errorf("normalized-equal pair scored %d, want 100", got)
	}
}

func TestScoreRange(t *testing.T) {
	s := NewScorer()
	pairs := [][2]string{
		{"Mario", "completely unrelated title with many words"},
		{"a", "b"},
		{"Mario Kart", "Mario Kart 8 Deluxe"},
		{"", "anything"},
		{"short", "x"},
	}
	for _, p := range pairs {
		got := s.Score(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Score(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestScoreNonEqualNeverHits100(t *testing.T) {
	s := NewScorer()
	// A long near-identical pair where ratio plus prefix bonus would pass
	// 100 without the cap.
	a := "super mario bros the lost levels special edition"
	b := "super mario bros the lost levels special editio"
	if got := s.Score(a, b); got >= 100 {
		t.Errorf("Score(%q, %q) = %d, want < 100", a, b, got)
	}
}

func TestScoreCountsRunesNotBytes(t *testing.T) {
	s := NewScorer()
	// One substituted rune out of three. A byte-based distance would see one
	// differing byte out of nine and score far higher.
	if got := s.Score("さくら", "さすら"); got != 67 {
		t.Errorf("Score = %d, want 67 (one rune edit out of three)", got)
	}
}

func TestScoreMonotonicWithDistance(t *testing.T) {
	s := NewScorer()
	query := "mario kart 8"
	closer := s.Score(query, "mario kart 9")
	farther := s.Score(query, "sonic racing transformed")
	if closer <= farther {
		t.Errorf("closer candidate scored %d, farther scored %d", closer, farther)
	}
}

func TestScorePrefixBonus(t *testing.T) {
	s := NewScorer()
	// Same distance from the query, but one candidate extends the query as
	// a prefix.
	withPrefix := s.Score("mario kart", "mario kart 8")
	withOut := s.Score("mario kart", "mario karz 8")
	if withPrefix <= withOut {
		t.Errorf("prefix candidate scored %d, non-prefix scored %d", withPrefix, withOut)
	}
}

func TestScoreLengthDisparityPenalty(t *testing.T) {
	s := NewScorer()
	// maxLen > 2*minLen triggers the penalty; compare against the raw
	// ratio-with-bonus for the same pair.
	got := s.Score("mario", "mario party superstars deluxe collection")
	if got > 20 {
		t.Errorf("disparate-length pair scored %d, want a heavily penalized score", got)
	}
}

func TestRankDescendingAndStable(t *testing.T) {
	s := NewScorer()
	names := []string{
		"Sonic Adventure",
		"Mario Kart 8 Deluxe",
		"Mario Kart 8 Deluxe", // duplicate: equal score, must keep order
		"Mario Kart 8",
	}

	ranked := Rank(s, "Mario Kart 8", names)

	if len(ranked) != len(names) {
		t.Fatalf("Rank returned %d entries, want %d", len(ranked), len(names))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("ranking not descending at %d: %v", i, ranked)
		}
	}

	if ranked[0].Index != 3 {
		t.Errorf("best match index = %d, want 3 (exact title)", ranked[0].Index)
	}
	// The two duplicates tie; stability keeps original order 1 before 2.
	if ranked[1].Index != 1 || ranked[2].Index != 2 {
		t.Errorf("tie not stable: got order %d, %d", ranked[1].Index, ranked[2].Index)
	}
}

func TestRankEmpty(t *testing.T) {
	ranked := Rank(NewScorer(), "query", nil)
	if len(ranked) != 0 {
		t.Errorf("Rank on empty input returned %v", ranked)
	}
}

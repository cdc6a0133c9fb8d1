package normalize

import "testing"

func TestNormalizeCleaned(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Super Mario Bros.", "super mario bros"},
		{"Pokémon Émeraude", "pokemon emeraude"},
		{"The Legend of Zelda (USA)", "the legend of zelda"},
		{"Metroid Prime [Rev 1]", "metroid prime"},
		{"F-Zero GX", "f-zero gx"},
		{"Mario  Kart   8", "mario kart 8"},
		{"Ōkami HD", "okami hd"},
		{"Game: The Sequel!", "game the sequel"},
		{"(Europe) Tetris", "tetris"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := Normalize(tc.input)
			if got.Cleaned != tc.expected {
				t.Errorf("Normalize(%q).Cleaned = %q, want %q", tc.input, got.Cleaned, tc.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"The Legend of Zelda: Breath of the Wild (USA) [Rev 2]",
		"Pokémon Let's Go, Pikachu!",
		"F-Zero GX",
		"  spaced   out  title  ",
		"already normalized title",
		"",
		"---",
		"ÀÉÎÕÜ (Japan)",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once.Cleaned)
		if twice.Cleaned != once.Cleaned {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice.Cleaned, once.Cleaned)
		}
	}
}

func TestNormalizeTokensDropLeadingArticle(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"The Witcher 3", []string{"witcher", "3"}},
		{"A Hat in Time", []string{"hat", "in", "time"}},
		{"An American Tail", []string{"american", "tail"}},
		// A lone article is kept; dropping it would empty the token set.
		{"The", []string{"the"}},
		{"Theatrhythm", []string{"theatrhythm"}},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if len(got.Tokens) != len(tc.expected) {
			t.Fatalf("Normalize(%q).Tokens = %v, want %v", tc.input, got.Tokens, tc.expected)
		}
		for i := range got.Tokens {
			if got.Tokens[i] != tc.expected[i] {
				t.Errorf("Normalize(%q).Tokens = %v, want %v", tc.input, got.Tokens, tc.expected)
				break
			}
		}
	}
}

func TestMatchKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"The Witcher 3", "witcher 3"},
		{"MARIO KART 8 DELUXE", "mario kart 8 deluxe"},
		{"Mario Kart 8 Deluxe (Europe)", "mario kart 8 deluxe"},
	}

	for _, tc := range tests {
		if got := MatchKey(tc.input); got != tc.expected {
			t.Errorf("MatchKey(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestMatchKeyAgreesAcrossQualifiers(t *testing.T) {
	// Region/edition qualifiers must not affect identity.
	a := MatchKey("Super Metroid (USA) [!]")
	b := MatchKey("Super Metroid (Japan) (Rev 1)")
	if a != b {
		t.Errorf("qualifier variants diverge: %q vs %q", a, b)
	}
}

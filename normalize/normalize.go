// Package normalize provides title cleaning for cross-platform game matching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Title is the normalized form of a game title. Cleaned is the display-safe
// lowercase string; Tokens is the word set used for matching, with leading
// articles dropped.
type Title struct {
	Cleaned string
	Tokens  []string
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// articles are dropped from the front of the token set for matching purposes
// only; the cleaned string keeps them so display output stays faithful.
var articles = map[string]bool{
	"the": true,
	"a":   true,
	"an":  true,
}

// Normalize cleans a raw title for comparison. Rules, in order: fold
// diacritics to ASCII, lowercase, drop bracketed/parenthesized qualifiers
// like "(USA)" or "[Rev 1]", strip punctuation except internal hyphens,
// collapse whitespace. Normalize is idempotent.
func Normalize(title string) Title {
	s, _, _ := transform.String(stripAccents, title)
	s = strings.ToLower(s)
	s = stripQualifiers(s)
	s = stripPunctuation(s)
	s = strings.Join(strings.Fields(s), " ")

	tokens := strings.Fields(s)
	if len(tokens) > 1 && articles[tokens[0]] {
		tokens = tokens[1:]
	}

	return Title{Cleaned: s, Tokens: tokens}
}

// Clean returns only the cleaned string form.
func Clean(title string) string {
	return Normalize(title).Cleaned
}

// MatchKey returns the form used for catalog and scorer comparison: the
// cleaned string with any leading article removed.
func MatchKey(title string) string {
	return strings.Join(Normalize(title).Tokens, " ")
}

// stripQualifiers removes (...)/[...] groups. Region, revision and edition
// tags in ROM-style names live in these groups.
func stripQualifiers(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
				continue
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// stripPunctuation drops everything that is not a letter, digit or space.
// Hyphens between word characters survive so titles like "F-Zero" keep
// their identity.
func stripPunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == '-' && i > 0 && i < len(runes)-1 &&
			isWordRune(runes[i-1]) && isWordRune(runes[i+1]):
			b.WriteRune('-')
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

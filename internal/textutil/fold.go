package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s case-folded for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// StripAccents removes combining marks after canonical decomposition, so
// "québécois" becomes "quebecois".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize folds case and strips accents.
func Normalize(s string) string {
	return StripAccents(Fold(strings.TrimSpace(s)))
}

// ContainsFold reports whether any needle occurs in text, ignoring case and
// accents.
func ContainsFold(text string, needles ...string) bool {
	haystack := Normalize(text)
	if haystack == "" {
		return false
	}
	for _, needle := range needles {
		if n := Normalize(needle); n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// Words splits normalized text into letter/digit runs.
func Words(text string) []string {
	return strings.FieldsFunc(Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsWord reports whether any of words appears in text as a whole word,
// ignoring case and accents. Multi-word entries ("audio description") match a
// run of consecutive words.
func ContainsWord(text string, words ...string) bool {
	tokens := Words(text)
	if len(tokens) == 0 {
		return false
	}
	for _, word := range words {
		target := Words(word)
		if len(target) == 0 {
			continue
		}
		for i := 0; i+len(target) <= len(tokens); i++ {
			match := true
			for j := range target {
				if tokens[i+j] != target[j] {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

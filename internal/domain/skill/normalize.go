package skill

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText folds case, strips diacritics and collapses every run of
// characters other than letters, digits, '+' and '#' into a single space.
// The result has no leading or trailing space.
//
// Both resume text and taxonomy synonyms go through this function, so a
// synonym matches a word boundary exactly when " "+syn+" " occurs in
// " "+text+" ".
func NormalizeText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	// Transformers and casers carry state; build them per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)

	var b strings.Builder
	b.Grow(len(folded))
	space := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// PadText wraps normalized text in single spaces for ContainsWord.
func PadText(normalized string) string {
	return " " + normalized + " "
}

// ContainsWord reports whether the normalized phrase occurs in padded text on
// word boundaries, so "java" does not match inside "javascript".
func ContainsWord(padded, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(padded, " "+phrase+" ")
}

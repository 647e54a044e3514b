package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes precomposed accented characters and removes the
// combining marks, then recomposes ("é" -> "e").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a word and strips its diacritics, producing the
// dictionary lookup key. Pure and idempotent; never displayed.
func Normalize(word string) string {
	lowered := strings.ToLower(word)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}

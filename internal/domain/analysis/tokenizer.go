// Package analysis implements the runtime engine: tokenization, lemma
// resolution against the merged dictionary, repetition scoring, and the
// event channel carrying results back to the host.
package analysis

import (
	"unicode"

	"github.com/camille/redite/internal/ports"
)

// Tokenize splits text into maximal runs of letters. Offsets are rune
// indices into the original text, half-open; non-word runs are discarded
// but still advance the offsets. Total: any input, including empty,
// yields a (possibly empty) token slice.
func Tokenize(text string) []ports.Token {
	var tokens []ports.Token
	runes := []rune(text)

	i := 0
	for i < len(runes) {
		if !unicode.IsLetter(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && unicode.IsLetter(runes[i]) {
			i++
		}
		tokens = append(tokens, ports.Token{
			Text:  string(runes[start:i]),
			Start: start,
			End:   i,
		})
	}
	return tokens
}

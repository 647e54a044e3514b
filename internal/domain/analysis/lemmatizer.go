package analysis

import (
	snowballfr "github.com/kljensen/snowball/french"

	"github.com/camille/redite/internal/ports"
)

// Dictionary maps normalized surface forms to lemmas. It is rehydrated
// once from a bundle and treated as immutable afterwards, so concurrent
// lookups are safe.
type Dictionary map[string]string

// NewDictionary rehydrates a lookup map from a bundle's pair sequence.
// First writer wins, matching the merge order guarantee.
func NewDictionary(b *ports.Bundle) Dictionary {
	d := make(Dictionary, len(b.Entries))
	for _, p := range b.Entries {
		if _, ok := d[p[0]]; !ok {
			d[p[0]] = p[1]
		}
	}
	return d
}

// Lemmatizer resolves tokens to lemmas via dictionary lookup.
type Lemmatizer struct {
	dict Dictionary

	// stemFallback enables a snowball French stem pass for words the
	// dictionary doesn't know, so regular inflections still collapse.
	// Off by default: the contract fallback is the normalized form.
	stemFallback bool
}

// NewLemmatizer builds a lemmatizer over an immutable dictionary.
func NewLemmatizer(dict Dictionary, stemFallback bool) *Lemmatizer {
	return &Lemmatizer{dict: dict, stemFallback: stemFallback}
}

// Lemma resolves a token's text to exactly one lemma; it never fails.
// Lookup key is the normalized form; an unknown word is its own lemma.
func (l *Lemmatizer) Lemma(text string) string {
	key := Normalize(text)
	if lemma, ok := l.dict[key]; ok {
		return lemma
	}
	if l.stemFallback {
		stem := snowballfr.Stem(key, false)
		if lemma, ok := l.dict[stem]; ok {
			return lemma
		}
		return stem
	}
	return key
}

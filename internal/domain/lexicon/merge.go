package lexicon

import (
	"time"

	"github.com/camille/redite/internal/ports"
)

// BundleVersion tags the bundle format produced by Merge.
const BundleVersion = "1.0.0"

// Categories is the fixed priority order for merging. A word claimed by
// an earlier category keeps that category's lemma — the order encodes a
// linguistic precedence (treat a word primarily as the part of speech
// listed first) and must stay deterministic across builds.
var Categories = []string{
	"adjective",
	"adverb",
	"article",
	"conjunction",
	"noun",
	"interjection",
	"preposition",
	"verb",
	"pronoun",
}

// CategoryEntries pairs a category name with its extracted entries.
type CategoryEntries struct {
	Name    string
	Entries []ports.Entry
}

// Merge combines per-category entry lists into a single bundle,
// first-writer-wins at both levels: within a category, the first lemma
// seen for a word is kept (later duplicates are dropped, not
// overwritten); across categories, a word already claimed by an earlier
// category is never overwritten by a later one. Entry order in the
// bundle follows category order, then first-seen order within each
// category.
func Merge(categories []CategoryEntries) *ports.Bundle {
	return MergeAt(categories, time.Now().UTC())
}

// MergeAt is Merge with an explicit build timestamp.
func MergeAt(categories []CategoryEntries, buildTime time.Time) *ports.Bundle {
	global := make(map[string]struct{})
	var pairs []ports.Pair

	for _, cat := range categories {
		local := make(map[string]string, len(cat.Entries))
		var order []string

		for _, e := range cat.Entries {
			if e.WordNosc == "" {
				continue
			}
			if _, seen := local[e.WordNosc]; seen {
				continue
			}
			local[e.WordNosc] = e.Lemma
			order = append(order, e.WordNosc)
		}

		for _, word := range order {
			if _, claimed := global[word]; claimed {
				continue
			}
			global[word] = struct{}{}
			pairs = append(pairs, ports.Pair{word, local[word]})
		}
	}

	return &ports.Bundle{
		Version:   BundleVersion,
		Timestamp: buildTime.Format(time.RFC3339),
		Entries:   pairs,
	}
}

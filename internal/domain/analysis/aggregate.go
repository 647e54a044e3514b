package analysis

import (
	"sort"
	"unicode/utf8"

	"github.com/camille/redite/internal/ports"
)

// RepeatThreshold is the minimum frequency for a lemma to be flagged.
// A word occurring exactly once is never highlighted.
const RepeatThreshold = 2

// minLemmaRunes is the minimum lemma length for flagging. One- and
// two-letter lemmas are French function words (le, la, un, de, et);
// repeating them is ordinary prose, not a style defect.
const minLemmaRunes = 3

// maxHeat bounds the number of visual intensity tiers.
const maxHeat = 5

// Record groups all occurrences of one resolved lemma in a document.
// Invariant: Frequency == len(Occurrences).
type Record struct {
	Lemma       string
	Frequency   int
	Heat        int
	Occurrences []ports.Token
}

// HeatLevel maps a frequency to the bounded 1–5 intensity tier: a lemma
// seen once has heat 1, and heat saturates at 5 however far frequency
// exceeds it.
func HeatLevel(frequency int) int {
	if frequency < 1 {
		return 1
	}
	if frequency > maxHeat {
		return maxHeat
	}
	return frequency
}

// Aggregate groups tokens by resolved lemma, preserving first-seen lemma
// order and document order within each group.
func Aggregate(tokens []ports.Token, lem *Lemmatizer) []Record {
	byLemma := make(map[string]int)
	var records []Record

	for _, tok := range tokens {
		lemma := lem.Lemma(tok.Text)
		idx, ok := byLemma[lemma]
		if !ok {
			idx = len(records)
			byLemma[lemma] = idx
			records = append(records, Record{Lemma: lemma})
		}
		records[idx].Occurrences = append(records[idx].Occurrences, tok)
	}

	for i := range records {
		records[i].Frequency = len(records[i].Occurrences)
		records[i].Heat = HeatLevel(records[i].Frequency)
	}
	return records
}

// BuildResult turns aggregated records into the outbound result. Only
// lemmas at or above RepeatThreshold and at least minLemmaRunes long
// appear, in both Highlights and LemmaFrequencies: one highlight per
// occurrence carrying the lemma's heat, highlights ordered by document
// position, frequencies ordered by descending frequency then lemma.
func BuildResult(records []Record, stats ports.Stats) ports.Result {
	result := ports.Result{
		Highlights:       []ports.Highlight{},
		LemmaFrequencies: []ports.LemmaCount{},
	}

	for _, rec := range records {
		if rec.Frequency < RepeatThreshold || utf8.RuneCountInString(rec.Lemma) < minLemmaRunes {
			continue
		}
		result.LemmaFrequencies = append(result.LemmaFrequencies, ports.LemmaCount{
			Lemma:     rec.Lemma,
			Frequency: rec.Frequency,
			Heat:      rec.Heat,
		})
		for _, occ := range rec.Occurrences {
			result.Highlights = append(result.Highlights, ports.Highlight{
				Start: occ.Start,
				End:   occ.End,
				Heat:  rec.Heat,
				Lemma: rec.Lemma,
			})
		}
	}

	sort.Slice(result.Highlights, func(i, j int) bool {
		return result.Highlights[i].Start < result.Highlights[j].Start
	})
	sort.SliceStable(result.LemmaFrequencies, func(i, j int) bool {
		a, b := result.LemmaFrequencies[i], result.LemmaFrequencies[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Lemma < b.Lemma
	})

	stats.RepeatedTokenCount = len(result.Highlights)
	result.Stats = stats
	return result
}

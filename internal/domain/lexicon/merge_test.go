package lexicon

import (
	"testing"
	"time"

	"github.com/camille/redite/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_FirstWriterWinsAcrossCategories(t *testing.T) {
	// "ferme" is adjective, noun, and verb. Adjective comes first in
	// priority order, so its lemma wins regardless of later categories.
	cats := []CategoryEntries{
		{Name: "adjective", Entries: []ports.Entry{{WordNosc: "ferme", Lemma: "ferme"}}},
		{Name: "noun", Entries: []ports.Entry{{WordNosc: "ferme", Lemma: "ferme"}, {WordNosc: "fermes", Lemma: "ferme"}}},
		{Name: "verb", Entries: []ports.Entry{{WordNosc: "ferme", Lemma: "fermer"}, {WordNosc: "fermait", Lemma: "fermer"}}},
	}

	b := Merge(cats)
	m := pairsToMap(b.Entries)
	assert.Equal(t, "ferme", m["ferme"], "adjective lemma must win over verb")
	assert.Equal(t, "fermer", m["fermait"])
	assert.Len(t, b.Entries, 3)
}

func TestMerge_FirstWriterWinsWithinCategory(t *testing.T) {
	// Duplicate keys inside one category: the first lemma is kept,
	// later duplicates are dropped rather than overwriting.
	cats := []CategoryEntries{
		{Name: "noun", Entries: []ports.Entry{
			{WordNosc: "fils", Lemma: "fils"},
			{WordNosc: "fils", Lemma: "fil"},
		}},
	}

	b := Merge(cats)
	require.Len(t, b.Entries, 1)
	assert.Equal(t, ports.Pair{"fils", "fils"}, b.Entries[0])
}

func TestMerge_SizeBounds(t *testing.T) {
	cats := []CategoryEntries{
		{Name: "adjective", Entries: []ports.Entry{
			{WordNosc: "grand", Lemma: "grand"},
			{WordNosc: "grands", Lemma: "grand"},
		}},
		{Name: "noun", Entries: []ports.Entry{
			{WordNosc: "grand", Lemma: "grand"},
			{WordNosc: "chats", Lemma: "chat"},
			{WordNosc: "chats", Lemma: "chat"},
		}},
	}

	b := Merge(cats)
	raw := 0
	for _, c := range cats {
		raw += len(c.Entries)
	}
	// Merged size is bounded by the raw total and at least as large as
	// any single category's unique-key count.
	assert.LessOrEqual(t, len(b.Entries), raw)
	assert.GreaterOrEqual(t, len(b.Entries), 2)
	assert.Len(t, b.Entries, 3)
}

func TestMerge_EntryOrderIsDeterministic(t *testing.T) {
	cats := []CategoryEntries{
		{Name: "adverb", Entries: []ports.Entry{{WordNosc: "vite", Lemma: "vite"}}},
		{Name: "noun", Entries: []ports.Entry{{WordNosc: "chat", Lemma: "chat"}, {WordNosc: "vite", Lemma: "x"}}},
	}

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b1 := MergeAt(cats, ts)
	b2 := MergeAt(cats, ts)
	assert.Equal(t, b1, b2)
	assert.Equal(t, []ports.Pair{{"vite", "vite"}, {"chat", "chat"}}, b1.Entries)
}

func TestMerge_BundleMetadata(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := MergeAt(nil, ts)
	assert.Equal(t, BundleVersion, b.Version)
	assert.Equal(t, "2026-03-01T12:00:00Z", b.Timestamp)
	assert.Empty(t, b.Entries)
}

func TestMerge_SkipsEmptyWords(t *testing.T) {
	cats := []CategoryEntries{
		{Name: "noun", Entries: []ports.Entry{{WordNosc: "", Lemma: "x"}, {WordNosc: "chat", Lemma: "chat"}}},
	}
	b := Merge(cats)
	assert.Len(t, b.Entries, 1)
}

func TestCategories_PriorityOrder(t *testing.T) {
	require.Len(t, Categories, 9)
	assert.Equal(t, "adjective", Categories[0])
	assert.Equal(t, "pronoun", Categories[8])
}

func pairsToMap(pairs []ports.Pair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
	}
	return m
}

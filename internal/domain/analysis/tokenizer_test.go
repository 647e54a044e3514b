package analysis

import (
	"testing"

	"github.com/camille/redite/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_WordsAndOffsets(t *testing.T) {
	tokens := Tokenize("Le chat mange.")
	require.Len(t, tokens, 3)
	assert.Equal(t, ports.Token{Text: "Le", Start: 0, End: 2}, tokens[0])
	assert.Equal(t, ports.Token{Text: "chat", Start: 3, End: 7}, tokens[1])
	assert.Equal(t, ports.Token{Text: "mange", Start: 8, End: 13}, tokens[2])
}

func TestTokenize_AccentedLetters(t *testing.T) {
	// Offsets count runes, not bytes: "été" is 3 runes.
	tokens := Tokenize("été, déjà!")
	require.Len(t, tokens, 2)
	assert.Equal(t, ports.Token{Text: "été", Start: 0, End: 3}, tokens[0])
	assert.Equal(t, ports.Token{Text: "déjà", Start: 5, End: 9}, tokens[1])
}

func TestTokenize_PunctuationAdvancesOffsets(t *testing.T) {
	tokens := Tokenize("  ...un--deux  ")
	require.Len(t, tokens, 2)
	assert.Equal(t, 5, tokens[0].Start)
	assert.Equal(t, 7, tokens[0].End)
	assert.Equal(t, 9, tokens[1].Start)
	assert.Equal(t, 13, tokens[1].End)
}

func TestTokenize_Total(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("  ,;:!?  123 ..."))
	assert.Len(t, Tokenize("a"), 1)
}

func TestTokenize_ApostropheSplits(t *testing.T) {
	// The apostrophe is not a letter: "l'eau" is two tokens.
	tokens := Tokenize("l'eau")
	require.Len(t, tokens, 2)
	assert.Equal(t, "l", tokens[0].Text)
	assert.Equal(t, "eau", tokens[1].Text)
}

func TestTokenize_NoOverlapOrdered(t *testing.T) {
	tokens := Tokenize("Le chat dort. Le chien aussi, près du chat.")
	for i := 1; i < len(tokens); i++ {
		assert.GreaterOrEqual(t, tokens[i].Start, tokens[i-1].End)
	}
}

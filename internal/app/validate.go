package app

import (
	"fmt"
	"unicode/utf8"

	"github.com/camille/redite/internal/domain/analysis"
)

// Input ceilings, enforced before the engine is ever invoked.
const (
	// MaxChars is the character (rune) ceiling on analyzable text.
	MaxChars = 100_000
	// MaxWords is the token-count ceiling.
	MaxWords = 20_000
)

// ValidationError rejects an analysis request before any engine work
// begins; no busy state is entered.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// ValidateText applies the pre-flight ceilings. A text of exactly
// MaxChars characters passes; one more rune fails.
func ValidateText(text string) error {
	if n := utf8.RuneCountInString(text); n > MaxChars {
		return &ValidationError{Reason: fmt.Sprintf("text is %d characters, limit is %d", n, MaxChars)}
	}
	if n := len(analysis.Tokenize(text)); n > MaxWords {
		return &ValidationError{Reason: fmt.Sprintf("text has %d words, limit is %d", n, MaxWords)}
	}
	return nil
}

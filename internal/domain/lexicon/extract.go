// Package lexicon implements the build-time dictionary pipeline: it
// extracts word/lemma entries from semi-structured category sources and
// merges them into a single normalized-word→lemma bundle.
package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camille/redite/internal/ports"
)

// Extraction failures: the expected structure is absent from the source.
var (
	ErrPropertyNotFound = errors.New("lexicon: property not found in source")
	ErrArrayNotFound    = errors.New("lexicon: array literal not found after property")
)

// ParseError means the located array literal could not be parsed by
// either the strict or the permissive strategy.
type ParseError struct {
	Property    string
	StrictErr   error
	FallbackErr error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lexicon: malformed array literal for %q: strict: %v; permissive: %v",
		e.Property, e.StrictErr, e.FallbackErr)
}

// ExtractEntries locates the named property in a raw category source,
// finds the array literal it holds, and parses it into entries.
//
// The literal is delimited by bracket depth: starting at the opening
// bracket, depth is tracked while skipping over string literals (single,
// double, or backtick quoted, with backslash escapes), and the literal
// ends when depth returns to zero. The text is parsed strictly as JSON
// first; if that fails, a permissive literal parser tolerating unquoted
// keys, single quotes, and trailing commas is tried. No text is
// rewritten before parsing, so string values keep their exact bytes,
// and the source is never evaluated as code.
func ExtractEntries(source, property string) ([]ports.Entry, error) {
	propIdx := strings.Index(source, property)
	if propIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrPropertyNotFound, property)
	}

	rest := source[propIdx+len(property):]
	openRel := strings.IndexByte(rest, '[')
	if openRel < 0 {
		return nil, fmt.Errorf("%w: %q", ErrArrayNotFound, property)
	}

	literal, ok := scanArrayLiteral(rest[openRel:])
	if !ok {
		return nil, fmt.Errorf("%w: %q (unbalanced brackets)", ErrArrayNotFound, property)
	}

	// Strict pass first. Unknown object fields are ignored so sources
	// carrying extra columns still extract cleanly.
	var entries []ports.Entry
	strictErr := json.Unmarshal([]byte(literal), &entries)
	if strictErr == nil {
		return entries, nil
	}

	entries, fallbackErr := parsePermissiveEntries(literal)
	if fallbackErr == nil {
		return entries, nil
	}

	return nil, &ParseError{Property: property, StrictErr: strictErr, FallbackErr: fallbackErr}
}

// scanArrayLiteral returns the array literal starting at s[0] == '['.
// Bracket depth is incremented/decremented only outside string state;
// string state tracks a single active quote character and skips the
// character after a backslash.
func scanArrayLiteral(s string) (string, bool) {
	depth := 0
	inString := false
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch c {
			case '\\':
				i++ // escaped character, never closes the string
			case quote:
				inString = false
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			inString = true
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

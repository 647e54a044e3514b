package lexicon

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/camille/redite/internal/ports"
)

// parsePermissiveEntries parses an array literal in a tolerant dialect:
// object keys may be unquoted identifiers, strings may use single
// quotes, trailing commas are allowed, and comments are skipped.
// The input is parsed as data, never evaluated.
func parsePermissiveEntries(literal string) ([]ports.Entry, error) {
	p := &permissiveParser{src: literal}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("trailing data at offset %d", p.pos)
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("top-level value is not an array")
	}

	entries := make([]ports.Entry, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		var e ports.Entry
		if w, ok := obj["word_nosc"].(string); ok {
			e.WordNosc = w
		}
		if l, ok := obj["lemma"].(string); ok {
			e.Lemma = l
		}
		entries = append(entries, e)
	}
	return entries, nil
}

type permissiveParser struct {
	src string
	pos int
}

func (p *permissiveParser) errf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

// skipSpace advances past whitespace and // or /* */ comments.
func (p *permissiveParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			if nl := strings.IndexByte(p.src[p.pos:], '\n'); nl >= 0 {
				p.pos += nl + 1
			} else {
				p.pos = len(p.src)
			}
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
			if end := strings.Index(p.src[p.pos+2:], "*/"); end >= 0 {
				p.pos += end + 4
			} else {
				p.pos = len(p.src)
			}
		default:
			return
		}
	}
}

func (p *permissiveParser) parseValue() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errf("unexpected end of input")
	}

	switch c := p.src[p.pos]; {
	case c == '[':
		return p.parseArray()
	case c == '{':
		return p.parseObject()
	case c == '"' || c == '\'':
		return p.parseString()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseWord()
	}
}

func (p *permissiveParser) parseArray() (any, error) {
	p.pos++ // consume '['
	var arr []any
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errf("unterminated array")
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.pos < len(p.src) && p.src[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		return nil, p.errf("expected ',' or ']' in array")
	}
}

func (p *permissiveParser) parseObject() (any, error) {
	p.pos++ // consume '{'
	obj := make(map[string]any)
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errf("unterminated object")
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return obj, nil
		}

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.errf("expected ':' after key %q", key)
		}
		p.pos++

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = v

		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.pos < len(p.src) && p.src[p.pos] == '}' {
			p.pos++
			return obj, nil
		}
		return nil, p.errf("expected ',' or '}' in object")
	}
}

// parseKey accepts a quoted string or a bare identifier.
func (p *permissiveParser) parseKey() (string, error) {
	if c := p.src[p.pos]; c == '"' || c == '\'' {
		s, err := p.parseString()
		if err != nil {
			return "", err
		}
		return s.(string), nil
	}

	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", p.errf("expected object key")
	}
	return p.src[start:p.pos], nil
}

func (p *permissiveParser) parseString() (any, error) {
	quote := p.src[p.pos]
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return nil, p.errf("unterminated escape")
			}
			esc := p.src[p.pos]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'u':
				if p.pos+4 >= len(p.src) {
					return nil, p.errf("truncated \\u escape")
				}
				code, err := strconv.ParseUint(p.src[p.pos+1:p.pos+5], 16, 32)
				if err != nil {
					return nil, p.errf("invalid \\u escape: %v", err)
				}
				b.WriteRune(rune(code))
				p.pos += 4
			default:
				// \' \" \\ \/ and anything else: the escaped char itself
				b.WriteByte(esc)
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.errf("unterminated string")
}

func (p *permissiveParser) parseNumber() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, p.errf("invalid number %q", p.src[start:p.pos])
	}
	return n, nil
}

// parseWord handles bare identifiers: true/false/null keywords, anything
// else is taken as an unquoted string value.
func (p *permissiveParser) parseWord() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return nil, p.errf("unexpected character %q", p.src[p.pos])
	}
	switch word := p.src[start:p.pos]; word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	default:
		return word, nil
	}
}

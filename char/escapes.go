package char

import (
	"fmt"
	"strconv"
	"strings"
)

// NamedEscapes maps a `%NAME;` escape body to the codepoint it denotes.
// `%%;` (literal percent) and `%;` (literal enclosing quote, resolved by
// the lexer since it depends on quote context) are handled separately by
// the caller; this table covers the named-codepoint escapes.
var NamedEscapes = map[string]CodePoint{
	"NUL":       0x00,
	"n":         '\n',
	"t":         '\t',
	"r":         '\r',
	"space":     ' ',
	"underscore": '_',
	"percent":   '%',
}

// ResolveNamedEscape resolves the text between `%` and `;` to a codepoint.
// It accepts the named table, the `%;` / `%%;` quote-escapes via their
// literal spelling, and hexadecimal codepoint escapes of the form xHH....
func ResolveNamedEscape(body string, quote byte) (CodePoint, error) {
	switch body {
	case "":
		return CodePoint(quote), nil
	case "%":
		return '%', nil
	}
	if cp, ok := NamedEscapes[body]; ok {
		return cp, nil
	}
	if len(body) > 1 && (body[0] == 'x' || body[0] == 'X') {
		v, err := strconv.ParseInt(body[1:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex escape %%%s;: %w", body, err)
		}
		return CodePoint(v), nil
	}
	return 0, fmt.Errorf("unknown escape %%%s;", body)
}

// IsPrintableOrBlankASCII reports whether every byte of s is a printable
// ASCII byte (0x20-0x7E) or a blank (space/tab). Used by the env pass to
// validate injected literals per spec.md's EnvError rule.
func IsPrintableOrBlankASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == ' ' || b == '\t' {
			continue
		}
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// SplitEscapeBody trims the surrounding `%` and `;` from a raw escape token
// as produced by the lexer, e.g. "%xHH;" -> "xHH".
func SplitEscapeBody(tok string) string {
	return strings.TrimSuffix(strings.TrimPrefix(tok, "%"), ";")
}

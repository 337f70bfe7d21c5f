package forth

import (
	"strings"

	"github.com/flashforth/forth/internal/runeio"
)

const digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// parseNumber attempts to parse token as a numeric literal in the given
// base, per spec.md §4.2: a leading '$' forces hex, a leading '#' forces
// decimal, a leading '0x'/'0X' forces hex, a leading '0' (with more digits
// following) forces octal, otherwise base applies. A leading '-' negates.
// Returns ok=false if token is not a valid literal in the resulting radix.
func parseNumber(token string, base int) (val int, ok bool) {
	if token == "" {
		return 0, false
	}
	neg := false
	s := token
	if s[0] == '-' && len(s) > 1 {
		neg = true
		s = s[1:]
	}

	radix := base
	switch {
	case strings.HasPrefix(s, "$"):
		radix = 16
		s = s[1:]
	case strings.HasPrefix(s, "#"):
		radix = 10
		s = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		radix = 16
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		radix = 8
		s = s[1:]
	}
	if s == "" || radix < 2 || radix > len(digitAlphabet) {
		return 0, false
	}

	digits := digitAlphabet[:radix]
	n := 0
	for _, r := range strings.ToLower(s) {
		i := strings.IndexRune(digits, r)
		if i < 0 {
			return 0, false
		}
		n = n*radix + i
	}
	if neg {
		n = -n
	}
	return n, true
}

// parseCharLiteral recognizes 'X', control mnemonics like <ESC>, and caret
// forms like ^C, per runeio's control-word tables, returning the rune's
// ordinal value.
func parseCharLiteral(token string) (int, bool) {
	r, err := runeio.UnquoteRune(token)
	if err != nil {
		return 0, false
	}
	return int(r), true
}

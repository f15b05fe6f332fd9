package scanner

import "strings"

// IsNumber reports whether s, once trimmed, is a single integer or decimal
// literal such as "42", "-7", "+0.5", ".5" or "3.".
func IsNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '-' || s[i] == '+' {
		i++
	}
	intStart := i
	i = consumeDigits(s, i)
	digits := i - intStart

	if i < len(s) && s[i] == '.' {
		i++ // Consume '.'.
		fracStart := i
		i = consumeDigits(s, i)
		digits += i - fracStart
	}

	// Must consume the whole string and contain at least one digit.
	return digits > 0 && i == len(s)
}

func consumeDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Package input adapts raw form values into numbers.
//
// Form fields are parsed permissively: a value that does not start with a number
// yields the caller's default instead of an error, so half-typed input never
// fails a recalculation. The engines themselves stay strict.
package input

import (
	"math"
	"strconv"
	"strings"
)

// Float parses the leading decimal number of s, returning def when there is none.
// "12abc" parses as 12 and "" or "abc" return def.
func Float(s string, def float64) float64 {
	prefix := numericPrefix(strings.TrimSpace(s), true)
	if prefix == "" {
		return def
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Int parses the leading integer of s, returning def when there is none.
// "10.7" parses as 10.
func Int(s string, def int) int {
	prefix := numericPrefix(strings.TrimSpace(s), false)
	if prefix == "" {
		return def
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return def
	}
	return v
}

// FloatOrZero parses s with a default of zero.
func FloatOrZero(s string) float64 {
	return Float(s, 0)
}

// numericPrefix returns the longest prefix of s that forms a signed number.
// A prefix made only of a sign or a dot is not a number.
func numericPrefix(s string, allowFraction bool) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if allowFraction && end < len(s) && s[end] == '.' {
		fracEnd := end + 1
		fracDigits := 0
		for fracEnd < len(s) && isDigit(s[fracEnd]) {
			fracEnd++
			fracDigits++
		}
		if fracDigits > 0 || digits > 0 {
			end = fracEnd
			digits += fracDigits
		}
	}
	if digits == 0 {
		return ""
	}
	if allowFraction && end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(s) && (s[expEnd] == '+' || s[expEnd] == '-') {
			expEnd++
		}
		expDigits := 0
		for expEnd < len(s) && isDigit(s[expEnd]) {
			expEnd++
			expDigits++
		}
		if expDigits > 0 {
			end = expEnd
		}
	}
	return strings.TrimSuffix(s[:end], ".")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

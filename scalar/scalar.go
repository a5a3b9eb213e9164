// Package scalar infers JSON types from raw YAML scalar text.
//
// Classification runs in a fixed order and the first match wins:
//
//  1. empty text is null
//  2. text matching the decimal grammar below is a number
//  3. "true" and "yes" are true, "false" is false (ASCII case-insensitive)
//  4. "null" is null (ASCII case-insensitive)
//  5. anything else is a string, copied verbatim
//
// The decimal grammar is
//
//	number   = [sign] (digits ["." [digits]] | "." digits) [exponent]
//	sign     = "+" | "-"
//	exponent = ("e" | "E") [sign] digits
//
// Whitespace, hexadecimal forms, digit separators and the inf/nan spellings
// are not numbers. Negative zero is Number(0).
//
// "yes" is the only YAML 1.1 boolean word accepted, so a bare "yes" document
// is true. The rest of that family ("no", "on", "off", "y", "n") stays text:
// values such as the country code NO must survive as strings.
package scalar

import (
	"strings"

	"github.com/0xalexb/yamljson/value"

	"github.com/shopspring/decimal"
)

// Infer classifies text. It never fails.
func Infer(text string) value.Value {
	if text == "" {
		return value.Null()
	}

	if IsNumeric(text) {
		d, err := decimal.NewFromString(normalize(text))
		if err == nil {
			return value.Number(d)
		}
	}

	switch {
	case asciiEqualFold(text, "true"), asciiEqualFold(text, "yes"):
		return value.Bool(true)
	case asciiEqualFold(text, "false"):
		return value.Bool(false)
	case asciiEqualFold(text, "null"):
		return value.Null()
	}

	return value.String(text)
}

// IsNumeric reports whether the whole of text matches the decimal grammar.
func IsNumeric(text string) bool {
	return scanNumber(text) == len(text) && len(text) > 0
}

// scanNumber returns the length of the longest prefix of s that is a number,
// or 0 when no prefix is.
func scanNumber(s string) int {
	pos := 0
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		pos++
	}

	intDigits := countDigits(s[pos:])
	pos += intDigits

	fracDigits := 0

	if pos < len(s) && s[pos] == '.' {
		fracDigits = countDigits(s[pos+1:])
		if intDigits > 0 || fracDigits > 0 {
			pos += 1 + fracDigits
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		expPos := pos + 1
		if expPos < len(s) && (s[expPos] == '+' || s[expPos] == '-') {
			expPos++
		}

		if n := countDigits(s[expPos:]); n > 0 {
			pos = expPos + n
		}
	}

	return pos
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}

	return n
}

// normalize rewrites grammar forms the decimal parser does not take directly:
// a leading plus sign, a bare leading dot and a dot with no fraction digits.
func normalize(text string) string {
	text = strings.TrimPrefix(text, "+")

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}

	if i := strings.IndexByte(text, '.'); i >= 0 && (i+1 == len(text) || !isDigit(text[i+1])) {
		text = text[:i] + text[i+1:]
	}

	return sign + text
}

// asciiEqualFold compares s to the lowercase ASCII word without Unicode
// folding, so "falſe" stays a string.
func asciiEqualFold(s, lower string) bool {
	if len(s) != len(lower) {
		return false
	}

	for i := range len(s) {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}

		if c != lower[i] {
			return false
		}
	}

	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

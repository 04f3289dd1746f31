package calc

import (
	"math"
	"strconv"
	"strings"
)

// roundingScale is 10^8: results keep at most 8 decimal places.
const roundingScale = 1e8

// round8 rounds v to 8 decimal places, halves toward positive infinity.
func round8(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Floor(v*roundingScale+0.5) / roundingScale
}

// parseNumber parses the longest numeric prefix of s.
// "12." is 12, "1e-" is 1 and text without a numeric prefix is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r")

	rest := s
	neg := false
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, "Infinity") {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	end := numericPrefix(s)
	if end == 0 {
		return math.NaN()
	}

	// ParseFloat reports ErrRange with ±Inf or 0, which is the value we want.
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil && !isRangeError(err) {
		return math.NaN()
	}
	return v
}

// numericPrefix returns the length of the longest prefix of s of the form
// [+-]digits[.digits][e[+-]digits], or 0 if there is none.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i

	// Exponent only counts when it has at least one digit.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			end = j
		}
	}

	return end
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// formatNumber renders v in canonical decimal form: the shortest digits that
// round-trip, plain notation within [1e-6, 1e21) and exponent notation
// (1e-7, 1.5e+21) outside it.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers negative zero.
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return formatExponent(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatExponent turns Go's "1.5e+21" / "1e-08" into "1.5e+21" / "1e-8".
func formatExponent(v float64) string {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, found := strings.Cut(s, "e")
	if !found {
		return s
	}

	sign := "+"
	if exp != "" && (exp[0] == '+' || exp[0] == '-') {
		sign = exp[:1]
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}

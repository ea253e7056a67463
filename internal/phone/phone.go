// Package phone canonicalizes phone numbers into a dialable
// international format. It is a best-effort heuristic, not a validator:
// malformed input is never rejected, only shaped into something plausible.
package phone

import "strings"

// DefaultCountryCode is assumed for bare ten-digit national numbers.
const DefaultCountryCode = "1"

// Normalize canonicalizes raw using the default country code.
func Normalize(raw string) string {
	return NormalizeWithCountry(raw, DefaultCountryCode)
}

// NormalizeWithCountry strips formatting from raw and returns a leading-plus,
// country-coded digit string. Ten digits are treated as a domestic number and
// prefixed with countryCode; a number already carrying the country code only
// gains the plus. Anything else keeps its digits as-is, preserving an
// original leading plus when one was present.
func NormalizeWithCountry(raw, countryCode string) string {
	digits := stripNonDigits(raw)

	switch {
	case len(digits) == 10:
		return "+" + countryCode + digits
	case len(digits) == 10+len(countryCode) && strings.HasPrefix(digits, countryCode):
		return "+" + digits
	default:
		// Covers both inputs that already carried a leading plus and
		// unrecognized digit lengths.
		return "+" + digits
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

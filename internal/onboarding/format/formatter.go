// Package format normalizes raw keystrokes into the display and canonical forms of the
// onboarding fields.
package format

import (
	"strings"
	"unicode"
)

// CorporationDigits is the length of a Canadian corporation number.
const CorporationDigits = 9

// MaxCorporationDisplayLen is 9 digits plus two group separators.
const MaxCorporationDisplayLen = CorporationDigits + 2

// Corporation groups the digits of raw as "DDD DDD DDD".
// Non-digits are dropped and digits past the ninth are truncated.
func Corporation(raw string) string {
	digits := Digits(raw)

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return digits[:3] + " " + digits[3:]
	}

	if len(digits) > CorporationDigits {
		digits = digits[:CorporationDigits]
	}
	return digits[:3] + " " + digits[3:6] + " " + digits[6:]
}

// CanonicalCorporation strips display spacing, leaving what the registry is asked about.
func CanonicalCorporation(display string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, display)
}

// IsCompleteCorporation reports whether canonical is exactly nine ASCII digits.
func IsCompleteCorporation(canonical string) bool {
	return len(canonical) == CorporationDigits && len(Digits(canonical)) == CorporationDigits
}

// Phone emits "+1" followed by the national digits typed so far.
// An explicit "+1" prefix is honoured; otherwise a leading 1 is dropped when eleven
// digits were typed.
func Phone(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "+1") {
		return "+1" + Digits(raw[2:])
	}
	digits := Digits(raw)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	return "+1" + digits
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

package normalize

import "strings"

const (
	DefaultCountryCode = "91"
	localNumberLength  = 10
	contactLinkBase    = "https://wa.me/"
)

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// withCountryCode prefixes the default country code onto a bare local number.
func withCountryCode(digits string) string {
	if len(digits) == localNumberLength {
		return DefaultCountryCode + digits
	}
	return digits
}

// NormalizePhone returns the canonical +<cc><digits> form. Inputs with anything
// other than exactly ten digits are assumed to carry their country code already.
func NormalizePhone(raw string) (string, bool) {
	digits := digitsOnly(raw)
	if digits == "" {
		return "", false
	}
	return "+" + withCountryCode(digits), true
}

// DisplayPhone renders a canonical number as "+<cc> <local>".
func DisplayPhone(canonical string) string {
	digits := digitsOnly(canonical)
	if digits == "" {
		return ""
	}
	digits = withCountryCode(digits)
	if len(digits) < localNumberLength {
		return "+" + digits
	}
	split := len(digits) - localNumberLength
	return "+" + digits[:split] + " " + digits[split:]
}

func BuildContactLink(canonical string) (string, bool) {
	digits := digitsOnly(canonical)
	if digits == "" {
		return "", false
	}
	return contactLinkBase + withCountryCode(digits), true
}

// Digits strips everything but ASCII digits.
func Digits(raw string) string {
	return digitsOnly(raw)
}

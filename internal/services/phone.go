package services

import "strings"

const (
	// DefaultCountryCode is prepended to bare 10-digit numbers
	DefaultCountryCode = "91"

	// ChatSuffix turns a phone number into a gateway chat address
	ChatSuffix = "@c.us"
)

// NormalizePhone strips everything but ASCII digits and prefixes a bare
// 10-digit number with countryCode unless it already starts with it.
func NormalizePhone(phone, countryCode string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) == 10 && !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}
	return digits
}

// ChatID returns the gateway chat address for phone
func ChatID(phone, countryCode string) string {
	return NormalizePhone(phone, countryCode) + ChatSuffix
}

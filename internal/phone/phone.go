// Package phone holds the canonical phone-key rules shared by the
// ledger and the outbound notifiers.
package phone

import (
	"strings"
)

// Normalize reduces a raw phone value to its digits-only canonical
// key. The record store sometimes hands numbers back as numerics that
// render with a trailing ".0"; that artifact has to go before digit
// stripping, otherwise the stray zero survives into the key.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ForWhatsApp converts a canonical key into the international form the
// WhatsApp gateway expects. Country-code reconciliation lives here and
// nowhere else: lookups always compare canonical keys as-is.
//
// Handled shapes (for a 2-digit country code such as "91"):
//   - 10 digits: local number, prefix the country code
//   - 11 digits starting with 0: trunk prefix, strip it and prefix
//   - 12 digits: already carries the country code, keep it
func ForWhatsApp(raw, countryCode string) string {
	key := Normalize(raw)
	switch {
	case len(key) == 10:
		return countryCode + key
	case len(key) == 11 && strings.HasPrefix(key, "0"):
		return countryCode + key[1:]
	default:
		return key
	}
}

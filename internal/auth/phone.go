// internal/auth/phone.go
package auth

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultRegion is assumed for numbers typed without a country code.
const defaultRegion = "KE"

// IsPhoneNumber reports whether raw plausibly identifies a phone number.
// Emails and anything containing letters are rejected outright; the rest
// must carry a sensible digit count and parse under libphonenumber.
func IsPhoneNumber(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "@") {
		return false
	}
	digits := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '.' || r == '(' || r == ')' || r == ' ':
			// Common formatting characters.
		default:
			return false
		}
	}
	if digits < 9 || digits > 15 {
		return false
	}

	_, err := phonenumbers.Parse(raw, defaultRegion)
	return err == nil
}

// NormalizePhone converts raw to E.164, or returns "" when raw is not a
// phone number. Registration submits the number exactly as typed; this is
// for comparing and logging identifiers.
func NormalizePhone(raw string) string {
	if !IsPhoneNumber(raw) {
		return ""
	}
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), defaultRegion)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

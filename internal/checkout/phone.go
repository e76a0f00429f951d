package checkout

import "strings"

// NormalizePhone strips every non-digit character. "449-123 4567" becomes
// "4491234567".
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether the phone normalizes to exactly 10 digits.
func ValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) == 10
}

package utils

import "strings"

// NormalizeDigits strips everything but digits. Phone numbers and tax ids
// are compared and stored in this form.
func NormalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

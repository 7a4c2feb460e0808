package utils

import "strings"

// NormalizeEmail lowercases and trims an email address. Every write,
// lookup, and identity comparison goes through this so the stored form
// and the session form always agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Package normalize holds small helpers that put user-supplied fields
// into their canonical stored form.
package normalize

import (
	"strings"

	"github.com/parivartan/platform/internal/app/system/roles"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses interior runs of whitespace and trims the ends.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role returns the canonical role string, defaulting unknowns to USER so
// a malformed stored role can never widen access.
func Role(s string) string {
	if r := roles.Normalize(s); r != "" {
		return r
	}
	return roles.User
}

// ChatID returns the canonical conversation key for a pair of user ids:
// the two ids sorted and joined, so both participants derive the same key.
func ChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "__" + b
}

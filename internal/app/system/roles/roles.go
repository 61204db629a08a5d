// Package roles defines the four ordered role tiers and the comparisons
// every policy decision is built on.
//
// The tiers form a total order:
//
//	SUPER_ADMIN(0) > ADMIN(1) > MEMBER(2) > USER(3)
//
// A lower tier number means more authority. All visibility gating and edit
// authority in the application derives from this order plus ownership
// checks; no entity carries its own ACL.
package roles

import "strings"

// Canonical role strings as stored in the profiles collection.
const (
	SuperAdmin = "SUPER_ADMIN"
	Admin      = "ADMIN"
	Member     = "MEMBER"
	User       = "USER"
)

// tier maps each role to its position in the total order.
var tier = map[string]int{
	SuperAdmin: 0,
	Admin:      1,
	Member:     2,
	User:       3,
}

// Normalize returns the canonical uppercase form of role, or "" if the
// role is not one of the four tiers.
func Normalize(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	if _, ok := tier[r]; !ok {
		return ""
	}
	return r
}

// IsValid reports whether role names one of the four tiers.
func IsValid(role string) bool {
	_, ok := tier[Normalize(role)]
	return ok
}

// Tier returns the ordinal position of role in the total order.
// Unknown roles rank below USER so that a malformed role never gains
// authority.
func Tier(role string) int {
	if t, ok := tier[Normalize(role)]; ok {
		return t
	}
	return len(tier)
}

// AtLeast reports whether role has the authority of minimum or higher.
func AtLeast(role, minimum string) bool {
	return Tier(role) <= Tier(minimum)
}

// Outranks reports whether a strictly outranks b.
func Outranks(a, b string) bool {
	return Tier(a) < Tier(b)
}

// IsAuthorized reports whether role may use the member-only surfaces:
// chat, AI studio, attendance, tasks, and creating events, posts, and
// donation campaigns. Every tier except USER qualifies.
func IsAuthorized(role string) bool {
	r := Normalize(role)
	return r != "" && r != User
}

// IsAdmin reports whether role is one of the top two tiers.
func IsAdmin(role string) bool {
	return AtLeast(role, Admin)
}

// All returns the four roles from highest to lowest authority.
func All() []string {
	return []string{SuperAdmin, Admin, Member, User}
}

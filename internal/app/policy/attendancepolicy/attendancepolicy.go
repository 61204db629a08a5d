// internal/app/policy/attendancepolicy/attendancepolicy.go
package attendancepolicy

import "github.com/parivartan/platform/internal/app/system/roles"

// CanView reports whether the role may read attendance sheets. Members
// see the register; the USER tier does not.
func CanView(role string) bool {
	return roles.IsAuthorized(role)
}

// CanEdit reports whether the role may mark or amend a day's sheet.
// A submitted sheet is locked: only SUPER_ADMIN can reopen or amend it.
// Unsubmitted sheets take edits from ADMIN and above. MEMBER is always
// read-only.
func CanEdit(role string, submitted bool) bool {
	if submitted {
		return roles.Normalize(role) == roles.SuperAdmin
	}
	return roles.IsAdmin(role)
}

// internal/app/policy/rolepolicy/rolepolicy.go
//
// Who may change whose role, and to what. Pure functions over normalized
// inputs; the handlers own fetching and persisting.
package rolepolicy

import (
	"strings"

	"github.com/parivartan/platform/internal/app/system/roles"
)

// Decision explains a role-change verdict so the handler can return a
// precise error message.
type Decision struct {
	Allowed bool
	Reason  string
}

func deny(reason string) Decision { return Decision{Reason: reason} }

var allow = Decision{Allowed: true}

// IsProtected reports whether email is on the immutable-accounts list.
// Comparison is case-insensitive.
func IsProtected(email string, protected []string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, p := range protected {
		if strings.ToLower(strings.TrimSpace(p)) == email {
			return true
		}
	}
	return false
}

// CanChangeRole decides whether actorRole may set targetEmail's role to
// newRole. Only SUPER_ADMIN changes roles, protected accounts never
// change, and SUPER_ADMIN itself is never granted through this path.
func CanChangeRole(actorRole, targetEmail, newRole string, protected []string) Decision {
	if roles.Normalize(actorRole) != roles.SuperAdmin {
		return deny("only a super admin can change roles")
	}
	if IsProtected(targetEmail, protected) {
		return deny("this account's role cannot be changed")
	}
	next := roles.Normalize(newRole)
	if !roles.IsValid(next) {
		return deny("unknown role")
	}
	if next == roles.SuperAdmin {
		return deny("the super admin role cannot be granted")
	}
	return allow
}

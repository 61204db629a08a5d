// internal/app/system/authz/authz.go
//
// Request-scoped identity helpers. Handlers call these instead of poking
// at the session directly, so every permission check starts from the same
// normalized (role, name, id) triple.
package authz

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/roles"
)

// Identity is the caller's resolved identity for one request.
type Identity struct {
	UserID primitive.ObjectID
	Name   string
	Email  string
	Role   string
}

// UserCtx extracts the signed-in caller. ok is false when the request is
// anonymous or the stored id is not a valid ObjectID.
func UserCtx(r *http.Request) (Identity, bool) {
	u, found := auth.CurrentUser(r)
	if !found {
		return Identity{}, false
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return Identity{}, false
	}
	return Identity{
		UserID: oid,
		Name:   u.Name,
		Email:  u.Email,
		Role:   roles.Normalize(u.Role),
	}, true
}

// IsSuperAdmin reports whether the caller holds the top tier.
func (id Identity) IsSuperAdmin() bool { return id.Role == roles.SuperAdmin }

// IsAdmin reports whether the caller is ADMIN or above.
func (id Identity) IsAdmin() bool { return roles.IsAdmin(id.Role) }

// IsAuthorized reports whether the caller is above the USER tier.
func (id Identity) IsAuthorized() bool { return roles.IsAuthorized(id.Role) }

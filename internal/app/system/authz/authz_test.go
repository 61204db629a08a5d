package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/roles"
)

func TestUserCtx(t *testing.T) {
	oid := primitive.NewObjectID()
	req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil), &auth.SessionUser{
		ID:    oid.Hex(),
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
		Role:  "admin", // stored lowercase by an old client; must normalize
	})

	id, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("UserCtx: ok = false for signed-in request")
	}
	if id.UserID != oid {
		t.Errorf("UserID = %s, want %s", id.UserID.Hex(), oid.Hex())
	}
	if id.Role != roles.Admin {
		t.Errorf("Role = %q, want %q", id.Role, roles.Admin)
	}
	if !id.IsAdmin() || id.IsSuperAdmin() {
		t.Errorf("tier predicates wrong for ADMIN: IsAdmin=%v IsSuperAdmin=%v",
			id.IsAdmin(), id.IsSuperAdmin())
	}
}

func TestUserCtxAnonymous(t *testing.T) {
	if _, ok := authz.UserCtx(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Error("UserCtx: ok = true for anonymous request")
	}
}

func TestUserCtxBadObjectID(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.SessionUser{ID: "not-an-oid", Role: roles.Member})
	if _, ok := authz.UserCtx(req); ok {
		t.Error("UserCtx: ok = true for malformed user id")
	}
}

package normalize_test

import (
	"testing"

	"github.com/parivartan/platform/internal/app/system/normalize"
	"github.com/parivartan/platform/internal/app/system/roles"
)

func TestEmail(t *testing.T) {
	if got := normalize.Email("  Asha@Example.COM "); got != "asha@example.com" {
		t.Errorf("Email: got %q", got)
	}
}

func TestName(t *testing.T) {
	if got := normalize.Name("  Asha   Rao "); got != "Asha Rao" {
		t.Errorf("Name: got %q", got)
	}
}

func TestRoleDefaultsToUser(t *testing.T) {
	if got := normalize.Role("moderator"); got != roles.User {
		t.Errorf("Role: got %q, want %q", got, roles.User)
	}
	if got := normalize.Role("admin"); got != roles.Admin {
		t.Errorf("Role: got %q, want %q", got, roles.Admin)
	}
}

func TestChatIDIsOrderIndependent(t *testing.T) {
	a, b := "user-a", "user-b"
	if normalize.ChatID(a, b) != normalize.ChatID(b, a) {
		t.Error("ChatID must not depend on argument order")
	}
	if got := normalize.ChatID(b, a); got != "user-a__user-b" {
		t.Errorf("ChatID: got %q", got)
	}
}

package roles_test

import (
	"testing"

	"github.com/parivartan/platform/internal/app/system/roles"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SUPER_ADMIN", roles.SuperAdmin},
		{"admin", roles.Admin},
		{" member ", roles.Member},
		{"User", roles.User},
		{"visitor", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := roles.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTierOrder(t *testing.T) {
	order := roles.All()
	for i := 1; i < len(order); i++ {
		if !roles.Outranks(order[i-1], order[i]) {
			t.Errorf("expected %s to outrank %s", order[i-1], order[i])
		}
	}
	if roles.Outranks(roles.Member, roles.Member) {
		t.Error("a role must not outrank itself")
	}
}

func TestAtLeast(t *testing.T) {
	if !roles.AtLeast(roles.SuperAdmin, roles.Admin) {
		t.Error("SUPER_ADMIN should satisfy an ADMIN minimum")
	}
	if !roles.AtLeast(roles.Admin, roles.Admin) {
		t.Error("ADMIN should satisfy an ADMIN minimum")
	}
	if roles.AtLeast(roles.Member, roles.Admin) {
		t.Error("MEMBER should not satisfy an ADMIN minimum")
	}
}

func TestUnknownRoleHasNoAuthority(t *testing.T) {
	if roles.AtLeast("SUPERVISOR", roles.User) {
		t.Error("an unknown role must rank below USER")
	}
	if roles.IsAuthorized("SUPERVISOR") {
		t.Error("an unknown role must not be authorized")
	}
}

func TestIsAuthorized(t *testing.T) {
	for _, r := range []string{roles.SuperAdmin, roles.Admin, roles.Member} {
		if !roles.IsAuthorized(r) {
			t.Errorf("%s should be authorized", r)
		}
	}
	if roles.IsAuthorized(roles.User) {
		t.Error("USER must not be authorized")
	}
	if roles.IsAuthorized("") {
		t.Error("empty role must not be authorized")
	}
}

package rolepolicy_test

import (
	"testing"

	"github.com/parivartan/platform/internal/app/policy/rolepolicy"
	"github.com/parivartan/platform/internal/app/system/roles"
)

var protected = []string{"founder@parivartan.org", "ops@parivartan.org"}

func TestCanChangeRole(t *testing.T) {
	cases := []struct {
		name    string
		actor   string
		target  string
		newRole string
		want    bool
	}{
		{"super promotes user to member", roles.SuperAdmin, "a@example.com", roles.Member, true},
		{"super promotes member to admin", roles.SuperAdmin, "a@example.com", roles.Admin, true},
		{"super demotes admin to user", roles.SuperAdmin, "a@example.com", roles.User, true},
		{"admin cannot change roles", roles.Admin, "a@example.com", roles.Member, false},
		{"member cannot change roles", roles.Member, "a@example.com", roles.Member, false},
		{"user cannot change roles", roles.User, "a@example.com", roles.Member, false},
		{"cannot grant super admin", roles.SuperAdmin, "a@example.com", roles.SuperAdmin, false},
		{"protected email immutable", roles.SuperAdmin, "founder@parivartan.org", roles.User, false},
		{"protected match is case-insensitive", roles.SuperAdmin, "Founder@Parivartan.org", roles.Admin, false},
		{"unknown role rejected", roles.SuperAdmin, "a@example.com", "OVERLORD", false},
		{"lowercase actor role is normalized", "super_admin", "a@example.com", roles.Member, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := rolepolicy.CanChangeRole(tc.actor, tc.target, tc.newRole, protected)
			if d.Allowed != tc.want {
				t.Errorf("Allowed = %v, want %v (reason %q)", d.Allowed, tc.want, d.Reason)
			}
			if !d.Allowed && d.Reason == "" {
				t.Error("denial carries no reason")
			}
		})
	}
}

func TestIsProtected(t *testing.T) {
	if !rolepolicy.IsProtected(" OPS@parivartan.org ", protected) {
		t.Error("whitespace/case variant of protected email not recognized")
	}
	if rolepolicy.IsProtected("someone@parivartan.org", protected) {
		t.Error("unlisted email reported as protected")
	}
}

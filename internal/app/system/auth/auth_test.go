package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/roles"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testSessionKey, "parivartan-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return m
}

func TestSignInRoundTrip(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := m.SignIn(rec, req, &auth.SessionUser{
		ID:    "6554aa000000000000000001",
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Role:  roles.Admin,
	})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	// Replay the cookie through LoadSessionUser and observe the context.
	var got *auth.SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("no user in context after sign in")
	}
	if got.Email != "asha@example.com" {
		t.Errorf("email = %q, want %q", got.Email, "asha@example.com")
	}
	if got.Role != roles.Admin {
		t.Errorf("role = %q, want %q", got.Role, roles.Admin)
	}
}

func TestSignOutClearsSession(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := m.SignIn(rec, req, &auth.SessionUser{ID: "x", Role: roles.User}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	if err := m.SignOut(rec2, req2); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "parivartan-session" && c.MaxAge >= 0 {
			t.Errorf("sign-out cookie MaxAge = %d, want < 0", c.MaxAge)
		}
	}
}

type fixedFetcher struct{ u *auth.SessionUser }

func (f fixedFetcher) FetchUser(_ context.Context, _ string) *auth.SessionUser { return f.u }

func TestLoadSessionUserRefreshesFromFetcher(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := m.SignIn(rec, req, &auth.SessionUser{ID: "u1", Role: roles.User})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	// The fetcher reports a promotion that happened after sign-in.
	m.SetUserFetcher(fixedFetcher{u: &auth.SessionUser{ID: "u1", Role: roles.Admin}})

	var got *auth.SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("no user in context")
	}
	if got.Role != roles.Admin {
		t.Errorf("role = %q, want %q (fresh fetch must win over cookie)", got.Role, roles.Admin)
	}
}

func TestLoadSessionUserFetchMissSignsOut(t *testing.T) {
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := m.SignIn(rec, req, &auth.SessionUser{ID: "gone", Role: roles.Member}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	m.SetUserFetcher(fixedFetcher{u: nil})

	var found bool
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r)
	}))
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if found {
		t.Error("deleted user still present in context")
	}
}

func TestRequireSignedIn(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		auth.RequireSignedIn(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("signed in", func(t *testing.T) {
		req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
			&auth.SessionUser{ID: "u1", Role: roles.User})
		rec := httptest.NewRecorder()
		auth.RequireSignedIn(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestRequireAuthorizedRejectsUserTier(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		role string
		want int
	}{
		{roles.SuperAdmin, http.StatusOK},
		{roles.Admin, http.StatusOK},
		{roles.Member, http.StatusOK},
		{roles.User, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
			&auth.SessionUser{ID: "u1", Role: tc.role})
		rec := httptest.NewRecorder()
		auth.RequireAuthorized(next).ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("role %s: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := auth.RequireRole(roles.SuperAdmin, roles.Admin)

	cases := []struct {
		role string
		want int
	}{
		{roles.SuperAdmin, http.StatusOK},
		{roles.Admin, http.StatusOK},
		{"admin", http.StatusOK}, // lowercase input is normalized
		{roles.Member, http.StatusForbidden},
		{roles.User, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
			&auth.SessionUser{ID: "u1", Role: tc.role})
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("role %q: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}

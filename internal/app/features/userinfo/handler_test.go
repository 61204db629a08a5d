package userinfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parivartan/platform/internal/app/features/userinfo"
	"github.com/parivartan/platform/internal/app/system/roles"
	"github.com/parivartan/platform/internal/testutil"
)

func TestServeUserInfo_Unauthenticated(t *testing.T) {
	handler := userinfo.NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/userinfo", nil)
	rec := testutil.NewRecorder()

	handler.ServeUserInfo(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	if isAuth, ok := response["isAuthenticated"].(bool); !ok || isAuth {
		t.Errorf("isAuthenticated: got %v, want false", response["isAuthenticated"])
	}
}

func TestServeUserInfo_Authenticated(t *testing.T) {
	handler := userinfo.NewHandler()

	user := testutil.MemberUser()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/userinfo", user)
	rec := testutil.NewRecorder()

	handler.ServeUserInfo(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var response map[string]any
	rec.DecodeJSON(t, &response)

	if isAuth, _ := response["isAuthenticated"].(bool); !isAuth {
		t.Error("isAuthenticated: got false, want true")
	}
	if response["role"] != roles.Member {
		t.Errorf("role: got %v, want %q", response["role"], roles.Member)
	}
	if response["email"] != user.Email {
		t.Errorf("email: got %v, want %q", response["email"], user.Email)
	}
}

// internal/app/features/sysconfig/handler_test.go
package sysconfig_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/sysconfig"
	sysconfigstore "github.com/parivartan/platform/internal/app/store/sysconfig"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
)

func TestStartupDefaultsDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sysconfig.NewHandler(sysconfigstore.New(db), zap.NewNop())

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/config/startup", nil)
	rec := testutil.NewRecorder()
	h.ServeGetStartup(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var cfg models.StartupConfig
	rec.DecodeJSON(t, &cfg)
	if cfg.Enabled {
		t.Fatal("expected popup disabled before any config is stored")
	}
}

func TestSetStartupRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sysconfig.NewHandler(sysconfigstore.New(db), zap.NewNop())

	put := testutil.NewJSONRequest(t, http.MethodPut, "/api/config/startup", models.StartupConfig{
		Enabled: true,
		Title:   "Maintenance",
		Message: "The platform will be down Saturday night.",
	})
	put = testutil.WithUser(put, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.ServeSetStartup(rec, put)
	rec.AssertStatus(t, http.StatusOK)

	get := testutil.NewJSONRequest(t, http.MethodGet, "/api/config/startup", nil)
	getRec := testutil.NewRecorder()
	h.ServeGetStartup(getRec, get)
	getRec.AssertStatus(t, http.StatusOK)

	var cfg models.StartupConfig
	getRec.DecodeJSON(t, &cfg)
	if !cfg.Enabled || cfg.Title != "Maintenance" {
		t.Fatalf("got %+v, want the stored popup back", cfg)
	}
}

func TestEnabledPopupNeedsMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sysconfig.NewHandler(sysconfigstore.New(db), zap.NewNop())

	put := testutil.NewJSONRequest(t, http.MethodPut, "/api/config/startup", models.StartupConfig{Enabled: true})
	put = testutil.WithUser(put, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.ServeSetStartup(rec, put)
	rec.AssertStatus(t, http.StatusBadRequest)
}

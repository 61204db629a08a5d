package events_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/events"
	eventstore "github.com/parivartan/platform/internal/app/store/events"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
)

func TestServeSave_ReplayUpdatesInPlace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	h := events.NewHandler(store, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.AdminUser()
	body := map[string]string{
		"id":       "7a6b9c2e-0000-4111-8222-333344445555",
		"title":    "Spring Cleanup",
		"date":     "2025-04-01",
		"location": "Riverside Park",
	}

	for i := 0; i < 2; i++ {
		req := testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/events", body), admin)
		rec := testutil.NewRecorder()
		h.ServeSave(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusOK)

		var saved models.Event
		rec.DecodeJSON(t, &saved)
		if saved.Title != "Spring Cleanup" || saved.Location != "Riverside Park" {
			t.Errorf("saved = %+v", saved)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(events) = %d, want 1 after replayed save", len(all))
	}
}

func TestServeSave_RequiresTitleAndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := events.NewHandler(eventstore.New(db), zap.NewNop())

	req := testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/events",
		map[string]string{"title": "No date"}), testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.ServeSave(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeSave_MemberCreatesOwnEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := events.NewHandler(eventstore.New(db), zap.NewNop())

	member := testutil.MemberUser()
	req := testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/events",
		map[string]string{"title": "Tree Planting", "date": "2025-06-15"}), member)
	rec := testutil.NewRecorder()
	h.ServeSave(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var saved models.Event
	rec.DecodeJSON(t, &saved)
	if saved.CreatedBy.Hex() != member.ID {
		t.Errorf("created_by = %s, want the creating member", saved.CreatedBy.Hex())
	}
}

func TestServeSave_MemberCannotAmendOthersEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := events.NewHandler(eventstore.New(db), zap.NewNop())

	owner := testutil.MemberUser()
	body := map[string]string{
		"id":    "9f8e7d6c-0000-4111-8222-333344445555",
		"title": "Health Camp",
		"date":  "2025-07-01",
	}
	req := testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/events", body), owner)
	rec := testutil.NewRecorder()
	h.ServeSave(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	body["title"] = "Hijacked"
	req = testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/events", body), testutil.MemberUser())
	rec = testutil.NewRecorder()
	h.ServeSave(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// An admin may amend anyone's event.
	body["title"] = "Community Health Camp"
	req = testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/events", body), testutil.AdminUser())
	rec = testutil.NewRecorder()
	h.ServeSave(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}

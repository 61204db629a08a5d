package attendance_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/attendance"
	attendancestore "github.com/parivartan/platform/internal/app/store/attendance"
	profilestore "github.com/parivartan/platform/internal/app/store/profiles"
	"github.com/parivartan/platform/internal/app/system/roles"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func newHandler(db *mongo.Database) *attendance.Handler {
	return attendance.NewHandler(attendancestore.New(db), profilestore.New(db), zap.NewNop())
}

func markReq(t *testing.T, date string, user testutil.TestUser) *http.Request {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPut, "/api/attendance/"+date,
		map[string]any{
			"village_name": "Rampur",
			"entries":      []models.AttendanceEntry{},
		})
	req = testutil.WithUser(req, user)
	return testutil.WithChiURLParam(req, "date", date)
}

func TestServeMark_MemberReadOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)

	rec := testutil.NewRecorder()
	h.ServeMark(rec.ResponseRecorder, markReq(t, "2025-04-01", testutil.MemberUser()))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestServeMark_AdminMarksOpenSheet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)

	rec := testutil.NewRecorder()
	h.ServeMark(rec.ResponseRecorder, markReq(t, "2025-04-01", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)
}

func TestSubmittedSheetLock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	h := newHandler(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Admin marks and submits the sheet.
	rec := testutil.NewRecorder()
	h.ServeMark(rec.ResponseRecorder, markReq(t, "2025-04-01", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	submit := func(user testutil.TestUser, submitted bool) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/attendance/2025-04-01/submit",
			map[string]bool{"submitted": submitted})
		req = testutil.WithUser(req, user)
		req = testutil.WithChiURLParam(req, "date", "2025-04-01")
		rec := testutil.NewRecorder()
		h.ServeSubmit(rec.ResponseRecorder, req)
		return rec
	}

	submit(testutil.AdminUser(), true).AssertStatus(t, http.StatusOK)

	// Once submitted, admin edits are locked out.
	rec = testutil.NewRecorder()
	h.ServeMark(rec.ResponseRecorder, markReq(t, "2025-04-01", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusForbidden)

	// And an admin cannot reopen it.
	submit(testutil.AdminUser(), false).AssertStatus(t, http.StatusForbidden)

	// Super admin can still amend and reopen.
	rec = testutil.NewRecorder()
	h.ServeMark(rec.ResponseRecorder, markReq(t, "2025-04-01", testutil.SuperAdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	submit(testutil.SuperAdminUser(), false).AssertStatus(t, http.StatusOK)

	got, err := store.GetByDate(ctx, "2025-04-01")
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if got.Submitted {
		t.Error("sheet still submitted after super admin reopened it")
	}
}

func TestServeAwardBadges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := attendancestore.New(db)
	profiles := profilestore.New(db)
	h := newHandler(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	top := fixtures.CreateUser(ctx, "Asha", "asha@example.com", roles.Member)
	second := fixtures.CreateUser(ctx, "Ravi", "ravi@example.com", roles.Member)

	for _, date := range []string{"2025-04-01", "2025-04-02"} {
		entries := []models.AttendanceEntry{
			{UserID: top.ID, Status: models.AttendancePresent},
			{UserID: second.ID, Status: models.AttendanceAbsent},
		}
		if date == "2025-04-01" {
			entries[1].Status = models.AttendancePresent
		}
		if _, err := store.Upsert(ctx, models.AttendanceSession{Date: date, Entries: entries}, top.ID); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/attendance/badges/2025-04", nil)
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "month", "2025-04")
	rec := testutil.NewRecorder()
	h.ServeAwardBadges(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	gotTop, err := profiles.GetByID(ctx, top.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(gotTop.Badges) != 1 || gotTop.Badges[0].Type != "gold" {
		t.Errorf("top attender badges = %+v, want one gold", gotTop.Badges)
	}
	gotSecond, err := profiles.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(gotSecond.Badges) != 1 || gotSecond.Badges[0].Type != "silver" {
		t.Errorf("second attender badges = %+v, want one silver", gotSecond.Badges)
	}
}

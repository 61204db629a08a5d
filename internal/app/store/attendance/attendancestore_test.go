package attendancestore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	attendancestore "github.com/parivartan/platform/internal/app/store/attendance"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
)

func TestStore_UpsertByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	marker := primitive.NewObjectID()
	member := primitive.NewObjectID()

	first, err := store.Upsert(ctx, models.AttendanceSession{
		Date:        "2025-04-01",
		VillageName: "Rampur",
		Entries: []models.AttendanceEntry{
			{UserID: member, UserName: "Meena", Status: models.AttendanceAbsent},
		},
	}, marker)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if first.Submitted {
		t.Error("new sheet must start unsubmitted")
	}

	// Amending the same day rewrites the sheet instead of adding a second one.
	second, err := store.Upsert(ctx, models.AttendanceSession{
		Date: "2025-04-01",
		Entries: []models.AttendanceEntry{
			{UserID: member, UserName: "Meena", Status: models.AttendancePresent},
		},
	}, marker)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.Entries[0].Status != models.AttendancePresent {
		t.Errorf("status = %q, want amended to present", second.Entries[0].Status)
	}

	all, err := store.ListRange(ctx, "", "")
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(sessions) = %d, want 1 for a re-marked day", len(all))
	}
}

func TestStore_UpsertRejectsBadDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Upsert(ctx, models.AttendanceSession{Date: "01/04/2025"}, primitive.NewObjectID())
	if !errors.Is(err, attendancestore.ErrBadDate) {
		t.Errorf("err = %v, want ErrBadDate", err)
	}
}

func TestStore_SetSubmitted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Upsert(ctx, models.AttendanceSession{Date: "2025-04-02"}, primitive.NewObjectID()); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.SetSubmitted(ctx, "2025-04-02", true); err != nil {
		t.Fatalf("SetSubmitted: %v", err)
	}
	got, err := store.GetByDate(ctx, "2025-04-02")
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if !got.Submitted {
		t.Error("sheet not marked submitted")
	}

	if err := store.SetSubmitted(ctx, "1999-01-01", true); err == nil {
		t.Error("SetSubmitted on a missing date must fail")
	}
}

func TestStore_PresenceCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	marker := primitive.NewObjectID()
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	days := []struct {
		date     string
		aStatus  string
		bStatus  string
	}{
		{"2025-04-01", models.AttendancePresent, models.AttendanceAbsent},
		{"2025-04-02", models.AttendancePresent, models.AttendancePresent},
		{"2025-05-01", models.AttendancePresent, models.AttendancePresent}, // outside range
	}
	for _, d := range days {
		_, err := store.Upsert(ctx, models.AttendanceSession{
			Date: d.date,
			Entries: []models.AttendanceEntry{
				{UserID: a, Status: d.aStatus},
				{UserID: b, Status: d.bStatus},
			},
		}, marker)
		if err != nil {
			t.Fatalf("Upsert %s: %v", d.date, err)
		}
	}

	counts, err := store.PresenceCounts(ctx, "2025-04-01", "2025-04-30")
	if err != nil {
		t.Fatalf("PresenceCounts: %v", err)
	}
	if counts[a] != 2 {
		t.Errorf("counts[a] = %d, want 2", counts[a])
	}
	if counts[b] != 1 {
		t.Errorf("counts[b] = %d, want 1", counts[b])
	}
}

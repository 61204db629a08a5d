package eventstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	eventstore "github.com/parivartan/platform/internal/app/store/events"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
)

func TestStore_UpsertIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	ev := models.Event{
		ID:       "5f0c1e3a-1111-4222-8333-444455556666",
		Title:    "Spring Cleanup",
		Date:     "2025-04-01",
		Location: "Riverside Park",
	}

	first, err := store.Upsert(ctx, ev, creator)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	// Replaying the same save with an edited title must update in place.
	ev.Title = "Spring Cleanup Drive"
	second, err := store.Upsert(ctx, ev, creator)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("id changed on replay: %q -> %q", first.ID, second.ID)
	}
	if second.Title != "Spring Cleanup Drive" {
		t.Errorf("title = %q, want updated value", second.Title)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("CreatedAt changed on replay")
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(events) = %d, want 1 after replayed save", len(all))
	}
}

func TestStore_UpsertGeneratesID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev, err := store.Upsert(ctx, models.Event{Title: "Health Camp", Date: "2025-05-10"}, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if ev.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestStore_ListSortsByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	for _, e := range []models.Event{
		{Title: "Later", Date: "2025-06-01"},
		{Title: "Sooner", Date: "2025-04-01"},
	} {
		if _, err := store.Upsert(ctx, e, creator); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Title != "Sooner" {
		t.Errorf("events not sorted by date: %+v", all)
	}
}

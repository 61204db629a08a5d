// internal/app/features/notifications/handler_test.go
package notifications_test

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/notifications"
	notificationstore "github.com/parivartan/platform/internal/app/store/notifications"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
)

func TestTrayIsOwnerScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := notificationstore.New(db)
	h := notifications.NewHandler(store, zap.NewNop())

	alice := testutil.MemberUser()
	bob := testutil.MemberUser()

	aliceID, err := primitive.ObjectIDFromHex(alice.ID)
	if err != nil {
		t.Fatalf("parse alice id: %v", err)
	}

	created, err := store.Create(ctx, models.Notification{
		UserID:  aliceID,
		Type:    "comment",
		Content: "Bob commented on your post",
	})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	// Bob cannot mark Alice's notification read.
	req := testutil.NewJSONRequest(t, http.MethodPut, "/api/notifications/"+created.ID.Hex()+"/read", nil)
	req = testutil.WithUser(req, bob)
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeMarkRead(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	// Alice can.
	req = testutil.NewJSONRequest(t, http.MethodPut, "/api/notifications/"+created.ID.Hex()+"/read", nil)
	req = testutil.WithUser(req, alice)
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec = testutil.NewRecorder()
	h.ServeMarkRead(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	unread, err := store.UnreadCount(ctx, aliceID)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if unread != 0 {
		t.Fatalf("got %d unread, want 0", unread)
	}
}

func TestListReportsUnreadCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := notificationstore.New(db)
	h := notifications.NewHandler(store, zap.NewNop())
	alice := testutil.MemberUser()

	aliceID, err := primitive.ObjectIDFromHex(alice.ID)
	if err != nil {
		t.Fatalf("parse alice id: %v", err)
	}

	for _, msg := range []string{"first", "second", "third"} {
		if _, err := store.Create(ctx, models.Notification{UserID: aliceID, Type: "like", Content: msg}); err != nil {
			t.Fatalf("create notification: %v", err)
		}
	}

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/notifications", nil)
	req = testutil.WithUser(req, alice)
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Notifications []models.Notification `json:"notifications"`
		Unread        int64                 `json:"unread"`
	}
	rec.DecodeJSON(t, &resp)
	if len(resp.Notifications) != 3 {
		t.Fatalf("got %d notifications, want 3", len(resp.Notifications))
	}
	if resp.Unread != 3 {
		t.Fatalf("got %d unread, want 3", resp.Unread)
	}
}

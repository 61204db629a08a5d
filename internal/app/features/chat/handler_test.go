// internal/app/features/chat/handler_test.go
package chat_test

import (
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/chat"
	chatstore "github.com/parivartan/platform/internal/app/store/chat"
	"github.com/parivartan/platform/internal/app/system/normalize"
	"github.com/parivartan/platform/internal/app/system/roles"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
)

func TestDirectChatRejectsOutsider(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := chat.NewHandler(chatstore.New(db), zap.NewNop())

	alice := testutil.MemberUser()
	bob := testutil.MemberUser()
	eve := testutil.MemberUser()
	chatID := normalize.ChatID(alice.ID, bob.ID)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/chat/"+chatID+"/messages", nil)
	req = testutil.WithUser(req, eve)
	req = testutil.WithChiURLParam(req, "chatID", chatID)

	rec := testutil.NewRecorder()
	h.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestSendAndListSanitizesText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	alice := fx.CreateUser(ctx, "Alice", "alice@example.com", roles.Member)
	bob := fx.CreateUser(ctx, "Bob", "bob@example.com", roles.Member)

	h := chat.NewHandler(chatstore.New(db), zap.NewNop())
	chatID := normalize.ChatID(alice.ID.Hex(), bob.ID.Hex())

	body := map[string]string{"text": `hello <script>alert(1)</script>`}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/chat/"+chatID+"/messages", body)
	req = testutil.WithUser(req, testutil.TestUser{ID: alice.ID.Hex(), Name: alice.Name, Email: alice.Email, Role: alice.Role})
	req = testutil.WithChiURLParam(req, "chatID", chatID)

	rec := testutil.NewRecorder()
	h.ServeSend(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var sent models.ChatMessage
	rec.DecodeJSON(t, &sent)
	if strings.Contains(sent.Text, "<script>") {
		t.Fatalf("message text not sanitized: %q", sent.Text)
	}
	if sent.ID == "" {
		t.Fatal("expected message to be assigned an id")
	}

	listReq := testutil.NewJSONRequest(t, http.MethodGet, "/api/chat/"+chatID+"/messages", nil)
	listReq = testutil.WithUser(listReq, testutil.TestUser{ID: bob.ID.Hex(), Name: bob.Name, Email: bob.Email, Role: bob.Role})
	listReq = testutil.WithChiURLParam(listReq, "chatID", chatID)

	listRec := testutil.NewRecorder()
	h.ServeList(listRec, listReq)
	listRec.AssertStatus(t, http.StatusOK)

	var msgs []models.ChatMessage
	listRec.DecodeJSON(t, &msgs)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].SenderName != "Alice" {
		t.Fatalf("got sender name %q, want %q", msgs[0].SenderName, "Alice")
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := chat.NewHandler(chatstore.New(db), zap.NewNop())

	alice := testutil.MemberUser()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/chat/community/messages", map[string]string{"text": ""})
	req = testutil.WithUser(req, alice)
	req = testutil.WithChiURLParam(req, "chatID", "community")

	rec := testutil.NewRecorder()
	h.ServeSend(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

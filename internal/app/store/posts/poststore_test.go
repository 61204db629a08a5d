package poststore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	poststore "github.com/parivartan/platform/internal/app/store/posts"
	"github.com/parivartan/platform/internal/app/system/roles"
	"github.com/parivartan/platform/internal/domain/models"
	"github.com/parivartan/platform/internal/testutil"
)

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Asha Verma", "asha@example.com", roles.Member)

	created, err := store.Create(ctx, models.Post{
		UserID:  author.ID,
		Type:    models.PostTypeGeneral,
		Content: "Tree plantation this Sunday",
		Images:  []string{"a.jpg", "b.jpg"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}

	posts, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	p := posts[0]
	if p.UserName != "Asha Verma" {
		t.Errorf("UserName = %q, want author name hydrated", p.UserName)
	}
	if len(p.Images) != 2 {
		t.Errorf("len(Images) = %d, want 2", len(p.Images))
	}
	if p.Comments == nil {
		t.Error("Comments should be an empty slice, not nil")
	}
}

func TestStore_ToggleLike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Asha", "asha@example.com", roles.Member)
	post := fixtures.CreatePost(ctx, author.ID, "hello")
	liker := primitive.NewObjectID()

	liked, count, err := store.ToggleLike(ctx, post.ID, liker)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !liked || count != 1 {
		t.Errorf("first toggle: liked=%v count=%d, want true 1", liked, count)
	}

	liked, count, err = store.ToggleLike(ctx, post.ID, liker)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if liked || count != 0 {
		t.Errorf("second toggle: liked=%v count=%d, want false 0", liked, count)
	}
}

func TestStore_DeleteRemovesComments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Asha", "asha@example.com", roles.Member)
	post := fixtures.CreatePost(ctx, author.ID, "hello")

	_, err := db.Collection("comments").InsertOne(ctx, models.Comment{
		ID:      primitive.NewObjectID(),
		PostID:  post.ID,
		UserID:  author.ID,
		Content: "nice",
	})
	if err != nil {
		t.Fatalf("insert comment: %v", err)
	}

	if err := store.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	n, err := db.Collection("comments").CountDocuments(ctx, map[string]any{"post_id": post.ID})
	if err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if n != 0 {
		t.Errorf("comments remaining after post delete: %d", n)
	}
}

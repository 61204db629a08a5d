package poststore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/domain/models"
)

type Store struct {
	posts    *mongo.Collection
	comments *mongo.Collection
	profiles *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
		profiles: db.Collection("profiles"),
	}
}

// Create inserts a post. Images are packed into the single stored image
// field; see images.go.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = primitive.NewObjectID()
	p.Image = EncodeImages(p.Images)
	p.CreatedAt = time.Now().UTC()
	if _, err := s.posts.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	p.Images = DecodeImages(p.Image)
	return p, nil
}

// GetByID loads a post without display hydration.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	p.Images = DecodeImages(p.Image)
	return &p, nil
}

// List returns the feed newest-first, hydrated with author names, avatars,
// decoded images, and each post's comments.
func (s *Store) List(ctx context.Context, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []models.Post{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(posts))
	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		authorIDs = append(authorIDs, p.UserID)
	}

	comments, err := s.listForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}

	authors, err := s.authorIndex(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	byPost := make(map[primitive.ObjectID][]models.Comment, len(posts))
	for _, c := range comments {
		if a, ok := authors[c.UserID]; ok {
			c.UserName = a.name
		}
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}

	for i := range posts {
		p := &posts[i]
		p.Images = DecodeImages(p.Image)
		if a, ok := authors[p.UserID]; ok {
			p.UserName = a.name
			p.UserAvatar = a.avatar
		}
		p.Comments = byPost[p.ID]
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
	}
	return posts, nil
}

// PostUpdate holds the editable post fields.
type PostUpdate struct {
	Type    string
	Content string
	Images  []string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd PostUpdate) error {
	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"type":    upd.Type,
		"content": upd.Content,
		"image":   EncodeImages(upd.Images),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a post and its comments.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	_, err = s.comments.DeleteMany(ctx, bson.M{"post_id": id})
	return err
}

// ToggleLike flips the caller's like on a post and returns the new liked
// state and count. likes_count follows the liked_by array, so the count
// can never drift from the set.
func (s *Store) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, int, error) {
	res, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "liked_by": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"liked_by": userID}, "$inc": bson.M{"likes_count": 1}})
	if err != nil {
		return false, 0, err
	}

	liked := res.ModifiedCount > 0
	if !liked {
		// Already liked (or post missing); try the unlike direction.
		res, err = s.posts.UpdateOne(ctx,
			bson.M{"_id": postID, "liked_by": userID},
			bson.M{"$pull": bson.M{"liked_by": userID}, "$inc": bson.M{"likes_count": -1}})
		if err != nil {
			return false, 0, err
		}
		if res.MatchedCount == 0 {
			return false, 0, mongo.ErrNoDocuments
		}
	}

	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	return liked, p.LikesCount, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Internal joins                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

type authorInfo struct {
	name   string
	avatar string
}

func (s *Store) authorIndex(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]authorInfo, error) {
	cur, err := s.profiles.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "avatar": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[primitive.ObjectID]authorInfo)
	for cur.Next(ctx) {
		var u models.User
		if cur.Decode(&u) == nil {
			out[u.ID] = authorInfo{name: u.Name, avatar: u.Avatar}
		}
	}
	return out, cur.Err()
}

func (s *Store) listForPosts(ctx context.Context, postIDs []primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.comments.Find(ctx, bson.M{"post_id": bson.M{"$in": postIDs}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Comment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

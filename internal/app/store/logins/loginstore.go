package loginstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Challenge is a half-finished sign-in waiting for a one-time code. It is
// created after the OAuth callback for accounts with the second factor
// enabled, and consumed when the code verifies.
type Challenge struct {
	Token     string             `bson:"token"`
	UserID    primitive.ObjectID `bson:"user_id"`
	ReturnURL string             `bson:"return_url,omitempty"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Store manages pending sign-in challenges in MongoDB.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_challenges")}
}

// EnsureIndexes creates the token lookup index and TTL expiry.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_login_token"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_login_ttl"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Save stores a challenge.
func (s *Store) Save(ctx context.Context, ch Challenge) error {
	ch.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, ch)
	return err
}

// Peek returns the challenge for a token without consuming it, so a wrong
// code leaves the challenge usable for another attempt.
func (s *Store) Peek(ctx context.Context, token string) (*Challenge, bool, error) {
	var ch Challenge
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&ch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &ch, true, nil
}

// Consume deletes the challenge after a successful verification.
func (s *Store) Consume(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"token": token})
	return err
}

package slidestore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("slides")}
}

// List returns carousel slides oldest-first so the order is stable.
func (s *Store) List(ctx context.Context) ([]models.Slide, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Slide
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert writes a slide keyed by its UUID, generating one when absent.
func (s *Store) Upsert(ctx context.Context, sl models.Slide) (models.Slide, error) {
	if sl.ID == "" {
		sl.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"title":       sl.Title,
			"description": sl.Description,
			"image":       sl.Image,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Slide
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": sl.ID}, update, opts).Decode(&out); err != nil {
		return models.Slide{}, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

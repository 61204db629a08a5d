package eventstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// List returns events ordered by date.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Upsert writes an event keyed by its client-supplied UUID, generating one
// when absent. Replaying the same id updates in place instead of creating
// a duplicate, so a retried save is harmless. CreatedBy and CreatedAt are
// fixed at first write.
func (s *Store) Upsert(ctx context.Context, e models.Event, createdBy primitive.ObjectID) (models.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"title":       e.Title,
			"date":        e.Date,
			"description": e.Description,
			"location":    e.Location,
			"image":       e.Image,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"created_by": createdBy,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Event
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": e.ID}, update, opts).Decode(&out); err != nil {
		return models.Event{}, err
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

package campaignstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/domain/models"
)

// ErrBadAmount is returned for non-positive donation amounts.
var ErrBadAmount = errors.New("donation amount must be positive")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("campaigns")}
}

// List returns campaigns newest-first.
func (s *Store) List(ctx context.Context) ([]models.DonationCampaign, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DonationCampaign
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.DonationCampaign, error) {
	var c models.DonationCampaign
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert writes a campaign keyed by its UUID. RaisedAmount is never set
// here; only RecordDonation moves it.
func (s *Store) Upsert(ctx context.Context, c models.DonationCampaign, createdBy primitive.ObjectID) (models.DonationCampaign, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"title":         c.Title,
			"description":   c.Description,
			"target_amount": c.TargetAmount,
			"upi_id":        c.UPIID,
			"image":         c.Image,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"raised_amount": 0.0,
			"created_by":    createdBy,
			"created_at":    now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.DonationCampaign
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": c.ID}, update, opts).Decode(&out); err != nil {
		return models.DonationCampaign{}, err
	}
	return out, nil
}

// RecordDonation adds a confirmed donation to the raised total.
func (s *Store) RecordDonation(ctx context.Context, id string, amount float64) (*models.DonationCampaign, error) {
	if amount <= 0 {
		return nil, ErrBadAmount
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.DonationCampaign
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"raised_amount": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}, opts).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
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

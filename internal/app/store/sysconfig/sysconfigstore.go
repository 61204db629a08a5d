package sysconfigstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/domain/models"
)

const startupKey = "startup_popup"

// Store keeps keyed singleton documents in system_config.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("system_config")}
}

type startupDoc struct {
	Key       string               `bson:"_id"`
	Value     models.StartupConfig `bson:"value"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

// GetStartup returns the startup popup config, defaulting to disabled
// when none has been stored yet.
func (s *Store) GetStartup(ctx context.Context) (models.StartupConfig, error) {
	var doc startupDoc
	err := s.c.FindOne(ctx, bson.M{"_id": startupKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StartupConfig{}, nil
	}
	if err != nil {
		return models.StartupConfig{}, err
	}
	return doc.Value, nil
}

// SetStartup stores the startup popup config.
func (s *Store) SetStartup(ctx context.Context, cfg models.StartupConfig) error {
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": startupKey}, startupDoc{
		Key:       startupKey,
		Value:     cfg,
		UpdatedAt: time.Now().UTC(),
	}, options.Replace().SetUpsert(true))
	return err
}

package chatstore

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
	messages *mongo.Collection
	profiles *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		messages: db.Collection("chat_messages"),
		profiles: db.Collection("profiles"),
	}
}

// Append stores a message with a fresh UUID id. Two messages sent in the
// same millisecond by different senders can never collide.
func (s *Store) Append(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	if _, err := s.messages.InsertOne(ctx, m); err != nil {
		return models.ChatMessage{}, err
	}
	return m, nil
}

// AppendSystem stores a system notice in the conversation, such as a
// member joining.
func (s *Store) AppendSystem(ctx context.Context, chatID, text string) (models.ChatMessage, error) {
	return s.Append(ctx, models.ChatMessage{
		ChatID:   chatID,
		Text:     text,
		IsSystem: true,
	})
}

// List returns a conversation's messages oldest-first, hydrated with
// sender names. limit > 0 keeps only the newest messages.
func (s *Store) List(ctx context.Context, chatID string, limit int64) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.messages.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.ChatMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	senderIDs := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		if !m.IsSystem {
			senderIDs = append(senderIDs, m.SenderID)
		}
	}
	if len(senderIDs) > 0 {
		names, err := s.senderNames(ctx, senderIDs)
		if err != nil {
			return nil, err
		}
		for i := range msgs {
			msgs[i].SenderName = names[msgs[i].SenderID]
		}
	}
	return msgs, nil
}

func (s *Store) senderNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	cur, err := s.profiles.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[primitive.ObjectID]string)
	for cur.Next(ctx) {
		var u models.User
		if cur.Decode(&u) == nil {
			out[u.ID] = u.Name
		}
	}
	return out, cur.Err()
}

package feedbackstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/domain/models"
)

var (
	// ErrBadRating is returned for ratings outside 1..5.
	ErrBadRating = errors.New("rating must be between 1 and 5")
	// ErrBadCategory is returned for unknown suggestion categories.
	ErrBadCategory = errors.New(`category must be "feature"|"improvement"|"bug"`)
)

type Store struct {
	feedback    *mongo.Collection
	suggestions *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		feedback:    db.Collection("feedback"),
		suggestions: db.Collection("suggestions"),
	}
}

func (s *Store) CreateFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	if f.Rating < 1 || f.Rating > 5 {
		return models.Feedback{}, ErrBadRating
	}
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now().UTC()
	if _, err := s.feedback.InsertOne(ctx, f); err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	cur, err := s.feedback.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Feedback
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreateSuggestion(ctx context.Context, sg models.Suggestion) (models.Suggestion, error) {
	switch sg.Category {
	case models.SuggestionFeature, models.SuggestionImprovement, models.SuggestionBug:
	default:
		return models.Suggestion{}, ErrBadCategory
	}
	sg.ID = primitive.NewObjectID()
	sg.CreatedAt = time.Now().UTC()
	if _, err := s.suggestions.InsertOne(ctx, sg); err != nil {
		return models.Suggestion{}, err
	}
	return sg, nil
}

func (s *Store) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	cur, err := s.suggestions.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Suggestion
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

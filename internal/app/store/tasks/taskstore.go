package taskstore

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
	tasks    *mongo.Collection
	profiles *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		tasks:    db.Collection("tasks"),
		profiles: db.Collection("profiles"),
	}
}

// List returns all tasks ordered by due date, hydrated with assignee names.
func (s *Store) List(ctx context.Context) ([]models.Task, error) {
	cur, err := s.tasks.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []models.Task{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(out))
	for _, t := range out {
		ids = append(ids, t.AssignedTo)
	}
	names, err := s.nameIndex(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AssignedToName = names[out[i].AssignedTo]
	}
	return out, nil
}

// ListForUser returns the tasks assigned to one member.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	cur, err := s.tasks.Find(ctx, bson.M{"assigned_to": userID},
		options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	if err := s.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Upsert writes a task keyed by its UUID, generating one when absent, so a
// retried save does not duplicate the task.
func (s *Store) Upsert(ctx context.Context, t models.Task, createdBy primitive.ObjectID) (models.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.TaskStatusPending
	}
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"title":       t.Title,
			"description": t.Description,
			"assigned_to": t.AssignedTo,
			"status":      t.Status,
			"due_date":    t.DueDate,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"created_by": createdBy,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Task
	if err := s.tasks.FindOneAndUpdate(ctx, bson.M{"_id": t.ID}, update, opts).Decode(&out); err != nil {
		return models.Task{}, err
	}
	return out, nil
}

// UpdateStatus moves a task through pending, in-progress, completed.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.tasks.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) nameIndex(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
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

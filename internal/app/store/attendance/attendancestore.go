package attendancestore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/domain/models"
)

// ErrBadDate is returned when the session date is not YYYY-MM-DD.
var ErrBadDate = errors.New("attendance date must be YYYY-MM-DD")

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("attendance_sessions")}
}

// GetByDate loads the session for one day. Returns mongo.ErrNoDocuments
// when no sheet exists yet for that date.
func (s *Store) GetByDate(ctx context.Context, date string) (*models.AttendanceSession, error) {
	var a models.AttendanceSession
	if err := s.c.FindOne(ctx, bson.M{"_id": date}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListRange returns the sessions between from and to inclusive, oldest
// first. Dates are YYYY-MM-DD so string comparison is date comparison.
func (s *Store) ListRange(ctx context.Context, from, to string) ([]models.AttendanceSession, error) {
	filter := bson.M{}
	if from != "" || to != "" {
		r := bson.M{}
		if from != "" {
			r["$gte"] = from
		}
		if to != "" {
			r["$lte"] = to
		}
		filter["_id"] = r
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AttendanceSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert writes the day's sheet, keyed by date so marking twice amends the
// same session. The submitted flag is not touched here; Submit owns it.
func (s *Store) Upsert(ctx context.Context, a models.AttendanceSession, markedBy primitive.ObjectID) (*models.AttendanceSession, error) {
	if !dateRe.MatchString(a.Date) {
		return nil, ErrBadDate
	}
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"village_name": a.VillageName,
			"entries":      a.Entries,
			"marked_by":    markedBy,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"submitted":  false,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.AttendanceSession
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": a.Date}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetSubmitted locks or reopens the day's sheet.
func (s *Store) SetSubmitted(ctx context.Context, date string, submitted bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": date}, bson.M{"$set": bson.M{
		"submitted":  submitted,
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

// PresenceCounts tallies present marks per user across a date range. The
// badge job uses this for monthly awards.
func (s *Store) PresenceCounts(ctx context.Context, from, to string) (map[primitive.ObjectID]int, error) {
	sessions, err := s.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]int)
	for _, sess := range sessions {
		for _, e := range sess.Entries {
			if e.Status == models.AttendancePresent {
				out[e.UserID]++
			}
		}
	}
	return out, nil
}

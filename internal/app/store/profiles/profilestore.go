package profilestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parivartan/platform/internal/app/system/normalize"
	"github.com/parivartan/platform/internal/app/system/roles"
	"github.com/parivartan/platform/internal/app/system/totp"
	"github.com/parivartan/platform/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

// ErrDuplicateEmail is returned when a profile with the email already exists.
var ErrDuplicateEmail = errors.New("a profile with this email already exists")

// GetByID loads a profile by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a profile by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all profiles ordered by folded name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByRoles returns profiles holding any of the given roles, ordered by
// folded name. The attendance sheet uses this for the member roster.
func (s *Store) ListByRoles(ctx context.Context, wanted ...string) ([]models.User, error) {
	norm := make([]string, 0, len(wanted))
	for _, r := range wanted {
		norm = append(norm, roles.Normalize(r))
	}
	cur, err := s.c.Find(ctx, bson.M{"role": bson.M{"$in": norm}},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Provision describes the identity arriving from the OAuth callback.
type Provision struct {
	Email        string
	Name         string
	Avatar       string
	AuthReturnID string
	Verified     bool
}

// EnsureProfile returns the profile for the email, creating it on first
// login. New profiles start at the USER tier unless the email is on the
// bootstrap super-admin list. Name and avatar refresh from the identity
// provider on every login; role never changes here.
func (s *Store) EnsureProfile(ctx context.Context, p Provision, superAdmins []string) (*models.User, error) {
	email := normalize.Email(p.Email)
	name := normalize.Name(p.Name)

	existing, err := s.GetByEmail(ctx, email)
	if err == nil {
		set := bson.M{
			"name":       name,
			"name_ci":    text.Fold(name),
			"avatar":     p.Avatar,
			"verified":   p.Verified,
			"updated_at": time.Now().UTC(),
		}
		if p.AuthReturnID != "" {
			set["auth_return_id"] = p.AuthReturnID
		}
		if _, err := s.c.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set}); err != nil {
			return nil, err
		}
		return s.GetByID(ctx, existing.ID)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	role := roles.User
	for _, sa := range superAdmins {
		if normalize.Email(sa) == email {
			role = roles.SuperAdmin
			break
		}
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		Role:         role,
		Avatar:       p.Avatar,
		Verified:     p.Verified,
		AuthReturnID: p.AuthReturnID,
		TwoFactor:    totp.Disabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost a concurrent first-login race; the other insert won.
			return s.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate holds the self-service editable fields.
type ProfileUpdate struct {
	Name     string
	Bio      string
	Location string
	Avatar   string
	Social   *models.SocialLinks
}

// UpdateProfile applies a self-service edit to the given profile.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	name := normalize.Name(upd.Name)
	set := bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"bio":        upd.Bio,
		"location":   upd.Location,
		"updated_at": time.Now().UTC(),
	}
	if upd.Avatar != "" {
		set["avatar"] = upd.Avatar
	}
	if upd.Social != nil {
		set["social"] = upd.Social
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// UpdateRole sets the profile's role. Policy checks happen in the handler;
// the store just persists the canonical form.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       roles.Normalize(role),
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

// SetTwoFactor writes the second-factor state and secret together so the
// pair can never disagree. Disabling clears the secret.
func (s *Store) SetTwoFactor(ctx context.Context, id primitive.ObjectID, state totp.State, secret string) error {
	update := bson.M{"$set": bson.M{
		"two_factor": state,
		"updated_at": time.Now().UTC(),
	}}
	if state == totp.Disabled {
		update["$unset"] = bson.M{"two_factor_secret": ""}
	} else {
		update["$set"].(bson.M)["two_factor_secret"] = secret
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdateNotificationPreferences stores the per-category opt-in flags.
func (s *Store) UpdateNotificationPreferences(ctx context.Context, id primitive.ObjectID, prefs models.NotificationPreferences) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"notification_preferences": prefs,
		"updated_at":               time.Now().UTC(),
	}})
	return err
}

// AwardBadge appends a monthly attendance badge if the profile does not
// already hold one for that month.
func (s *Store) AwardBadge(ctx context.Context, id primitive.ObjectID, badge models.Badge) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "badges.month": bson.M{"$ne": badge.Month}},
		bson.M{"$push": bson.M{"badges": badge}})
	return err
}

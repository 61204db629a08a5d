// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parivartan/platform/internal/app/system/totp"
)

// SocialLinks holds optional links a user can attach to their profile.
type SocialLinks struct {
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub    string `bson:"github,omitempty" json:"github,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// NotificationPreferences are per-category opt-in flags.
type NotificationPreferences struct {
	Likes    bool `bson:"likes" json:"likes"`
	Comments bool `bson:"comments" json:"comments"`
	Mentions bool `bson:"mentions" json:"mentions"`
	System   bool `bson:"system" json:"system"`
}

// DefaultNotificationPreferences returns the opt-in defaults applied when a
// profile has no stored preferences.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{Likes: true, Comments: true, Mentions: true, System: true}
}

// Badge is a monthly attendance award shown on the profile and leaderboard.
type Badge struct {
	Type  string `bson:"type" json:"type"`   // gold | silver | bronze
	Month string `bson:"month" json:"month"` // YYYY-MM
	Label string `bson:"label" json:"label"`
}

// User represents a community member profile.
//
// Profiles are created on first authentication and never hard-deleted.
// Role is one of the four ordered tiers defined in the roles package.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email    string             `bson:"email" json:"email"`
	Role     string             `bson:"role" json:"role"` // SUPER_ADMIN | ADMIN | MEMBER | USER
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Verified bool               `bson:"verified" json:"verified"`

	// Google account linkage (set on first OAuth login).
	AuthReturnID string `bson:"auth_return_id,omitempty" json:"-"`

	// Profile additions
	Bio      string       `bson:"bio,omitempty" json:"bio,omitempty"`
	Location string       `bson:"location,omitempty" json:"location,omitempty"`
	Social   *SocialLinks `bson:"social,omitempty" json:"social,omitempty"`

	// Security. TwoFactor moves disabled -> pending (secret issued, not
	// yet confirmed) -> enabled; only enabled gates sign-in.
	TwoFactor       totp.State `bson:"two_factor,omitempty" json:"two_factor"`
	TwoFactorSecret string     `bson:"two_factor_secret,omitempty" json:"-"`

	NotificationPreferences *NotificationPreferences `bson:"notification_preferences,omitempty" json:"notification_preferences,omitempty"`
	Badges                  []Badge                  `bson:"badges,omitempty" json:"badges,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

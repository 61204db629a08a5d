// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types.
const (
	PostTypeAchievement  = "achievement"
	PostTypeAnnouncement = "announcement"
	PostTypeGeneral      = "general"
)

// Post is a feed entry.
//
// Image holds either a bare URL/data-URI for single-image posts or a
// JSON-encoded string array for multi-image posts. The posts store owns
// the encode/decode of that column; handlers only see Images.
type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type       string             `bson:"type" json:"type"`
	Content    string             `bson:"content" json:"content"`
	Image      string             `bson:"image,omitempty" json:"-"`
	LikedBy    []primitive.ObjectID `bson:"liked_by,omitempty" json:"-"`
	LikesCount int                `bson:"likes_count" json:"likes"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`

	// Denormalized for display; populated on reads, never stored.
	UserName   string    `bson:"-" json:"user_name"`
	UserAvatar string    `bson:"-" json:"user_avatar"`
	Images     []string  `bson:"-" json:"images"`
	Comments   []Comment `bson:"-" json:"comments"`
}

// Comment belongs to a post.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	UserName string `bson:"-" json:"user_name"`
}

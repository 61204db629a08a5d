// internal/domain/models/chat.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one message within a direct or group conversation.
// The ID is a UUID assigned by the store on insert.
type ChatMessage struct {
	ID        string             `bson:"_id" json:"id"`
	ChatID    string             `bson:"chat_id" json:"chat_id"`
	SenderID  primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Text      string             `bson:"text" json:"text"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	IsSystem  bool               `bson:"is_system,omitempty" json:"is_system,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	SenderName string `bson:"-" json:"sender_name,omitempty"`
}

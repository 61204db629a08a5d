// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task is a community to-do assigned to a member.
type Task struct {
	ID          string             `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	AssignedTo  primitive.ObjectID `bson:"assigned_to" json:"assigned_to"`
	Status      string             `bson:"status" json:"status"`
	DueDate     string             `bson:"due_date" json:"due_date"` // YYYY-MM-DD
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`

	AssignedToName string `bson:"-" json:"assigned_to_name,omitempty"`
}

// internal/domain/models/attendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance entry statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// AttendanceEntry is one member's mark within a session.
type AttendanceEntry struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserName string             `bson:"user_name" json:"user_name"`
	Status   string             `bson:"status" json:"status"`
}

// AttendanceSession records attendance for one calendar date.
//
// The date string (YYYY-MM-DD) is the primary key: at most one session per
// day. Submitted locks the session; further edits then require the top
// role tier (see attendancepolicy).
type AttendanceSession struct {
	Date        string             `bson:"_id" json:"date"`
	VillageName string             `bson:"village_name,omitempty" json:"village_name,omitempty"`
	Entries     []AttendanceEntry  `bson:"entries" json:"entries"`
	MarkedBy    primitive.ObjectID `bson:"marked_by,omitempty" json:"marked_by,omitempty"`
	Submitted   bool               `bson:"submitted" json:"submitted"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

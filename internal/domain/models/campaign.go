// internal/domain/models/campaign.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationCampaign is a fundraising drive with a UPI collection handle.
type DonationCampaign struct {
	ID           string             `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	TargetAmount float64            `bson:"target_amount" json:"target_amount"`
	RaisedAmount float64            `bson:"raised_amount" json:"raised_amount"`
	UPIID        string             `bson:"upi_id" json:"upi_id"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedBy    primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

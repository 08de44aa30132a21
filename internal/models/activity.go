package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityStatus is the verification state of a logged activity.
// Only approved activities count toward any aggregate.
type ActivityStatus string

const (
	ActivityPending  ActivityStatus = "pending"
	ActivityApproved ActivityStatus = "approved"
	ActivityDenied   ActivityStatus = "denied"
)

// Activity records one unit of user effort inside a category.
// XPEarned is a snapshot computed at creation time from the category
// multiplier and is never recomputed, even if the multiplier changes later.
type Activity struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID  `bson:"user_id" json:"user_id"`
	CategoryID    primitive.ObjectID  `bson:"category_id" json:"category_id"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	Date          time.Time           `bson:"date" json:"date"`
	DurationHours float64             `bson:"duration_hours" json:"duration_hours"`
	XPEarned      int                 `bson:"xp_earned" json:"xp_earned"`
	PhotoURL      string              `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	ProofLink     string              `bson:"proof_link,omitempty" json:"proof_link,omitempty"`
	Status        ActivityStatus      `bson:"status" json:"status"`
	VerifiedBy    *primitive.ObjectID `bson:"verified_by,omitempty" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time          `bson:"verified_at,omitempty" json:"verified_at,omitempty"`
	IsPosted      bool                `bson:"is_posted" json:"is_posted"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
}

// FeedActivity is an activity enriched with kudos data for the public feed.
type FeedActivity struct {
	Activity   `bson:",inline"`
	KudosCount int  `bson:"kudos_count" json:"kudos_count"`
	HasKudoed  bool `bson:"has_kudoed" json:"user_has_kudoed"`
}

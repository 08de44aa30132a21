package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgeCriteria is the threshold set a user must reach within the badge's
// category. Zero-valued fields are not part of the criteria.
type BadgeCriteria struct {
	ActivitiesCount int     `bson:"activities_count,omitempty" json:"activities_count,omitempty"`
	XPAmount        int     `bson:"xp_amount,omitempty" json:"xp_amount,omitempty"`
	HoursAmount     float64 `bson:"hours_amount,omitempty" json:"hours_amount,omitempty"`
}

// Badge is an achievement definition. CategoryID is optional; a badge
// without a category is a general one awarded manually by admins.
type Badge struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CategoryID  *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string              `bson:"icon" json:"icon"`
	Tier        string              `bson:"tier" json:"tier"` // "bronze", "silver", "gold", "platinum"
	Criteria    BadgeCriteria       `bson:"criteria" json:"criteria"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
}

// UserBadge is the award row linking a user to an earned badge.
// At most one row exists per (user, badge) pair.
type UserBadge struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	BadgeID  primitive.ObjectID `bson:"badge_id" json:"badge_id"`
	EarnedAt time.Time          `bson:"earned_at" json:"earned_at"`
}

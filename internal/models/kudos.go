package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kudos is one user's reaction to a posted activity. One row per
// (activity, user) pair; giving kudos twice removes it.
type Kudos struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActivityID primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

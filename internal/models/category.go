package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a skill domain with its own XP multiplier. Categories are
// created by administrators and are read-only reference data everywhere else.
type Category struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Slug         string             `bson:"slug" json:"slug"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon         string             `bson:"icon" json:"icon"`
	Color        string             `bson:"color" json:"color"`
	XPMultiplier float64            `bson:"xp_multiplier" json:"xp_multiplier"` // e.g. 1.5 - 3.0
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// SubSkill is a named focus area inside a category, listed on the
// category detail screen.
type SubSkill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"category_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string             `bson:"icon" json:"icon"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

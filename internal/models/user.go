package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user profile in SkillForge. TotalXP is a materialized
// running total over approved activities; it is only ever written together
// with Level inside the same database transaction.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	FullName       string             `bson:"full_name" json:"full_name"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"` // "user" or "admin"
	School         string             `bson:"school,omitempty" json:"school,omitempty"`
	GraduationYear int                `bson:"graduation_year,omitempty" json:"graduation_year,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL      string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsPublic       bool               `bson:"is_public" json:"is_public"`
	TotalXP        int                `bson:"total_xp" json:"total_xp"`
	Level          int                `bson:"level" json:"level"`
	Streak         int                `bson:"streak" json:"streak"`
	LastLoggedAt   time.Time          `bson:"last_logged_at,omitempty" json:"-"`
	VerifyToken    string             `bson:"verify_token,omitempty" json:"-"`
	IsVerified     bool               `bson:"is_verified" json:"is_verified"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the subset of a profile safe to expose to other users.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	FullName  string             `json:"full_name"`
	AvatarURL string             `json:"avatar_url,omitempty"`
	Level     int                `json:"level"`
	TotalXP   int                `json:"total_xp"`
}

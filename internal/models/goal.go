package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalPeriod selects how a goal's end date is derived from its start date.
type GoalPeriod string

const (
	PeriodSemester GoalPeriod = "semester" // start + 4 calendar months
	PeriodYear     GoalPeriod = "year"     // start + 12 calendar months
	PeriodCustom   GoalPeriod = "custom"   // explicit end date
)

// Goal is a user-declared hours target within a category and time window.
// TargetXP is frozen at creation time from the category's multiplier.
// IsCompleted is one-way: once true it is never reset.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"category_id"`
	TargetHours float64            `bson:"target_hours" json:"target_hours"`
	TargetXP    int                `bson:"target_xp" json:"target_xp"`
	Period      GoalPeriod         `bson:"period" json:"period"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     time.Time          `bson:"end_date" json:"end_date"`
	IsCompleted bool               `bson:"is_completed" json:"is_completed"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// EvaluatedGoal is a goal with its live progress attached. CompletionEvent
// is true exactly once: on the evaluation that first crosses 100%.
type EvaluatedGoal struct {
	Goal               `bson:",inline"`
	CurrentHours       float64 `json:"current_hours"`
	CurrentXP          int     `json:"current_xp"`
	ProgressPercentage float64 `json:"progress_percentage"`
	CompletionEvent    bool    `json:"-"`
}

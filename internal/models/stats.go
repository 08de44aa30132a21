package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CategoryStats aggregates a user's approved activities in one category.
// ProgressPercentage is clamped to [0, 100].
type CategoryStats struct {
	CategoryID         primitive.ObjectID `json:"category_id"`
	Category           *Category          `json:"category,omitempty"`
	TotalHours         float64            `json:"total_hours"`
	TotalXP            int                `json:"total_xp"`
	ActivitiesCount    int                `json:"activities_count"`
	ProgressPercentage float64            `json:"progress_percentage"`
}

// LeaderboardEntry is a user's rank within one category, computed on demand
// and never persisted. Ranks are contiguous integers starting at 1.
type LeaderboardEntry struct {
	UserID          primitive.ObjectID `json:"user_id"`
	Profile         *PublicUser        `json:"profile,omitempty"`
	TotalXP         int                `json:"total_xp"`
	ActivitiesCount int                `json:"activities_count"`
	Rank            int                `json:"rank"`
}

// ReportCard is the full per-category breakdown for one user plus their
// most recent approved activities.
type ReportCard struct {
	Stats            []CategoryStats `json:"stats"`
	RecentActivities []Activity      `json:"recent_activities"`
	TotalXP          int             `json:"total_xp"`
	TotalHours       float64         `json:"total_hours"`
}

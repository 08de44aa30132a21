package engine

import (
	"github.com/skillforge-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTargetHours is the per-category progress target used when the user
// has not set an explicit goal.
const DefaultTargetHours = 50

// ComputeCategoryStats sums hours, XP and activity count over the supplied
// activities and derives a progress percentage against targetHours, clamped
// to [0, 100]. The activities are expected to already be filtered to one
// user, one category and status approved. An empty slice yields zero stats.
func ComputeCategoryStats(activities []models.Activity, categoryID primitive.ObjectID, targetHours float64) (models.CategoryStats, error) {
	if targetHours <= 0 {
		return models.CategoryStats{}, ErrInvalidTargetHours
	}

	stats := models.CategoryStats{CategoryID: categoryID}
	for _, a := range activities {
		stats.TotalHours += a.DurationHours
		stats.TotalXP += a.XPEarned
		stats.ActivitiesCount++
	}
	stats.ProgressPercentage = clampPercentage(stats.TotalHours, targetHours)

	return stats, nil
}

// clampPercentage returns 100*current/target bounded to [0, 100].
func clampPercentage(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Package engine holds the XP, leveling and goal-progress computations.
// Everything in this package is pure: no storage, no network, no clock
// other than what the caller passes in.
package engine

import (
	"errors"
	"math"

	"github.com/skillforge-app/backend/internal/models"
)

// BaseXPPerHour is the XP earned for one hour of activity before the
// category multiplier is applied.
const BaseXPPerHour = 50

// XPPerLevel is the size of one level band.
const XPPerLevel = 1000

var (
	ErrInvalidDuration    = errors.New("duration must be a positive number of hours")
	ErrInvalidMultiplier  = errors.New("category multiplier must be positive")
	ErrInvalidTargetHours = errors.New("target hours must be positive")
)

// ComputeXPForActivity returns round(50 * hours * multiplier). The result is
// stored on the activity at creation time and is the system of record for
// historical XP, even if the category's multiplier is edited later.
func ComputeXPForActivity(durationHours float64, category models.Category) (int, error) {
	if durationHours <= 0 || math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		return 0, ErrInvalidDuration
	}
	if category.XPMultiplier <= 0 || math.IsNaN(category.XPMultiplier) || math.IsInf(category.XPMultiplier, 0) {
		return 0, ErrInvalidMultiplier
	}
	return int(math.Round(BaseXPPerHour * durationHours * category.XPMultiplier)), nil
}

// ComputeLevel maps a cumulative XP total to a level in fixed 1000-point
// bands. Level 1 starts at 0 XP; negative totals clamp to level 1.
func ComputeLevel(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/XPPerLevel + 1
}

package engine

import (
	"errors"
	"time"

	"github.com/skillforge-app/backend/internal/models"
)

var ErrInvalidGoalWindow = errors.New("goal end date must be after its start date")

// GoalEndDate derives a goal's end date from its period. Semester goals run
// four calendar months, year goals twelve; custom goals use the explicit end
// date, which must fall after the start.
func GoalEndDate(period models.GoalPeriod, start time.Time, explicitEnd time.Time) (time.Time, error) {
	switch period {
	case models.PeriodSemester:
		return start.AddDate(0, 4, 0), nil
	case models.PeriodYear:
		return start.AddDate(1, 0, 0), nil
	case models.PeriodCustom:
		if !explicitEnd.After(start) {
			return time.Time{}, ErrInvalidGoalWindow
		}
		return explicitEnd, nil
	default:
		return time.Time{}, errors.New("unknown goal period: " + string(period))
	}
}

// InWindow reports whether date falls within [start, end], inclusive on
// both ends.
func InWindow(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

// EvaluateGoal computes a goal's live progress from the activities inside
// its window. The activities are expected to already be filtered to the
// goal's user, category, status approved and date range.
//
// CompletionEvent is set on the evaluation that first reaches 100% for a
// goal not yet marked completed. Once a goal is completed the event is
// never re-emitted, so repeated evaluation is idempotent.
func EvaluateGoal(goal models.Goal, activitiesInWindow []models.Activity) models.EvaluatedGoal {
	evaluated := models.EvaluatedGoal{Goal: goal}
	for _, a := range activitiesInWindow {
		evaluated.CurrentHours += a.DurationHours
		evaluated.CurrentXP += a.XPEarned
	}
	evaluated.ProgressPercentage = clampPercentage(evaluated.CurrentHours, goal.TargetHours)
	evaluated.CompletionEvent = evaluated.ProgressPercentage >= 100 && !goal.IsCompleted

	return evaluated
}

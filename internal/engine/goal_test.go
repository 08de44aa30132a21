package engine

import (
	"testing"
	"time"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGoalEndDate(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	end, err := GoalEndDate(models.PeriodSemester, start, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	end, err = GoalEndDate(models.PeriodYear, start, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), end)

	explicit := start.AddDate(0, 2, 15)
	end, err = GoalEndDate(models.PeriodCustom, start, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, end)
}

func TestGoalEndDateInvalid(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	_, err := GoalEndDate(models.PeriodCustom, start, start)
	assert.ErrorIs(t, err, ErrInvalidGoalWindow)

	_, err = GoalEndDate(models.PeriodCustom, start, start.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidGoalWindow)

	_, err = GoalEndDate(models.GoalPeriod("decade"), start, time.Time{})
	assert.Error(t, err)
}

func TestInWindow(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	assert.True(t, InWindow(start, start, end), "start date is inclusive")
	assert.True(t, InWindow(end, start, end), "end date is inclusive")
	assert.True(t, InWindow(start.AddDate(0, 1, 0), start, end))
	assert.False(t, InWindow(start.AddDate(0, 0, -1), start, end))
	assert.False(t, InWindow(end.AddDate(0, 0, 1), start, end))
}

func TestEvaluateGoalProgress(t *testing.T) {
	userID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()
	goal := models.Goal{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		CategoryID:  categoryID,
		TargetHours: 10,
		TargetXP:    1000,
	}

	evaluated := EvaluateGoal(goal, []models.Activity{
		activity(userID, categoryID, 3, 300),
		activity(userID, categoryID, 2, 200),
	})

	assert.InDelta(t, 5.0, evaluated.CurrentHours, 1e-9)
	assert.Equal(t, 500, evaluated.CurrentXP)
	assert.InDelta(t, 50.0, evaluated.ProgressPercentage, 1e-9)
	assert.False(t, evaluated.CompletionEvent)
}

func TestEvaluateGoalCompletionFiresOnce(t *testing.T) {
	userID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()
	goal := models.Goal{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		CategoryID:  categoryID,
		TargetHours: 10,
		TargetXP:    1000,
	}

	window := []models.Activity{activity(userID, categoryID, 10, 1000)}

	first := EvaluateGoal(goal, window)
	assert.Equal(t, 100.0, first.ProgressPercentage)
	assert.True(t, first.CompletionEvent, "crossing 100%% must emit the event")

	// Caller persists the transition; a completed goal never re-emits.
	goal.IsCompleted = true
	now := time.Now()
	goal.CompletedAt = &now

	second := EvaluateGoal(goal, window)
	assert.Equal(t, first.ProgressPercentage, second.ProgressPercentage)
	assert.False(t, second.CompletionEvent)
}

func TestEvaluateGoalOverTargetClamped(t *testing.T) {
	userID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()
	goal := models.Goal{
		UserID:      userID,
		CategoryID:  categoryID,
		TargetHours: 5,
	}

	evaluated := EvaluateGoal(goal, []models.Activity{
		activity(userID, categoryID, 50, 5000),
	})
	assert.Equal(t, 100.0, evaluated.ProgressPercentage)
}

func TestEvaluateGoalEmptyWindow(t *testing.T) {
	goal := models.Goal{TargetHours: 10}
	evaluated := EvaluateGoal(goal, nil)

	assert.Zero(t, evaluated.CurrentHours)
	assert.Zero(t, evaluated.CurrentXP)
	assert.Zero(t, evaluated.ProgressPercentage)
	assert.False(t, evaluated.CompletionEvent)
}

package engine

import (
	"testing"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func activity(userID, categoryID primitive.ObjectID, hours float64, xp int) models.Activity {
	return models.Activity{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		CategoryID:    categoryID,
		DurationHours: hours,
		XPEarned:      xp,
		Status:        models.ActivityApproved,
	}
}

func TestComputeCategoryStats(t *testing.T) {
	userID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()

	activities := []models.Activity{
		activity(userID, categoryID, 2, 250),
		activity(userID, categoryID, 3.5, 438),
		activity(userID, categoryID, 1, 125),
	}

	stats, err := ComputeCategoryStats(activities, categoryID, 50)
	require.NoError(t, err)

	assert.Equal(t, categoryID, stats.CategoryID)
	assert.InDelta(t, 6.5, stats.TotalHours, 1e-9)
	assert.Equal(t, 813, stats.TotalXP)
	assert.Equal(t, 3, stats.ActivitiesCount)
	assert.InDelta(t, 13.0, stats.ProgressPercentage, 1e-9)
}

func TestComputeCategoryStatsEmpty(t *testing.T) {
	stats, err := ComputeCategoryStats(nil, primitive.NewObjectID(), DefaultTargetHours)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalHours)
	assert.Zero(t, stats.TotalXP)
	assert.Zero(t, stats.ActivitiesCount)
	assert.Zero(t, stats.ProgressPercentage)
}

func TestComputeCategoryStatsProgressClamped(t *testing.T) {
	userID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()

	// 80 hours against a 10 hour target: progress must cap at 100.
	activities := []models.Activity{
		activity(userID, categoryID, 80, 4000),
	}

	stats, err := ComputeCategoryStats(activities, categoryID, 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stats.ProgressPercentage)
}

func TestComputeCategoryStatsInvalidTarget(t *testing.T) {
	_, err := ComputeCategoryStats(nil, primitive.NewObjectID(), 0)
	assert.ErrorIs(t, err, ErrInvalidTargetHours)

	_, err = ComputeCategoryStats(nil, primitive.NewObjectID(), -5)
	assert.ErrorIs(t, err, ErrInvalidTargetHours)
}

func TestComputeCategoryStatsDoesNotMutateInput(t *testing.T) {
	userID := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()

	activities := []models.Activity{activity(userID, categoryID, 2, 250)}
	original := activities[0]

	_, err := ComputeCategoryStats(activities, categoryID, 50)
	require.NoError(t, err)
	assert.Equal(t, original, activities[0])
}

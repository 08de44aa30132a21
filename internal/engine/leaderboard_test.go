package engine

import (
	"testing"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeLeaderboardRanking(t *testing.T) {
	categoryID := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	cara := primitive.NewObjectID()

	activities := []models.Activity{
		activity(alice, categoryID, 2, 250),
		activity(bob, categoryID, 4, 500),
		activity(alice, categoryID, 1, 100),
		activity(cara, categoryID, 6, 700),
		activity(bob, categoryID, 1, 120),
	}

	entries := ComputeLeaderboard(activities, 10)
	require.Len(t, entries, 3)

	// cara 700, bob 620, alice 350
	assert.Equal(t, cara, entries[0].UserID)
	assert.Equal(t, 700, entries[0].TotalXP)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, bob, entries[1].UserID)
	assert.Equal(t, 620, entries[1].TotalXP)
	assert.Equal(t, 2, entries[1].ActivitiesCount)
	assert.Equal(t, 2, entries[1].Rank)

	assert.Equal(t, alice, entries[2].UserID)
	assert.Equal(t, 350, entries[2].TotalXP)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestComputeLeaderboardTieBreak(t *testing.T) {
	categoryID := primitive.NewObjectID()
	one := primitive.NewObjectID()
	two := primitive.NewObjectID()

	// Equal XP; the user with more activities ranks first.
	activities := []models.Activity{
		activity(one, categoryID, 4, 400),
		activity(two, categoryID, 1, 200),
		activity(two, categoryID, 1, 200),
	}

	entries := ComputeLeaderboard(activities, 10)
	require.Len(t, entries, 2)
	assert.Equal(t, two, entries[0].UserID)
	assert.Equal(t, one, entries[1].UserID)
}

func TestComputeLeaderboardTieBreakStableByUserID(t *testing.T) {
	categoryID := primitive.NewObjectID()
	one := primitive.NewObjectID()
	two := primitive.NewObjectID()

	// Identical XP and counts: order falls back to user id, so the result
	// is independent of input order.
	forward := ComputeLeaderboard([]models.Activity{
		activity(one, categoryID, 2, 300),
		activity(two, categoryID, 2, 300),
	}, 10)
	reversed := ComputeLeaderboard([]models.Activity{
		activity(two, categoryID, 2, 300),
		activity(one, categoryID, 2, 300),
	}, 10)

	require.Len(t, forward, 2)
	assert.Equal(t, forward[0].UserID, reversed[0].UserID)
	assert.Equal(t, forward[1].UserID, reversed[1].UserID)
}

func TestComputeLeaderboardLimit(t *testing.T) {
	categoryID := primitive.NewObjectID()

	var activities []models.Activity
	for i := 0; i < 25; i++ {
		activities = append(activities, activity(primitive.NewObjectID(), categoryID, 1, 50+i))
	}

	entries := ComputeLeaderboard(activities, 10)
	require.Len(t, entries, 10)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
	}

	// Non-positive limit falls back to the default.
	entries = ComputeLeaderboard(activities, 0)
	assert.Len(t, entries, DefaultLeaderboardLimit)
}

func TestComputeLeaderboardEmpty(t *testing.T) {
	entries := ComputeLeaderboard(nil, 10)
	assert.Empty(t, entries)
}

package engine

import (
	"sort"

	"github.com/skillforge-app/backend/internal/models"
)

// DefaultLeaderboardLimit caps the leaderboard length when the caller does
// not ask for a specific size.
const DefaultLeaderboardLimit = 10

// ComputeLeaderboard groups the supplied activities by user, sums XP and
// counts activities per user, and returns the users ranked by XP descending.
// Ties are broken deterministically: higher activity count first, then
// lexicographic user id. Ranks are contiguous and 1-based; the result is
// truncated to limit entries. The activities are expected to already be
// filtered to one category and status approved.
func ComputeLeaderboard(activities []models.Activity, limit int) []models.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	totals := make(map[string]*models.LeaderboardEntry)
	for _, a := range activities {
		key := a.UserID.Hex()
		entry, ok := totals[key]
		if !ok {
			entry = &models.LeaderboardEntry{UserID: a.UserID}
			totals[key] = entry
		}
		entry.TotalXP += a.XPEarned
		entry.ActivitiesCount++
	}

	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for _, entry := range totals {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalXP != entries[j].TotalXP {
			return entries[i].TotalXP > entries[j].TotalXP
		}
		if entries[i].ActivitiesCount != entries[j].ActivitiesCount {
			return entries[i].ActivitiesCount > entries[j].ActivitiesCount
		}
		return entries[i].UserID.Hex() < entries[j].UserID.Hex()
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

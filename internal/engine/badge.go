package engine

import "github.com/skillforge-app/backend/internal/models"

// BadgeCriteriaMet reports whether a user's category stats satisfy every
// threshold set on the badge. A badge with no thresholds at all is never
// awarded automatically; those exist for manual admin awards only.
func BadgeCriteriaMet(criteria models.BadgeCriteria, stats models.CategoryStats) bool {
	if criteria.ActivitiesCount == 0 && criteria.XPAmount == 0 && criteria.HoursAmount == 0 {
		return false
	}
	if criteria.ActivitiesCount > 0 && stats.ActivitiesCount < criteria.ActivitiesCount {
		return false
	}
	if criteria.XPAmount > 0 && stats.TotalXP < criteria.XPAmount {
		return false
	}
	if criteria.HoursAmount > 0 && stats.TotalHours < criteria.HoursAmount {
		return false
	}
	return true
}

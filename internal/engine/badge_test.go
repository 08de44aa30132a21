package engine

import (
	"testing"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBadgeCriteriaMet(t *testing.T) {
	stats := models.CategoryStats{
		TotalHours:      12.5,
		TotalXP:         1500,
		ActivitiesCount: 8,
	}

	tests := []struct {
		name     string
		criteria models.BadgeCriteria
		want     bool
	}{
		{name: "empty criteria never auto-awarded", criteria: models.BadgeCriteria{}, want: false},
		{name: "activity count met", criteria: models.BadgeCriteria{ActivitiesCount: 5}, want: true},
		{name: "activity count not met", criteria: models.BadgeCriteria{ActivitiesCount: 10}, want: false},
		{name: "xp met", criteria: models.BadgeCriteria{XPAmount: 1000}, want: true},
		{name: "hours met exactly", criteria: models.BadgeCriteria{HoursAmount: 12.5}, want: true},
		{name: "all thresholds met", criteria: models.BadgeCriteria{ActivitiesCount: 5, XPAmount: 1500, HoursAmount: 10}, want: true},
		{name: "one threshold short", criteria: models.BadgeCriteria{ActivitiesCount: 5, XPAmount: 2000}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BadgeCriteriaMet(tt.criteria, stats))
		})
	}
}

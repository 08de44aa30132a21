package engine

import (
	"math"
	"testing"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeXPForActivity(t *testing.T) {
	tests := []struct {
		name       string
		hours      float64
		multiplier float64
		want       int
		wantErr    error
	}{
		{name: "two hour STEM session", hours: 2, multiplier: 2.5, want: 250},
		{name: "fractional hours round", hours: 2.5, multiplier: 3, want: 375},
		{name: "multiplier of one", hours: 1, multiplier: 1, want: 50},
		{name: "rounds half up", hours: 0.5, multiplier: 1.5, want: 38},
		{name: "zero hours rejected", hours: 0, multiplier: 2, wantErr: ErrInvalidDuration},
		{name: "negative hours rejected", hours: -1, multiplier: 2, wantErr: ErrInvalidDuration},
		{name: "NaN hours rejected", hours: math.NaN(), multiplier: 2, wantErr: ErrInvalidDuration},
		{name: "infinite hours rejected", hours: math.Inf(1), multiplier: 2, wantErr: ErrInvalidDuration},
		{name: "zero multiplier rejected", hours: 1, multiplier: 0, wantErr: ErrInvalidMultiplier},
		{name: "negative multiplier rejected", hours: 1, multiplier: -2, wantErr: ErrInvalidMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeXPForActivity(tt.hours, models.Category{XPMultiplier: tt.multiplier})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeLevel(t *testing.T) {
	tests := []struct {
		totalXP int
		want    int
	}{
		{totalXP: 0, want: 1},
		{totalXP: 999, want: 1},
		{totalXP: 1000, want: 2},
		{totalXP: 1150, want: 2},
		{totalXP: 2500, want: 3},
		{totalXP: 10000, want: 11},
		{totalXP: -50, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeLevel(tt.totalXP), "level for %d XP", tt.totalXP)
	}
}

func TestComputeLevelMonotonic(t *testing.T) {
	prev := ComputeLevel(0)
	for xp := 0; xp <= 5000; xp += 100 {
		level := ComputeLevel(xp)
		assert.GreaterOrEqual(t, level, prev)
		prev = level
	}
}

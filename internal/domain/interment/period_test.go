package interment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinimumPeriodElapsed(t *testing.T) {
	burialDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		today  time.Time
		months int
		want   bool
	}{
		{"five months short of 36", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), 36, false},
		{"over three years elapsed", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), 36, true},
		{"exactly 36 thirty-day months", burialDate.AddDate(0, 0, 36*30), 36, true},
		{"one day short", burialDate.AddDate(0, 0, 36*30-1), 36, false},
		{"zero period always elapsed", burialDate, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinimumPeriodElapsed(burialDate, tt.today, tt.months))
		})
	}
}

func TestQualifyingCutoff(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	cutoff := QualifyingCutoff(today, 36)
	assert.Equal(t, today.AddDate(0, 0, -36*30), cutoff)
}

func TestEarliestEligibleDate(t *testing.T) {
	burialDate := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	// calendar-month addition, not 30-day blocks
	assert.Equal(t, burialDate.AddDate(0, 36, 0), EarliestEligibleDate(burialDate, 36))
}

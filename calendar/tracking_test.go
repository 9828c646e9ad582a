package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"ninety minutes", "10:00", "11:30", 90},
		{"across the afternoon", "13:15", "17:00", 225},
		{"zero span", "09:00", "09:00", 0},
		{"end before start clamps to zero", "11:00", "10:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinutesBetween("2025-01-15", tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutesBetween_InvalidInput(t *testing.T) {
	_, err := MinutesBetween("2025-01-15", "25:00", "11:00")
	assert.Error(t, err)

	_, err = MinutesBetween("2025-01-15", "10:00", "soon")
	assert.Error(t, err)

	_, err = MinutesBetween("not-a-date", "10:00", "11:00")
	assert.Error(t, err)
}

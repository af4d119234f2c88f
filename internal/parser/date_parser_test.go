package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseReportDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Empty defaults to today",
			input:    "",
			expected: "2024-03-15",
		},
		{
			name:     "Today",
			input:    "today",
			expected: "2024-03-15",
		},
		{
			name:     "Yesterday",
			input:    "yesterday",
			expected: "2024-03-14",
		},
		{
			name:     "Days ago",
			input:    "3 days ago",
			expected: "2024-03-12",
		},
		{
			name:     "One day ago",
			input:    "1 day ago",
			expected: "2024-03-14",
		},
		{
			name:     "Explicit date",
			input:    "2024-03-01",
			expected: "2024-03-01",
		},
		{
			name:    "Garbage",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "Too many days ago",
			input:   "400 days ago",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReportDate(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:00:00")
	assert.NoError(t, err)
	assert.Equal(t, "09:00:00", got)

	got, err = ParseTimeOfDay("09:00")
	assert.NoError(t, err)
	assert.Equal(t, "09:00:00", got)

	_, err = ParseTimeOfDay("25:00:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("soon")
	assert.Error(t, err)
}

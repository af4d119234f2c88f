package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ciprianm/pontaj/internal/models"
)

func TestDaySummaryTotalsClosedSessions(t *testing.T) {
	mgr, _ := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))
	_, err := mgr.Close(7, "2024-03-01", "09:47:20", models.NamespaceRegular, "")
	assert.NoError(t, err)
	assert.NoError(t, mgr.Open(7, "2024-03-01", "11:00:00", models.NamespaceRegular))
	_, err = mgr.Close(7, "2024-03-01", "12:00:00", models.NamespaceRegular, "")
	assert.NoError(t, err)

	now := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	sum, err := mgr.DaySummary(7, "2024-03-01", models.NamespaceRegular, now)
	assert.NoError(t, err)
	assert.Equal(t, 105, sum.Total) // 45 + 60
	assert.Len(t, sum.Entries, 2)
}

func TestDaySummaryZeroLengthListedButNotBilled(t *testing.T) {
	mgr, _ := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))
	_, err := mgr.Close(7, "2024-03-01", "09:01:00", models.NamespaceRegular, "")
	assert.NoError(t, err)

	now := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	sum, err := mgr.DaySummary(7, "2024-03-01", models.NamespaceRegular, now)
	assert.NoError(t, err)
	assert.Zero(t, sum.Total)
	assert.Len(t, sum.Entries, 1)
	assert.Zero(t, sum.Entries[0].Minutes)
}

func TestDaySummaryOngoingCountsOnlyToday(t *testing.T) {
	mgr, _ := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))

	// Queried on the same day, the open session counts up to now.
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	sum, err := mgr.DaySummary(7, "2024-03-01", models.NamespaceRegular, now)
	assert.NoError(t, err)
	assert.Equal(t, 60, sum.Total)
	assert.True(t, sum.Entries[0].Ongoing)

	// Queried a day later, the stale open session contributes nothing.
	later := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	sum, err = mgr.DaySummary(7, "2024-03-01", models.NamespaceRegular, later)
	assert.NoError(t, err)
	assert.Zero(t, sum.Total)
}

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ciprianm/pontaj/internal/models"
)

func newTestWarnStore(t *testing.T) *WarnStore {
	t.Helper()
	conn, err := Open(":memory:")
	assert.NoError(t, err)
	return NewWarnStore(conn)
}

func TestWarnCountDefaultsToZero(t *testing.T) {
	warns := newTestWarnStore(t)

	count, err := warns.Count(42)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestWarnIncrementStopsAtLimit(t *testing.T) {
	warns := newTestWarnStore(t)

	for want := 1; want <= models.WarnLimit; want++ {
		count, err := warns.Increment(42)
		assert.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// A fourth warning is rejected and the stored count stays at the limit.
	count, err := warns.Increment(42)
	assert.ErrorIs(t, err, ErrWarnLimit)
	assert.Equal(t, models.WarnLimit, count)

	count, err = warns.Count(42)
	assert.NoError(t, err)
	assert.Equal(t, models.WarnLimit, count)
}

func TestWarnReset(t *testing.T) {
	warns := newTestWarnStore(t)

	_, err := warns.Increment(42)
	assert.NoError(t, err)
	assert.NoError(t, warns.Reset(42))

	count, err := warns.Count(42)
	assert.NoError(t, err)
	assert.Zero(t, count)

	// Counter is usable again after a reset.
	count, err = warns.Increment(42)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	// Resetting a member never warned is a no-op.
	assert.NoError(t, warns.Reset(99))
}

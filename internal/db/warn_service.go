package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ciprianm/pontaj/internal/models"
)

// ErrWarnLimit means the member already carries the maximum number of
// warnings; only a privileged reset can clear them.
var ErrWarnLimit = errors.New("warn limit reached")

// WarnStore persists per-member disciplinary counters.
type WarnStore struct {
	db *gorm.DB
}

// NewWarnStore wraps the given connection.
func NewWarnStore(db *gorm.DB) *WarnStore {
	return &WarnStore{db: db}
}

// Count returns the member's current warning count, zero if never warned.
func (s *WarnStore) Count(memberID int64) (int, error) {
	var row models.WarnCount
	err := s.db.First(&row, "member_id = ?", memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Count, nil
}

// Increment adds one warning and returns the new count. The cap check lives
// here: incrementing at the limit fails with ErrWarnLimit instead of
// relying on every caller to pre-check.
func (s *WarnStore) Increment(memberID int64) (int, error) {
	current, err := s.Count(memberID)
	if err != nil {
		return 0, err
	}
	if current >= models.WarnLimit {
		return current, fmt.Errorf("%w (%d/%d)", ErrWarnLimit, current, models.WarnLimit)
	}

	next := current + 1
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": next}),
	}).Create(&models.WarnCount{MemberID: memberID, Count: next}).Error
	if err != nil {
		return current, err
	}
	return next, nil
}

// Reset clears the member's warnings. Resetting an unknown member is a
// no-op, matching the lazy-create model.
func (s *WarnStore) Reset(memberID int64) error {
	return s.db.Model(&models.WarnCount{}).
		Where("member_id = ?", memberID).
		Update("count", 0).Error
}

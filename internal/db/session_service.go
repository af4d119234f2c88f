package db

import (
	"strings"

	"gorm.io/gorm"

	"github.com/ciprianm/pontaj/internal/models"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

// diskFullMsg is the SQLite error text that marks the one transient storage
// condition worth a reclaim-and-retry cycle.
const diskFullMsg = "database or disk is full"

// SessionStore persists attendance sessions. It implements timesheet.Store.
type SessionStore struct {
	db      *gorm.DB
	reclaim func() error
}

// NewSessionStore wraps the given connection.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{
		db:      db,
		reclaim: func() error { return Maintain(db) },
	}
}

var _ timesheet.Store = (*SessionStore)(nil)

// withReclaim runs op, and on a disk-full error reclaims space once and
// retries. Any second failure surfaces to the caller.
func (s *SessionStore) withReclaim(op func() error) error {
	err := op()
	if err == nil || !strings.Contains(err.Error(), diskFullMsg) {
		return err
	}
	if rerr := s.reclaim(); rerr != nil {
		return err
	}
	return op()
}

// InsertOpen records a new session with no end time.
func (s *SessionStore) InsertOpen(memberID int64, date, start string, ns models.Namespace) error {
	return s.withReclaim(func() error {
		return s.db.Create(&models.Session{
			MemberID:  memberID,
			Date:      date,
			StartTime: start,
			Namespace: ns,
		}).Error
	})
}

// CloseSession stamps an end time. A non-empty start targets that exact
// session; otherwise the open session for the day is closed (legacy path).
func (s *SessionStore) CloseSession(memberID int64, date, end string, ns models.Namespace, start string) (int64, error) {
	var rows int64
	err := s.withReclaim(func() error {
		tx := s.db.Model(&models.Session{}).
			Where("member_id = ? AND date = ? AND namespace = ?", memberID, date, ns)
		if start != "" {
			tx = tx.Where("start_time = ?", start)
		} else {
			tx = tx.Where("end_time IS NULL")
		}
		tx = tx.Update("end_time", end)
		rows = tx.RowsAffected
		return tx.Error
	})
	return rows, err
}

// Sessions returns the member's intervals for a date, ordered by start time.
func (s *SessionStore) Sessions(memberID int64, date string, ns models.Namespace) ([]timesheet.Interval, error) {
	var rows []models.Session
	err := s.db.
		Where("member_id = ? AND date = ? AND namespace = ?", memberID, date, ns).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	intervals := make([]timesheet.Interval, 0, len(rows))
	for _, r := range rows {
		intervals = append(intervals, timesheet.Interval{Start: r.StartTime, End: r.EndTime})
	}
	return intervals, nil
}

// OpenSessions scans the whole namespace for sessions missing an end time.
func (s *SessionStore) OpenSessions(ns models.Namespace) ([]timesheet.OpenSession, error) {
	var rows []models.Session
	err := s.db.
		Where("namespace = ? AND end_time IS NULL", ns).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	open := make([]timesheet.OpenSession, 0, len(rows))
	for _, r := range rows {
		open = append(open, timesheet.OpenSession{MemberID: r.MemberID, Date: r.Date, Start: r.StartTime})
	}
	return open, nil
}

// DeleteSession removes a session by its exact key.
func (s *SessionStore) DeleteSession(memberID int64, date, start string, ns models.Namespace) error {
	return s.withReclaim(func() error {
		return s.db.
			Where("member_id = ? AND date = ? AND start_time = ? AND namespace = ?", memberID, date, start, ns).
			Delete(&models.Session{}).Error
	})
}

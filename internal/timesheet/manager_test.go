package timesheet

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ciprianm/pontaj/internal/models"
)

// memStore is an in-memory Store for exercising the manager without a
// database.
type memStore struct {
	rows []memRow
}

type memRow struct {
	member int64
	date   string
	start  string
	end    *string
	ns     models.Namespace
}

func (s *memStore) InsertOpen(memberID int64, date, start string, ns models.Namespace) error {
	s.rows = append(s.rows, memRow{member: memberID, date: date, start: start, ns: ns})
	return nil
}

func (s *memStore) CloseSession(memberID int64, date, end string, ns models.Namespace, start string) (int64, error) {
	var n int64
	for i := range s.rows {
		r := &s.rows[i]
		if r.member != memberID || r.date != date || r.ns != ns {
			continue
		}
		if start != "" {
			if r.start != start {
				continue
			}
		} else if r.end != nil {
			continue
		}
		e := end
		r.end = &e
		n++
	}
	return n, nil
}

func (s *memStore) Sessions(memberID int64, date string, ns models.Namespace) ([]Interval, error) {
	var out []Interval
	for _, r := range s.rows {
		if r.member == memberID && r.date == date && r.ns == ns {
			out = append(out, Interval{Start: r.start, End: r.end})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (s *memStore) OpenSessions(ns models.Namespace) ([]OpenSession, error) {
	var out []OpenSession
	for _, r := range s.rows {
		if r.ns == ns && r.end == nil {
			out = append(out, OpenSession{MemberID: r.member, Date: r.date, Start: r.start})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (s *memStore) DeleteSession(memberID int64, date, start string, ns models.Namespace) error {
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.member == memberID && r.date == date && r.start == start && r.ns == ns {
			continue
		}
		kept = append(kept, r)
	}
	s.rows = kept
	return nil
}

func newTestManager() (*Manager, *memStore) {
	store := &memStore{}
	return NewManager(store, time.UTC), store
}

func TestOpenRejectsSecondOpenSession(t *testing.T) {
	mgr, store := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))

	err := mgr.Open(7, "2024-03-01", "10:00:00", models.NamespaceRegular)
	assert.ErrorIs(t, err, ErrAlreadyOpen)

	// The other namespace is independent.
	assert.NoError(t, mgr.Open(7, "2024-03-01", "10:00:00", models.NamespaceSAS))

	open, _ := store.OpenSessions(models.NamespaceRegular)
	assert.Len(t, open, 1)
}

func TestOpenAllowedAfterClose(t *testing.T) {
	mgr, store := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))
	_, err := mgr.Close(7, "2024-03-01", "09:47:20", models.NamespaceRegular, "")
	assert.NoError(t, err)
	assert.NoError(t, mgr.Open(7, "2024-03-01", "11:00:00", models.NamespaceRegular))

	// At most one open row at any point.
	open, _ := store.OpenSessions(models.NamespaceRegular)
	assert.Len(t, open, 1)
	assert.Equal(t, "11:00:00", open[0].Start)
}

func TestCloseLegacyFallback(t *testing.T) {
	mgr, _ := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))

	closed, err := mgr.Close(7, "2024-03-01", "09:47:20", models.NamespaceRegular, "")
	assert.NoError(t, err)
	assert.Equal(t, "09:00:00", closed.Start)
	assert.Equal(t, 45, closed.Minutes)
}

func TestCloseWithoutOpenSession(t *testing.T) {
	mgr, _ := newTestManager()

	_, err := mgr.Close(7, "2024-03-01", "10:00:00", models.NamespaceRegular, "")
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

func TestCloseLegacyRefusesMultipleOpen(t *testing.T) {
	mgr, store := newTestManager()

	// Violate the invariant behind the manager's back, as a storage bug or
	// concurrent administrative insert would.
	store.InsertOpen(7, "2024-03-01", "09:00:00", models.NamespaceRegular)
	store.InsertOpen(7, "2024-03-01", "10:00:00", models.NamespaceRegular)

	_, err := mgr.Close(7, "2024-03-01", "11:00:00", models.NamespaceRegular, "")
	assert.ErrorIs(t, err, ErrMultipleOpen)

	// Targeted close still works.
	closed, err := mgr.Close(7, "2024-03-01", "11:00:00", models.NamespaceRegular, "10:00:00")
	assert.NoError(t, err)
	assert.Equal(t, "10:00:00", closed.Start)
}

func TestCloseRejectsEndBeforeStart(t *testing.T) {
	mgr, _ := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))
	_, err := mgr.Close(7, "2024-03-01", "08:00:00", models.NamespaceRegular, "")
	assert.Error(t, err)
}

func TestAddCompletedProbesFreeStart(t *testing.T) {
	mgr, _ := newTestManager()

	first, err := mgr.AddCompleted(7, "2024-03-01", 30, models.NamespaceRegular)
	assert.NoError(t, err)
	assert.Equal(t, "00:00:00", first.Start)
	assert.Equal(t, "00:30:00", first.End)

	// 00:00:00 is taken, so the next credit starts one second later.
	second, err := mgr.AddCompleted(7, "2024-03-01", 45, models.NamespaceRegular)
	assert.NoError(t, err)
	assert.Equal(t, "00:00:01", second.Start)
	assert.Equal(t, "00:45:01", second.End)
}

func TestAddCompletedClampsToEndOfDay(t *testing.T) {
	mgr, store := newTestManager()

	// Force the probe near midnight by occupying every start we expect.
	store.InsertOpen(7, "2024-03-01", "00:00:00", models.NamespaceRegular)
	store.CloseSession(7, "2024-03-01", "23:50:00", models.NamespaceRegular, "00:00:00")

	added, err := mgr.AddCompleted(7, "2024-03-01", 24*60, models.NamespaceRegular)
	assert.NoError(t, err)
	assert.Equal(t, "00:00:01", added.Start)
	assert.Equal(t, "23:59:59", added.End)
}

func TestAddCompletedRejectsNonPositiveMinutes(t *testing.T) {
	mgr, _ := newTestManager()

	_, err := mgr.AddCompleted(7, "2024-03-01", 0, models.NamespaceRegular)
	assert.Error(t, err)
	_, err = mgr.AddCompleted(7, "2024-03-01", -10, models.NamespaceRegular)
	assert.Error(t, err)
}

func TestDeleteRemovesExactSession(t *testing.T) {
	mgr, store := newTestManager()

	assert.NoError(t, mgr.Open(7, "2024-03-01", "09:00:00", models.NamespaceRegular))
	assert.NoError(t, mgr.Delete(7, "2024-03-01", "09:00:00", models.NamespaceRegular))

	sessions, _ := store.Sessions(7, "2024-03-01", models.NamespaceRegular)
	assert.Empty(t, sessions)
}

func TestClockInAllowed(t *testing.T) {
	tests := []struct {
		name    string
		at      string
		allowed bool
	}{
		{"just before the cutoff", "23:54:59", true},
		{"cutoff minute start", "23:55:00", true},
		{"cutoff minute end", "23:55:59", true},
		{"first closed minute", "23:56:00", false},
		{"last second of the day", "23:59:59", false},
		{"midnight reopens", "00:00:00", true},
		{"mid-morning", "10:30:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.ParseInLocation("2006-01-02 15:04:05", "2024-03-01 "+tt.at, time.UTC)
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, ClockInAllowed(now))
		})
	}
}

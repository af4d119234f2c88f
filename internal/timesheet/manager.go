// Package timesheet implements the attendance session lifecycle: opening and
// closing work intervals, administrative corrections, and the minute
// accounting used for reports and end-of-day confirmations.
package timesheet

import (
	"errors"
	"fmt"
	"time"

	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/models"
)

var (
	// ErrAlreadyOpen means the member already has an open session in this
	// namespace for the day. User-correctable; the caller tells them to
	// clock out first.
	ErrAlreadyOpen = errors.New("session already open")
	// ErrNoOpenSession means a close was requested but nothing is open.
	ErrNoOpenSession = errors.New("no open session")
	// ErrMultipleOpen means the at-most-one-open invariant has been
	// violated. The legacy close path refuses to guess which session is
	// meant; the caller must close by explicit start time.
	ErrMultipleOpen = errors.New("more than one open session")
	// ErrSessionNotFound means no row matched the exact key.
	ErrSessionNotFound = errors.New("session not found")
)

// Closed describes the result of closing a session.
type Closed struct {
	Start   string
	End     string
	Minutes int // rounded billable minutes
}

// Added describes a session synthesized by AddCompleted.
type Added struct {
	Start string
	End   string
}

// Manager is the single entry point for session mutations. All call sites,
// interactive and scheduled, go through it so the one-open-session invariant
// has a single enforcement point.
type Manager struct {
	store Store
	loc   *time.Location
}

// NewManager wires a Manager over the given store. loc is the deployment's
// local timezone used to interpret date and time-of-day strings.
func NewManager(store Store, loc *time.Location) *Manager {
	if loc == nil {
		loc = time.Local
	}
	return &Manager{store: store, loc: loc}
}

// ClockInAllowed reports whether a session may be opened at now. The day-end
// sweep proposes 23:59:59, so a session opened after 23:55 could never be
// confirmed; 23:55 itself is still inside the sweep window and allowed.
func ClockInAllowed(now time.Time) bool {
	return now.Hour() != 23 || now.Minute() <= 55
}

// Open starts a new session. It re-checks that no session is already open
// for the member and namespace on that date and returns ErrAlreadyOpen,
// wrapped with the offending start time, if one is.
func (m *Manager) Open(memberID int64, date, start string, ns models.Namespace) error {
	if _, err := clock.ParseLocal(date, start, m.loc); err != nil {
		return err
	}
	intervals, err := m.store.Sessions(memberID, date, ns)
	if err != nil {
		return err
	}
	for _, iv := range intervals {
		if iv.End == nil {
			return fmt.Errorf("%w since %s", ErrAlreadyOpen, iv.Start)
		}
	}
	return m.store.InsertOpen(memberID, date, start, ns)
}

// Close finalizes a session. With a non-empty start it closes exactly that
// session; with an empty start it falls back to the single open session for
// the day. The fallback fails with ErrMultipleOpen rather than guessing when
// the invariant has been violated.
func (m *Manager) Close(memberID int64, date, end string, ns models.Namespace, start string) (Closed, error) {
	endAt, err := clock.ParseLocal(date, end, m.loc)
	if err != nil {
		return Closed{}, err
	}

	if start == "" {
		intervals, err := m.store.Sessions(memberID, date, ns)
		if err != nil {
			return Closed{}, err
		}
		var open []string
		for _, iv := range intervals {
			if iv.End == nil {
				open = append(open, iv.Start)
			}
		}
		switch len(open) {
		case 0:
			return Closed{}, ErrNoOpenSession
		case 1:
			start = open[0]
		default:
			return Closed{}, fmt.Errorf("%w for member %d on %s", ErrMultipleOpen, memberID, date)
		}
	}

	startAt, err := clock.ParseLocal(date, start, m.loc)
	if err != nil {
		return Closed{}, err
	}
	if endAt.Before(startAt) {
		return Closed{}, fmt.Errorf("end %s precedes start %s", end, start)
	}

	n, err := m.store.CloseSession(memberID, date, end, ns, start)
	if err != nil {
		return Closed{}, err
	}
	if n == 0 {
		return Closed{}, ErrNoOpenSession
	}
	return Closed{
		Start:   start,
		End:     end,
		Minutes: RoundMinutes(MinutesBetween(startAt, endAt)),
	}, nil
}

// Delete removes a session by its exact key. Used both for user-visible
// corrections and for discarding unconfirmed end-of-day sessions.
func (m *Manager) Delete(memberID int64, date, start string, ns models.Namespace) error {
	return m.store.DeleteSession(memberID, date, start, ns)
}

// AddCompleted credits minutes without a real clock-in/out pair. The start
// time is the first free second from 00:00:00 that day, probing forward one
// second at a time past occupied starts, and the end is clamped to 23:59:59
// so the session never crosses midnight.
func (m *Manager) AddCompleted(memberID int64, date string, minutes float64, ns models.Namespace) (Added, error) {
	if minutes <= 0 {
		return Added{}, fmt.Errorf("minutes must be positive, got %g", minutes)
	}
	intervals, err := m.store.Sessions(memberID, date, ns)
	if err != nil {
		return Added{}, err
	}
	occupied := make(map[string]bool, len(intervals))
	for _, iv := range intervals {
		occupied[iv.Start] = true
	}

	startAt, err := clock.ParseLocal(date, "00:00:00", m.loc)
	if err != nil {
		return Added{}, err
	}
	for occupied[clock.TimeString(startAt)] {
		startAt = startAt.Add(time.Second)
	}

	endAt := startAt.Add(time.Duration(minutes * float64(time.Minute)))
	if clock.DateString(endAt) != date {
		var err error
		endAt, err = clock.ParseLocal(date, "23:59:59", m.loc)
		if err != nil {
			return Added{}, err
		}
	}

	start := clock.TimeString(startAt)
	end := clock.TimeString(endAt)
	if err := m.store.InsertOpen(memberID, date, start, ns); err != nil {
		return Added{}, err
	}
	if _, err := m.store.CloseSession(memberID, date, end, ns, start); err != nil {
		return Added{}, err
	}
	return Added{Start: start, End: end}, nil
}

// OpenFor returns the start time of the member's open session for the day,
// or ErrNoOpenSession.
func (m *Manager) OpenFor(memberID int64, date string, ns models.Namespace) (string, error) {
	intervals, err := m.store.Sessions(memberID, date, ns)
	if err != nil {
		return "", err
	}
	for _, iv := range intervals {
		if iv.End == nil {
			return iv.Start, nil
		}
	}
	return "", ErrNoOpenSession
}

package timesheet

import "github.com/ciprianm/pontaj/internal/models"

// Interval is one stored start/end pair for a member and day. End is nil
// while the session is open.
type Interval struct {
	Start string
	End   *string
}

// OpenSession identifies a still-open session during a store-wide scan.
type OpenSession struct {
	MemberID int64
	Date     string
	Start    string
}

// Store is the persistence boundary the lifecycle manager operates over.
// Rows are keyed by (member, date, start time) within a namespace and
// Sessions returns intervals ordered by start time ascending.
type Store interface {
	InsertOpen(memberID int64, date, start string, ns models.Namespace) error
	// CloseSession sets the end time of the session starting at start. An
	// empty start targets the open session for that member and day instead
	// (legacy path). Returns the number of rows updated.
	CloseSession(memberID int64, date, end string, ns models.Namespace, start string) (int64, error)
	Sessions(memberID int64, date string, ns models.Namespace) ([]Interval, error)
	OpenSessions(ns models.Namespace) ([]OpenSession, error)
	DeleteSession(memberID int64, date, start string, ns models.Namespace) error
}

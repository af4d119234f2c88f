// Package report builds per-day attendance summaries over the roster.
package report

import (
	"time"

	"github.com/ciprianm/pontaj/internal/models"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

// Member is one roster entry included in a report.
type Member struct {
	ID   int64
	Name string
}

// MemberDay is one member's billable summary for the reported date.
type MemberDay struct {
	Member  Member
	Total   int
	Entries []timesheet.Entry
}

// Day is the report for one date and namespace. Members with no billable
// time are omitted, matching the operational report the staff read.
type Day struct {
	Date      string
	Namespace models.Namespace
	Members   []MemberDay
}

// BuildDay summarizes every member's sessions for the date. now feeds the
// ongoing-session rule: open sessions count up to now only on today's
// report.
func BuildDay(mgr *timesheet.Manager, date string, members []Member, ns models.Namespace, now time.Time) (Day, error) {
	day := Day{Date: date, Namespace: ns}
	for _, m := range members {
		sum, err := mgr.DaySummary(m.ID, date, ns, now)
		if err != nil {
			return Day{}, err
		}
		if sum.Total <= 0 {
			continue
		}
		day.Members = append(day.Members, MemberDay{Member: m, Total: sum.Total, Entries: sum.Entries})
	}
	return day, nil
}

package timesheet

import (
	"time"

	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/models"
)

// Entry is one session line in a day summary.
type Entry struct {
	Start   string
	End     string // empty while the session is ongoing
	Minutes int    // rounded; zero-or-negative intervals show 0
	Ongoing bool
}

// DaySummary is a member's sessions and rounded total for one date.
type DaySummary struct {
	Entries []Entry
	Total   int
}

// DaySummary computes the billable summary for a member and date. Closed
// intervals that round to zero or less stay listed but contribute nothing.
// An ongoing session counts time up to now only when the queried date is
// today; a stale open session from an earlier day contributes 0 so it cannot
// inflate historical reports.
func (m *Manager) DaySummary(memberID int64, date string, ns models.Namespace, now time.Time) (DaySummary, error) {
	intervals, err := m.store.Sessions(memberID, date, ns)
	if err != nil {
		return DaySummary{}, err
	}

	var sum DaySummary
	for _, iv := range intervals {
		startAt, err := clock.ParseLocal(date, iv.Start, m.loc)
		if err != nil {
			return DaySummary{}, err
		}
		if iv.End != nil {
			endAt, err := clock.ParseLocal(date, *iv.End, m.loc)
			if err != nil {
				return DaySummary{}, err
			}
			r := RoundMinutes(MinutesBetween(startAt, endAt))
			if r > 0 {
				sum.Total += r
			} else {
				r = 0
			}
			sum.Entries = append(sum.Entries, Entry{Start: iv.Start, End: *iv.End, Minutes: r})
			continue
		}

		var mins float64
		if clock.DateString(now) == date {
			mins = MinutesBetween(startAt, now)
		}
		r := RoundMinutes(mins)
		if r < 0 {
			r = 0
		}
		sum.Total += r
		sum.Entries = append(sum.Entries, Entry{Start: iv.Start, Minutes: r, Ongoing: true})
	}
	return sum, nil
}

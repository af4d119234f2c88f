package eod

import (
	"context"
	"log"
	"time"

	"github.com/ciprianm/pontaj/internal/audit"
	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/models"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

// Boundary is a fixed local time-of-day at which open sessions of the
// current day are swept into the confirmation protocol.
type Boundary struct {
	Name        string
	Hour        int
	Minute      int
	ProposedEnd string
	// LatestStart restricts the sweep to sessions started at or before this
	// time-of-day. Empty targets every open session of the day.
	LatestStart string
}

// The two daily boundaries. The night-shift pass catches sessions opened
// after midnight; the day-end pass catches everything still open before the
// day changes.
var (
	NightShift = Boundary{Name: "night-shift", Hour: 5, Minute: 25, ProposedEnd: "05:30:00", LatestStart: "05:25:59"}
	DayEnd     = Boundary{Name: "day-end", Hour: 23, Minute: 55, ProposedEnd: "23:59:59"}
)

// Scheduler runs the once-per-minute reconciliation check. Each boundary
// fires at most once per calendar day per namespace, guarded by its own
// last-fired marker, so repeated ticks inside the trigger minute stay
// idempotent.
type Scheduler struct {
	clk       clock.Clock
	store     timesheet.Store
	confirmer *Confirmer
	trail     *audit.Trail

	boundaries []Boundary
	lastFired  map[string]string // boundary/namespace -> date
}

// NewScheduler wires a Scheduler over the store and confirmer with the two
// standard boundaries.
func NewScheduler(clk clock.Clock, store timesheet.Store, confirmer *Confirmer, trail *audit.Trail) *Scheduler {
	return &Scheduler{
		clk:        clk,
		store:      store,
		confirmer:  confirmer,
		trail:      trail,
		boundaries: []Boundary{NightShift, DayEnd},
		lastFired:  make(map[string]string),
	}
}

// Run checks boundaries every minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	log.Println("Reconciliation scheduler started")

	s.Check(s.clk.Now())
	for {
		select {
		case <-ctx.Done():
			log.Println("Reconciliation scheduler shutting down")
			return nil
		case <-ticker.C:
			s.Check(s.clk.Now())
		}
	}
}

// Check evaluates every boundary against now. A failure in one sweep never
// stops the loop: the scheduler must survive every iteration.
func (s *Scheduler) Check(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("reconciliation check panicked: %v", r)
		}
	}()

	for _, b := range s.boundaries {
		if now.Hour() != b.Hour || now.Minute() != b.Minute {
			continue
		}
		s.fire(b, now)
	}
}

// fire sweeps one boundary. Summary counts are recorded even when some
// requests could not be delivered; those sessions simply stay open.
func (s *Scheduler) fire(b Boundary, now time.Time) {
	day := clock.DateString(now)

	sent := make(map[models.Namespace]int, len(models.Namespaces))
	fired := false
	for _, ns := range models.Namespaces {
		key := b.Name + "/" + string(ns)
		if s.lastFired[key] == day {
			continue // already processed today
		}

		open, err := s.store.OpenSessions(ns)
		if err != nil {
			log.Printf("boundary %s: open-session scan failed for %s: %v", b.Name, ns, err)
			continue // marker stays unset so a later tick in the minute retries
		}

		for _, o := range open {
			if o.Date != day {
				continue
			}
			if b.LatestStart != "" && o.Start > b.LatestStart {
				continue
			}
			if s.request(o.MemberID, ns, o.Date, o.Start, b.ProposedEnd) {
				sent[ns]++
			}
		}
		s.lastFired[key] = day
		fired = true
	}

	if fired {
		s.trail.Record("EOD", "confirm requests sent for %s (%s): regular=%d sas=%d",
			day, b.Name, sent[models.NamespaceRegular], sent[models.NamespaceSAS])
	}
}

// request shields the sweep from a panicking per-member attempt so the rest
// of the batch still runs.
func (s *Scheduler) request(memberID int64, ns models.Namespace, date, start, proposedEnd string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("confirm request for member %d panicked: %v", memberID, r)
			ok = false
		}
	}()
	return s.confirmer.Request(memberID, ns, date, start, proposedEnd)
}

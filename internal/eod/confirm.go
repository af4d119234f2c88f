// Package eod hosts the end-of-day reconciliation machinery: the boundary
// scheduler that spots still-open sessions and the confirmation protocol
// that asks their owners whether the time should be kept.
package eod

import (
	"fmt"
	"sync"
	"time"

	"github.com/ciprianm/pontaj/internal/audit"
	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/delivery"
	"github.com/ciprianm/pontaj/internal/models"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

// DefaultConfirmWindow is how long a member has to confirm before the
// session is discarded.
const DefaultConfirmWindow = 300 * time.Second

// Request is one outstanding keep-or-discard question for an open session.
type Request struct {
	MemberID    int64
	Namespace   models.Namespace
	Date        string
	Start       string
	ProposedEnd string
	Handle      delivery.Handle
}

type pendingConfirm struct {
	req   Request
	timer *time.Timer
}

// Confirmer tracks outstanding confirmation requests. Confirmation, expiry
// and invalidation all race through the same pop-then-act step on the
// pending map; whichever removes the entry first owns the resolution.
type Confirmer struct {
	mgr      *timesheet.Manager
	dispatch delivery.Dispatcher
	trail    *audit.Trail
	window   time.Duration
	loc      *time.Location

	mu      sync.Mutex
	pending map[string]*pendingConfirm // keyed by delivered message id
}

// NewConfirmer builds a Confirmer. A zero window means DefaultConfirmWindow.
func NewConfirmer(mgr *timesheet.Manager, dispatch delivery.Dispatcher, trail *audit.Trail, window time.Duration, loc *time.Location) *Confirmer {
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	if loc == nil {
		loc = time.Local
	}
	return &Confirmer{
		mgr:      mgr,
		dispatch: dispatch,
		trail:    trail,
		window:   window,
		loc:      loc,
		pending:  make(map[string]*pendingConfirm),
	}
}

// Request asks the member to confirm keeping the open session, closed at
// proposedEnd. Direct delivery is tried first, then the fallback channel
// with a mention. If neither path delivers, no request exists and the
// session stays open for the next boundary or manual handling.
func (c *Confirmer) Request(memberID int64, ns models.Namespace, date, start, proposedEnd string) bool {
	startAt, err := clock.ParseLocal(date, start, c.loc)
	if err != nil {
		return false
	}
	endAt, err := clock.ParseLocal(date, proposedEnd, c.loc)
	if err != nil {
		return false
	}
	rounded := timesheet.RoundMinutes(timesheet.MinutesBetween(startAt, endAt))

	label := "regular"
	if ns == models.NamespaceSAS {
		label = "SAS"
	}
	text := fmt.Sprintf(
		"Timesheet confirmation (%s) for %s\n"+
			"Start %s -> proposed end %s. Total: %d minutes\n"+
			"Confirm within %d minutes to save the session.\n"+
			"Without confirmation the session will NOT be saved.",
		label, date, start, proposedEnd, rounded, int(c.window.Minutes()))

	handle, err := c.dispatch.SendDirect(memberID, text)
	if err != nil {
		handle, err = c.dispatch.SendFallback(fmt.Sprintf("<@%d>\n%s", memberID, text))
	}
	if err != nil || handle.Zero() {
		return false
	}

	req := Request{
		MemberID:    memberID,
		Namespace:   ns,
		Date:        date,
		Start:       start,
		ProposedEnd: proposedEnd,
		Handle:      handle,
	}

	c.mu.Lock()
	p := &pendingConfirm{req: req}
	p.timer = time.AfterFunc(c.window, func() { c.expire(handle.MessageID) })
	c.pending[handle.MessageID] = p
	c.mu.Unlock()
	return true
}

// pop atomically removes and returns the pending request for messageID.
func (c *Confirmer) pop(messageID string) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[messageID]
	if !ok {
		return Request{}, false
	}
	delete(c.pending, messageID)
	if p.timer != nil {
		p.timer.Stop()
	}
	return p.req, true
}

// Confirm resolves a request in favor of keeping the session. Signals for
// unknown messages are silent no-ops; signals from anyone but the owning
// member are ignored and leave the request pending.
func (c *Confirmer) Confirm(messageID string, memberID int64) (timesheet.Closed, bool) {
	c.mu.Lock()
	p, ok := c.pending[messageID]
	if !ok || p.req.MemberID != memberID {
		c.mu.Unlock()
		return timesheet.Closed{}, false
	}
	delete(c.pending, messageID)
	if p.timer != nil {
		p.timer.Stop()
	}
	c.mu.Unlock()

	req := p.req
	closed, err := c.mgr.Close(req.MemberID, req.Date, req.ProposedEnd, req.Namespace, req.Start)
	if err != nil {
		c.trail.Record("EOD", "CONFIRM_FAILED uid=%d type=%s date=%s start=%s: %v",
			req.MemberID, req.Namespace, req.Date, req.Start, err)
		return timesheet.Closed{}, false
	}
	c.trail.Record("EOD", "CONFIRMED uid=%d type=%s date=%s start=%s end=%s mins=%d",
		req.MemberID, req.Namespace, req.Date, req.Start, req.ProposedEnd, closed.Minutes)
	return closed, true
}

// expire fires once per request, window seconds after creation. If the
// request is still pending the unconfirmed session is discarded entirely;
// silence means "do not bill this time".
func (c *Confirmer) expire(messageID string) {
	req, ok := c.pop(messageID)
	if !ok {
		return // already resolved
	}
	if err := c.mgr.Delete(req.MemberID, req.Date, req.Start, req.Namespace); err != nil {
		c.trail.Record("EOD", "EXPIRE_DELETE_FAILED uid=%d type=%s date=%s start=%s: %v",
			req.MemberID, req.Namespace, req.Date, req.Start, err)
		return
	}
	c.trail.Record("EOD", "NOT_CONFIRMED uid=%d type=%s date=%s start=%s",
		req.MemberID, req.Namespace, req.Date, req.Start)
}

// Invalidate drops a pending request because its delivery message vanished
// out-of-band. The underlying session is left open either way.
func (c *Confirmer) Invalidate(messageID string) {
	c.pop(messageID)
}

// PendingCount reports how many requests are outstanding.
func (c *Confirmer) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

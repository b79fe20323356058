package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// TrackingEvent is one human-readable entry of the tracking history shown to customers.
type TrackingEvent struct {
	Status   Status
	At       time.Time
	Location string
	Detail   string
}

// StatusChange is one entry of the strict audit trail: which authenticated actor
// moved the order into which status, and when.
type StatusChange struct {
	Status    Status
	At        time.Time
	ChangedBy kernel.UUID
	Role      Role
}

// ledger groups the two append-only sequences of an order. Entries are only ever
// appended; accessors hand out copies.
type ledger struct {
	tracking []TrackingEvent
	changes  []StatusChange
}

func (l *ledger) track(e TrackingEvent) {
	l.tracking = append(l.tracking, e)
}

func (l *ledger) recordChange(c StatusChange) {
	l.changes = append(l.changes, c)
}

func (l *ledger) trackingHistory() []TrackingEvent {
	out := make([]TrackingEvent, len(l.tracking))
	copy(out, l.tracking)
	return out
}

func (l *ledger) statusChangeLog() []StatusChange {
	out := make([]StatusChange, len(l.changes))
	copy(out, l.changes)
	return out
}

func (l *ledger) lastChange() (StatusChange, bool) {
	if len(l.changes) == 0 {
		return StatusChange{}, false
	}
	return l.changes[len(l.changes)-1], true
}

// Package transaction implements the size-change transaction cookie shared
// by tiles that must become visible on the same frame.
package transaction

import "time"

// How long to wait for stragglers before a transaction is forced through.
const Timeout = 300 * time.Millisecond

// Transaction tracks a group of window configures that should be displayed
// together. Participants register when a configure is sent and notify when
// the client acknowledges it; the transaction completes when every
// participant has acknowledged or the deadline has passed.
//
// Copies share state, so a transaction can be handed to each tile in a
// column.
type Transaction struct {
	inner *state
}

type state struct {
	pending   int
	deadline  time.Duration
	hasDeadln bool
}

// New returns an empty transaction.
func New() Transaction {
	return Transaction{inner: &state{}}
}

// IsZero reports whether this is the zero Transaction (no cookie).
func (t Transaction) IsZero() bool { return t.inner == nil }

// AddParticipant records one more window that must acknowledge. The deadline
// is armed on the first participant.
func (t Transaction) AddParticipant(now time.Duration) {
	t.inner.pending++
	if !t.inner.hasDeadln {
		t.inner.deadline = now + Timeout
		t.inner.hasDeadln = true
	}
}

// NotifyAck records one acknowledgement.
func (t Transaction) NotifyAck() {
	if t.inner.pending > 0 {
		t.inner.pending--
	}
}

// IsCompleted reports whether all participants have acknowledged, or the
// deadline has elapsed and the transaction is forced through.
func (t Transaction) IsCompleted(now time.Duration) bool {
	if t.inner == nil {
		return true
	}
	if t.inner.pending == 0 {
		return true
	}
	return t.inner.hasDeadln && now >= t.inner.deadline
}

// Pending returns the number of outstanding acknowledgements.
func (t Transaction) Pending() int {
	if t.inner == nil {
		return 0
	}
	return t.inner.pending
}

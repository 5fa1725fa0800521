package store

import (
	"errors"
	"sync"
)

// ErrRequestPending is returned by Begin when a request of the same category
// is already in flight.
var ErrRequestPending = errors.New("a request of this category is already pending")

// Phase of one request category's lifecycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
)

// Outcome of the most recent completed request.
type Outcome string

const (
	OutcomeNone   Outcome = "none"
	OutcomeDone   Outcome = "done"
	OutcomeFailed Outcome = "failed"
)

// RequestGate is a small state machine (idle -> pending -> idle) for one
// request category. The session store holds one gate per category, which
// makes the "one standard send plus one think-longer in flight" policy an
// explicit invariant instead of two ad hoc booleans.
type RequestGate struct {
	mu      sync.Mutex
	phase   Phase
	outcome Outcome

	// notify, when set, is called after every transition, outside the lock.
	notify func(Phase, Outcome)
}

func NewRequestGate() *RequestGate {
	return &RequestGate{
		phase:   PhaseIdle,
		outcome: OutcomeNone,
	}
}

// NewRequestGateWithNotify builds a gate whose transitions are reported to
// notify. The callback must not call back into the gate.
func NewRequestGateWithNotify(notify func(Phase, Outcome)) *RequestGate {
	g := NewRequestGate()
	g.notify = notify
	return g
}

// Begin moves the gate to pending. Fails when a request is already in flight.
func (g *RequestGate) Begin() error {
	g.mu.Lock()
	if g.phase == PhasePending {
		g.mu.Unlock()
		return ErrRequestPending
	}
	g.phase = PhasePending
	outcome := g.outcome
	g.mu.Unlock()

	if g.notify != nil {
		g.notify(PhasePending, outcome)
	}
	return nil
}

// Finish returns the gate to idle and records the outcome.
func (g *RequestGate) Finish(failed bool) {
	g.mu.Lock()
	g.phase = PhaseIdle
	if failed {
		g.outcome = OutcomeFailed
	} else {
		g.outcome = OutcomeDone
	}
	outcome := g.outcome
	g.mu.Unlock()

	if g.notify != nil {
		g.notify(PhaseIdle, outcome)
	}
}

func (g *RequestGate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase == PhasePending
}

func (g *RequestGate) LastOutcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

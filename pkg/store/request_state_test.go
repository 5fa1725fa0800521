package store

import (
	"errors"
	"testing"
)

func TestRequestGateLifecycle(t *testing.T) {
	g := NewRequestGate()

	if g.Pending() {
		t.Fatal("new gate should be idle")
	}
	if g.LastOutcome() != OutcomeNone {
		t.Fatalf("LastOutcome = %v, want %v", g.LastOutcome(), OutcomeNone)
	}

	if err := g.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if !g.Pending() {
		t.Fatal("gate should be pending after Begin")
	}

	if err := g.Begin(); !errors.Is(err, ErrRequestPending) {
		t.Fatalf("second Begin() error = %v, want ErrRequestPending", err)
	}

	g.Finish(false)
	if g.Pending() {
		t.Fatal("gate should be idle after Finish")
	}
	if g.LastOutcome() != OutcomeDone {
		t.Fatalf("LastOutcome = %v, want %v", g.LastOutcome(), OutcomeDone)
	}
}

func TestRequestGateFailureOutcome(t *testing.T) {
	g := NewRequestGate()

	if err := g.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	g.Finish(true)

	if g.LastOutcome() != OutcomeFailed {
		t.Fatalf("LastOutcome = %v, want %v", g.LastOutcome(), OutcomeFailed)
	}

	// A failed request never blocks the next one.
	if err := g.Begin(); err != nil {
		t.Fatalf("Begin() after failure error = %v", err)
	}
}

func TestRequestGateNotify(t *testing.T) {
	type transition struct {
		phase   Phase
		outcome Outcome
	}
	var seen []transition

	g := NewRequestGateWithNotify(func(p Phase, o Outcome) {
		seen = append(seen, transition{p, o})
	})

	if err := g.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	g.Finish(false)

	if err := g.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	g.Finish(true)

	want := []transition{
		{PhasePending, OutcomeNone},
		{PhaseIdle, OutcomeDone},
		{PhasePending, OutcomeDone},
		{PhaseIdle, OutcomeFailed},
	}
	if len(seen) != len(want) {
		t.Fatalf("got %d transitions, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d = %+v, want %+v", i, seen[i], want[i])
		}
	}
}

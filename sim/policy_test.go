package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByArrival_TieBreakKeepsReadyOrder(t *testing.T) {
	// GIVEN two processes arriving at the same tick, B listed first
	ready := units(p("B", 2, 1, 0), p("A", 2, 1, 0), p("C", 3, 1, 0))

	// WHEN the earliest arrival is picked
	got := ByArrival.Pick(ready)

	// THEN the first of the tied units wins
	assert.Equal(t, "B", got.Name())
}

func TestByRemaining_PicksShortestRemaining(t *testing.T) {
	a, b := p("A", 0, 5, 0), p("B", 0, 4, 0)
	a.Remaining = 1
	assert.Equal(t, "A", ByRemaining.Pick(units(b, a)).Name())
}

func TestByPriority_LowerValueIsMoreUrgent(t *testing.T) {
	ready := units(p("low", 0, 1, 5), p("high", 0, 1, 1), p("mid", 0, 1, 3))
	assert.Equal(t, "high", ByPriority.Pick(ready).Name())
}

func TestCommitted_KeepsChoiceUntilFinished(t *testing.T) {
	// GIVEN non-preemptive SJF running a 3-tick job
	policy := NewSJF()
	long := p("long", 0, 3, 0)
	d := policy.Next(units(long))
	require.Equal(t, long, d.Unit)
	long.Advance()

	// WHEN a shorter job arrives
	short := p("short", 1, 1, 0)
	d = policy.Next(units(long, short))

	// THEN the committed job keeps running
	assert.Equal(t, long, d.Unit)
	assert.Equal(t, "committed", d.Reason)
	assert.False(t, d.Requeue)
}

func TestCommitted_SelectsAgainAfterFinish(t *testing.T) {
	policy := NewPriority()
	a := p("A", 0, 1, 2)
	policy.Next(units(a))
	a.Advance()

	b, c := p("B", 0, 1, 3), p("C", 0, 1, 1)
	d := policy.Next(units(b, c))
	assert.Equal(t, c, d.Unit)
}

func TestEachTick_PreemptsForShorterArrival(t *testing.T) {
	// GIVEN SRTF running a long job
	policy := NewSRTF()
	long := p("long", 0, 3, 0)
	policy.Next(units(long))
	long.Advance()

	// WHEN a shorter job is ready
	short := p("short", 1, 1, 0)
	d := policy.Next(units(long, short))

	// THEN the shorter job runs immediately
	assert.Equal(t, short, d.Unit)
}

func TestPolicies_EmptyReadyPanics(t *testing.T) {
	policies := map[string]Policy{
		"fcfs":      NewFCFS(),
		"srtf":      NewSRTF(),
		"rr":        NewRoundRobin(1),
		"mq":        NewMultipleQueues(1),
		"mlfq":      NewFeedbackQueue(nil),
		"disk-fcfs": NewDiskFCFS(DefaultDiskGeometry),
		"sstf":      NewSSTF(DefaultDiskGeometry),
		"scan":      NewScan(DefaultDiskGeometry),
		"cscan":     NewCScan(DefaultDiskGeometry),
	}
	for name, policy := range policies {
		t.Run(name, func(t *testing.T) {
			assert.Panics(t, func() { policy.Next(nil) })
		})
	}
}

func TestProcessPolicy_WrongUnitKindPanics(t *testing.T) {
	assert.Panics(t, func() { NewSRTF().Next(units(tr("R", 0, 1))) })
}

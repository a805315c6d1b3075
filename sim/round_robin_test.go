package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobin_QuantumOne_Alternates(t *testing.T) {
	// GIVEN two equal jobs arriving together
	us := units(p("A", 0, 2, 0), p("B", 0, 2, 0))

	// WHEN scheduled with quantum 1
	tl := runPolicy(NewRoundRobin(1), us)

	// THEN they alternate and both finish by tick 3
	assert.Equal(t, "ABAB", timelineString(tl))
	r := BuildReport(tl)
	for _, name := range []string{"A", "B"} {
		assert.Equal(t, int64(2), r.Row(name).Burst, name)
	}
	assert.Equal(t, int64(2), r.Row("A").Completion)
	assert.Equal(t, int64(3), r.Row("B").Completion)
}

func TestRoundRobin_QuantumTwo(t *testing.T) {
	us := units(p("A", 0, 3, 0), p("B", 0, 3, 0))
	assert.Equal(t, "AABBAB", timelineString(runPolicy(NewRoundRobin(2), us)))
}

func TestRoundRobin_RequeueOnlyAtQuantumBoundary(t *testing.T) {
	// GIVEN quantum 3 and a long job
	rr := NewRoundRobin(3)
	a := p("A", 0, 10, 0)
	ready := units(a, p("B", 0, 10, 0))

	// WHEN three ticks are granted
	var requeues []bool
	for i := 0; i < 3; i++ {
		d := rr.Next(ready)
		assert.Equal(t, a, d.Unit)
		a.Advance()
		requeues = append(requeues, d.Requeue)
	}

	// THEN only the third decision asks for a requeue
	assert.Equal(t, []bool{false, false, true}, requeues)
}

func TestRoundRobin_OnPreemptCalledWithExpiredUnit(t *testing.T) {
	var preempted []string
	rr := NewRoundRobin(1)
	rr.OnPreempt = func(u WorkUnit) { preempted = append(preempted, u.Name()) }

	rr.Next(units(p("A", 0, 5, 0)))

	assert.Equal(t, []string{"A"}, preempted)
}

func TestRoundRobin_FinishedCurrentResetsSlice(t *testing.T) {
	// GIVEN A holds the CPU with quantum left
	rr := NewRoundRobin(4)
	a, b := p("A", 0, 1, 0), p("B", 0, 5, 0)
	rr.Next(units(a, b))
	a.Advance()

	// WHEN A has finished and is gone from the ready set
	d := rr.Next(units(b))

	// THEN B starts a fresh slice
	assert.Equal(t, b, d.Unit)
	assert.Equal(t, "new slice", d.Reason)
}

func TestNewRoundRobin_InvalidQuantumPanics(t *testing.T) {
	assert.Panics(t, func() { NewRoundRobin(0) })
}

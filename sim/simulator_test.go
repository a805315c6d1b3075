package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// processPolicies returns a fresh instance of every process policy.
func processPolicies() map[string]func() Policy {
	return map[string]func() Policy{
		"fcfs":     func() Policy { return NewFCFS() },
		"sjf":      func() Policy { return NewSJF() },
		"srtf":     func() Policy { return NewSRTF() },
		"rr":       func() Policy { return NewRoundRobin(2) },
		"priority": func() Policy { return NewPriority() },
		"mq":       func() Policy { return NewMultipleQueues(2) },
		"mlfq":     func() Policy { return NewFeedbackQueue(nil) },
	}
}

func TestSimulate_FCFS_TurnaroundAndWait(t *testing.T) {
	// GIVEN A arriving at 0 with 5 ticks and B arriving at 1 with 3 ticks
	us := units(p("A", 0, 5, 0), p("B", 1, 3, 0))

	// WHEN simulated first-come first-served
	r, err := Simulate(NewFCFS(), us, nil)
	require.NoError(t, err)

	// THEN A runs 0-4, B runs 5-7
	assert.Equal(t, "AAAAABBB", timelineString(r.Timeline))
	a, b := r.Row("A"), r.Row("B")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, int64(5), a.Turnaround)
	assert.Equal(t, int64(0), a.Wait)
	assert.Equal(t, int64(7), b.Turnaround)
	assert.Equal(t, int64(4), b.Wait)
	assert.Equal(t, int64(4), b.Response)
	assert.InDelta(t, 6.0, r.AvgTurnaround, 1e-9)
	assert.InDelta(t, 2.0, r.AvgWait, 1e-9)
}

func TestSimulate_IdleGap_RecordedAsIdleTicks(t *testing.T) {
	// GIVEN a unit that arrives after the first one has finished
	us := units(p("A", 0, 1, 0), p("B", 3, 1, 0))

	r, err := Simulate(NewFCFS(), us, nil)
	require.NoError(t, err)

	// THEN the gap appears as idle ticks and does not count toward B's wait
	assert.Equal(t, "A..B", timelineString(r.Timeline))
	require.Len(t, r.Intervals, 3)
	assert.True(t, r.Intervals[1].Idle())
	assert.Equal(t, int64(2), r.Intervals[1].Len())
	assert.Equal(t, int64(0), r.Row("B").Wait)
	assert.Equal(t, int64(1), r.Row("B").Turnaround)
}

func TestSimulate_LateFirstArrival_StartsIdle(t *testing.T) {
	r, err := Simulate(NewFCFS(), units(p("A", 2, 2, 0)), nil)
	require.NoError(t, err)
	assert.Equal(t, "..AA", timelineString(r.Timeline))
	assert.Equal(t, int64(2), r.Row("A").Turnaround)
}

func TestSimulate_ZeroCPUProcess_OccupiesOneTick(t *testing.T) {
	r, err := Simulate(NewFCFS(), units(p("Z", 0, 0, 0), p("A", 0, 1, 0)), nil)
	require.NoError(t, err)
	assert.Equal(t, "ZA", timelineString(r.Timeline))
}

func TestSimulate_AllPolicies_ConserveWorkAndCoverEveryTick(t *testing.T) {
	for name, newPolicy := range processPolicies() {
		t.Run(name, func(t *testing.T) {
			// GIVEN the mixed workload (no arrival gaps)
			us := fourProcesses()

			// WHEN simulated
			tl := runPolicy(newPolicy(), us)

			// THEN every tick is busy and each unit runs exactly its cpu time
			assert.Len(t, tl, 11)
			counts := make(map[string]int64)
			for _, name := range tl.Names() {
				require.NotEmpty(t, name, "no idle tick expected")
				counts[name]++
			}
			for _, u := range us {
				assert.Equal(t, u.(*Process).CPUTime, counts[u.Name()], u.Name())
			}
		})
	}
}

func TestSimulate_AllPolicies_WaitIsNeverNegative(t *testing.T) {
	us := units(p("A", 0, 3, 2), p("B", 2, 4, 1), p("C", 9, 2, 0), p("D", 10, 1, 3))
	for name, newPolicy := range processPolicies() {
		t.Run(name, func(t *testing.T) {
			r, err := Simulate(newPolicy(), CloneUnits(us), nil)
			require.NoError(t, err)
			for _, row := range r.Rows {
				assert.GreaterOrEqual(t, row.Wait, int64(0), row.Name)
				assert.GreaterOrEqual(t, row.Response, int64(0), row.Name)
				assert.LessOrEqual(t, row.Response, row.Wait, row.Name)
			}
		})
	}
}

func TestSimulate_SameInput_SameTimeline(t *testing.T) {
	for name, newPolicy := range processPolicies() {
		t.Run(name, func(t *testing.T) {
			first := timelineString(runPolicy(newPolicy(), fourProcesses()))
			second := timelineString(runPolicy(newPolicy(), fourProcesses()))
			assert.Equal(t, first, second)
		})
	}
}

func TestSimulate_RejectsInvalidInput(t *testing.T) {
	_, err := Simulate(NewFCFS(), nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyWorkload))

	_, err = Simulate(NewFCFS(), units(p("A", -1, 1, 0)), nil)
	assert.True(t, errors.Is(err, ErrInvalidUnit))
}

func TestNewSimulator_NilPolicy_Panics(t *testing.T) {
	assert.Panics(t, func() { NewSimulator(nil, units(p("A", 0, 1, 0))) })
}

// markerPolicy always answers with a synthetic unit that is not in the ready queue.
type markerPolicy struct{}

func (markerPolicy) Next([]WorkUnit) Decision {
	return Decision{Unit: NewHeadMarker(7), Requeue: true, Reason: "marker"}
}

func TestStep_SyntheticUnit_LeavesReadyQueueUntouched(t *testing.T) {
	// GIVEN a queued unit and a policy that only ever emits markers
	a := p("A", 0, 1, 0)
	sim := NewSimulator(markerPolicy{}, units(a))

	// WHEN one tick runs
	sim.Step()

	// THEN the marker is on the timeline but nothing was requeued, removed or finished
	assert.Equal(t, []string{HeadMarkerName}, sim.Timeline.Names())
	assert.Equal(t, 1, sim.Ready.Len())
	assert.True(t, sim.Ready.Contains(a))
	assert.Empty(t, sim.Finished)
	assert.Equal(t, int64(1), a.Remaining)
}

func TestStep_FinishedUnitsInCompletionOrder(t *testing.T) {
	sim := NewSimulator(NewSRTF(), units(p("A", 0, 3, 0), p("B", 1, 1, 0)))
	sim.Run()
	assert.Equal(t, []string{"B", "A"}, unitNames(sim.Finished))
	assert.True(t, sim.Done())
}

func TestSimulate_Trace_RecordsDispatchesAndRequeues(t *testing.T) {
	// GIVEN decision tracing and a round robin with quantum 1
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})

	// WHEN two units alternate
	r, err := Simulate(NewRoundRobin(1), units(p("A", 0, 2, 0), p("B", 0, 2, 0)), st)
	require.NoError(t, err)

	// THEN every busy tick is a dispatch and every expired slice of a queued unit is a requeue
	assert.Equal(t, "ABAB", timelineString(r.Timeline))
	assert.Equal(t, int64(4), st.TotalTicks)
	require.Len(t, st.Dispatches, 4)
	assert.Equal(t, "A", st.Dispatches[0].Unit)
	assert.Equal(t, int64(3), st.Dispatches[3].Clock)
	// the final slices finish their units, which are removed rather than requeued
	assert.Len(t, st.Requeues, 2)
	assert.Equal(t, "quantum expired", st.Requeues[0].Reason)
}

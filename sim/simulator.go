// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the three unit pools, and
// the tick loop. One Simulator runs one policy over one unit set, start to finish.
type Simulator struct {
	Clock  int64
	Policy Policy
	// Arriving holds units whose arrival tick has not been reached, in input order.
	Arriving []WorkUnit
	// Ready holds arrived, unfinished units. Only the engine reorders it.
	Ready *ReadyQueue
	// Finished holds units in completion order.
	Finished []WorkUnit
	// Timeline[i] is the unit that ran at tick i, nil for an idle tick.
	Timeline Timeline
	// Trace is optional; nil disables decision recording.
	Trace *trace.SimulationTrace
}

// NewSimulator prepares a run of policy over units. The units are mutated by the run;
// callers that need the originals must pass clones.
func NewSimulator(policy Policy, units []WorkUnit) *Simulator {
	if policy == nil {
		panic("NewSimulator: policy must not be nil")
	}
	arriving := make([]WorkUnit, len(units))
	copy(arriving, units)
	return &Simulator{
		Policy:   policy,
		Arriving: arriving,
		Ready:    &ReadyQueue{},
		Finished: make([]WorkUnit, 0, len(units)),
		Timeline: make(Timeline, 0),
	}
}

// Done reports whether every unit has finished.
func (sim *Simulator) Done() bool {
	return len(sim.Arriving) == 0 && sim.Ready.Len() == 0
}

// admit moves every unit whose arrival tick has come into the ready queue,
// preserving input order.
func (sim *Simulator) admit() {
	pending := sim.Arriving[:0]
	for _, u := range sim.Arriving {
		if u.ArrivalTime() <= sim.Clock {
			sim.Ready.Enqueue(u)
		} else {
			pending = append(pending, u)
		}
	}
	sim.Arriving = pending
}

// Step simulates a single tick.
func (sim *Simulator) Step() {
	sim.admit()

	if sim.Ready.Len() == 0 {
		logrus.Debugf("[tick %07d] idle", sim.Clock)
		sim.Timeline = append(sim.Timeline, nil)
		sim.Clock++
		return
	}

	d := sim.Policy.Next(sim.Ready.snapshot())
	if d.Unit == nil {
		panic(fmt.Sprintf("policy %T returned no unit at tick %d", sim.Policy, sim.Clock))
	}
	logrus.Debugf("[tick %07d] run %s (%s), ready=%v", sim.Clock, d.Unit.Name(), d.Reason, sim.Ready)
	sim.Timeline = append(sim.Timeline, d.Unit)
	if sim.Trace != nil {
		sim.Trace.RecordDispatch(trace.DispatchRecord{Clock: sim.Clock, Unit: d.Unit.Name(), Reason: d.Reason})
	}

	d.Unit.Advance()

	// Synthetic units (disk head markers) are never in the ready queue, so both
	// Remove and MoveToBack are no-ops for them.
	switch {
	case d.Unit.Finished():
		if sim.Ready.Remove(d.Unit) {
			sim.Finished = append(sim.Finished, d.Unit)
		}
	case d.Requeue:
		if sim.Ready.MoveToBack(d.Unit) {
			logrus.Debugf("[tick %07d] requeue %s", sim.Clock, d.Unit.Name())
			if sim.Trace != nil {
				sim.Trace.RecordRequeue(trace.RequeueRecord{Clock: sim.Clock, Unit: d.Unit.Name(), Reason: d.Reason})
			}
		}
	}
	sim.Clock++
}

// Run steps until every unit has finished and returns the timeline.
// Termination is guaranteed because each tick either advances a ready unit or
// brings the clock closer to the next arrival.
func (sim *Simulator) Run() Timeline {
	for !sim.Done() {
		sim.Step()
	}
	if sim.Trace != nil {
		sim.Trace.TotalTicks = sim.Clock
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return sim.Timeline
}

// Simulate validates units, runs policy over them and builds the general report.
// st may be nil.
func Simulate(policy Policy, units []WorkUnit, st *trace.SimulationTrace) (*Report, error) {
	if err := ValidateUnits(units); err != nil {
		return nil, err
	}
	s := NewSimulator(policy, units)
	s.Trace = st
	return BuildReport(s.Run()), nil
}

// SimulateDisk runs a disk policy and builds the head-movement report. The initial head
// position is recorded as the first timeline entry, ahead of tick 0.
func SimulateDisk(policy DiskPolicy, units []WorkUnit, st *trace.SimulationTrace) (*TrackReport, error) {
	if err := ValidateUnits(units); err != nil {
		return nil, err
	}
	s := NewSimulator(policy, units)
	s.Trace = st
	s.Timeline = append(s.Timeline, policy.Start())
	return BuildTrackReport(s.Run()), nil
}

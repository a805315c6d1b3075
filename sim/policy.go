package sim

import "fmt"

// Decision is a policy's answer for one tick.
type Decision struct {
	Unit WorkUnit // Unit to run this tick; must be an element of the ready set or a synthetic marker
	// Requeue asks the engine to move Unit to the back of the ready queue after this tick.
	// Round-robin style policies set it when a quantum expires.
	Requeue bool
	Reason  string // Human-readable explanation, recorded in the decision trace
}

// Policy chooses which ready unit runs on the next tick.
// Implementations may keep state across calls but MUST NOT modify the ready slice;
// reordering is requested via Decision.Requeue and performed by the engine.
// The engine never calls Next with an empty ready set.
type Policy interface {
	Next(ready []WorkUnit) Decision
}

// SelectRule picks one unit from a non-empty ready set without side effects.
type SelectRule struct {
	Name string
	Pick func(ready []WorkUnit) WorkUnit
}

// minBy returns the first unit with the smallest key, so equal keys keep ready order.
func minBy(ready []WorkUnit, key func(WorkUnit) int64) WorkUnit {
	best := ready[0]
	bestKey := key(best)
	for _, u := range ready[1:] {
		if k := key(u); k < bestKey {
			best, bestKey = u, k
		}
	}
	return best
}

func asProcess(u WorkUnit) *Process {
	p, ok := u.(*Process)
	if !ok {
		panic(fmt.Sprintf("process policy received %T, want *Process", u))
	}
	return p
}

// ByArrival selects the earliest arrival.
var ByArrival = SelectRule{
	Name: "earliest arrival",
	Pick: func(ready []WorkUnit) WorkUnit {
		return minBy(ready, func(u WorkUnit) int64 { return u.ArrivalTime() })
	},
}

// ByRemaining selects the process with the least remaining cpu time.
var ByRemaining = SelectRule{
	Name: "shortest remaining",
	Pick: func(ready []WorkUnit) WorkUnit {
		return minBy(ready, func(u WorkUnit) int64 { return asProcess(u).Remaining })
	},
}

// ByPriority selects the process with the numerically smallest priority.
var ByPriority = SelectRule{
	Name: "highest priority",
	Pick: func(ready []WorkUnit) WorkUnit {
		return minBy(ready, func(u WorkUnit) int64 { return int64(asProcess(u).Priority) })
	},
}

// Committed runs its rule once and then keeps returning that unit until it finishes.
// It is the shared non-preemptive behavior of FCFS, SJF and Priority.
type Committed struct {
	Rule SelectRule
	last WorkUnit
}

func (c *Committed) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "Committed.Next")
	if c.last != nil && !c.last.Finished() {
		return Decision{Unit: c.last, Reason: "committed"}
	}
	c.last = c.Rule.Pick(ready)
	return Decision{Unit: c.last, Reason: c.Rule.Name}
}

// EachTick re-evaluates its rule on every call (full preemption).
type EachTick struct {
	Rule SelectRule
}

func (e *EachTick) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "EachTick.Next")
	return Decision{Unit: e.Rule.Pick(ready), Reason: e.Rule.Name}
}

// NewFCFS returns non-preemptive first-come-first-served for processes.
func NewFCFS() Policy { return &Committed{Rule: ByArrival} }

// NewSJF returns non-preemptive shortest-job-first.
func NewSJF() Policy { return &Committed{Rule: ByRemaining} }

// NewSRTF returns preemptive shortest-job-first (shortest remaining time first).
func NewSRTF() Policy { return &EachTick{Rule: ByRemaining} }

// NewPriority returns non-preemptive priority scheduling.
func NewPriority() Policy { return &Committed{Rule: ByPriority} }

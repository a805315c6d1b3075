package sim

import "fmt"

// RoundRobin time-slices the ready set. The current unit keeps the CPU until it
// finishes or its quantum runs out, at which point it is requeued at the back.
type RoundRobin struct {
	Quantum int64
	// OnPreempt, if set, is called with the unit whose quantum just expired.
	OnPreempt func(WorkUnit)

	current WorkUnit
	left    int64
}

// NewRoundRobin creates a round-robin policy. Panics if quantum < 1.
func NewRoundRobin(quantum int64) *RoundRobin {
	if quantum < 1 {
		panic(fmt.Sprintf("NewRoundRobin: quantum must be >= 1, got %d", quantum))
	}
	return &RoundRobin{Quantum: quantum, left: quantum}
}

func (rr *RoundRobin) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "RoundRobin.Next")
	if rr.current != nil && rr.current.Finished() {
		rr.Reset()
	}
	reason := "continue slice"
	if rr.current == nil {
		rr.current = ready[0]
		rr.left = rr.Quantum
		reason = "new slice"
	}

	d := Decision{Unit: rr.current, Reason: reason}
	if rr.left-1 <= 0 {
		if rr.OnPreempt != nil {
			rr.OnPreempt(rr.current)
		}
		d.Requeue = true
		d.Reason = "quantum expired"
		rr.current = nil
	}
	rr.left--
	return d
}

// Reset forgets the current unit and restores a full quantum.
func (rr *RoundRobin) Reset() {
	rr.current = nil
	rr.left = rr.Quantum
}

// Implements the ReadyQueue, which holds every unit that has arrived and not yet finished.
// Units are enqueued on arrival, in arrival order.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is the engine-owned ordered pool of ready units.
// Policies see its contents through Items() and express reordering only via
// Decision.Requeue, which the engine applies with MoveToBack.
type ReadyQueue struct {
	queue []WorkUnit
}

// Enqueue adds a unit to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(u WorkUnit) {
	if u == nil {
		panic("Enqueue: unit must not be nil")
	}
	rq.queue = append(rq.queue, u)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, u := range rq.queue {
		sb.WriteString(u.Name())
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of ready units.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT append to or
// reslice it. Policies receive a copy, see Simulator.Step.
func (rq *ReadyQueue) Items() []WorkUnit {
	return rq.queue
}

// index returns the position of u (by identity) or -1.
func (rq *ReadyQueue) index(u WorkUnit) int {
	for i, v := range rq.queue {
		if v == u {
			return i
		}
	}
	return -1
}

// Contains reports whether u (by identity) is queued.
func (rq *ReadyQueue) Contains(u WorkUnit) bool {
	return rq.index(u) >= 0
}

// Remove deletes u from the queue, preserving the order of the rest.
// Returns false without changing anything if u is not queued.
func (rq *ReadyQueue) Remove(u WorkUnit) bool {
	i := rq.index(u)
	if i < 0 {
		return false
	}
	rq.queue = append(rq.queue[:i], rq.queue[i+1:]...)
	return true
}

// MoveToBack relocates u to the tail of the queue.
// Used for round-robin style requeueing after a quantum expires.
func (rq *ReadyQueue) MoveToBack(u WorkUnit) bool {
	if !rq.Remove(u) {
		return false
	}
	rq.queue = append(rq.queue, u)
	return true
}

// snapshot returns a copy of the queue contents safe to hand to a policy.
func (rq *ReadyQueue) snapshot() []WorkUnit {
	out := make([]WorkUnit, len(rq.queue))
	copy(out, rq.queue)
	return out
}

// mustNotBeEmpty panics with a descriptive message; used to guard policy preconditions.
func mustNotBeEmpty(ready []WorkUnit, who string) {
	if len(ready) == 0 {
		panic(fmt.Sprintf("%s: ready set must not be empty", who))
	}
}

package sim

import "fmt"

// highestPriorityGroup returns, in ready order, every process sharing the numerically
// smallest priority, plus that priority.
func highestPriorityGroup(ready []WorkUnit) ([]WorkUnit, int) {
	top := asProcess(ready[0]).Priority
	for _, u := range ready[1:] {
		if p := asProcess(u).Priority; p < top {
			top = p
		}
	}
	group := make([]WorkUnit, 0, len(ready))
	for _, u := range ready {
		if asProcess(u).Priority == top {
			group = append(group, u)
		}
	}
	return group, top
}

// MultipleQueues keeps one round-robin queue per priority level and only serves
// the most urgent non-empty level. Preemption is delegated to that level's RoundRobin.
type MultipleQueues struct {
	Quantum int64
	queues  map[int]*RoundRobin
}

func NewMultipleQueues(quantum int64) *MultipleQueues {
	if quantum < 1 {
		panic(fmt.Sprintf("NewMultipleQueues: quantum must be >= 1, got %d", quantum))
	}
	return &MultipleQueues{Quantum: quantum, queues: make(map[int]*RoundRobin)}
}

func (mq *MultipleQueues) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "MultipleQueues.Next")
	group, level := highestPriorityGroup(ready)
	rr, ok := mq.queues[level]
	if !ok {
		rr = NewRoundRobin(mq.Quantum)
		mq.queues[level] = rr
	}
	d := rr.Next(group)
	d.Reason = fmt.Sprintf("level %d: %s", level, d.Reason)
	return d
}

// DoublingQuantum is the default feedback quantum: 2^(p-1), at least 1.
func DoublingQuantum(priority int) int64 {
	if priority < 1 {
		return 1
	}
	if priority > 63 {
		priority = 63
	}
	return int64(1) << (priority - 1)
}

// FeedbackQueue is a multilevel feedback queue. It behaves like MultipleQueues, but a
// process that exhausts its level's quantum without finishing is demoted one level
// (priority+1) and lands at the tail of its new level.
type FeedbackQueue struct {
	QuantumFor func(priority int) int64
	queues     map[int]*RoundRobin
	preempted  WorkUnit
}

// NewFeedbackQueue creates a feedback queue; a nil quantumFor uses DoublingQuantum.
func NewFeedbackQueue(quantumFor func(priority int) int64) *FeedbackQueue {
	if quantumFor == nil {
		quantumFor = DoublingQuantum
	}
	return &FeedbackQueue{QuantumFor: quantumFor, queues: make(map[int]*RoundRobin)}
}

func (fq *FeedbackQueue) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "FeedbackQueue.Next")
	group, level := highestPriorityGroup(ready)
	rr, ok := fq.queues[level]
	if !ok {
		q := fq.QuantumFor(level)
		if q < 1 {
			q = 1
		}
		rr = NewRoundRobin(q)
		rr.OnPreempt = func(u WorkUnit) { fq.preempted = u }
		fq.queues[level] = rr
	}

	fq.preempted = nil
	d := rr.Next(group)
	d.Reason = fmt.Sprintf("level %d: %s", level, d.Reason)

	if fq.preempted != nil {
		p := asProcess(fq.preempted)
		p.Priority++
		rr.Reset()
		// Requeue puts it behind everything, hence at the tail of its new level.
		d.Requeue = true
		d.Reason = fmt.Sprintf("%s, demoted to level %d", d.Reason, p.Priority)
		fq.preempted = nil
	}
	return d
}

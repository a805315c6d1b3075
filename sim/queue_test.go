package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadyQueue_MoveToBack_PreservesOthers(t *testing.T) {
	// GIVEN a queue [A, B, C]
	rq := &ReadyQueue{}
	a, b, c := p("A", 0, 1, 0), p("B", 0, 1, 0), p("C", 0, 1, 0)
	rq.Enqueue(a)
	rq.Enqueue(b)
	rq.Enqueue(c)

	// WHEN A is moved to the back
	ok := rq.MoveToBack(a)

	// THEN the order is [B, C, A]
	assert.True(t, ok)
	assert.Equal(t, []string{"B", "C", "A"}, unitNames(rq.Items()))
}

func TestReadyQueue_Remove_AbsentUnit_IsNoOp(t *testing.T) {
	// GIVEN a queue [A] and a unit that was never queued
	rq := &ReadyQueue{}
	rq.Enqueue(p("A", 0, 1, 0))
	marker := NewHeadMarker(7)

	// WHEN removing or requeueing the absent unit
	removed := rq.Remove(marker)
	moved := rq.MoveToBack(marker)

	// THEN nothing changes
	assert.False(t, removed)
	assert.False(t, moved)
	assert.Equal(t, 1, rq.Len())
}

func TestReadyQueue_Remove_ByIdentityNotName(t *testing.T) {
	// GIVEN two distinct units with the same label
	rq := &ReadyQueue{}
	first, second := p("X", 0, 1, 0), p("X", 1, 1, 0)
	rq.Enqueue(first)
	rq.Enqueue(second)

	// WHEN the second is removed
	assert.True(t, rq.Remove(second))

	// THEN the first remains
	assert.True(t, rq.Contains(first))
	assert.False(t, rq.Contains(second))
}

func TestReadyQueue_Snapshot_IsACopy(t *testing.T) {
	rq := &ReadyQueue{}
	rq.Enqueue(p("A", 0, 1, 0))
	rq.Enqueue(p("B", 0, 1, 0))

	snap := rq.snapshot()
	snap[0], snap[1] = snap[1], snap[0]

	assert.Equal(t, []string{"A", "B"}, unitNames(rq.Items()))
	assert.Equal(t, "[A B]", rq.String())
}

func TestReadyQueue_Enqueue_NilPanics(t *testing.T) {
	rq := &ReadyQueue{}
	assert.Panics(t, func() { rq.Enqueue(nil) })
}

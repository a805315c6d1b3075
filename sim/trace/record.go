// Package trace provides decision-trace recording for dispatch policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DispatchRecord captures the unit a policy ran on a single tick.
type DispatchRecord struct {
	Clock  int64
	Unit   string
	Reason string
}

// RequeueRecord captures a unit sent to the back of the ready queue after its tick.
type RequeueRecord struct {
	Clock  int64
	Unit   string
	Reason string
}

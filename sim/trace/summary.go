package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks      int64
	BusyTicks       int64
	IdleTicks       int64
	ContextSwitches int // dispatches whose unit differs from the previous dispatch
	Requeues        int
	UniqueUnits     int
	DispatchCounts  map[string]int // unit name → ticks dispatched
	Utilization     float64        // BusyTicks / TotalTicks
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTicks = st.TotalTicks
	summary.BusyTicks = int64(len(st.Dispatches))
	if summary.TotalTicks > summary.BusyTicks {
		summary.IdleTicks = summary.TotalTicks - summary.BusyTicks
	}
	summary.Requeues = len(st.Requeues)

	prev := ""
	for i, d := range st.Dispatches {
		summary.DispatchCounts[d.Unit]++
		if i > 0 && d.Unit != prev {
			summary.ContextSwitches++
		}
		prev = d.Unit
	}
	summary.UniqueUnits = len(summary.DispatchCounts)

	if summary.TotalTicks > 0 {
		summary.Utilization = float64(summary.BusyTicks) / float64(summary.TotalTicks)
	}
	return summary
}

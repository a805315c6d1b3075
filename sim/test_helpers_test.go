package sim

import "strings"

// p is shorthand for a process in test tables.
func p(id string, arrival, cpu int64, priority int) *Process {
	return NewProcess(id, arrival, cpu, priority)
}

// tr is shorthand for a track request in test tables.
func tr(id string, arrival, track int64) *TrackRequest {
	return NewTrackRequest(id, arrival, track)
}

func units(us ...WorkUnit) []WorkUnit { return us }

// timelineString renders a timeline as one character per tick, '.' for idle.
// Only meaningful with single-letter unit names.
func timelineString(tl Timeline) string {
	var sb strings.Builder
	for _, name := range tl.Names() {
		if name == "" {
			sb.WriteString(".")
			continue
		}
		sb.WriteString(name)
	}
	return sb.String()
}

// runPolicy simulates policy over a fresh copy of us and returns the timeline.
func runPolicy(policy Policy, us []WorkUnit) Timeline {
	return NewSimulator(policy, CloneUnits(us)).Run()
}

// fourProcesses is the shared mixed workload: staggered arrivals, two priority-1 processes.
func fourProcesses() []WorkUnit {
	return units(p("A", 0, 5, 2), p("B", 1, 3, 1), p("C", 2, 1, 3), p("D", 3, 2, 1))
}

func unitNames(us []WorkUnit) []string {
	names := make([]string, len(us))
	for i, u := range us {
		names[i] = u.Name()
	}
	return names
}

// Builds reports from a finished timeline: compressed intervals plus per-unit
// turnaround and wait statistics, or head movement for disk runs.

package sim

import (
	"fmt"
	"sort"
)

// Timeline is the raw per-tick schedule: index t holds the unit that ran at tick t,
// or nil if the resource was idle.
type Timeline []WorkUnit

// label returns the grouping key for tick t; idle ticks map to "".
func (tl Timeline) label(t int) string {
	if tl[t] == nil {
		return ""
	}
	return tl[t].Name()
}

// Names returns the per-tick labels, "" for idle ticks.
func (tl Timeline) Names() []string {
	out := make([]string, len(tl))
	for i := range tl {
		out[i] = tl.label(i)
	}
	return out
}

// Interval is a maximal run of consecutive ticks with the same unit label.
type Interval struct {
	Start int64
	End   int64  // inclusive
	Unit  string // "" for an idle run
}

// Len returns the number of ticks covered.
func (iv Interval) Len() int64 { return iv.End - iv.Start + 1 }

// Idle reports whether no unit ran during the interval.
func (iv Interval) Idle() bool { return iv.Unit == "" }

// Label formats the interval as "start-end(length)".
func (iv Interval) Label() string {
	return fmt.Sprintf("%d-%d(%d)", iv.Start, iv.End, iv.Len())
}

// Row holds the statistics of one distinct unit.
type Row struct {
	Name       string
	Arrival    int64
	Completion int64 // end tick of the unit's last interval
	Burst      int64 // ticks actually run
	Turnaround int64 // Completion - Arrival + 1
	Wait       int64 // Turnaround - Burst
	Response   int64 // first start tick - Arrival
	// Membership[i] is true when Intervals[i] belongs to this unit.
	Membership []bool
}

// Report is the compressed view of a general (process) schedule.
type Report struct {
	Timeline      Timeline
	Intervals     []Interval
	Rows          []Row // sorted by unit name
	AvgTurnaround float64
	AvgWait       float64
	AvgResponse   float64
}

// Compress merges consecutive ticks with the same label into intervals.
func Compress(tl Timeline) []Interval {
	intervals := make([]Interval, 0)
	for t := 0; t < len(tl); t++ {
		name := tl.label(t)
		if n := len(intervals); n > 0 && intervals[n-1].Unit == name {
			intervals[n-1].End = int64(t)
			continue
		}
		intervals = append(intervals, Interval{Start: int64(t), End: int64(t), Unit: name})
	}
	return intervals
}

// BuildReport compresses the timeline and computes per-unit and average statistics.
// Units are matched by name, so distinct values with equal labels share a row.
// The timeline is not modified.
func BuildReport(tl Timeline) *Report {
	r := &Report{Timeline: tl, Intervals: Compress(tl)}

	// first occurrence supplies the arrival time for a label
	arrivals := make(map[string]int64)
	names := make([]string, 0)
	for _, u := range tl {
		if u == nil {
			continue
		}
		if _, seen := arrivals[u.Name()]; !seen {
			arrivals[u.Name()] = u.ArrivalTime()
			names = append(names, u.Name())
		}
	}
	sort.Strings(names)

	turnarounds := make([]int64, 0, len(names))
	waits := make([]int64, 0, len(names))
	responses := make([]int64, 0, len(names))
	for _, name := range names {
		row := Row{Name: name, Arrival: arrivals[name], Membership: make([]bool, len(r.Intervals))}
		firstStart := int64(-1)
		for i, iv := range r.Intervals {
			if iv.Unit != name {
				continue
			}
			row.Membership[i] = true
			row.Burst += iv.Len()
			if iv.End > row.Completion {
				row.Completion = iv.End
			}
			if firstStart < 0 {
				firstStart = iv.Start
			}
		}
		row.Turnaround = row.Completion - row.Arrival + 1
		row.Wait = row.Turnaround - row.Burst
		row.Response = firstStart - row.Arrival
		r.Rows = append(r.Rows, row)

		turnarounds = append(turnarounds, row.Turnaround)
		waits = append(waits, row.Wait)
		responses = append(responses, row.Response)
	}
	r.AvgTurnaround = CalculateMean(turnarounds)
	r.AvgWait = CalculateMean(waits)
	r.AvgResponse = CalculateMean(responses)
	return r
}

// Row returns the row for name, or nil.
func (r *Report) Row(name string) *Row {
	for i := range r.Rows {
		if r.Rows[i].Name == name {
			return &r.Rows[i]
		}
	}
	return nil
}

// TrackReport is the disk view of a schedule: the sequence of head positions and the
// total distance the head travelled.
type TrackReport struct {
	Timeline     Timeline
	Names        []string // unit label per visited position, HeadMarkerName for markers
	Tracks       []int64
	HeadMovement int64
}

// BuildTrackReport walks the timeline (skipping idle ticks) and sums the absolute
// track differences between consecutive positions, initial marker included.
func BuildTrackReport(tl Timeline) *TrackReport {
	r := &TrackReport{Timeline: tl}
	for _, u := range tl {
		if u == nil {
			continue
		}
		t := asTrack(u)
		if n := len(r.Tracks); n > 0 {
			r.HeadMovement += distance(r.Tracks[n-1], t.Track)
		}
		r.Names = append(r.Names, t.ID)
		r.Tracks = append(r.Tracks, t.Track)
	}
	return r
}

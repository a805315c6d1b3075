// Defines the work units that flow through the simulation: CPU processes and disk track requests.
// Both are mutated in place as the engine advances them, so every batch run works on its own clones.

package sim

import (
	"errors"
	"fmt"
)

// HeadMarkerName labels every synthetic head-position marker emitted by disk policies.
// Markers are compared by this label, so all of them collapse into a single report row.
const HeadMarkerName = "head"

var (
	// ErrEmptyWorkload is returned when a simulation is requested over zero units.
	ErrEmptyWorkload = errors.New("empty workload")
	// ErrInvalidUnit is returned when a unit carries a negative time, track, or an empty name.
	ErrInvalidUnit = errors.New("invalid work unit")
)

// WorkUnit is a schedulable entity. Identity for reporting purposes is Name(), not the pointer.
type WorkUnit interface {
	Name() string
	ArrivalTime() int64
	// Advance performs one tick of service.
	Advance()
	Finished() bool
	// Clone returns an independent deep copy with the same progress.
	Clone() WorkUnit
}

// Process models a CPU burst.
type Process struct {
	ID        string // Unique label, used as the grouping key in reports
	Arrival   int64  // Tick at which the process becomes ready
	CPUTime   int64  // Total ticks of service required
	Remaining int64  // Ticks of service still owed; decremented by Advance
	Priority  int    // Lower is more urgent. Feedback queues increment it on demotion.
}

// NewProcess creates a process that has not yet received any service.
func NewProcess(id string, arrival, cpuTime int64, priority int) *Process {
	return &Process{ID: id, Arrival: arrival, CPUTime: cpuTime, Remaining: cpuTime, Priority: priority}
}

func (p *Process) Name() string       { return p.ID }
func (p *Process) ArrivalTime() int64 { return p.Arrival }
func (p *Process) Advance()           { p.Remaining-- }
func (p *Process) Finished() bool     { return p.Remaining <= 0 }

func (p *Process) Clone() WorkUnit {
	c := *p
	return &c
}

func (p *Process) String() string {
	return fmt.Sprintf("Process: (ID: %s, Arrival: %d, Remaining: %d/%d, Priority: %d)",
		p.ID, p.Arrival, p.Remaining, p.CPUTime, p.Priority)
}

// TrackRequest models a single disk read at a track. One tick services it completely.
type TrackRequest struct {
	ID       string
	Arrival  int64
	Track    int64
	Serviced bool
}

// NewTrackRequest creates an unserviced request for the given track.
func NewTrackRequest(id string, arrival, track int64) *TrackRequest {
	return &TrackRequest{ID: id, Arrival: arrival, Track: track}
}

// NewHeadMarker creates the synthetic unit disk policies emit when the head moves
// without servicing a request (initial position, sweep edges, wrap-around).
func NewHeadMarker(track int64) *TrackRequest {
	return &TrackRequest{ID: HeadMarkerName, Track: track}
}

func (r *TrackRequest) Name() string       { return r.ID }
func (r *TrackRequest) ArrivalTime() int64 { return r.Arrival }
func (r *TrackRequest) Advance()           { r.Serviced = true }
func (r *TrackRequest) Finished() bool     { return r.Serviced }

func (r *TrackRequest) Clone() WorkUnit {
	c := *r
	return &c
}

func (r *TrackRequest) String() string {
	return fmt.Sprintf("TrackRequest: (ID: %s, Arrival: %d, Track: %d)", r.ID, r.Arrival, r.Track)
}

// CloneUnits deep-copies a unit set so independent runs never share mutable state.
func CloneUnits(units []WorkUnit) []WorkUnit {
	out := make([]WorkUnit, len(units))
	for i, u := range units {
		out[i] = u.Clone()
	}
	return out
}

// ValidateUnits rejects workloads the engine cannot simulate meaningfully.
func ValidateUnits(units []WorkUnit) error {
	if len(units) == 0 {
		return ErrEmptyWorkload
	}
	for i, u := range units {
		if u == nil {
			return fmt.Errorf("unit %d is nil: %w", i, ErrInvalidUnit)
		}
		if u.Name() == "" {
			return fmt.Errorf("unit %d has an empty name: %w", i, ErrInvalidUnit)
		}
		if u.ArrivalTime() < 0 {
			return fmt.Errorf("unit %q has negative arrival time %d: %w", u.Name(), u.ArrivalTime(), ErrInvalidUnit)
		}
		switch v := u.(type) {
		case *Process:
			if v.CPUTime < 0 {
				return fmt.Errorf("process %q has negative cpu time %d: %w", v.ID, v.CPUTime, ErrInvalidUnit)
			}
		case *TrackRequest:
			if v.Track < 0 {
				return fmt.Errorf("track request %q has negative track %d: %w", v.ID, v.Track, ErrInvalidUnit)
			}
		}
	}
	return nil
}

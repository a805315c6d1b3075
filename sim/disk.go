package sim

import "fmt"

// DiskGeometry describes the track range and the initial state of the disk arm.
type DiskGeometry struct {
	Low       int64 `yaml:"low"`
	High      int64 `yaml:"high"`
	Head      int64 `yaml:"head"`
	Direction int   `yaml:"direction"` // +1 toward High, -1 toward Low
}

// DefaultDiskGeometry is a 200-track disk with the head parked at track 0 moving up.
var DefaultDiskGeometry = DiskGeometry{Low: 0, High: 199, Head: 0, Direction: 1}

// Validate checks the bounds and the direction.
func (g DiskGeometry) Validate() error {
	if g.Low < 0 || g.High < g.Low {
		return fmt.Errorf("disk tracks must satisfy 0 <= low <= high, got low=%d high=%d: %w", g.Low, g.High, ErrInvalidConfig)
	}
	if g.Head < g.Low || g.Head > g.High {
		return fmt.Errorf("initial head %d outside [%d, %d]: %w", g.Head, g.Low, g.High, ErrInvalidConfig)
	}
	if g.Direction != 1 && g.Direction != -1 {
		return fmt.Errorf("direction must be 1 or -1, got %d: %w", g.Direction, ErrInvalidConfig)
	}
	return nil
}

// Contains reports whether track lies on the disk.
func (g DiskGeometry) Contains(track int64) bool {
	return track >= g.Low && track <= g.High
}

// DiskPolicy is a Policy that moves a disk head. Start returns the marker for the
// initial head position, which the engine records before the first tick.
type DiskPolicy interface {
	Policy
	Start() WorkUnit
	Head() int64
}

func asTrack(u WorkUnit) *TrackRequest {
	t, ok := u.(*TrackRequest)
	if !ok {
		panic(fmt.Sprintf("disk policy received %T, want *TrackRequest", u))
	}
	return t
}

func distance(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

// head holds the arm state shared by all disk policies.
type head struct {
	geometry  DiskGeometry
	position  int64
	direction int
}

func newHead(g DiskGeometry) head {
	return head{geometry: g, position: g.Head, direction: g.Direction}
}

func (h *head) Start() WorkUnit { return NewHeadMarker(h.geometry.Head) }
func (h *head) Head() int64     { return h.position }

func (h *head) moveTo(u WorkUnit) {
	h.position = asTrack(u).Track
}

func (h *head) nearest(ready []WorkUnit) WorkUnit {
	return minBy(ready, func(u WorkUnit) int64 { return distance(asTrack(u).Track, h.position) })
}

// ahead keeps the requests on the current side of the head, including its own track.
func (h *head) ahead(ready []WorkUnit) []WorkUnit {
	out := make([]WorkUnit, 0, len(ready))
	for _, u := range ready {
		if (asTrack(u).Track-h.position)*int64(h.direction) >= 0 {
			out = append(out, u)
		}
	}
	return out
}

// DiskFCFS services requests strictly in ready order.
type DiskFCFS struct{ head }

func NewDiskFCFS(g DiskGeometry) *DiskFCFS { return &DiskFCFS{head: newHead(g)} }

func (d *DiskFCFS) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "DiskFCFS.Next")
	d.moveTo(ready[0])
	return Decision{Unit: ready[0], Reason: "first requested"}
}

// SSTF services the request closest to the head.
type SSTF struct{ head }

func NewSSTF(g DiskGeometry) *SSTF { return &SSTF{head: newHead(g)} }

func (s *SSTF) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "SSTF.Next")
	u := s.nearest(ready)
	reason := fmt.Sprintf("seek %d", distance(asTrack(u).Track, s.position))
	s.moveTo(u)
	return Decision{Unit: u, Reason: reason}
}

// Scan is the elevator algorithm: sweep to the edge, then reverse.
type Scan struct{ head }

func NewScan(g DiskGeometry) *Scan { return &Scan{head: newHead(g)} }

func (s *Scan) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "Scan.Next")
	candidates := s.ahead(ready)
	if len(candidates) == 0 {
		edge := s.geometry.High
		if s.direction < 0 {
			edge = s.geometry.Low
		}
		s.direction = -s.direction
		if s.position != edge {
			s.position = edge
			return Decision{Unit: NewHeadMarker(edge), Reason: fmt.Sprintf("reverse at edge %d", edge)}
		}
		if candidates = s.ahead(ready); len(candidates) == 0 {
			candidates = ready
		}
	}
	u := s.nearest(candidates)
	s.moveTo(u)
	return Decision{Unit: u, Reason: fmt.Sprintf("sweep %+d", s.direction)}
}

// CScan sweeps in one direction only; at the end of a sweep the head jumps to the
// opposite edge and resumes in the same direction.
type CScan struct {
	head
	wrapped bool
}

func NewCScan(g DiskGeometry) *CScan { return &CScan{head: newHead(g)} }

func (c *CScan) Next(ready []WorkUnit) Decision {
	mustNotBeEmpty(ready, "CScan.Next")
	candidates := c.ahead(ready)
	if len(candidates) == 0 {
		if c.wrapped {
			// Only reachable with requests outside the disk geometry.
			candidates = ready
		} else {
			edge := c.geometry.Low
			if c.direction < 0 {
				edge = c.geometry.High
			}
			c.position = edge
			c.wrapped = true
			return Decision{Unit: NewHeadMarker(edge), Reason: fmt.Sprintf("wrap to edge %d", edge)}
		}
	}
	c.wrapped = false
	u := c.nearest(candidates)
	c.moveTo(u)
	return Decision{Unit: u, Reason: fmt.Sprintf("sweep %+d", c.direction)}
}

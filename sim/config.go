package sim

import (
	"errors"
	"fmt"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// Mode selects which kind of work units a run schedules.
type Mode string

const (
	ModeProcess Mode = "process"
	ModeDisk    Mode = "disk"
	// ModePage is reserved for page replacement, which is not implemented.
	ModePage Mode = "page"
)

// Modes lists every recognized mode, in CLI order.
var Modes = []Mode{ModeProcess, ModeDisk, ModePage}

var (
	ErrUnknownMode      = errors.New("unknown mode")
	ErrUnsupportedMode  = errors.New("unsupported mode")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// ParseMode maps a CLI/plan string onto a Mode. Page replacement is recognized but
// rejected with ErrUnsupportedMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeProcess, ModeDisk:
		return Mode(s), nil
	case ModePage:
		return "", fmt.Errorf("mode %q: %w", s, ErrUnsupportedMode)
	default:
		return "", fmt.Errorf("mode %q: %w", s, ErrUnknownMode)
	}
}

// Config groups everything needed to compose and run a batch of policies.
type Config struct {
	Mode       Mode
	Quantum    int64        // round-robin and multiple-queues quantum (process mode)
	Disk       DiskGeometry // disk mode only
	Algorithms []string     // catalogue keys to run; empty means all of the mode
	Workers    int          // max concurrent simulations; 0 = one per algorithm
	TraceLevel trace.TraceLevel
}

// DefaultConfig returns the defaults for mode: quantum 1, a 200-track disk, every algorithm.
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:       mode,
		Quantum:    1,
		Disk:       DefaultDiskGeometry,
		TraceLevel: trace.TraceLevelNone,
	}
}

// Validate checks mode, parameter ranges and algorithm keys.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Quantum < 1 {
		return fmt.Errorf("quantum must be >= 1, got %d: %w", c.Quantum, ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d: %w", c.Workers, ErrInvalidConfig)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q: %w", c.TraceLevel, ErrInvalidConfig)
	}
	if c.Mode == ModeDisk {
		if err := c.Disk.Validate(); err != nil {
			return err
		}
	}
	for _, key := range c.Algorithms {
		if !IsValidAlgorithm(c.Mode, key) {
			return fmt.Errorf("%s algorithm %q: %w", c.Mode, key, ErrUnknownAlgorithm)
		}
	}
	return nil
}

// ValidateUnitsForMode runs ValidateUnits and additionally checks that every unit has
// the kind the mode schedules and, for disk mode, lies on the disk.
func (c Config) ValidateUnitsForMode(units []WorkUnit) error {
	if err := ValidateUnits(units); err != nil {
		return err
	}
	for _, u := range units {
		switch c.Mode {
		case ModeProcess:
			if _, ok := u.(*Process); !ok {
				return fmt.Errorf("unit %q is %T, process mode needs processes: %w", u.Name(), u, ErrInvalidUnit)
			}
		case ModeDisk:
			t, ok := u.(*TrackRequest)
			if !ok {
				return fmt.Errorf("unit %q is %T, disk mode needs track requests: %w", u.Name(), u, ErrInvalidUnit)
			}
			if !c.Disk.Contains(t.Track) {
				return fmt.Errorf("track request %q at %d outside [%d, %d]: %w", t.ID, t.Track, c.Disk.Low, c.Disk.High, ErrInvalidUnit)
			}
		}
	}
	return nil
}

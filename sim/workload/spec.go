package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim"
)

// GeneratorSpec describes a synthetic workload: how many units, how they arrive,
// and how their attributes are drawn. Loadable from YAML.
type GeneratorSpec struct {
	Mode     string      `yaml:"mode"`
	Seed     int64       `yaml:"seed"`
	Count    int         `yaml:"count"`
	Arrival  ArrivalSpec `yaml:"arrival"`
	CPUTime  DistSpec    `yaml:"cpu_time,omitempty"` // process mode
	Priority RangeSpec   `yaml:"priority,omitempty"` // process mode, inclusive
	Tracks   RangeSpec   `yaml:"tracks,omitempty"`   // disk mode, inclusive
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string   `yaml:"process"` // poisson, gamma, weibull or constant
	Rate    float64  `yaml:"rate"`    // mean arrivals per tick
	CV      *float64 `yaml:"cv,omitempty"`
}

// DistSpec parameterizes a cpu time distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// RangeSpec is an inclusive integer range sampled uniformly.
type RangeSpec struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

var validArrivalProcesses = map[string]bool{
	"poisson": true, "gamma": true, "weibull": true, "constant": true,
}

// DefaultGeneratorSpec returns a small workload for mode: ten units, seed 42, Poisson
// arrivals, exponential cpu times with mean 4, priorities 0-4, tracks across a
// 200-track disk.
func DefaultGeneratorSpec(mode sim.Mode) *GeneratorSpec {
	spec := &GeneratorSpec{
		Mode:    string(mode),
		Seed:    42,
		Count:   10,
		Arrival: ArrivalSpec{Process: "poisson", Rate: 0.5},
	}
	switch mode {
	case sim.ModeProcess:
		spec.CPUTime = DistSpec{Type: "exponential", Params: map[string]float64{"mean": 4}}
		spec.Priority = RangeSpec{Min: 0, Max: 4}
	case sim.ModeDisk:
		spec.Arrival.Rate = 1
		spec.Tracks = RangeSpec{Min: sim.DefaultDiskGeometry.Low, Max: sim.DefaultDiskGeometry.High}
	}
	return spec
}

// LoadGeneratorSpec reads and parses a YAML generator spec.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Validate checks the spec for the fields its mode uses.
func (s *GeneratorSpec) Validate() error {
	mode, err := sim.ParseMode(s.Mode)
	if err != nil {
		return err
	}
	if s.Count < 1 {
		return fmt.Errorf("count must be >= 1, got %d: %w", s.Count, sim.ErrInvalidConfig)
	}
	if !validArrivalProcesses[s.Arrival.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, gamma, weibull, constant: %w", s.Arrival.Process, sim.ErrInvalidConfig)
	}
	if err := validateFinitePositive("arrival.rate", s.Arrival.Rate); err != nil {
		return err
	}
	if s.Arrival.CV != nil {
		if err := validateFinitePositive("arrival.cv", *s.Arrival.CV); err != nil {
			return err
		}
	}
	switch mode {
	case sim.ModeProcess:
		if _, err := NewLengthSampler(s.CPUTime); err != nil {
			return fmt.Errorf("cpu_time: %w", err)
		}
		return validateRange("priority", s.Priority)
	case sim.ModeDisk:
		return validateRange("tracks", s.Tracks)
	}
	return nil
}

func validateRange(name string, r RangeSpec) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%s range must satisfy 0 <= min <= max, got [%d, %d]: %w", name, r.Min, r.Max, sim.ErrInvalidConfig)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f: %w", name, val, sim.ErrInvalidConfig)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f: %w", name, val, sim.ErrInvalidConfig)
	}
	return nil
}

package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// Plan holds batch configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and do not override the Config they are applied to.
// String fields use empty string for "not set".
type Plan struct {
	Mode       string    `yaml:"mode,omitempty"`
	Quantum    *int64    `yaml:"quantum,omitempty"`
	Algorithms []string  `yaml:"algorithms,omitempty"`
	Disk       *DiskPlan `yaml:"disk,omitempty"`
	Workers    *int      `yaml:"workers,omitempty"`
	Trace      string    `yaml:"trace,omitempty"`
}

// DiskPlan holds optional disk geometry overrides.
type DiskPlan struct {
	Low       *int64 `yaml:"low,omitempty"`
	High      *int64 `yaml:"high,omitempty"`
	Head      *int64 `yaml:"head,omitempty"`
	Direction *int   `yaml:"direction,omitempty"`
}

// LoadPlan reads and parses a YAML plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	// Strict parsing: a misspelled key is an error, not a silently ignored setting.
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	return &plan, nil
}

// Apply overlays the fields set in the plan onto cfg.
func (p *Plan) Apply(cfg *Config) error {
	if p.Mode != "" {
		mode, err := ParseMode(p.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if p.Quantum != nil {
		cfg.Quantum = *p.Quantum
	}
	if len(p.Algorithms) > 0 {
		cfg.Algorithms = append([]string(nil), p.Algorithms...)
	}
	if p.Workers != nil {
		cfg.Workers = *p.Workers
	}
	if p.Trace != "" {
		cfg.TraceLevel = trace.TraceLevel(p.Trace)
	}
	if d := p.Disk; d != nil {
		if d.Low != nil {
			cfg.Disk.Low = *d.Low
		}
		if d.High != nil {
			cfg.Disk.High = *d.High
		}
		if d.Head != nil {
			cfg.Disk.Head = *d.Head
		}
		if d.Direction != nil {
			cfg.Disk.Direction = *d.Direction
		}
	}
	return nil
}

// PlanFromConfig renders the effective configuration as a fully populated plan.
func PlanFromConfig(cfg Config) *Plan {
	quantum, workers := cfg.Quantum, cfg.Workers
	plan := &Plan{
		Mode:       string(cfg.Mode),
		Quantum:    &quantum,
		Algorithms: cfg.Algorithms,
		Workers:    &workers,
		Trace:      string(cfg.TraceLevel),
	}
	if len(plan.Algorithms) == 0 {
		for _, a := range Algorithms(cfg.Mode) {
			plan.Algorithms = append(plan.Algorithms, a.Key)
		}
	}
	if cfg.Mode == ModeDisk {
		g := cfg.Disk
		plan.Disk = &DiskPlan{Low: &g.Low, High: &g.High, Head: &g.Head, Direction: &g.Direction}
	}
	return plan
}

// Marshal encodes the plan as YAML.
func (p *Plan) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

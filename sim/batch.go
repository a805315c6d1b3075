// batch.go
//
// Runs every composed policy over its own copy of the workload. Runs share nothing,
// so they execute concurrently; results come back in catalogue order.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// Result is the outcome of one policy over one workload copy.
// Exactly one of Report and TrackReport is set, depending on the mode.
type Result struct {
	Key         string
	Name        string
	Mode        Mode
	Report      *Report
	TrackReport *TrackReport
	Trace       *trace.SimulationTrace // nil unless tracing is enabled
}

// RunBatch composes the policies for cfg and simulates each over a deep copy of units.
// Invalid configuration or input is reported before any simulation runs.
func RunBatch(cfg Config, units []WorkUnit) ([]Result, error) {
	entries, err := Compose(cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateUnitsForMode(units); err != nil {
		return nil, err
	}

	results := make([]Result, len(entries))
	var g errgroup.Group
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			res, err := runEntry(cfg, e, CloneUnits(units))
			if err != nil {
				return fmt.Errorf("%s: %w", e.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runEntry(cfg Config, e Entry, units []WorkUnit) (Result, error) {
	logrus.Infof("Running %s over %d %s units", e.Name, len(units), cfg.Mode)
	res := Result{Key: e.Key, Name: e.Name, Mode: cfg.Mode}
	tc := trace.TraceConfig{Level: cfg.TraceLevel}
	if tc.Enabled() {
		res.Trace = trace.NewSimulationTrace(tc)
	}

	var err error
	switch cfg.Mode {
	case ModeProcess:
		res.Report, err = Simulate(e.Policy, units, res.Trace)
	case ModeDisk:
		dp, ok := e.Policy.(DiskPolicy)
		if !ok {
			return res, fmt.Errorf("policy %T is not a disk policy: %w", e.Policy, ErrInvalidConfig)
		}
		res.TrackReport, err = SimulateDisk(dp, units, res.Trace)
	default:
		err = fmt.Errorf("mode %q: %w", cfg.Mode, ErrUnsupportedMode)
	}
	if err != nil {
		return res, err
	}
	logrus.Infof("Finished %s", e.Name)
	return res, nil
}

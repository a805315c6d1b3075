package workload

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/sched-sim/sched-sim/sim"
)

// Generate creates a unit sequence from a GeneratorSpec.
// Deterministic given the same spec and seed.
// Returns units in arrival order with sequential names (P1, P2, ... or R1, R2, ...);
// the first unit arrives at tick 0.
func Generate(spec *GeneratorSpec) ([]sim.WorkUnit, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	mode := sim.Mode(spec.Mode)

	// Create partitioned RNG for deterministic generation
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	arrivals := NewArrivalSampler(spec.Arrival)

	var cpu LengthSampler
	if mode == sim.ModeProcess {
		var err error
		if cpu, err = NewLengthSampler(spec.CPUTime); err != nil {
			return nil, err
		}
	}

	units := make([]sim.WorkUnit, 0, spec.Count)
	now := int64(0)
	for i := 0; i < spec.Count; i++ {
		if i > 0 {
			now += arrivals.SampleIAT(rng.ForSubsystem(sim.SubsystemArrivals))
		}
		switch mode {
		case sim.ModeProcess:
			priority := uniformIn(rng.ForSubsystem(sim.SubsystemPriority), spec.Priority)
			units = append(units, sim.NewProcess(
				fmt.Sprintf("P%d", i+1), now, cpu.Sample(rng.ForSubsystem(sim.SubsystemService)), int(priority)))
		case sim.ModeDisk:
			track := uniformIn(rng.ForSubsystem(sim.SubsystemTracks), spec.Tracks)
			units = append(units, sim.NewTrackRequest(fmt.Sprintf("R%d", i+1), now, track))
		}
	}
	logrus.Infof("Generated %d %s units, last arrival at tick %d (seed %d)", len(units), mode, now, spec.Seed)
	return units, nil
}

func uniformIn(rng *rand.Rand, r RangeSpec) int64 {
	return r.Min + rng.Int63n(r.Max-r.Min+1)
}

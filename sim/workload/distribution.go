package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sched-sim/sched-sim/sim"
)

// LengthSampler generates cpu time samples.
type LengthSampler interface {
	// Sample returns a positive tick count (>= 1).
	Sample(rng *rand.Rand) int64
}

// GaussianSampler produces clamped Gaussian lengths.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return max(1, s.min)
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	return max(1, int64(math.Round(clamped)))
}

// ExponentialSampler produces exponentially-distributed lengths.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	return max(1, int64(math.Round(rng.ExpFloat64()*s.mean)))
}

// UniformSampler draws evenly from [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	return max(1, s.min+rng.Int63n(s.max-s.min+1))
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return max(1, s.value)
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		v, ok := params[k]
		if !ok {
			return fmt.Errorf("distribution requires parameter %q: %w", k, sim.ErrInvalidConfig)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter %q must be a finite number, got %f: %w", k, v, sim.ErrInvalidConfig)
		}
	}
	return nil
}

// NewLengthSampler creates a LengthSampler from a DistSpec.
func NewLengthSampler(spec DistSpec) (LengthSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		s := &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    int64(spec.Params["min"]),
			max:    int64(spec.Params["max"]),
		}
		if s.max < s.min {
			return nil, fmt.Errorf("gaussian max %d below min %d: %w", s.max, s.min, sim.ErrInvalidConfig)
		}
		return s, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		s := &UniformSampler{min: int64(spec.Params["min"]), max: int64(spec.Params["max"])}
		if s.max < s.min {
			return nil, fmt.Errorf("uniform max %d below min %d: %w", s.max, s.min, sim.ErrInvalidConfig)
		}
		return s, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int64(spec.Params["value"])}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q; valid: gaussian, exponential, uniform, constant: %w", spec.Type, sim.ErrInvalidConfig)
	}
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-sim/sched-sim/sim/internal/testutil"
)

func goldenUnits(tc testutil.GoldenTestCase) []WorkUnit {
	var us []WorkUnit
	for _, gp := range tc.Processes {
		us = append(us, NewProcess(gp.Name, gp.Arrival, gp.CPU, gp.Priority))
	}
	for _, gt := range tc.Tracks {
		us = append(us, NewTrackRequest(gt.Name, gt.Arrival, gt.Track))
	}
	return us
}

func goldenConfig(tc testutil.GoldenTestCase) Config {
	cfg := DefaultConfig(Mode(tc.Mode))
	if tc.Quantum > 0 {
		cfg.Quantum = tc.Quantum
	}
	if cfg.Mode == ModeDisk {
		cfg.Disk = DiskGeometry{Low: tc.Disk.Low, High: tc.Disk.High, Head: tc.Disk.Head, Direction: tc.Disk.Direction}
	}
	return cfg
}

// TestRunBatch_GoldenDataset checks every algorithm against hand-computed schedules.
func TestRunBatch_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			results, err := RunBatch(goldenConfig(tc), goldenUnits(tc))
			require.NoError(t, err)

			seen := 0
			for _, res := range results {
				want, ok := tc.Expected[res.Name]
				if !ok {
					continue
				}
				seen++
				switch res.Mode {
				case ModeProcess:
					assert.Equal(t, want.Timeline, timelineString(res.Report.Timeline), res.Name)
					if want.AvgTurnaround != nil {
						testutil.AssertFloat64Equal(t, res.Name+" avg turnaround", *want.AvgTurnaround, res.Report.AvgTurnaround, 1e-9)
					}
					if want.AvgWait != nil {
						testutil.AssertFloat64Equal(t, res.Name+" avg wait", *want.AvgWait, res.Report.AvgWait, 1e-9)
					}
				case ModeDisk:
					assert.Equal(t, want.Tracks, res.TrackReport.Tracks, res.Name)
					assert.Equal(t, want.HeadMovement, res.TrackReport.HeadMovement, res.Name)
				}
			}
			assert.Equal(t, len(tc.Expected), seen, "every expectation must match an algorithm")
		})
	}
}

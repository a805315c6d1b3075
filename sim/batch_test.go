package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-sim/sched-sim/sim/trace"
)

func TestRunBatch_ProcessMode_AllAlgorithmsInOrder(t *testing.T) {
	// GIVEN the default process configuration limited to two workers
	cfg := DefaultConfig(ModeProcess)
	cfg.Workers = 2
	us := fourProcesses()

	// WHEN every algorithm runs
	results, err := RunBatch(cfg, us)
	require.NoError(t, err)

	// THEN results follow the catalogue and each has a process report
	catalogue := Algorithms(ModeProcess)
	require.Len(t, results, len(catalogue))
	for i, res := range results {
		assert.Equal(t, catalogue[i].Name, res.Name)
		assert.Equal(t, ModeProcess, res.Mode)
		require.NotNil(t, res.Report, res.Name)
		assert.Nil(t, res.TrackReport)
		assert.Nil(t, res.Trace, "tracing is off by default")
		assert.Len(t, res.Report.Timeline, 11)
	}
}

func TestRunBatch_LeavesInputUntouched(t *testing.T) {
	us := fourProcesses()

	_, err := RunBatch(DefaultConfig(ModeProcess), us)
	require.NoError(t, err)

	for _, u := range us {
		pr := u.(*Process)
		assert.Equal(t, pr.CPUTime, pr.Remaining, pr.ID)
	}
	assert.Equal(t, 2, us[0].(*Process).Priority, "feedback demotion must not leak into the input")
}

func TestRunBatch_MatchesIndividualRuns(t *testing.T) {
	results, err := RunBatch(DefaultConfig(ModeProcess), fourProcesses())
	require.NoError(t, err)

	alone := timelineString(runPolicy(NewRoundRobin(1), fourProcesses()))
	for _, res := range results {
		if res.Key == "rr" {
			assert.Equal(t, alone, timelineString(res.Report.Timeline))
		}
	}
}

func TestRunBatch_DiskMode(t *testing.T) {
	cfg := DefaultConfig(ModeDisk)
	cfg.Disk.Head = 50
	cfg.TraceLevel = trace.TraceLevelDecisions

	results, err := RunBatch(cfg, units(tr("R1", 0, 10), tr("R2", 0, 90)))
	require.NoError(t, err)

	require.Len(t, results, 4)
	for _, res := range results {
		require.NotNil(t, res.TrackReport, res.Name)
		assert.Nil(t, res.Report)
		assert.Equal(t, int64(50), res.TrackReport.Tracks[0])
		require.NotNil(t, res.Trace)
		assert.NotEmpty(t, res.Trace.Dispatches)
	}
	assert.Equal(t, int64(338), results[2].TrackReport.HeadMovement)
}

func TestRunBatch_InvalidInput_NoResults(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		units   []WorkUnit
		wantErr error
	}{
		{"empty", DefaultConfig(ModeProcess), nil, ErrEmptyWorkload},
		{"wrong kind", DefaultConfig(ModeDisk), units(p("A", 0, 1, 0)), ErrInvalidUnit},
		{"off the disk", DefaultConfig(ModeDisk), units(tr("r", 0, 500)), ErrInvalidUnit},
		{"page mode", Config{Mode: ModePage, Quantum: 1}, units(p("A", 0, 1, 0)), ErrUnsupportedMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := RunBatch(tt.cfg, tt.units)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, results)
		})
	}
}

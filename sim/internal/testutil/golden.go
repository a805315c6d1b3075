// Package testutil provides shared test infrastructure for the scheduling simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one workload plus the expected outcome of each algorithm,
// keyed by the algorithm's output name.
type GoldenTestCase struct {
	Name      string                    `json:"name"`
	Mode      string                    `json:"mode"`
	Quantum   int64                     `json:"quantum"`
	Disk      GoldenDisk                `json:"disk"`
	Processes []GoldenProcess           `json:"processes"`
	Tracks    []GoldenTrack             `json:"tracks"`
	Expected  map[string]GoldenExpected `json:"expected"`
}

type GoldenDisk struct {
	Low       int64 `json:"low"`
	High      int64 `json:"high"`
	Head      int64 `json:"head"`
	Direction int   `json:"direction"`
}

type GoldenProcess struct {
	Name     string `json:"name"`
	Arrival  int64  `json:"arrival"`
	CPU      int64  `json:"cpu"`
	Priority int    `json:"priority"`
}

type GoldenTrack struct {
	Name    string `json:"name"`
	Arrival int64  `json:"arrival"`
	Track   int64  `json:"track"`
}

// GoldenExpected holds the expectation for one algorithm. Process cases use Timeline
// (one character per tick, single-letter unit names); disk cases use Tracks.
type GoldenExpected struct {
	Timeline      string   `json:"timeline"`
	AvgTurnaround *float64 `json:"avg_turnaround"`
	AvgWait       *float64 `json:"avg_wait"`
	Tracks        []int64  `json:"tracks"`
	HeadMovement  int64    `json:"head_movement"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

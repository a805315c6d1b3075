// Package workload is the input side of the simulator: it turns CSV records into
// sim.WorkUnit values for a given mode, and synthesizes seeded random workloads
// (see Generate) that can be written back in the same format.
//
// Record formats, one unit per line, '#' starts a comment:
//
//	process: name, arrival time, cpu time[, priority]
//	disk:    name, arrival time, track number
package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sched-sim/sched-sim/sim"
)

// ErrMalformedRecord is wrapped by every per-row parse failure.
var ErrMalformedRecord = errors.New("malformed record")

// ReadUnits opens path and parses it for mode.
func ReadUnits(mode sim.Mode, path string) ([]sim.WorkUnit, error) {
	if path == "" {
		return nil, fmt.Errorf("input path must not be empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	units, err := ParseUnits(mode, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return units, nil
}

// ParseUnits reads every record from r and builds units for mode.
func ParseUnits(mode sim.Mode, r io.Reader) ([]sim.WorkUnit, error) {
	var parse func(record []string) (sim.WorkUnit, error)
	switch mode {
	case sim.ModeProcess:
		parse = parseProcess
	case sim.ModeDisk:
		parse = parseTrack
	default:
		if _, err := sim.ParseMode(string(mode)); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("mode %q: %w", mode, sim.ErrUnsupportedMode)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var units []sim.WorkUnit
	for rowIdx := 0; ; rowIdx++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx, err)
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		u, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx, err)
		}
		units = append(units, u)
	}
	return units, nil
}

func parseInt(field, value string) (int64, error) {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, ErrMalformedRecord)
	}
	return v, nil
}

func parseProcess(record []string) (sim.WorkUnit, error) {
	if len(record) != 3 && len(record) != 4 {
		return nil, fmt.Errorf("process record needs 3 or 4 fields, got %d: %w", len(record), ErrMalformedRecord)
	}
	arrival, err := parseInt("arrival time", record[1])
	if err != nil {
		return nil, err
	}
	cpu, err := parseInt("cpu time", record[2])
	if err != nil {
		return nil, err
	}
	var priority int64
	if len(record) == 4 {
		if priority, err = parseInt("priority", record[3]); err != nil {
			return nil, err
		}
	}
	return sim.NewProcess(record[0], arrival, cpu, int(priority)), nil
}

func parseTrack(record []string) (sim.WorkUnit, error) {
	if len(record) != 3 {
		return nil, fmt.Errorf("disk record needs 3 fields, got %d: %w", len(record), ErrMalformedRecord)
	}
	arrival, err := parseInt("arrival time", record[1])
	if err != nil {
		return nil, err
	}
	track, err := parseInt("track number", record[2])
	if err != nil {
		return nil, err
	}
	return sim.NewTrackRequest(record[0], arrival, track), nil
}

// WriteUnits writes units as CSV records in the format ParseUnits reads.
func WriteUnits(w io.Writer, units []sim.WorkUnit) error {
	cw := csv.NewWriter(w)
	for _, u := range units {
		var record []string
		switch v := u.(type) {
		case *sim.Process:
			record = []string{v.ID, strconv.FormatInt(v.Arrival, 10), strconv.FormatInt(v.CPUTime, 10), strconv.Itoa(v.Priority)}
		case *sim.TrackRequest:
			record = []string{v.ID, strconv.FormatInt(v.Arrival, 10), strconv.FormatInt(v.Track, 10)}
		default:
			return fmt.Errorf("cannot write unit %T: %w", u, sim.ErrInvalidUnit)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing %s: %w", u.Name(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

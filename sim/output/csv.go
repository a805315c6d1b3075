// Package output is the writing side of the simulator: it serializes finished reports
// as CSV files and renders them as console tables.
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sched-sim/sched-sim/sim"
)

const averagePlaceholder = "_"

// WriteReportCSV writes one column per interval ("start-end(length)") followed by
// turnaround and wait time, one row per unit and a trailing averages row.
func WriteReportCSV(w io.Writer, r *sim.Report) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(r.Intervals)+3)
	header = append(header, "unit")
	for _, iv := range r.Intervals {
		header = append(header, iv.Label())
	}
	header = append(header, "turnaround time", "wait time")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range r.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Name)
		for _, member := range row.Membership {
			if member {
				record = append(record, "1")
			} else {
				record = append(record, "0")
			}
		}
		record = append(record, strconv.FormatInt(row.Turnaround, 10), strconv.FormatInt(row.Wait, 10))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %s: %w", row.Name, err)
		}
	}

	averages := make([]string, 0, len(header))
	averages = append(averages, "averages")
	for range r.Intervals {
		averages = append(averages, averagePlaceholder)
	}
	averages = append(averages, fmt.Sprintf("%.2f", r.AvgTurnaround), fmt.Sprintf("%.2f", r.AvgWait))
	if err := cw.Write(averages); err != nil {
		return fmt.Errorf("writing averages: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteTrackCSV writes the visited tracks, initial head position first, followed by
// the total head movement.
func WriteTrackCSV(w io.Writer, r *sim.TrackReport) error {
	cw := csv.NewWriter(w)
	record := make([]string, 0, len(r.Tracks)+1)
	for _, t := range r.Tracks {
		record = append(record, strconv.FormatInt(t, 10))
	}
	record = append(record, fmt.Sprintf("head movements: %d", r.HeadMovement))
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("writing tracks: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteResult writes whichever report the result carries.
func WriteResult(w io.Writer, res sim.Result) error {
	switch {
	case res.Report != nil:
		return WriteReportCSV(w, res.Report)
	case res.TrackReport != nil:
		return WriteTrackCSV(w, res.TrackReport)
	default:
		return fmt.Errorf("result %s has no report", res.Name)
	}
}

// SaveResults writes <dir>/<Name>.csv for each result and returns the written paths.
func SaveResults(dir string, results []sim.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	paths := make([]string, 0, len(results))
	for _, res := range results {
		path := filepath.Join(dir, res.Name+".csv")
		if err := saveResult(path, res); err != nil {
			return paths, err
		}
		logrus.Debugf("Successfully wrote to '%s'", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func saveResult(path string, res sim.Result) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if err := WriteResult(writer, res); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

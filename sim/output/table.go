package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sched-sim/sched-sim/sim"
	"github.com/sched-sim/sched-sim/sim/trace"
)

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// outputGantt prints one cell per interval with the tick boundaries underneath.
func outputGantt(w io.Writer, intervals []sim.Interval) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, iv := range intervals {
		name := iv.Unit
		if iv.Idle() {
			name = "-"
		}
		padding := strings.Repeat(" ", max(0, (8-len(name))/2))
		_, _ = fmt.Fprint(w, padding, name, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, iv := range intervals {
		_, _ = fmt.Fprint(w, iv.Start, "\t")
		if i == len(intervals)-1 {
			_, _ = fmt.Fprint(w, iv.End+1)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// RenderReport prints a Gantt line and the per-unit statistics table.
func RenderReport(w io.Writer, title string, r *sim.Report) {
	outputTitle(w, title)
	outputGantt(w, r.Intervals)

	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []string{
			row.Name,
			fmt.Sprint(row.Arrival),
			fmt.Sprint(row.Burst),
			fmt.Sprint(row.Response),
			fmt.Sprint(row.Wait),
			fmt.Sprint(row.Turnaround),
			fmt.Sprint(row.Completion),
		})
	}
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Unit", "Arrival", "Burst", "Response", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "",
		fmt.Sprintf("Average\n%.2f", r.AvgResponse),
		fmt.Sprintf("Average\n%.2f", r.AvgWait),
		fmt.Sprintf("Average\n%.2f", r.AvgTurnaround),
		""})
	table.Render()
}

// RenderTrackReport prints the head path with the distance of each move.
func RenderTrackReport(w io.Writer, title string, r *sim.TrackReport) {
	outputTitle(w, title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Step", "Unit", "Track", "Seek"})
	for i, t := range r.Tracks {
		seek := int64(0)
		if i > 0 {
			seek = t - r.Tracks[i-1]
			if seek < 0 {
				seek = -seek
			}
		}
		table.Append([]string{fmt.Sprint(i), r.Names[i], fmt.Sprint(t), fmt.Sprint(seek)})
	}
	table.SetFooter([]string{"", "", "Total", fmt.Sprint(r.HeadMovement)})
	table.Render()
}

// RenderTraceSummary prints the aggregate decision statistics of one run.
func RenderTraceSummary(w io.Writer, title string, s *trace.TraceSummary) {
	_, _ = fmt.Fprintf(w, "Decision trace: %s\n", title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Ticks", fmt.Sprint(s.TotalTicks)},
		{"Busy ticks", fmt.Sprint(s.BusyTicks)},
		{"Idle ticks", fmt.Sprint(s.IdleTicks)},
		{"Context switches", fmt.Sprint(s.ContextSwitches)},
		{"Requeues", fmt.Sprint(s.Requeues)},
		{"Utilization", fmt.Sprintf("%.2f", s.Utilization)},
	})
	units := make([]string, 0, len(s.DispatchCounts))
	for u := range s.DispatchCounts {
		units = append(units, u)
	}
	sort.Strings(units)
	for _, u := range units {
		table.Append([]string{"Dispatches " + u, fmt.Sprint(s.DispatchCounts[u])})
	}
	table.Render()
}

// RenderResult renders whichever report the result carries.
func RenderResult(w io.Writer, res sim.Result) {
	switch {
	case res.Report != nil:
		RenderReport(w, res.Name, res.Report)
	case res.TrackReport != nil:
		RenderTrackReport(w, res.Name, res.TrackReport)
	}
	if res.Trace != nil {
		RenderTraceSummary(w, res.Name, trace.Summarize(res.Trace))
	}
	_, _ = fmt.Fprintln(w)
}

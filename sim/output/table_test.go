package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sched-sim/sched-sim/sim"
	"github.com/sched-sim/sched-sim/sim/trace"
)

func TestRenderReport_ContainsGanttAndRows(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, "FirstComeFirstServed", fcfsReport(t))

	out := buf.String()
	assert.Contains(t, out, "FirstComeFirstServed")
	assert.Contains(t, out, "Gantt schedule")
	assert.Contains(t, out, "|   A   |")
	assert.Contains(t, out, "|   -   |", "idle interval is drawn as a dash")
	assert.Contains(t, out, "1.50")
}

func TestRenderTrackReport_ListsEveryPosition(t *testing.T) {
	var buf bytes.Buffer
	RenderTrackReport(&buf, "Scan", diskReport(t))

	out := buf.String()
	for _, s := range []string{"R1", "R2", sim.HeadMarkerName, "199", "338"} {
		assert.Contains(t, out, s)
	}
}

func TestRenderResult_WithTrace(t *testing.T) {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	st.RecordDispatch(trace.DispatchRecord{Clock: 0, Unit: "A"})
	st.TotalTicks = 1

	var buf bytes.Buffer
	RenderResult(&buf, sim.Result{Name: "FirstComeFirstServed", Report: fcfsReport(t), Trace: st})

	out := buf.String()
	assert.Contains(t, out, "Decision trace: FirstComeFirstServed")
	assert.Contains(t, out, "Dispatches A")
}

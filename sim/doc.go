// Package sim provides the tick-driven scheduling engine for sched-sim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - unit.go: WorkUnit and its two kinds, Process (CPU burst) and TrackRequest (disk read)
//   - policy.go: the Policy interface and the Decision a policy returns each tick
//   - simulator.go: the tick loop (admit arrivals, ask the policy, advance, requeue or retire)
//
// # Architecture
//
// The sim package owns the engine, every policy and the report builders; helpers
// live in sub-packages:
//   - sim/workload/: CSV input parsing into work units
//   - sim/output/: CSV files and terminal tables for results
//   - sim/trace/: Decision trace recording
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Policy: pick the unit for the next tick, optionally asking for a requeue
//   - DiskPolicy: a Policy that also reports the initial and current head position
//   - WorkUnit: anything with an arrival time that can be advanced one tick
//
// New algorithms are added to the catalogue in registry.go.
package sim

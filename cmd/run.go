package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sched-sim/sched-sim/sim"
	"github.com/sched-sim/sched-sim/sim/output"
	"github.com/sched-sim/sched-sim/sim/trace"
	"github.com/sched-sim/sched-sim/sim/workload"
)

const runUsage = `first argument must be the path to the csv file containing scheduling units
second argument must be one of: process, disk, page
process mode: an optional third argument sets the round robin time quantum (default 1)
disk mode: optionally pass "low high initialHead initialDirection" (default 0 199 0 1)
each line of the input file is one scheduling unit:
  process scheduling: name, arrival time, cpu burst time, priority (lower is better)
  disk scheduling:    name, arrival time, track number`

var (
	planPath   string // Path to a YAML plan overriding defaults
	outDir     string // Directory for CSV results; defaults to the input file's directory
	format     string // csv, table or both
	traceLevel string // Decision trace level
	workers    int    // Max concurrent simulations
	logLevel   string // Log verbosity level
)

// errUsage marks positional-argument problems that print usage instead of failing.
var errUsage = errors.New("invalid arguments")

// runArgs is the parsed positional surface of the run command.
type runArgs struct {
	inputPath string
	mode      sim.Mode
	quantum   *int64
	disk      *sim.DiskGeometry
}

// parseRunArgs parses `<input-path> <mode> [quantum | low high initialHead initialDirection]`.
// Wrong argument counts and malformed numbers wrap errUsage. Modes other than process and
// disk are passed through so that buildConfig rejects them before any simulation.
func parseRunArgs(args []string) (runArgs, error) {
	if len(args) < 2 || args[0] == "" {
		return runArgs{}, fmt.Errorf("need an input path and a mode: %w", errUsage)
	}
	ra := runArgs{inputPath: args[0], mode: sim.Mode(args[1])}
	extra := args[2:]

	switch ra.mode {
	case sim.ModeProcess:
		if len(extra) > 1 {
			return runArgs{}, fmt.Errorf("process mode takes at most one quantum: %w", errUsage)
		}
		if len(extra) == 1 {
			q, err := strconv.ParseInt(extra[0], 10, 64)
			if err != nil {
				return runArgs{}, fmt.Errorf("quantum %q: %w", extra[0], errUsage)
			}
			ra.quantum = &q
		}
	case sim.ModeDisk:
		if len(extra) != 0 && len(extra) != 4 {
			return runArgs{}, fmt.Errorf("disk mode takes low high initialHead initialDirection: %w", errUsage)
		}
		if len(extra) == 4 {
			nums := make([]int64, 4)
			for i, s := range extra {
				n, err := strconv.ParseInt(s, 10, 64)
				if err != nil {
					return runArgs{}, fmt.Errorf("disk argument %q: %w", s, errUsage)
				}
				nums[i] = n
			}
			ra.disk = &sim.DiskGeometry{Low: nums[0], High: nums[1], Head: nums[2], Direction: int(nums[3])}
		}
	default:
		if len(extra) != 0 {
			return runArgs{}, fmt.Errorf("mode %q takes no extra arguments: %w", args[1], errUsage)
		}
	}
	return ra, nil
}

// runOptions carries the flag values, already resolved through viper.
type runOptions struct {
	planPath   string
	outDir     string
	format     string
	traceLevel string
	workers    int
}

// buildConfig layers defaults, the plan file, positional arguments and flags.
func buildConfig(ra runArgs, opts runOptions) (sim.Config, error) {
	if _, err := sim.ParseMode(string(ra.mode)); err != nil {
		return sim.Config{}, err
	}
	cfg := sim.DefaultConfig(ra.mode)
	if opts.planPath != "" {
		plan, err := sim.LoadPlan(opts.planPath)
		if err != nil {
			return sim.Config{}, err
		}
		if plan.Mode != "" && sim.Mode(plan.Mode) != ra.mode {
			return sim.Config{}, fmt.Errorf("plan mode %q conflicts with %q: %w", plan.Mode, ra.mode, sim.ErrInvalidConfig)
		}
		if err := plan.Apply(&cfg); err != nil {
			return sim.Config{}, err
		}
	}
	if ra.quantum != nil {
		cfg.Quantum = *ra.quantum
	}
	if ra.disk != nil {
		cfg.Disk = *ra.disk
	}
	if opts.workers != 0 {
		cfg.Workers = opts.workers
	}
	if opts.traceLevel != "" {
		cfg.TraceLevel = trace.TraceLevel(opts.traceLevel)
	}
	return cfg, cfg.Validate()
}

// runSimulation reads the input, runs every algorithm and emits the results.
// Returns the directory results were saved to ("" when only tables were rendered).
func runSimulation(ra runArgs, opts runOptions, w io.Writer) (string, error) {
	if opts.format != "csv" && opts.format != "table" && opts.format != "both" {
		return "", fmt.Errorf("unknown format %q: %w", opts.format, sim.ErrInvalidConfig)
	}
	cfg, err := buildConfig(ra, opts)
	if err != nil {
		return "", err
	}
	units, err := workload.ReadUnits(cfg.Mode, ra.inputPath)
	if err != nil {
		return "", err
	}
	logrus.Infof("Starting %s simulation of %d units, quantum=%d, disk=%+v", cfg.Mode, len(units), cfg.Quantum, cfg.Disk)

	results, err := sim.RunBatch(cfg, units)
	if err != nil {
		return "", err
	}

	if opts.format == "table" || opts.format == "both" {
		for _, res := range results {
			output.RenderResult(w, res)
		}
	}
	if opts.format == "table" {
		return "", nil
	}

	dir := opts.outDir
	if dir == "" {
		dir = filepath.Dir(ra.inputPath)
	}
	if _, err := output.SaveResults(dir, results); err != nil {
		return "", err
	}
	return dir, nil
}

// runCmd executes the simulation using positional arguments and flags
var runCmd = &cobra.Command{
	Use:   "run <input-path> <mode> [quantum | low high initialHead initialDirection]",
	Short: "Run every scheduling algorithm of a mode over an input file",
	Long:  runUsage,
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := newViper(cmd)
		setupLogging(v.GetString("log"))

		ra, err := parseRunArgs(args)
		if err != nil {
			logrus.Debugf("usage error: %v", err)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), runUsage)
			return
		}

		opts := runOptions{
			planPath:   v.GetString("plan"),
			outDir:     v.GetString("out-dir"),
			format:     v.GetString("format"),
			traceLevel: v.GetString("trace"),
			workers:    v.GetInt("workers"),
		}
		dir, err := runSimulation(ra, opts, cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if dir != "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved scheduling data to %s\n", dir)
		}
		logrus.Info("Simulation complete.")
	},
}

func init() {
	runCmd.Flags().StringVar(&planPath, "plan", "", "Path to a YAML plan (mode, quantum, algorithms, disk, workers, trace)")
	runCmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for CSV results (default: directory of the input file)")
	runCmd.Flags().StringVar(&format, "format", "csv", "Output format: csv, table or both")
	runCmd.Flags().StringVar(&traceLevel, "trace", "", "Decision trace level: none or decisions (table output only)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Max concurrent simulations (0 = one per algorithm)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
}

package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sched-sim/sched-sim/sim"
)

var planModePath string

// writeEffectivePlan resolves defaults plus an optional plan file and prints it as YAML.
func writeEffectivePlan(w io.Writer, mode sim.Mode, path string) error {
	cfg, err := buildConfig(runArgs{mode: mode}, runOptions{planPath: path})
	if err != nil {
		return err
	}
	data, err := sim.PlanFromConfig(cfg).Marshal()
	if err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}

var planCmd = &cobra.Command{
	Use:   "plan <mode>",
	Short: "Print the effective plan (defaults merged with --plan) as YAML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeEffectivePlan(cmd.OutOrStdout(), sim.Mode(args[0]), planModePath); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	planCmd.Flags().StringVar(&planModePath, "plan", "", "Path to a YAML plan to merge over the defaults")

	rootCmd.AddCommand(planCmd)
}

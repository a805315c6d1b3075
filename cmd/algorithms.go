package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sched-sim/sched-sim/sim"
)

// writeAlgorithms lists the catalogue of each mode that has one.
func writeAlgorithms(w io.Writer, modes []sim.Mode) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Mode", "Key", "Output name"})
	for _, m := range modes {
		for _, a := range sim.Algorithms(m) {
			table.Append([]string{string(m), a.Key, a.Name})
		}
	}
	table.Render()
}

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms [mode]",
	Short: "List the scheduling algorithms available per mode",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		modes := []sim.Mode{sim.ModeProcess, sim.ModeDisk}
		if len(args) == 1 {
			m, err := sim.ParseMode(args[0])
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			modes = []sim.Mode{m}
		}
		writeAlgorithms(cmd.OutOrStdout(), modes)
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}

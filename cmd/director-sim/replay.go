package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"director-sim/internal/sim"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay an encounter log file",
	Long:  "replay feeds encounter rows from a log file back into GreptimeDB or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, cleanup, err := newWriters(nil, replayPrintOnly, false, "")
		if err != nil {
			return err
		}
		defer cleanup()
		n, err := sim.ReplayLogFile(replayInput, writer, replaySpeed)
		if err != nil {
			return err
		}
		fmt.Printf("replayed %d rows\n", n)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to encounter log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print events to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/inputbus/internal/replay"
)

func newReplayCmd(opts *globalOptions) *cobra.Command {
	var thresholdMS int64

	cmd := &cobra.Command{
		Use:     "replay FILE",
		Short:   "Replay a recorded input script and print the events it produces",
		Example: "  inputbus replay session.yaml\n  inputbus replay --threshold-ms 100 session.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			switch {
			case thresholdMS > 0:
				script.ThresholdMS = thresholdMS
			case script.ThresholdMS == 0:
				script.ThresholdMS = int64(cfg.Input.TapThresholdMS)
			}

			records, runErr := replay.Run(script, logger)
			out := cmd.OutOrStdout()
			for _, r := range records {
				if _, err := fmt.Fprintln(out, r); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().Int64Var(&thresholdMS, "threshold-ms", 0, "Override the script's tap threshold")
	return cmd
}

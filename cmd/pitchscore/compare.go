package main

import (
	"os"
	"os/signal"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/batch"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <folder>",
	Short: "Score a folder under two prompt versions and show the differences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		baselineVersion, _ := cmd.Flags().GetString("baseline")
		candidateVersion, _ := cmd.Flags().GetString("candidate")

		baseline, err := newPipeline(ctx, config, log, baselineVersion)
		if err != nil {
			return err
		}
		candidate, err := newPipeline(ctx, config, log, candidateVersion)
		if err != nil {
			return err
		}

		rows, err := batch.Compare(ctx, baseline, candidate, args[0], batch.Options{Workers: config.Workers, Logger: log})
		if rows != nil {
			if werr := writeComparison(cmd.OutOrStdout(), baseline.PromptVersion(), candidate.PromptVersion(), rows); werr != nil {
				return werr
			}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("baseline", "v2", "prompt version used as the baseline")
	compareCmd.Flags().String("candidate", "astella", "prompt version compared against the baseline")
}

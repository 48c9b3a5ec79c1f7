package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/batch"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch <folder>",
	Short: "Evaluate every PDF in a folder and print a ranked summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		p, err := newPipeline(ctx, config, log, "")
		if err != nil {
			return err
		}

		opts := batch.Options{Workers: config.Workers, Logger: log}
		if !config.NoSave {
			results := repository.NewResultFileRepository(config.OutputDir)
			opts.OnResult = func(o batch.Outcome) {
				if o.Failed() {
					return
				}
				if _, err := results.Save(o.Record); err != nil {
					log.Warn("could not save result file", zap.String("document", o.Document), zap.Error(err))
				}
			}
		}

		summary, err := batch.Run(ctx, p, args[0], opts)
		if summary != nil {
			if werr := writeSummary(cmd.OutOrStdout(), summary); werr != nil {
				return werr
			}
		}
		if err != nil {
			return err
		}
		if summary.Succeeded == 0 {
			return fmt.Errorf("all %d documents failed", summary.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

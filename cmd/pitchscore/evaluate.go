package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <deck.pdf>",
	Short: "Evaluate a single pitch deck and print the result as JSON",
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

		record, err := p.Evaluate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", args[0], err)
		}

		if !config.NoSave {
			path, err := repository.NewResultFileRepository(config.OutputDir).Save(record)
			if err != nil {
				log.Warn("could not save result file", zap.Error(err))
			} else {
				log.Info("result saved", zap.String("path", path))
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(record)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

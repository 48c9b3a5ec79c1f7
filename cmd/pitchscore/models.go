package main

import (
	"fmt"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available model backends",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), backend.Describe())
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

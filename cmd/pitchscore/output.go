package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/batch"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/logger"
)

const descriptionWidth = 60

func writeSummary(w io.Writer, summary *batch.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tSCORE\tSTAGE\tDESCRIPTION")
	for _, o := range summary.Outcomes {
		if o.Failed() {
			fmt.Fprintf(tw, "%s\t%s\t-\t%s\n", o.Document, batch.ErrorLabel, logger.TruncateForLog(o.Err.Error(), descriptionWidth))
			continue
		}
		fmt.Fprintf(tw, "%s\t%d/5\t%s\t%s\n", o.Document, o.Record.Score, o.Record.IdentifiedStage, o.Record.ScoreDescription)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d evaluated, %d failed, average score %.2f\n", summary.Succeeded, summary.Failed, summary.AverageScore())
	_, err := fmt.Fprintf(w, "tokens: %d in / %d out, %d requests, estimated cost $%.4f\n",
		summary.Usage.InputTokens, summary.Usage.OutputTokens, summary.Usage.Requests, summary.Usage.EstimatedCostUSD)
	return err
}

func writeComparison(w io.Writer, baseline, candidate string, rows []batch.ComparisonRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DOCUMENT\t%s\t%s\tDIFF\n", strings.ToUpper(baseline), strings.ToUpper(candidate))
	changed := 0
	for _, r := range rows {
		if d, ok := r.Diff(); ok && d != 0 {
			changed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Document, r.Baseline.ScoreLabel(), r.Candidate.ScoreLabel(), r.DiffLabel())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d documents changed score\n", changed, len(rows))
	return err
}

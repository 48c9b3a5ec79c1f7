package batch

import (
	"context"
	"fmt"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
)

// ErrorLabel replaces a score that could not be produced.
const ErrorLabel = "Erro"

type Side struct {
	Record *model.ResultRecord
	Err    error
}

func (s Side) ScoreLabel() string {
	if s.Err != nil || s.Record == nil {
		return ErrorLabel
	}
	return fmt.Sprintf("%d/5", s.Record.Score)
}

func (s Side) Description() string {
	if s.Err != nil {
		return s.Err.Error()
	}
	if s.Record == nil {
		return ""
	}
	return s.Record.ScoreDescription
}

type ComparisonRow struct {
	Document  string
	Baseline  Side
	Candidate Side
}

// Diff is candidate minus baseline; ok is false when either side failed.
func (r ComparisonRow) Diff() (diff int, ok bool) {
	if r.Baseline.Record == nil || r.Candidate.Record == nil {
		return 0, false
	}
	return r.Candidate.Record.Score - r.Baseline.Record.Score, true
}

func (r ComparisonRow) DiffLabel() string {
	d, ok := r.Diff()
	switch {
	case !ok:
		return "-"
	case d == 0:
		return "0"
	default:
		return fmt.Sprintf("%+d", d)
	}
}

// Compare scores every document in folder with both evaluators, typically the
// same backends under two prompt versions. Rows keep document name order.
func Compare(ctx context.Context, baseline, candidate Evaluator, folder string, opts Options) ([]ComparisonRow, error) {
	paths, err := ListDocuments(folder)
	if err != nil {
		return nil, err
	}

	base := evaluateAll(ctx, baseline, paths, opts)
	cand := evaluateAll(ctx, candidate, paths, opts)

	rows := make([]ComparisonRow, len(paths))
	for i := range paths {
		rows[i] = ComparisonRow{
			Document:  base[i].Document,
			Baseline:  Side{Record: base[i].Record, Err: base[i].Err},
			Candidate: Side{Record: cand[i].Record, Err: cand[i].Err},
		}
	}
	return rows, ctx.Err()
}

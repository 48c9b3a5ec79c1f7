package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/logger"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 2

var ErrNoDocuments = errors.New("no pdf documents found")

// Evaluator scores one document. *pipeline.Pipeline satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context, documentPath string) (*model.ResultRecord, error)
}

type Outcome struct {
	Document string
	Path     string
	Record   *model.ResultRecord
	Err      error
}

func (o Outcome) Failed() bool { return o.Err != nil }

type Summary struct {
	// Outcomes are sorted by score, highest first; failures come last.
	Outcomes  []Outcome
	Succeeded int
	Failed    int
	Usage     model.UsageInfo
}

func (s *Summary) AverageScore() float64 {
	if s.Succeeded == 0 {
		return 0
	}
	total := 0
	for _, o := range s.Outcomes {
		if o.Record != nil {
			total += o.Record.Score
		}
	}
	return float64(total) / float64(s.Succeeded)
}

type Options struct {
	Workers int
	Logger  *zap.Logger
	// OnResult is called after each document, from the worker goroutine.
	OnResult func(Outcome)
}

// ListDocuments returns the *.pdf files directly inside folder, sorted by name.
func ListDocuments(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("folder not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(folder, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, folder)
	}
	sort.Strings(paths)
	return paths, nil
}

// Run evaluates every document in folder with a bounded worker pool. A failed
// document is recorded in its Outcome and does not stop the others.
func Run(ctx context.Context, ev Evaluator, folder string, opts Options) (*Summary, error) {
	paths, err := ListDocuments(folder)
	if err != nil {
		return nil, err
	}
	outcomes := evaluateAll(ctx, ev, paths, opts)

	summary := &Summary{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Failed() {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Usage = summary.Usage.Plus(o.Record.Usage)
	}
	sort.SliceStable(summary.Outcomes, func(i, j int) bool {
		a, b := summary.Outcomes[i], summary.Outcomes[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if a.Failed() {
			return false
		}
		return a.Record.Score > b.Record.Score
	})
	return summary, ctx.Err()
}

func evaluateAll(ctx context.Context, ev Evaluator, paths []string, opts Options) []Outcome {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	log := logger.OrNop(opts.Logger)

	outcomes := make([]Outcome, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			out := Outcome{Document: filepath.Base(path), Path: path}
			if err := ctx.Err(); err != nil {
				out.Err = err
			} else {
				out.Record, out.Err = ev.Evaluate(ctx, path)
			}

			if out.Err != nil {
				log.Error("document failed", zap.String(logger.FieldDocument, out.Document), zap.Error(out.Err))
			} else {
				log.Info("document evaluated", zap.String(logger.FieldDocument, out.Document), zap.Int("score", out.Record.Score))
			}
			outcomes[i] = out
			if opts.OnResult != nil {
				opts.OnResult(out)
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

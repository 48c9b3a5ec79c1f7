package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEvaluator struct {
	scores   map[string]int
	failures map[string]error

	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	seen     []string
}

func (s *stubEvaluator) Evaluate(_ context.Context, path string) (*model.ResultRecord, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	name := filepath.Base(path)
	s.mu.Lock()
	s.seen = append(s.seen, name)
	s.mu.Unlock()

	if err := s.failures[name]; err != nil {
		return nil, err
	}
	score := s.scores[name]
	return &model.ResultRecord{
		DocumentName:     name,
		Score:            score,
		ScoreDescription: rubric.ScoreDescription(score),
		Usage:            model.UsageInfo{InputTokens: 10, OutputTokens: 5, TotalTokens: 15, Requests: 2},
	}, nil
}

func makeFolder(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF"), 0o644))
	}
	return dir
}

func TestListDocuments(t *testing.T) {
	dir := makeFolder(t, "b.pdf", "a.PDF", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	paths, err := ListDocuments(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.PDF"), filepath.Join(dir, "b.pdf")}, paths)

	_, err = ListDocuments(makeFolder(t, "readme.md"))
	assert.ErrorIs(t, err, ErrNoDocuments)

	_, err = ListDocuments(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := makeFolder(t, "alpha.pdf", "beta.pdf", "gamma.pdf", "delta.pdf")
	ev := &stubEvaluator{
		scores:   map[string]int{"alpha.pdf": 2, "beta.pdf": 5, "delta.pdf": 3},
		failures: map[string]error{"gamma.pdf": errors.New("backend down")},
	}

	var reported atomic.Int32
	summary, err := Run(context.Background(), ev, dir, Options{
		Workers:  2,
		OnResult: func(Outcome) { reported.Add(1) },
	})
	require.NoError(t, err)

	assert.Len(t, ev.seen, 4)
	assert.EqualValues(t, 4, reported.Load())
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.LessOrEqual(t, ev.peak.Load(), int32(2))

	order := make([]string, 0, len(summary.Outcomes))
	for _, o := range summary.Outcomes {
		order = append(order, o.Document)
	}
	assert.Equal(t, []string{"beta.pdf", "delta.pdf", "alpha.pdf", "gamma.pdf"}, order)
	assert.EqualError(t, summary.Outcomes[3].Err, "backend down")

	assert.InDelta(t, 10.0/3.0, summary.AverageScore(), 1e-9)
	assert.EqualValues(t, 30, summary.Usage.InputTokens)
	assert.EqualValues(t, 6, summary.Usage.Requests)
}

func TestRunCanceled(t *testing.T) {
	dir := makeFolder(t, "a.pdf", "b.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev := &stubEvaluator{}
	summary, err := Run(ctx, ev, dir, Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Failed)
	assert.Empty(t, ev.seen)
}

func TestCompare(t *testing.T) {
	dir := makeFolder(t, "acme.pdf", "beta.pdf", "zeta.pdf")
	baseline := &stubEvaluator{
		scores:   map[string]int{"acme.pdf": 3, "beta.pdf": 4},
		failures: map[string]error{"zeta.pdf": errors.New("timeout")},
	}
	candidate := &stubEvaluator{scores: map[string]int{"acme.pdf": 4, "beta.pdf": 4, "zeta.pdf": 1}}

	rows, err := Compare(context.Background(), baseline, candidate, dir, Options{Workers: 3})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "acme.pdf", rows[0].Document)
	assert.Equal(t, "3/5", rows[0].Baseline.ScoreLabel())
	assert.Equal(t, "4/5", rows[0].Candidate.ScoreLabel())
	assert.Equal(t, "+1", rows[0].DiffLabel())

	assert.Equal(t, "0", rows[1].DiffLabel())

	assert.Equal(t, ErrorLabel, rows[2].Baseline.ScoreLabel())
	assert.Equal(t, "timeout", rows[2].Baseline.Description())
	assert.Equal(t, "-", rows[2].DiffLabel())
	_, ok := rows[2].Diff()
	assert.False(t, ok)
}

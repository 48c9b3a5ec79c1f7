package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/service"
	"go.uber.org/zap"
)

const (
	MaxAttempts = 3
	BaseDelay   = 4 * time.Second
	MaxDelay    = 10 * time.Second
)

// backoff returns the wait before the given retry (1-based): 4s, 8s, then 10s.
func backoff(retry int) time.Duration {
	delay := BaseDelay << (retry - 1)
	if delay > MaxDelay || delay <= 0 {
		delay = MaxDelay
	}
	return delay
}

// withRetry calls fn up to MaxAttempts times and returns the last error
// unchanged. Cancellation of ctx stops immediately.
func withRetry[T any](ctx context.Context, p *Pipeline, log *zap.Logger, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := backoff(attempt - 1)
			log.Warn("retrying backend call",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", MaxAttempts),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := p.sleep(ctx, delay); err != nil {
				return zero, lastErr
			}
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if isCanceled(ctx, err) {
			return zero, err
		}
	}
	return zero, lastErr
}

// generate issues one call. If the backend rejects the optional settings the
// call is repeated once without them and the stage stays plain afterwards.
func (p *Pipeline) generate(ctx context.Context, s *stageClient, req service.Request, log *zap.Logger) (*service.Response, error) {
	if s.plain.Load() {
		req.Settings = nil
	}
	resp, err := s.client.Generate(ctx, req)
	if err == nil || req.Settings == nil || !errors.Is(err, service.ErrUnsupportedSettings) {
		return resp, err
	}

	log.Info("backend rejected generation settings, falling back to plain calls", zap.Error(err))
	s.plain.Store(true)
	req.Settings = nil
	return s.client.Generate(ctx, req)
}

func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

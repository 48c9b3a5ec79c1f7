package pipeline

import (
	"context"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/service"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/util"
	"go.uber.org/zap"
)

// ClientFactory builds the LLM client for a resolved backend.
type ClientFactory func(ctx context.Context, b backend.Backend, apiKey string) (service.LLMService, error)

type Option func(*Pipeline)

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithClientFactory(f ClientFactory) Option {
	return func(p *Pipeline) { p.clientFactory = f }
}

func WithRasterizer(r util.Rasterizer) Option {
	return func(p *Pipeline) { p.rasterizer = r }
}

func WithMaxPages(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxPages = n
		}
	}
}

// WithSleep replaces the backoff wait, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Pipeline) { p.sleep = sleep }
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

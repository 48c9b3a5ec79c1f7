package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/config"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/logger"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/prompt"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/rubric"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/service"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMissingCredential  = config.ErrMissingCredential
	ErrUnknownBackend     = backend.ErrUnknownBackend
	ErrDocumentUnreadable = util.ErrDocumentUnreadable
)

const (
	ExtractionSchemaName = "extracted_facts"
	EvaluationSchemaName = "evaluation_result"

	stageExtraction = "extraction"
	stageEvaluation = "evaluation"
)

// DefaultTemperature is sent as an optional setting; backends that reject it
// are downgraded to plain calls.
const DefaultTemperature float32 = 0.1

type Config struct {
	ExtractionModel string
	EvaluationModel string
	PromptVersion   string
}

// stageClient is one backend bound to one pipeline stage.
type stageClient struct {
	name    string
	backend backend.Backend
	client  service.LLMService
	// plain is set once the backend rejects optional settings.
	plain atomic.Bool
}

// Pipeline runs extract then evaluate for one document at a time. It holds no
// per-call state, so one instance may serve concurrent evaluations.
type Pipeline struct {
	extraction *stageClient
	evaluation *stageClient
	prompts    prompt.Set

	clientFactory ClientFactory
	rasterizer    util.Rasterizer
	maxPages      int
	logger        *zap.Logger
	sleep         func(ctx context.Context, d time.Duration) error
	now           func() time.Time
}

// New resolves both backends and the prompt version and checks credentials.
// Every configuration problem is reported here, before any document is read.
func New(ctx context.Context, cfg Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		clientFactory: service.NewLLMService,
		maxPages:      util.DefaultMaxPages,
		logger:        zap.NewNop(),
		sleep:         sleepContext,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rasterizer == nil {
		p.rasterizer = util.NewFitzRasterizer()
	}

	if cfg.ExtractionModel == "" {
		cfg.ExtractionModel = backend.DefaultName
	}
	if cfg.EvaluationModel == "" {
		cfg.EvaluationModel = backend.DefaultName
	}
	if !prompt.IsRegistered(cfg.PromptVersion) && cfg.PromptVersion != "" {
		p.logger.Warn("unknown prompt version, using default",
			zap.String("requested", cfg.PromptVersion),
			zap.String(logger.FieldPromptVersion, prompt.DefaultVersion))
	}
	p.prompts = prompt.Resolve(cfg.PromptVersion)

	clients := map[string]service.LLMService{}
	var err error
	if p.extraction, err = p.bind(ctx, stageExtraction, cfg.ExtractionModel, clients); err != nil {
		return nil, err
	}
	if p.evaluation, err = p.bind(ctx, stageEvaluation, cfg.EvaluationModel, clients); err != nil {
		return nil, err
	}

	p.logger.Debug("pipeline ready",
		zap.String("extraction_model", p.extraction.backend.Key),
		zap.String("evaluation_model", p.evaluation.backend.Key),
		zap.String(logger.FieldPromptVersion, p.prompts.Version()))
	return p, nil
}

func (p *Pipeline) bind(ctx context.Context, stage, name string, clients map[string]service.LLMService) (*stageClient, error) {
	b, err := backend.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%s model: %w", stage, err)
	}
	apiKey, err := config.LookupCredential(b.EnvVar)
	if err != nil {
		return nil, fmt.Errorf("%s model %s: %w", stage, b.Key, err)
	}

	client, ok := clients[b.Key]
	if !ok {
		client, err = p.clientFactory(ctx, b, apiKey)
		if err != nil {
			return nil, fmt.Errorf("%s model %s: %w", stage, b.Key, err)
		}
		clients[b.Key] = client
	}
	return &stageClient{name: stage, backend: b, client: client}, nil
}

func (p *Pipeline) ExtractionBackend() backend.Backend { return p.extraction.backend }
func (p *Pipeline) EvaluationBackend() backend.Backend { return p.evaluation.backend }
func (p *Pipeline) PromptVersion() string              { return p.prompts.Version() }

// Extract reads the document and asks the extraction backend for its facts.
// Backends that accept PDFs get the raw bytes; the others get up to maxPages
// rendered pages. A low-quality extraction is logged, not rejected.
func (p *Pipeline) Extract(ctx context.Context, documentPath string) (*model.ExtractedFacts, model.Usage, error) {
	var usage model.Usage
	log := p.stageLogger(p.extraction).With(zap.String(logger.FieldDocument, filepath.Base(documentPath)))

	data, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, usage, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	parts := []service.Part{service.TextPart(p.prompts.ExtractionUserPrompt())}
	if p.extraction.backend.SupportsPDF {
		log.Debug("submitting document directly", zap.Int("bytes", len(data)))
		parts = append(parts, service.BytesPart(data, service.MIMETypePDF))
	} else {
		pages, err := p.rasterizer.Rasterize(documentPath, p.maxPages)
		if err != nil {
			return nil, usage, err
		}
		log.Debug("submitting rendered pages", zap.Int("pages", len(pages)))
		for _, page := range pages {
			parts = append(parts, service.BytesPart(page, service.MIMETypePNG))
		}
	}

	req := service.Request{
		Model:      p.extraction.backend.Model,
		System:     p.prompts.ExtractionSystemPrompt(),
		Parts:      parts,
		SchemaName: ExtractionSchemaName,
		Schema:     service.ExtractionSchema,
		Settings:   defaultSettings(),
	}

	facts, err := withRetry(ctx, p, log, func(ctx context.Context) (*model.ExtractedFacts, error) {
		resp, err := p.generate(ctx, p.extraction, req, log)
		if err != nil {
			return nil, err
		}
		usage.Add(resp.Usage)
		facts, err := model.ParseExtractedFacts(resp.Text)
		if err != nil {
			log.Debug("unparseable extraction", zap.String("response", logger.TruncateForLog(resp.Text, 500)))
			return nil, err
		}
		return facts, nil
	})
	if err != nil {
		return nil, usage, err
	}

	if model.IsLowQuality(facts) {
		log.Warn("extraction looks low quality, continuing with partial facts",
			zap.String("startup_name", facts.StartupName))
	}
	return facts, usage, nil
}

// EvaluateFacts scores extracted facts with the configured prompt version.
func (p *Pipeline) EvaluateFacts(ctx context.Context, facts *model.ExtractedFacts) (*model.EvaluationResult, model.Usage, error) {
	var usage model.Usage
	log := p.stageLogger(p.evaluation)

	summary := model.FormatFactsForPrompt(facts)
	req := service.Request{
		Model:      p.evaluation.backend.Model,
		System:     p.prompts.EvaluationSystemPrompt(),
		Parts:      []service.Part{service.TextPart(p.prompts.EvaluationUserPrompt(summary))},
		SchemaName: EvaluationSchemaName,
		Schema:     service.EvaluationSchema,
		Settings:   defaultSettings(),
	}

	result, err := withRetry(ctx, p, log, func(ctx context.Context) (*model.EvaluationResult, error) {
		resp, err := p.generate(ctx, p.evaluation, req, log)
		if err != nil {
			return nil, err
		}
		usage.Add(resp.Usage)
		result, err := model.ParseEvaluationResult(resp.Text)
		if err != nil {
			log.Debug("unparseable evaluation", zap.String("response", logger.TruncateForLog(resp.Text, 500)))
			return nil, err
		}
		return result, nil
	})
	if err != nil {
		return nil, usage, err
	}
	return result, usage, nil
}

// ValidateConsistency reports self-contradictions in an evaluation. The
// returned warnings are logged and never change the score.
func (p *Pipeline) ValidateConsistency(result *model.EvaluationResult) []string {
	if result == nil {
		return nil
	}

	var warnings []string
	if p.prompts.StrictLocation() && !result.Criteria.Location.Satisfied && result.Score > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"startup outside %s received score %d under an eliminatory location rule", rubric.Location, result.Score))
	}
	if critical := result.Criteria.CriticalSatisfied(); result.Score >= 4 && critical < 2 {
		warnings = append(warnings, fmt.Sprintf(
			"score %d with only %d of 3 critical criteria satisfied", result.Score, critical))
	}

	for _, w := range warnings {
		p.logger.Warn("inconsistent evaluation", zap.String("warning", w), zap.Int("score", result.Score))
	}
	return warnings
}

// Evaluate runs both stages for one document and assembles its record. Usage
// is accumulated per call. On error no record is produced.
func (p *Pipeline) Evaluate(ctx context.Context, documentPath string) (*model.ResultRecord, error) {
	document := filepath.Base(documentPath)
	log := logger.WithDocument(p.logger, document, p.prompts.Version())

	log.Debug("extracting")
	facts, extractUsage, err := p.Extract(ctx, documentPath)
	if err != nil {
		return nil, err
	}

	log.Debug("evaluating")
	result, evalUsage, err := p.EvaluateFacts(ctx, facts)
	if err != nil {
		return nil, err
	}
	warnings := p.ValidateConsistency(result)

	usage := extractUsage.Info(p.extraction.backend.Pricing).Plus(evalUsage.Info(p.evaluation.backend.Pricing))
	record := &model.ResultRecord{
		ID:           uuid.NewString(),
		DocumentName: document,
		EvaluatedAt:  p.now(),

		PreliminaryAnalysis: result.PreliminaryAnalysis,
		Score:               result.Score,
		ScoreDescription:    rubric.ScoreDescription(result.Score),
		IdentifiedStage:     result.IdentifiedStage,
		Rationale:           result.Rationale,
		PositivePoints:      result.PositivePoints,
		NegativePoints:      result.NegativePoints,
		Criteria:            result.Criteria,

		ExtractedFacts:       *facts,
		ExtractionLowQuality: model.IsLowQuality(facts),
		Warnings:             warnings,

		ExtractionModel: p.extraction.backend.Key,
		EvaluationModel: p.evaluation.backend.Key,
		PromptVersion:   p.prompts.Version(),
		Usage:           usage,
	}

	log.Info("evaluation completed",
		zap.Int("score", record.Score),
		zap.Int64("total_tokens", usage.TotalTokens),
		zap.Float64("estimated_cost_usd", usage.EstimatedCostUSD))
	return record, nil
}

func (p *Pipeline) stageLogger(s *stageClient) *zap.Logger {
	return logger.WithFields(p.logger, logger.BackendFields(s.name, s.backend.Key, s.backend.Provider, s.backend.Model)...)
}

func defaultSettings() *service.Settings {
	t := DefaultTemperature
	return &service.Settings{Temperature: &t}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/config"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
)

const (
	MIMETypePDF = "application/pdf"
	MIMETypePNG = "image/png"

	OpenRouterAppTitle = "Pitch Deck Analyzer"
)

// ErrUnsupportedSettings means the backend rejected an optional generation
// setting. Callers may repeat the request without Settings.
var ErrUnsupportedSettings = errors.New("backend does not support the requested settings")

// Part is one piece of user content: text, or inline bytes with a MIME type.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

func TextPart(text string) Part { return Part{Text: text} }

func BytesPart(data []byte, mimeType string) Part {
	return Part{Data: data, MIMEType: mimeType}
}

func (p Part) IsText() bool { return p.Data == nil }

// Settings are optional generation parameters.
type Settings struct {
	Temperature *float32
}

type Request struct {
	Model      string
	System     string
	Parts      []Part
	SchemaName string
	Schema     *Schema
	Settings   *Settings
}

type Response struct {
	Text  string
	Usage model.Usage
}

type LLMService interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// NewLLMService builds the client for a backend's provider.
func NewLLMService(ctx context.Context, b backend.Backend, apiKey string) (LLMService, error) {
	cfg := config.LoadProviderConfig(b.Provider)
	switch b.Provider {
	case backend.ProviderGemini:
		return NewGeminiService(ctx, apiKey, cfg.BaseURL, cfg.RequestTimeout)
	case backend.ProviderOpenAI:
		return NewOpenAIService(apiKey, cfg.BaseURL, cfg.RequestTimeout), nil
	case backend.ProviderOpenRouter:
		svc := NewOpenAIService(apiKey, cfg.BaseURL, cfg.RequestTimeout)
		svc.Client.SetHeader("X-Title", OpenRouterAppTitle)
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q for backend %s", b.Provider, b.Key)
	}
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.Model) == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if len(req.Parts) == 0 {
		return fmt.Errorf("request has no content parts")
	}
	return nil
}

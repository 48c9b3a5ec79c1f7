package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client         *genai.Client
	RequestTimeout time.Duration
}

func NewGeminiService(ctx context.Context, apiKey, baseURL string, timeout time.Duration) (*GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		RequestTimeout: timeout,
	}, nil
}

func (s *GeminiService) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	result, err := s.Client.Models.GenerateContent(ctx, req.Model, geminiContents(req.Parts), geminiConfig(req))
	if err != nil {
		if req.Settings != nil && isUnsupportedSettingsError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSettings, err)
		}
		return nil, fmt.Errorf("generate content failed: %w", err)
	}
	if err := s.validateGenerateResponse(result); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}

	resp := &Response{Text: result.Text(), Usage: model.Usage{Requests: 1}}
	if md := result.UsageMetadata; md != nil {
		resp.Usage.InputTokens = int64(md.PromptTokenCount)
		resp.Usage.OutputTokens = int64(md.CandidatesTokenCount) + int64(md.ThoughtsTokenCount)
	}
	return resp, nil
}

func geminiContents(parts []Part) []*genai.Content {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.IsText() {
			out = append(out, genai.NewPartFromText(p.Text))
			continue
		}
		out = append(out, genai.NewPartFromBytes(p.Data, p.MIMEType))
	}
	return []*genai.Content{genai.NewContentFromParts(out, genai.RoleUser)}
}

func geminiConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema.Genai()
	}
	if req.Settings != nil && req.Settings.Temperature != nil {
		cfg.Temperature = genai.Ptr(*req.Settings.Temperature)
	}
	return cfg
}

func isUnsupportedSettingsError(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusBadRequest {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "temperature") ||
		strings.Contains(msg, "not supported") ||
		strings.Contains(msg, "unsupported")
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

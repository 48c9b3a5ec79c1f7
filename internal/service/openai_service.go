package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// APIError is a non-2xx answer from an OpenAI-compatible endpoint.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("chat completion failed with status %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, e.Message)
}

// OpenAIService talks to the chat completions API of OpenAI and OpenRouter.
type OpenAIService struct {
	Client *resty.Client
}

func NewOpenAIService(apiKey, baseURL string, timeout time.Duration) *OpenAIService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &OpenAIService{Client: client}
}

func (s *OpenAIService) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := s.Client.R().
		SetContext(ctx).
		SetBody(chatPayload(req)).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		apiErr := &APIError{
			StatusCode: resp.StatusCode(),
			Code:       gjson.Get(body, "error.code").String(),
			Message:    gjson.Get(body, "error.message").String(),
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(body)
		}
		if req.Settings != nil && isUnsupportedParameter(resp.StatusCode(), body) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSettings, apiErr)
		}
		return nil, apiErr
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		if refusal := gjson.Get(body, "choices.0.message.refusal").String(); refusal != "" {
			return nil, fmt.Errorf("model refused: %s", refusal)
		}
		return nil, fmt.Errorf("no response from LLM")
	}

	return &Response{
		Text: content.String(),
		Usage: model.Usage{
			InputTokens:  gjson.Get(body, "usage.prompt_tokens").Int(),
			OutputTokens: gjson.Get(body, "usage.completion_tokens").Int(),
			Requests:     1,
		},
	}, nil
}

func chatPayload(req Request) map[string]any {
	messages := make([]map[string]any, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]any{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]any{"role": "user", "content": chatContent(req.Parts)})

	payload := map[string]any{
		"model":    req.Model,
		"messages": messages,
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "response"
		}
		payload["response_format"] = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   name,
				"strict": true,
				"schema": req.Schema.JSONSchema(),
			},
		}
	}
	if req.Settings != nil && req.Settings.Temperature != nil {
		payload["temperature"] = *req.Settings.Temperature
	}
	return payload
}

func chatContent(parts []Part) []map[string]any {
	out := make([]map[string]any, 0, len(parts))
	for _, p := range parts {
		if p.IsText() {
			out = append(out, map[string]any{"type": "text", "text": p.Text})
			continue
		}
		url := fmt.Sprintf("data:%s;base64,%s", p.MIMEType, base64.StdEncoding.EncodeToString(p.Data))
		out = append(out, map[string]any{
			"type":      "image_url",
			"image_url": map[string]any{"url": url},
		})
	}
	return out
}

func isUnsupportedParameter(status int, body string) bool {
	if status != http.StatusBadRequest {
		return false
	}
	code := gjson.Get(body, "error.code").String()
	if code == "unsupported_parameter" || code == "unsupported_value" {
		return true
	}
	param := gjson.Get(body, "error.param").String()
	msg := strings.ToLower(gjson.Get(body, "error.message").String())
	return param == "temperature" || strings.Contains(msg, "unsupported")
}

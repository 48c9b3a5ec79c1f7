package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newChatServer(t *testing.T, status int, reply string, captured *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		if captured != nil {
			*captured = string(body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIServiceGenerate(t *testing.T) {
	var sent string
	srv := newChatServer(t, http.StatusOK, `{
		"choices": [{"message": {"role": "assistant", "content": "{\"startup_name\":\"Acme\"}"}}],
		"usage": {"prompt_tokens": 120, "completion_tokens": 30}
	}`, &sent)

	svc := NewOpenAIService("test-key", srv.URL, 5*time.Second)
	temp := float32(0.1)
	resp, err := svc.Generate(context.Background(), Request{
		Model:      "gpt-5-mini",
		System:     "system prompt",
		Parts:      []Part{TextPart("extract"), BytesPart([]byte("png-bytes"), MIMETypePNG)},
		SchemaName: "extracted_facts",
		Schema:     ExtractionSchema,
		Settings:   &Settings{Temperature: &temp},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"startup_name":"Acme"}`, resp.Text)
	assert.EqualValues(t, 120, resp.Usage.InputTokens)
	assert.EqualValues(t, 30, resp.Usage.OutputTokens)
	assert.EqualValues(t, 1, resp.Usage.Requests)

	assert.Equal(t, "gpt-5-mini", gjson.Get(sent, "model").String())
	assert.Equal(t, "system", gjson.Get(sent, "messages.0.role").String())
	assert.Equal(t, "system prompt", gjson.Get(sent, "messages.0.content").String())
	assert.Equal(t, "text", gjson.Get(sent, "messages.1.content.0.type").String())
	assert.Equal(t, "image_url", gjson.Get(sent, "messages.1.content.1.type").String())
	assert.Equal(t,
		"data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("png-bytes")),
		gjson.Get(sent, "messages.1.content.1.image_url.url").String())
	assert.Equal(t, "json_schema", gjson.Get(sent, "response_format.type").String())
	assert.True(t, gjson.Get(sent, "response_format.json_schema.strict").Bool())
	assert.False(t, gjson.Get(sent, "response_format.json_schema.schema.additionalProperties").Bool())
	assert.InDelta(t, 0.1, gjson.Get(sent, "temperature").Float(), 1e-6)
}

func TestOpenAIServiceUnsupportedTemperature(t *testing.T) {
	srv := newChatServer(t, http.StatusBadRequest, `{
		"error": {"message": "Unsupported value: 'temperature' does not support 0.1", "param": "temperature", "code": "unsupported_value"}
	}`, nil)

	svc := NewOpenAIService("test-key", srv.URL, 5*time.Second)
	temp := float32(0.1)
	_, err := svc.Generate(context.Background(), Request{
		Model:    "gpt-5-nano",
		Parts:    []Part{TextPart("hi")},
		Settings: &Settings{Temperature: &temp},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedSettings)
}

func TestOpenAIServiceAPIError(t *testing.T) {
	srv := newChatServer(t, http.StatusTooManyRequests, `{"error": {"message": "rate limited", "code": "rate_limit_exceeded"}}`, nil)

	svc := NewOpenAIService("test-key", srv.URL, 5*time.Second)
	_, err := svc.Generate(context.Background(), Request{Model: "gpt-5-mini", Parts: []Part{TextPart("hi")}})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate limited", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnsupportedSettings)
}

func TestOpenAIServiceEmptyContent(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, `{"choices": [{"message": {"content": ""}}]}`, nil)

	svc := NewOpenAIService("test-key", srv.URL, 5*time.Second)
	_, err := svc.Generate(context.Background(), Request{Model: "gpt-5-mini", Parts: []Part{TextPart("hi")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response")
}

func TestValidateRequest(t *testing.T) {
	svc := NewOpenAIService("test-key", "http://127.0.0.1:1", time.Second)

	_, err := svc.Generate(context.Background(), Request{Parts: []Part{TextPart("hi")}})
	assert.Error(t, err)

	_, err = svc.Generate(context.Background(), Request{Model: "gpt-5-mini"})
	assert.Error(t, err)
}

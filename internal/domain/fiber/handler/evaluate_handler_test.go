package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/batch"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/config"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/pipeline"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/repository"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedEvaluator struct{ score int }

func (f fixedEvaluator) Evaluate(_ context.Context, path string) (*model.ResultRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &model.ResultRecord{Score: f.score, ScoreDescription: "Forte", PromptVersion: "v2"}, nil
}

type testServer struct {
	app       *fiber.App
	uc        *usecase.EvaluationUsecase
	uploadDir string
}

func newTestServer(t *testing.T, factory usecase.PipelineFactory) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.EvaluationTask{}))

	uploadDir := t.TempDir()
	uc := usecase.NewEvaluationUsecase(
		repository.NewEvaluationRepository(db),
		repository.NewResultFileRepository(t.TempDir()),
		factory, 2, nil)

	app := fiber.New()
	NewEvaluateHandler(uc, &config.AppConfig{
		UploadDir:       uploadDir,
		MaxUploadSize:   1024 * 1024,
		SubmitRateLimit: 100,
	}).RegisterRoutes(app)
	return &testServer{app: app, uc: uc, uploadDir: uploadDir}
}

func fixedFactory(score int) usecase.PipelineFactory {
	return func(_ context.Context, cfg pipeline.Config) (batch.Evaluator, error) {
		return fixedEvaluator{score: score}, nil
	}
}

func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile(documentField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/evaluations", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestSubmitAndFetchEvaluation(t *testing.T) {
	srv := newTestServer(t, fixedFactory(4))

	resp, err := srv.app.Test(uploadRequest(t, "acme.pdf", []byte("%PDF-1.4"), map[string]string{"prompt_version": "astella"}))
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode, body)
	assert.True(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, model.TaskStatusProcessing, gjson.Get(body, "data.status").String())
	id := gjson.Get(body, "data.id").String()
	require.NotEmpty(t, id)

	srv.uc.Wait()

	resp, err = srv.app.Test(httptest.NewRequest(http.MethodGet, "/api/evaluations/"+id, nil))
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, model.TaskStatusCompleted, gjson.Get(body, "data.status").String())
	assert.EqualValues(t, 4, gjson.Get(body, "data.score").Int())
	assert.Equal(t, "astella", gjson.Get(body, "data.prompt_version").String())
	assert.Equal(t, "acme.pdf", gjson.Get(body, "data.result.document_name").String())

	entries, err := os.ReadDir(srv.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSubmitValidation(t *testing.T) {
	srv := newTestServer(t, fixedFactory(3))

	tests := []struct {
		name     string
		filename string
		fields   map[string]string
		field    string
	}{
		{name: "missing file", field: documentField},
		{name: "not a pdf", filename: "deck.pptx", field: documentField},
		{name: "unknown backend", filename: "deck.pdf", fields: map[string]string{"evaluation_model": "gpt-99"}, field: "evaluation_model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := srv.app.Test(uploadRequest(t, tt.filename, []byte("%PDF"), tt.fields))
			require.NoError(t, err)
			body := readBody(t, resp)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
			assert.False(t, gjson.Get(body, "success").Bool())
			assert.NotEmpty(t, gjson.Get(body, "details."+tt.field).String())
		})
	}
}

func TestSubmitMissingCredentialIsBadRequest(t *testing.T) {
	srv := newTestServer(t, func(context.Context, pipeline.Config) (batch.Evaluator, error) {
		return nil, pipeline.ErrMissingCredential
	})

	resp, err := srv.app.Test(uploadRequest(t, "deck.pdf", []byte("%PDF"), nil))
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)

	entries, err := os.ReadDir(srv.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "upload is removed when the submission is rejected")
}

func TestResultNotFound(t *testing.T) {
	srv := newTestServer(t, fixedFactory(3))

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/api/evaluations/7f1c1e4e-0000-4000-8000-000000000000", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListEvaluations(t *testing.T) {
	srv := newTestServer(t, fixedFactory(2))
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		resp, err := srv.app.Test(uploadRequest(t, name, []byte("%PDF"), nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	}
	srv.uc.Wait()

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/api/evaluations?page=1&page_size=2", nil))
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	assert.Len(t, gjson.Get(body, "data").Array(), 2)
	assert.EqualValues(t, 3, gjson.Get(body, "pagination.total_items").Int())
	assert.EqualValues(t, 2, gjson.Get(body, "pagination.total_pages").Int())
	assert.True(t, gjson.Get(body, "pagination.has_more").Bool())
}

func TestModels(t *testing.T) {
	srv := newTestServer(t, fixedFactory(0))

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/api/models", nil))
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed struct {
		Data []struct {
			Key         string `json:"key"`
			SupportsPDF bool   `json:"supports_pdf"`
			Default     bool   `json:"default"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.NotEmpty(t, parsed.Data)
	assert.Equal(t, "gemini-flash", parsed.Data[0].Key)
	assert.True(t, parsed.Data[0].SupportsPDF)
	assert.True(t, parsed.Data[0].Default)
	assert.Equal(t, "gemini-flash", gjson.Get(body, "meta.default").String())
}

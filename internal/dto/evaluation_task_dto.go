package dto

import (
	"encoding/json"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/google/uuid"
)

type EvaluationTaskDTO struct {
	ID               uuid.UUID       `json:"id"`
	DocumentName     string          `json:"document_name"`
	Status           string          `json:"status"` // e.g. "processing", "completed", "failed"
	ExtractionModel  string          `json:"extraction_model"`
	EvaluationModel  string          `json:"evaluation_model"`
	PromptVersion    string          `json:"prompt_version"`
	Score            *int            `json:"score"`
	ScoreDescription string          `json:"score_description,omitempty"`
	Result           json.RawMessage `json:"result,omitempty"`
	Error            string          `json:"error,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func NewEvaluationTaskDTO(task *model.EvaluationTask) EvaluationTaskDTO {
	data := EvaluationTaskDTO{
		ID:               task.ID,
		DocumentName:     task.DocumentName,
		Status:           task.Status,
		ExtractionModel:  task.ExtractionModel,
		EvaluationModel:  task.EvaluationModel,
		PromptVersion:    task.PromptVersion,
		Score:            task.Score,
		ScoreDescription: task.ScoreDescription,
		Error:            task.Error,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
	if task.Status == model.TaskStatusCompleted && json.Valid([]byte(task.Result)) {
		data.Result = json.RawMessage(task.Result)
	}
	return data
}

type SubmitEvaluationDTO struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type ModelDTO struct {
	Key              string  `json:"key"`
	Name             string  `json:"name"`
	Provider         string  `json:"provider"`
	Model            string  `json:"model"`
	SupportsPDF      bool    `json:"supports_pdf"`
	InputPerMillion  float64 `json:"input_per_million_usd"`
	OutputPerMillion float64 `json:"output_per_million_usd"`
	Description      string  `json:"description"`
	Default          bool    `json:"default"`
}

func NewModelDTO(b backend.Backend) ModelDTO {
	return ModelDTO{
		Key:              b.Key,
		Name:             b.Name,
		Provider:         b.Provider,
		Model:            b.Model,
		SupportsPDF:      b.SupportsPDF,
		InputPerMillion:  b.Pricing.InputPerMillion,
		OutputPerMillion: b.Pricing.OutputPerMillion,
		Description:      b.Description,
		Default:          b.Key == backend.DefaultName,
	}
}

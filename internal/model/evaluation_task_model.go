package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

type EvaluationTask struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentName     string    `gorm:"type:varchar(255)" json:"document_name"`
	DocumentPath     string    `gorm:"type:text" json:"-"`
	ExtractionModel  string    `gorm:"type:varchar(100)" json:"extraction_model"`
	EvaluationModel  string    `gorm:"type:varchar(100)" json:"evaluation_model"`
	PromptVersion    string    `gorm:"type:varchar(50)" json:"prompt_version"`
	Status           string    `gorm:"type:varchar(50);index" json:"status"` // e.g. "processing", "completed", "failed"
	Score            *int      `json:"score"`
	ScoreDescription string    `gorm:"type:text" json:"score_description"`
	Result           string    `gorm:"type:jsonb" json:"result"`
	Error            string    `gorm:"type:text" json:"error"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (t *EvaluationTask) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

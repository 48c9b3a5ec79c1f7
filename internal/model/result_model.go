package model

import (
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
)

// Usage accumulates token counts for one evaluation. It is owned by a single
// call and never shared.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	Requests     int64 `json:"requests"`
}

func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.Requests += other.Requests
}

// UsageInfo is the reported form of Usage, priced with one backend's rates.
type UsageInfo struct {
	InputTokens      int64   `json:"input_tokens"`
	OutputTokens     int64   `json:"output_tokens"`
	TotalTokens      int64   `json:"total_tokens"`
	Requests         int64   `json:"requests"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

func (u Usage) Info(pricing backend.Pricing) UsageInfo {
	return UsageInfo{
		InputTokens:      u.InputTokens,
		OutputTokens:     u.OutputTokens,
		TotalTokens:      u.InputTokens + u.OutputTokens,
		Requests:         u.Requests,
		EstimatedCostUSD: pricing.Cost(u.InputTokens, u.OutputTokens),
	}
}

// Plus combines the usage of two stages that may be priced differently.
func (u UsageInfo) Plus(other UsageInfo) UsageInfo {
	return UsageInfo{
		InputTokens:      u.InputTokens + other.InputTokens,
		OutputTokens:     u.OutputTokens + other.OutputTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
		Requests:         u.Requests + other.Requests,
		EstimatedCostUSD: u.EstimatedCostUSD + other.EstimatedCostUSD,
	}
}

// ResultRecord is the flat, JSON-ready output of one pipeline run.
type ResultRecord struct {
	ID           string    `json:"id"`
	DocumentName string    `json:"document_name"`
	EvaluatedAt  time.Time `json:"evaluated_at"`

	PreliminaryAnalysis string   `json:"preliminary_analysis,omitempty"`
	Score               int      `json:"score"`
	ScoreDescription    string   `json:"score_description"`
	IdentifiedStage     Stage    `json:"identified_stage"`
	Rationale           string   `json:"rationale"`
	PositivePoints      []string `json:"positive_points"`
	NegativePoints      []string `json:"negative_points"`
	Criteria            Findings `json:"criteria"`

	ExtractedFacts       ExtractedFacts `json:"extracted_facts"`
	ExtractionLowQuality bool           `json:"extraction_low_quality"`
	Warnings             []string       `json:"warnings,omitempty"`

	ExtractionModel string    `json:"extraction_model"`
	EvaluationModel string    `json:"evaluation_model"`
	PromptVersion   string    `json:"prompt_version"`
	Usage           UsageInfo `json:"usage"`
}

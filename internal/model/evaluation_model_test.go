package model

import (
	"testing"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluationResultRichFindings(t *testing.T) {
	raw := `{
		"preliminary_analysis": "Receita 5M dentro de 3.5M-10M",
		"score": 4,
		"identified_stage": "seed",
		"rationale": "Boa tração.",
		"positive_points": ["receita", " ", "time"],
		"negative_points": [],
		"criteria": {
			"location": {"satisfied": true, "evidence": "São Paulo, Brasil"},
			"stage_fit": {"satisfied": true, "evidence": ""},
			"financial_metrics": {"satisfied": false, "evidence": "valuation acima"},
			"product_traction": {"satisfied": true, "evidence": "10k users"}
		}
	}`

	result, err := ParseEvaluationResult(raw)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Score)
	assert.Equal(t, StageSeed, result.IdentifiedStage)
	assert.Equal(t, []string{"receita", "time"}, result.PositivePoints)
	assert.NotNil(t, result.NegativePoints)
	assert.Equal(t, CriterionFinding{Satisfied: true, Evidence: "São Paulo, Brasil"}, result.Criteria.Location)
	assert.Equal(t, EvidenceNotStated, result.Criteria.StageFit.Evidence)
	assert.False(t, result.Criteria.FinancialMetrics.Satisfied)
	assert.Equal(t, CriterionFinding{Satisfied: false, Evidence: EvidenceNotStated}, result.Criteria.Team)
	assert.Equal(t, 2, result.Criteria.CriticalSatisfied())
}

func TestParseEvaluationResultBareBooleanFindings(t *testing.T) {
	raw := "```json\n{\"score\": 2, \"identified_stage\": \"pre_seed\", \"criteria\": {\"location\": true, \"stage_fit\": false, \"financial_metrics\": true, \"product_traction\": false, \"team\": true}}\n```"

	result, err := ParseEvaluationResult(raw)
	require.NoError(t, err)
	assert.Equal(t, CriterionFinding{Satisfied: true, Evidence: EvidenceNotAvailable}, result.Criteria.Location)
	assert.Equal(t, CriterionFinding{Satisfied: false, Evidence: EvidenceNotAvailable}, result.Criteria.StageFit)
	assert.True(t, result.Criteria.Team.Satisfied)
}

func TestParseEvaluationResultRejectsInvalid(t *testing.T) {
	const criteria = `"criteria": {"location": true, "stage_fit": true, "financial_metrics": true, "product_traction": true, "team": true}`

	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing score", raw: `{"rationale": "no score", ` + criteria + `}`},
		{name: "truncated json", raw: `{"score": `},
		{name: "null score", raw: `{"score": null, ` + criteria + `}`},
		{name: "string score", raw: `{"score": "alto", ` + criteria + `}`},
		{name: "fractional score", raw: `{"score": 4.7, ` + criteria + `}`},
		{name: "boolean score", raw: `{"score": true, ` + criteria + `}`},
		{name: "missing criteria", raw: `{"score": 3}`},
		{name: "criteria not an object", raw: `{"score": 3, "criteria": "all good"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseEvaluationResult(tt.raw)
			require.Error(t, err)
			assert.Nil(t, result)
		})
	}

	_, err := ParseEvaluationResult(`{"score": 7, ` + criteria + `}`)
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	result, err := ParseEvaluationResult(`{"score": 4.0, ` + criteria + `}`)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Score)
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSON("Aqui está: {\"a\":1} obrigado"))
	assert.Equal(t, `{"a":1}`, CleanJSON(`  {"a":1}  `))
}

func TestUsageInfo(t *testing.T) {
	var u Usage
	u.Add(Usage{InputTokens: 1_000_000, OutputTokens: 0, Requests: 1})
	u.Add(Usage{InputTokens: 0, OutputTokens: 500_000, Requests: 1})

	info := u.Info(backend.Pricing{InputPerMillion: 0.5, OutputPerMillion: 2})
	assert.Equal(t, int64(1_500_000), info.TotalTokens)
	assert.Equal(t, int64(2), info.Requests)
	assert.InDelta(t, 1.5, info.EstimatedCostUSD, 1e-9)
}

package service

import (
	"testing"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractionSchemaMatchesFacts(t *testing.T) {
	fields := (&model.ExtractedFacts{}).Fields()
	require.Len(t, ExtractionSchema.Properties, len(fields))
	for i, f := range fields {
		assert.Equal(t, f.Key, ExtractionSchema.Properties[i].Name)
	}
}

func TestSchemaGenai(t *testing.T) {
	s := EvaluationSchema.Genai()

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "preliminary_analysis", s.PropertyOrdering[0])
	assert.Contains(t, s.Required, "score")
	assert.Equal(t, genai.TypeInteger, s.Properties["score"].Type)
	assert.Equal(t, genai.TypeArray, s.Properties["positive_points"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["positive_points"].Items.Type)

	criteria := s.Properties["criteria"]
	require.NotNil(t, criteria)
	assert.Equal(t, model.CriterionKeys, criteria.PropertyOrdering)

	facts := ExtractionSchema.Genai()
	require.NotNil(t, facts.Properties["annual_revenue"].Nullable)
	assert.True(t, *facts.Properties["annual_revenue"].Nullable)
	assert.NotContains(t, facts.Required, "annual_revenue")
	assert.Contains(t, facts.Properties["stage"].Enum, "series_a")
}

func TestSchemaJSONSchemaStrict(t *testing.T) {
	s := ExtractionSchema.JSONSchema()

	assert.Equal(t, "object", s["type"])
	assert.Equal(t, false, s["additionalProperties"])
	required := s["required"].([]string)
	assert.Len(t, required, len(ExtractionSchema.Properties))

	props := s["properties"].(map[string]any)
	revenue := props["annual_revenue"].(map[string]any)
	assert.Equal(t, []string{"string", "null"}, revenue["type"])
	name := props["startup_name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
}

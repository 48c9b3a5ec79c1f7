package service

import (
	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
	"google.golang.org/genai"
)

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
)

// Schema is a provider-neutral subset of JSON Schema. Properties keep their
// declaration order, which both providers are asked to respect.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  []Property
	Items       *Schema
	Enum        []string
	Nullable    bool
	Minimum     *float64
	Maximum     *float64
}

type Property struct {
	Name     string
	Schema   *Schema
	Required bool
}

func str(desc string) *Schema { return &Schema{Type: TypeString, Description: desc} }

func optionalStr(desc string) *Schema {
	return &Schema{Type: TypeString, Description: desc, Nullable: true}
}

func stageEnum(desc string) *Schema {
	values := make([]string, 0, len(model.Stages))
	for _, s := range model.Stages {
		values = append(values, string(s))
	}
	return &Schema{Type: TypeString, Description: desc, Enum: values}
}

// ExtractionSchema describes model.ExtractedFacts.
var ExtractionSchema = &Schema{
	Type: TypeObject,
	Properties: []Property{
		{Name: "startup_name", Schema: str("Nome da startup"), Required: true},
		{Name: "location", Schema: str("País/cidade da startup"), Required: true},
		{Name: "stage", Schema: stageEnum("Estágio de investimento identificado"), Required: true},
		{Name: "annual_revenue", Schema: optionalStr("Receita anual (ex: R$ 5M)")},
		{Name: "round_size", Schema: optionalStr("Tamanho da rodada buscada")},
		{Name: "pre_money_valuation", Schema: optionalStr("Valuation pre-money")},
		{Name: "annual_growth", Schema: optionalStr("Taxa de crescimento")},
		{Name: "product_description", Schema: optionalStr("Descrição do produto/serviço")},
		{Name: "traction_metrics", Schema: optionalStr("Métricas de tração (usuários, clientes, MRR)")},
		{Name: "founding_team", Schema: optionalStr("Informações sobre fundadores e equipe")},
		{Name: "current_customers", Schema: optionalStr("Principais clientes atuais")},
		{Name: "business_model", Schema: optionalStr("Modelo de negócio (SaaS, marketplace, etc)")},
		{Name: "market_size", Schema: optionalStr("TAM/SAM/SOM do mercado")},
		{Name: "competitive_edge", Schema: optionalStr("Diferencial competitivo")},
		{Name: "cap_table", Schema: optionalStr("Informações do cap table")},
		{Name: "other_information", Schema: optionalStr("Outras informações relevantes")},
	},
}

func finding(desc string) *Schema {
	return &Schema{
		Type:        TypeObject,
		Description: desc,
		Properties: []Property{
			{Name: "satisfied", Schema: &Schema{Type: TypeBoolean, Description: "Se o critério foi atendido ou não"}, Required: true},
			{Name: "evidence", Schema: str("Citação direta dos dados extraídos que justifica a decisão"), Required: true},
		},
	}
}

func scoreBound(v float64) *float64 { return &v }

// EvaluationSchema describes model.EvaluationResult with evidence-carrying findings.
var EvaluationSchema = &Schema{
	Type: TypeObject,
	Properties: []Property{
		{Name: "preliminary_analysis", Schema: str("Análise passo a passo (Chain of Thought) comparando os dados extraídos com os critérios do fundo, antes da nota final"), Required: true},
		{Name: "score", Schema: &Schema{Type: TypeInteger, Description: "Nota de 0 a 5", Minimum: scoreBound(model.MinScore), Maximum: scoreBound(model.MaxScore)}, Required: true},
		{Name: "identified_stage", Schema: stageEnum("Estágio identificado da startup"), Required: true},
		{Name: "rationale", Schema: str("Explicação detalhada da nota em 3-5 parágrafos"), Required: true},
		{Name: "positive_points", Schema: &Schema{Type: TypeArray, Items: str("Ponto positivo"), Description: "Lista de pontos positivos identificados"}, Required: true},
		{Name: "negative_points", Schema: &Schema{Type: TypeArray, Items: str("Ponto negativo"), Description: "Lista de pontos negativos ou gaps"}, Required: true},
		{Name: "criteria", Schema: &Schema{
			Type:        TypeObject,
			Description: "Critérios avaliados com evidências",
			Properties: []Property{
				{Name: model.CriterionLocation, Schema: finding("Startup está no Brasil"), Required: true},
				{Name: model.CriterionStageFit, Schema: finding("Estágio compatível com a tese do fundo"), Required: true},
				{Name: model.CriterionFinancialMetrics, Schema: finding("Métricas financeiras adequadas para o estágio"), Required: true},
				{Name: model.CriterionProductTraction, Schema: finding("Produto com tração comprovada"), Required: true},
				{Name: model.CriterionTeam, Schema: finding("Equipe qualificada e experiente"), Required: true},
			},
		}, Required: true},
	},
}

var genaiTypes = map[SchemaType]genai.Type{
	TypeObject:  genai.TypeObject,
	TypeString:  genai.TypeString,
	TypeInteger: genai.TypeInteger,
	TypeBoolean: genai.TypeBoolean,
	TypeArray:   genai.TypeArray,
}

// Genai converts the schema for GenerateContentConfig.ResponseSchema.
func (s *Schema) Genai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiTypes[s.Type],
		Description: s.Description,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		Items:       s.Items.Genai(),
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties[p.Name] = p.Schema.Genai()
			out.PropertyOrdering = append(out.PropertyOrdering, p.Name)
			if p.Required {
				out.Required = append(out.Required, p.Name)
			}
		}
	}
	return out
}

// JSONSchema renders the schema in the strict JSON Schema dialect accepted by
// OpenAI-compatible structured outputs: every property is required, optional
// ones are nullable, and no additional properties are allowed.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{}
	if s.Nullable {
		out["type"] = []string{string(s.Type), "null"}
	} else {
		out["type"] = string(s.Type)
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		required := make([]string, 0, len(s.Properties))
		for _, p := range s.Properties {
			props[p.Name] = p.Schema.JSONSchema()
			required = append(required, p.Name)
		}
		out["properties"] = props
		out["required"] = required
		out["additionalProperties"] = false
	}
	return out
}

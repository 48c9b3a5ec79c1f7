package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	MinScore = 0
	MaxScore = 5
)

// Evidence placeholders used when the model gave no usable citation.
const (
	EvidenceNotStated    = "not stated"
	EvidenceNotAvailable = "not available"
)

// Criterion keys of the findings object, in schema order.
const (
	CriterionLocation         = "location"
	CriterionStageFit         = "stage_fit"
	CriterionFinancialMetrics = "financial_metrics"
	CriterionProductTraction  = "product_traction"
	CriterionTeam             = "team"
)

var CriterionKeys = []string{
	CriterionLocation,
	CriterionStageFit,
	CriterionFinancialMetrics,
	CriterionProductTraction,
	CriterionTeam,
}

type CriterionFinding struct {
	Satisfied bool   `json:"satisfied"`
	Evidence  string `json:"evidence"`
}

type Findings struct {
	Location         CriterionFinding `json:"location"`
	StageFit         CriterionFinding `json:"stage_fit"`
	FinancialMetrics CriterionFinding `json:"financial_metrics"`
	ProductTraction  CriterionFinding `json:"product_traction"`
	Team             CriterionFinding `json:"team"`
}

func (f *Findings) byKey(key string) *CriterionFinding {
	switch key {
	case CriterionLocation:
		return &f.Location
	case CriterionStageFit:
		return &f.StageFit
	case CriterionFinancialMetrics:
		return &f.FinancialMetrics
	case CriterionProductTraction:
		return &f.ProductTraction
	case CriterionTeam:
		return &f.Team
	}
	return nil
}

// CriticalSatisfied counts satisfied findings among location, stage fit and
// financial metrics.
func (f Findings) CriticalSatisfied() int {
	n := 0
	for _, c := range []CriterionFinding{f.Location, f.StageFit, f.FinancialMetrics} {
		if c.Satisfied {
			n++
		}
	}
	return n
}

type EvaluationResult struct {
	PreliminaryAnalysis string   `json:"preliminary_analysis,omitempty"`
	Score               int      `json:"score"`
	IdentifiedStage     Stage    `json:"identified_stage"`
	Rationale           string   `json:"rationale"`
	PositivePoints      []string `json:"positive_points"`
	NegativePoints      []string `json:"negative_points"`
	Criteria            Findings `json:"criteria"`
}

var ErrScoreOutOfRange = errors.New("score out of range")

// ParseEvaluationResult decodes an evaluation response. Findings may arrive as
// {satisfied, evidence} objects or as bare booleans; both are normalised to
// CriterionFinding.
func ParseEvaluationResult(raw string) (*EvaluationResult, error) {
	cleaned := CleanJSON(raw)
	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("parse evaluation response: invalid json")
	}

	doc := gjson.Parse(cleaned)
	score := doc.Get("score")
	if !score.Exists() {
		return nil, fmt.Errorf("parse evaluation response: score is missing")
	}
	if score.Type != gjson.Number || score.Num != math.Trunc(score.Num) {
		return nil, fmt.Errorf("parse evaluation response: score %s is not a whole number", score.Raw)
	}
	criteria := doc.Get("criteria")
	if !criteria.IsObject() {
		return nil, fmt.Errorf("parse evaluation response: criteria object is missing")
	}

	result := &EvaluationResult{
		PreliminaryAnalysis: strings.TrimSpace(doc.Get("preliminary_analysis").String()),
		Score:               int(score.Int()),
		IdentifiedStage:     NormalizeStage(doc.Get("identified_stage").String()),
		Rationale:           strings.TrimSpace(doc.Get("rationale").String()),
		PositivePoints:      stringList(doc.Get("positive_points")),
		NegativePoints:      stringList(doc.Get("negative_points")),
	}
	if result.Score < MinScore || result.Score > MaxScore {
		return nil, fmt.Errorf("%w: %d", ErrScoreOutOfRange, result.Score)
	}

	for _, key := range CriterionKeys {
		*result.Criteria.byKey(key) = parseFinding(criteria.Get(key))
	}

	return result, nil
}

func parseFinding(v gjson.Result) CriterionFinding {
	switch {
	case v.IsBool():
		return CriterionFinding{Satisfied: v.Bool(), Evidence: EvidenceNotAvailable}
	case v.IsObject():
		evidence := strings.TrimSpace(v.Get("evidence").String())
		if evidence == "" {
			evidence = EvidenceNotStated
		}
		return CriterionFinding{Satisfied: v.Get("satisfied").Bool(), Evidence: evidence}
	default:
		return CriterionFinding{Satisfied: false, Evidence: EvidenceNotStated}
	}
}

func stringList(v gjson.Result) []string {
	out := make([]string, 0)
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CleanJSON strips markdown fences and any prose around the outermost object.
func CleanJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(strings.Trim(raw, "`"))
	if json.Valid([]byte(raw)) {
		return raw
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1]
	}
	return raw
}

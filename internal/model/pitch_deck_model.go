package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Stage string

const (
	StagePreSeed   Stage = "pre_seed"
	StageSeed      Stage = "seed"
	StageSeriesA   Stage = "series_a"
	StageUndefined Stage = "indefinido"
)

// Stages lists the enum values in schema order.
var Stages = []Stage{StagePreSeed, StageSeed, StageSeriesA, StageUndefined}

// NormalizeStage maps free model output onto the enum, defaulting to StageUndefined.
func NormalizeStage(s string) Stage {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	switch v {
	case "pre_seed", "preseed":
		return StagePreSeed
	case "seed":
		return StageSeed
	case "series_a", "seriesa":
		return StageSeriesA
	default:
		return StageUndefined
	}
}

// ExtractedFacts is what the extraction stage pulls out of a pitch deck.
// Field order here is the order used when the facts are rendered into a prompt.
type ExtractedFacts struct {
	StartupName        string `json:"startup_name"`
	Location           string `json:"location"`
	Stage              Stage  `json:"stage"`
	AnnualRevenue      string `json:"annual_revenue,omitempty"`
	RoundSize          string `json:"round_size,omitempty"`
	PreMoneyValuation  string `json:"pre_money_valuation,omitempty"`
	AnnualGrowth       string `json:"annual_growth,omitempty"`
	ProductDescription string `json:"product_description,omitempty"`
	TractionMetrics    string `json:"traction_metrics,omitempty"`
	FoundingTeam       string `json:"founding_team,omitempty"`
	CurrentCustomers   string `json:"current_customers,omitempty"`
	BusinessModel      string `json:"business_model,omitempty"`
	MarketSize         string `json:"market_size,omitempty"`
	CompetitiveEdge    string `json:"competitive_edge,omitempty"`
	CapTable           string `json:"cap_table,omitempty"`
	OtherInformation   string `json:"other_information,omitempty"`
}

// FactField is one named value of ExtractedFacts.
type FactField struct {
	Key   string
	Value string
}

// Fields returns every field in declaration order.
func (f *ExtractedFacts) Fields() []FactField {
	return []FactField{
		{"startup_name", f.StartupName},
		{"location", f.Location},
		{"stage", string(f.Stage)},
		{"annual_revenue", f.AnnualRevenue},
		{"round_size", f.RoundSize},
		{"pre_money_valuation", f.PreMoneyValuation},
		{"annual_growth", f.AnnualGrowth},
		{"product_description", f.ProductDescription},
		{"traction_metrics", f.TractionMetrics},
		{"founding_team", f.FoundingTeam},
		{"current_customers", f.CurrentCustomers},
		{"business_model", f.BusinessModel},
		{"market_size", f.MarketSize},
		{"competitive_edge", f.CompetitiveEdge},
		{"cap_table", f.CapTable},
		{"other_information", f.OtherInformation},
	}
}

var sentinels = map[string]struct{}{
	"":             {},
	"indefinido":   {},
	"desconhecido": {},
	"null":         {},
	"none":         {},
}

// IsSentinel reports whether v is a placeholder the model uses for "no data".
func IsSentinel(v string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// MinInformativeFields is the number of non-name fields an extraction needs
// before it is considered usable.
const MinInformativeFields = 3

// IsLowQuality flags an extraction with no startup name or with fewer than
// MinInformativeFields informative fields besides the name.
func IsLowQuality(f *ExtractedFacts) bool {
	if f == nil || IsSentinel(f.StartupName) {
		return true
	}
	informative := 0
	for _, field := range f.Fields()[1:] {
		if !IsSentinel(field.Value) {
			informative++
		}
	}
	return informative < MinInformativeFields
}

// NoInformationLine is rendered when nothing useful was extracted.
const NoInformationLine = "  - Nenhuma informação extraída"

var titleCaser = cases.Title(language.Und)

// HumanizeKey turns "annual_revenue" into "Annual Revenue".
func HumanizeKey(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// FormatFactsForPrompt renders the informative fields as "  - Label: value" lines.
func FormatFactsForPrompt(f *ExtractedFacts) string {
	if f == nil {
		return NoInformationLine
	}
	lines := make([]string, 0, 16)
	for _, field := range f.Fields() {
		if IsSentinel(field.Value) {
			continue
		}
		lines = append(lines, fmt.Sprintf("  - %s: %s", HumanizeKey(field.Key), strings.TrimSpace(field.Value)))
	}
	if len(lines) == 0 {
		return NoInformationLine
	}
	return strings.Join(lines, "\n")
}

// ParseExtractedFacts decodes a structured extraction response.
func ParseExtractedFacts(raw string) (*ExtractedFacts, error) {
	var facts ExtractedFacts
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &facts); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	facts.Stage = NormalizeStage(string(facts.Stage))
	return &facts, nil
}

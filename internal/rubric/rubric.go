package rubric

import (
	"errors"
	"fmt"
)

// Location is the only home market the fund invests in.
const Location = "Brasil"

var ErrStageNotFound = errors.New("rubric stage not found")

// Range is an inclusive numeric interval. Monetary ranges are in BRL.
type Range struct {
	Min int64
	Max int64
}

// Stage describes what the fund expects from a startup raising at one stage.
type Stage struct {
	ID                string
	Name              string
	Focus             string
	AnnualRevenue     Range
	RoundSize         Range
	PreMoneyValuation Range
	Growth            string
	CapTableTarget    string
	Dilution          Range // percent
	Product           string
}

var stages = []Stage{
	{
		ID:                "pre_seed",
		Name:              "Pre-Seed",
		Focus:             "Validação de hipóteses e descoberta. A empresa ainda não tem Product-Market Fit (PMF), mas deve ter um caminho claro para buscá-lo.",
		AnnualRevenue:     Range{Min: 0, Max: 1_000_000},
		RoundSize:         Range{Min: 2_500_000, Max: 5_000_000},
		PreMoneyValuation: Range{Min: 15_000_000, Max: 35_000_000},
		Growth:            "Visibilidade para atingir tração de Seed em 18-24 meses",
		CapTableTarget:    "90%+ das ações com Fundadores + ESOP",
		Dilution:          Range{Min: 10, Max: 15},
		Product:           "Visibilidade para atingir sinais de PMF nos próximos 18-24 meses",
	},
	{
		ID:                "seed",
		Name:              "Seed",
		Focus:             "Primeiros sinais de PMF e construção da máquina de vendas. O produto já gera valor real e a empresa deixa de ser apenas um projeto.",
		AnnualRevenue:     Range{Min: 3_500_000, Max: 10_000_000},
		RoundSize:         Range{Min: 8_000_000, Max: 20_000_000},
		PreMoneyValuation: Range{Min: 32_000_000, Max: 60_000_000},
		Growth:            "3x ao ano (aprox. +10% a.m.)",
		CapTableTarget:    "80%+ das ações com Fundadores + ESOP",
		Dilution:          Range{Min: 15, Max: 20},
		Product:           "Gera valor real com sinais claros de PMF: NPS alto, Alta recorrência/retenção, Baixo churn, Posicionamento e ICP (Ideal Customer Profile) claros",
	},
	{
		ID:                "series_a",
		Name:              "Series A",
		Focus:             "Escalabilidade e eficiência. A máquina de vendas deve estar pronta para receber capital e acelerar.",
		AnnualRevenue:     Range{Min: 18_000_000, Max: 30_000_000},
		RoundSize:         Range{Min: 25_000_000, Max: 50_000_000},
		PreMoneyValuation: Range{Min: 75_000_000, Max: 200_000_000},
		Growth:            "2,5x ao ano (aprox. +8% a.m.)",
		CapTableTarget:    "65%+ das ações com Fundadores + ESOP",
		Dilution:          Range{Min: 20, Max: 25},
		Product:           "Máquina de vendas pronta para escalar",
	},
}

var scoreDescriptions = map[int]string{
	0: "Descartável - não atende critérios básicos",
	1: "Muito fraca - poucos pontos positivos",
	2: "Fraca - alguns pontos, mas gaps significativos",
	3: "Mediana - potencial, mas precisa de mais validação",
	4: "Forte - atende maioria dos critérios, vale conversar",
	5: "Excepcional - prioridade máxima, agendar reunião",
}

// UnknownScoreDescription is returned for scores outside 0-5.
const UnknownScoreDescription = "Desconhecida"

// GetStage returns the stage with the given id.
func GetStage(id string) (Stage, error) {
	for _, s := range stages {
		if s.ID == id {
			return s, nil
		}
	}
	return Stage{}, fmt.Errorf("%w: %q", ErrStageNotFound, id)
}

// AllStages returns every stage in declared order. The slice is a copy.
func AllStages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// ScoreDescription returns the fund's wording for a 0-5 score.
func ScoreDescription(score int) string {
	if d, ok := scoreDescriptions[score]; ok {
		return d
	}
	return UnknownScoreDescription
}

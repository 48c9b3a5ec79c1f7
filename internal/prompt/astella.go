package prompt

import (
	"fmt"
	"strings"
)

// SubCriterion is one line of the weighted scorecard.
type SubCriterion struct {
	Category string
	Name     string
	Full     int
	Partial  int
	// Anchor describes what earns the full points ("Alto Potencial").
	Anchor string
}

// Modifier is a deduction applied to the raw total before banding.
type Modifier struct {
	Name        string
	Penalty     int
	PerItem     bool
	Description string
}

// Band maps an inclusive raw-score interval to a final score.
type Band struct {
	Min   int
	Max   int
	Score int
}

var Scorecard = []SubCriterion{
	{"People", "Founder-market fit", 30, 15, "Fundadores com vivência direta no problema e no setor, com histórico comprovado no mercado-alvo"},
	{"People", "Time complementar", 25, 12, "Cofundadores cobrindo produto/tecnologia, vendas e operação, com dedicação integral"},
	{"People", "Histórico de execução", 20, 10, "Entregas passadas mensuráveis (empresas fundadas, exits, metas batidas) citadas no deck"},
	{"People", "Dedicação integral", 10, 5, "Todos os fundadores em tempo integral e com participação relevante no cap table"},
	{"Product", "Clareza problema/solução", 20, 10, "Dor aguda e frequente, solução descrita com precisão e diferenciada do status quo"},
	{"Product", "Sinais de PMF e tração", 30, 15, "Métricas de uso/receita crescentes, retenção alta, NPS ou churn documentados"},
	{"Product", "Diferenciação e defensibilidade", 20, 10, "Vantagem difícil de copiar: dados proprietários, efeito de rede, tecnologia ou distribuição"},
	{"Process", "Go-to-market e máquina de vendas", 20, 10, "Canal de aquisição repetível com CAC, ciclo de vendas e ICP documentados"},
	{"Process", "Unit economics e métricas financeiras", 25, 12, "Receita, margem, CAC/LTV ou payback dentro das faixas do estágio"},
	{"Process", "Crescimento compatível com o estágio", 20, 10, "Taxa de crescimento igual ou superior à esperada para o estágio na tese do fundo"},
	{"Participation", "Aderência da rodada e valuation", 20, 10, "Tamanho da rodada e valuation pre-money dentro das faixas do estágio"},
	{"Participation", "Saúde do cap table", 15, 7, "Fundadores + ESOP com participação igual ou acima da meta do estágio e diluição na faixa"},
}

var Modifiers = []Modifier{
	{Name: "Risco setorial", Penalty: 8, Description: "Setor regulado, dependência de um único cliente/plataforma ou mercado em contração (0 a -8)"},
	{Name: "Red flags", Penalty: 10, Description: "Inconsistências nos números, litígios, fundadores em meio período ou cap table quebrado (0 a -10)"},
	{Name: "Métrica crítica ausente", Penalty: 5, PerItem: true, Description: "-5 para cada métrica crítica não informada: receita anual, tamanho da rodada, valuation pre-money"},
}

var Bands = []Band{
	{Min: 221, Max: ScorecardMax(), Score: 5},
	{Min: 180, Max: 220, Score: 4},
	{Min: 140, Max: 179, Score: 3},
	{Min: 100, Max: 139, Score: 2},
	{Min: 60, Max: 99, Score: 1},
	{Min: 0, Max: 59, Score: 0},
}

// ScorecardMax is the highest raw total the scorecard can produce.
func ScorecardMax() int {
	total := 0
	for _, c := range Scorecard {
		total += c.Full
	}
	return total
}

// ScoreBand maps a raw scorecard total (after modifiers) to the 0-5 scale.
// 220 is the top of band 4; anything above it is band 5.
func ScoreBand(raw int) int {
	if raw > 220 {
		return 5
	}
	for _, b := range Bands {
		if raw >= b.Min && raw <= b.Max {
			return b.Score
		}
	}
	return 0
}

func renderScorecard() string {
	var sb strings.Builder
	sb.WriteString("SCORECARD ASTELLA (pontuação bruta máxima: ")
	fmt.Fprintf(&sb, "%d pontos)\n", ScorecardMax())

	category := ""
	for _, c := range Scorecard {
		if c.Category != category {
			category = c.Category
			fmt.Fprintf(&sb, "\n[%s]\n", category)
		}
		fmt.Fprintf(&sb, "- %s: 0 / %d (parcial) / %d (completo)\n", c.Name, c.Partial, c.Full)
		fmt.Fprintf(&sb, "  Alto Potencial: %s\n", c.Anchor)
	}

	sb.WriteString("\nMODIFICADORES (subtraia do total bruto antes do mapeamento):\n")
	for _, m := range Modifiers {
		fmt.Fprintf(&sb, "- %s: %s\n", m.Name, m.Description)
	}

	sb.WriteString("\nMAPEAMENTO PARA A NOTA FINAL:\n")
	for _, b := range Bands {
		if b.Score == 5 {
			fmt.Fprintf(&sb, "- > %d pontos: nota %d\n", b.Min-1, b.Score)
			continue
		}
		if b.Score == 0 {
			fmt.Fprintf(&sb, "- < %d pontos: nota %d\n", b.Max+1, b.Score)
			continue
		}
		fmt.Fprintf(&sb, "- %d-%d pontos: nota %d\n", b.Min, b.Max, b.Score)
	}
	return strings.TrimRight(sb.String(), "\n")
}

var astella = &variant{
	version: "astella",
	strict:  false,
	scale: `ESCALA DE NOTAS (resultado do mapeamento do scorecard):
- 0: Descartável - pontuação insuficiente ou startup EXPLICITAMENTE fora do Brasil
- 1: Muito fraca
- 2: Fraca
- 3: Mediana
- 4: Forte - vale conversar
- 5: Excepcional - prioridade máxima para reunião

` + renderScorecard(),
	instructions: `INSTRUÇÕES (SIGA ESTA ORDEM):

PASSO 1 - PONTUAÇÃO DO SCORECARD (no campo "preliminary_analysis"):
- Para cada subcritério, escreva: nome, evidência citada dos dados extraídos e pontos atribuídos (0, parcial ou completo)
- POLÍTICA ANTI-INFERÊNCIA: se o fato não estiver documentado nos dados extraídos, o subcritério recebe 0. Não deduza, não estime, não presuma
- Some os pontos por categoria (People, Product, Process, Participation) e o total bruto
- Aplique os modificadores explicitamente: risco setorial, red flags e -5 por métrica crítica ausente
- Escreva a conta completa, por exemplo: "Total bruto 190 - risco setorial 4 - red flags 0 - métricas ausentes 5 = 181 → faixa 180-220 → nota 4"

PASSO 2 - CRITÉRIOS RESUMIDOS:
- Preencha "criteria" (location, stage_fit, financial_metrics, product_traction, team) com "satisfied" e a evidência textual em "evidence" (ou "não informado")
- Localização ausente não elimina; somente localização explicitamente fora do Brasil resulta em nota 0

PASSO 3 - NOTA FINAL:
- "score" DEVE ser exatamente a nota obtida pelo mapeamento do total ajustado
- "rationale": 3-5 parágrafos explicando as categorias mais fortes e mais fracas

IMPORTANTE:
- NUNCA invente dados que não foram extraídos
- A aritmética do scorecard deve estar visível em "preliminary_analysis" antes da nota`,
	reminder: `IMPORTANTE: Siga a ordem das instruções:
1. Pontue cada subcritério do scorecard em "preliminary_analysis", com evidência e pontos
2. Fatos não documentados valem 0 pontos
3. Aplique os modificadores e mostre a conta até o total ajustado
4. Mapeie o total ajustado para a nota final de 0-5 e use exatamente essa nota em "score"`,
}

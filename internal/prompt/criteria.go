package prompt

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/rubric"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const extractionSystemPrompt = `Você é um especialista em análise de pitch decks de startups.
Sua tarefa é extrair informações relevantes do pitch deck em PDF.

INSTRUÇÕES:
- Extraia todas as informações disponíveis no documento
- Para valores numéricos, mantenha o formato original (ex: "R$ 5M", "3x ao ano")
- IMPORTANTE: Extraia valores numéricos exatos quando disponíveis. Se encontrar "R$ 5 milhões", extraia como "R$ 5M" ou "5000000" para facilitar comparações matemáticas posteriores.
- Se uma informação não estiver presente, deixe como null
- Não invente informações. A fidelidade aos dados do documento é a prioridade máxima.
- Identifique o estágio baseado nas métricas apresentadas:
  * Pre-Seed: Receita até R$ 1M, foco em validação
  * Seed: Receita R$ 3.5M-10M, primeiros sinais de PMF
  * Series A: Receita R$ 18M-30M, máquina de vendas pronta
- Seja detalhado e preciso na extração`

const extractionUserPrompt = "Analise este pitch deck e extraia todas as informações relevantes:"

var numberPrinter = message.NewPrinter(language.English)

// formatBRL renders an amount with thousands separators, e.g. "R$ 2,500,000".
func formatBRL(v int64) string {
	return numberPrinter.Sprintf("R$ %d", v)
}

// FormatFundCriteria renders every rubric stage, in registry order. All prompt
// versions embed this exact text.
func FormatFundCriteria() string {
	var lines []string
	for _, s := range rubric.AllStages() {
		lines = append(lines,
			fmt.Sprintf("\n=== %s ===", s.Name),
			fmt.Sprintf("Foco: %s", s.Focus),
			"\nMétricas & Financeiro:",
			fmt.Sprintf("  - Receita Anual: %s – %s", formatBRL(s.AnnualRevenue.Min), formatBRL(s.AnnualRevenue.Max)),
			fmt.Sprintf("  - Tamanho da Rodada: %s – %s", formatBRL(s.RoundSize.Min), formatBRL(s.RoundSize.Max)),
			fmt.Sprintf("  - Valuation (Pre-Money): %s – %s", formatBRL(s.PreMoneyValuation.Min), formatBRL(s.PreMoneyValuation.Max)),
			fmt.Sprintf("  - Crescimento: %s", s.Growth),
			"\nEstrutura & Cap Table:",
			fmt.Sprintf("  - Composição Ideal: %s", s.CapTableTarget),
			fmt.Sprintf("  - Diluição na Rodada: %d%% – %d%%", s.Dilution.Min, s.Dilution.Max),
			"\nProduto & Processos:",
			fmt.Sprintf("  - %s", s.Product),
		)
	}
	return strings.Join(lines, "\n")
}

func renderEvaluationSystemPrompt(scale, instructions string) string {
	return fmt.Sprintf(`Você é um analista experiente de um fundo de Venture Capital brasileiro.
Sua tarefa é avaliar startups baseado nas informações extraídas do pitch deck.

CRITÉRIOS DO FUNDO:
%s

LOCALIZAÇÃO: %s

%s

%s`, FormatFundCriteria(), rubric.Location, scale, instructions)
}

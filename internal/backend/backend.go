package backend

import (
	"errors"
	"fmt"
	"strings"
)

// Provider tags understood by service.NewLLMService.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

// DefaultName is the backend used when none is requested.
const DefaultName = "gemini-flash"

var ErrUnknownBackend = errors.New("unknown backend")

// Pricing is USD per one million tokens.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// Cost estimates the USD cost of the given token counts.
func (p Pricing) Cost(inputTokens, outputTokens int64) float64 {
	return float64(inputTokens)*p.InputPerMillion/1_000_000 +
		float64(outputTokens)*p.OutputPerMillion/1_000_000
}

type Backend struct {
	Key         string
	Name        string
	Provider    string
	Model       string
	EnvVar      string
	Pricing     Pricing
	SupportsPDF bool
	Description string
}

var catalog = []Backend{
	{
		Key:         "gemini-flash",
		Name:        "Gemini 2.5 Flash",
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		EnvVar:      "GEMINI_API_KEY",
		Pricing:     Pricing{InputPerMillion: 0.075, OutputPerMillion: 0.30},
		SupportsPDF: true,
		Description: "Rápido e econômico. Bom para análise de PDFs.",
	},
	{
		Key:         "gemini-pro",
		Name:        "Gemini 2.5 Pro",
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-pro",
		EnvVar:      "GEMINI_API_KEY",
		Pricing:     Pricing{InputPerMillion: 1.25, OutputPerMillion: 5.00},
		SupportsPDF: true,
		Description: "Mais capaz, melhor raciocínio. Mais caro.",
	},
	{
		Key:         "gemini-3",
		Name:        "Gemini 3 Pro",
		Provider:    ProviderGemini,
		Model:       "gemini-3-pro",
		EnvVar:      "GEMINI_API_KEY",
		Pricing:     Pricing{InputPerMillion: 2.00, OutputPerMillion: 12.00},
		SupportsPDF: true,
		Description: "Modelo mais avançado do Google. Contexto de até 2M tokens.",
	},
	{
		Key:         "gpt-5-mini",
		Name:        "GPT-5 Mini",
		Provider:    ProviderOpenAI,
		Model:       "gpt-5-mini",
		EnvVar:      "OPENAI_API_KEY",
		Pricing:     Pricing{InputPerMillion: 0.25, OutputPerMillion: 2.00},
		SupportsPDF: false,
		Description: "Modelo intermediário da OpenAI. Equilibrado em custo e capacidade.",
	},
	{
		Key:         "gpt-5-nano",
		Name:        "GPT-5 Nano",
		Provider:    ProviderOpenAI,
		Model:       "gpt-5-nano",
		EnvVar:      "OPENAI_API_KEY",
		Pricing:     Pricing{InputPerMillion: 0.05, OutputPerMillion: 0.40},
		SupportsPDF: false,
		Description: "Versão mais econômica do GPT-5. Rápido e barato.",
	},
	{
		Key:         "openrouter-gpt-4o-mini",
		Name:        "GPT-4o Mini (OpenRouter)",
		Provider:    ProviderOpenRouter,
		Model:       "openai/gpt-4o-mini",
		EnvVar:      "OPENROUTER_API_KEY",
		Pricing:     Pricing{InputPerMillion: 0.15, OutputPerMillion: 0.60},
		SupportsPDF: false,
		Description: "Roteado via OpenRouter. Recebe páginas como imagens.",
	},
}

// Resolve looks a backend up by its catalog key.
func Resolve(name string) (Backend, error) {
	key := strings.TrimSpace(name)
	for _, b := range catalog {
		if b.Key == key {
			return b, nil
		}
	}
	return Backend{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(Keys(), ", "))
}

// List returns the catalog in declaration order.
func List() []Backend {
	out := make([]Backend, len(catalog))
	copy(out, catalog)
	return out
}

func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for _, b := range catalog {
		keys = append(keys, b.Key)
	}
	return keys
}

// Default returns the DefaultName backend.
func Default() Backend {
	b, err := Resolve(DefaultName)
	if err != nil {
		panic(err)
	}
	return b
}

// Describe renders the catalog for help output.
func Describe() string {
	var sb strings.Builder
	sb.WriteString("Modelos disponíveis:\n\n")
	for _, b := range catalog {
		pdf := "✗ PDF"
		if b.SupportsPDF {
			pdf = "✓ PDF"
		}
		fmt.Fprintf(&sb, "  %-24s - %-24s ($%.2f/$%.2f por 1M tokens) [%s]\n",
			b.Key, b.Name, b.Pricing.InputPerMillion, b.Pricing.OutputPerMillion, pdf)
		fmt.Fprintf(&sb, "  %-24s   %s\n\n", "", b.Description)
	}
	return sb.String()
}

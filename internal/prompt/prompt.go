package prompt

import (
	"sort"
	"strings"
)

// DefaultVersion is used whenever an unregistered version is requested.
const DefaultVersion = "v2"

// Set is one prompt version. The extraction prompts are shared; versions
// differ in how the evaluation is scored.
type Set interface {
	Version() string
	ExtractionSystemPrompt() string
	ExtractionUserPrompt() string
	EvaluationSystemPrompt() string
	EvaluationUserPrompt(factSummary string) string
	// StrictLocation reports whether any evidence against the home market
	// must force the lowest score.
	StrictLocation() bool
}

type variant struct {
	version      string
	strict       bool
	scale        string
	instructions string
	reminder     string
}

func (v *variant) Version() string                { return v.version }
func (v *variant) ExtractionSystemPrompt() string { return extractionSystemPrompt }
func (v *variant) ExtractionUserPrompt() string   { return extractionUserPrompt }
func (v *variant) StrictLocation() bool           { return v.strict }

func (v *variant) EvaluationSystemPrompt() string {
	return renderEvaluationSystemPrompt(v.scale, v.instructions)
}

func (v *variant) EvaluationUserPrompt(factSummary string) string {
	return "Avalie esta startup baseado nas informações extraídas do pitch deck:\n\n" +
		"INFORMAÇÕES DO PITCH DECK:\n" + factSummary + "\n\n" + v.reminder
}

var registry = map[string]Set{
	"v1":      v1,
	"v2":      v2,
	"astella": astella,
	"v3":      astella,
}

// Resolve returns the named prompt set, falling back to DefaultVersion for
// unknown names.
func Resolve(version string) Set {
	if s, ok := registry[strings.ToLower(strings.TrimSpace(version))]; ok {
		return s
	}
	return registry[DefaultVersion]
}

// IsRegistered reports whether Resolve would return version itself rather
// than the default.
func IsRegistered(version string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(version))]
	return ok
}

// Versions lists registered version names, sorted.
func Versions() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

package generator

import (
	"strings"

	"github.com/openai/openai-go/v3"
)

// tuning holds the per-generator request knobs. Zero-valued optional fields
// (top-p, penalties) are left unset on the request.
type tuning struct {
	budget           int64
	temperature      float64
	topP             float64
	presencePenalty  float64
	frequencyPenalty float64
}

type paramsFunc func(p *openai.ChatCompletionNewParams, t tuning)

// family maps model-name prefixes to a parameter builder. The table is
// ordered and the first matching prefix wins: gpt-5-chat is a standard chat
// tune and must register ahead of the broader gpt-5 reasoning entry. New
// model families are added by appending an entry, not by branching inline.
type family struct {
	name     string
	prefixes []string
	apply    paramsFunc
}

var families = []family{
	{name: "chat", prefixes: []string{"gpt-5-chat"}, apply: standardParams},
	{name: "reasoning", prefixes: []string{"o1", "o3", "o4", "gpt-5"}, apply: reasoningParams},
}

var defaultFamily = family{name: "standard", apply: standardParams}

func familyFor(model string) family {
	for _, f := range families {
		for _, prefix := range f.prefixes {
			if strings.HasPrefix(model, prefix) {
				return f
			}
		}
	}
	return defaultFamily
}

// reasoningParams: reasoning models take a completion-token budget and
// reject sampling controls.
func reasoningParams(p *openai.ChatCompletionNewParams, t tuning) {
	p.MaxCompletionTokens = openai.Int(t.budget)
}

func standardParams(p *openai.ChatCompletionNewParams, t tuning) {
	p.MaxTokens = openai.Int(t.budget)
	p.Temperature = openai.Float(t.temperature)
	if t.topP != 0 {
		p.TopP = openai.Float(t.topP)
	}
	if t.presencePenalty != 0 {
		p.PresencePenalty = openai.Float(t.presencePenalty)
	}
	if t.frequencyPenalty != 0 {
		p.FrequencyPenalty = openai.Float(t.frequencyPenalty)
	}
}

func applyModelParams(p *openai.ChatCompletionNewParams, model string, t tuning) {
	familyFor(model).apply(p, t)
}

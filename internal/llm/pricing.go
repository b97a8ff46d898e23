package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// modelPrices is matched by prefix, longest first, so dated snapshots
// ("claude-haiku-4-5-20251001") price like their family. Keep more
// specific prefixes before the ones they extend.
var modelPrices = []struct {
	prefix string
	cost   ModelCost
}{
	// Anthropic
	{"claude-opus-4-5", ModelCost{5, 25}},
	{"claude-opus-4", ModelCost{15, 75}},
	{"claude-sonnet-4", ModelCost{3, 15}},
	{"claude-3-7-sonnet", ModelCost{3, 15}},
	{"claude-3-5-sonnet", ModelCost{3, 15}},
	{"claude-haiku-4-5", ModelCost{1, 5}},
	{"claude-3-5-haiku", ModelCost{0.8, 4}},
	{"claude-3-haiku", ModelCost{0.25, 1.25}},

	// OpenAI
	{"gpt-4o-mini", ModelCost{0.15, 0.6}},
	{"gpt-4o", ModelCost{2.5, 10}},
	{"gpt-4.1-nano", ModelCost{0.1, 0.4}},
	{"gpt-4.1-mini", ModelCost{0.4, 1.6}},
	{"gpt-4.1", ModelCost{2, 8}},
	{"gpt-5-nano", ModelCost{0.05, 0.4}},
	{"gpt-5-mini", ModelCost{0.25, 2}},
	{"gpt-5", ModelCost{1.25, 10}},
	{"o4-mini", ModelCost{1.1, 4.4}},
	{"o3-mini", ModelCost{1.1, 4.4}},
	{"o3", ModelCost{2, 8}},

	// Google
	{"gemini-2.0-flash-lite", ModelCost{0.075, 0.3}},
	{"gemini-2.0-flash", ModelCost{0.1, 0.4}},
	{"gemini-2.5-flash-lite", ModelCost{0.1, 0.4}},
	{"gemini-2.5-flash", ModelCost{0.3, 2.5}},
	{"gemini-2.5-pro", ModelCost{1.25, 10}},
	{"gemini-1.5-flash", ModelCost{0.075, 0.3}},
	{"gemini-1.5-pro", ModelCost{1.25, 5}},
}

// LookupCost returns the price of model, or nil when it is unknown.
// OpenRouter's vendor prefix ("openai/gpt-4o") is ignored.
func LookupCost(model string) *ModelCost {
	if i := strings.LastIndexByte(model, '/'); i >= 0 {
		model = model[i+1:]
	}
	for _, p := range modelPrices {
		if strings.HasPrefix(model, p.prefix) {
			c := p.cost
			return &c
		}
	}
	return nil
}

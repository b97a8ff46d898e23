package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider completes prompts with the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a provider from cfg.
func NewGeminiProvider(ctx context.Context, cfg Endpoint) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errMissingKey(ProviderGemini)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: client, model: modelAlias(cfg.Model, geminiAliases)}, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	gc := &genai.GenerateContentConfig{MaxOutputTokens: int32(pr.MaxTokens)}
	if pr.Temperature > 0 {
		gc.Temperature = genai.Ptr(float32(pr.Temperature))
	}
	if pr.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(pr.System, genai.RoleUser)
	}
	if pr.Output != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = geminiSchema(pr.Output.JSON)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(pr.Turns), gc)
	if err != nil {
		return nil, geminiError(err)
	}

	text := result.Text()
	finish := geminiFinish(result)
	if finish == FinishLength && pr.Output != nil {
		return nil, &Error{Kind: KindTruncated, Provider: ProviderGemini, Body: []byte(text)}
	}

	body, err := decodeOutput(ProviderGemini, pr.Output, text)
	if err != nil {
		return nil, err
	}

	c := &Completion{Body: body, Model: p.model, Finish: finish}
	if result.ModelVersion != "" {
		c.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		c.Usage = Usage{Input: int(u.PromptTokenCount), Output: int(u.CandidatesTokenCount)}
	}
	return c, nil
}

func (p *GeminiProvider) Model() string {
	return p.model
}

func geminiContents(turns []Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(t.Text, role))
	}
	return out
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// geminiSchema converts the JSON Schema subset used by output schemas.
// Gemini rejects keywords it does not know, so anything else is dropped.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}
	if t, ok := geminiTypes[stringField(def, "type")]; ok {
		s.Type = t
	}
	s.Description = stringField(def, "description")

	if v, ok := numberField(def, "minimum"); ok {
		s.Minimum = &v
	}
	if v, ok := numberField(def, "maximum"); ok {
		s.Maximum = &v
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, p := range props {
			if pm, ok := p.(map[string]any); ok {
				s.Properties[name] = geminiSchema(pm)
			}
		}
	}
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	return s
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func numberField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func stringList(v any) []string {
	var out []string
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func geminiFinish(result *genai.GenerateContentResponse) Finish {
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return FinishLength
	}
	return FinishEnd
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fromStatus(ProviderGemini, apiErr.Code, nil, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return fromStatus(ProviderGemini, apiErrPtr.Code, nil, err)
	}
	return fromStatus(ProviderGemini, 0, nil, err)
}

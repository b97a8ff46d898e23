package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled output schemas by name.
var compiledSchemas = &schemaSet{byName: make(map[string]*jsonschema.Schema)}

type schemaSet struct {
	mu     sync.Mutex
	byName map[string]*jsonschema.Schema
}

func (s *schemaSet) get(out *OutputSchema) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sch, ok := s.byName[out.Name]; ok {
		return sch, nil
	}

	// The compiler wants decoded JSON values, not Go maps of arbitrary types.
	raw, err := json.Marshal(out.JSON)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", out.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", out.Name, err)
	}

	url := "mem://schemas/" + out.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", out.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", out.Name, err)
	}

	s.byName[out.Name] = sch
	return sch, nil
}

// decodeOutput cleans up a model's text reply and checks it against out.
// It returns the JSON body to hand back to the caller.
func decodeOutput(provider string, out *OutputSchema, text string) (json.RawMessage, error) {
	body := json.RawMessage(stripCodeFence(text))
	if out == nil {
		return body, nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, malformed(provider, body, fmt.Errorf("reply is not JSON: %w", err))
	}
	sch, err := compiledSchemas.get(out)
	if err != nil {
		return nil, malformed(provider, body, err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, malformed(provider, body, err)
	}
	return body, nil
}

// stripCodeFence removes a Markdown ``` fence some models wrap JSON in.
func stripCodeFence(text string) []byte {
	b := bytes.TrimSpace([]byte(text))
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = b[3:]
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
		b = b[nl+1:]
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}

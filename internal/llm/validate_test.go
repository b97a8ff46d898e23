package llm

import (
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

func scoreSchema() *OutputSchema {
	return &OutputSchema{
		Name:        "test-score",
		Description: "A graded answer",
		JSON: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{"type": "string"},
				"score":   map[string]any{"type": "integer", "minimum": 0, "maximum": 10},
				"level":   map[string]any{"type": "string", "enum": []any{"junior", "mid", "senior"}},
			},
			"required": []any{"summary", "score"},
		},
	}
}

func TestDecodeOutput(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"valid", `{"summary":"ok","score":7,"level":"mid"}`, `{"summary":"ok","score":7,"level":"mid"}`, false},
		{"optional field absent", `{"summary":"ok","score":0}`, `{"summary":"ok","score":0}`, false},
		{"fenced", "```json\n{\"summary\":\"ok\",\"score\":3}\n```", `{"summary":"ok","score":3}`, false},
		{"surrounding space", "  {\"summary\":\"ok\",\"score\":3}\n", `{"summary":"ok","score":3}`, false},
		{"missing required", `{"summary":"ok"}`, "", true},
		{"out of range", `{"summary":"ok","score":11}`, "", true},
		{"bad enum", `{"summary":"ok","score":5,"level":"guru"}`, "", true},
		{"wrong type", `{"summary":"ok","score":"high"}`, "", true},
		{"not json", `Great answer!`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := decodeOutput("test", scoreSchema(), tt.text)
			if tt.wantErr {
				if !IsKind(err, KindMalformed) {
					t.Fatalf("expected malformed reply, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(body) != tt.want {
				t.Fatalf("body = %s, want %s", body, tt.want)
			}
		})
	}
}

func TestDecodeOutput_PlainText(t *testing.T) {
	body, err := decodeOutput("test", nil, " Solid answer. \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "Solid answer." {
		t.Fatalf("body = %q", body)
	}
}

func TestDecodeOutput_MalformedKeepsBody(t *testing.T) {
	_, err := decodeOutput("test", scoreSchema(), `{"summary":"ok"}`)
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if string(e.Body) != `{"summary":"ok"}` || e.Provider != "test" {
		t.Fatalf("unexpected error fields: %+v", e)
	}
}

func TestSchemaSetCachesByName(t *testing.T) {
	set := &schemaSet{byName: make(map[string]*jsonschema.Schema)}

	first, err := set.get(scoreSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := set.get(scoreSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached schema on the second call")
	}
}

func TestSchemaSetRejectsInvalidSchema(t *testing.T) {
	set := &schemaSet{byName: make(map[string]*jsonschema.Schema)}
	_, err := set.get(&OutputSchema{Name: "broken", JSON: map[string]any{"type": 42}})
	if err == nil {
		t.Fatal("expected compile error")
	}
}

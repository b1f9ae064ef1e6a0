package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestBuildGeminiSchema_FeedbackShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"relevance_score": map[string]any{"type": "number"},
			"what_worked": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"formality": map[string]any{"type": "string", "enum": []any{"Sie", "du"}},
		},
		"required": []any{"relevance_score", "what_worked"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", schema.Type)
	}
	if got := schema.Properties["relevance_score"].Type; got != genai.TypeNumber {
		t.Fatalf("relevance_score type = %s", got)
	}
	worked := schema.Properties["what_worked"]
	if worked.Type != genai.TypeArray || worked.Items == nil || worked.Items.Type != genai.TypeString {
		t.Fatalf("unexpected what_worked schema: %+v", worked)
	}
	if len(schema.Properties["formality"].Enum) != 2 {
		t.Fatalf("expected 2 enum values")
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestMapGeminiType_UnknownIsString(t *testing.T) {
	if got := mapGeminiType("null"); got != genai.TypeString {
		t.Fatalf("got %s", got)
	}
}

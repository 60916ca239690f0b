package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-3-flash", "gemini-3-flash-preview"},
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(testSchema().Definition)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	questions := schema.Properties["questions"]
	if questions == nil || questions.Type != "ARRAY" {
		t.Fatalf("expected ARRAY questions, got %+v", questions)
	}
	if questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("expected minItems 1 on questions")
	}

	item := questions.Items
	if item.Type != "OBJECT" {
		t.Fatalf("expected OBJECT items, got %s", item.Type)
	}
	if item.Properties["id"].Type != "INTEGER" {
		t.Errorf("expected INTEGER id, got %s", item.Properties["id"].Type)
	}
	if len(item.Properties["difficulty"].Enum) != 3 {
		t.Errorf("expected 3 difficulty values, got %d", len(item.Properties["difficulty"].Enum))
	}

	opts := item.Properties["options"]
	if opts.MinItems == nil || *opts.MinItems != 4 || opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Errorf("expected options bounded to exactly 4 items")
	}

	answer := item.Properties["correctAnswer"]
	if answer.Minimum == nil || *answer.Minimum != 0 || answer.Maximum == nil || *answer.Maximum != 3 {
		t.Errorf("expected correctAnswer bounded to [0,3]")
	}
	if len(item.Required) != 4 {
		t.Errorf("expected 4 required fields, got %d", len(item.Required))
	}
}

func TestSchemaInt(t *testing.T) {
	for _, v := range []any{4, int64(4), float64(4)} {
		if n, ok := schemaInt(v); !ok || n != 4 {
			t.Errorf("schemaInt(%T) = %d, %v", v, n, ok)
		}
	}
	if _, ok := schemaInt("4"); ok {
		t.Error("string must not be read as a number")
	}
}

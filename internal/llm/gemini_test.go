package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"minutes":  map[string]any{"type": "integer"},
			"ageGroup": map[string]any{"type": "string", "enum": []any{"3-4", "4-5", "5-6"}},
			"materials": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":         []any{"name", "minutes"},
		"propertyOrdering": []any{"name", "ageGroup", "minutes", "materials"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["minutes"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for minutes, got %s", schema.Properties["minutes"].Type)
	}
	if len(schema.Properties["ageGroup"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["ageGroup"].Enum))
	}
	if schema.Properties["materials"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for materials, got %s", schema.Properties["materials"].Type)
	}
	if schema.Properties["materials"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for materials items, got %s", schema.Properties["materials"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
	if len(schema.PropertyOrdering) != 4 || schema.PropertyOrdering[1] != "ageGroup" {
		t.Fatalf("unexpected property ordering: %v", schema.PropertyOrdering)
	}
}

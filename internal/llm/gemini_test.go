package llm

import (
	"testing"
)

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(signSchema().Definition)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["score"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for score, got %s", schema.Properties["score"].Type)
	}
	if len(schema.Properties["kind"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["kind"].Enum))
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "Quel panneau ?", Images: []Image{{MediaType: "image/webp", Data: []byte("webp")}}},
		{Role: RoleAssistant, Content: "Un stop."},
	})

	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	user := contents[0]
	if user.Role != "user" || len(user.Parts) != 2 {
		t.Fatalf("unexpected user content %+v", user)
	}
	if user.Parts[0].InlineData == nil || user.Parts[0].InlineData.MIMEType != "image/webp" {
		t.Fatalf("expected inline image first, got %+v", user.Parts[0])
	}
	if user.Parts[1].Text != "Quel panneau ?" {
		t.Fatalf("expected text part last, got %+v", user.Parts[1])
	}
	if contents[1].Role != "model" {
		t.Fatalf("assistant role should map to model, got %q", contents[1].Role)
	}
}

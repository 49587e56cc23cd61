package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model pass-through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "mistralai/pixtral-12b",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "mistralai/pixtral-12b" {
			t.Errorf("model = %q, want %q", p.ModelID(), "mistralai/pixtral-12b")
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})
}

func TestNewGroqProvider(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-oss", "openai/gpt-oss-120b"},
		{"llama-vision", "meta-llama/llama-4-scout-17b-16e-instruct"},
		{"qwen/qwen3-32b", "qwen/qwen3-32b"},
	}
	for _, tt := range tests {
		p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test", Model: tt.model})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.model, err)
		}
		if p.ModelID() != tt.want {
			t.Errorf("model %q resolved to %q, want %q", tt.model, p.ModelID(), tt.want)
		}
	}

	if _, err := NewGroqProvider(GroqConfig{Model: "gpt-oss"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

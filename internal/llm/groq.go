package llm

import "fmt"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

var groqModels = map[string]string{
	"gpt-oss":       "openai/gpt-oss-120b",
	"gpt-oss-small": "openai/gpt-oss-20b",
	"llama-vision":  "meta-llama/llama-4-scout-17b-16e-instruct",
}

// GroqProvider targets Groq's OpenAI-compatible endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	return &GroqProvider{
		OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, resolveModel(cfg.Model, groqModels)),
	}, nil
}

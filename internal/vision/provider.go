// Package vision extracts document fields with a vision-language model. It
// is the probabilistic extraction source: no built-in integrity check, so
// its output is cross-validated against the MRZ decoder rather than trusted
// alone.
package vision

import (
	"context"

	"github.com/tryalma/doccheck/internal/model"
)

// Request carries one extraction call to a provider.
type Request struct {
	ImagePath    string
	DocumentType string // "passport" (default) or "g28"
}

// Provider is a single vision-model backend. Implementations must be safe
// for concurrent use.
type Provider interface {
	Name() string
	ExtractFields(ctx context.Context, req Request) (model.FieldSet, error)
}

// Config selects and configures a provider.
type Config struct {
	// Provider name: "anthropic" or "openai". OpenAI-compatible endpoints
	// (vLLM, Ollama) work through the openai provider with a BaseURL.
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	// MaxTokens bounds the model response; field extraction needs little.
	MaxTokens int64 `yaml:"max_tokens" mapstructure:"max_tokens"`
	// RequestsPerMinute is the client-side rate limit; 0 disables it.
	RequestsPerMinute float64 `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// DefaultConfig returns the provider defaults.
func DefaultConfig() Config {
	return Config{
		Provider:          "anthropic",
		Model:             defaultAnthropicModel,
		MaxTokens:         1024,
		RequestsPerMinute: 30,
	}
}

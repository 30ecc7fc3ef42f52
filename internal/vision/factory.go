package vision

import (
	"strings"

	"github.com/rotisserie/eris"
)

// NewProvider creates a vision provider based on config.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic", "claude", "":
		return NewAnthropicProvider(cfg)
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, eris.Errorf("vision: unknown provider %q (supported: anthropic, openai)", cfg.Provider)
	}
}

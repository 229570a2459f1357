package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a generation provider based on configuration.
// An empty provider name disables generation (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "ollama":
		return NewOllamaProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: ollama, openai)", config.Provider)
	}
}

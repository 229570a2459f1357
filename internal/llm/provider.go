// Package llm is the typed boundary to the headline-generation
// collaborator. Providers are black boxes: given a prompt they return a
// string or fail. Decoding and repair of model output happens on this
// side of the boundary, in one best-effort decode function.
package llm

import (
	"context"
	"time"

	"github.com/ppiankov/wikiwire/internal/model"
)

// Provider defines the interface for generation backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool

	// Complete runs one completion and returns the raw model text
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is the input for one collaborator call
type CompletionRequest struct {
	// System primes the model's behavior
	System string

	// Prompt is the user content
	Prompt string

	// Temperature overrides the configured default when > 0
	Temperature float64

	// JSONMode asks the backend for strictly valid JSON where supported
	JSONMode bool

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "ollama", "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout time.Duration

	// Temperature default for generation
	Temperature float64

	// Seed pins generation where the backend supports it
	Seed int

	// NumCtx is the context window hint for local models
	NumCtx int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		Temperature: mc.Temperature,
		Seed:        mc.Seed,
		NumCtx:      mc.NumCtx,
	}
}

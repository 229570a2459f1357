package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/cache"
	"github.com/ppiankov/wikiwire/internal/llm"
	"github.com/ppiankov/wikiwire/internal/model"
	"github.com/ppiankov/wikiwire/internal/sentiment"
	"github.com/ppiankov/wikiwire/internal/worker"
)

// loadConfig layers the configuration sources: defaults, then the
// config file / WIKIWIRE_* env vars via viper. Flag overrides are
// applied by the individual commands on top of the result, followed by
// resolveSecrets.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// resolveSecrets pulls provider credentials from the conventional env
// vars. Keys never live in the config file.
func resolveSecrets(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// newLogger builds the process logger. Verbose mode switches to the
// human-readable development encoder at debug level.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildGenerator assembles the headline generator and its supporting
// pieces: provider, per-title cache and rate limiter. A disabled
// provider yields a generator that only ever produces snippet
// fallbacks.
func buildGenerator(cfg *model.Config, log *zap.Logger) (*llm.Generator, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	limiter := worker.NewLimiter(cfg.LLM.RatePerSec, cfg.LLM.Burst)
	return llm.NewGenerator(provider, c, limiter, *cfg, log), nil
}

// buildAnalyzer selects the sentiment backend: the remote scoring
// service when an endpoint is configured, the built-in lexicon
// otherwise.
func buildAnalyzer(cfg *model.Config) sentiment.Analyzer {
	if cfg.Sentiment.Endpoint != "" {
		return sentiment.NewRemoteAnalyzer(cfg.Sentiment)
	}
	return sentiment.NewLexiconAnalyzer()
}

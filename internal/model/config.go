package model

import "time"

// Config holds the complete wikiwire configuration
type Config struct {
	Stream    StreamConfig    `yaml:"stream" mapstructure:"stream"`
	Window    WindowConfig    `yaml:"window" mapstructure:"window"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Sentiment SentimentConfig `yaml:"sentiment" mapstructure:"sentiment"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
}

// StreamConfig controls the recentchange feed connection and admission gates
type StreamConfig struct {
	// URL of the SSE feed
	URL string `yaml:"url" mapstructure:"url"`

	// UserAgent sent on every connection attempt
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Wiki restricts events to a single source site ("" disables the gate)
	Wiki string `yaml:"wiki" mapstructure:"wiki"`

	// Namespaces lists accepted namespace IDs (0 = articles)
	Namespaces []int `yaml:"namespaces" mapstructure:"namespaces"`

	// RequireComment rejects events with an empty edit summary
	RequireComment bool `yaml:"require_comment" mapstructure:"require_comment"`

	// MinTitleLen is the minimum raw title length
	MinTitleLen int `yaml:"min_title_len" mapstructure:"min_title_len"`

	// MinByteDiff is the minimum absolute byte delta
	MinByteDiff int `yaml:"min_byte_diff" mapstructure:"min_byte_diff"`

	// RetryBase is the first reconnect wait
	RetryBase time.Duration `yaml:"retry_base" mapstructure:"retry_base"`

	// RetryMax caps the reconnect wait
	RetryMax time.Duration `yaml:"retry_max" mapstructure:"retry_max"`

	// BackoffPolicy selects the reconnect schedule: "exponential" or "linear"
	BackoffPolicy string `yaml:"backoff_policy" mapstructure:"backoff_policy"`
}

// WindowConfig controls batch-mode windowing and topic condensation
type WindowConfig struct {
	// Seconds is the nominal window length
	Seconds time.Duration `yaml:"seconds" mapstructure:"seconds"`

	// TopHeadlines caps the number of distinct topics per window
	TopHeadlines int `yaml:"top_headlines" mapstructure:"top_headlines"`

	// MaxWords is the hard word cap per headline
	MaxWords int `yaml:"max_words" mapstructure:"max_words"`

	// Blend weighs byte overlap vs frequency overlap in scoring
	Blend float64 `yaml:"blend" mapstructure:"blend"`

	// JaccardThreshold merges candidates into a token cluster at or above this similarity
	JaccardThreshold float64 `yaml:"jaccard_threshold" mapstructure:"jaccard_threshold"`

	// PhrasalThreshold merges cluster representatives that are near-duplicate phrasings
	PhrasalThreshold float64 `yaml:"phrasal_threshold" mapstructure:"phrasal_threshold"`

	// MinEditsForLLM skips the generation collaborator for sparser windows
	MinEditsForLLM int `yaml:"min_edits_for_llm" mapstructure:"min_edits_for_llm"`

	// MMRLambda balances relevance vs diversity in the optional selector
	MMRLambda float64 `yaml:"mmr_lambda" mapstructure:"mmr_lambda"`
}

// LLMConfig holds generation collaborator configuration
type LLMConfig struct {
	// Provider name: "ollama", "openai", "" (disabled)
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for hosted providers (never serialized)
	APIKey string `yaml:"-" mapstructure:"-"`

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout for API requests
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Temperature for generation
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// Seed pins generation for reproducibility (Ollama only)
	Seed int `yaml:"seed" mapstructure:"seed"`

	// NumCtx is the context window size hint (Ollama only)
	NumCtx int `yaml:"num_ctx" mapstructure:"num_ctx"`

	// RatePerSec throttles collaborator calls
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`

	// Burst allows short bursts above the sustained rate
	Burst int `yaml:"burst" mapstructure:"burst"`
}

// SentimentConfig holds sentiment collaborator configuration
type SentimentConfig struct {
	// Endpoint of the scoring service; "" uses the built-in lexicon analyzer
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Timeout for scoring requests
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ServerConfig holds the HTTP surface configuration
type ServerConfig struct {
	// Addr to listen on
	Addr string `yaml:"addr" mapstructure:"addr"`

	// RecentCap bounds the recent-history buffer
	RecentCap int `yaml:"recent_cap" mapstructure:"recent_cap"`

	// QueueCap bounds each subscriber queue
	QueueCap int `yaml:"queue_cap" mapstructure:"queue_cap"`
}

// CacheConfig controls the per-title headline cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Stream: StreamConfig{
			URL:            "https://stream.wikimedia.org/v2/stream/recentchange",
			UserAgent:      "wikiwire/0.1 (+https://github.com/ppiankov/wikiwire)",
			Wiki:           "enwiki",
			Namespaces:     []int{0},
			RequireComment: true,
			MinTitleLen:    4,
			MinByteDiff:    20,
			RetryBase:      3 * time.Second,
			RetryMax:       20 * time.Second,
			BackoffPolicy:  "exponential",
		},
		Window: WindowConfig{
			Seconds:          30 * time.Second,
			TopHeadlines:     5,
			MaxWords:         8,
			Blend:            0.80,
			JaccardThreshold: 0.69,
			PhrasalThreshold: 0.88,
			MinEditsForLLM:   12,
			MMRLambda:        0.75,
		},
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3.2:1b",
			BaseURL:     "http://localhost:11434",
			Timeout:     30 * time.Second,
			Temperature: 0.6,
			Seed:        42,
			NumCtx:      256,
			RatePerSec:  2.0,
			Burst:       4,
		},
		Sentiment: SentimentConfig{
			Endpoint: "",
			Timeout:  5 * time.Second,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RecentCap: 1000,
			QueueCap:  256,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
	}
}

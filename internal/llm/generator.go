package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/cache"
	"github.com/ppiankov/wikiwire/internal/clean"
	"github.com/ppiankov/wikiwire/internal/model"
	"github.com/ppiankov/wikiwire/internal/worker"
)

// limiterKey identifies the generation collaborator in the shared limiter
const limiterKey = "generation"

// Generator wraps a Provider with caching, throttling and the cleanup
// pipeline for model output. Failures never escape: per-edit generation
// degrades to an extractive snippet, batch generation reports failure so
// the caller can use the fallback generator.
type Generator struct {
	provider Provider
	cache    cache.Cache
	limiter  *worker.Limiter
	log      *zap.Logger

	maxWords     int
	temperature  float64
	cacheEnabled bool
}

// NewGenerator builds a Generator. provider may be nil (generation
// disabled); every call then takes the fallback path.
func NewGenerator(provider Provider, c cache.Cache, limiter *worker.Limiter, cfg model.Config, log *zap.Logger) *Generator {
	if c == nil {
		c = cache.Nop{}
	}
	return &Generator{
		provider:     provider,
		cache:        c,
		limiter:      limiter,
		log:          log,
		maxWords:     cfg.Window.MaxWords,
		temperature:  cfg.LLM.Temperature,
		cacheEnabled: cfg.Cache.Enabled,
	}
}

// Headline generates one headline for a gate-passed edit. The result is
// never empty: on any collaborator failure it falls back to the cleaned
// title snippet.
func (g *Generator) Headline(ctx context.Context, ev model.NormalizedEvent) string {
	if h, ok := g.cache.Get(ev.Title); ok {
		return h
	}

	h := g.generateEdit(ctx, ev)
	if h == "" {
		h = snippet(ev.Title)
	}
	if g.cacheEnabled && ev.Title != "" {
		g.cache.Set(ev.Title, h, 0) // 0 = cache default TTL
	}
	return h
}

func (g *Generator) generateEdit(ctx context.Context, ev model.NormalizedEvent) string {
	if g.provider == nil {
		return ""
	}
	if err := g.limiter.Wait(ctx, limiterKey); err != nil {
		return ""
	}

	prompt := fmt.Sprintf("Article being edited: %s\nEdit size: %d bytes\nEdit summary: %s\n\nGenerate ONE headline about this article:",
		ev.Title, ev.ByteDelta, ev.Comment)

	content, err := g.provider.Complete(ctx, CompletionRequest{
		System:      editRules(g.maxWords),
		Prompt:      prompt,
		Temperature: g.temperature,
	})
	if err != nil {
		g.log.Debug("headline generation failed", zap.Error(err), zap.String("title", ev.Title))
		return ""
	}

	for _, line := range strings.Split(content, "\n") {
		if h := Sanitize(CleanHeadline(line, g.maxWords)); h != "" {
			return h
		}
	}
	return ""
}

// BatchCandidates asks the model for n candidate headlines covering a
// window. Two attempts are made, the second stricter and cooler. A nil
// result means the collaborator was unusable; the caller must degrade
// to the extractive fallback and never propagate the failure.
func (g *Generator) BatchCandidates(ctx context.Context, entries []model.NormalizedEvent, mood string, n int) []string {
	if g.provider == nil || len(entries) == 0 {
		return nil
	}

	system := "You output strictly valid JSON. Headlines follow rules:\n" + batchRules(g.maxWords)
	prompt := fmt.Sprintf("Mood: %s\nContext (cleaned):\n%s\n\nReturn the JSON array now.",
		strings.ToUpper(mood), BatchContext(entries, 600))

	items := g.tryBatch(ctx, system, prompt, g.temperature*0.75)
	if len(items) == 0 {
		stricter := prompt + "\nOnly the JSON array; no commentary, no keys."
		items = g.tryBatch(ctx, system, stricter, 0.3)
	}

	var cleaned []string
	seen := make(map[string]struct{})
	for _, x := range items {
		h := Sanitize(CleanHeadline(x, g.maxWords))
		if h == "" {
			continue
		}
		k := strings.ToLower(h)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		cleaned = append(cleaned, h)
		if len(cleaned) >= n {
			break
		}
	}
	return cleaned
}

func (g *Generator) tryBatch(ctx context.Context, system, prompt string, temperature float64) []string {
	if temperature < 0.3 {
		temperature = 0.3
	}
	if err := g.limiter.Wait(ctx, limiterKey); err != nil {
		return nil
	}
	content, err := g.provider.Complete(ctx, CompletionRequest{
		System:      system,
		Prompt:      prompt,
		Temperature: temperature,
		JSONMode:    true,
	})
	if err != nil {
		g.log.Debug("batch generation failed", zap.Error(err))
		return nil
	}
	items, err := DecodeHeadlineList(content)
	if err != nil {
		g.log.Debug("batch decode failed", zap.Error(err))
		return nil
	}
	return items
}

// snippet is the absolute per-edit fallback: the cleaned title,
// truncated.
func snippet(title string) string {
	t := clean.CollapseSpaces(title)
	if len(t) > 60 {
		t = t[:60]
	}
	return t
}

package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/llm"
	"github.com/ppiankov/wikiwire/internal/model"
	"github.com/ppiankov/wikiwire/internal/score"
	"github.com/ppiankov/wikiwire/internal/sentiment"
	"github.com/ppiankov/wikiwire/internal/stream"
)

// Windows rolls fixed windows over the gated stream, condenses each
// into at most K distinct topics and prints them.
type Windows struct {
	client   *stream.Client
	gen      *llm.Generator
	analyzer sentiment.Analyzer
	cfg      *model.Config
	log      *zap.Logger
}

// NewWindows wires the clustering-mode pipeline
func NewWindows(client *stream.Client, gen *llm.Generator, analyzer sentiment.Analyzer,
	cfg *model.Config, log *zap.Logger) *Windows {
	return &Windows{client: client, gen: gen, analyzer: analyzer, cfg: cfg, log: log}
}

// Run rolls windows until the context is cancelled
func (w *Windows) Run(ctx context.Context) error {
	events := make(chan model.NormalizedEvent, 64)
	go w.client.Run(ctx, events)

	fmt.Printf("Rolling windows of %v. Ctrl+C to stop.\n", w.cfg.Window.Seconds)
	for ctx.Err() == nil {
		batch := stream.Collect(ctx, events, w.cfg.Window.Seconds)
		if ctx.Err() != nil {
			return nil
		}
		fmt.Printf("\nWindow %v: collected %d edits\n", w.cfg.Window.Seconds, len(batch))
		if len(batch) == 0 {
			fmt.Println("  (no events this window)")
			continue
		}

		mood := sentiment.WindowMood(ctx, w.analyzer, batch)
		fmt.Printf("  mood: %s\n", mood)

		topics := w.Topics(ctx, batch, mood)
		if len(topics) == 0 {
			fmt.Println("  (no distinct topics this window)")
			continue
		}
		fmt.Println("Headlines:")
		for _, t := range topics {
			fmt.Printf("  -> (%s, %d)\n", t.Representative, t.TotalScore)
		}
	}
	return nil
}

// Topics condenses one window into at most TopHeadlines distinct
// topics: candidates from the generation collaborator (or the
// extractive fallback for sparse windows or collaborator failure),
// blended scoring, greedy token clustering, phrasal fusion, cap to K.
// The result is never empty for a non-empty window and generation
// failures are never propagated.
func (w *Windows) Topics(ctx context.Context, batch []model.NormalizedEvent, mood string) []score.Cluster {
	wcfg := w.cfg.Window

	var candidates []string
	if len(batch) >= wcfg.MinEditsForLLM {
		// ask for more than we need; clustering prunes to distinct topics
		candidates = w.gen.BatchCandidates(ctx, batch, mood, wcfg.TopHeadlines*2)
	}
	if len(candidates) == 0 {
		if len(batch) < wcfg.MinEditsForLLM {
			w.log.Debug("window too sparse for generation, using fallback", zap.Int("edits", len(batch)))
		} else {
			w.log.Warn("generation collaborator unusable, using fallback")
		}
		candidates = score.Fallback(batch, wcfg.TopHeadlines, wcfg.MaxWords)
	}

	maps := score.BuildTermMaps(batch)
	scored := maps.ScoreAll(candidates, wcfg.Blend)
	clusters := score.ClusterAndMerge(scored, wcfg.JaccardThreshold)
	clusters = score.FusePhrasalDupes(clusters, wcfg.PhrasalThreshold)

	if len(clusters) > wcfg.TopHeadlines {
		clusters = clusters[:wcfg.TopHeadlines]
	}
	return clusters
}

package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/wikiwire/internal/pipeline"
	"github.com/ppiankov/wikiwire/internal/stream"
)

var (
	watchSeconds   time.Duration
	watchHeadlines int
	watchMaxWords  int
	watchJaccard   float64
	watchPhrasal   float64
	watchMinLLM    int
	watchProvider  string
	watchModel     string
	watchWiki      string
	watchNoCache   bool
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Condense fixed windows of edits into distinct topics",
	Long: `Watch rolls fixed time windows over the edit stream. Each window is
condensed into at most K distinct headline topics: candidates are
generated in one batch, scored against the window's term statistics,
clustered by token overlap and fused across near-duplicate phrasings.

Windows too sparse for generation fall back to extractive summaries.

Example:
  wikiwire watch
  wikiwire watch --seconds 60s --headlines 3
  wikiwire watch --jaccard 0.5 --phrasal 0.9 --min-llm 20`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchSeconds, "seconds", 0, "window length (default 30s)")
	watchCmd.Flags().IntVar(&watchHeadlines, "headlines", 0, "max distinct topics per window (default 5)")
	watchCmd.Flags().IntVar(&watchMaxWords, "max-words", 0, "hard word cap per headline (default 8)")
	watchCmd.Flags().Float64Var(&watchJaccard, "jaccard", 0, "token-overlap merge threshold (default 0.69)")
	watchCmd.Flags().Float64Var(&watchPhrasal, "phrasal", 0, "phrasal fusion threshold (default 0.88)")
	watchCmd.Flags().IntVar(&watchMinLLM, "min-llm", 0, "minimum edits per window for generation (default 12)")
	watchCmd.Flags().StringVar(&watchProvider, "provider", "", "LLM provider (ollama, openai, none)")
	watchCmd.Flags().StringVar(&watchModel, "model", "", "LLM model name")
	watchCmd.Flags().StringVar(&watchWiki, "wiki", "", "source wiki (default enwiki)")
	watchCmd.Flags().BoolVar(&watchNoCache, "no-cache", false, "disable the per-title headline cache")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchSeconds > 0 {
		cfg.Window.Seconds = watchSeconds
	}
	if watchHeadlines > 0 {
		cfg.Window.TopHeadlines = watchHeadlines
	}
	if watchMaxWords > 0 {
		cfg.Window.MaxWords = watchMaxWords
	}
	if watchJaccard > 0 {
		cfg.Window.JaccardThreshold = watchJaccard
	}
	if watchPhrasal > 0 {
		cfg.Window.PhrasalThreshold = watchPhrasal
	}
	if watchMinLLM > 0 {
		cfg.Window.MinEditsForLLM = watchMinLLM
	}
	switch watchProvider {
	case "":
	case "none":
		cfg.LLM.Provider = ""
	default:
		cfg.LLM.Provider = watchProvider
	}
	if watchModel != "" {
		cfg.LLM.Model = watchModel
	}
	if watchWiki != "" {
		cfg.Stream.Wiki = watchWiki
	}
	if watchNoCache {
		cfg.Cache.Enabled = false
	}
	if err := resolveSecrets(cfg); err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gen, err := buildGenerator(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := stream.NewClient(cfg.Stream, log)
	windows := pipeline.NewWindows(client, gen, buildAnalyzer(cfg), cfg, log)
	return windows.Run(ctx)
}

package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/hub"
	"github.com/ppiankov/wikiwire/internal/pipeline"
	"github.com/ppiankov/wikiwire/internal/server"
	"github.com/ppiankov/wikiwire/internal/stream"
)

var (
	serveAddr     string
	serveProvider string
	serveModel    string
	serveWiki     string
	serveMinBytes int
	serveNoCache  bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream one enriched record per edit over HTTP/SSE",
	Long: `Serve runs the per-edit pipeline: every admitted edit becomes a record
with a generated headline and a sentiment score, kept in a bounded
recent-history buffer and pushed to every connected SSE subscriber.

Endpoints:
  GET /health   liveness
  GET /config   active filters and model identifiers
  GET /recent   last n records (?n=, default 100)
  GET /stream   live SSE feed
  GET /metrics  Prometheus metrics

Example:
  wikiwire serve
  wikiwire serve --addr :9090 --provider openai --model gpt-4o-mini
  wikiwire serve --wiki dewiki --min-bytes 50`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "LLM provider (ollama, openai, none)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "LLM model name")
	serveCmd.Flags().StringVar(&serveWiki, "wiki", "", "source wiki (default enwiki)")
	serveCmd.Flags().IntVar(&serveMinBytes, "min-bytes", 0, "minimum absolute byte delta")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable the per-title headline cache")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	switch serveProvider {
	case "":
	case "none":
		cfg.LLM.Provider = ""
	default:
		cfg.LLM.Provider = serveProvider
	}
	if serveModel != "" {
		cfg.LLM.Model = serveModel
	}
	if serveWiki != "" {
		cfg.Stream.Wiki = serveWiki
	}
	if serveMinBytes > 0 {
		cfg.Stream.MinByteDiff = serveMinBytes
	}
	if serveNoCache {
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

	h := hub.New(cfg.Server.RecentCap, cfg.Server.QueueCap, log)
	defer h.Close()

	metrics := server.NewMetrics()
	client := stream.NewClient(cfg.Stream, log)
	producer := pipeline.NewProducer(client, gen, buildAnalyzer(cfg), h, metrics, log)

	errCh := make(chan error, 1)
	go func() {
		if err := producer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	srv := server.New(cfg, h, metrics, log)
	log.Info("wikiwire serving",
		zap.String("addr", cfg.Server.Addr),
		zap.String("wiki", cfg.Stream.Wiki),
		zap.String("provider", cfg.LLM.Provider))

	go func() {
		if err := srv.Run(ctx); err != nil {
			errCh <- err
		}
		stop()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

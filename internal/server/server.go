// Package server exposes the live headline feed over HTTP: liveness,
// config snapshot, recent-history queries and the SSE stream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/hub"
	"github.com/ppiankov/wikiwire/internal/model"
)

// Server is the HTTP surface over the broadcast hub
type Server struct {
	cfg     *model.Config
	hub     *hub.Hub
	metrics *Metrics
	log     *zap.Logger
	engine  *gin.Engine
}

// New wires the routes. The hub must outlive the server.
func New(cfg *model.Config, h *hub.Hub, metrics *Metrics, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), cors())

	s := &Server{cfg: cfg, hub: h, metrics: metrics, log: log, engine: engine}

	engine.GET("/health", s.handleHealth)
	engine.GET("/config", s.handleConfig)
	engine.GET("/recent", s.handleRecent)
	engine.GET("/stream", s.handleStream)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	return s
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleConfig returns the active thresholds and model identifiers.
// API keys never appear here.
func (s *Server) handleConfig(c *gin.Context) {
	cfg := s.cfg
	c.JSON(http.StatusOK, gin.H{
		"mode":      "per-edit",
		"provider":  cfg.LLM.Provider,
		"model":     cfg.LLM.Model,
		"max_words": cfg.Window.MaxWords,
		"filters": gin.H{
			"wiki":            cfg.Stream.Wiki,
			"namespaces":      cfg.Stream.Namespaces,
			"type":            "edit",
			"no_bots":         true,
			"min_title_len":   cfg.Stream.MinTitleLen,
			"require_comment": cfg.Stream.RequireComment,
			"min_byte_diff":   cfg.Stream.MinByteDiff,
		},
	})
}

// handleRecent returns the n most recent records, newest-last
func (s *Server) handleRecent(c *gin.Context) {
	n := 100
	if raw := c.Query("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			n = parsed
		}
	}
	if n < 1 {
		n = 1
	}
	if n > s.cfg.Server.RecentCap {
		n = s.cfg.Server.RecentCap
	}
	items := s.hub.Snapshot(n, false)
	if items == nil {
		items = []model.Record{}
	}
	c.JSON(http.StatusOK, items)
}

// handleStream is the long-lived SSE push connection: a hello comment
// line on connect, then one data frame per record. The subscriber
// deregisters itself when the peer goes away; the producer is never
// involved.
func (s *Server) handleStream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	sub := s.hub.Subscribe()
	defer s.hub.Unsubscribe(sub.ID)
	s.metrics.Subscribers.Inc()
	defer s.metrics.Subscribers.Dec()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-sub.Queue:
			if !ok {
				return
			}
			data, err := json.Marshal(rec)
			if err != nil {
				s.log.Warn("marshal record", zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// cors allows browser frontends on any origin to consume the feed
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

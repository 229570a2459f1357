// Package stream connects to the Wikimedia recentchange feed, applies
// the admission gates and emits normalized events. It owns the
// reconnect/backoff state machine and never terminates voluntarily.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/model"
)

// Client reads the SSE feed and produces NormalizedEvent values.
// One long-lived Run per process.
type Client struct {
	cfg  model.StreamConfig
	gate Gate
	http *http.Client
	log  *zap.Logger

	// OnReject, when set, observes the first failing gate per rejected
	// event (metrics hook).
	OnReject func(RejectReason)

	// OnReconnect, when set, observes each reconnect attempt after a
	// session error (metrics hook).
	OnReconnect func()
}

// NewClient builds a stream client. The HTTP client carries no overall
// timeout: the response body is a long-lived stream and cancellation
// comes from the context.
func NewClient(cfg model.StreamConfig, log *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		gate: NewGate(cfg),
		http: &http.Client{},
		log:  log,
	}
}

// Run connects, reads and reconnects until the context is cancelled.
// Accepted events are sent to out. Connection and read errors are never
// fatal: the loop backs off and retries forever. Malformed payloads are
// skipped silently and do not count as connection failures.
func (c *Client) Run(ctx context.Context, out chan<- model.NormalizedEvent) {
	backoff := NewBackoff(c.cfg)
	for {
		if ctx.Err() != nil {
			return
		}
		err := c.readSession(ctx, out)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if c.OnReconnect != nil {
				c.OnReconnect()
			}
			wait := backoff.Next()
			c.log.Warn("stream error, retrying",
				zap.Error(err),
				zap.Duration("wait", wait),
				zap.Int("failures", backoff.Failures()))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		// clean session: server ended the stream without error
		backoff.Reset()
		c.log.Info("stream session ended cleanly, reconnecting")
	}
}

// readSession runs one connect-and-read cycle. A nil return means the
// remote closed the stream cleanly.
func (c *Client) readSession(ctx context.Context, out chan<- model.NormalizedEvent) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("connect: unexpected status %d", resp.StatusCode)
	}
	c.log.Info("connected to event stream", zap.String("url", c.cfg.URL))

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data.Len() > 0 {
				c.dispatch(ctx, data.String(), out)
				data.Reset()
			}
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		default:
			// event:/id:/comment lines carry nothing we gate on
		}
	}
	if err := scanner.Err(); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil
		}
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

// dispatch decodes one SSE data payload, gates it and forwards survivors
func (c *Client) dispatch(ctx context.Context, payload string, out chan<- model.NormalizedEvent) {
	if !strings.HasPrefix(strings.TrimSpace(payload), "{") {
		return // non-object payloads are ignored
	}
	var raw RawChange
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return // malformed payloads are skipped, not failures
	}
	if reason, ok := c.gate.Admit(&raw); !ok {
		if c.OnReject != nil {
			c.OnReject(reason)
		}
		return
	}
	select {
	case out <- c.gate.Normalize(&raw):
	case <-ctx.Done():
	}
}

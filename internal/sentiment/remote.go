package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/wikiwire/internal/model"
)

// RemoteAnalyzer calls an external scoring service:
// POST {"text": ...} -> {"compound": ...}
type RemoteAnalyzer struct {
	endpoint   string
	httpClient *http.Client
}

// NewRemoteAnalyzer builds a client for the configured endpoint
func NewRemoteAnalyzer(cfg model.SentimentConfig) *RemoteAnalyzer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &RemoteAnalyzer{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Compound float64 `json:"compound"`
}

// Compound scores text via the remote service
func (r *RemoteAnalyzer) Compound(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("score request: unexpected status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	var sr scoreResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return 0, fmt.Errorf("unmarshal response: %w", err)
	}
	if sr.Compound < -1 || sr.Compound > 1 {
		return 0, fmt.Errorf("compound out of range: %v", sr.Compound)
	}
	return sr.Compound, nil
}

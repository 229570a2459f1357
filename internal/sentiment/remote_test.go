package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/wikiwire/internal/model"
)

func TestRemoteAnalyzer_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			t.Errorf("Expected text in request body, got err=%v text=%q", err, req.Text)
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"compound": 0.5})
	}))
	defer server.Close()

	a := NewRemoteAnalyzer(model.SentimentConfig{Endpoint: server.URL, Timeout: 5 * time.Second})
	got, err := a.Compound(context.Background(), "great news")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
}

func TestRemoteAnalyzer_RejectsOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"compound": 2.0})
	}))
	defer server.Close()

	a := NewRemoteAnalyzer(model.SentimentConfig{Endpoint: server.URL, Timeout: 5 * time.Second})
	if _, err := a.Compound(context.Background(), "text"); err == nil {
		t.Error("Expected error for compound outside [-1, 1]")
	}
}

func TestRemoteAnalyzer_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	a := NewRemoteAnalyzer(model.SentimentConfig{Endpoint: server.URL, Timeout: 5 * time.Second})
	if _, err := a.Compound(context.Background(), "text"); err == nil {
		t.Error("Expected error for non-200 status")
	}
}

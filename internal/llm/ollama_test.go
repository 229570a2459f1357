package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOllamaProvider_Complete_Success(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama3.2:1b",
			Response: "  Mayor opens new bridge  ",
			Done:     true,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL: server.URL,
		Model:   "llama3.2:1b",
		Timeout: 5 * time.Second,
		Seed:    42,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	got, err := provider.Complete(context.Background(), CompletionRequest{
		System:      "rules",
		Prompt:      "prompt",
		Temperature: 0.5,
		JSONMode:    true,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "Mayor opens new bridge" {
		t.Errorf("Expected trimmed response, got %q", got)
	}
	if gotReq.Format != "json" {
		t.Errorf("JSON mode must set format, got %q", gotReq.Format)
	}
	if gotReq.Stream {
		t.Error("Streaming must be disabled")
	}
	if gotReq.Options.Seed != 42 {
		t.Errorf("Seed not forwarded: %d", gotReq.Options.Seed)
	}
}

func TestOllamaProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not found"})
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "missing"})
	if _, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "x"}); err == nil {
		t.Error("Expected error from API failure")
	}
}

func TestOllamaProvider_Complete_RequiresModel(t *testing.T) {
	provider, _ := NewOllamaProvider(Config{BaseURL: "http://localhost:11434"})
	if _, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "x"}); err == nil {
		t.Error("Expected error without a model name")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "m"})
	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected availability with a healthy endpoint")
	}
	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("Expected unavailability after shutdown")
	}
}

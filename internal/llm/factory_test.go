package llm

import "testing"

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Provider: "ollama", Model: "llama3.2:1b"})
	if err != nil || p == nil || p.Name() != "ollama" {
		t.Errorf("Expected ollama provider, got (%v, %v)", p, err)
	}

	p, err = NewProvider(Config{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk-test"})
	if err != nil || p == nil || p.Name() != "openai" {
		t.Errorf("Expected openai provider, got (%v, %v)", p, err)
	}

	p, err = NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("Empty provider means generation disabled, got (%v, %v)", p, err)
	}

	if _, err = NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

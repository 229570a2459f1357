package sentiment

import (
	"context"
	"fmt"
	"testing"

	"github.com/ppiankov/wikiwire/internal/model"
)

type fixedAnalyzer struct {
	compound float64
	err      error
}

func (a fixedAnalyzer) Compound(context.Context, string) (float64, error) {
	return a.compound, a.err
}

func TestLabel_Boundaries(t *testing.T) {
	tests := []struct {
		compound float64
		want     string
	}{
		{0.5, "positive"},
		{0.21, "positive"},
		{0.2, "neutral"},
		{0.0, "neutral"},
		{-0.2, "neutral"},
		{-0.21, "negative"},
		{-0.9, "negative"},
	}
	for _, tt := range tests {
		if got := Label(tt.compound); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.compound, got, tt.want)
		}
	}
}

func TestScore_RoundsToThreeDecimals(t *testing.T) {
	got := Score(context.Background(), fixedAnalyzer{compound: 0.123456}, "text")
	if got.Compound != 0.123 {
		t.Errorf("Expected 0.123, got %v", got.Compound)
	}
	if got.Label != "neutral" {
		t.Errorf("Expected neutral, got %q", got.Label)
	}
}

func TestScore_NeutralOnAnalyzerFailure(t *testing.T) {
	got := Score(context.Background(), fixedAnalyzer{err: fmt.Errorf("service down")}, "text")
	if got.Label != "neutral" || got.Compound != 0 {
		t.Errorf("Failure must degrade to neutral/0, got %+v", got)
	}
}

func TestWindowMood(t *testing.T) {
	if got := WindowMood(context.Background(), fixedAnalyzer{}, nil); got != "neutral" {
		t.Errorf("Empty window must be neutral, got %q", got)
	}

	events := []model.NormalizedEvent{{Title: "A"}, {Title: "B"}}
	if got := WindowMood(context.Background(), fixedAnalyzer{compound: 0.8}, events); got != "positive" {
		t.Errorf("Expected positive mood, got %q", got)
	}
	if got := WindowMood(context.Background(), fixedAnalyzer{compound: -0.8}, events); got != "negative" {
		t.Errorf("Expected negative mood, got %q", got)
	}
}

func TestLexicon_PositiveAndNegative(t *testing.T) {
	lex := NewLexiconAnalyzer()

	pos, err := lex.Compound(context.Background(), "Victory celebrated with joy")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pos <= 0.2 {
		t.Errorf("Expected clearly positive compound, got %v", pos)
	}

	neg, err := lex.Compound(context.Background(), "Violence and death after attack")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if neg >= -0.2 {
		t.Errorf("Expected clearly negative compound, got %v", neg)
	}

	zero, err := lex.Compound(context.Background(), "Standard quarterly filing published")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if zero != 0 {
		t.Errorf("Expected 0 for lexicon-free text, got %v", zero)
	}
}

func TestLexicon_NegationFlipsValence(t *testing.T) {
	lex := NewLexiconAnalyzer()
	got, err := lex.Compound(context.Background(), "not good")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got >= 0 {
		t.Errorf("Negated positive must score negative, got %v", got)
	}
}

func TestLexicon_BoundedOutput(t *testing.T) {
	lex := NewLexiconAnalyzer()
	got, _ := lex.Compound(context.Background(), "murder murder murder tragedy catastrophe disaster killed")
	if got < -1 || got > 1 {
		t.Errorf("Compound escaped [-1, 1]: %v", got)
	}
}

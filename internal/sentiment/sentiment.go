// Package sentiment is the boundary to the sentiment-scoring
// collaborator: a black box that maps a string onto a signed compound
// score in [-1, 1]. When no remote endpoint is configured, a built-in
// lexicon analyzer serves the same contract locally.
package sentiment

import (
	"context"
	"math"

	"github.com/ppiankov/wikiwire/internal/model"
)

// Analyzer scores a string; implementations must be safe for use from
// the single producer goroutine.
type Analyzer interface {
	// Compound returns the signed compound score in [-1, 1]
	Compound(ctx context.Context, text string) (float64, error)
}

// Label maps a compound score to a display label
func Label(compound float64) string {
	switch {
	case compound > 0.2:
		return "positive"
	case compound < -0.2:
		return "negative"
	default:
		return "neutral"
	}
}

// Score runs the analyzer and packages the result. Collaborator
// failures yield the neutral default rather than failing the record.
func Score(ctx context.Context, a Analyzer, text string) model.Sentiment {
	compound, err := a.Compound(ctx, text)
	if err != nil {
		return model.Sentiment{Label: "neutral", Compound: 0}
	}
	compound = round3(compound)
	return model.Sentiment{Label: Label(compound), Compound: compound}
}

// WindowMood averages compound scores over a window of events and maps
// the mean onto the same labels. Comment text is preferred, title used
// when the comment is empty.
func WindowMood(ctx context.Context, a Analyzer, events []model.NormalizedEvent) string {
	if len(events) == 0 {
		return "neutral"
	}
	sum := 0.0
	for _, e := range events {
		text := e.Comment
		if text == "" {
			text = e.Title
		}
		c, err := a.Compound(ctx, text)
		if err != nil {
			continue
		}
		sum += c
	}
	return Label(sum / float64(len(events)))
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// Package score turns a window of accepted edits into a small ranked set
// of distinct topics: blended term scoring, greedy token clustering,
// phrasal near-duplicate fusion, MMR selection and an extractive fallback.
package score

import (
	"math"

	"github.com/ppiankov/wikiwire/internal/clean"
	"github.com/ppiankov/wikiwire/internal/model"
)

// TermMaps holds per-window token statistics.
// Bytes[w] is the sum of byte deltas of every edit mentioning w;
// Counts[w] is the raw occurrence count of w across the window.
type TermMaps struct {
	Bytes  map[string]int
	Counts map[string]int
}

// BuildTermMaps accumulates token statistics over a window
func BuildTermMaps(events []model.NormalizedEvent) TermMaps {
	m := TermMaps{
		Bytes:  make(map[string]int),
		Counts: make(map[string]int),
	}
	for _, e := range events {
		delta := e.ByteDelta
		if delta < 0 {
			delta = 0
		}
		for _, w := range clean.Tokens(clean.StripMarkup(e.Text())) {
			m.Counts[w]++
			m.Bytes[w] += delta
		}
	}
	return m
}

// UnitScale is the average byte weight of one token occurrence, floored
// at 1 so frequency stays meaningful in low-traffic windows.
func (m TermMaps) UnitScale() int {
	totalBytes, totalCount := 0, 0
	for _, b := range m.Bytes {
		totalBytes += b
	}
	for _, c := range m.Counts {
		totalCount += c
	}
	if totalCount == 0 {
		totalCount = 1
	}
	scale := totalBytes / totalCount
	if scale < 1 {
		scale = 1
	}
	return scale
}

// Blended scores a candidate headline against the window:
// blend*byteOverlap + (1-blend)*freqOverlap*unitScale, rounded.
// Pure byte weighting collapses to zero ties in sparse windows; the
// frequency term keeps scores differentiated.
func (m TermMaps) Blended(headline string, blend float64) int {
	bytes, count := 0, 0
	for _, w := range clean.Tokens(headline) {
		bytes += m.Bytes[w]
		count += m.Counts[w]
	}
	return int(math.Round(blend*float64(bytes) + (1.0-blend)*float64(count)*float64(m.UnitScale())))
}

// ScoreAll scores every candidate string in order
func (m TermMaps) ScoreAll(headlines []string, blend float64) []model.Candidate {
	out := make([]model.Candidate, 0, len(headlines))
	for _, h := range headlines {
		out = append(out, model.Candidate{Text: h, Score: m.Blended(h, blend)})
	}
	return out
}

package model

import "time"

// NormalizedEvent is a recentchange event that passed every admission gate.
// Title and comment have been stripped of namespaces, markup and URLs.
// Immutable once created.
type NormalizedEvent struct {
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	Editor    string `json:"editor"`
	Timestamp int64  `json:"timestamp"`
	ByteDelta int    `json:"byte_delta"`
}

// Text returns the cleaned title+comment blob used for scoring
func (e NormalizedEvent) Text() string {
	if e.Comment == "" {
		return e.Title
	}
	return e.Title + " " + e.Comment
}

// Candidate is a generated or extracted headline with its window relevance score
type Candidate struct {
	Text  string
	Score int
}

// Sentiment is the scored mood of a headline
type Sentiment struct {
	Label    string  `json:"label"`
	Compound float64 `json:"compound"`
}

// Record is the externally visible per-edit unit. Immutable once constructed.
type Record struct {
	Headline  string    `json:"headline"`
	Title     string    `json:"title"`
	Editor    string    `json:"editor"`
	ByteDiff  int       `json:"byte_diff"`
	Comment   string    `json:"comment"`
	Sentiment Sentiment `json:"sentiment"`
	ISOTime   string    `json:"iso_time"`
}

// ISOTimeFromUnix formats an event timestamp as UTC RFC3339
func ISOTimeFromUnix(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

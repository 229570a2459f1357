package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizedEvent_Text(t *testing.T) {
	e := NormalizedEvent{Title: "Solar Eclipse", Comment: "expanded"}
	if got := e.Text(); got != "Solar Eclipse expanded" {
		t.Errorf("Expected joined blob, got %q", got)
	}
	e.Comment = ""
	if got := e.Text(); got != "Solar Eclipse" {
		t.Errorf("Expected title only, got %q", got)
	}
}

func TestISOTimeFromUnix(t *testing.T) {
	if got := ISOTimeFromUnix(1700000000); got != "2023-11-14T22:13:20Z" {
		t.Errorf("Expected UTC RFC3339, got %q", got)
	}
}

func TestRecord_WireShape(t *testing.T) {
	rec := Record{
		Headline:  "Eclipse darkens the sky",
		Title:     "Solar Eclipse",
		Editor:    "alice",
		ByteDiff:  80,
		Comment:   "expanded",
		Sentiment: Sentiment{Label: "neutral", Compound: 0.123},
		ISOTime:   "2023-11-14T22:13:20Z",
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	body := string(data)
	for _, field := range []string{`"headline"`, `"title"`, `"editor"`, `"byte_diff"`, `"comment"`, `"sentiment"`, `"label"`, `"compound"`, `"iso_time"`} {
		if !strings.Contains(body, field) {
			t.Errorf("Missing wire field %s in %s", field, body)
		}
	}
}

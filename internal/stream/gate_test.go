package stream

import (
	"testing"

	"github.com/ppiankov/wikiwire/internal/model"
)

func testStreamConfig() model.StreamConfig {
	return model.StreamConfig{
		Wiki:           "enwiki",
		Namespaces:     []int{0},
		RequireComment: true,
		MinTitleLen:    4,
		MinByteDiff:    20,
	}
}

func lengths(old, new int) *struct {
	Old *int `json:"old"`
	New *int `json:"new"`
} {
	return &struct {
		Old *int `json:"old"`
		New *int `json:"new"`
	}{Old: &old, New: &new}
}

func validChange() *RawChange {
	return &RawChange{
		Wiki:      "enwiki",
		Type:      "edit",
		Namespace: 0,
		Title:     "Solar Eclipse",
		Comment:   "expanded section",
		User:      "alice",
		Bot:       false,
		Timestamp: 1700000000,
		Length:    lengths(100, 180),
	}
}

func TestGate_AdmitsValidEvent(t *testing.T) {
	gate := NewGate(testStreamConfig())
	if reason, ok := gate.Admit(validChange()); !ok {
		t.Fatalf("Expected admission, got reject %q", reason)
	}
}

func TestGate_RejectReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawChange)
		want   RejectReason
	}{
		{"wiki", func(c *RawChange) { c.Wiki = "dewiki" }, RejectWiki},
		{"namespace", func(c *RawChange) { c.Namespace = 14 }, RejectNamespace},
		{"type", func(c *RawChange) { c.Type = "log" }, RejectType},
		{"bot", func(c *RawChange) { c.Bot = true }, RejectBot},
		{"title", func(c *RawChange) { c.Title = "Ox" }, RejectTitle},
		{"comment", func(c *RawChange) { c.Comment = "" }, RejectComment},
		{"byte_diff", func(c *RawChange) { c.Length = lengths(100, 110) }, RejectByteDiff},
	}
	gate := NewGate(testStreamConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validChange()
			tt.mutate(c)
			reason, admitted := gate.Admit(c)
			if admitted || reason != tt.want {
				t.Errorf("Expected reject %q, got (%q, %v)", tt.want, reason, admitted)
			}
		})
	}
}

func TestGate_FirstFailingGateWins(t *testing.T) {
	// wrong wiki AND bot: wiki is checked first
	c := validChange()
	c.Wiki = "frwiki"
	c.Bot = true
	gate := NewGate(testStreamConfig())
	if reason, ok := gate.Admit(c); ok || reason != RejectWiki {
		t.Errorf("Expected wiki rejection first, got (%q, %v)", reason, ok)
	}
}

func TestGate_EmptyWikiDisablesGate(t *testing.T) {
	cfg := testStreamConfig()
	cfg.Wiki = ""
	c := validChange()
	c.Wiki = "jawiki"
	if reason, ok := NewGate(cfg).Admit(c); !ok {
		t.Errorf("Expected admission with wiki gate disabled, got %q", reason)
	}
}

func TestRawChange_ByteDelta(t *testing.T) {
	c := &RawChange{Length: lengths(200, 150)}
	if got := c.ByteDelta(); got != 50 {
		t.Errorf("Expected 50 from length pair, got %d", got)
	}

	oldSize, newSize := 300, 420
	c = &RawChange{}
	c.Revision = &struct {
		Old *struct {
			Size *int `json:"size"`
		} `json:"old"`
		New *struct {
			Size *int `json:"size"`
		} `json:"new"`
	}{
		Old: &struct {
			Size *int `json:"size"`
		}{Size: &oldSize},
		New: &struct {
			Size *int `json:"size"`
		}{Size: &newSize},
	}
	if got := c.ByteDelta(); got != 120 {
		t.Errorf("Expected 120 from revision sizes, got %d", got)
	}

	if got := (&RawChange{}).ByteDelta(); got != 0 {
		t.Errorf("Expected 0 with no size info, got %d", got)
	}
}

func TestGate_Normalize(t *testing.T) {
	gate := NewGate(testStreamConfig())
	c := validChange()
	c.Title = "Talk:Solar Eclipse"
	c.Comment = "see https://example.org for details"

	ev := gate.Normalize(c)
	if ev.Title != "Solar Eclipse" {
		t.Errorf("Expected cleaned title 'Solar Eclipse', got %q", ev.Title)
	}
	if ev.Editor != "alice" || ev.Timestamp != 1700000000 || ev.ByteDelta != 80 {
		t.Errorf("Unexpected normalized event: %+v", ev)
	}
}

package stream

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/wikiwire/internal/model"
)

func TestCollect_ReturnsOnChannelClose(t *testing.T) {
	ch := make(chan model.NormalizedEvent, 4)
	ch <- model.NormalizedEvent{Title: "A"}
	ch <- model.NormalizedEvent{Title: "B"}
	ch <- model.NormalizedEvent{Title: "C"}
	close(ch)

	got := Collect(context.Background(), ch, 5*time.Second)
	if len(got) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(got))
	}
	if got[0].Title != "A" || got[2].Title != "C" {
		t.Errorf("Events out of order: %+v", got)
	}
}

func TestCollect_ReturnsOnWindowElapse(t *testing.T) {
	ch := make(chan model.NormalizedEvent, 1)
	ch <- model.NormalizedEvent{Title: "A"}

	start := time.Now()
	got := Collect(context.Background(), ch, 50*time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(got))
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Window did not elapse in time")
	}
}

func TestCollect_ReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := make(chan model.NormalizedEvent)

	got := Collect(ctx, ch, time.Hour)
	if len(got) != 0 {
		t.Errorf("Expected no events, got %d", len(got))
	}
}

package stream

import (
	"context"
	"time"

	"github.com/ppiankov/wikiwire/internal/model"
)

// Collect gathers events from ch for approximately window. It returns
// as soon as the window elapses, the channel closes, or the context is
// cancelled. Events already received are always returned; the window is
// never preempted mid-item.
func Collect(ctx context.Context, ch <-chan model.NormalizedEvent, window time.Duration) []model.NormalizedEvent {
	var out []model.NormalizedEvent
	timer := time.NewTimer(window)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timer.C:
			return out
		case <-ctx.Done():
			return out
		}
	}
}

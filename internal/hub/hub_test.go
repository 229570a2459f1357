package hub

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/model"
)

func rec(i int) model.Record {
	return model.Record{Headline: fmt.Sprintf("headline %d", i)}
}

func TestHub_PublishOrderSurvivesRoundTrip(t *testing.T) {
	h := New(1000, 16, zap.NewNop())
	for i := 0; i < 5; i++ {
		h.Publish(rec(i))
	}

	got := h.Snapshot(3, false)
	require.Len(t, got, 3)
	// oldest-first of the 3 most recent
	assert.Equal(t, "headline 2", got[0].Headline)
	assert.Equal(t, "headline 4", got[2].Headline)

	newest := h.Snapshot(3, true)
	assert.Equal(t, "headline 4", newest[0].Headline)
}

func TestHub_HistoryCapEvictsOldest(t *testing.T) {
	h := New(10, 16, zap.NewNop())
	for i := 0; i < 15; i++ {
		h.Publish(rec(i))
	}

	assert.Equal(t, 10, h.Len())
	got := h.Snapshot(10, false)
	require.Len(t, got, 10)
	assert.Equal(t, "headline 5", got[0].Headline)
	assert.Equal(t, "headline 14", got[9].Headline)
}

func TestHub_SlowSubscriberDropsWithoutBlocking(t *testing.T) {
	h := New(1000, 4, zap.NewNop())
	drops := 0
	h.OnDrop = func() { drops++ }

	sub := h.Subscribe()
	defer h.Unsubscribe(sub.ID)

	// nobody reads the queue: publishes past capacity must drop, not block
	for i := 0; i < 10; i++ {
		h.Publish(rec(i))
	}

	assert.Equal(t, 4, len(sub.Queue))
	assert.Equal(t, 6, drops)
	// history is unaffected by subscriber drops
	assert.Equal(t, 10, h.Len())
}

func TestHub_DropAffectsOnlySlowSubscriber(t *testing.T) {
	h := New(1000, 4, zap.NewNop())
	slow := h.Subscribe()
	fast := h.Subscribe()
	defer h.Unsubscribe(slow.ID)
	defer h.Unsubscribe(fast.ID)

	for i := 0; i < 6; i++ {
		h.Publish(rec(i))
		<-fast.Queue // fast reader keeps up
	}

	assert.Equal(t, 4, len(slow.Queue))
	assert.Equal(t, 0, len(fast.Queue))
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	h := New(10, 4, zap.NewNop())
	sub := h.Subscribe()
	require.Equal(t, 1, h.Subscribers())

	h.Unsubscribe(sub.ID)
	h.Unsubscribe(sub.ID)
	assert.Equal(t, 0, h.Subscribers())

	// queue is closed after unsubscribe
	_, open := <-sub.Queue
	assert.False(t, open)
}

func TestHub_CloseRejectsFurtherWork(t *testing.T) {
	h := New(10, 4, zap.NewNop())
	sub := h.Subscribe()
	h.Close()

	_, open := <-sub.Queue
	assert.False(t, open)

	h.Publish(rec(1))
	assert.Equal(t, 0, h.Len())

	late := h.Subscribe()
	_, open = <-late.Queue
	assert.False(t, open)
}

func TestHub_ConcurrentPublishAndSubscribe(t *testing.T) {
	h := New(1000, 64, zap.NewNop())
	var wg sync.WaitGroup

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h.Publish(rec(i))
			}
		}()
	}
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				sub := h.Subscribe()
				for len(sub.Queue) > 0 {
					<-sub.Queue
				}
				h.Unsubscribe(sub.ID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, h.Len())
	assert.Equal(t, 0, h.Subscribers())
}

func TestRecentBuffer_SnapshotIsACopy(t *testing.T) {
	h := New(10, 4, zap.NewNop())
	h.Publish(rec(1))

	snap := h.Snapshot(1, false)
	require.Len(t, snap, 1)
	snap[0].Headline = "mutated"

	again := h.Snapshot(1, false)
	assert.Equal(t, "headline 1", again[0].Headline)
}

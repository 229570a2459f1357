package hub

import "github.com/ppiankov/wikiwire/internal/model"

// recentBuffer is a fixed-capacity FIFO of records backed by a ring.
// Append past capacity evicts the oldest entry. Not safe for concurrent
// use on its own; the hub's mutex guards it.
type recentBuffer struct {
	buf   []model.Record
	start int
	count int
}

func newRecentBuffer(capacity int) *recentBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &recentBuffer{buf: make([]model.Record, capacity)}
}

func (r *recentBuffer) append(rec model.Record) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = rec
		r.count++
		return
	}
	// full: overwrite the oldest slot
	r.buf[r.start] = rec
	r.start = (r.start + 1) % len(r.buf)
}

// snapshot returns up to n most recent records. newestFirst reverses
// the natural oldest-first order. The result is a copy.
func (r *recentBuffer) snapshot(n int, newestFirst bool) []model.Record {
	if n > r.count {
		n = r.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]model.Record, n)
	// oldest-first slice of the n most recent entries
	first := r.start + r.count - n
	for i := 0; i < n; i++ {
		out[i] = r.buf[(first+i)%len(r.buf)]
	}
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func (r *recentBuffer) len() int {
	return r.count
}

package stream

import (
	"math/rand"
	"time"

	"github.com/ppiankov/wikiwire/internal/model"
)

// Backoff policies for the reconnect loop. The repository historically
// carried both schedules; exponential is the default, linear stays
// available behind configuration.
const (
	PolicyExponential = "exponential"
	PolicyLinear      = "linear"
)

const maxJitter = 500 * time.Millisecond

// Backoff tracks consecutive connection failures and produces the next
// reconnect wait. Not safe for concurrent use; the ingestion loop owns it.
type Backoff struct {
	base     time.Duration
	cap      time.Duration
	policy   string
	failures int

	jitter func() time.Duration // injectable for tests
}

// NewBackoff builds a backoff tracker from stream configuration
func NewBackoff(cfg model.StreamConfig) *Backoff {
	policy := cfg.BackoffPolicy
	if policy != PolicyLinear {
		policy = PolicyExponential
	}
	return &Backoff{
		base:   cfg.RetryBase,
		cap:    cfg.RetryMax,
		policy: policy,
		jitter: func() time.Duration { return time.Duration(rand.Int63n(int64(maxJitter))) },
	}
}

// Next returns the wait before the next connect attempt and records the
// failure. Exponential: min(base * 2^failures, cap); linear:
// min(base * (failures+1), cap). A small random jitter is added so
// reconnecting clients don't thunder in lockstep.
func (b *Backoff) Next() time.Duration {
	var wait time.Duration
	switch b.policy {
	case PolicyLinear:
		wait = b.base * time.Duration(b.failures+1)
	default:
		wait = b.base << uint(b.failures)
		if wait <= 0 { // shift overflow
			wait = b.cap
		}
	}
	if wait > b.cap {
		wait = b.cap
	}
	b.failures++
	return wait + b.jitter()
}

// Reset clears the failure count after a clean session
func (b *Backoff) Reset() {
	b.failures = 0
}

// Failures returns the consecutive failure count
func (b *Backoff) Failures() int {
	return b.failures
}

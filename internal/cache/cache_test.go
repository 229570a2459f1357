package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	c.Set("Solar Eclipse", "Eclipse darkens the sky", 0)
	got, found := c.Get("Solar Eclipse")
	if !found || got != "Eclipse darkens the sky" {
		t.Errorf("Expected hit, got (%q, %v)", got, found)
	}

	c.Clear()
	if _, found := c.Get("Solar Eclipse"); found {
		t.Error("Expected miss after Clear")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)
	c.Set("k", "v", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestNop_AlwaysMisses(t *testing.T) {
	var c Cache = Nop{}
	c.Set("k", "v", time.Minute)
	if _, found := c.Get("k"); found {
		t.Error("Nop cache must never hit")
	}
	c.Clear()
}

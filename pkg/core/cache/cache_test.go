package cache

import (
	"testing"
	"time"

	"finagentex/pkg/models"
)

func TestKey(t *testing.T) {
	if got := Key("AAPL", models.Annual); got != "fundamentals:AAPL:annual" {
		t.Errorf("key: got %q", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	c.Set("a", []byte("payload"), time.Hour)
	if v, ok := c.Get("a"); !ok || string(v) != "payload" {
		t.Errorf("fresh entry missing: %q %v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("absent key must miss")
	}

	// An expired entry misses even before the sweeper runs.
	c.Set("b", []byte("x"), -time.Second)
	if _, ok := c.Get("b"); ok {
		t.Error("expired entry must miss")
	}

	// Overwrite refreshes both value and TTL.
	c.Set("a", []byte("v2"), time.Hour)
	if v, _ := c.Get("a"); string(v) != "v2" {
		t.Errorf("overwrite lost: %q", v)
	}
}

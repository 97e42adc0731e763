package cache

import (
	"testing"
	"time"
)

func TestTTLBasics(t *testing.T) {
	c := NewTTL[string, int]()
	if _, ok := c.Get("a"); ok {
		t.Fatalf("unexpected hit on empty cache")
	}
	c.Set("a", 1, time.Minute)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("got %v %v", v, ok)
	}
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("entry should be gone after delete")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL[string, int]()
	c.Set("a", 1, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expired entry should miss")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *TTL[string, int]
	c.Set("a", 1, time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("nil cache should always miss")
	}
	c.Delete("a")
}

package memory

import (
	"testing"
	"time"
)

func TestLRUTTLEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUTTL[string, int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a evicted too early")
	}
	c.Set("c", 3) // evicts b, the least recently used
	if _, ok := c.Get("b"); ok {
		t.Fatalf("b survived past capacity")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a = %d (%v), want 1", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
}

func TestLRUTTLExpiresEntries(t *testing.T) {
	c := NewLRUTTL[string, string](8, 10*time.Millisecond)
	c.Set("k", "v")
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("entry expired immediately")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("entry survived past its TTL")
	}
}

func TestLRUTTLDeleteAndClear(t *testing.T) {
	c := NewLRUTTL[string, int](4, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("a survived Delete")
	}
	c.Set("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len after Clear = %d, want 0", c.Len())
	}
}

package utils

import "testing"

func TestLRUCacheHitAndMiss(t *testing.T) {
	c := NewLRUCache(2)

	if _, ok := c.Get("a"); ok {
		t.Error("empty cache should miss")
	}

	c.Put("a", 1)
	v, ok := c.Get("a")
	if !ok || v.(int) != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache(2)
	c.Put("a", 1)
	c.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len: got %d, want 2", c.Len())
	}
}

func TestLRUCacheUpdateExisting(t *testing.T) {
	c := NewLRUCache(1)
	c.Put("a", 1)
	c.Put("a", 2)

	v, ok := c.Get("a")
	if !ok || v.(int) != 2 {
		t.Errorf("Get(a) = %v, %v; want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len: got %d, want 1", c.Len())
	}
}

package utils

import (
	"testing"
	"time"
)

func TestInsightCacheGetSet(t *testing.T) {
	cache := NewInsightCache(100, 5*time.Minute)

	if _, ok := cache.Get(1, 1, "What are the trends?"); ok {
		t.Fatal("expected cache miss for a new key")
	}

	cache.Set(1, 1, "What are the trends?", "answer one")
	got, ok := cache.Get(1, 1, "What are the trends?")
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if got != "answer one" {
		t.Errorf("got %q, want %q", got, "answer one")
	}
}

func TestInsightCacheKeySeparation(t *testing.T) {
	cache := NewInsightCache(100, 5*time.Minute)
	cache.Set(1, 1, "q", "a")

	if _, ok := cache.Get(2, 1, "q"); ok {
		t.Error("different user must not share a cached answer")
	}
	if _, ok := cache.Get(1, 2, "q"); ok {
		t.Error("different file must not share a cached answer")
	}
	if _, ok := cache.Get(1, 1, "q "); ok {
		t.Error("message text is part of the key verbatim")
	}
}

func TestInsightCacheOverwrite(t *testing.T) {
	cache := NewInsightCache(100, 5*time.Minute)
	cache.Set(1, 1, "q", "old")
	cache.Set(1, 1, "q", "new")

	got, ok := cache.Get(1, 1, "q")
	if !ok || got != "new" {
		t.Fatalf("got (%q, %v), want overwrite to %q", got, ok, "new")
	}
}

func TestInsightCacheEviction(t *testing.T) {
	cache := NewInsightCache(2, 5*time.Minute)
	cache.Set(1, 1, "a", "1")
	cache.Set(1, 1, "b", "2")
	cache.Set(1, 1, "c", "3")

	hits := 0
	for _, q := range []string{"a", "b", "c"} {
		if _, ok := cache.Get(1, 1, q); ok {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("capacity 2 cache holds %d entries after 3 inserts", hits)
	}
	if _, ok := cache.Get(1, 1, "c"); !ok {
		t.Error("newest entry should survive eviction")
	}
}

func TestInsightCacheTTLExpiry(t *testing.T) {
	cache := NewInsightCache(100, 50*time.Millisecond)
	cache.Set(1, 1, "q", "a")

	if _, ok := cache.Get(1, 1, "q"); !ok {
		t.Fatal("expected hit right after Set")
	}
	time.Sleep(100 * time.Millisecond)
	if _, ok := cache.Get(1, 1, "q"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}

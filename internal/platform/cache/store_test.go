package cache

import (
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore(time.Minute)
	s.Set("cpu-skill:50", "team-1")

	got, ok := s.Get("cpu-skill:50")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.(string) != "team-1" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore(time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }

	s.Set("k", 1)
	s.now = func() time.Time { return base.Add(2 * time.Minute) }

	if _, ok := s.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s := NewStore(0)
	base := time.Now()
	s.now = func() time.Time { return base }

	s.Set("k", 1)
	s.now = func() time.Time { return base.Add(24 * time.Hour) }

	if _, ok := s.Get("k"); !ok {
		t.Fatal("expected entry to persist without ttl")
	}
}

func TestStore_EmptyKeyIgnored(t *testing.T) {
	s := NewStore(time.Minute)
	s.Set("", 1)
	if _, ok := s.Get(""); ok {
		t.Fatal("empty key must never hit")
	}
}

package cachestore_test

import (
	"context"
	"testing"
	"time"

	"github.com/jcpaschoal/whereabouts/business/sdk/cachestore"
)

func TestMemorySetGetDel(t *testing.T) {
	m := cachestore.NewMemory(0)
	defer m.Close()
	ctx := context.Background()

	if _, ok, err := m.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(raw) != "v" {
		t.Fatalf("got %q, want %q", raw, "v")
	}

	if err := m.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("key should be gone after Del")
	}
}

func TestMemoryTTL(t *testing.T) {
	m := cachestore.NewMemory(0)
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok, _ := m.Get(ctx, "short"); ok {
		t.Error("entry should have expired")
	}
	if _, ok, _ := m.Get(ctx, "forever"); !ok {
		t.Error("zero TTL must mean no expiry")
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := cachestore.NewMemory(0)
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("old"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "k", []byte("new"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	raw, ok, _ := m.Get(ctx, "k")
	if !ok || string(raw) != "new" {
		t.Fatalf("overwrite should replace value and TTL: ok=%v raw=%q", ok, raw)
	}
}

func TestMemoryCleanup(t *testing.T) {
	m := cachestore.NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), 5*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("cleanup loop should have pruned the entry")
	}

	m.Close()
	m.Close()
}

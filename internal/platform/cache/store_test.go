package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatal("empty store returned a value")
	}

	store.Set(ctx, "stats:owner:ent-a:list", []string{"a"})
	value, ok := store.Get(ctx, "stats:owner:ent-a:list")
	if !ok {
		t.Fatal("stored value not found")
	}
	if got := value.([]string); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected value: %v", got)
	}

	store.Delete(ctx, "stats:owner:ent-a:list")
	if _, ok := store.Get(ctx, "stats:owner:ent-a:list"); ok {
		t.Fatal("deleted value still present")
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "stats:owner:ent-a:list", 1)
	store.Set(ctx, "stats:owner:ent-a:count", 2)
	store.Set(ctx, "stats:owner:ent-b:list", 3)

	store.DeletePrefix(ctx, "stats:owner:ent-a:")

	if _, ok := store.Get(ctx, "stats:owner:ent-a:list"); ok {
		t.Fatal("prefixed key survived invalidation")
	}
	if _, ok := store.Get(ctx, "stats:owner:ent-a:count"); ok {
		t.Fatal("prefixed key survived invalidation")
	}
	if _, ok := store.Get(ctx, "stats:owner:ent-b:list"); !ok {
		t.Fatal("unrelated key was invalidated")
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "k", "v")
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatal("fresh value missing")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expired value still served")
	}
}

func TestStoreGetOrLoadCachesResult(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "loaded" {
			t.Fatalf("unexpected value: %v", value)
		}
	}
	if loads != 1 {
		t.Fatalf("loader ran %d times, want 1", loads)
	}
}

func TestStoreGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	loadErr := errors.New("backend down")
	loads := 0
	_, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		loads++
		return nil, loadErr
	})
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}

	value, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		loads++
		return "recovered", nil
	})
	if err != nil || value != "recovered" {
		t.Fatalf("retry after error failed: value=%v err=%v", value, err)
	}
	if loads != 2 {
		t.Fatalf("loader ran %d times, want 2", loads)
	}
}

func TestStoreGetOrLoadDeduplicatesConcurrentLoads(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	var loads atomic.Int32
	gate := make(chan struct{})
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		<-gate
		return "loaded", nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, err := store.GetOrLoad(ctx, "k", loader)
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			results[i] = value
		}(i)
	}

	// Give the racers time to pile up behind the single in-flight load.
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
	for i, value := range results {
		if value != "loaded" {
			t.Fatalf("caller %d got %v", i, value)
		}
	}
}

package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

type inflight struct {
	done  chan struct{}
	value any
	err   error
}

// Store is a process-local TTL cache. GetOrLoad deduplicates concurrent
// loads for the same key: one caller runs the loader, the rest wait for its
// result instead of stampeding the backing store.
type Store struct {
	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*inflight
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries:  make(map[string]entry),
		inflight: make(map[string]*inflight),
		ttl:      ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(key)
}

func (s *Store) getLocked(key string) (any, bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(time.Now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	s.mu.Lock()
	if value, ok := s.getLocked(key); ok {
		s.mu.Unlock()
		return value, nil
	}
	if f, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		<-f.done
		return f.value, f.err
	}
	f := &inflight{done: make(chan struct{})}
	s.inflight[key] = f
	s.mu.Unlock()

	f.value, f.err = loader(ctx)

	s.mu.Lock()
	delete(s.inflight, key)
	if f.err == nil {
		expiresAt := time.Time{}
		if s.ttl > 0 {
			expiresAt = time.Now().Add(s.ttl)
		}
		s.entries[key] = entry{value: f.value, expiresAt: expiresAt}
	}
	s.mu.Unlock()
	close(f.done)

	return f.value, f.err
}

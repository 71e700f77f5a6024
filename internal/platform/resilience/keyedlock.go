package resilience

import "sync"

// KeyedLock grants at most one holder per key. TryAcquire never blocks and
// never queues: a caller that loses the race is rejected and must retry later.
// State lives in process memory only, so a restart clears every held key.
type KeyedLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// TryAcquire claims key if it is free. The check and the claim happen under a
// single lock so two concurrent callers can never both succeed.
func (l *KeyedLock) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held == nil {
		l.held = make(map[string]struct{})
	}
	if _, taken := l.held[key]; taken {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

// Release frees key. Releasing a key that is not held is a no-op.
func (l *KeyedLock) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}

func (l *KeyedLock) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, taken := l.held[key]
	return taken
}

// Len reports how many keys are currently held.
func (l *KeyedLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

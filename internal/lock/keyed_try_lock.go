// Package lock provides in-process, per-key mutual exclusion for operations
// that must never run concurrently against the same logical resource (e.g.
// rotating a single managed key), without serializing unrelated keys behind
// one global mutex.
package lock

import "sync"

// KeyedTryLock guards a set of string-identified resources, grounded on the
// same map-plus-mutex shape NonceLedger uses to track per-key state.
//
// Unlike a plain sync.Mutex per key, TryLock never blocks: a caller that
// loses the race gets ok=false immediately, which is what lets the key
// lifecycle rotation path surface RotationInProgress to the caller instead
// of queuing behind an in-flight rotation.
type KeyedTryLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewKeyedTryLock creates an empty KeyedTryLock.
func NewKeyedTryLock() *KeyedTryLock {
	return &KeyedTryLock{held: make(map[string]struct{})}
}

// TryLock attempts to acquire the lock for key. If another caller already
// holds it, ok is false and unlock is nil. On success, the caller must call
// unlock exactly once to release the key.
func (l *KeyedTryLock) TryLock(key string) (unlock func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, false
	}
	l.held[key] = struct{}{}

	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, true
}

// Locked reports whether key is currently held, for tests and diagnostics.
func (l *KeyedTryLock) Locked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, busy := l.held[key]
	return busy
}

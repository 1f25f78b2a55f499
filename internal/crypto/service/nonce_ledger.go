package service

import (
	"container/list"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
)

const maxGenerateAttempts = 8

// nonceEntry is the value stored in each key's FIFO list.
type nonceEntry struct {
	nonce      string
	recordedAt time.Time
}

// ledgerBucket tracks the nonces seen for a single key: an insertion-ordered
// list for FIFO eviction plus a set for O(1) membership checks.
type ledgerBucket struct {
	order *list.List
	index map[string]*list.Element
}

func newLedgerBucket() *ledgerBucket {
	return &ledgerBucket{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

// NonceLedger tracks nonces issued per key so the AEAD engine can refuse to
// reuse one, bounding memory with both a per-key count and an age limit.
//
// A 96-bit random nonce collides with negligible probability, but the ledger
// still checks membership before accepting one: a repeated nonce for the
// same key would let an attacker replay or forge ciphertext under GCM/Poly1305.
type NonceLedger struct {
	mu               sync.Mutex
	buckets          map[string]*ledgerBucket
	maxTrackedPerKey int
	retention        time.Duration
}

// NewNonceLedger creates a ledger bounding each key's tracked nonce set to
// maxTrackedPerKey entries, pruning entries older than retention on every
// Record call.
func NewNonceLedger(maxTrackedPerKey int, retention time.Duration) *NonceLedger {
	return &NonceLedger{
		buckets:          make(map[string]*ledgerBucket),
		maxTrackedPerKey: maxTrackedPerKey,
		retention:        retention,
	}
}

// Generate produces a nonce of the given size that has not previously been
// recorded for keyID, retrying on the vanishingly unlikely collision up to
// maxGenerateAttempts times before giving up.
func (l *NonceLedger) Generate(keyID string, size int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket := l.buckets[keyID]

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		nonce := make([]byte, size)
		if _, err := rand.Read(nonce); err != nil {
			return nil, fmt.Errorf("failed to generate nonce: %w", err)
		}

		encoded := hex.EncodeToString(nonce)
		if bucket == nil || !l.containsLocked(bucket, encoded) {
			return nonce, nil
		}
	}

	return nil, cryptoDomain.ErrNonceExhaustion
}

// Record marks nonce as used for keyID and prunes the bucket down to the
// configured count/age bounds. Returns ErrNonceReused if nonce was already
// recorded for this key.
func (l *NonceLedger) Record(keyID string, nonce []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	encoded := hex.EncodeToString(nonce)
	bucket, ok := l.buckets[keyID]
	if !ok {
		bucket = newLedgerBucket()
		l.buckets[keyID] = bucket
	}

	if l.containsLocked(bucket, encoded) {
		return cryptoDomain.ErrNonceReused
	}

	elem := bucket.order.PushBack(nonceEntry{nonce: encoded, recordedAt: time.Now().UTC()})
	bucket.index[encoded] = elem

	l.pruneLocked(bucket)
	return nil
}

func (l *NonceLedger) containsLocked(bucket *ledgerBucket, encoded string) bool {
	_, ok := bucket.index[encoded]
	return ok
}

// pruneLocked evicts the oldest entries once the bucket exceeds
// maxTrackedPerKey, and any entry older than retention, regardless of count.
// Must be called with l.mu held.
func (l *NonceLedger) pruneLocked(bucket *ledgerBucket) {
	cutoff := time.Now().UTC().Add(-l.retention)

	for bucket.order.Len() > l.maxTrackedPerKey {
		l.evictFrontLocked(bucket)
	}

	for front := bucket.order.Front(); front != nil; front = bucket.order.Front() {
		entry := front.Value.(nonceEntry)
		if entry.recordedAt.After(cutoff) {
			break
		}
		l.evictFrontLocked(bucket)
	}
}

func (l *NonceLedger) evictFrontLocked(bucket *ledgerBucket) {
	front := bucket.order.Front()
	if front == nil {
		return
	}
	entry := front.Value.(nonceEntry)
	bucket.order.Remove(front)
	delete(bucket.index, entry.nonce)
}

// TrackedCount reports how many nonces are currently tracked for keyID,
// for metrics and tests.
func (l *NonceLedger) TrackedCount(keyID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[keyID]
	if !ok {
		return 0
	}
	return bucket.order.Len()
}

// Prune removes expired entries for every tracked key. Intended to be
// called periodically by a background goroutine independent of Record's
// inline pruning, so idle keys don't retain stale entries indefinitely.
func (l *NonceLedger) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, bucket := range l.buckets {
		l.pruneLocked(bucket)
	}
}

// Package domain defines core cryptographic domain models for envelope encryption.
// Implements Master Key → KEK → DEK → Data hierarchy with AESGCM and ChaCha20 support.
package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

// KekStatus tracks a KEK's position in the rotation chain. Exactly one KEK
// in a KekChain holds KekStatusActive at any time; retired KEKs remain
// available to unwrap DEKs created before the chain advanced.
type KekStatus string

const (
	// KekStatusActive marks the KEK currently used to wrap new DEKs.
	KekStatusActive KekStatus = "ACTIVE"
	// KekStatusRetired marks a KEK kept only to unwrap previously-wrapped DEKs.
	KekStatusRetired KekStatus = "RETIRED"
)

// Kek represents a Key Encryption Key used to encrypt Data Encryption Keys.
// Encrypted with a master key and stored in the database. The Key field contains
// sensitive plaintext data (populated after decryption) and should be zeroed after use.
type Kek struct {
	ID             uuid.UUID // Unique identifier (UUIDv7)
	MasterKeyID    string    // ID of the master key used to encrypt this KEK
	Algorithm      Algorithm // Encryption algorithm (AESGCM or ChaCha20)
	EncryptedKey   []byte    // The KEK encrypted with the master key
	Key            []byte    // Plaintext KEK (populated after decryption, never persisted)
	Nonce          []byte    // Unique nonce for encrypting the KEK
	Version        uint      // Version number for rotation tracking
	Status         KekStatus // ACTIVE (wraps new DEKs) or RETIRED (unwrap only)
	MaterialDigest []byte    // SHA-256 of the plaintext Key, checked after unwrap
	CreatedAt      time.Time
}

// VerifyMaterialDigest recomputes SHA-256 over the decrypted Key field and
// compares it against MaterialDigest, catching silent corruption that an
// authenticated decrypt alone would already reject but which this makes
// explicit for cache-hydration paths.
func (k *Kek) VerifyMaterialDigest() bool {
	if len(k.MaterialDigest) == 0 {
		return false
	}
	sum := sha256.Sum256(k.Key)
	return subtle.ConstantTimeCompare(sum[:], k.MaterialDigest) == 1
}

// KekChain manages a collection of Key Encryption Keys with thread-safe access.
// The active KEK (highest version) is used for encrypting new DEKs.
type KekChain struct {
	activeID uuid.UUID // UUID of the currently active KEK
	keys     sync.Map  // Thread-safe map of KEK ID to KEK instances
}

// ActiveKekID returns the UUID of the currently active Key Encryption Key.
func (k *KekChain) ActiveKekID() uuid.UUID {
	return k.activeID
}

// Get retrieves a Key Encryption Key from the chain by its UUID.
func (k *KekChain) Get(id uuid.UUID) (*Kek, bool) {
	if kek, ok := k.keys.Load(id); ok {
		return kek.(*Kek), ok
	}

	return nil, false
}

// Close securely zeros all KEK keys from memory, clears the chain, and resets the active ID.
func (k *KekChain) Close() {
	// Zero all KEK keys before clearing
	k.keys.Range(func(key, value interface{}) bool {
		if kek, ok := value.(*Kek); ok {
			Zero(kek.Key)
		}
		return true
	})
	k.activeID = uuid.Nil
	k.keys.Clear()
}

// NewKekChain creates a new KekChain with the first KEK as active.
// KEKs must be ordered by version descending (newest first). An empty slice
// yields an empty chain whose ActiveKekID is uuid.Nil.
func NewKekChain(keks []*Kek) *KekChain {
	if len(keks) == 0 {
		return &KekChain{}
	}

	kc := &KekChain{
		activeID: keks[0].ID,
	}

	for i, kek := range keks {
		if i == 0 {
			kek.Status = KekStatusActive
		} else {
			kek.Status = KekStatusRetired
		}
		kc.keys.Store(kek.ID, kek)
	}

	return kc
}

package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// KeyStatus tracks a managed key version through its lifecycle.
type KeyStatus string

const (
	KeyStatusPending KeyStatus = "PENDING"
	KeyStatusActive  KeyStatus = "ACTIVE"
	KeyStatusRotated KeyStatus = "ROTATED"
	KeyStatusRevoked KeyStatus = "REVOKED"
	KeyStatusExpired KeyStatus = "EXPIRED"
)

// KeyType classifies what a managed key is used for.
type KeyType string

const (
	KeyTypeKEK    KeyType = "KEK"
	KeyTypeDEK    KeyType = "DEK"
	KeyTypeTLS    KeyType = "TLS"
	KeyTypeBackup KeyType = "BACKUP"
)

// Key represents a versioned encryption key for key lifecycle management operations.
// Supports key rotation by maintaining multiple versions with the same name. The active
// version (highest number) is used for encryption while older versions remain available
// for decryption. Soft deletion via DeletedAt field preserves keys for historical decryption.
//
// Revocation (Status == KeyStatusRevoked) is distinct from soft deletion: a revoked
// key version still decrypts ciphertext produced under it, it only refuses new
// encrypts. DeletedAt is reserved for actual removal from day-to-day queries.
type Key struct {
	ID             uuid.UUID  // Unique identifier for this specific managed key version
	Name           string     // Human-readable name (shared across all versions of this key)
	Version        uint       // Key version number (increments with rotation, starts at 1)
	KeyType        KeyType    // What this key is used for (KEK, DEK, TLS, BACKUP)
	Status         KeyStatus  // Current lifecycle state
	DekID          uuid.UUID  // Reference to the Data Encryption Key used to encrypt this managed key
	UsageCount     uint64     // Number of encrypt operations performed against this version
	MaxUsage       *uint64    // Optional usage ceiling; reaching it triggers rotation
	ExpiresAt      *time.Time // Optional expiration; past this time the version is EXPIRED
	ComplianceTags []string   // Free-form compliance labels (e.g. "pci-dss", "hipaa")
	MaterialDigest []byte     // SHA-256 of the version's decrypted key material, for integrity checks
	WrapMetadata   []byte     // Opaque descriptor of how the material is wrapped (KEK id, algorithm)
	CreatedAt      time.Time  // Timestamp when this key version was created (UTC)
	ActivatedAt    *time.Time // When this version became the current encrypting version
	DeactivatedAt  *time.Time // When this version stopped being the current encrypting version
	DeletedAt      *time.Time // Soft deletion timestamp (nil if active, set when deleted)
}

// IsUsageExhausted reports whether the version has reached its configured MaxUsage.
func (tk *Key) IsUsageExhausted() bool {
	return tk.MaxUsage != nil && tk.UsageCount >= *tk.MaxUsage
}

// IsExpired reports whether the version's ExpiresAt has passed.
func (tk *Key) IsExpired(now time.Time) bool {
	return tk.ExpiresAt != nil && now.After(*tk.ExpiresAt)
}

// Validate checks if the managed key contains valid data.
// Returns an error if any field violates domain constraints.
func (tk *Key) Validate() error {
	if tk.Name == "" {
		return errors.New("managed key name cannot be empty")
	}

	if len(tk.Name) > MaxKeyNameLength {
		return fmt.Errorf("managed key name exceeds maximum length of %d characters", MaxKeyNameLength)
	}

	if tk.Version == 0 {
		return errors.New("managed key version must be greater than 0")
	}

	if tk.DekID == uuid.Nil {
		return errors.New("managed key must have a valid DEK ID")
	}

	if tk.CreatedAt.IsZero() {
		return errors.New("managed key must have a valid created_at timestamp")
	}

	switch tk.Status {
	case KeyStatusPending, KeyStatusActive, KeyStatusRotated, KeyStatusRevoked, KeyStatusExpired:
	default:
		return fmt.Errorf("managed key has invalid status %q", tk.Status)
	}

	return nil
}

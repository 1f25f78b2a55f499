// Package usecase defines interfaces and implementations for key lifecycle management use cases.
// Provides versioned encryption/decryption operations with automatic key rotation support.
package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/keystore/internal/audit/domain"
	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
)

// DekRepository defines the interface for DEK persistence operations.
type DekRepository interface {
	// Create stores a new DEK in the repository using transaction support from context.
	Create(ctx context.Context, dek *cryptoDomain.Dek) error

	// Get retrieves a DEK by its ID. Returns ErrDekNotFound if not found.
	Get(ctx context.Context, dekID uuid.UUID) (*cryptoDomain.Dek, error)
}

// KeyVersionRepository defines the interface for managed key persistence.
type KeyVersionRepository interface {
	// Create stores a new managed key in the repository using transaction support from context.
	Create(ctx context.Context, managedKey *keyDomain.Key) error

	// Delete soft deletes a managed key by marking it with DeletedAt timestamp. This is a
	// hard removal from the active key set; it is distinct from Revoke, which leaves a key
	// fetchable for decryption while blocking new encryptions under it.
	Delete(ctx context.Context, keyID uuid.UUID) error

	// Revoke marks a managed key REVOKED without touching DeletedAt. A revoked key still
	// satisfies GetByName/GetByNameAndVersion lookups so ciphertext produced under it
	// remains decryptable; only new encryptions under it are rejected.
	Revoke(ctx context.Context, keyID uuid.UUID) error

	// Deactivate stamps DeactivatedAt on the outgoing current version of a key during
	// rotation.
	Deactivate(ctx context.Context, keyID uuid.UUID) error

	// IncrementUsage atomically increments a key version's usage counter and returns the
	// new count, so callers can detect the max-usage threshold without a read-modify-write race.
	IncrementUsage(ctx context.Context, keyID uuid.UUID) (uint64, error)

	// GetByName retrieves the latest version of a managed key by name. Returns ErrKeyNotFound if not found.
	GetByName(ctx context.Context, name string) (*keyDomain.Key, error)

	// GetByNameAndVersion retrieves a specific version of a managed key. Returns ErrKeyNotFound if not found.
	GetByNameAndVersion(ctx context.Context, name string, version uint) (*keyDomain.Key, error)

	// List returns the latest non-deleted version of every managed key, ordered by
	// name ascending, paginated by offset/limit, for operator-facing enumeration.
	List(ctx context.Context, offset, limit int) ([]*keyDomain.Key, error)
}

// RotationRepository defines the interface for persisting rotation attempts, so that
// two concurrent rotations of the same key can be detected even across process restarts
// and so operators can audit rotation history.
type RotationRepository interface {
	// Create persists a new rotation attempt, normally with Status RotationStatusRunning.
	Create(ctx context.Context, rotation *keyDomain.Rotation) error

	// Complete marks a rotation attempt COMPLETED, recording the resulting version and
	// execution time.
	Complete(ctx context.Context, id uuid.UUID, newVersion uint, executionMS int64) error

	// Fail marks a rotation attempt FAILED, recording the error and execution time.
	Fail(ctx context.Context, id uuid.UUID, errMsg string, executionMS int64) error
}

// AuditRecorder is the narrow slice of the audit use case that key lifecycle operations
// need in order to append tamper-evident audit entries. Kept local and structural (rather
// than importing internal/audit/usecase directly) the same way scheduler.KeyRotator and
// scheduler.KeyInspector decouple the rotation scheduler from the key lifecycle use case.
type AuditRecorder interface {
	Append(ctx context.Context, actor, action, resourceType, resourceID string, metadata []byte) (*auditDomain.AuditRecord, error)
}

// KeyLifecycleUseCase defines the interface for key lifecycle management operations.
type KeyLifecycleUseCase interface {
	// Create generates a new managed key with version 1 and an associated DEK for encryption.
	// The managed key name must be unique. Returns the created managed key.
	Create(ctx context.Context, name string, alg cryptoDomain.Algorithm) (*keyDomain.Key, error)

	// Rotate creates a new version of an existing managed key by incrementing the version number.
	// Generates a new DEK for the new version while preserving old versions for decryption.
	// Returns ErrRotationInProgress if another rotation of the same key is already running.
	Rotate(ctx context.Context, name string, alg cryptoDomain.Algorithm) (*keyDomain.Key, error)

	// Delete soft deletes the single managed key version identified by keyID; other
	// versions sharing its name are left untouched.
	Delete(ctx context.Context, keyID uuid.UUID) error

	// Revoke flips the managed key version identified by keyID to status REVOKED. Revoked keys
	// reject new Encrypt calls but remain decryptable, so ciphertext produced before
	// revocation is not orphaned.
	Revoke(ctx context.Context, keyID uuid.UUID) error

	// Encrypt encrypts plaintext using the latest version of the named managed key.
	// associatedData is bound to the ciphertext but not stored in it; the same bytes must
	// be supplied to Decrypt or decryption fails with ErrIntegrityFailure.
	// Returns an EncryptedBlob with format "version:base64-ciphertext" for storage or transmission.
	Encrypt(ctx context.Context, name string, plaintext, associatedData []byte) (*keyDomain.EncryptedBlob, error)

	// Decrypt decrypts ciphertext using the version specified in the encrypted blob.
	// The ciphertext parameter should be in format "version:base64-ciphertext".
	// associatedData must match the bytes supplied to Encrypt or decryption fails with
	// ErrIntegrityFailure.
	//
	// Security Note: The returned EncryptedBlob contains plaintext data in the Plaintext field.
	// Callers MUST zero this data after use by calling cryptoDomain.Zero(blob.Plaintext).
	Decrypt(ctx context.Context, name string, ciphertext string, associatedData []byte) (*keyDomain.EncryptedBlob, error)

	// List returns the latest version of every managed key, paginated by offset/limit,
	// for operator-facing enumeration (e.g. a CLI or admin API listing command).
	List(ctx context.Context, offset, limit int) ([]*keyDomain.Key, error)
}

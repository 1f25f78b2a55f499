// Package usecase implements business logic orchestration for key lifecycle management operations.
//
// This package provides the use case layer (application layer) for managing transit
// encryption keys following Clean Architecture principles. Use cases coordinate between
// services (cryptographic operations) and repositories (data persistence), implementing
// business rules and transaction management.
//
// # Key Components
//
// The package includes:
//   - KeyLifecycleUseCase: Manages managed key lifecycle and encryption/decryption operations
//   - Interfaces: Defines contracts for repositories and dependencies
//
// # Business Rules
//
// The use cases enforce business logic such as:
//   - Automatic versioning for key rotation
//   - Latest version selection for encryption operations
//   - Version-specific decryption from encrypted blob metadata
//   - Transactional consistency for multi-step operations
//   - Mutually exclusive rotation per key name, surfaced as ErrRotationInProgress
//   - Status-gated encryption: REVOKED keys reject new Encrypt calls but stay decryptable
//
// # Transit Encryption
//
// Key lifecycle management allows clients to encrypt and decrypt data without exposing key
// material. The key hierarchy is:
//
//	Master Key → KEK → DEK → Transit Key (named, versioned)
//	                           ↓
//	                    Encrypt/Decrypt user data
//
// Each managed key version has its own DEK for cryptographic isolation, enabling
// secure key rotation without re-encrypting existing data.
//
// # Transaction Management
//
// Rotate runs its DEK creation, new-version insert and outgoing-version
// deactivation inside TxManager.WithTx, so a failed rotation rolls back those
// writes; the rotation record is written outside that transaction. Create,
// Delete, Revoke, Encrypt and Decrypt run without a transaction of their own.
//
// # Usage Example
//
//	// Create use case
//	managedKeyUC := usecase.NewKeyLifecycleUseCase(
//	    txManager, keyVersionRepo, dekRepo, rotationRepo, keyManager, aeadManager,
//	    kekChain, nonceLedger, rotationLock, auditRecorder,
//	)
//
//	// Create a new managed key
//	key, err := managedKeyUC.Create(ctx, "payment-key", cryptoDomain.AESGCM)
//
//	// Encrypt data
//	blob, err := managedKeyUC.Encrypt(ctx, "payment-key", []byte("sensitive data"), []byte("ctx=1"))
//	fmt.Println(blob.String()) // "1:base64-ciphertext"
//
//	// Decrypt data
//	blob, err = managedKeyUC.Decrypt(ctx, "payment-key", blob.String(), []byte("ctx=1"))
//	fmt.Println(string(blob.Plaintext))
//
//	// Rotate key to new version
//	newKey, err := managedKeyUC.Rotate(ctx, "payment-key", cryptoDomain.AESGCM)
package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	cryptoService "github.com/allisson/keystore/internal/crypto/service"
	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
	"github.com/allisson/keystore/internal/lock"
)

const auditActor = "keylifecycle"

// keyLifecycleUseCase implements the KeyLifecycleUseCase interface for managing managed keys.
//
// This use case orchestrates managed key lifecycle operations including creation, rotation,
// revocation, deletion, and encryption/decryption. It coordinates between the key manager
// service for cryptographic operations, repositories for persistence, the KEK chain for
// accessing encryption keys, a per-key rotation lock, and the audit recorder.
//
// The use case follows Clean Architecture principles by depending on abstractions
// (interfaces) rather than concrete implementations, enabling testability and
// flexibility in choosing different storage or cryptographic backends.
type keyLifecycleUseCase struct {
	txManager      database.TxManager
	keyVersionRepo KeyVersionRepository
	dekRepo        DekRepository
	rotationRepo   RotationRepository
	keyManager     cryptoService.KeyManager
	aeadManager    cryptoService.AEADManager
	kekChain       *cryptoDomain.KekChain
	nonceLedger    *cryptoService.NonceLedger
	rotationLock   *lock.KeyedTryLock
	auditRecorder  AuditRecorder
}

// getKek retrieves a KEK from the chain by its ID.
func (t *keyLifecycleUseCase) getKek(kekID uuid.UUID) (*cryptoDomain.Kek, error) {
	kek, ok := t.kekChain.Get(kekID)
	if !ok {
		return nil, cryptoDomain.ErrKekNotFound
	}
	return kek, nil
}

// audit appends a best-effort tamper-evident audit entry. A nil recorder (e.g. in tests
// that don't exercise auditing) is a silent no-op; a configured recorder that fails to
// append does not fail the underlying key operation, since the encrypt/decrypt/rotate
// path already succeeded by the time this is called.
func (t *keyLifecycleUseCase) audit(ctx context.Context, action, resourceID string, fields map[string]any) {
	if t.auditRecorder == nil {
		return
	}

	metadata, err := json.Marshal(fields)
	if err != nil {
		return
	}

	_, _ = t.auditRecorder.Append(ctx, auditActor, action, "managed_key", resourceID, metadata)
}

// Create generates and persists a new managed key with version 1.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - name: The name identifier for the managed key (e.g., "payment-key")
//   - alg: The encryption algorithm to use for the DEK
//
// Returns:
//   - The created Key with all fields populated
//   - An error if the active KEK is not found, DEK creation fails,
//     or database persistence fails
func (t *keyLifecycleUseCase) Create(
	ctx context.Context,
	name string,
	alg cryptoDomain.Algorithm,
) (*keyDomain.Key, error) {
	activeKek, err := t.getKek(t.kekChain.ActiveKekID())
	if err != nil {
		return nil, err
	}

	dek, err := t.keyManager.CreateDek(activeKek, alg)
	if err != nil {
		return nil, err
	}

	if err := t.dekRepo.Create(ctx, &dek); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	managedKey := &keyDomain.Key{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		Version:     1,
		KeyType:     keyDomain.KeyTypeDEK,
		Status:      keyDomain.KeyStatusActive,
		DekID:       dek.ID,
		CreatedAt:   now,
		ActivatedAt: &now,
	}

	if err := t.keyVersionRepo.Create(ctx, managedKey); err != nil {
		return nil, err
	}

	t.audit(ctx, "key.create", managedKey.ID.String(), map[string]any{
		"name":    name,
		"version": managedKey.Version,
	})

	return managedKey, nil
}

// Rotate performs a managed key rotation by creating a new version.
//
// Rotation is serialized per key name by rotationLock: a second caller racing against
// an in-flight rotation of the same key fails immediately with ErrRotationInProgress
// rather than blocking. The attempt is persisted via rotationRepo before any
// cryptographic work begins, so a crash mid-rotation leaves a RUNNING record behind
// for operators to notice rather than silently vanishing.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - name: The name of the managed key to rotate
//   - alg: The encryption algorithm for the new version (can differ from old version)
//
// Returns:
//   - The new Key with incremented version
//   - ErrRotationInProgress if another rotation of this key is already running
//   - An error if the active KEK is not found, DEK creation fails, or the transaction fails
func (t *keyLifecycleUseCase) Rotate(
	ctx context.Context,
	name string,
	alg cryptoDomain.Algorithm,
) (*keyDomain.Key, error) {
	unlock, ok := t.rotationLock.TryLock(name)
	if !ok {
		return nil, keyDomain.ErrRotationInProgress
	}
	defer unlock()

	start := time.Now().UTC()

	currentKey, err := t.keyVersionRepo.GetByName(ctx, name)
	if err != nil {
		if apperrors.Is(err, keyDomain.ErrKeyNotFound) {
			return t.Create(ctx, name, alg)
		}
		return nil, err
	}

	rotation := &keyDomain.Rotation{
		ID:         uuid.Must(uuid.NewV7()),
		KeyName:    name,
		Trigger:    keyDomain.RotationTriggerManual,
		Status:     keyDomain.RotationStatusRunning,
		OldVersion: currentKey.Version,
		StartedAt:  start,
	}
	if t.rotationRepo != nil {
		if err := t.rotationRepo.Create(ctx, rotation); err != nil {
			return nil, err
		}
	}

	var newKey *keyDomain.Key
	err = t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		activeKek, err := t.getKek(t.kekChain.ActiveKekID())
		if err != nil {
			return err
		}

		dek, err := t.keyManager.CreateDek(activeKek, alg)
		if err != nil {
			return err
		}

		if err := t.dekRepo.Create(txCtx, &dek); err != nil {
			return err
		}

		now := time.Now().UTC()
		newKey = &keyDomain.Key{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        name,
			Version:     currentKey.Version + 1,
			KeyType:     currentKey.KeyType,
			Status:      keyDomain.KeyStatusActive,
			DekID:       dek.ID,
			CreatedAt:   now,
			ActivatedAt: &now,
		}

		if err := t.keyVersionRepo.Create(txCtx, newKey); err != nil {
			return err
		}

		return t.keyVersionRepo.Deactivate(txCtx, currentKey.ID)
	})

	executionMS := time.Since(start).Milliseconds()

	if err != nil {
		if t.rotationRepo != nil {
			_ = t.rotationRepo.Fail(ctx, rotation.ID, err.Error(), executionMS)
		}
		t.audit(ctx, "key.rotate.failed", currentKey.ID.String(), map[string]any{
			"name":  name,
			"error": err.Error(),
		})
		return nil, err
	}

	if t.rotationRepo != nil {
		_ = t.rotationRepo.Complete(ctx, rotation.ID, newKey.Version, executionMS)
	}

	t.audit(ctx, "key.rotate", newKey.ID.String(), map[string]any{
		"name":        name,
		"old_version": currentKey.Version,
		"new_version": newKey.Version,
	})

	return newKey, nil
}

// Delete soft-deletes a managed key by setting its deleted_at timestamp.
//
// Unlike Revoke, a deleted key version is excluded from every lookup, including the
// ones Decrypt relies on to recover historical ciphertext. Delete is for actual
// removal, not for blocking further use while preserving decryptability.
func (t *keyLifecycleUseCase) Delete(ctx context.Context, keyID uuid.UUID) error {
	if err := t.keyVersionRepo.Delete(ctx, keyID); err != nil {
		return err
	}

	t.audit(ctx, "key.delete", keyID.String(), nil)
	return nil
}

// Revoke flips a managed key version's status to REVOKED.
//
// A revoked key still satisfies GetByName/GetByNameAndVersion lookups, so Decrypt
// continues to work against ciphertext produced before revocation; only Encrypt
// checks the status and refuses to issue new ciphertext under a revoked key.
func (t *keyLifecycleUseCase) Revoke(ctx context.Context, keyID uuid.UUID) error {
	if err := t.keyVersionRepo.Revoke(ctx, keyID); err != nil {
		return err
	}

	t.audit(ctx, "key.revoke", keyID.String(), nil)
	return nil
}

// Encrypt encrypts plaintext using the latest version of a named managed key.
//
// associatedData is bound to the ciphertext as AEAD additional authenticated data: it
// is authenticated but never stored, so the same bytes must be supplied again to
// Decrypt or the integrity check fails. The nonce is drawn from the shared
// NonceLedger rather than generated independently, so reuse across versions of the
// same key is rejected before encryption happens instead of only detected after.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - name: The name of the managed key to use for encryption
//   - plaintext: The data to encrypt
//   - associatedData: Context bound into the ciphertext but not stored in it
//
// Returns:
//   - An EncryptedBlob with Version and Ciphertext populated (Plaintext is nil)
//   - ErrKeyRevoked if the latest version has been revoked
//   - An error if the managed key is not found, DEK retrieval fails,
//     KEK is not found, or encryption fails
func (t *keyLifecycleUseCase) Encrypt(
	ctx context.Context,
	name string,
	plaintext, associatedData []byte,
) (*keyDomain.EncryptedBlob, error) {
	managedKey, err := t.keyVersionRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if managedKey.Status == keyDomain.KeyStatusRevoked {
		return nil, keyDomain.ErrKeyRevoked
	}

	dek, err := t.dekRepo.Get(ctx, managedKey.DekID)
	if err != nil {
		return nil, err
	}

	kek, err := t.getKek(dek.KekID)
	if err != nil {
		return nil, err
	}

	dekKey, err := t.keyManager.DecryptDek(dek, kek)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(dekKey)

	cipher, err := t.aeadManager.CreateCipher(dekKey, dek.Algorithm)
	if err != nil {
		return nil, err
	}

	nonce, err := t.nonceLedger.Generate(name, cipher.NonceSize())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate nonce")
	}

	ciphertext, err := cipher.EncryptWithNonce(nonce, plaintext, associatedData)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt plaintext")
	}

	if err := t.nonceLedger.Record(name, nonce); err != nil {
		return nil, apperrors.Wrap(err, "nonce ledger rejected encryption")
	}

	if _, err := t.keyVersionRepo.IncrementUsage(ctx, managedKey.ID); err != nil {
		return nil, err
	}

	//nolint:gocritic // intentionally creating new slice with combined nonce and ciphertext
	encryptedData := append(nonce, ciphertext...)

	t.audit(ctx, "key.encrypt", managedKey.ID.String(), map[string]any{
		"name":    name,
		"version": managedKey.Version,
	})

	return &keyDomain.EncryptedBlob{
		Version:    managedKey.Version,
		Ciphertext: encryptedData,
		Plaintext:  nil,
	}, nil
}

// Decrypt decrypts ciphertext using the version specified in the encrypted blob.
//
// This enables decryption of data encrypted with older (including revoked) key
// versions after rotation or revocation, since GetByNameAndVersion only excludes
// soft-deleted versions, never revoked ones. associatedData must match what was
// supplied to Encrypt or the AEAD authentication check fails.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - name: The name of the managed key used for encryption
//   - ciphertext: The encrypted data in EncryptedBlob format (from blob.String())
//   - associatedData: The same bytes supplied to Encrypt
//
// Returns:
//   - An EncryptedBlob with Version and Plaintext populated (Ciphertext is nil)
//   - An error if the blob format is invalid, managed key is not found,
//     DEK retrieval fails, KEK is not found, or decryption fails
func (t *keyLifecycleUseCase) Decrypt(
	ctx context.Context,
	name string,
	ciphertext string,
	associatedData []byte,
) (*keyDomain.EncryptedBlob, error) {
	blob, err := keyDomain.NewEncryptedBlob(ciphertext)
	if err != nil {
		return nil, err
	}

	managedKey, err := t.keyVersionRepo.GetByNameAndVersion(ctx, name, blob.Version)
	if err != nil {
		return nil, err
	}

	dek, err := t.dekRepo.Get(ctx, managedKey.DekID)
	if err != nil {
		return nil, err
	}

	kek, err := t.getKek(dek.KekID)
	if err != nil {
		return nil, err
	}

	dekKey, err := t.keyManager.DecryptDek(dek, kek)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(dekKey)

	cipher, err := t.aeadManager.CreateCipher(dekKey, dek.Algorithm)
	if err != nil {
		return nil, err
	}

	nonceSize := cipher.NonceSize()
	if len(blob.Ciphertext) < nonceSize {
		return nil, apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, "ciphertext too short")
	}

	nonce := blob.Ciphertext[:nonceSize]
	encryptedData := blob.Ciphertext[nonceSize:]

	plaintext, err := cipher.Decrypt(encryptedData, nonce, associatedData)
	if err != nil {
		return nil, cryptoDomain.ErrIntegrityFailure
	}

	t.audit(ctx, "key.decrypt", managedKey.ID.String(), map[string]any{
		"name":    name,
		"version": managedKey.Version,
	})

	return &keyDomain.EncryptedBlob{
		Version:    blob.Version,
		Ciphertext: nil,
		Plaintext:  plaintext,
	}, nil
}

// List returns the latest version of every managed key, paginated by offset/limit.
func (t *keyLifecycleUseCase) List(ctx context.Context, offset, limit int) ([]*keyDomain.Key, error) {
	return t.keyVersionRepo.List(ctx, offset, limit)
}

// NewKeyLifecycleUseCase creates a new managed key use case instance with the provided dependencies.
//
// rotationRepo and auditRecorder may be nil: a nil rotationRepo skips persisting
// rotation attempts (the in-process rotationLock still enforces exclusivity), and a
// nil auditRecorder makes audit() a no-op. Both are expected to be supplied in
// production; the nil case exists for focused unit tests.
//
// Parameters:
//   - txManager: Transaction manager for atomic database operations
//   - keyVersionRepo: Repository for managed key persistence (PostgreSQL or MySQL)
//   - dekRepo: Repository for DEK persistence
//   - rotationRepo: Repository for rotation attempt history
//   - keyManager: Service for DEK cryptographic operations
//   - aeadManager: Service for AEAD cipher creation
//   - kekChain: Chain of KEKs for accessing active and historical KEKs
//   - nonceLedger: Shared nonce ledger enforcing per-key nonce uniqueness
//   - rotationLock: Per-key mutual exclusion for Rotate
//   - auditRecorder: Tamper-evident audit sink for lifecycle operations
//
// Returns:
//   - A fully initialized KeyLifecycleUseCase ready for use
func NewKeyLifecycleUseCase(
	txManager database.TxManager,
	keyVersionRepo KeyVersionRepository,
	dekRepo DekRepository,
	rotationRepo RotationRepository,
	keyManager cryptoService.KeyManager,
	aeadManager cryptoService.AEADManager,
	kekChain *cryptoDomain.KekChain,
	nonceLedger *cryptoService.NonceLedger,
	rotationLock *lock.KeyedTryLock,
	auditRecorder AuditRecorder,
) KeyLifecycleUseCase {
	return &keyLifecycleUseCase{
		txManager:      txManager,
		keyVersionRepo: keyVersionRepo,
		dekRepo:        dekRepo,
		rotationRepo:   rotationRepo,
		keyManager:     keyManager,
		aeadManager:    aeadManager,
		kekChain:       kekChain,
		nonceLedger:    nonceLedger,
		rotationLock:   rotationLock,
		auditRecorder:  auditRecorder,
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	"github.com/allisson/keystore/internal/metrics"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
)

// keyLifecycleUseCaseWithMetrics decorates KeyLifecycleUseCase with metrics instrumentation.
type keyLifecycleUseCaseWithMetrics struct {
	next    KeyLifecycleUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyLifecycleUseCaseWithMetrics wraps a KeyLifecycleUseCase with metrics recording.
func NewKeyLifecycleUseCaseWithMetrics(useCase KeyLifecycleUseCase, m metrics.BusinessMetrics) KeyLifecycleUseCase {
	return &keyLifecycleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for managed key creation operations.
func (t *keyLifecycleUseCaseWithMetrics) Create(
	ctx context.Context,
	name string,
	alg cryptoDomain.Algorithm,
) (*keyDomain.Key, error) {
	start := time.Now()
	key, err := t.next.Create(ctx, name, alg)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "key_lifecycle", "key_version_create", status)
	t.metrics.RecordDuration(ctx, "key_lifecycle", "key_version_create", time.Since(start), status)

	return key, err
}

// Rotate records metrics for managed key rotation operations.
func (t *keyLifecycleUseCaseWithMetrics) Rotate(
	ctx context.Context,
	name string,
	alg cryptoDomain.Algorithm,
) (*keyDomain.Key, error) {
	start := time.Now()
	key, err := t.next.Rotate(ctx, name, alg)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "key_lifecycle", "key_version_rotate", status)
	t.metrics.RecordDuration(ctx, "key_lifecycle", "key_version_rotate", time.Since(start), status)

	return key, err
}

// Delete records metrics for managed key deletion operations.
func (t *keyLifecycleUseCaseWithMetrics) Delete(ctx context.Context, keyID uuid.UUID) error {
	start := time.Now()
	err := t.next.Delete(ctx, keyID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "key_lifecycle", "key_version_delete", status)
	t.metrics.RecordDuration(ctx, "key_lifecycle", "key_version_delete", time.Since(start), status)

	return err
}

// Revoke records metrics for managed key revocation operations.
func (t *keyLifecycleUseCaseWithMetrics) Revoke(ctx context.Context, keyID uuid.UUID) error {
	start := time.Now()
	err := t.next.Revoke(ctx, keyID)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "key_lifecycle", "key_version_revoke", status)
	t.metrics.RecordDuration(ctx, "key_lifecycle", "key_version_revoke", time.Since(start), status)

	return err
}

// Encrypt records metrics for key lifecycle management operations.
func (t *keyLifecycleUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	name string,
	plaintext, associatedData []byte,
) (*keyDomain.EncryptedBlob, error) {
	start := time.Now()
	blob, err := t.next.Encrypt(ctx, name, plaintext, associatedData)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "key_lifecycle", "key_encrypt", status)
	t.metrics.RecordDuration(ctx, "key_lifecycle", "key_encrypt", time.Since(start), status)

	return blob, err
}

// Decrypt records metrics for transit decryption operations.
func (t *keyLifecycleUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	name string,
	ciphertext string,
	associatedData []byte,
) (*keyDomain.EncryptedBlob, error) {
	start := time.Now()
	blob, err := t.next.Decrypt(ctx, name, ciphertext, associatedData)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "key_lifecycle", "key_decrypt", status)
	t.metrics.RecordDuration(ctx, "key_lifecycle", "key_decrypt", time.Since(start), status)

	return blob, err
}

// List records metrics for managed key enumeration operations.
func (t *keyLifecycleUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*keyDomain.Key, error) {
	start := time.Now()
	keys, err := t.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "key_lifecycle", "key_version_list", status)
	t.metrics.RecordDuration(ctx, "key_lifecycle", "key_version_list", time.Since(start), status)

	return keys, err
}

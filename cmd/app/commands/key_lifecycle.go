package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	keyUseCase "github.com/allisson/keystore/internal/keylifecycle/usecase"
)

// RunCreateKey creates a new managed key with version 1 and an associated DEK.
func RunCreateKey(
	ctx context.Context,
	uc keyUseCase.KeyLifecycleUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	algorithmStr string,
) error {
	algorithm, err := parseAlgorithm(algorithmStr)
	if err != nil {
		return err
	}

	logger.Info("creating managed key", slog.String("name", name), slog.String("algorithm", algorithmStr))

	key, err := uc.Create(ctx, name, algorithm)
	if err != nil {
		return fmt.Errorf("failed to create key %q: %w", name, err)
	}

	_, _ = fmt.Fprintf(writer, "Created key %q (id=%s, version=%d)\n", key.Name, key.ID, key.Version)
	return nil
}

// RunRotateKey creates a new version of an existing managed key.
func RunRotateKey(
	ctx context.Context,
	uc keyUseCase.KeyLifecycleUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	algorithmStr string,
) error {
	algorithm, err := parseAlgorithm(algorithmStr)
	if err != nil {
		return err
	}

	logger.Info("rotating managed key", slog.String("name", name), slog.String("algorithm", algorithmStr))

	key, err := uc.Rotate(ctx, name, algorithm)
	if err != nil {
		return fmt.Errorf("failed to rotate key %q: %w", name, err)
	}

	_, _ = fmt.Fprintf(writer, "Rotated key %q to version %d (id=%s)\n", key.Name, key.Version, key.ID)
	return nil
}

// RunRevokeKey marks a managed key version REVOKED. Ciphertext produced under
// it remains decryptable; new encrypts against the revoked version fail with
// ErrKeyRevoked.
func RunRevokeKey(
	ctx context.Context,
	uc keyUseCase.KeyLifecycleUseCase,
	logger *slog.Logger,
	writer io.Writer,
	keyIDStr string,
) error {
	keyID, err := uuid.Parse(keyIDStr)
	if err != nil {
		return fmt.Errorf("invalid key-id: %w", err)
	}

	logger.Info("revoking managed key", slog.String("key_id", keyID.String()))

	if err := uc.Revoke(ctx, keyID); err != nil {
		return fmt.Errorf("failed to revoke key %s: %w", keyID, err)
	}

	_, _ = fmt.Fprintf(writer, "Revoked key %s\n", keyID)
	return nil
}

// RunListKeys prints the latest version of every managed key, paginated by offset/limit.
func RunListKeys(
	ctx context.Context,
	uc keyUseCase.KeyLifecycleUseCase,
	writer io.Writer,
	offset, limit int,
) error {
	keys, err := uc.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(keys) == 0 {
		_, _ = fmt.Fprintln(writer, "No managed keys found")
		return nil
	}

	for _, key := range keys {
		_, _ = fmt.Fprintf(
			writer,
			"%s\tversion=%d\ttype=%s\tstatus=%s\tusage=%d\n",
			key.Name, key.Version, key.KeyType, key.Status, key.UsageCount,
		)
	}
	return nil
}

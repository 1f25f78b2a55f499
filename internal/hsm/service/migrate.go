package service

import (
	"bytes"
	"context"
	"fmt"

	hsmDomain "github.com/allisson/keystore/internal/hsm/domain"
)

// Migrate moves a key from src to dst: export its material from src, import
// it into dst, verify dst can round-trip a probe ciphertext, then delete the
// key from src. Grounded on the original HSM integration's
// export/import/verify/delete sequence. If src's key is not extractable
// Migrate fails before touching dst.
func Migrate(ctx context.Context, src, dst Provider, keyID string, attrs hsmDomain.KeyAttributes) error {
	exportResult, err := src.ExportKey(ctx, keyID)
	if err != nil {
		return fmt.Errorf("migrate: export from source failed: %w", err)
	}
	if !exportResult.Success {
		return fmt.Errorf("migrate: export from source failed: %s", exportResult.ErrorMessage)
	}

	importResult, err := dst.ImportKey(ctx, keyID, exportResult.Data, attrs)
	if err != nil {
		return fmt.Errorf("migrate: import into destination failed: %w", err)
	}
	if !importResult.Success {
		return fmt.Errorf("migrate: import into destination failed: %s", importResult.ErrorMessage)
	}

	if err := verifyRoundTrip(ctx, dst, keyID); err != nil {
		return fmt.Errorf("migrate: destination verification failed: %w", err)
	}

	deleteResult, err := src.DeleteKey(ctx, keyID)
	if err != nil {
		return fmt.Errorf("migrate: delete from source failed: %w", err)
	}
	if !deleteResult.Success {
		return fmt.Errorf("migrate: delete from source failed: %s", deleteResult.ErrorMessage)
	}

	return nil
}

// verifyRoundTrip encrypts and decrypts an ephemeral probe value through the
// destination provider's newly imported key, confirming the migration
// produced a working key before the source copy is deleted.
func verifyRoundTrip(ctx context.Context, dst Provider, keyID string) error {
	probe := []byte("hsm-migration-verification-probe")

	encryptResult, err := dst.Encrypt(ctx, keyID, probe)
	if err != nil {
		return err
	}
	if !encryptResult.Success {
		return fmt.Errorf("probe encryption failed: %s", encryptResult.ErrorMessage)
	}

	decryptResult, err := dst.Decrypt(ctx, keyID, encryptResult.Data)
	if err != nil {
		return err
	}
	if !decryptResult.Success {
		return fmt.Errorf("probe decryption failed: %s", decryptResult.ErrorMessage)
	}

	if !bytes.Equal(probe, decryptResult.Data) {
		return fmt.Errorf("probe round-trip mismatch")
	}

	return nil
}

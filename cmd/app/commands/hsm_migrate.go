package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	hsmDomain "github.com/allisson/keystore/internal/hsm/domain"
	hsmService "github.com/allisson/keystore/internal/hsm/service"
)

// RunHSMMigrate moves a key between HSM providers via the
// export/import/verify/delete-source sequence.
func RunHSMMigrate(
	ctx context.Context,
	src, dst hsmService.Provider,
	logger *slog.Logger,
	writer io.Writer,
	keyID string,
	extractable bool,
) error {
	logger.Info("migrating HSM key", slog.String("key_id", keyID))

	if _, err := src.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to source provider: %w", err)
	}
	if _, err := dst.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to destination provider: %w", err)
	}

	err := hsmService.Migrate(ctx, src, dst, keyID, hsmDomain.KeyAttributes{
		KeyID:       keyID,
		Extractable: extractable,
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Migrated key %q to destination provider\n", keyID)
	return nil
}

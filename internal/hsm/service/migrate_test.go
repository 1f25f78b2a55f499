package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	hsmDomain "github.com/allisson/keystore/internal/hsm/domain"
)

func TestMigrate_MovesKeyBetweenProviders(t *testing.T) {
	ctx := context.Background()

	src := newTestSimulator()
	dst := newTestSimulator()

	_, err := src.GenerateKey(ctx, "payments-hsm-key", cryptoDomain.AESGCM, hsmDomain.KeyAttributes{Extractable: true})
	require.NoError(t, err)

	err = Migrate(ctx, src, dst, "payments-hsm-key", hsmDomain.KeyAttributes{Extractable: true})
	require.NoError(t, err)

	_, err = src.GetKeyInfo(ctx, "payments-hsm-key")
	assert.ErrorIs(t, err, hsmDomain.ErrKeyNotFound)

	result, err := dst.GetKeyInfo(ctx, "payments-hsm-key")
	require.NoError(t, err)
	assert.True(t, result.Success)

	plaintext := []byte("migrated key still works")
	encrypted, err := dst.Encrypt(ctx, "payments-hsm-key", plaintext)
	require.NoError(t, err)
	decrypted, err := dst.Decrypt(ctx, "payments-hsm-key", encrypted.Data)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted.Data)
}

func TestMigrate_FailsWhenSourceKeyNotExtractable(t *testing.T) {
	ctx := context.Background()

	src := newTestSimulator()
	dst := newTestSimulator()

	_, err := src.GenerateKey(ctx, "payments-hsm-key", cryptoDomain.AESGCM, hsmDomain.KeyAttributes{Extractable: false})
	require.NoError(t, err)

	err = Migrate(ctx, src, dst, "payments-hsm-key", hsmDomain.KeyAttributes{})
	require.Error(t, err)

	_, getErr := src.GetKeyInfo(ctx, "payments-hsm-key")
	assert.NoError(t, getErr, "source key must remain untouched when export fails")
}

func TestMigrate_FailsWhenSourceKeyMissing(t *testing.T) {
	ctx := context.Background()

	src := newTestSimulator()
	dst := newTestSimulator()

	err := Migrate(ctx, src, dst, "does-not-exist", hsmDomain.KeyAttributes{})
	assert.Error(t, err)
}

package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKey_Validate(t *testing.T) {
	validKey := &Key{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "test-key",
		Version:   1,
		KeyType:   KeyTypeDEK,
		Status:    KeyStatusActive,
		DekID:     uuid.Must(uuid.NewV7()),
		CreatedAt: time.Now().UTC(),
		DeletedAt: nil,
	}

	t.Run("Success_ValidKey", func(t *testing.T) {
		err := validKey.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_EmptyName", func(t *testing.T) {
		key := *validKey
		key.Name = ""

		err := key.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("Error_NameTooLong", func(t *testing.T) {
		key := *validKey
		key.Name = strings.Repeat("a", MaxKeyNameLength+1)

		err := key.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum length")
	})

	t.Run("Success_NameAtMaxLength", func(t *testing.T) {
		key := *validKey
		key.Name = strings.Repeat("a", MaxKeyNameLength)

		err := key.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_ZeroVersion", func(t *testing.T) {
		key := *validKey
		key.Version = 0

		err := key.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "version must be greater than 0")
	})

	t.Run("Error_NilDekID", func(t *testing.T) {
		key := *validKey
		key.DekID = uuid.Nil

		err := key.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "valid DEK ID")
	})

	t.Run("Error_ZeroCreatedAt", func(t *testing.T) {
		key := *validKey
		key.CreatedAt = time.Time{}

		err := key.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "valid created_at timestamp")
	})

	t.Run("Success_WithDeletedAt", func(t *testing.T) {
		key := *validKey
		now := time.Now().UTC()
		key.DeletedAt = &now

		err := key.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_InvalidStatus", func(t *testing.T) {
		key := *validKey
		key.Status = "BOGUS"

		err := key.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid status")
	})

	t.Run("Success_RevokedStillValid", func(t *testing.T) {
		key := *validKey
		key.Status = KeyStatusRevoked

		err := key.Validate()
		assert.NoError(t, err)
	})
}

func TestKey_IsUsageExhausted(t *testing.T) {
	max := uint64(10)
	key := &Key{UsageCount: 10, MaxUsage: &max}
	assert.True(t, key.IsUsageExhausted())

	key.UsageCount = 9
	assert.False(t, key.IsUsageExhausted())

	key.MaxUsage = nil
	assert.False(t, key.IsUsageExhausted())
}

func TestKey_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	key := &Key{ExpiresAt: &past}
	assert.True(t, key.IsExpired(now))

	future := now.Add(time.Hour)
	key.ExpiresAt = &future
	assert.False(t, key.IsExpired(now))

	key.ExpiresAt = nil
	assert.False(t, key.IsExpired(now))
}

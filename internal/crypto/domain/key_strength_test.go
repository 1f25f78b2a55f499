package domain

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKeyStrength_RandomKeyIsValid(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	report := ValidateKeyStrength(key, 32)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Reason)
}

func TestValidateKeyStrength_TooShort(t *testing.T) {
	report := ValidateKeyStrength(make([]byte, 16), 32)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Reason, "shorter than minimum")
}

func TestValidateKeyStrength_AllZero(t *testing.T) {
	report := ValidateKeyStrength(make([]byte, 32), 32)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Reason, "all-zero")
}

func TestValidateKeyStrength_AllOnes(t *testing.T) {
	key := bytes.Repeat([]byte{0xFF}, 32)
	report := ValidateKeyStrength(key, 32)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Reason, "all-ones")
}

func TestValidateKeyStrength_LowDiversity(t *testing.T) {
	key := bytes.Repeat([]byte{0x01, 0x02}, 16)
	report := ValidateKeyStrength(key, 32)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Reason, "diversity")
}

package transport

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSecurityLevel(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, s := range []string{"maximum", "high", "medium", "compatibility"} {
			level, err := ParseSecurityLevel(s)
			require.NoError(t, err)
			assert.Equal(t, SecurityLevel(s), level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := ParseSecurityLevel("nonsense")
		require.Error(t, err)
	})
}

func TestNewPolicy(t *testing.T) {
	t.Run("maximum requires TLS 1.3", func(t *testing.T) {
		policy, err := NewPolicy(SecurityMaximum)
		require.NoError(t, err)
		assert.Equal(t, uint16(tls.VersionTLS13), policy.MinVersion)
		assert.NotEmpty(t, policy.CipherIDs)
	})

	t.Run("high requires TLS 1.3", func(t *testing.T) {
		policy, err := NewPolicy(SecurityHigh)
		require.NoError(t, err)
		assert.Equal(t, uint16(tls.VersionTLS13), policy.MinVersion)
	})

	t.Run("medium permits TLS 1.2", func(t *testing.T) {
		policy, err := NewPolicy(SecurityMedium)
		require.NoError(t, err)
		assert.Equal(t, uint16(tls.VersionTLS12), policy.MinVersion)
	})

	t.Run("unknown level errors", func(t *testing.T) {
		_, err := NewPolicy(SecurityLevel("bogus"))
		require.Error(t, err)
	})
}

func TestPolicy_TLSConfig(t *testing.T) {
	t.Run("TLS 1.3 leaves CipherSuites unset", func(t *testing.T) {
		policy, err := NewPolicy(SecurityMaximum)
		require.NoError(t, err)
		cfg := policy.TLSConfig()
		assert.Equal(t, uint16(tls.VersionTLS13), cfg.MinVersion)
		assert.Empty(t, cfg.CipherSuites)
	})

	t.Run("TLS 1.2 fallback populates PFS suites", func(t *testing.T) {
		policy, err := NewPolicy(SecurityMedium)
		require.NoError(t, err)
		cfg := policy.TLSConfig()
		assert.NotEmpty(t, cfg.CipherSuites)
		for _, id := range cfg.CipherSuites {
			assert.True(t, isPFSSuite(id))
		}
	})
}

func TestPolicy_Grade(t *testing.T) {
	t.Run("maximum grades A+", func(t *testing.T) {
		policy, err := NewPolicy(SecurityMaximum)
		require.NoError(t, err)
		assert.Equal(t, GradeAPlus, policy.Grade())
	})

	t.Run("medium grades A with PFS-only suites", func(t *testing.T) {
		policy, err := NewPolicy(SecurityMedium)
		require.NoError(t, err)
		assert.Equal(t, GradeA, policy.Grade())
	})
}

func TestGradeConfig(t *testing.T) {
	t.Run("TLS 1.1 grades D", func(t *testing.T) {
		grade := GradeConfig(&tls.Config{MinVersion: tls.VersionTLS11})
		assert.Equal(t, GradeD, grade)
	})

	t.Run("TLS 1.0 grades F", func(t *testing.T) {
		grade := GradeConfig(&tls.Config{MinVersion: tls.VersionTLS10})
		assert.Equal(t, GradeF, grade)
	})

	t.Run("non-PFS TLS 1.2 suite grades C", func(t *testing.T) {
		grade := GradeConfig(&tls.Config{
			MinVersion:   tls.VersionTLS12,
			CipherSuites: []uint16{tls.TLS_RSA_WITH_AES_256_GCM_SHA384},
		})
		assert.Equal(t, GradeC, grade)
	})
}

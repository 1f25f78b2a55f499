// Package service implements the HSM abstraction: a provider-agnostic
// interface plus a software simulator and a gocloud.dev-backed cloud KMS
// provider, grounded on the original HSMProviderInterface.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	hsmDomain "github.com/allisson/keystore/internal/hsm/domain"
)

// Provider is the uniform interface every HSM backend implements: software
// simulation, a real hardware module, or a cloud KMS acting as one.
type Provider interface {
	// Connect establishes the provider's connection/session.
	Connect(ctx context.Context) (*hsmDomain.OperationResult, error)

	// Authenticate validates credentials against the provider.
	Authenticate(ctx context.Context, credentials map[string]string) (*hsmDomain.OperationResult, error)

	// GenerateKey creates a new key inside the provider.
	GenerateKey(ctx context.Context, keyID string, alg cryptoDomain.Algorithm, attrs hsmDomain.KeyAttributes) (*hsmDomain.OperationResult, error)

	// ImportKey imports existing key material into the provider.
	ImportKey(ctx context.Context, keyID string, keyMaterial []byte, attrs hsmDomain.KeyAttributes) (*hsmDomain.OperationResult, error)

	// ExportKey exports a key's material, if the key is marked extractable.
	ExportKey(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error)

	// DeleteKey removes a key from the provider.
	DeleteKey(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error)

	// Encrypt encrypts plaintext using the named key.
	Encrypt(ctx context.Context, keyID string, plaintext []byte) (*hsmDomain.OperationResult, error)

	// Decrypt decrypts ciphertext using the named key.
	Decrypt(ctx context.Context, keyID string, ciphertext []byte) (*hsmDomain.OperationResult, error)

	// GetKeyInfo returns metadata about a key without exposing its material.
	GetKeyInfo(ctx context.Context, keyID string) (*hsmDomain.OperationResult, error)

	// ListKeys enumerates the key IDs the provider currently holds.
	ListKeys(ctx context.Context) (*hsmDomain.OperationResult, error)

	// HealthCheck verifies the provider is reachable and operational.
	HealthCheck(ctx context.Context) (*hsmDomain.OperationResult, error)

	// ConnectionState returns the provider's current connection state.
	ConnectionState() hsmDomain.ConnectionState
}

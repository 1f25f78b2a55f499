// Package domain defines the HSM abstraction's provider-agnostic types:
// connection state, key attributes, and the uniform operation result every
// provider returns, grounded on the HSMOperationResult/HSMKeyAttributes
// shape of the original hardware security module integration.
package domain

import (
	"errors"
	"time"
)

// ConnectionState tracks a provider's connection lifecycle.
type ConnectionState string

const (
	StateDisconnected   ConnectionState = "disconnected"
	StateConnecting     ConnectionState = "connecting"
	StateConnected      ConnectionState = "connected"
	StateAuthenticating ConnectionState = "authenticating"
	StateAuthenticated  ConnectionState = "authenticated"
	StateError          ConnectionState = "error"
)

// KeyUsage enumerates the operations a key may be used for.
type KeyUsage string

const (
	KeyUsageEncrypt KeyUsage = "encrypt"
	KeyUsageDecrypt KeyUsage = "decrypt"
	KeyUsageWrap    KeyUsage = "wrap"
	KeyUsageUnwrap  KeyUsage = "unwrap"
)

// KeyAttributes describes a key's metadata independent of which provider
// holds it.
type KeyAttributes struct {
	KeyID       string
	KeyType     string
	Algorithm   string
	KeySizeBits int
	Usage       []KeyUsage
	Extractable bool
	Label       string
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

// OperationResult is the uniform return value of every Provider operation,
// grounded on the original HSMOperationResult.
type OperationResult struct {
	Success         bool
	Data            []byte
	KeyInfo         *KeyAttributes
	KeyIDs          []string
	ErrorMessage    string
	OperationID     string
	ExecutionTimeMs int64
}

var (
	// ErrConnectionFailed indicates the provider could not establish a connection.
	ErrConnectionFailed = errors.New("hsm: connection failed")
	// ErrAuthenticationFailed indicates credential validation failed.
	ErrAuthenticationFailed = errors.New("hsm: authentication failed")
	// ErrKeyNotFound indicates the requested key does not exist on the provider.
	ErrKeyNotFound = errors.New("hsm: key not found")
	// ErrKeyNotExtractable indicates export was attempted on a non-extractable key.
	ErrKeyNotExtractable = errors.New("hsm: key is not extractable")
	// ErrNotConnected indicates an operation was attempted before connect/authenticate.
	ErrNotConnected = errors.New("hsm: provider not connected")
)

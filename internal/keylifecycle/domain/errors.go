// Package domain defines the key lifecycle management domain models and types.
package domain

import (
	"github.com/allisson/keystore/internal/errors"
)

// Key lifecycle management error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for key lifecycle management failures.
var (
	// ErrInvalidBlobFormat indicates the encrypted blob format is invalid.
	//
	// The expected format is: "version:ciphertext-base64"
	// This error is returned when the input string doesn't have exactly 2 parts
	// separated by colons.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidBlobFormat = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob format")

	// ErrInvalidBlobVersion indicates the version string cannot be parsed.
	//
	// The version must be a valid non-negative integer that fits in a uint.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidBlobVersion = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob version")

	// ErrInvalidBlobBase64 indicates the ciphertext is not valid base64.
	//
	// The ciphertext must be a valid base64-encoded string using standard encoding.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidBlobBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob base64")

	// ErrKeyNotFound indicates the managed key was not found.
	//
	// This error is returned when attempting to retrieve a managed key by name
	// that either doesn't exist or has been soft-deleted.
	//
	// HTTP Status: 404 Not Found
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "managed key not found")

	// ErrKeyAlreadyExists indicates a managed key with the requested name already exists.
	//
	// HTTP Status: 409 Conflict
	ErrKeyAlreadyExists = errors.Wrap(errors.ErrConflict, "managed key already exists")

	// ErrRotationInProgress indicates another rotation is already RUNNING for this
	// key. Callers may retry; at most one rotation may run per key at a time.
	//
	// HTTP Status: 409 Conflict
	ErrRotationInProgress = errors.Wrap(errors.ErrLocked, "rotation already in progress")

	// ErrKeyRevoked indicates an encrypt was attempted against a REVOKED key.
	// Decryption of ciphertext produced under a revoked key remains permitted.
	//
	// HTTP Status: 409 Conflict
	ErrKeyRevoked = errors.Wrap(errors.ErrConflict, "managed key is revoked")
)

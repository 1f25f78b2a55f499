package domain

import (
	"github.com/allisson/keystore/internal/errors"
)

// Audit ledger error definitions.
var (
	// ErrRecordNotFound indicates the requested audit record does not exist.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "audit record not found")

	// ErrChainBroken indicates a record's PrevHash does not match the prior
	// record's RecordHash - the ledger has been tampered with or corrupted.
	ErrChainBroken = errors.New("audit chain broken: hash mismatch")

	// ErrSignatureInvalid indicates a record's ChainSignature does not verify
	// against its RecordHash under the expected signing key.
	ErrSignatureInvalid = errors.New("audit chain signature invalid")

	// ErrInvalidAction indicates the Action field is empty or exceeds MaxActionLength.
	ErrInvalidAction = errors.Wrap(errors.ErrInvalidInput, "invalid audit action")
)

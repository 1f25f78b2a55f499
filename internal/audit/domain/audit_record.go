// Package domain defines the tamper-evident audit ledger's domain model.
//
// Every mutating operation against the key hierarchy (KEK/DEK creation,
// managed key rotation/deletion, policy changes, HSM key operations) appends
// an AuditRecord to an append-only hash chain: each record's RecordHash
// commits to the previous record's hash plus the record's own canonical
// content, so any retroactive edit or deletion breaks the chain at the
// tampered point. A chain-anchor HMAC signature (derived from the active
// master key via HKDF) additionally proves the chain was produced by this
// engine and not replayed from another instance.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one append-only entry in the tamper-evident audit ledger.
type AuditRecord struct {
	ID             uuid.UUID
	Sequence       uint64 // monotonically increasing position in the chain
	Actor          string // principal that performed the action (service account, operator, scheduler)
	Action         string // e.g. "key.rotate", "kek.create", "policy.update"
	ResourceType   string // e.g. "key", "kek", "policy", "hsm_key"
	ResourceID     string
	Metadata       []byte // canonical JSON, opaque to the chain logic
	PrevHash       []byte // RecordHash of the previous record, nil for the genesis record
	RecordHash     []byte // SHA-256(PrevHash || canonical(record))
	SigningKeyID   string // ID of the master key whose derived key produced ChainSignature
	ChainSignature []byte // HMAC-SHA256 anchor over RecordHash
	CreatedAt      time.Time
}

// MaxActionLength bounds the Action field to keep canonicalization unambiguous.
const MaxActionLength = 128

// MaxResourceTypeLength bounds the ResourceType field.
const MaxResourceTypeLength = 64

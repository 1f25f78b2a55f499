// Package usecase implements business logic for appending to and verifying
// the tamper-evident audit ledger.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/keystore/internal/audit/domain"
)

// ListFilter narrows List results by resource or time range.
type ListFilter struct {
	ResourceType string
	ResourceID   string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// Repository defines persistence operations for the audit ledger.
// Implementations must preserve insertion order by Sequence.
type Repository interface {
	// Create appends a new record. Sequence must be one greater than the
	// highest existing Sequence (0 for the genesis record).
	Create(ctx context.Context, record *auditDomain.AuditRecord) error

	// GetLatest returns the highest-Sequence record, or nil if the ledger is empty.
	GetLatest(ctx context.Context) (*auditDomain.AuditRecord, error)

	// List returns records matching filter ordered by Sequence ascending.
	List(ctx context.Context, filter ListFilter) ([]*auditDomain.AuditRecord, error)

	// Stream returns all records ordered by Sequence ascending, for chain verification.
	Stream(ctx context.Context) ([]*auditDomain.AuditRecord, error)

	// DeleteOlderThan deletes records created before cutoff. When dryRun is
	// true it only reports the count that would be deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
}

// VerificationReport summarizes the result of a chain verification pass.
type VerificationReport struct {
	RecordsChecked  int
	ChainIntact     bool
	SignaturesValid bool
	FirstBrokenAt   uint64 // Sequence of the first broken record, 0 if intact
	Errors          []string
}

// UseCase defines business logic operations for the audit ledger.
type UseCase interface {
	// Append computes the next record's hash and chain-anchor signature and persists it.
	Append(
		ctx context.Context,
		actor, action, resourceType, resourceID string,
		metadata []byte,
	) (*auditDomain.AuditRecord, error)

	// List returns records matching filter.
	List(ctx context.Context, filter ListFilter) ([]*auditDomain.AuditRecord, error)

	// VerifyChain walks the entire ledger, recomputing hashes and signatures
	// to detect tampering or corruption.
	VerifyChain(ctx context.Context) (*VerificationReport, error)

	// DeleteOlderThan prunes records older than cutoff, subject to retention policy.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
}

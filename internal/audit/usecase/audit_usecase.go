package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/keystore/internal/audit/domain"
	auditService "github.com/allisson/keystore/internal/audit/service"
	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	apperrors "github.com/allisson/keystore/internal/errors"

	"context"
)

// auditUseCase implements UseCase, serializing Append calls so Sequence and
// PrevHash are assigned without gaps or races even under concurrent callers.
type auditUseCase struct {
	mu             sync.Mutex
	repo           Repository
	signer         auditService.ChainSigner
	masterKeyChain *cryptoDomain.MasterKeyChain
}

// NewAuditUseCase creates a new audit ledger use case.
func NewAuditUseCase(
	repo Repository,
	signer auditService.ChainSigner,
	masterKeyChain *cryptoDomain.MasterKeyChain,
) UseCase {
	return &auditUseCase{
		repo:           repo,
		signer:         signer,
		masterKeyChain: masterKeyChain,
	}
}

func (u *auditUseCase) Append(
	ctx context.Context,
	actor, action, resourceType, resourceID string,
	metadata []byte,
) (*auditDomain.AuditRecord, error) {
	if action == "" || len(action) > auditDomain.MaxActionLength {
		return nil, auditDomain.ErrInvalidAction
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	latest, err := u.repo.GetLatest(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get latest audit record")
	}

	var prevHash []byte
	var sequence uint64
	if latest != nil {
		prevHash = latest.RecordHash
		sequence = latest.Sequence + 1
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate audit record id")
	}

	record := &auditDomain.AuditRecord{
		ID:           id,
		Sequence:     sequence,
		Actor:        actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     metadata,
		PrevHash:     prevHash,
		CreatedAt:    time.Now().UTC(),
	}

	record.RecordHash = u.signer.Hash(prevHash, record)

	activeID := u.masterKeyChain.ActiveMasterKeyID()
	signingKey, err := u.signingKeyFor(activeID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(signingKey)

	record.SigningKeyID = activeID
	record.ChainSignature = u.signer.Sign(signingKey, record.RecordHash)

	if err := u.repo.Create(ctx, record); err != nil {
		return nil, apperrors.Wrap(err, "failed to append audit record")
	}

	return record, nil
}

func (u *auditUseCase) List(ctx context.Context, filter ListFilter) ([]*auditDomain.AuditRecord, error) {
	return u.repo.List(ctx, filter)
}

func (u *auditUseCase) DeleteOlderThan(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	return u.repo.DeleteOlderThan(ctx, cutoff, dryRun)
}

func (u *auditUseCase) VerifyChain(ctx context.Context) (*VerificationReport, error) {
	records, err := u.repo.Stream(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to stream audit records")
	}

	report := &VerificationReport{ChainIntact: true, SignaturesValid: true}

	signingKeys := make(map[string][]byte)
	defer func() {
		for _, k := range signingKeys {
			cryptoDomain.Zero(k)
		}
	}()

	var prevHash []byte
	for _, record := range records {
		report.RecordsChecked++

		if string(record.PrevHash) != string(prevHash) {
			report.ChainIntact = false
			if report.FirstBrokenAt == 0 {
				report.FirstBrokenAt = record.Sequence
			}
			report.Errors = append(
				report.Errors,
				fmt.Sprintf("record %d: prev_hash mismatch", record.Sequence),
			)
		}

		recomputedHash := u.signer.Hash(record.PrevHash, record)
		if string(recomputedHash) != string(record.RecordHash) {
			report.ChainIntact = false
			if report.FirstBrokenAt == 0 {
				report.FirstBrokenAt = record.Sequence
			}
			report.Errors = append(
				report.Errors,
				fmt.Sprintf("record %d: record_hash mismatch", record.Sequence),
			)
		}

		signingKey, ok := signingKeys[record.SigningKeyID]
		if !ok {
			var err error
			signingKey, err = u.signingKeyFor(record.SigningKeyID)
			if err != nil {
				report.SignaturesValid = false
				report.Errors = append(
					report.Errors,
					fmt.Sprintf("record %d: signing key %s unavailable: %v", record.Sequence, record.SigningKeyID, err),
				)
				prevHash = record.RecordHash
				continue
			}
			signingKeys[record.SigningKeyID] = signingKey
		}

		if !u.signer.Verify(signingKey, record.RecordHash, record.ChainSignature) {
			report.SignaturesValid = false
			report.Errors = append(
				report.Errors,
				fmt.Sprintf("record %d: chain signature invalid", record.Sequence),
			)
		}

		prevHash = record.RecordHash
	}

	return report, nil
}

// signingKeyFor derives the chain-anchor HMAC key for the master key identified by keyID.
func (u *auditUseCase) signingKeyFor(keyID string) ([]byte, error) {
	masterKey, ok := u.masterKeyChain.Get(keyID)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "master key not found for audit signing: "+keyID)
	}

	signingKey, err := u.signer.DeriveSigningKey(masterKey.Key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive audit signing key")
	}
	return signingKey, nil
}

// Package repository implements data persistence for key lifecycle management key management.
//
// This package provides repository implementations for storing and retrieving
// key lifecycle management keys in PostgreSQL and MySQL databases. Managed keys enable
// cryptographic operations (encrypt/decrypt) without exposing the actual key material
// to clients. Repositories follow the Repository pattern and support both direct
// database operations and transactional operations.
//
// # Key Components
//
// The package includes repositories for:
//   - Key: Versioned encryption keys for key lifecycle management operations
//   - Rotation: Historical record of rotation attempts per key name
//
// # Database Support
//
// Each repository type has two implementations:
//   - PostgreSQL: Uses native UUID type and BYTEA for binary data
//   - MySQL: Uses BINARY(16) for UUIDs and BLOB for binary data
//
// # Transaction Support
//
// All repositories support transaction-aware operations via database.GetTx(),
// enabling atomic multi-step operations. When called within a transaction context,
// repositories automatically use the transaction connection.
//
// # Transit Key Versioning
//
// Managed keys support versioning to enable key rotation without breaking existing
// encrypted data. Multiple versions of a key with the same name can coexist, but
// only the latest (highest version number) is returned by GetByName.
//
// # Soft Deletion vs Revocation
//
// Managed keys use soft deletion via the deleted_at timestamp. Deleted keys are
// filtered out of every query, including the one Decrypt relies on to recover
// historical ciphertext. Revocation (the status column) is the other removal
// mechanism: a REVOKED key still satisfies GetByName/GetByNameAndVersion so
// ciphertext produced under it keeps decrypting, it only stops new encrypts.
//
// # Usage Example
//
//	// Create managed key repository
//	managedKeyRepo := repository.NewPostgreSQLKeyVersionRepository(db)
//
//	// Use within a transaction
//	txManager := database.NewTxManager(db)
//	err := txManager.WithTx(ctx, func(txCtx context.Context) error {
//	    return managedKeyRepo.Create(txCtx, managedKey)
//	})
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
)

const complianceTagsSeparator = ","

func joinComplianceTags(tags []string) string {
	return strings.Join(tags, complianceTagsSeparator)
}

func splitComplianceTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, complianceTagsSeparator)
}

// PostgreSQLKeyVersionRepository implements managed key persistence for PostgreSQL databases.
//
// This repository handles storing and retrieving key lifecycle management keys using
// PostgreSQL's native UUID type and timestamp with timezone for date fields.
// It supports transaction-aware operations via database.GetTx(), enabling atomic
// operations across multiple managed key modifications.
//
// Database schema requirements (key_versions):
//   - id: UUID PRIMARY KEY
//   - name: TEXT (unique with version, identifies the key)
//   - version: INTEGER (for tracking key versions during rotation)
//   - key_type: TEXT
//   - status: TEXT
//   - dek_id: UUID (reference to the data encryption key)
//   - usage_count: BIGINT
//   - max_usage: BIGINT (nullable)
//   - expires_at: TIMESTAMPTZ (nullable)
//   - compliance_tags: TEXT (comma-separated)
//   - material_digest: BYTEA (nullable)
//   - wrap_metadata: BYTEA (nullable)
//   - created_at, activated_at, deactivated_at, deleted_at: TIMESTAMPTZ (nullable except created_at)
//   - UNIQUE constraint on (name, version)
type PostgreSQLKeyVersionRepository struct {
	db *sql.DB
}

// Create inserts a new managed key into the PostgreSQL database.
func (p *PostgreSQLKeyVersionRepository) Create(
	ctx context.Context,
	managedKey *keyDomain.Key,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO key_versions (
				  id, name, version, key_type, status, dek_id, usage_count, max_usage,
				  expires_at, compliance_tags, material_digest, wrap_metadata,
				  created_at, activated_at, deactivated_at, deleted_at
			  )
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := querier.ExecContext(
		ctx,
		query,
		managedKey.ID,
		managedKey.Name,
		managedKey.Version,
		string(managedKey.KeyType),
		string(managedKey.Status),
		managedKey.DekID,
		managedKey.UsageCount,
		managedKey.MaxUsage,
		managedKey.ExpiresAt,
		joinComplianceTags(managedKey.ComplianceTags),
		managedKey.MaterialDigest,
		managedKey.WrapMetadata,
		managedKey.CreatedAt,
		managedKey.ActivatedAt,
		managedKey.DeactivatedAt,
		managedKey.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create managed key")
	}
	return nil
}

// Delete soft-deletes a managed key by setting its deleted_at timestamp. Unlike
// Revoke, a soft-deleted key is excluded from every subsequent lookup.
func (p *PostgreSQLKeyVersionRepository) Delete(ctx context.Context, keyID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE key_versions SET deleted_at = NOW() WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, keyID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete managed key")
	}

	return nil
}

// Revoke marks a managed key REVOKED without touching deleted_at, so it keeps
// satisfying GetByName/GetByNameAndVersion for historical decryption.
func (p *PostgreSQLKeyVersionRepository) Revoke(ctx context.Context, keyID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE key_versions SET status = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, string(keyDomain.KeyStatusRevoked), keyID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke managed key")
	}

	return nil
}

// Deactivate stamps deactivated_at on the outgoing current version of a key
// during rotation.
func (p *PostgreSQLKeyVersionRepository) Deactivate(ctx context.Context, keyID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE key_versions SET status = $1, deactivated_at = NOW() WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, string(keyDomain.KeyStatusRotated), keyID)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate managed key")
	}

	return nil
}

// IncrementUsage atomically increments a key version's usage counter and
// returns the new count.
func (p *PostgreSQLKeyVersionRepository) IncrementUsage(ctx context.Context, keyID uuid.UUID) (uint64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE key_versions SET usage_count = usage_count + 1 WHERE id = $1 RETURNING usage_count`

	var usageCount uint64
	err := querier.QueryRowContext(ctx, query, keyID).Scan(&usageCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, keyDomain.ErrKeyNotFound
		}
		return 0, apperrors.Wrap(err, "failed to increment managed key usage")
	}

	return usageCount, nil
}

const keyVersionSelectColumns = `id, name, version, key_type, status, dek_id, usage_count, max_usage,
				  expires_at, compliance_tags, material_digest, wrap_metadata,
				  created_at, activated_at, deactivated_at, deleted_at`

// scannable is satisfied by both *sql.Row and *sql.Rows, so scanKeyVersion serves
// single-row lookups and List's row iteration alike.
type scannable interface {
	Scan(dest ...any) error
}

func scanKeyVersion(row scannable) (*keyDomain.Key, error) {
	var managedKey keyDomain.Key
	var keyType, status, complianceTags string

	err := row.Scan(
		&managedKey.ID,
		&managedKey.Name,
		&managedKey.Version,
		&keyType,
		&status,
		&managedKey.DekID,
		&managedKey.UsageCount,
		&managedKey.MaxUsage,
		&managedKey.ExpiresAt,
		&complianceTags,
		&managedKey.MaterialDigest,
		&managedKey.WrapMetadata,
		&managedKey.CreatedAt,
		&managedKey.ActivatedAt,
		&managedKey.DeactivatedAt,
		&managedKey.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	managedKey.KeyType = keyDomain.KeyType(keyType)
	managedKey.Status = keyDomain.KeyStatus(status)
	managedKey.ComplianceTags = splitComplianceTags(complianceTags)

	return &managedKey, nil
}

// GetByName retrieves the latest non-deleted version of a managed key by name.
func (p *PostgreSQLKeyVersionRepository) GetByName(
	ctx context.Context,
	name string,
) (*keyDomain.Key, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + keyVersionSelectColumns + `
			  FROM key_versions
			  WHERE name = $1 AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	managedKey, err := scanKeyVersion(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, keyDomain.ErrKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get managed key by name")
	}

	return managedKey, nil
}

// GetByNameAndVersion retrieves a specific version of a managed key by name and
// version. A REVOKED version is still returned here, only a soft-deleted one is not.
func (p *PostgreSQLKeyVersionRepository) GetByNameAndVersion(
	ctx context.Context,
	name string,
	version uint,
) (*keyDomain.Key, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + keyVersionSelectColumns + `
			  FROM key_versions
			  WHERE name = $1 AND version = $2 AND deleted_at IS NULL`

	managedKey, err := scanKeyVersion(querier.QueryRowContext(ctx, query, name, version))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, keyDomain.ErrKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get managed key by name and version")
	}

	return managedKey, nil
}

// List returns the latest non-deleted version of every managed key, ordered by
// name ascending, paginated by offset/limit.
func (p *PostgreSQLKeyVersionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*keyDomain.Key, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + keyVersionSelectColumns + `
			  FROM (
				  SELECT DISTINCT ON (name) ` + keyVersionSelectColumns + `
				  FROM key_versions
				  WHERE deleted_at IS NULL
				  ORDER BY name, version DESC
			  ) latest
			  ORDER BY name
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list managed keys")
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []*keyDomain.Key
	for rows.Next() {
		managedKey, err := scanKeyVersion(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan managed key")
		}
		keys = append(keys, managedKey)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating managed keys")
	}

	return keys, nil
}

// NewPostgreSQLKeyVersionRepository creates a new PostgreSQL managed key repository instance.
func NewPostgreSQLKeyVersionRepository(db *sql.DB) *PostgreSQLKeyVersionRepository {
	return &PostgreSQLKeyVersionRepository{db: db}
}

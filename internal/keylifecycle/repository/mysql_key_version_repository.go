package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
)

// MySQLKeyVersionRepository implements managed key persistence for MySQL databases.
//
// This repository handles storing and retrieving key lifecycle management keys using
// MySQL's BINARY(16) for UUID storage and DATETIME for date fields. UUIDs are
// marshaled/unmarshaled to/from binary format using uuid.MarshalBinary() and
// uuid.UnmarshalBinary(). It supports transaction-aware operations via
// database.GetTx(), enabling atomic operations across multiple managed key
// modifications.
//
// Database schema requirements (key_versions):
//   - id: BINARY(16) PRIMARY KEY (UUID in binary format)
//   - name: VARCHAR(255) (unique with version, identifies the key)
//   - version: INTEGER (for tracking key versions during rotation)
//   - key_type, status: VARCHAR
//   - dek_id: BINARY(16) (reference to the data encryption key)
//   - usage_count: BIGINT, max_usage: BIGINT (nullable)
//   - expires_at: DATETIME (nullable)
//   - compliance_tags: TEXT (comma-separated)
//   - material_digest, wrap_metadata: BLOB (nullable)
//   - created_at, activated_at, deactivated_at, deleted_at: DATETIME (nullable except created_at)
//   - UNIQUE KEY on (name, version)
type MySQLKeyVersionRepository struct {
	db *sql.DB
}

// Create inserts a new managed key into the MySQL database.
func (m *MySQLKeyVersionRepository) Create(ctx context.Context, managedKey *keyDomain.Key) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO key_versions (
				  id, name, version, key_type, status, dek_id, usage_count, max_usage,
				  expires_at, compliance_tags, material_digest, wrap_metadata,
				  created_at, activated_at, deactivated_at, deleted_at
			  )
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := managedKey.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal managed key id")
	}

	dekID, err := managedKey.DekID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal dek id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		managedKey.Name,
		managedKey.Version,
		string(managedKey.KeyType),
		string(managedKey.Status),
		dekID,
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
func (m *MySQLKeyVersionRepository) Delete(ctx context.Context, keyID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE key_versions SET deleted_at = NOW() WHERE id = ?`

	id, err := keyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal managed key id")
	}

	_, err = querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete managed key")
	}

	return nil
}

// Revoke marks a managed key REVOKED without touching deleted_at, so it keeps
// satisfying GetByName/GetByNameAndVersion for historical decryption.
func (m *MySQLKeyVersionRepository) Revoke(ctx context.Context, keyID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE key_versions SET status = ? WHERE id = ?`

	id, err := keyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal managed key id")
	}

	_, err = querier.ExecContext(ctx, query, string(keyDomain.KeyStatusRevoked), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke managed key")
	}

	return nil
}

// Deactivate stamps deactivated_at on the outgoing current version of a key
// during rotation.
func (m *MySQLKeyVersionRepository) Deactivate(ctx context.Context, keyID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE key_versions SET status = ?, deactivated_at = NOW() WHERE id = ?`

	id, err := keyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal managed key id")
	}

	_, err = querier.ExecContext(ctx, query, string(keyDomain.KeyStatusRotated), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate managed key")
	}

	return nil
}

// IncrementUsage atomically increments a key version's usage counter and
// returns the new count. MySQL has no RETURNING clause for UPDATE, so the
// new value is read back with a follow-up SELECT within the same querier
// (transaction, when called inside one).
func (m *MySQLKeyVersionRepository) IncrementUsage(ctx context.Context, keyID uuid.UUID) (uint64, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := keyID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal managed key id")
	}

	if _, err := querier.ExecContext(ctx, `UPDATE key_versions SET usage_count = usage_count + 1 WHERE id = ?`, id); err != nil {
		return 0, apperrors.Wrap(err, "failed to increment managed key usage")
	}

	var usageCount uint64
	err = querier.QueryRowContext(ctx, `SELECT usage_count FROM key_versions WHERE id = ?`, id).Scan(&usageCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, keyDomain.ErrKeyNotFound
		}
		return 0, apperrors.Wrap(err, "failed to read back managed key usage")
	}

	return usageCount, nil
}

const mysqlKeyVersionSelectColumns = `id, name, version, key_type, status, dek_id, usage_count, max_usage,
				  expires_at, compliance_tags, material_digest, wrap_metadata,
				  created_at, activated_at, deactivated_at, deleted_at`

func scanMySQLKeyVersion(row scannable) (*keyDomain.Key, error) {
	var managedKey keyDomain.Key
	var id, dekID []byte
	var keyType, status, complianceTags string

	err := row.Scan(
		&id,
		&managedKey.Name,
		&managedKey.Version,
		&keyType,
		&status,
		&dekID,
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

	if err := managedKey.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal managed key id")
	}
	if err := managedKey.DekID.UnmarshalBinary(dekID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal dek id")
	}

	managedKey.KeyType = keyDomain.KeyType(keyType)
	managedKey.Status = keyDomain.KeyStatus(status)
	managedKey.ComplianceTags = splitComplianceTags(complianceTags)

	return &managedKey, nil
}

// GetByName retrieves the latest non-deleted version of a managed key by name.
func (m *MySQLKeyVersionRepository) GetByName(
	ctx context.Context,
	name string,
) (*keyDomain.Key, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlKeyVersionSelectColumns + `
			  FROM key_versions
			  WHERE name = ? AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	managedKey, err := scanMySQLKeyVersion(querier.QueryRowContext(ctx, query, name))
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
func (m *MySQLKeyVersionRepository) GetByNameAndVersion(
	ctx context.Context,
	name string,
	version uint,
) (*keyDomain.Key, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlKeyVersionSelectColumns + `
			  FROM key_versions
			  WHERE name = ? AND version = ? AND deleted_at IS NULL`

	managedKey, err := scanMySQLKeyVersion(querier.QueryRowContext(ctx, query, name, version))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, keyDomain.ErrKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get managed key by name and version")
	}

	return managedKey, nil
}

// List returns the latest non-deleted version of every managed key, ordered by
// name ascending, paginated by offset/limit. MySQL has no DISTINCT ON, so the
// latest version per name is found via a max-version subquery joined back onto
// the table.
func (m *MySQLKeyVersionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*keyDomain.Key, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT kv.id, kv.name, kv.version, kv.key_type, kv.status, kv.dek_id, kv.usage_count, kv.max_usage,
				  kv.expires_at, kv.compliance_tags, kv.material_digest, kv.wrap_metadata,
				  kv.created_at, kv.activated_at, kv.deactivated_at, kv.deleted_at
			  FROM key_versions kv
			  INNER JOIN (
				  SELECT name, MAX(version) AS version
				  FROM key_versions
				  WHERE deleted_at IS NULL
				  GROUP BY name
			  ) latest ON kv.name = latest.name AND kv.version = latest.version
			  WHERE kv.deleted_at IS NULL
			  ORDER BY kv.name
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list managed keys")
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []*keyDomain.Key
	for rows.Next() {
		managedKey, err := scanMySQLKeyVersion(rows)
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

// NewMySQLKeyVersionRepository creates a new MySQL managed key repository instance.
func NewMySQLKeyVersionRepository(db *sql.DB) *MySQLKeyVersionRepository {
	return &MySQLKeyVersionRepository{db: db}
}

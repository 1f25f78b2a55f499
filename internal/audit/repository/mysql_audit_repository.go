package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/keystore/internal/audit/domain"
	auditUseCase "github.com/allisson/keystore/internal/audit/usecase"
	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
)

// MySQLAuditRepository implements audit ledger persistence for MySQL.
// IDs are stored as BINARY(16) since MySQL has no native UUID type.
type MySQLAuditRepository struct {
	db *sql.DB
}

// NewMySQLAuditRepository creates a new MySQL audit repository.
func NewMySQLAuditRepository(db *sql.DB) *MySQLAuditRepository {
	return &MySQLAuditRepository{db: db}
}

func (m *MySQLAuditRepository) Create(ctx context.Context, record *auditDomain.AuditRecord) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit record id")
	}

	query := `INSERT INTO audit_records
		(id, sequence, actor, action, resource_type, resource_id, metadata, prev_hash, record_hash, signing_key_id, chain_signature, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		record.Sequence,
		record.Actor,
		record.Action,
		record.ResourceType,
		record.ResourceID,
		record.Metadata,
		record.PrevHash,
		record.RecordHash,
		record.SigningKeyID,
		record.ChainSignature,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit record")
	}
	return nil
}

func (m *MySQLAuditRepository) GetLatest(ctx context.Context) (*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, sequence, actor, action, resource_type, resource_id, metadata,
		prev_hash, record_hash, signing_key_id, chain_signature, created_at
		FROM audit_records ORDER BY sequence DESC LIMIT 1`

	record, err := scanMySQLRecord(querier.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get latest audit record")
	}
	return record, nil
}

func (m *MySQLAuditRepository) List(
	ctx context.Context,
	filter auditUseCase.ListFilter,
) ([]*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, m.db)

	var conditions []string
	var args []any

	if filter.ResourceType != "" {
		conditions = append(conditions, "resource_type = ?")
		args = append(args, filter.ResourceType)
	}
	if filter.ResourceID != "" {
		conditions = append(conditions, "resource_id = ?")
		args = append(args, filter.ResourceID)
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *filter.CreatedTo)
	}

	query := `SELECT id, sequence, actor, action, resource_type, resource_id, metadata,
		prev_hash, record_hash, signing_key_id, chain_signature, created_at FROM audit_records`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY sequence ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit records")
	}
	defer func() { _ = rows.Close() }()

	return scanMySQLRecords(rows)
}

func (m *MySQLAuditRepository) Stream(ctx context.Context) ([]*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, sequence, actor, action, resource_type, resource_id, metadata,
		prev_hash, record_hash, signing_key_id, chain_signature, created_at
		FROM audit_records ORDER BY sequence ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to stream audit records")
	}
	defer func() { _ = rows.Close() }()

	return scanMySQLRecords(rows)
}

func (m *MySQLAuditRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		err := querier.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM audit_records WHERE created_at < ?`,
			cutoff,
		).Scan(&count)
		if err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit records for deletion")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM audit_records WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit records")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

func scanMySQLRecord(row rowScanner) (*auditDomain.AuditRecord, error) {
	var record auditDomain.AuditRecord
	var idBytes []byte

	err := row.Scan(
		&idBytes,
		&record.Sequence,
		&record.Actor,
		&record.Action,
		&record.ResourceType,
		&record.ResourceID,
		&record.Metadata,
		&record.PrevHash,
		&record.RecordHash,
		&record.SigningKeyID,
		&record.ChainSignature,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	if err := id.UnmarshalBinary(idBytes); err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

func scanMySQLRecords(rows *sql.Rows) ([]*auditDomain.AuditRecord, error) {
	var records []*auditDomain.AuditRecord
	for rows.Next() {
		record, err := scanMySQLRecord(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating audit records")
	}
	return records, nil
}

// Package repository implements PostgreSQL and MySQL persistence for the
// audit ledger.
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

// PostgreSQLAuditRepository implements audit ledger persistence for PostgreSQL.
type PostgreSQLAuditRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditRepository creates a new PostgreSQL audit repository.
func NewPostgreSQLAuditRepository(db *sql.DB) *PostgreSQLAuditRepository {
	return &PostgreSQLAuditRepository{db: db}
}

func (p *PostgreSQLAuditRepository) Create(ctx context.Context, record *auditDomain.AuditRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO audit_records
		(id, sequence, actor, action, resource_type, resource_id, metadata, prev_hash, record_hash, signing_key_id, chain_signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
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

func (p *PostgreSQLAuditRepository) GetLatest(ctx context.Context) (*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, sequence, actor, action, resource_type, resource_id, metadata,
		prev_hash, record_hash, signing_key_id, chain_signature, created_at
		FROM audit_records ORDER BY sequence DESC LIMIT 1`

	record, err := scanRecord(querier.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get latest audit record")
	}
	return record, nil
}

func (p *PostgreSQLAuditRepository) List(
	ctx context.Context,
	filter auditUseCase.ListFilter,
) ([]*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, p.db)

	var conditions []string
	var args []any
	argIdx := 1

	if filter.ResourceType != "" {
		conditions = append(conditions, placeholder("resource_type = $", &argIdx))
		args = append(args, filter.ResourceType)
	}
	if filter.ResourceID != "" {
		conditions = append(conditions, placeholder("resource_id = $", &argIdx))
		args = append(args, filter.ResourceID)
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, placeholder("created_at >= $", &argIdx))
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, placeholder("created_at <= $", &argIdx))
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
	query += placeholder(" LIMIT $", &argIdx)
	args = append(args, limit)
	query += placeholder(" OFFSET $", &argIdx)
	args = append(args, filter.Offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit records")
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

func (p *PostgreSQLAuditRepository) Stream(ctx context.Context) ([]*auditDomain.AuditRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, sequence, actor, action, resource_type, resource_id, metadata,
		prev_hash, record_hash, signing_key_id, chain_signature, created_at
		FROM audit_records ORDER BY sequence ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to stream audit records")
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

func (p *PostgreSQLAuditRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		err := querier.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM audit_records WHERE created_at < $1`,
			cutoff,
		).Scan(&count)
		if err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit records for deletion")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM audit_records WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit records")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*auditDomain.AuditRecord, error) {
	var record auditDomain.AuditRecord
	var id uuid.UUID

	err := row.Scan(
		&id,
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
	record.ID = id
	return &record, nil
}

func scanRecords(rows *sql.Rows) ([]*auditDomain.AuditRecord, error) {
	var records []*auditDomain.AuditRecord
	for rows.Next() {
		record, err := scanRecord(rows)
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

// placeholder builds a "$N"-style positional placeholder and advances argIdx.
func placeholder(prefix string, argIdx *int) string {
	s := prefix + itoa(*argIdx)
	*argIdx++
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

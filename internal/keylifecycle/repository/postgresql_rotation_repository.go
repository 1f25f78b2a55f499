package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
)

// PostgreSQLRotationRepository persists rotation attempts for PostgreSQL databases.
//
// Database schema requirements (rotations):
//   - id: UUID PRIMARY KEY
//   - key_name, trigger_reason, status: TEXT
//   - old_version: INTEGER, new_version: INTEGER (nullable)
//   - started_at: TIMESTAMPTZ, completed_at/failed_at: TIMESTAMPTZ (nullable)
//   - execution_ms: BIGINT (nullable), error: TEXT (nullable)
//   - a unique partial index on key_name WHERE status = 'RUNNING' backstops the
//     in-process KeyedTryLock at the database level.
type PostgreSQLRotationRepository struct {
	db *sql.DB
}

// Create persists a new rotation attempt, normally with Status RotationStatusRunning.
func (p *PostgreSQLRotationRepository) Create(ctx context.Context, rotation *keyDomain.Rotation) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO rotations (
				  id, key_name, trigger_reason, status, old_version, new_version,
				  started_at, completed_at, failed_at, execution_ms, error
			  )
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		rotation.ID,
		rotation.KeyName,
		string(rotation.Trigger),
		string(rotation.Status),
		rotation.OldVersion,
		rotation.NewVersion,
		rotation.StartedAt,
		rotation.CompletedAt,
		rotation.FailedAt,
		rotation.ExecutionMS,
		rotation.Error,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create rotation record")
	}
	return nil
}

// Complete marks a rotation attempt COMPLETED, recording the resulting version
// and execution time.
func (p *PostgreSQLRotationRepository) Complete(
	ctx context.Context,
	id uuid.UUID,
	newVersion uint,
	executionMS int64,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE rotations
			  SET status = $1, new_version = $2, completed_at = NOW(), execution_ms = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(
		ctx, query, string(keyDomain.RotationStatusCompleted), newVersion, executionMS, id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to complete rotation record")
	}
	return nil
}

// Fail marks a rotation attempt FAILED, recording the error and execution time.
func (p *PostgreSQLRotationRepository) Fail(
	ctx context.Context,
	id uuid.UUID,
	errMsg string,
	executionMS int64,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE rotations
			  SET status = $1, failed_at = NOW(), execution_ms = $2, error = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(
		ctx, query, string(keyDomain.RotationStatusFailed), executionMS, errMsg, id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to fail rotation record")
	}
	return nil
}

// NewPostgreSQLRotationRepository creates a new PostgreSQL rotation repository instance.
func NewPostgreSQLRotationRepository(db *sql.DB) *PostgreSQLRotationRepository {
	return &PostgreSQLRotationRepository{db: db}
}

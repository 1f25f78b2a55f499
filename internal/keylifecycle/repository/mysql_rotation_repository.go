package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
)

// MySQLRotationRepository persists rotation attempts for MySQL databases.
//
// Database schema requirements (rotations):
//   - id: BINARY(16) PRIMARY KEY
//   - key_name, trigger_reason, status: VARCHAR
//   - old_version: INT, new_version: INT (nullable)
//   - started_at: DATETIME, completed_at/failed_at: DATETIME (nullable)
//   - execution_ms: BIGINT (nullable), error: TEXT (nullable)
type MySQLRotationRepository struct {
	db *sql.DB
}

// Create persists a new rotation attempt, normally with Status RotationStatusRunning.
func (m *MySQLRotationRepository) Create(ctx context.Context, rotation *keyDomain.Rotation) error {
	querier := database.GetTx(ctx, m.db)

	id, err := rotation.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal rotation id")
	}

	query := `INSERT INTO rotations (
				  id, key_name, trigger_reason, status, old_version, new_version,
				  started_at, completed_at, failed_at, execution_ms, error
			  )
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLRotationRepository) Complete(
	ctx context.Context,
	id uuid.UUID,
	newVersion uint,
	executionMS int64,
) error {
	querier := database.GetTx(ctx, m.db)

	rawID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal rotation id")
	}

	query := `UPDATE rotations
			  SET status = ?, new_version = ?, completed_at = NOW(), execution_ms = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx, query, string(keyDomain.RotationStatusCompleted), newVersion, executionMS, rawID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to complete rotation record")
	}
	return nil
}

// Fail marks a rotation attempt FAILED, recording the error and execution time.
func (m *MySQLRotationRepository) Fail(
	ctx context.Context,
	id uuid.UUID,
	errMsg string,
	executionMS int64,
) error {
	querier := database.GetTx(ctx, m.db)

	rawID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal rotation id")
	}

	query := `UPDATE rotations
			  SET status = ?, failed_at = NOW(), execution_ms = ?, error = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx, query, string(keyDomain.RotationStatusFailed), executionMS, errMsg, rawID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to fail rotation record")
	}
	return nil
}

// NewMySQLRotationRepository creates a new MySQL rotation repository instance.
func NewMySQLRotationRepository(db *sql.DB) *MySQLRotationRepository {
	return &MySQLRotationRepository{db: db}
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
	"github.com/allisson/keystore/internal/testutil"
)

func TestNewMySQLRotationRepository(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLRotationRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLRotationRepository{}, repo)
}

func TestMySQLRotationRepository_Create(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLRotationRepository(db)
	ctx := context.Background()

	rotation := &keyDomain.Rotation{
		ID:         uuid.Must(uuid.NewV7()),
		KeyName:    "payment-encryption",
		Trigger:    keyDomain.RotationTriggerManual,
		Status:     keyDomain.RotationStatusRunning,
		OldVersion: 1,
		StartedAt:  time.Now().UTC(),
	}

	err := repo.Create(ctx, rotation)
	require.NoError(t, err)

	id, err := rotation.ID.MarshalBinary()
	require.NoError(t, err)

	var status, keyName string
	query := `SELECT key_name, status FROM rotations WHERE id = ?`
	err = db.QueryRowContext(ctx, query, id).Scan(&keyName, &status)
	require.NoError(t, err)
	assert.Equal(t, "payment-encryption", keyName)
	assert.Equal(t, string(keyDomain.RotationStatusRunning), status)
}

func TestMySQLRotationRepository_Complete(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLRotationRepository(db)
	ctx := context.Background()

	rotation := &keyDomain.Rotation{
		ID:         uuid.Must(uuid.NewV7()),
		KeyName:    "api-encryption",
		Trigger:    keyDomain.RotationTriggerScheduled,
		Status:     keyDomain.RotationStatusRunning,
		OldVersion: 1,
		StartedAt:  time.Now().UTC(),
	}
	err := repo.Create(ctx, rotation)
	require.NoError(t, err)

	err = repo.Complete(ctx, rotation.ID, 2, 42)
	require.NoError(t, err)

	id, err := rotation.ID.MarshalBinary()
	require.NoError(t, err)

	var status string
	var newVersion uint
	var completedAt time.Time
	var executionMS int64
	query := `SELECT status, new_version, completed_at, execution_ms FROM rotations WHERE id = ?`
	err = db.QueryRowContext(ctx, query, id).Scan(&status, &newVersion, &completedAt, &executionMS)
	require.NoError(t, err)
	assert.Equal(t, string(keyDomain.RotationStatusCompleted), status)
	assert.Equal(t, uint(2), newVersion)
	assert.Equal(t, int64(42), executionMS)
	assert.WithinDuration(t, time.Now().UTC(), completedAt, time.Minute)
}

func TestMySQLRotationRepository_Fail(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLRotationRepository(db)
	ctx := context.Background()

	rotation := &keyDomain.Rotation{
		ID:         uuid.Must(uuid.NewV7()),
		KeyName:    "backup-encryption",
		Trigger:    keyDomain.RotationTriggerManual,
		Status:     keyDomain.RotationStatusRunning,
		OldVersion: 1,
		StartedAt:  time.Now().UTC(),
	}
	err := repo.Create(ctx, rotation)
	require.NoError(t, err)

	err = repo.Fail(ctx, rotation.ID, "kek unavailable", 17)
	require.NoError(t, err)

	id, err := rotation.ID.MarshalBinary()
	require.NoError(t, err)

	var status, errMsg string
	var failedAt time.Time
	var executionMS int64
	query := `SELECT status, failed_at, execution_ms, error FROM rotations WHERE id = ?`
	err = db.QueryRowContext(ctx, query, id).Scan(&status, &failedAt, &executionMS, &errMsg)
	require.NoError(t, err)
	assert.Equal(t, string(keyDomain.RotationStatusFailed), status)
	assert.Equal(t, "kek unavailable", errMsg)
	assert.Equal(t, int64(17), executionMS)
	assert.WithinDuration(t, time.Now().UTC(), failedAt, time.Minute)
}

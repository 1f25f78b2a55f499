package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditUseCase "github.com/allisson/keystore/internal/audit/usecase"
	"github.com/allisson/keystore/internal/testutil"
)

func TestNewMySQLAuditRepository(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLAuditRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLAuditRepository{}, repo)
}

func TestMySQLAuditRepository_Create_And_GetLatest(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLAuditRepository(db)
	ctx := context.Background()

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	genesis := newTestRecord(0, nil)
	require.NoError(t, repo.Create(ctx, genesis))

	second := newTestRecord(1, genesis.RecordHash)
	require.NoError(t, repo.Create(ctx, second))

	latest, err = repo.GetLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, uint64(1), latest.Sequence)
	assert.Equal(t, genesis.RecordHash, latest.PrevHash)
}

func TestMySQLAuditRepository_Stream_OrdersBySequence(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLAuditRepository(db)
	ctx := context.Background()

	var prevHash []byte
	for i := uint64(0); i < 5; i++ {
		record := newTestRecord(i, prevHash)
		require.NoError(t, repo.Create(ctx, record))
		prevHash = record.RecordHash
	}

	records, err := repo.Stream(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, record := range records {
		assert.Equal(t, uint64(i), record.Sequence)
	}
}

func TestMySQLAuditRepository_List_FiltersByResource(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLAuditRepository(db)
	ctx := context.Background()

	record1 := newTestRecord(0, nil)
	record1.ResourceID = "key-a"
	require.NoError(t, repo.Create(ctx, record1))

	record2 := newTestRecord(1, record1.RecordHash)
	record2.ResourceID = "key-b"
	require.NoError(t, repo.Create(ctx, record2))

	records, err := repo.List(ctx, auditUseCase.ListFilter{ResourceID: "key-a"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "key-a", records[0].ResourceID)
}

func TestMySQLAuditRepository_DeleteOlderThan_DryRun(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLAuditRepository(db)
	ctx := context.Background()

	old := newTestRecord(0, nil)
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, old))

	recent := newTestRecord(1, old.RecordHash)
	require.NoError(t, repo.Create(ctx, recent))

	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	count, err := repo.DeleteOlderThan(ctx, cutoff, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	records, err := repo.Stream(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2, "dry run must not delete records")
}

func TestMySQLAuditRepository_DeleteOlderThan_Real(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLAuditRepository(db)
	ctx := context.Background()

	old := newTestRecord(0, nil)
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, old))

	recent := newTestRecord(1, old.RecordHash)
	require.NoError(t, repo.Create(ctx, recent))

	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	count, err := repo.DeleteOlderThan(ctx, cutoff, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	records, err := repo.Stream(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recent.ID, records[0].ID)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policyDomain "github.com/allisson/keystore/internal/policy/domain"
	"github.com/allisson/keystore/internal/testutil"
)

func TestNewMySQLPolicyRepository(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLPolicyRepository{}, repo)
}

func TestMySQLPolicyRepository_Create_And_Get(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	policy := newTestPolicy("payments-kek-policy", "payments-kek")
	require.NoError(t, repo.Create(ctx, policy))

	found, err := repo.Get(ctx, policy.Name)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, policy.ID, found.ID)
	assert.Equal(t, policy.KeyName, found.KeyName)
	assert.Equal(t, policy.RotationIntervalDays, found.RotationIntervalDays)
	assert.Equal(t, policy.MaxOperations, found.MaxOperations)
	assert.Equal(t, policy.ComplianceFrameworks, found.ComplianceFrameworks)
	assert.True(t, found.IsActive)
}

func TestMySQLPolicyRepository_Get_NotFound(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

func TestMySQLPolicyRepository_Update(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	policy := newTestPolicy("payments-kek-policy", "payments-kek")
	require.NoError(t, repo.Create(ctx, policy))

	policy.MaxOperations = 5000
	policy.IsActive = false
	policy.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, policy))

	found, err := repo.Get(ctx, policy.Name)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), found.MaxOperations)
	assert.False(t, found.IsActive)
}

func TestMySQLPolicyRepository_Update_NotFound(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	policy := newTestPolicy("does-not-exist", "payments-kek")
	err := repo.Update(ctx, policy)
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

func TestMySQLPolicyRepository_GetByKeyName(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	policy1 := newTestPolicy("payments-kek-policy-1", "payments-kek")
	require.NoError(t, repo.Create(ctx, policy1))
	policy2 := newTestPolicy("payments-kek-policy-2", "payments-kek")
	require.NoError(t, repo.Create(ctx, policy2))
	other := newTestPolicy("other-kek-policy", "other-kek")
	require.NoError(t, repo.Create(ctx, other))

	found, err := repo.GetByKeyName(ctx, "payments-kek")
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestMySQLPolicyRepository_List(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPolicy("policy-b", "key-b")))
	require.NoError(t, repo.Create(ctx, newTestPolicy("policy-a", "key-a")))

	policies, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "policy-a", policies[0].Name)
	assert.Equal(t, "policy-b", policies[1].Name)
}

func TestMySQLPolicyRepository_Delete(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	policy := newTestPolicy("payments-kek-policy", "payments-kek")
	require.NoError(t, repo.Create(ctx, policy))

	require.NoError(t, repo.Delete(ctx, policy.Name))

	_, err := repo.Get(ctx, policy.Name)
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

func TestMySQLPolicyRepository_Delete_NotFound(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLPolicyRepository(db)
	ctx := context.Background()

	err := repo.Delete(ctx, "does-not-exist")
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

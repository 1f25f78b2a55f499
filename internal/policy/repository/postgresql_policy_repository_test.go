package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policyDomain "github.com/allisson/keystore/internal/policy/domain"
	"github.com/allisson/keystore/internal/testutil"
)

func newTestPolicy(name, keyName string) *policyDomain.RotationPolicy {
	now := time.Now().UTC()
	return &policyDomain.RotationPolicy{
		ID:                            uuid.Must(uuid.NewV7()),
		Name:                          name,
		KeyName:                       keyName,
		RotationIntervalDays:          90,
		MaxOperations:                 1000,
		RotateOnSecurityIncident:      true,
		RotateOnComplianceRequirement: true,
		ComplianceFrameworks:          []policyDomain.ComplianceFramework{policyDomain.FrameworkFIPS140_2},
		RotationWindowStart:           "02:00",
		RotationWindowEnd:             "04:00",
		NotifyBeforeRotationHours:     24,
		IsActive:                      true,
		CreatedAt:                     now,
		UpdatedAt:                     now,
	}
}

func TestNewPostgreSQLPolicyRepository(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLPolicyRepository{}, repo)
}

func TestPostgreSQLPolicyRepository_Create_And_Get(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
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

func TestPostgreSQLPolicyRepository_Get_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

func TestPostgreSQLPolicyRepository_Update(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
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

func TestPostgreSQLPolicyRepository_Update_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
	ctx := context.Background()

	policy := newTestPolicy("does-not-exist", "payments-kek")
	err := repo.Update(ctx, policy)
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

func TestPostgreSQLPolicyRepository_GetByKeyName(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
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

func TestPostgreSQLPolicyRepository_List(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestPolicy("policy-b", "key-b")))
	require.NoError(t, repo.Create(ctx, newTestPolicy("policy-a", "key-a")))

	policies, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "policy-a", policies[0].Name)
	assert.Equal(t, "policy-b", policies[1].Name)
}

func TestPostgreSQLPolicyRepository_Delete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
	ctx := context.Background()

	policy := newTestPolicy("payments-kek-policy", "payments-kek")
	require.NoError(t, repo.Create(ctx, policy))

	require.NoError(t, repo.Delete(ctx, policy.Name))

	_, err := repo.Get(ctx, policy.Name)
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

func TestPostgreSQLPolicyRepository_Delete_NotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLPolicyRepository(db)
	ctx := context.Background()

	err := repo.Delete(ctx, "does-not-exist")
	assert.ErrorIs(t, err, policyDomain.ErrPolicyNotFound)
}

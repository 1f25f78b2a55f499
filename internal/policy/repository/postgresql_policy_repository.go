// Package repository implements rotation policy persistence for PostgreSQL
// and MySQL, grounded on the teacher's policy repository pair.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
	policyDomain "github.com/allisson/keystore/internal/policy/domain"
)

// PostgreSQLPolicyRepository implements RotationPolicy persistence for PostgreSQL.
type PostgreSQLPolicyRepository struct {
	db *sql.DB
}

// NewPostgreSQLPolicyRepository creates a new PostgreSQL rotation policy repository.
func NewPostgreSQLPolicyRepository(db *sql.DB) *PostgreSQLPolicyRepository {
	return &PostgreSQLPolicyRepository{db: db}
}

func (p *PostgreSQLPolicyRepository) Create(ctx context.Context, policy *policyDomain.RotationPolicy) error {
	querier := database.GetTx(ctx, p.db)

	frameworksJSON, err := json.Marshal(policy.ComplianceFrameworks)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal compliance frameworks")
	}

	query := `INSERT INTO rotation_policies
		(id, name, key_name, rotation_interval_days, max_operations,
		 rotate_on_security_incident, rotate_on_compliance_requirement,
		 compliance_frameworks, rotation_window_start, rotation_window_end,
		 notify_before_rotation_hours, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = querier.ExecContext(
		ctx, query,
		policy.ID, policy.Name, policy.KeyName, policy.RotationIntervalDays, policy.MaxOperations,
		policy.RotateOnSecurityIncident, policy.RotateOnComplianceRequirement,
		frameworksJSON, policy.RotationWindowStart, policy.RotationWindowEnd,
		policy.NotifyBeforeRotationHours, policy.IsActive, policy.CreatedAt, policy.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create rotation policy")
	}
	return nil
}

func (p *PostgreSQLPolicyRepository) Update(ctx context.Context, policy *policyDomain.RotationPolicy) error {
	querier := database.GetTx(ctx, p.db)

	frameworksJSON, err := json.Marshal(policy.ComplianceFrameworks)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal compliance frameworks")
	}

	query := `UPDATE rotation_policies SET
		key_name = $1, rotation_interval_days = $2, max_operations = $3,
		rotate_on_security_incident = $4, rotate_on_compliance_requirement = $5,
		compliance_frameworks = $6, rotation_window_start = $7, rotation_window_end = $8,
		notify_before_rotation_hours = $9, is_active = $10, updated_at = $11
		WHERE name = $12`

	result, err := querier.ExecContext(
		ctx, query,
		policy.KeyName, policy.RotationIntervalDays, policy.MaxOperations,
		policy.RotateOnSecurityIncident, policy.RotateOnComplianceRequirement,
		frameworksJSON, policy.RotationWindowStart, policy.RotationWindowEnd,
		policy.NotifyBeforeRotationHours, policy.IsActive, policy.UpdatedAt, policy.Name,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update rotation policy")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return policyDomain.ErrPolicyNotFound
	}

	return nil
}

func (p *PostgreSQLPolicyRepository) Get(ctx context.Context, name string) (*policyDomain.RotationPolicy, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, key_name, rotation_interval_days, max_operations,
		rotate_on_security_incident, rotate_on_compliance_requirement,
		compliance_frameworks, rotation_window_start, rotation_window_end,
		notify_before_rotation_hours, is_active, created_at, updated_at
		FROM rotation_policies WHERE name = $1`

	return scanPolicyRow(querier.QueryRowContext(ctx, query, name))
}

func (p *PostgreSQLPolicyRepository) GetByKeyName(ctx context.Context, keyName string) ([]*policyDomain.RotationPolicy, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, key_name, rotation_interval_days, max_operations,
		rotate_on_security_incident, rotate_on_compliance_requirement,
		compliance_frameworks, rotation_window_start, rotation_window_end,
		notify_before_rotation_hours, is_active, created_at, updated_at
		FROM rotation_policies WHERE key_name = $1`

	rows, err := querier.QueryContext(ctx, query, keyName)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rotation policies by key name")
	}
	defer func() { _ = rows.Close() }()

	return scanPolicyRows(rows)
}

func (p *PostgreSQLPolicyRepository) List(ctx context.Context) ([]*policyDomain.RotationPolicy, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, key_name, rotation_interval_days, max_operations,
		rotate_on_security_incident, rotate_on_compliance_requirement,
		compliance_frameworks, rotation_window_start, rotation_window_end,
		notify_before_rotation_hours, is_active, created_at, updated_at
		FROM rotation_policies ORDER BY name`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rotation policies")
	}
	defer func() { _ = rows.Close() }()

	return scanPolicyRows(rows)
}

func (p *PostgreSQLPolicyRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM rotation_policies WHERE name = $1`

	result, err := querier.ExecContext(ctx, query, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete rotation policy")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return policyDomain.ErrPolicyNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicyRow(row rowScanner) (*policyDomain.RotationPolicy, error) {
	var policy policyDomain.RotationPolicy
	var frameworksJSON []byte

	err := row.Scan(
		&policy.ID, &policy.Name, &policy.KeyName, &policy.RotationIntervalDays, &policy.MaxOperations,
		&policy.RotateOnSecurityIncident, &policy.RotateOnComplianceRequirement,
		&frameworksJSON, &policy.RotationWindowStart, &policy.RotationWindowEnd,
		&policy.NotifyBeforeRotationHours, &policy.IsActive, &policy.CreatedAt, &policy.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, policyDomain.ErrPolicyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get rotation policy")
	}

	if len(frameworksJSON) > 0 {
		if err := json.Unmarshal(frameworksJSON, &policy.ComplianceFrameworks); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal compliance frameworks")
		}
	}

	return &policy, nil
}

func scanPolicyRows(rows *sql.Rows) ([]*policyDomain.RotationPolicy, error) {
	var policies []*policyDomain.RotationPolicy
	for rows.Next() {
		policy, err := scanPolicyRow(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate rotation policies")
	}
	return policies, nil
}

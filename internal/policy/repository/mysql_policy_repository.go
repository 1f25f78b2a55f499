package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/keystore/internal/database"
	apperrors "github.com/allisson/keystore/internal/errors"
	policyDomain "github.com/allisson/keystore/internal/policy/domain"
)

// MySQLPolicyRepository implements RotationPolicy persistence for MySQL.
type MySQLPolicyRepository struct {
	db *sql.DB
}

// NewMySQLPolicyRepository creates a new MySQL rotation policy repository.
func NewMySQLPolicyRepository(db *sql.DB) *MySQLPolicyRepository {
	return &MySQLPolicyRepository{db: db}
}

func (m *MySQLPolicyRepository) Create(ctx context.Context, policy *policyDomain.RotationPolicy) error {
	querier := database.GetTx(ctx, m.db)

	frameworksJSON, err := json.Marshal(policy.ComplianceFrameworks)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal compliance frameworks")
	}

	idBytes, err := policy.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal policy id")
	}

	query := `INSERT INTO rotation_policies
		(id, name, key_name, rotation_interval_days, max_operations,
		 rotate_on_security_incident, rotate_on_compliance_requirement,
		 compliance_frameworks, rotation_window_start, rotation_window_end,
		 notify_before_rotation_hours, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx, query,
		idBytes, policy.Name, policy.KeyName, policy.RotationIntervalDays, policy.MaxOperations,
		policy.RotateOnSecurityIncident, policy.RotateOnComplianceRequirement,
		frameworksJSON, policy.RotationWindowStart, policy.RotationWindowEnd,
		policy.NotifyBeforeRotationHours, policy.IsActive, policy.CreatedAt, policy.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create rotation policy")
	}
	return nil
}

func (m *MySQLPolicyRepository) Update(ctx context.Context, policy *policyDomain.RotationPolicy) error {
	querier := database.GetTx(ctx, m.db)

	frameworksJSON, err := json.Marshal(policy.ComplianceFrameworks)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal compliance frameworks")
	}

	query := `UPDATE rotation_policies SET
		key_name = ?, rotation_interval_days = ?, max_operations = ?,
		rotate_on_security_incident = ?, rotate_on_compliance_requirement = ?,
		compliance_frameworks = ?, rotation_window_start = ?, rotation_window_end = ?,
		notify_before_rotation_hours = ?, is_active = ?, updated_at = ?
		WHERE name = ?`

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

func (m *MySQLPolicyRepository) Get(ctx context.Context, name string) (*policyDomain.RotationPolicy, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, key_name, rotation_interval_days, max_operations,
		rotate_on_security_incident, rotate_on_compliance_requirement,
		compliance_frameworks, rotation_window_start, rotation_window_end,
		notify_before_rotation_hours, is_active, created_at, updated_at
		FROM rotation_policies WHERE name = ?`

	return scanMySQLPolicyRow(querier.QueryRowContext(ctx, query, name))
}

func (m *MySQLPolicyRepository) GetByKeyName(ctx context.Context, keyName string) ([]*policyDomain.RotationPolicy, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, key_name, rotation_interval_days, max_operations,
		rotate_on_security_incident, rotate_on_compliance_requirement,
		compliance_frameworks, rotation_window_start, rotation_window_end,
		notify_before_rotation_hours, is_active, created_at, updated_at
		FROM rotation_policies WHERE key_name = ?`

	rows, err := querier.QueryContext(ctx, query, keyName)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rotation policies by key name")
	}
	defer func() { _ = rows.Close() }()

	return scanMySQLPolicyRows(rows)
}

func (m *MySQLPolicyRepository) List(ctx context.Context) ([]*policyDomain.RotationPolicy, error) {
	querier := database.GetTx(ctx, m.db)

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

	return scanMySQLPolicyRows(rows)
}

func (m *MySQLPolicyRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM rotation_policies WHERE name = ?`

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

func scanMySQLPolicyRow(row rowScanner) (*policyDomain.RotationPolicy, error) {
	var policy policyDomain.RotationPolicy
	var idBytes []byte
	var frameworksJSON []byte

	err := row.Scan(
		&idBytes, &policy.Name, &policy.KeyName, &policy.RotationIntervalDays, &policy.MaxOperations,
		&policy.RotateOnSecurityIncident, &policy.RotateOnComplianceRequirement,
		&frameworksJSON, &policy.RotationWindowStart, &policy.RotationWindowEnd,
		&policy.NotifyBeforeRotationHours, &policy.IsActive, &policy.CreatedAt, &policy.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, policyDomain.ErrPolicyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get rotation policy")
	}

	if err := policy.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal policy id")
	}

	if len(frameworksJSON) > 0 {
		if err := json.Unmarshal(frameworksJSON, &policy.ComplianceFrameworks); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal compliance frameworks")
		}
	}

	return &policy, nil
}

func scanMySQLPolicyRows(rows *sql.Rows) ([]*policyDomain.RotationPolicy, error) {
	var policies []*policyDomain.RotationPolicy
	for rows.Next() {
		policy, err := scanMySQLPolicyRow(rows)
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

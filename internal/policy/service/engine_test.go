package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policyDomain "github.com/allisson/keystore/internal/policy/domain"
)

func basePolicy() *policyDomain.RotationPolicy {
	return &policyDomain.RotationPolicy{
		Name:                 "payments-kek-policy",
		KeyName:              "payments-kek",
		RotationIntervalDays: 90,
		IsActive:             true,
	}
}

func TestEvaluate_NoRuleMatches(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	ctx := policyDomain.EvaluationContext{
		CreatedAt:    now.Add(-10 * 24 * time.Hour),
		LastRotation: now.Add(-10 * 24 * time.Hour),
		Now:          now,
	}

	result := evaluator.Evaluate(policy, ctx)
	assert.False(t, result.RotationRequired)
	assert.Equal(t, policyDomain.TriggerNone, result.Trigger)
	assert.Equal(t, 1, result.Priority)
}

func TestEvaluate_TimeElapsed_PriorityIncreasesWithOverdueDays(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	ctx := policyDomain.EvaluationContext{
		CreatedAt:    now.Add(-200 * 24 * time.Hour),
		LastRotation: now.Add(-200 * 24 * time.Hour), // 110 days overdue past the 90-day interval
		Now:          now,
	}

	result := evaluator.Evaluate(policy, ctx)
	require.True(t, result.RotationRequired)
	assert.Equal(t, policyDomain.TriggerScheduled, result.Trigger)
	assert.Equal(t, 8, result.Priority) // 5 + floor(110/30) = 8
	require.NotNil(t, result.RecommendedSchedule)
}

func TestEvaluate_UsageExceeded_OutranksTimeElapsed(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	policy.MaxOperations = 1000
	ctx := policyDomain.EvaluationContext{
		CreatedAt:    now.Add(-91 * 24 * time.Hour),
		LastRotation: now.Add(-91 * 24 * time.Hour),
		UsageCount:   1500,
		Now:          now,
	}

	result := evaluator.Evaluate(policy, ctx)
	require.True(t, result.RotationRequired)
	assert.Equal(t, policyDomain.TriggerUsageCount, result.Trigger)
	assert.Equal(t, 8, result.Priority)
}

func TestEvaluate_UsageApproaching(t *testing.T) {
	evaluator := NewEvaluator()

	policy := basePolicy()
	policy.RotationIntervalDays = 0
	policy.MaxOperations = 1000
	ctx := policyDomain.EvaluationContext{UsageCount: 950}

	result := evaluator.Evaluate(policy, ctx)
	require.True(t, result.RotationRequired)
	assert.Equal(t, policyDomain.TriggerUsageCount, result.Trigger)
	assert.Equal(t, 6, result.Priority)
}

func TestEvaluate_SecurityIncident_OutranksEverything(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	policy.RotateOnSecurityIncident = true
	policy.MaxOperations = 1000

	ctx := policyDomain.EvaluationContext{
		CreatedAt:    now.Add(-200 * 24 * time.Hour),
		LastRotation: now.Add(-200 * 24 * time.Hour),
		UsageCount:   1500,
		SecurityIncidents: []policyDomain.SecurityIncident{
			{Severity: 8, Timestamp: now.Add(-1 * time.Hour)},
		},
		Now: now,
	}

	result := evaluator.Evaluate(policy, ctx)
	require.True(t, result.RotationRequired)
	assert.Equal(t, policyDomain.TriggerSecurityIncident, result.Trigger)
	assert.Equal(t, 10, result.Priority)
}

func TestEvaluate_SecurityIncident_IgnoresLowSeverityAndOldIncidents(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	policy.RotationIntervalDays = 0
	policy.RotateOnSecurityIncident = true

	ctx := policyDomain.EvaluationContext{
		SecurityIncidents: []policyDomain.SecurityIncident{
			{Severity: 5, Timestamp: now.Add(-1 * time.Hour)},  // too low severity
			{Severity: 9, Timestamp: now.Add(-48 * time.Hour)}, // too old
		},
		Now: now,
	}

	result := evaluator.Evaluate(policy, ctx)
	assert.False(t, result.RotationRequired)
}

func TestEvaluate_Compliance_KeyAgeExceedsFramework(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	policy.RotationIntervalDays = 0
	policy.RotateOnComplianceRequirement = true
	policy.ComplianceFrameworks = []policyDomain.ComplianceFramework{policyDomain.FrameworkFIPS140_2}

	ctx := policyDomain.EvaluationContext{
		CreatedAt: now.Add(-100 * 24 * time.Hour), // FIPS-140-2 max_key_age_days is 90
		Now:       now,
	}

	result := evaluator.Evaluate(policy, ctx)
	require.True(t, result.RotationRequired)
	assert.Equal(t, policyDomain.TriggerCompliance, result.Trigger)
	assert.Equal(t, 9, result.Priority)
	assert.Contains(t, result.ComplianceNotes, string(policyDomain.FrameworkFIPS140_2))
}

func TestEvaluate_SafetyChecks_FailWhenRotationAlreadyRunning(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	ctx := policyDomain.EvaluationContext{
		CreatedAt:             now.Add(-200 * 24 * time.Hour),
		LastRotation:          now.Add(-200 * 24 * time.Hour),
		ActiveRotationRunning: true,
		Now:                   now,
	}

	result := evaluator.Evaluate(policy, ctx)
	require.True(t, result.RotationRequired)
	assert.False(t, result.SafetyChecksPassed)
	assert.Contains(t, result.SafetyCheckFailures, "rotation already running for this key")
	assert.Nil(t, result.RecommendedSchedule)
}

func TestEvaluate_SafetyChecks_FailWhenInMaintenanceWindow(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	policy := basePolicy()
	ctx := policyDomain.EvaluationContext{
		CreatedAt:         now.Add(-200 * 24 * time.Hour),
		LastRotation:      now.Add(-200 * 24 * time.Hour),
		MaintenanceWindow: true,
		Now:               now,
	}

	result := evaluator.Evaluate(policy, ctx)
	require.True(t, result.RotationRequired)
	assert.False(t, result.SafetyChecksPassed)
}

func TestEvaluate_RecommendedSchedule_UsesRotationWindow(t *testing.T) {
	evaluator := NewEvaluator()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	policy := basePolicy()
	policy.RotationWindowStart = "02:00"
	ctx := policyDomain.EvaluationContext{
		CreatedAt:    now.Add(-200 * 24 * time.Hour),
		LastRotation: now.Add(-200 * 24 * time.Hour),
		Now:          now,
	}

	result := evaluator.Evaluate(policy, ctx)
	require.NotNil(t, result.RecommendedSchedule)
	assert.Equal(t, 2, result.RecommendedSchedule.Hour())
	assert.True(t, result.RecommendedSchedule.After(now), "window already passed today, should roll to tomorrow")
}

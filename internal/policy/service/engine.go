// Package service implements the rotation policy evaluation engine: the
// rule table that decides whether a key must be rotated, and the safety
// checks that gate whether it is safe to schedule that rotation now.
package service

import (
	"time"

	policyDomain "github.com/allisson/keystore/internal/policy/domain"
)

// Evaluator evaluates RotationPolicy documents against an EvaluationContext.
// Grounded on the original PolicyEngine.evaluate_policy: each rule is
// evaluated independently and the highest-priority rotation-required result
// wins.
type Evaluator struct{}

// NewEvaluator creates a new policy Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate runs every rule in the table and returns the highest-priority
// result, with safety checks applied last.
func (e *Evaluator) Evaluate(policy *policyDomain.RotationPolicy, ctx policyDomain.EvaluationContext) *policyDomain.EvaluationResult {
	now := ctx.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	result := &policyDomain.EvaluationResult{
		RotationRequired: false,
		Trigger:          policyDomain.TriggerNone,
		Priority:         1,
		Reason:           "no rotation required",
	}

	if r := e.evaluateSecurityIncidents(policy, ctx, now); r.RotationRequired && r.Priority > result.Priority {
		result = r
	}
	if r := e.evaluateCompliance(policy, ctx, now); r.RotationRequired && r.Priority > result.Priority {
		result = r
	}
	if r := e.evaluateUsage(policy, ctx); r.RotationRequired && r.Priority > result.Priority {
		result = r
	}
	if r := e.evaluateTimeElapsed(policy, ctx, now); r.RotationRequired && r.Priority > result.Priority {
		result = r
	}

	result.SafetyChecksPassed, result.SafetyCheckFailures = e.safetyChecks(ctx)

	if result.RotationRequired && result.SafetyChecksPassed {
		schedule := e.recommendedSchedule(policy, now)
		result.RecommendedSchedule = &schedule
	}

	return result
}

// evaluateSecurityIncidents is priority 10: any incident with severity >= 7
// within the last 24h, if the policy opted in.
func (e *Evaluator) evaluateSecurityIncidents(policy *policyDomain.RotationPolicy, ctx policyDomain.EvaluationContext, now time.Time) *policyDomain.EvaluationResult {
	if !policy.RotateOnSecurityIncident {
		return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerSecurityIncident, Priority: 1, Reason: "security incident rotation disabled"}
	}

	count := 0
	cutoff := now.Add(-24 * time.Hour)
	for _, incident := range ctx.SecurityIncidents {
		if incident.Severity >= 7 && incident.Timestamp.After(cutoff) {
			count++
		}
	}
	if count == 0 {
		return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerSecurityIncident, Priority: 1, Reason: "no recent high-severity security incidents"}
	}

	return &policyDomain.EvaluationResult{
		RotationRequired: true,
		Trigger:          policyDomain.TriggerSecurityIncident,
		Priority:         10,
		Reason:           "high-severity security incidents detected in the last 24h",
	}
}

// evaluateCompliance is priority 9: key age exceeds any required
// framework's max_key_age_days.
func (e *Evaluator) evaluateCompliance(policy *policyDomain.RotationPolicy, ctx policyDomain.EvaluationContext, now time.Time) *policyDomain.EvaluationResult {
	if !policy.RotateOnComplianceRequirement || len(policy.ComplianceFrameworks) == 0 {
		return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerCompliance, Priority: 1, Reason: "no compliance rotation requirements"}
	}

	keyAgeDays := int(now.Sub(ctx.CreatedAt).Hours() / 24)

	var notes []string
	for _, framework := range policy.ComplianceFrameworks {
		rules, ok := policyDomain.ComplianceRulesFor(framework)
		if !ok {
			continue
		}
		if keyAgeDays > rules.MaxKeyAgeDays {
			return &policyDomain.EvaluationResult{
				RotationRequired: true,
				Trigger:          policyDomain.TriggerCompliance,
				Priority:         9,
				Reason:           "compliance framework requires rotation based on key age",
				ComplianceNotes:  append(notes, string(framework)),
			}
		}
	}

	return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerCompliance, Priority: 1, Reason: "all compliance requirements met"}
}

// evaluateUsage is priority 8 when usage_count >= max_operations, 6 when
// approaching 90% of it.
func (e *Evaluator) evaluateUsage(policy *policyDomain.RotationPolicy, ctx policyDomain.EvaluationContext) *policyDomain.EvaluationResult {
	if policy.MaxOperations <= 0 {
		return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerUsageCount, Priority: 1, Reason: "no usage-based rotation configured"}
	}

	if ctx.UsageCount >= policy.MaxOperations {
		return &policyDomain.EvaluationResult{
			RotationRequired: true,
			Trigger:          policyDomain.TriggerUsageCount,
			Priority:         8,
			Reason:           "usage count exceeds maximum operations",
		}
	}

	threshold := float64(policy.MaxOperations) * 0.9
	if float64(ctx.UsageCount) >= threshold {
		return &policyDomain.EvaluationResult{
			RotationRequired: true,
			Trigger:          policyDomain.TriggerUsageCount,
			Priority:         6,
			Reason:           "usage count approaching maximum operations",
		}
	}

	return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerUsageCount, Priority: 1, Reason: "usage count within limits"}
}

// evaluateTimeElapsed is priority 5 + floor(days_overdue/30), capped at 10.
func (e *Evaluator) evaluateTimeElapsed(policy *policyDomain.RotationPolicy, ctx policyDomain.EvaluationContext, now time.Time) *policyDomain.EvaluationResult {
	if policy.RotationIntervalDays <= 0 {
		return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerScheduled, Priority: 1, Reason: "no time-based rotation configured"}
	}

	lastRotation := ctx.LastRotation
	if lastRotation.IsZero() {
		lastRotation = ctx.CreatedAt
	}

	interval := time.Duration(policy.RotationIntervalDays) * 24 * time.Hour
	elapsed := now.Sub(lastRotation)
	if elapsed < interval {
		return &policyDomain.EvaluationResult{Trigger: policyDomain.TriggerScheduled, Priority: 1, Reason: "key age within rotation interval"}
	}

	daysOverdue := int((elapsed - interval).Hours() / 24)
	priority := 5 + daysOverdue/30
	if priority > 10 {
		priority = 10
	}

	return &policyDomain.EvaluationResult{
		RotationRequired: true,
		Trigger:          policyDomain.TriggerScheduled,
		Priority:         priority,
		Reason:           "key age exceeds rotation interval",
	}
}

// safetyChecks reports whether it is safe to schedule a rotation now: no
// active rotation already running for the key, system load below threshold,
// and not inside a declared maintenance window.
func (e *Evaluator) safetyChecks(ctx policyDomain.EvaluationContext) (bool, []string) {
	var failures []string

	if ctx.ActiveRotationRunning {
		failures = append(failures, "rotation already running for this key")
	}
	if ctx.SystemLoadThreshold > 0 && ctx.SystemLoad >= ctx.SystemLoadThreshold {
		failures = append(failures, "system load at or above threshold")
	}
	if ctx.MaintenanceWindow {
		failures = append(failures, "inside declared maintenance window")
	}

	return len(failures) == 0, failures
}

// recommendedSchedule picks a schedule time: now when the policy has no
// parseable RotationWindowStart, otherwise the next occurrence of that start
// time (today if still ahead, else tomorrow). Priority is not considered.
func (e *Evaluator) recommendedSchedule(policy *policyDomain.RotationPolicy, now time.Time) time.Time {
	if policy.RotationWindowStart == "" {
		return now
	}

	windowStart, err := time.Parse("15:04", policy.RotationWindowStart)
	if err != nil {
		return now
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), windowStart.Hour(), windowStart.Minute(), 0, 0, now.Location())
	if candidate.Before(now) {
		candidate = candidate.Add(24 * time.Hour)
	}
	return candidate
}

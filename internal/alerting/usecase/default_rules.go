package usecase

import (
	"fmt"
	"time"

	alertingDomain "github.com/allisson/keystore/internal/alerting/domain"
)

// RegisterDefaultRules registers the five baseline rules: rotation failure
// rate, key-usage anomaly score, HSM connection loss, imminent key
// expiration, and scheduler liveness.
func RegisterDefaultRules(uc UseCase) error {
	rules := []alertingDomain.Rule{
		{
			Name:     "rotation-failure-rate-high",
			Variable: "rotation_failure_rate_1h",
			Operator: alertingDomain.OperatorGT,
			Literal:  0.10,
			Severity: alertingDomain.SeverityHigh,
			Cooldown: 5 * time.Minute,
			Message:  "rotation failure rate exceeded 10% over the last hour",
		},
		{
			Name:     "key-usage-anomaly",
			Variable: "key_usage_anomaly_score",
			Operator: alertingDomain.OperatorGT,
			Literal:  0.8,
			Severity: alertingDomain.SeverityMedium,
			Cooldown: 5 * time.Minute,
			Message:  "key usage anomaly score exceeded 0.8",
		},
		{
			Name:     "hsm-connection-lost",
			Variable: "hsm_connected",
			Operator: alertingDomain.OperatorEQ,
			Literal:  0,
			Severity: alertingDomain.SeverityCritical,
			Cooldown: 5 * time.Minute,
			Message:  "HSM connection lost",
		},
		{
			Name:     "key-expiring-soon",
			Variable: "days_until_expiry",
			Operator: alertingDomain.OperatorLTE,
			Literal:  7,
			Severity: alertingDomain.SeverityMedium,
			Cooldown: 5 * time.Minute,
			Message:  "key is expiring within 7 days",
		},
		{
			Name:     "scheduler-not-running",
			Variable: "scheduler_running",
			Operator: alertingDomain.OperatorEQ,
			Literal:  0,
			Severity: alertingDomain.SeverityHigh,
			Cooldown: 5 * time.Minute,
			Message:  "rotation scheduler is not running",
		},
	}

	for _, rule := range rules {
		if err := uc.RegisterRule(rule); err != nil {
			return fmt.Errorf("failed to register default rule %q: %w", rule.Name, err)
		}
	}

	return nil
}

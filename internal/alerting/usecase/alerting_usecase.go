package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	alertingDomain "github.com/allisson/keystore/internal/alerting/domain"
)

// knownVariables whitelists the metric names the rule engine understands.
// Registration of a rule referencing a variable outside this set fails
// immediately rather than being accepted and silently never firing.
var knownVariables = map[string]alertingDomain.Scope{
	"rotation_failure_rate_1h": alertingDomain.ScopeGlobal,
	"hsm_connected":            alertingDomain.ScopeGlobal,
	"scheduler_running":        alertingDomain.ScopeGlobal,
	"key_usage_anomaly_score":  alertingDomain.ScopePerKey,
	"days_until_expiry":        alertingDomain.ScopePerKey,
}

type alertingUseCase struct {
	mu       sync.Mutex
	rules    []alertingDomain.Rule
	lastFire map[string]time.Time
	now      Clock
}

// NewAlertingUseCase creates a rule engine with no rules registered. Callers
// typically follow with RegisterDefaultRules.
func NewAlertingUseCase() UseCase {
	return &alertingUseCase{
		lastFire: make(map[string]time.Time),
		now:      time.Now,
	}
}

// newAlertingUseCaseWithClock is used by tests to control cooldown timing.
func newAlertingUseCaseWithClock(now Clock) *alertingUseCase {
	return &alertingUseCase{
		lastFire: make(map[string]time.Time),
		now:      now,
	}
}

func (a *alertingUseCase) RegisterRule(rule alertingDomain.Rule) error {
	if rule.Name == "" {
		return fmt.Errorf("rule name must not be empty")
	}

	scope, known := knownVariables[rule.Variable]
	if !known {
		return fmt.Errorf("unknown rule variable: %q", rule.Variable)
	}
	if rule.Scope == "" {
		rule.Scope = scope
	} else if rule.Scope != scope {
		return fmt.Errorf("variable %q is %s-scoped, rule declares %s", rule.Variable, scope, rule.Scope)
	}

	switch rule.Operator {
	case alertingDomain.OperatorGT, alertingDomain.OperatorGTE,
		alertingDomain.OperatorLT, alertingDomain.OperatorLTE,
		alertingDomain.OperatorEQ, alertingDomain.OperatorNEQ:
	default:
		return fmt.Errorf("unknown rule operator: %q", rule.Operator)
	}

	if rule.Cooldown <= 0 {
		rule.Cooldown = 5 * time.Minute
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.rules {
		if existing.Name == rule.Name {
			return fmt.Errorf("rule %q already registered", rule.Name)
		}
	}
	a.rules = append(a.rules, rule)
	return nil
}

func (a *alertingUseCase) Rules() []alertingDomain.Rule {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]alertingDomain.Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

func (a *alertingUseCase) Evaluate(ctx context.Context, snapshot Snapshot) ([]alertingDomain.Alert, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	var fired []alertingDomain.Alert

	for _, rule := range a.rules {
		switch rule.Scope {
		case alertingDomain.ScopeGlobal:
			value, ok := snapshot.Global[rule.Variable]
			if !ok {
				continue
			}
			alert, matched, err := a.checkRule(rule, "", value, now)
			if err != nil {
				return nil, err
			}
			if matched {
				fired = append(fired, alert)
			}
		case alertingDomain.ScopePerKey:
			for key, metrics := range snapshot.PerKey {
				value, ok := metrics[rule.Variable]
				if !ok {
					continue
				}
				alert, matched, err := a.checkRule(rule, key, value, now)
				if err != nil {
					return nil, err
				}
				if matched {
					fired = append(fired, alert)
				}
			}
		}
	}

	return fired, nil
}

// checkRule must be called with a.mu held.
func (a *alertingUseCase) checkRule(
	rule alertingDomain.Rule,
	key string,
	value float64,
	now time.Time,
) (alertingDomain.Alert, bool, error) {
	matched, err := rule.Operator.Evaluate(value, rule.Literal)
	if err != nil {
		return alertingDomain.Alert{}, false, err
	}
	if !matched {
		return alertingDomain.Alert{}, false, nil
	}

	alert := alertingDomain.Alert{
		RuleName: rule.Name,
		Severity: rule.Severity,
		Key:      key,
		Value:    value,
		FiredAt:  now,
		Message:  rule.Message,
	}

	dedupeKey := alert.DedupeKey()
	if last, ok := a.lastFire[dedupeKey]; ok && now.Sub(last) < rule.Cooldown {
		return alertingDomain.Alert{}, false, nil
	}
	a.lastFire[dedupeKey] = now

	return alert, true, nil
}

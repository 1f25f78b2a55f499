// Package usecase implements a rule engine that evaluates metric snapshots
// against registered (variable, operator, literal) conditions and dedupes
// fired alerts per (rule, key) within a cooldown window.
package usecase

import (
	"context"
	"time"

	alertingDomain "github.com/allisson/keystore/internal/alerting/domain"
)

// Snapshot carries the metric values a tick of evaluation runs against.
// Global holds single values such as "hsm_connected" or "scheduler_running".
// PerKey holds values scoped to a key name, such as "days_until_expiry".
type Snapshot struct {
	Global map[string]float64
	PerKey map[string]map[string]float64
}

// UseCase registers alert rules and evaluates metric snapshots against them.
type UseCase interface {
	// RegisterRule parses and stores a rule. Unknown variables or operators
	// are rejected at registration time; the condition is never evaluated
	// through a general-purpose interpreter.
	RegisterRule(rule alertingDomain.Rule) error

	// Evaluate checks every registered rule against snapshot, returning the
	// alerts that fired and were not suppressed by an active cooldown.
	Evaluate(ctx context.Context, snapshot Snapshot) ([]alertingDomain.Alert, error)

	// Rules returns the currently registered rules.
	Rules() []alertingDomain.Rule
}

// Clock abstracts time.Now for deterministic cooldown tests.
type Clock func() time.Time

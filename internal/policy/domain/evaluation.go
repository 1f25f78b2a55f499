package domain

import "time"

// Trigger identifies why a rotation is being recommended.
type Trigger string

const (
	TriggerNone             Trigger = "none"
	TriggerScheduled        Trigger = "scheduled"
	TriggerUsageCount       Trigger = "usage_count"
	TriggerSecurityIncident Trigger = "security_incident"
	TriggerCompliance       Trigger = "compliance"
)

// SecurityIncident is a single reported incident considered during
// evaluation of the security-incident rule.
type SecurityIncident struct {
	Severity  int // 0-10
	Timestamp time.Time
}

// EvaluationContext carries the key and system state a policy is evaluated
// against. It is intentionally decoupled from any single key representation
// so the engine can run against managed keys, KEKs, or HSM-resident keys alike.
type EvaluationContext struct {
	KeyName               string
	UsageCount            int64
	LastRotation          time.Time
	CreatedAt             time.Time
	SecurityIncidents     []SecurityIncident
	ComplianceFrameworks  []ComplianceFramework
	SystemLoad            float64 // 0.0-1.0
	SystemLoadThreshold   float64
	MaintenanceWindow     bool
	ActiveRotationRunning bool
	Now                   time.Time
}

// EvaluationResult is the outcome of evaluating a RotationPolicy against an
// EvaluationContext: whether rotation is required, by which trigger, and at
// what priority (1-10, 10 highest).
type EvaluationResult struct {
	RotationRequired    bool
	Trigger             Trigger
	Priority            int
	Reason              string
	RecommendedSchedule *time.Time
	SafetyChecksPassed  bool
	SafetyCheckFailures []string
	ComplianceNotes     []string
}

// Package domain defines the rotation policy engine's domain model: the
// policies themselves, the evaluation context and result, and the
// compliance framework table policies can opt into.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RotationPolicy binds a managed key to rotation triggers and the
// compliance frameworks it must satisfy. Document-as-data, grounded on the
// teacher's auth Policy type, but for rotation triggers rather than
// capability ACLs.
type RotationPolicy struct {
	ID                            uuid.UUID
	Name                          string
	KeyName                       string
	RotationIntervalDays          int // 0 disables time-based rotation
	MaxOperations                 int64 // 0 disables usage-based rotation
	RotateOnSecurityIncident      bool
	RotateOnComplianceRequirement bool
	ComplianceFrameworks          []ComplianceFramework
	RotationWindowStart           string // "HH:MM", empty disables window restriction
	RotationWindowEnd             string
	NotifyBeforeRotationHours     int
	IsActive                      bool
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}

// MaxPolicyNameLength bounds Name, aligned with the rotation_policies schema.
const MaxPolicyNameLength = 255

// Validate checks domain invariants on the policy fields, grounded on the
// original engine's policy request validation.
func (p *RotationPolicy) Validate() error {
	if p.Name == "" || len(p.Name) > MaxPolicyNameLength {
		return ErrInvalidPolicy
	}
	if p.KeyName == "" {
		return ErrInvalidPolicy
	}
	if p.RotationIntervalDays < 0 {
		return ErrInvalidPolicy
	}
	if p.MaxOperations < 0 {
		return ErrInvalidPolicy
	}
	if p.NotifyBeforeRotationHours < 0 {
		return ErrInvalidPolicy
	}
	for _, framework := range p.ComplianceFrameworks {
		if _, ok := ComplianceRulesFor(framework); !ok {
			return ErrUnknownComplianceFramework
		}
	}
	return nil
}

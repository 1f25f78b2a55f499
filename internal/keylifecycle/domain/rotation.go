package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RotationStatus tracks a Rotation record through its lifecycle.
type RotationStatus string

const (
	RotationStatusScheduled RotationStatus = "SCHEDULED"
	RotationStatusRunning   RotationStatus = "RUNNING"
	RotationStatusCompleted RotationStatus = "COMPLETED"
	RotationStatusFailed    RotationStatus = "FAILED"
)

// RotationTrigger records why a rotation was initiated.
type RotationTrigger string

const (
	RotationTriggerScheduled        RotationTrigger = "SCHEDULED"
	RotationTriggerUsageCount       RotationTrigger = "USAGE_COUNT"
	RotationTriggerManual           RotationTrigger = "MANUAL"
	RotationTriggerSecurityIncident RotationTrigger = "SECURITY_INCIDENT"
	RotationTriggerCompliance       RotationTrigger = "COMPLIANCE"
)

// Rotation is a persisted record of one rotation attempt against a named
// managed key. At most one Rotation with Status in {SCHEDULED, RUNNING} may
// exist per key name at a time; the keyed lock in the use case layer
// enforces this in-process, and the unique partial index on the rotations
// table enforces it at the database level on PostgreSQL.
type Rotation struct {
	ID          uuid.UUID
	KeyName     string
	Trigger     RotationTrigger
	Status      RotationStatus
	OldVersion  uint
	NewVersion  *uint
	StartedAt   time.Time
	CompletedAt *time.Time
	FailedAt    *time.Time
	ExecutionMS *int64
	Error       *string
}

// Validate checks if the rotation record contains valid data.
func (r *Rotation) Validate() error {
	if r.KeyName == "" {
		return errors.New("rotation key name cannot be empty")
	}

	switch r.Trigger {
	case RotationTriggerScheduled, RotationTriggerUsageCount, RotationTriggerManual,
		RotationTriggerSecurityIncident, RotationTriggerCompliance:
	default:
		return errors.New("rotation has invalid trigger")
	}

	switch r.Status {
	case RotationStatusScheduled, RotationStatusRunning, RotationStatusCompleted, RotationStatusFailed:
	default:
		return errors.New("rotation has invalid status")
	}

	if r.StartedAt.IsZero() {
		return errors.New("rotation must have a valid started_at timestamp")
	}

	return nil
}

// Package domain defines the rotation scheduler's status and outcome types.
package domain

import "time"

// State describes the scheduler's current operational state.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Metrics tracks scheduler throughput, grounded on the original
// SchedulerMetrics dataclass.
type Metrics struct {
	RotationsScheduled     int64
	RotationsCompleted     int64
	RotationsFailed        int64
	RotationsSkipped       int64
	AverageExecutionTimeMs float64
	LastSuccessfulRotation *time.Time
	LastFailedRotation     *time.Time
}

// Status is the scheduler's point-in-time health and metrics snapshot.
type Status struct {
	State           State
	UptimeSeconds   int64
	ActiveRotations []string
	Metrics         Metrics
	CheckInterval   time.Duration
	MaxConcurrent   int
}

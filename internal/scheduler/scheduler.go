// Package scheduler implements the automated rotation scheduler: a
// ticker-driven loop that evaluates rotation policies against managed keys
// and triggers rotation for any key whose policy evaluation requires it.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	keyDomain "github.com/allisson/keystore/internal/keylifecycle/domain"
	policyDomain "github.com/allisson/keystore/internal/policy/domain"
	schedulerDomain "github.com/allisson/keystore/internal/scheduler/domain"
)

// KeyRotator rotates a managed key to a new version.
type KeyRotator interface {
	Rotate(ctx context.Context, name string, alg cryptoDomain.Algorithm) (*keyDomain.Key, error)
}

// KeyInspector looks up a managed key's current version data, used to build
// the evaluation context (key age, last rotation time) a policy is checked
// against.
type KeyInspector interface {
	GetByName(ctx context.Context, name string) (*keyDomain.Key, error)
}

// PolicyEvaluator lists active rotation policies and evaluates whether a
// given key is due for rotation.
type PolicyEvaluator interface {
	List(ctx context.Context) ([]*policyDomain.RotationPolicy, error)
	Evaluate(ctx context.Context, keyName string, evalCtx policyDomain.EvaluationContext) (*policyDomain.EvaluationResult, error)
}

// Config configures the scheduler's behavior.
type Config struct {
	CheckInterval         time.Duration
	MaxConcurrentRotations int64
	ShutdownTimeout       time.Duration
	DefaultAlgorithm      cryptoDomain.Algorithm
	SystemLoad            float64
	SystemLoadThreshold   float64
	MaintenanceWindow     bool
}

// DefaultConfig returns the scheduler's default configuration, grounded on
// the original scheduler's 300s check interval and 3 max concurrent rotations.
func DefaultConfig() Config {
	return Config{
		CheckInterval:          5 * time.Minute,
		MaxConcurrentRotations: 3,
		ShutdownTimeout:        30 * time.Second,
		DefaultAlgorithm:       cryptoDomain.AESGCM,
	}
}

// Scheduler periodically evaluates rotation policies and rotates any key
// whose policy evaluation reports RotationRequired and safety checks passed.
type Scheduler struct {
	config   Config
	policies PolicyEvaluator
	keys     KeyInspector
	rotator  KeyRotator
	logger   *slog.Logger

	sem *semaphore.Weighted

	mu      sync.Mutex
	state   schedulerDomain.State
	metrics schedulerDomain.Metrics
	active  map[string]struct{}
	startedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a new rotation Scheduler.
func New(config Config, policies PolicyEvaluator, keys KeyInspector, rotator KeyRotator, logger *slog.Logger) *Scheduler {
	if config.MaxConcurrentRotations <= 0 {
		config.MaxConcurrentRotations = 1
	}
	return &Scheduler{
		config:   config,
		policies: policies,
		keys:     keys,
		rotator:  rotator,
		logger:   logger,
		sem:      semaphore.NewWeighted(config.MaxConcurrentRotations),
		state:    schedulerDomain.StateStopped,
		active:   make(map[string]struct{}),
	}
}

// Start launches the scheduler loop in a background goroutine and returns
// immediately. Call Stop to request a graceful shutdown.
func (s *Scheduler) Start(ctx context.Context) error {
	loopCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = schedulerDomain.StateRunning
	done := s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		_ = s.run(loopCtx)
	}()

	return nil
}

// Stop requests the scheduler loop to stop and waits up to
// Config.ShutdownTimeout for in-flight rotations to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()

	if done == nil {
		return
	}
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	select {
	case <-done:
	case <-time.After(timeout):
		if s.logger != nil {
			s.logger.Warn("rotation scheduler stop timed out waiting for loop exit")
		}
	}
}

// run is the scheduler's ticker/select loop. It blocks until ctx is
// cancelled, then waits up to Config.ShutdownTimeout for in-flight rotations
// to finish. Grounded on OutboxUseCase.Start's ticker/select loop shape.
func (s *Scheduler) run(ctx context.Context) error {
	s.mu.Lock()
	s.state = schedulerDomain.StateRunning
	s.startedAt = time.Now().UTC()
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("rotation scheduler started",
			slog.Duration("check_interval", s.config.CheckInterval),
			slog.Int64("max_concurrent_rotations", s.config.MaxConcurrentRotations),
		)
	}

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer func() {
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		select {
		case <-done:
		case <-time.After(timeout):
			if s.logger != nil {
				s.logger.Warn("rotation scheduler shutdown timed out waiting for active rotations")
			}
		}

		s.mu.Lock()
		s.state = schedulerDomain.StateStopped
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Info("rotation scheduler stopped")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkAndScheduleRotations(ctx, &wg)
		}
	}
}

// checkAndScheduleRotations evaluates every active policy's key and
// launches a rotation for any that are due and pass safety checks.
func (s *Scheduler) checkAndScheduleRotations(ctx context.Context, wg *sync.WaitGroup) {
	policies, err := s.policies.List(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to list rotation policies", slog.Any("error", err))
		}
		return
	}

	seen := make(map[string]struct{})
	for _, policy := range policies {
		if !policy.IsActive {
			continue
		}
		if _, already := seen[policy.KeyName]; already {
			continue
		}
		seen[policy.KeyName] = struct{}{}

		s.evaluateAndSchedule(ctx, policy.KeyName, wg)
	}
}

func (s *Scheduler) evaluateAndSchedule(ctx context.Context, keyName string, wg *sync.WaitGroup) {
	key, err := s.keys.GetByName(ctx, keyName)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to look up key for rotation evaluation",
				slog.String("key_name", keyName), slog.Any("error", err))
		}
		return
	}

	evalCtx := policyDomain.EvaluationContext{
		KeyName:               keyName,
		CreatedAt:              key.CreatedAt,
		LastRotation:           key.CreatedAt,
		ActiveRotationRunning:  s.isActive(keyName),
		SystemLoad:             s.config.SystemLoad,
		SystemLoadThreshold:    s.config.SystemLoadThreshold,
		MaintenanceWindow:      s.config.MaintenanceWindow,
		Now:                    time.Now().UTC(),
	}

	result, err := s.policies.Evaluate(ctx, keyName, evalCtx)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to evaluate rotation policy",
				slog.String("key_name", keyName), slog.Any("error", err))
		}
		return
	}

	if !result.RotationRequired {
		return
	}

	if !result.SafetyChecksPassed {
		s.recordSkipped()
		if s.logger != nil {
			s.logger.Warn("rotation due but safety checks failed",
				slog.String("key_name", keyName),
				slog.Any("failures", result.SafetyCheckFailures),
			)
		}
		return
	}

	if !s.sem.TryAcquire(1) {
		s.recordSkipped()
		if s.logger != nil {
			s.logger.Warn("max concurrent rotations reached, deferring key", slog.String("key_name", keyName))
		}
		return
	}

	s.markActive(keyName)
	s.recordScheduled()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer s.sem.Release(1)
		defer s.unmarkActive(keyName)

		s.executeRotation(ctx, keyName)
	}()
}

func (s *Scheduler) executeRotation(ctx context.Context, keyName string) {
	start := time.Now()

	_, err := s.rotator.Rotate(ctx, keyName, s.config.DefaultAlgorithm)

	elapsedMs := float64(time.Since(start).Milliseconds())

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.metrics.RotationsFailed++
		now := time.Now().UTC()
		s.metrics.LastFailedRotation = &now
		if s.logger != nil {
			s.logger.Error("rotation failed", slog.String("key_name", keyName), slog.Any("error", err))
		}
		return
	}

	s.metrics.RotationsCompleted++
	now := time.Now().UTC()
	s.metrics.LastSuccessfulRotation = &now
	s.updateAverageExecutionTime(elapsedMs)

	if s.logger != nil {
		s.logger.Info("rotation completed", slog.String("key_name", keyName))
	}
}

// updateAverageExecutionTime keeps a simple moving average, grounded on the
// original _update_average_execution_time (0.9/0.1 exponential smoothing).
// Caller must hold s.mu.
func (s *Scheduler) updateAverageExecutionTime(elapsedMs float64) {
	if s.metrics.AverageExecutionTimeMs == 0 {
		s.metrics.AverageExecutionTimeMs = elapsedMs
		return
	}
	s.metrics.AverageExecutionTimeMs = s.metrics.AverageExecutionTimeMs*0.9 + elapsedMs*0.1
}

func (s *Scheduler) recordScheduled() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.RotationsScheduled++
}

func (s *Scheduler) recordSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.RotationsSkipped++
}

func (s *Scheduler) markActive(keyName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[keyName] = struct{}{}
}

func (s *Scheduler) unmarkActive(keyName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, keyName)
}

func (s *Scheduler) isActive(keyName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[keyName]
	return ok
}

// Status returns a snapshot of the scheduler's current state and metrics.
func (s *Scheduler) Status() schedulerDomain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]string, 0, len(s.active))
	for keyName := range s.active {
		active = append(active, keyName)
	}

	var uptime int64
	if !s.startedAt.IsZero() {
		uptime = int64(time.Since(s.startedAt).Seconds())
	}

	return schedulerDomain.Status{
		State:           s.state,
		UptimeSeconds:   uptime,
		ActiveRotations: active,
		Metrics:         s.metrics,
		CheckInterval:   s.config.CheckInterval,
		MaxConcurrent:   int(s.config.MaxConcurrentRotations),
	}
}

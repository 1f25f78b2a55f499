package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	"github.com/allisson/keystore/internal/scheduler"
)

// RotationScheduler returns the rotation scheduler.
func (c *Container) RotationScheduler() (*scheduler.Scheduler, error) {
	var err error
	c.rotationSchedulerInit.Do(func() {
		c.rotationScheduler, err = c.initRotationScheduler()
		if err != nil {
			c.initErrors["rotationScheduler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rotationScheduler"]; exists {
		return nil, storedErr
	}
	return c.rotationScheduler, nil
}

// initRotationScheduler creates the rotation scheduler wired against the
// policy use case and the key lifecycle use case.
func (c *Container) initRotationScheduler() (*scheduler.Scheduler, error) {
	policyUC, err := c.PolicyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy use case for rotation scheduler: %w", err)
	}

	keyLifecycleUC, err := c.KeyLifecycleUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key lifecycle use case for rotation scheduler: %w", err)
	}

	keyVersionRepo, err := c.KeyVersionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get key version repository for rotation scheduler: %w", err)
	}

	cfg := scheduler.DefaultConfig()
	cfg.CheckInterval = c.config.CheckInterval
	cfg.MaxConcurrentRotations = int64(c.config.MaxConcurrentRotations)
	cfg.DefaultAlgorithm = cryptoDomain.AESGCM

	return scheduler.New(cfg, policyUC, keyVersionRepo, keyLifecycleUC, c.Logger()), nil
}

package app

import (
	"fmt"

	policyRepository "github.com/allisson/keystore/internal/policy/repository"
	policyService "github.com/allisson/keystore/internal/policy/service"
	policyUseCase "github.com/allisson/keystore/internal/policy/usecase"
)

// PolicyRepository returns the rotation policy repository.
func (c *Container) PolicyRepository() (policyUseCase.Repository, error) {
	var err error
	c.policyRepositoryInit.Do(func() {
		c.policyRepository, err = c.initPolicyRepository()
		if err != nil {
			c.initErrors["policyRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyRepository"]; exists {
		return nil, storedErr
	}
	return c.policyRepository, nil
}

// PolicyUseCase returns the rotation policy use case.
func (c *Container) PolicyUseCase() (policyUseCase.UseCase, error) {
	var err error
	c.policyUseCaseInit.Do(func() {
		c.policyUseCase, err = c.initPolicyUseCase()
		if err != nil {
			c.initErrors["policyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyUseCase"]; exists {
		return nil, storedErr
	}
	return c.policyUseCase, nil
}

// initPolicyRepository creates the rotation policy repository based on the database driver.
func (c *Container) initPolicyRepository() (policyUseCase.Repository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for policy repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return policyRepository.NewPostgreSQLPolicyRepository(db), nil
	case "mysql":
		return policyRepository.NewMySQLPolicyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPolicyUseCase creates the rotation policy use case with its evaluator.
func (c *Container) initPolicyUseCase() (policyUseCase.UseCase, error) {
	repo, err := c.PolicyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy repository for policy use case: %w", err)
	}

	evaluator := policyService.NewEvaluator()

	return policyUseCase.NewPolicyUseCase(repo, evaluator), nil
}

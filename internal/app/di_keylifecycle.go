package app

import (
	"fmt"

	cryptoMySQL "github.com/allisson/keystore/internal/crypto/repository/mysql"
	cryptoPostgreSQL "github.com/allisson/keystore/internal/crypto/repository/postgresql"
	keyRepository "github.com/allisson/keystore/internal/keylifecycle/repository"
	keyUseCase "github.com/allisson/keystore/internal/keylifecycle/usecase"
	"github.com/allisson/keystore/internal/lock"
)

// KeyDekRepository returns the DEK repository used by the key lifecycle use
// case. It reuses the crypto module's DEK repository implementation, which
// already satisfies the narrower Create/Get surface this module needs.
func (c *Container) KeyDekRepository() (keyUseCase.DekRepository, error) {
	var err error
	c.keyDekRepositoryInit.Do(func() {
		c.keyDekRepository, err = c.initKeyDekRepository()
		if err != nil {
			c.initErrors["keyDekRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyDekRepository"]; exists {
		return nil, storedErr
	}
	return c.keyDekRepository, nil
}

// KeyVersionRepository returns the managed key version repository.
func (c *Container) KeyVersionRepository() (keyUseCase.KeyVersionRepository, error) {
	var err error
	c.keyVersionRepositoryInit.Do(func() {
		c.keyVersionRepository, err = c.initKeyVersionRepository()
		if err != nil {
			c.initErrors["keyVersionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyVersionRepository"]; exists {
		return nil, storedErr
	}
	return c.keyVersionRepository, nil
}

// KeyRotationRepository returns the repository tracking rotation attempts.
func (c *Container) KeyRotationRepository() (keyUseCase.RotationRepository, error) {
	var err error
	c.keyRotationRepositoryInit.Do(func() {
		c.keyRotationRepository, err = c.initKeyRotationRepository()
		if err != nil {
			c.initErrors["keyRotationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyRotationRepository"]; exists {
		return nil, storedErr
	}
	return c.keyRotationRepository, nil
}

// KeyRotationLock returns the process-wide per-key rotation lock, shared by every
// caller of Rotate so concurrent rotations of the same key name are mutually exclusive.
func (c *Container) KeyRotationLock() *lock.KeyedTryLock {
	c.keyRotationLockInit.Do(func() {
		c.keyRotationLock = lock.NewKeyedTryLock()
	})
	return c.keyRotationLock
}

// KeyLifecycleUseCase returns the key lifecycle use case.
func (c *Container) KeyLifecycleUseCase() (keyUseCase.KeyLifecycleUseCase, error) {
	var err error
	c.keyLifecycleUseCaseInit.Do(func() {
		c.keyLifecycleUseCase, err = c.initKeyLifecycleUseCase()
		if err != nil {
			c.initErrors["keyLifecycleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyLifecycleUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyLifecycleUseCase, nil
}

// initKeyDekRepository creates the DEK repository based on the database driver.
func (c *Container) initKeyDekRepository() (keyUseCase.DekRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key dek repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return cryptoPostgreSQL.NewPostgreSQLDekRepository(db), nil
	case "mysql":
		return cryptoMySQL.NewMySQLDekRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initKeyVersionRepository creates the managed key version repository based on the database driver.
func (c *Container) initKeyVersionRepository() (keyUseCase.KeyVersionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key version repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return keyRepository.NewPostgreSQLKeyVersionRepository(db), nil
	case "mysql":
		return keyRepository.NewMySQLKeyVersionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initKeyRotationRepository creates the rotation attempt repository based on the database driver.
func (c *Container) initKeyRotationRepository() (keyUseCase.RotationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key rotation repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return keyRepository.NewPostgreSQLRotationRepository(db), nil
	case "mysql":
		return keyRepository.NewMySQLRotationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initKeyLifecycleUseCase creates the key lifecycle use case with all its dependencies.
func (c *Container) initKeyLifecycleUseCase() (keyUseCase.KeyLifecycleUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for key lifecycle use case: %w", err)
	}

	keyVersionRepo, err := c.KeyVersionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get key version repository for key lifecycle use case: %w", err)
	}

	dekRepo, err := c.KeyDekRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get dek repository for key lifecycle use case: %w", err)
	}

	rotationRepo, err := c.KeyRotationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rotation repository for key lifecycle use case: %w", err)
	}

	keyManager := c.KeyManager()
	aeadManager := c.AEADManager()

	kekChain, err := c.loadKekChain()
	if err != nil {
		return nil, fmt.Errorf("failed to load kek chain for key lifecycle use case: %w", err)
	}

	nonceLedger := c.NonceLedger()
	rotationLock := c.KeyRotationLock()

	auditUC, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for key lifecycle use case: %w", err)
	}

	return keyUseCase.NewKeyLifecycleUseCase(
		txManager, keyVersionRepo, dekRepo, rotationRepo, keyManager, aeadManager,
		kekChain, nonceLedger, rotationLock, auditUC,
	), nil
}

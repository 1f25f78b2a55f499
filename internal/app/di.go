// Package app provides the dependency injection container that assembles the
// key management engine: crypto envelope services, key lifecycle management,
// rotation policy evaluation, the rotation scheduler, the HSM abstraction,
// the tamper-evident audit ledger, and alerting.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	cryptoDomain "github.com/allisson/keystore/internal/crypto/domain"
	cryptoService "github.com/allisson/keystore/internal/crypto/service"
	cryptoUseCase "github.com/allisson/keystore/internal/crypto/usecase"

	auditUseCase "github.com/allisson/keystore/internal/audit/usecase"
	alertingUseCase "github.com/allisson/keystore/internal/alerting/usecase"
	"github.com/allisson/keystore/internal/config"
	"github.com/allisson/keystore/internal/database"
	hsmService "github.com/allisson/keystore/internal/hsm/service"
	httpserver "github.com/allisson/keystore/internal/http"
	keyUseCase "github.com/allisson/keystore/internal/keylifecycle/usecase"
	"github.com/allisson/keystore/internal/lock"
	policyUseCase "github.com/allisson/keystore/internal/policy/usecase"
	"github.com/allisson/keystore/internal/scheduler"
	"github.com/allisson/keystore/internal/transport"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Crypto envelope encryption
	masterKeyChain          *cryptoDomain.MasterKeyChain
	aeadManager             cryptoService.AEADManager
	keyManager              cryptoService.KeyManager
	kmsService              cryptoService.KMSService
	kekRepository           cryptoUseCase.KekRepository
	kekUseCase              cryptoUseCase.KekUseCase
	cryptoDekRepository     cryptoUseCase.DekRepository
	cryptoDekUseCase        cryptoUseCase.DekUseCase
	nonceLedger             *cryptoService.NonceLedger

	// Key lifecycle management
	keyDekRepository      keyUseCase.DekRepository
	keyVersionRepository   keyUseCase.KeyVersionRepository
	keyRotationRepository keyUseCase.RotationRepository
	keyRotationLock       *lock.KeyedTryLock
	keyLifecycleUseCase    keyUseCase.KeyLifecycleUseCase

	// Tamper-evident audit ledger
	auditRepository auditUseCase.Repository
	auditUseCase    auditUseCase.UseCase

	// Rotation policy engine
	policyRepository policyUseCase.Repository
	policyUseCase    policyUseCase.UseCase

	// Rotation scheduler
	rotationScheduler *scheduler.Scheduler

	// HSM abstraction
	hsmProvider hsmService.Provider

	// Alerting
	alertingUseCase alertingUseCase.UseCase

	// Servers and Workers
	statusServer *httpserver.Server

	// Initialization flags and mutex for thread-safety
	mu        sync.Mutex
	loggerInit    sync.Once
	dbInit        sync.Once
	txManagerInit sync.Once

	masterKeyChainInit      sync.Once
	aeadManagerInit         sync.Once
	keyManagerInit          sync.Once
	kmsServiceInit          sync.Once
	kekRepositoryInit       sync.Once
	kekUseCaseInit          sync.Once
	cryptoDekRepositoryInit sync.Once
	cryptoDekUseCaseInit    sync.Once
	nonceLedgerInit         sync.Once

	keyDekRepositoryInit    sync.Once
	keyVersionRepositoryInit sync.Once
	keyRotationRepositoryInit sync.Once
	keyRotationLockInit     sync.Once
	keyLifecycleUseCaseInit sync.Once

	auditRepositoryInit sync.Once
	auditUseCaseInit    sync.Once

	policyRepositoryInit sync.Once
	policyUseCaseInit    sync.Once

	rotationSchedulerInit sync.Once

	hsmProviderInit sync.Once

	alertingUseCaseInit sync.Once

	statusServerInit sync.Once

	initErrors map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// StatusServer returns the thin status server exposing /healthz and /metrics.
func (c *Container) StatusServer() (*httpserver.Server, error) {
	var err error
	c.statusServerInit.Do(func() {
		c.statusServer, err = c.initStatusServer()
		if err != nil {
			c.initErrors["statusServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["statusServer"]; exists {
		return nil, storedErr
	}
	return c.statusServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.rotationScheduler != nil {
		c.rotationScheduler.Stop()
	}

	if c.statusServer != nil {
		if err := c.statusServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("status server shutdown: %w", err))
		}
	}

	if c.masterKeyChain != nil {
		c.masterKeyChain.Close()
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initStatusServer creates the status-only HTTP server (/healthz, /metrics).
func (c *Container) initStatusServer() (*httpserver.Server, error) {
	logger := c.Logger()
	server := httpserver.NewServer(c.config.ServerHost, c.config.ServerPort, logger)

	if policy, err := c.TransportPolicy(); err != nil {
		logger.Warn("status server starting without hardened TLS", slog.Any("error", err))
	} else {
		server.SetTLSConfig(policy.TLSConfig())
	}

	return server, nil
}

// TransportPolicy resolves the TLS cipher-suite and minimum-version policy
// from the configured security level.
func (c *Container) TransportPolicy() (*transport.Policy, error) {
	level, err := transport.ParseSecurityLevel(c.config.SecurityLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse security level: %w", err)
	}
	return transport.NewPolicy(level)
}

// Package service owns the lifecycle of the storage client behind the HTTP
// API and implements the API dependencies on top of it.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/crm/internal/adapters/repository"
	"github.com/okian/crm/pkg/logger"
	"github.com/okian/crm/pkg/metrics"
)

// ErrNotStarted is returned by Ping before Start succeeded or after Stop.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the CRM.
//
// The embedded Store is set by Start; calling store methods before Start
// panics.
type Service struct {
	repository.Store

	mu sync.RWMutex

	// Storage
	gorm *repository.GormStore

	// Configuration
	driver          string
	dsn             string
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	slowThreshold   time.Duration
	seeds           repository.Seeds

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDatabase selects the driver and DSN.
func WithDatabase(driver, dsn string) Option {
	return func(s *Service) {
		if driver != "" {
			s.driver = driver
		}
		if dsn != "" {
			s.dsn = dsn
		}
	}
}

// WithPool sizes the connection pool.
func WithPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(s *Service) {
		s.maxOpenConns = maxOpen
		s.maxIdleConns = maxIdle
		s.connMaxLifetime = maxLifetime
	}
}

// WithSlowThreshold sets the duration above which statements log at warn.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *Service) {
		s.slowThreshold = d
	}
}

// WithSeeds sets the lookup descriptions inserted into empty tables on start.
func WithSeeds(seeds repository.Seeds) Option {
	return func(s *Service) {
		s.seeds = seeds
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		driver: repository.DriverSQLite,
		dsn:    "crm.db",
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the database, creates missing tables and seeds the lookup
// vocabularies.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting crm service...", logger.String("driver", s.driver))

	store, err := repository.Open(ctx, s.driver, s.dsn,
		repository.WithLogger(s.logger.Named("repository")),
		repository.WithPool(s.maxOpenConns, s.maxIdleConns, s.connMaxLifetime),
		repository.WithSlowThreshold(s.slowThreshold),
	)
	if err != nil {
		return err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return err
	}
	if err := store.Seed(ctx, s.seeds); err != nil {
		_ = store.Close()
		return err
	}

	s.gorm = store
	s.Store = store
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "crm service started", logger.String("driver", s.driver))

	return nil
}

// Stop closes the database.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping crm service...")

	if err := s.gorm.Close(); err != nil {
		s.logger.Error(context.Background(), "closing database failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "crm service stopped")
}

// Ping checks that the database answers.
func (s *Service) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	return s.gorm.Ping(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"driver":  s.driver,
	}

	if s.started {
		pool := s.gorm.Stats()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["maxOpenConnections"] = pool.MaxOpenConnections
		stats["openConnections"] = pool.OpenConnections
		stats["inUse"] = pool.InUse
		stats["idle"] = pool.Idle
		stats["waitCount"] = pool.WaitCount
		stats["waitDurationMs"] = pool.WaitDuration.Milliseconds()

		// Update metrics
		metrics.UpdateDBPoolStats(pool.OpenConnections, pool.InUse, pool.Idle, pool.WaitCount)
	}

	return stats
}

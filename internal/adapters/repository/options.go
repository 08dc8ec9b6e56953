// Package repository is the relational storage client behind the CRM API.
package repository

import (
	"time"

	"github.com/okian/crm/pkg/logger"
)

// Option applies a configuration option to the GormStore.
type Option func(*GormStore)

// WithLogger routes gorm's statement log through l.
func WithLogger(l logger.Logger) Option {
	return func(s *GormStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPool sizes the connection pool. Non-positive values keep the default.
func WithPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(s *GormStore) {
		if maxOpen > 0 {
			s.maxOpenConns = maxOpen
		}
		if maxIdle > 0 {
			s.maxIdleConns = maxIdle
		}
		if maxLifetime > 0 {
			s.connMaxLifetime = maxLifetime
		}
	}
}

// WithSlowThreshold sets the duration above which statements log at warn.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *GormStore) {
		if d > 0 {
			s.slowThreshold = d
		}
	}
}

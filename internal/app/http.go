package service

import (
	"context"
	"net/http"

	"github.com/okian/crm/internal/adapters/http/api"
	"github.com/okian/crm/internal/adapters/http/swagger"
	"github.com/okian/crm/internal/adapters/repository"
	"github.com/okian/crm/internal/config"
	"github.com/rs/cors"
)

// Options translates cfg into service options.
func Options(cfg *config.Config) []Option {
	return []Option{
		WithDatabase(cfg.DB.Driver, cfg.DB.DSN),
		WithPool(cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.ConnMaxLifetime),
		WithSlowThreshold(cfg.DB.SlowThreshold),
		WithSeeds(repository.Seeds{
			ContactTypes: cfg.Seed.ContactTypes,
			Genders:      cfg.Seed.Genders,
			Origins:      cfg.Seed.Origins,
			Statuses:     cfg.Seed.Statuses,
		}),
	}
}

// CORSOptions builds the cross-origin policy. Empty lists fall back to the
// permissive defaults.
func CORSOptions(c config.CORSConfig) cors.Options {
	opts := api.PermissiveCORS()
	if len(c.AllowedOrigins) > 0 {
		opts.AllowedOrigins = c.AllowedOrigins
	}
	if len(c.AllowedMethods) > 0 {
		opts.AllowedMethods = c.AllowedMethods
	}
	if len(c.AllowedHeaders) > 0 {
		opts.AllowedHeaders = c.AllowedHeaders
	}
	opts.AllowCredentials = c.AllowCredentials
	opts.MaxAge = c.MaxAge
	return opts
}

// NewHandler builds the complete HTTP handler: API routes, documentation
// and the shared middleware.
func NewHandler(ctx context.Context, svc *Service, opts ...api.Option) http.Handler {
	mux := http.NewServeMux()

	// Register API documentation
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, opts...)
	apiServer.Register(ctx, mux)

	return apiServer.Handler(mux)
}

// Package bootstrap wires runtime dependencies for the command entry points.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"ironlog/internal/cache"
	"ironlog/internal/config"
	"ironlog/internal/database"
	"ironlog/internal/observability"
	"ironlog/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedLiftTypes loads the built-in lift catalog on startup.
	// Idempotent: existing names are left untouched.
	SeedLiftTypes bool
}

// InitRuntime connects to DB and Redis, initializes tracing, and optionally
// seeds the built-in lift catalog. The returned function flushes and shuts
// down the tracer provider.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, func(), error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May yield a nil client if Redis is unreachable; the app degrades
	// to uncached reads and fail-open rate limits.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "ironlog-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.SamplerRatio,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tracing init failed: %w", err)
	}

	if opts.SeedLiftTypes {
		if err := seed.LiftTypes(db); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed built-in lift types: %w", err)
		}
	}

	cleanup := func() {
		ctx, cancel := shutdownContext()
		defer cancel()
		_ = shutdownTracing(ctx)
	}

	return db, r, cleanup, nil
}

func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

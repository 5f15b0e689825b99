// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"

	planapp "github.com/mealkit/v1/internal/application/plan"
	"github.com/mealkit/v1/internal/infrastructure/ai/openrouter"
	"github.com/mealkit/v1/internal/infrastructure/config"
	"github.com/mealkit/v1/internal/infrastructure/http/apiserver"
	"github.com/mealkit/v1/internal/infrastructure/persistence/migrations"
	"github.com/mealkit/v1/internal/infrastructure/persistence/postgres"
	"github.com/mealkit/v1/internal/ports/inbound"
	"github.com/mealkit/v1/internal/ports/outbound"
	"github.com/mealkit/v1/pkg/healthcheck"
	"github.com/mealkit/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RepositoryModule,
	ServiceModule,
	HealthModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection pool
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
		return postgres.NewPool(context.Background(), cfg, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	postgres.NewPlanRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// Model completion client
	func(cfg *config.Config, log *zap.Logger) outbound.CompletionService {
		return openrouter.NewClient(cfg.OpenRouter, log)
	},

	// Planner service
	func(
		planRepo outbound.PlanRepository,
		completions outbound.CompletionService,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.PlanService {
		return planapp.NewPlannerService(planRepo, completions, cfg.OpenRouter.UseFallbackPlan, log)
	},
)

// HealthModule provides the readiness checker
var HealthModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, pool *pgxpool.Pool) *healthcheck.HealthCheck {
		hc := healthcheck.New(cfg.App.Version, log)
		hc.Register("database", healthcheck.NewDatabaseChecker(pool))
		return hc
	},
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	pool *pgxpool.Pool,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting MealKit application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if cfg.Database.AutoMigrate {
				migrator, err := migrations.New(cfg.GetDSN(), cfg.Database.Database, log)
				if err != nil {
					return err
				}
				if err := migrator.Up(); err != nil {
					migrator.Close()
					return err
				}
				if err := migrator.Close(); err != nil {
					log.Warn("Failed to close migrator", zap.Error(err))
				}
			}

			// Start HTTP server
			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down MealKit application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			pool.Close()

			_ = log.Sync()

			return nil
		},
	})
}

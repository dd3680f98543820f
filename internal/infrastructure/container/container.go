// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	planapp "github.com/mealforge/v1/internal/application/plan"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/http/server"
	gormRepo "github.com/mealforge/v1/internal/infrastructure/persistence/gorm"
	"github.com/mealforge/v1/internal/infrastructure/persistence/memory"
	redisRepo "github.com/mealforge/v1/internal/infrastructure/persistence/redis"
	"github.com/mealforge/v1/internal/infrastructure/persistence/sqlite"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/logger"
	"github.com/mealforge/v1/pkg/random"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RandomModule,
	RepositoryModule,
	ServiceModule,
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

// DatabaseModule provides the database connection for the configured
// driver. SQLite is the local default; postgres serves deployments.
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		var db *gorm.DB
		var err error

		switch cfg.Database.Driver {
		case "postgres":
			db, err = gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
				Logger: gormLogger.Default.LogMode(logLevel),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to connect to postgres: %w", err)
			}
			if cfg.Database.AutoMigrate {
				if err := db.AutoMigrate(
					&gormRepo.MealModel{},
					&gormRepo.ClientProfileModel{},
					&gormRepo.WeekPlanModel{},
				); err != nil {
					return nil, fmt.Errorf("failed to migrate database: %w", err)
				}
			}
			log.Info("Connected to postgres database",
				zap.String("host", cfg.Database.Host),
				zap.String("database", cfg.Database.Database),
			)

		default:
			db, err = sqlite.SetupDatabase(cfg.Database.SQLitePath, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}
			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.SQLitePath),
				zap.Bool("in_memory", cfg.Database.SQLitePath == ""),
			)
		}

		if cfg.Database.SeedCatalog {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
			sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		}

		return db, nil
	},
)

// CacheModule provides the configured cache collaborator
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Cache.Driver == "redis" {
			log.Info("Using Redis cache", zap.String("addr", cfg.RedisAddr()))
			return redisRepo.NewCacheRepository(redisRepo.NewClient(cfg), log)
		}
		log.Info("Using in-memory cache")
		return memory.NewCacheRepository()
	},
)

// RandomModule provides the randomness source. A fixed seed makes full
// generation runs reproducible.
var RandomModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) random.Source {
		if cfg.Engine.RandomSeed != 0 {
			log.Info("Using seeded random source", zap.Int64("seed", cfg.Engine.RandomSeed))
			return random.NewSeeded(cfg.Engine.RandomSeed)
		}
		return random.New()
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewMealRepository,
	gormRepo.NewProfileRepository,
	gormRepo.NewPlanRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		profiles outbound.ProfileRepository,
		meals outbound.MealRepository,
		plans outbound.PlanRepository,
		cache outbound.CacheRepository,
		rng random.Source,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.PlanService {
		return planapp.NewPlanService(profiles, meals, plans, cache, rng, planapp.ServiceConfig{
			CacheTTL:       cfg.Cache.TTL,
			LoadTimeout:    cfg.Engine.LoadTimeout,
			MinCatalogSize: cfg.Engine.MinCatalogSize,
		}, log)
	},
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	server.NewServer,
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
	db *gorm.DB,
	server *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting MealForge application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down MealForge application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}

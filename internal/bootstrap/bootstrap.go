// Package bootstrap wires stores and services from config. Both binaries use it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/config"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/clock"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

type App struct {
	Config config.Config
	Clock  *clock.Civil

	// DB is set only for the postgres backend, Redis only when enabled.
	DB     *sqlx.DB
	Redis  *redis.Client
	PoolDB *gorm.DB

	Weekly  *services.WeeklyTaskService
	History *services.HistoryService
	Pool    *services.PoolService
	Tokens  *services.TokenService
	Auth    *services.AuthService
}

// New opens every store the config asks for. On error the ones already
// opened are closed again.
func New(ctx context.Context, cfg config.Config) (app *App, err error) {
	app = &App{
		Config: cfg,
		Clock:  clock.NewCivil(cfg.TimezoneOffsetHours),
	}
	defer func() {
		if err != nil {
			_ = app.Close()
			app = nil
		}
	}()

	weeklyRepo, historyRepo, err := app.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := app.openTaskPool()
	if err != nil {
		return nil, err
	}

	app.History = services.NewHistoryService(historyRepo)
	app.Weekly = services.NewWeeklyTaskService(weeklyRepo, app.History, pool, app.Clock)
	app.Pool = services.NewPoolService(pool)

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "kanso-dev-secret"
	}
	app.Tokens = services.NewTokenService(secret, cfg.JWTIssuer, cfg.JWTTTL)
	app.Auth = services.NewAuthService(cfg.AdminPasswordHash, app.Tokens)

	return app, nil
}

func (a *App) openStorage(ctx context.Context) (domain.WeeklyRepository, domain.HistoryRepository, error) {
	var (
		weekly  domain.WeeklyRepository
		history domain.HistoryRepository
	)

	switch a.Config.StorageBackend {
	case config.StorageMemory:
		log.Println("[STORE] Using in-memory storage, state is lost on restart")
		weekly = repository.NewInMemoryWeeklyRepository()
		history = repository.NewInMemoryHistoryRepository()

	case config.StorageFile:
		log.Printf("[STORE] Using JSON file storage at %s", a.Config.DataFile)
		weekly = repository.NewJSONFileWeeklyRepository(a.Config.DataFile)
		history = repository.NewJSONFileHistoryRepository(repository.HistoryPathFor(a.Config.DataFile))

	case config.StoragePostgres:
		log.Println("Connecting to database...")

		db, err := sqlx.Connect(a.Config.DBDriver, a.Config.PostgresDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		a.DB = db

		if err := repository.EnsureSchema(ctx, db); err != nil {
			return nil, nil, err
		}
		log.Println("Database connected successfully.")

		weekly = repository.NewPostgresWeeklyRepository(db)
		history = repository.NewPostgresHistoryRepository(db)

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", a.Config.StorageBackend)
	}

	if a.Config.RedisEnabled {
		rdb, err := cache.NewRedisClient(cache.Options{
			Host:     a.Config.RedisHost,
			Port:     a.Config.RedisPort,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		a.Redis = rdb
		weekly = repository.NewCachedWeeklyRepository(weekly, rdb)
	}

	return weekly, history, nil
}

func (a *App) openTaskPool() (domain.TaskPoolWriter, error) {
	if a.Config.TaskPoolBackend == "memory" {
		return repository.NewInMemoryTaskPool(), nil
	}

	db, err := repository.NewTaskPoolDB(a.Config.TaskPoolDSN)
	if err != nil {
		return nil, err
	}
	a.PoolDB = db
	return repository.NewSQLiteTaskPool(db), nil
}

func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.PoolDB != nil {
		if sqlDB, err := a.PoolDB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}

	return errors.Join(errs...)
}

package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/config"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

func baseConfig() config.Config {
	return config.Config{
		StorageBackend:      config.StorageMemory,
		TaskPoolBackend:     "memory",
		JWTIssuer:           "kanso-weekly-engine",
		JWTTTL:              time.Hour,
		TimezoneOffsetHours: -5,
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Memory backend", func(t *testing.T) {
		app, err := bootstrap.New(ctx, baseConfig())
		require.NoError(t, err)
		defer app.Close()

		assert.Nil(t, app.DB)
		assert.Nil(t, app.Redis)
		assert.Nil(t, app.PoolDB)

		data, err := app.Weekly.GetCurrentDayState(ctx)
		require.NoError(t, err)
		assert.Len(t, data.Sequence, len(services.DefaultSequence()))
		assert.Equal(t, app.Clock.Today(), data.DailyState.Date)
	})

	t.Run("Success: File backend with sqlite pool", func(t *testing.T) {
		dir := t.TempDir()
		cfg := baseConfig()
		cfg.StorageBackend = config.StorageFile
		cfg.DataFile = filepath.Join(dir, "weekly.json")
		cfg.TaskPoolBackend = "sqlite"
		cfg.TaskPoolDSN = filepath.Join(dir, "tasks.db")

		app, err := bootstrap.New(ctx, cfg)
		require.NoError(t, err)
		defer app.Close()

		require.NotNil(t, app.PoolDB)

		task, err := app.Pool.Add(ctx, services.AddPoolTaskInput{Name: "Regar plantas", Category: "Casa"})
		require.NoError(t, err)

		pending, err := app.Pool.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, task.ID, pending[0].ID)

		_, err = app.Weekly.Seed(ctx, false)
		require.NoError(t, err)
		assert.FileExists(t, cfg.DataFile)
	})

	t.Run("Success: File backend keeps history across restarts", func(t *testing.T) {
		cfg := baseConfig()
		cfg.StorageBackend = config.StorageFile
		cfg.DataFile = filepath.Join(t.TempDir(), "weekly.json")

		app, err := bootstrap.New(ctx, cfg)
		require.NoError(t, err)
		item, err := domain.NewCompletedItem(domain.ItemBook, "Dune", "weekly_leer", 600, time.Now())
		require.NoError(t, err)
		require.NoError(t, app.History.Add(ctx, item))
		require.NoError(t, app.Close())

		restarted, err := bootstrap.New(ctx, cfg)
		require.NoError(t, err)
		defer restarted.Close()

		items, err := restarted.History.List(ctx, services.ListHistoryInput{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, item.ID, items[0].ID)
	})

	t.Run("Success: Token round trip", func(t *testing.T) {
		app, err := bootstrap.New(ctx, baseConfig())
		require.NoError(t, err)
		defer app.Close()

		token, err := app.Tokens.GenerateToken(domain.AdminSubject)
		require.NoError(t, err)

		subject, err := app.Tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.AdminSubject, subject)
	})

	t.Run("Error: Unreachable database", func(t *testing.T) {
		cfg := baseConfig()
		cfg.StorageBackend = config.StoragePostgres
		cfg.DBDriver = "pgx"
		cfg.DBHost = "127.0.0.1"
		cfg.DBPort = "1"
		cfg.DBUser = "nobody"
		cfg.DBName = "nothing"

		app, err := bootstrap.New(ctx, cfg)

		assert.Error(t, err)
		assert.Nil(t, app)
	})
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ domain.TaskPoolWriter = (*SQLiteTaskPool)(nil)

// NewTaskPoolDB opens the SQLite database of the general task pool and
// migrates it.
func NewTaskPoolDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "tasks.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open task pool db: %w", err)
	}

	if err := db.AutoMigrate(&domain.GeneralTask{}); err != nil {
		return nil, fmt.Errorf("migrate task pool db: %w", err)
	}

	return db, nil
}

func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

type SQLiteTaskPool struct {
	db *gorm.DB
}

func NewSQLiteTaskPool(db *gorm.DB) *SQLiteTaskPool {
	return &SQLiteTaskPool{db: db}
}

func (p *SQLiteTaskPool) Create(ctx context.Context, task *domain.GeneralTask) error {
	if err := p.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create general task: %w", err)
	}
	return nil
}

func (p *SQLiteTaskPool) ListIncomplete(ctx context.Context) ([]*domain.GeneralTask, error) {
	var tasks []*domain.GeneralTask
	if err := p.db.WithContext(ctx).
		Where("completed = ?", false).
		Order("category ASC, name ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list general tasks: %w", err)
	}
	return tasks, nil
}

func (p *SQLiteTaskPool) MarkCompleted(ctx context.Context, id string) error {
	var task domain.GeneralTask
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGeneralTaskNotFound
		}
		return fmt.Errorf("find general task: %w", err)
	}

	task.Completed = true
	if err := p.db.WithContext(ctx).Save(&task).Error; err != nil {
		return fmt.Errorf("complete general task: %w", err)
	}
	return nil
}

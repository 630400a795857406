package domain

import (
	"context"
	"time"
)

type WeeklyRepository interface {
	// Load returns a private copy of the whole aggregate.
	Load(ctx context.Context) (*WeeklyData, error)

	// Save replaces the whole aggregate.
	Save(ctx context.Context, data *WeeklyData) error
}

type HistoryRepository interface {
	// Append records a finished work item. Items are never updated or deleted.
	Append(ctx context.Context, item *CompletedItem) error

	// List returns the most recent items first, optionally filtered by type.
	List(ctx context.Context, itemType ItemType, limit int) ([]*CompletedItem, error)
}

// TaskPool is the general task list the random pick rule draws from.
type TaskPool interface {
	ListIncomplete(ctx context.Context) ([]*GeneralTask, error)
}

// TaskPoolWriter is implemented by pools that can be managed directly.
type TaskPoolWriter interface {
	TaskPool
	Create(ctx context.Context, task *GeneralTask) error
	MarkCompleted(ctx context.Context, id string) error
}

// Clock answers calendar questions in the fixed civil timezone of the routine.
type Clock interface {
	Now() time.Time
	// Today is the civil date as YYYY-MM-DD.
	Today() string
	Weekday() time.Weekday
	ISOWeek(t time.Time) int
}

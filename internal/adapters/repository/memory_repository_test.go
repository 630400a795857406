package repository

import (
	"context"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(t *testing.T) *domain.WeeklyData {
	t.Helper()

	data, err := domain.NewWeeklyData([]*domain.WeeklyTask{
		{ID: "weekly_a", Name: "A", Order: 0},
		{
			ID: "weekly_leer", Name: domain.TaskNameLeer, Order: 1,
			SubtaskRotation: domain.RotationWeekly,
			Subtasks:        []*domain.Subtask{{ID: "sub_kindle", Name: "Kindle", Title: "Dune"}},
		},
	}, "2024-01-10")
	require.NoError(t, err)
	return data
}

func TestInMemoryWeeklyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryWeeklyRepository()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	data := sampleState(t)
	require.NoError(t, repo.Save(ctx, data))

	data.Sequence[0].Name = "mutated after save"

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", loaded.Sequence[0].Name)

	loaded.DailyState.CurrentTaskIndex = 1
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.DailyState.CurrentTaskIndex)
}

func TestInMemoryHistoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryHistoryRepository()
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	book, _ := domain.NewCompletedItem(domain.ItemBook, "Dune", "weekly_leer", 0, now)
	game, _ := domain.NewCompletedItem(domain.ItemGame, "Zelda", "weekly_juego", 0, now)

	require.NoError(t, repo.Append(ctx, book))
	require.NoError(t, repo.Append(ctx, game))
	assert.ErrorIs(t, repo.Append(ctx, book), domain.ErrHistoryItemDuplicate)

	all, err := repo.List(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Zelda", all[0].Name)

	books, err := repo.List(ctx, domain.ItemBook, 10)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)

	limited, err := repo.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestInMemoryTaskPool(t *testing.T) {
	ctx := context.Background()

	a, _ := domain.NewGeneralTask("Pagar luz", "Casa")
	b, _ := domain.NewGeneralTask("Llamar banco", "")
	pool := NewInMemoryTaskPool(a, b)

	pending, err := pool.ListIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "Casa", pending[0].Category)
	assert.Equal(t, "General", pending[1].Category)

	require.NoError(t, pool.MarkCompleted(ctx, a.ID))
	assert.ErrorIs(t, pool.MarkCompleted(ctx, "missing"), domain.ErrGeneralTaskNotFound)

	pending, err = pool.ListIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].ID)
}

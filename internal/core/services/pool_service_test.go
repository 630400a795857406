package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

func TestPoolService(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Add defaults the category", func(t *testing.T) {
		svc := services.NewPoolService(repository.NewInMemoryTaskPool())

		task, err := svc.Add(ctx, services.AddPoolTaskInput{Name: "  Pagar luz "})

		require.NoError(t, err)
		assert.Equal(t, "Pagar luz", task.Name)
		assert.Equal(t, "General", task.Category)
		assert.NotEmpty(t, task.ID)
	})

	t.Run("Error: Empty name", func(t *testing.T) {
		svc := services.NewPoolService(repository.NewInMemoryTaskPool())

		_, err := svc.Add(ctx, services.AddPoolTaskInput{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrTaskNameEmpty)
	})

	t.Run("Success: Completed tasks leave the pending list", func(t *testing.T) {
		svc := services.NewPoolService(repository.NewInMemoryTaskPool())

		a, err := svc.Add(ctx, services.AddPoolTaskInput{Name: "Llamar banco", Category: "Casa"})
		require.NoError(t, err)
		_, err = svc.Add(ctx, services.AddPoolTaskInput{Name: "Comprar pan", Category: "Casa"})
		require.NoError(t, err)

		require.NoError(t, svc.Complete(ctx, a.ID))

		pending, err := svc.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "Comprar pan", pending[0].Name)
	})

	t.Run("Success: Empty pool lists as empty slice", func(t *testing.T) {
		svc := services.NewPoolService(repository.NewInMemoryTaskPool())

		pending, err := svc.ListPending(ctx)
		require.NoError(t, err)
		assert.NotNil(t, pending)
		assert.Empty(t, pending)
	})

	t.Run("Error: Unknown id", func(t *testing.T) {
		svc := services.NewPoolService(repository.NewInMemoryTaskPool())

		err := svc.Complete(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrGeneralTaskNotFound)
	})
}

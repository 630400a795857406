package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
)

// PoolService manages the general task pool the Lista task draws from.
type PoolService struct {
	pool domain.TaskPoolWriter
}

func NewPoolService(pool domain.TaskPoolWriter) *PoolService {
	return &PoolService{
		pool: pool,
	}
}

type AddPoolTaskInput struct {
	Name     string
	Category string
}

func (s *PoolService) Add(ctx context.Context, input AddPoolTaskInput) (*domain.GeneralTask, error) {
	task, err := domain.NewGeneralTask(input.Name, input.Category)
	if err != nil {
		return nil, err
	}

	if err := s.pool.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("pool service: create failed: %w", err)
	}
	return task, nil
}

func (s *PoolService) ListPending(ctx context.Context) ([]*domain.GeneralTask, error) {
	tasks, err := s.pool.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*domain.GeneralTask{}
	}
	return tasks, nil
}

func (s *PoolService) Complete(ctx context.Context, id string) error {
	return s.pool.MarkCompleted(ctx, id)
}

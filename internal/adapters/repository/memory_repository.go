package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
)

var (
	_ domain.WeeklyRepository  = (*InMemoryWeeklyRepository)(nil)
	_ domain.HistoryRepository = (*InMemoryHistoryRepository)(nil)
	_ domain.TaskPoolWriter    = (*InMemoryTaskPool)(nil)
)

type InMemoryWeeklyRepository struct {
	data *domain.WeeklyData

	mu sync.RWMutex
}

func NewInMemoryWeeklyRepository() *InMemoryWeeklyRepository {
	return &InMemoryWeeklyRepository{}
}

// Load hands out a deep copy so callers can mutate it freely.
func (r *InMemoryWeeklyRepository) Load(ctx context.Context) (*domain.WeeklyData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.data == nil {
		return nil, domain.ErrStateNotFound
	}
	return r.data.Clone(), nil
}

func (r *InMemoryWeeklyRepository) Save(ctx context.Context, data *domain.WeeklyData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = data.Clone()
	return nil
}

type InMemoryHistoryRepository struct {
	items []*domain.CompletedItem

	mu sync.RWMutex
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{}
}

func (r *InMemoryHistoryRepository) Append(ctx context.Context, item *domain.CompletedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == item.ID {
			return domain.ErrHistoryItemDuplicate
		}
	}

	clone := *item
	r.items = append(r.items, &clone)
	return nil
}

func (r *InMemoryHistoryRepository) List(ctx context.Context, itemType domain.ItemType, limit int) ([]*domain.CompletedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []*domain.CompletedItem{}
	for i := len(r.items) - 1; i >= 0; i-- {
		item := r.items[i]
		if itemType != "" && item.Type != itemType {
			continue
		}
		clone := *item
		list = append(list, &clone)
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}

type InMemoryTaskPool struct {
	store map[string]*domain.GeneralTask

	mu sync.RWMutex
}

func NewInMemoryTaskPool(tasks ...*domain.GeneralTask) *InMemoryTaskPool {
	p := &InMemoryTaskPool{
		store: make(map[string]*domain.GeneralTask),
	}
	for _, t := range tasks {
		p.store[t.ID] = t
	}
	return p
}

func (p *InMemoryTaskPool) Create(ctx context.Context, task *domain.GeneralTask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.store[task.ID] = task
	return nil
}

func (p *InMemoryTaskPool) MarkCompleted(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	task, ok := p.store[id]
	if !ok {
		return domain.ErrGeneralTaskNotFound
	}
	task.Completed = true
	return nil
}

func (p *InMemoryTaskPool) ListIncomplete(ctx context.Context) ([]*domain.GeneralTask, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var tasks []*domain.GeneralTask
	for _, t := range p.store {
		if !t.Completed {
			clone := *t
			tasks = append(tasks, &clone)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Category != tasks[j].Category {
			return tasks[i].Category < tasks[j].Category
		}
		return tasks[i].Name < tasks[j].Name
	})

	return tasks, nil
}

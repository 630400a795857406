package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/observability"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type HistoryService struct {
	repo domain.HistoryRepository
}

func NewHistoryService(repo domain.HistoryRepository) *HistoryService {
	return &HistoryService{
		repo: repo,
	}
}

// Add validates and appends an item. There is no update or delete.
func (s *HistoryService) Add(ctx context.Context, item *domain.CompletedItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if err := s.repo.Append(ctx, item); err != nil {
		return fmt.Errorf("history service: append failed: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("history item recorded",
		"item_id", item.ID,
		"type", item.Type,
		"name", item.Name,
		"parent_id", item.ParentID,
	)
	return nil
}

type ListHistoryInput struct {
	Type  domain.ItemType
	Limit int
}

func (s *HistoryService) List(ctx context.Context, input ListHistoryInput) ([]*domain.CompletedItem, error) {
	if input.Type != "" && !input.Type.IsValid() {
		return nil, domain.ErrInvalidHistoryType
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return s.repo.List(ctx, input.Type, limit)
}

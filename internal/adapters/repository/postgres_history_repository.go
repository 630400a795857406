package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var _ domain.HistoryRepository = (*PostgresHistoryRepository)(nil)

type PostgresHistoryRepository struct {
	db *sqlx.DB
}

func NewPostgresHistoryRepository(db *sqlx.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// isUniqueViolation understands both registered drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

func (r *PostgresHistoryRepository) Append(ctx context.Context, item *domain.CompletedItem) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
        INSERT INTO completed_items (id, type, name, completed_date, time_spent, parent_id)
        VALUES (:id, :type, :name, :completed_date, :time_spent, :parent_id)`

	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrHistoryItemDuplicate
		}
		return fmt.Errorf("repository: append history item failed: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) List(ctx context.Context, itemType domain.ItemType, limit int) ([]*domain.CompletedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
        SELECT id, type, name, completed_date, time_spent, parent_id
        FROM completed_items
        WHERE ($1 = '' OR type = $1)
        ORDER BY completed_date DESC
        LIMIT $2`

	items := []*domain.CompletedItem{}
	if err := r.db.SelectContext(ctx, &items, query, string(itemType), limit); err != nil {
		return nil, fmt.Errorf("repository: list history failed: %w", err)
	}
	return items, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const weeklyStateRowID = "default"

var _ domain.WeeklyRepository = (*PostgresWeeklyRepository)(nil)

// PostgresWeeklyRepository stores the aggregate as one JSONB row guarded by
// a version column.
type PostgresWeeklyRepository struct {
	db *sqlx.DB
}

func NewPostgresWeeklyRepository(db *sqlx.DB) *PostgresWeeklyRepository {
	return &PostgresWeeklyRepository{db: db}
}

func (r *PostgresWeeklyRepository) Load(ctx context.Context) (*domain.WeeklyData, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw []byte
	var version int

	err := r.db.QueryRowContext(ctx,
		`SELECT data, version FROM weekly_state WHERE id = $1`, weeklyStateRowID,
	).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	var data domain.WeeklyData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weekly state: %w", err)
	}
	if err := data.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid weekly state: %w", err)
	}

	data.Version = version
	return &data, nil
}

// Save inserts the first version or updates the row only if nobody else
// wrote it since data was loaded. The new version is written back to data.
func (r *PostgresWeeklyRepository) Save(ctx context.Context, data *domain.WeeklyData) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal weekly state: %w", err)
	}

	var newVersion int

	if data.Version == 0 {
		err = r.db.QueryRowContext(ctx, `
            INSERT INTO weekly_state (id, data, version, updated_at)
            VALUES ($1, $2, 1, NOW())
            ON CONFLICT (id) DO NOTHING
            RETURNING version`,
			weeklyStateRowID, raw,
		).Scan(&newVersion)
	} else {
		err = r.db.QueryRowContext(ctx, `
            UPDATE weekly_state
            SET data = $1, version = version + 1, updated_at = NOW()
            WHERE id = $2 AND version = $3
            RETURNING version`,
			raw, weeklyStateRowID, data.Version,
		).Scan(&newVersion)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrStateConflict
		}
		return fmt.Errorf("save weekly state failed: %w", err)
	}

	data.Version = newVersion
	return nil
}

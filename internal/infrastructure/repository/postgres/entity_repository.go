package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
)

type EntityRepository struct {
	db *sqlx.DB
}

func NewEntityRepository(db *sqlx.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) GetByID(ctx context.Context, id string) (entity.Entity, bool, error) {
	const query = `
		SELECT id, display_name, tier, external_player_ref, last_sync_at, created_at, updated_at
		FROM tracked_entities
		WHERE id = $1`

	var row entityTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return entity.Entity{}, false, nil
		}
		return entity.Entity{}, false, fmt.Errorf("get entity by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *EntityRepository) ListLinked(ctx context.Context) ([]entity.Entity, error) {
	const query = `
		SELECT id, display_name, tier, external_player_ref, last_sync_at, created_at, updated_at
		FROM tracked_entities
		WHERE external_player_ref IS NOT NULL AND external_player_ref > 0
		ORDER BY id`

	var rows []entityTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select linked entities: %w", err)
	}

	out := make([]entity.Entity, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EntityRepository) SetExternalRef(ctx context.Context, id string, ref int64) error {
	const query = `
		UPDATE tracked_entities
		SET external_player_ref = $2, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, ref); err != nil {
		return fmt.Errorf("set external ref: %w", err)
	}
	return nil
}

func (r *EntityRepository) ClearExternalRef(ctx context.Context, id string) error {
	const query = `
		UPDATE tracked_entities
		SET external_player_ref = NULL, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("clear external ref: %w", err)
	}
	return nil
}

func (r *EntityRepository) SetLastSyncAt(ctx context.Context, id string, at time.Time) error {
	const query = `
		UPDATE tracked_entities
		SET last_sync_at = $2, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, at.UTC()); err != nil {
		return fmt.Errorf("set last sync at: %w", err)
	}
	return nil
}

package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/domain/tier"
)

type entityTableModel struct {
	ID                string        `db:"id"`
	DisplayName       string        `db:"display_name"`
	Tier              string        `db:"tier"`
	ExternalPlayerRef sql.NullInt64 `db:"external_player_ref"`
	LastSyncAt        *time.Time    `db:"last_sync_at"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

func (m entityTableModel) toDomain() entity.Entity {
	out := entity.Entity{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Tier:        tier.Normalize(m.Tier),
		LastSyncAt:  m.LastSyncAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ExternalPlayerRef.Valid {
		ref := m.ExternalPlayerRef.Int64
		out.ExternalPlayerRef = &ref
	}
	return out
}

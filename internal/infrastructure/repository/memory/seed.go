package memory

import (
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/domain/tier"
)

// SeedEntities loads a small fixed roster into the entity repository so the
// memory backend is immediately usable for local development.
func SeedEntities(repo *EntityRepository) {
	now := time.Now().UTC()
	ref1 := int64(61415)
	ref2 := int64(874)

	repo.Put(entity.Entity{
		ID:                "ent-leandro",
		DisplayName:       "Leandro Trossard",
		Tier:              tier.Premium,
		ExternalPlayerRef: &ref1,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	repo.Put(entity.Entity{
		ID:                "ent-cristiano",
		DisplayName:       "Cristiano Ronaldo",
		Tier:              tier.Basic,
		ExternalPlayerRef: &ref2,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	repo.Put(entity.Entity{
		ID:          "ent-scout",
		DisplayName: "Unlinked Scout",
		Tier:        tier.Basic,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

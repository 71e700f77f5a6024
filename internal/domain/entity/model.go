package entity

import (
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/tier"
)

// Entity is a platform member whose performance data may be tracked. The
// external player reference names the member in the remote stats source's
// namespace; it may be set, changed, or cleared by the owner at any time, and
// clearing it never deletes previously synced statistics.
type Entity struct {
	ID                string
	DisplayName       string
	Tier              tier.Tier
	ExternalPlayerRef *int64
	LastSyncAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (e Entity) Linked() bool {
	return e.ExternalPlayerRef != nil && *e.ExternalPlayerRef > 0
}

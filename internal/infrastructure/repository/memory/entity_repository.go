package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
)

// EntityRepository is the in-memory store backend for tracked entities. Used
// for local development and tests.
type EntityRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Entity
	now   func() time.Time
}

func NewEntityRepository() *EntityRepository {
	return &EntityRepository{
		items: make(map[string]entity.Entity),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Put inserts or replaces an entity. Seeding and test helper, not part of the
// repository contract.
func (r *EntityRepository) Put(ent entity.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ent.CreatedAt.IsZero() {
		ent.CreatedAt = r.now()
	}
	if ent.UpdatedAt.IsZero() {
		ent.UpdatedAt = ent.CreatedAt
	}
	r.items[ent.ID] = ent
}

func (r *EntityRepository) GetByID(_ context.Context, id string) (entity.Entity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ent, ok := r.items[id]
	return ent, ok, nil
}

func (r *EntityRepository) ListLinked(_ context.Context) ([]entity.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Entity, 0, len(r.items))
	for _, ent := range r.items {
		if ent.Linked() {
			out = append(out, ent)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EntityRepository) SetExternalRef(_ context.Context, id string, externalPlayerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ent, ok := r.items[id]
	if !ok {
		return nil
	}
	ent.ExternalPlayerRef = &externalPlayerID
	ent.UpdatedAt = r.now()
	r.items[id] = ent
	return nil
}

func (r *EntityRepository) ClearExternalRef(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ent, ok := r.items[id]
	if !ok {
		return nil
	}
	ent.ExternalPlayerRef = nil
	ent.UpdatedAt = r.now()
	r.items[id] = ent
	return nil
}

func (r *EntityRepository) SetLastSyncAt(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ent, ok := r.items[id]
	if !ok {
		return nil
	}
	at = at.UTC()
	ent.LastSyncAt = &at
	ent.UpdatedAt = r.now()
	r.items[id] = ent
	return nil
}

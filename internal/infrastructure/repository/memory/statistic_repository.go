package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/statistic"
)

type StatisticRepository struct {
	mu    sync.RWMutex
	items map[statistic.Key]statistic.Record
	now   func() time.Time
}

func NewStatisticRepository() *StatisticRepository {
	return &StatisticRepository{
		items: make(map[statistic.Key]statistic.Record),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *StatisticRepository) Upsert(_ context.Context, rec statistic.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.items[rec.Key]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	r.items[rec.Key] = rec
	return nil
}

func (r *StatisticRepository) GetByKey(_ context.Context, key statistic.Key) (statistic.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[key]
	return rec, ok, nil
}

func (r *StatisticRepository) ListByOwner(_ context.Context, ownerID string) ([]statistic.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statistic.Record, 0, 8)
	for _, rec := range r.items {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		if out[i].LeagueID != out[j].LeagueID {
			return out[i].LeagueID < out[j].LeagueID
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

func (r *StatisticRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, rec := range r.items {
		if rec.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// Len reports the total number of stored records. Test helper.
func (r *StatisticRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

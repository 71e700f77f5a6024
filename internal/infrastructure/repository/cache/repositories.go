// Package cache wraps store repositories with read-through caching. Writes
// pass straight through and invalidate the affected owner's cached reads.
package cache

import (
	"context"

	"github.com/pitchlink/stats-engine/internal/domain/statistic"
	basecache "github.com/pitchlink/stats-engine/internal/platform/cache"
)

type StatisticRepository struct {
	next  statistic.Repository
	cache *basecache.Store
}

func NewStatisticRepository(next statistic.Repository, cache *basecache.Store) *StatisticRepository {
	return &StatisticRepository{next: next, cache: cache}
}

func (r *StatisticRepository) Upsert(ctx context.Context, rec statistic.Record) error {
	if err := r.next.Upsert(ctx, rec); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "stats:owner:"+rec.OwnerID)
	return nil
}

// GetByKey bypasses the cache. It serves point reads on the sync path where
// staleness right after an upsert would be visible.
func (r *StatisticRepository) GetByKey(ctx context.Context, key statistic.Key) (statistic.Record, bool, error) {
	return r.next.GetByKey(ctx, key)
}

func (r *StatisticRepository) ListByOwner(ctx context.Context, ownerID string) ([]statistic.Record, error) {
	key := "stats:owner:" + ownerID + ":list"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		return append([]statistic.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]statistic.Record)
	return append([]statistic.Record(nil), items...), nil
}

func (r *StatisticRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	key := "stats:owner:" + ownerID + ":count"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.CountByOwner(ctx, ownerID)
	})
	if err != nil {
		return 0, err
	}

	count, _ := v.(int)
	return count, nil
}

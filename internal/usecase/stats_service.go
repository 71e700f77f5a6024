package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/domain/statistic"
	"github.com/pitchlink/stats-engine/internal/domain/tier"
	"github.com/pitchlink/stats-engine/internal/domain/user"
	"github.com/pitchlink/stats-engine/internal/platform/logging"
)

type WarmResult struct {
	Entities   int   `json:"entities"`
	Loaded     int   `json:"loaded"`
	Failed     int   `json:"failed"`
	Workers    int   `json:"workers"`
	DurationMs int64 `json:"duration_ms"`
}

// StatsService is the read side. Every path that exposes another entity's
// data projects through the one tier policy; the owner path is the only one
// that skips projection.
type StatsService struct {
	entityRepo entity.Repository
	statRepo   statistic.Repository
	policy     tier.Policy
	logger     *logging.Logger
}

func NewStatsService(
	entityRepo entity.Repository,
	statRepo statistic.Repository,
	policy tier.Policy,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsService{
		entityRepo: entityRepo,
		statRepo:   statRepo,
		policy:     policy,
		logger:     logger,
	}
}

// MyStats returns the caller's own records in full; an entity always sees its
// complete data.
func (s *StatsService) MyStats(ctx context.Context, entityID string) ([]statistic.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.MyStats")
	defer span.End()

	if entityID == "" {
		return nil, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}

	_, ok, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("load entity=%s: %w", entityID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}

	records, err := s.statRepo.ListByOwner(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list records owner=%s: %w", entityID, err)
	}

	return records, nil
}

// EntityStats returns another entity's records reduced to what the viewer's
// tier permits.
func (s *StatsService) EntityStats(ctx context.Context, viewer user.Principal, entityID string) ([]tier.ProjectedRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.EntityStats")
	defer span.End()

	if entityID == "" {
		return nil, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}

	_, ok, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("load entity=%s: %w", entityID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}

	records, err := s.statRepo.ListByOwner(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list records owner=%s: %w", entityID, err)
	}

	isOwner := viewer.EntityID == entityID
	out := make([]tier.ProjectedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, s.policy.Project(rec, viewer.Tier, isOwner))
	}

	return out, nil
}

// WarmCache preloads every linked owner's record list through the caching
// repository decorator. This touches only the statistics store, never the
// remote source, so a worker pool is safe here.
func (s *StatsService) WarmCache(ctx context.Context, workers int) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.WarmCache")
	defer span.End()

	if workers < 1 {
		workers = 4
	}

	entities, err := s.entityRepo.ListLinked(ctx)
	if err != nil {
		return WarmResult{}, fmt.Errorf("list linked entities: %w", err)
	}

	started := time.Now()
	result := WarmResult{Entities: len(entities), Workers: workers}
	if len(entities) == 0 {
		return result, nil
	}
	if workers > len(entities) {
		workers = len(entities)
		result.Workers = workers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return WarmResult{}, fmt.Errorf("create warm pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var loaded, failed atomic.Int32
	for _, ent := range entities {
		ownerID := ent.ID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if _, err := s.statRepo.ListByOwner(ctx, ownerID); err != nil {
				s.logger.WarnContext(ctx, "cache warm failed", "entity_id", ownerID, "error", err)
				failed.Add(1)
				return
			}
			loaded.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
		}
	}
	wg.Wait()

	result.Loaded = int(loaded.Load())
	result.Failed = int(failed.Load())
	result.DurationMs = time.Since(started).Milliseconds()

	return result, nil
}

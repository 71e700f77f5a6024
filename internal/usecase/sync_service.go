package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/domain/statistic"
	"github.com/pitchlink/stats-engine/internal/platform/logging"
	"github.com/pitchlink/stats-engine/internal/platform/resilience"
)

type SyncConfig struct {
	// Season is the season start year to fetch; 0 means derive it from the
	// current date (July rollover).
	Season int
	// RemoteTimeout bounds one remote source call. It must stay short
	// relative to the bulk pacing interval so a hung call cannot stall a
	// bulk run disproportionately.
	RemoteTimeout time.Duration
}

// SyncSummary describes one completed refresh.
type SyncSummary struct {
	EntityID         string    `json:"entity_id"`
	ExternalPlayerID int64     `json:"external_player_id"`
	Season           int       `json:"season"`
	BlocksFetched    int       `json:"blocks_fetched"`
	BlocksWritten    int       `json:"blocks_written"`
	BlocksSkipped    int       `json:"blocks_skipped"`
	SyncedAt         time.Time `json:"synced_at"`
	DurationMs       int64     `json:"duration_ms"`
}

// SyncService coordinates refreshes: at most one in flight per entity at any
// instant. The per-entity marker is held in process memory, so a restart
// clears all in-flight state.
type SyncService struct {
	entityRepo entity.Repository
	statRepo   statistic.Repository
	source     RemoteStatsSource
	locks      resilience.KeyedLock
	cfg        SyncConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewSyncService(
	entityRepo entity.Repository,
	statRepo statistic.Repository,
	source RemoteStatsSource,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = 10 * time.Second
	}

	return &SyncService{
		entityRepo: entityRepo,
		statRepo:   statRepo,
		source:     source,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Refresh fetches current-season data for one entity and merges it into the
// statistics store. A second call while one is active is rejected with
// ErrSyncInProgress; nothing is queued. The per-entity slot is released on
// every exit path so a later call may proceed.
func (s *SyncService) Refresh(ctx context.Context, entityID string) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Refresh")
	defer span.End()

	if entityID == "" {
		return SyncSummary{}, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}

	ent, ok, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("load entity=%s: %w", entityID, err)
	}
	if !ok {
		return SyncSummary{}, fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}
	if !ent.Linked() {
		return SyncSummary{}, fmt.Errorf("%w: entity=%s", ErrNotLinked, entityID)
	}

	if !s.locks.TryAcquire(entityID) {
		return SyncSummary{}, fmt.Errorf("%w: entity=%s", ErrSyncInProgress, entityID)
	}
	defer s.locks.Release(entityID)

	started := s.now()
	externalID := *ent.ExternalPlayerRef
	season := s.cfg.Season
	if season <= 0 {
		season = CurrentSeason(started)
	}

	rctx, cancel := context.WithTimeout(ctx, s.cfg.RemoteTimeout)
	defer cancel()

	blocks, err := s.source.PlayerSeasonStats(rctx, externalID, season)
	if err != nil {
		s.logger.ErrorContext(ctx, "remote stats fetch failed",
			"entity_id", entityID,
			"external_player_id", externalID,
			"season", season,
			"error", err,
		)
		return SyncSummary{}, fmt.Errorf("%w: fetch stats entity=%s season=%d: %v", ErrDependencyUnavailable, entityID, season, err)
	}
	if len(blocks) == 0 {
		return SyncSummary{}, fmt.Errorf("%w: entity=%s external_player_id=%d season=%d", ErrNoRemoteData, entityID, externalID, season)
	}

	summary := SyncSummary{
		EntityID:         entityID,
		ExternalPlayerID: externalID,
		Season:           season,
		BlocksFetched:    len(blocks),
	}
	for _, block := range blocks {
		rec, mapErr := mapExternalBlock(entityID, externalID, season, block)
		if mapErr != nil {
			// Data errors never abort a whole sync.
			s.logger.WarnContext(ctx, "skipping malformed statistic block",
				"entity_id", entityID,
				"season", season,
				"error", mapErr,
			)
			summary.BlocksSkipped++
			continue
		}
		if err := s.statRepo.Upsert(ctx, rec); err != nil {
			return SyncSummary{}, fmt.Errorf("upsert record entity=%s league=%d team=%d season=%d: %w",
				entityID, rec.LeagueID, rec.TeamID, rec.Season, err)
		}
		summary.BlocksWritten++
	}
	if summary.BlocksWritten == 0 {
		return SyncSummary{}, fmt.Errorf("%w: all %d blocks malformed for entity=%s season=%d", ErrNoRemoteData, len(blocks), entityID, season)
	}

	syncedAt := s.now().UTC()
	if err := s.entityRepo.SetLastSyncAt(ctx, entityID, syncedAt); err != nil {
		s.logger.WarnContext(ctx, "record last sync time failed", "entity_id", entityID, "error", err)
	}
	summary.SyncedAt = syncedAt
	summary.DurationMs = s.now().Sub(started).Milliseconds()

	s.logger.InfoContext(ctx, "refresh completed",
		"entity_id", entityID,
		"season", season,
		"blocks_written", summary.BlocksWritten,
		"blocks_skipped", summary.BlocksSkipped,
		"duration_ms", summary.DurationMs,
	)

	return summary, nil
}

// InFlight reports how many refreshes currently hold a slot.
func (s *SyncService) InFlight() int {
	return s.locks.Len()
}

// CurrentSeason derives the season start year from a point in time: a
// European season spans July through June, so January-June belongs to the
// previous calendar year's season.
func CurrentSeason(t time.Time) int {
	year := t.UTC().Year()
	if t.UTC().Month() < time.July {
		return year - 1
	}
	return year
}

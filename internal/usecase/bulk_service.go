package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	idgen "github.com/pitchlink/stats-engine/internal/platform/id"
	"github.com/pitchlink/stats-engine/internal/platform/logging"
)

const (
	bulkOutcomeSuccess = "success"
	bulkOutcomeFailed  = "failed"
)

type BulkConfig struct {
	// PaceInterval is the minimum spacing between per-entity refreshes so a
	// run stays under the remote source's request-rate ceiling.
	PaceInterval time.Duration
	// RetainedRuns bounds how many completed runs stay queryable by id.
	RetainedRuns int
}

type BulkEntityOutcome struct {
	EntityID      string `json:"entity_id"`
	Status        string `json:"status"`
	BlocksWritten int    `json:"blocks_written"`
	DurationMs    int64  `json:"duration_ms"`
	Error         string `json:"error,omitempty"`
}

type BulkRun struct {
	ID         string              `json:"id"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Total      int                 `json:"total"`
	Attempted  int                 `json:"attempted"`
	Succeeded  int                 `json:"succeeded"`
	Failed     int                 `json:"failed"`
	Outcomes   []BulkEntityOutcome `json:"outcomes"`
}

type BulkStatus struct {
	Active            bool     `json:"active"`
	ActiveRunID       string   `json:"active_run_id,omitempty"`
	InFlightRefreshes int      `json:"in_flight_refreshes"`
	LastRun           *BulkRun `json:"last_run,omitempty"`
}

// BulkSyncService refreshes every linked entity exactly once per run,
// sequentially and paced, with per-entity failure isolation. At most one run
// may be active at a time.
type BulkSyncService struct {
	entityRepo entity.Repository
	syncSvc    *SyncService
	idGen      idgen.Generator
	limiter    *rate.Limiter
	cfg        BulkConfig
	logger     *logging.Logger
	now        func() time.Time

	active      atomic.Bool
	mu          sync.Mutex
	activeRunID string
	lastRun     *BulkRun
	runs        map[string]BulkRun
	runOrder    []string
}

func NewBulkSyncService(
	entityRepo entity.Repository,
	syncSvc *SyncService,
	gen idgen.Generator,
	cfg BulkConfig,
	logger *logging.Logger,
) *BulkSyncService {
	if gen == nil {
		gen = idgen.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PaceInterval <= 0 {
		cfg.PaceInterval = time.Second
	}
	if cfg.RetainedRuns < 1 {
		cfg.RetainedRuns = 20
	}

	return &BulkSyncService{
		entityRepo: entityRepo,
		syncSvc:    syncSvc,
		idGen:      gen,
		limiter:    rate.NewLimiter(rate.Every(cfg.PaceInterval), 1),
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// RunAll refreshes every linked entity once. A second concurrent invocation is
// rejected with ErrBulkRunActive and the active run's id; runs never overlap.
func (s *BulkSyncService) RunAll(ctx context.Context) (BulkRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BulkSyncService.RunAll")
	defer span.End()

	if !s.active.CompareAndSwap(false, true) {
		s.mu.Lock()
		runID := s.activeRunID
		s.mu.Unlock()
		return BulkRun{}, fmt.Errorf("%w: run_id=%s", ErrBulkRunActive, runID)
	}
	defer func() {
		s.mu.Lock()
		s.activeRunID = ""
		s.mu.Unlock()
		s.active.Store(false)
	}()

	runID, err := s.idGen.NewID()
	if err != nil {
		return BulkRun{}, fmt.Errorf("generate run id: %w", err)
	}
	s.mu.Lock()
	s.activeRunID = runID
	s.mu.Unlock()

	entities, err := s.entityRepo.ListLinked(ctx)
	if err != nil {
		return BulkRun{}, fmt.Errorf("list linked entities: %w", err)
	}

	run := BulkRun{
		ID:        runID,
		StartedAt: s.now().UTC(),
		Total:     len(entities),
		Outcomes:  make([]BulkEntityOutcome, 0, len(entities)),
	}

	s.logger.InfoContext(ctx, "bulk run started", "run_id", runID, "total", run.Total)

	for i, ent := range entities {
		if i > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				s.logger.WarnContext(ctx, "bulk run pacing interrupted",
					"run_id", runID,
					"attempted", run.Attempted,
					"error", err,
				)
				break
			}
		}

		outcome := s.refreshOne(ctx, ent.ID)
		run.Attempted++
		if outcome.Status == bulkOutcomeSuccess {
			run.Succeeded++
		} else {
			run.Failed++
		}
		run.Outcomes = append(run.Outcomes, outcome)
	}

	run.FinishedAt = s.now().UTC()
	s.retain(run)

	s.logger.InfoContext(ctx, "bulk run finished",
		"run_id", runID,
		"total", run.Total,
		"succeeded", run.Succeeded,
		"failed", run.Failed,
		"duration_ms", run.FinishedAt.Sub(run.StartedAt).Milliseconds(),
	)

	return run, nil
}

// refreshOne is the per-entity isolation boundary: no failure, including a
// panic, may escape it and abort the run.
func (s *BulkSyncService) refreshOne(ctx context.Context, entityID string) (outcome BulkEntityOutcome) {
	started := s.now()
	outcome = BulkEntityOutcome{EntityID: entityID, Status: bulkOutcomeFailed}

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "panic during bulk refresh", "entity_id", entityID, "panic", rec)
			outcome.Status = bulkOutcomeFailed
			outcome.Error = fmt.Sprintf("panic: %v", rec)
		}
		outcome.DurationMs = s.now().Sub(started).Milliseconds()
	}()

	summary, err := s.syncSvc.Refresh(ctx, entityID)
	if err != nil {
		s.logger.WarnContext(ctx, "bulk refresh failed", "entity_id", entityID, "error", err)
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Status = bulkOutcomeSuccess
	outcome.BlocksWritten = summary.BlocksWritten
	return outcome
}

func (s *BulkSyncService) retain(run BulkRun) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runs == nil {
		s.runs = make(map[string]BulkRun, s.cfg.RetainedRuns)
	}
	s.runs[run.ID] = run
	s.runOrder = append(s.runOrder, run.ID)
	for len(s.runOrder) > s.cfg.RetainedRuns {
		delete(s.runs, s.runOrder[0])
		s.runOrder = s.runOrder[1:]
	}
	last := run
	s.lastRun = &last
}

// Status reports whether a run is active, the last completed run, and the
// coordinator's in-flight refresh count (0 or 1 per entity by construction).
func (s *BulkSyncService) Status() BulkStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return BulkStatus{
		Active:            s.active.Load(),
		ActiveRunID:       s.activeRunID,
		InFlightRefreshes: s.syncSvc.InFlight(),
		LastRun:           s.lastRun,
	}
}

// GetRun returns a retained run by id.
func (s *BulkSyncService) GetRun(runID string) (BulkRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	return run, ok
}

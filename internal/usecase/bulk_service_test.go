package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/infrastructure/repository/memory"
	"github.com/pitchlink/stats-engine/internal/platform/logging"
)

// flakyStatsSource fails or panics for selected player refs and answers
// normally for everyone else.
type flakyStatsSource struct {
	mu       sync.Mutex
	failFor  map[int64]error
	panicFor map[int64]bool
	served   []int64
}

func (s *flakyStatsSource) PlayerSeasonStats(_ context.Context, externalPlayerID int64, season int) ([]ExternalStatBlock, error) {
	s.mu.Lock()
	s.served = append(s.served, externalPlayerID)
	failErr := s.failFor[externalPlayerID]
	shouldPanic := s.panicFor[externalPlayerID]
	s.mu.Unlock()

	if shouldPanic {
		panic("provider decoder blew up")
	}
	if failErr != nil {
		return nil, failErr
	}

	block := fullBlock()
	block.Season = season
	return []ExternalStatBlock{block}, nil
}

func (s *flakyStatsSource) servedRefs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.served))
	copy(out, s.served)
	return out
}

func newBulkFixture(t *testing.T, source RemoteStatsSource, refs map[string]int64) (*BulkSyncService, *memory.EntityRepository) {
	t.Helper()

	entityRepo := memory.NewEntityRepository()
	for id, ref := range refs {
		entityRepo.Put(linkedEntity(id, ref))
	}
	statRepo := memory.NewStatisticRepository()
	logger := logging.NewNop()
	syncSvc := NewSyncService(entityRepo, statRepo, source, SyncConfig{Season: 2023, RemoteTimeout: time.Second}, logger)
	bulkSvc := NewBulkSyncService(entityRepo, syncSvc, nil, BulkConfig{PaceInterval: time.Millisecond, RetainedRuns: 3}, logger)
	return bulkSvc, entityRepo
}

func TestBulkSyncRunAllVisitsEveryLinkedEntity(t *testing.T) {
	source := &flakyStatsSource{}
	bulkSvc, entityRepo := newBulkFixture(t, source, map[string]int64{
		"ent-a": 101,
		"ent-b": 102,
		"ent-c": 103,
	})
	entityRepo.Put(entity.Entity{ID: "ent-unlinked", DisplayName: "No Ref"})

	run, err := bulkSvc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Total != 3 || run.Attempted != 3 || run.Succeeded != 3 || run.Failed != 0 {
		t.Fatalf("unexpected run counters: %+v", run)
	}
	if len(run.Outcomes) != 3 {
		t.Fatalf("unexpected outcome count: got=%d want=3", len(run.Outcomes))
	}
	if got := source.servedRefs(); len(got) != 3 {
		t.Fatalf("remote source calls: got=%v want 3 refs", got)
	}

	// Linked entities are visited in id order, one at a time.
	wantOrder := []string{"ent-a", "ent-b", "ent-c"}
	for i, outcome := range run.Outcomes {
		if outcome.EntityID != wantOrder[i] {
			t.Fatalf("outcome %d: got=%s want=%s", i, outcome.EntityID, wantOrder[i])
		}
	}
}

func TestBulkSyncRunAllIsolatesPerEntityFailures(t *testing.T) {
	source := &flakyStatsSource{failFor: map[int64]error{102: errors.New("quota exceeded")}}
	bulkSvc, _ := newBulkFixture(t, source, map[string]int64{
		"ent-a": 101,
		"ent-b": 102,
		"ent-c": 103,
	})

	run, err := bulkSvc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Attempted != run.Succeeded+run.Failed {
		t.Fatalf("attempted != succeeded+failed: %+v", run)
	}
	if run.Succeeded != 2 || run.Failed != 1 {
		t.Fatalf("unexpected counters: %+v", run)
	}

	var failed *BulkEntityOutcome
	for i := range run.Outcomes {
		if run.Outcomes[i].Status == bulkOutcomeFailed {
			failed = &run.Outcomes[i]
		}
	}
	if failed == nil || failed.EntityID != "ent-b" {
		t.Fatalf("wrong failed outcome: %+v", run.Outcomes)
	}
	if failed.Error == "" {
		t.Fatal("failed outcome carries no error text")
	}
}

func TestBulkSyncRunAllContainsPanics(t *testing.T) {
	source := &flakyStatsSource{panicFor: map[int64]bool{101: true}}
	bulkSvc, _ := newBulkFixture(t, source, map[string]int64{
		"ent-a": 101,
		"ent-b": 102,
	})

	run, err := bulkSvc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("panic escaped the run: %v", err)
	}
	if run.Succeeded != 1 || run.Failed != 1 {
		t.Fatalf("unexpected counters: %+v", run)
	}
	if run.Outcomes[0].Error == "" {
		t.Fatalf("panic outcome carries no error text: %+v", run.Outcomes[0])
	}
}

func TestBulkSyncRunAllRejectsOverlappingRuns(t *testing.T) {
	release := make(chan struct{})
	source := &stubStatsSource{blocks: []ExternalStatBlock{fullBlock()}, blockCh: release}
	bulkSvc, _ := newBulkFixture(t, source, map[string]int64{"ent-a": 101})

	firstDone := make(chan error, 1)
	go func() {
		_, err := bulkSvc.RunAll(context.Background())
		firstDone <- err
	}()

	deadline := time.After(2 * time.Second)
	for !bulkSvc.Status().Active {
		select {
		case <-deadline:
			t.Fatal("first run never became active")
		case <-time.After(5 * time.Millisecond):
		}
	}

	_, err := bulkSvc.RunAll(context.Background())
	if !errors.Is(err, ErrBulkRunActive) {
		t.Fatalf("expected ErrBulkRunActive, got %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// The flag clears once the run finishes.
	if bulkSvc.Status().Active {
		t.Fatal("active flag not cleared after run")
	}
	if _, err := bulkSvc.RunAll(context.Background()); err != nil {
		t.Fatalf("run after release failed: %v", err)
	}
}

func TestBulkSyncRunAllEmptyRoster(t *testing.T) {
	bulkSvc, _ := newBulkFixture(t, &flakyStatsSource{}, nil)

	run, err := bulkSvc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Total != 0 || run.Attempted != 0 || len(run.Outcomes) != 0 {
		t.Fatalf("unexpected run for empty roster: %+v", run)
	}
}

func TestBulkSyncStatusAndRetention(t *testing.T) {
	source := &flakyStatsSource{}
	bulkSvc, _ := newBulkFixture(t, source, map[string]int64{"ent-a": 101})

	status := bulkSvc.Status()
	if status.Active || status.LastRun != nil {
		t.Fatalf("unexpected initial status: %+v", status)
	}

	var runIDs []string
	for i := 0; i < 4; i++ {
		run, err := bulkSvc.RunAll(context.Background())
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		runIDs = append(runIDs, run.ID)
	}

	status = bulkSvc.Status()
	if status.LastRun == nil || status.LastRun.ID != runIDs[len(runIDs)-1] {
		t.Fatalf("last run not recorded: %+v", status)
	}

	// RetainedRuns is 3, so the oldest of the four runs is evicted.
	if _, ok := bulkSvc.GetRun(runIDs[0]); ok {
		t.Fatal("oldest run should have been evicted")
	}
	for _, id := range runIDs[1:] {
		if _, ok := bulkSvc.GetRun(id); !ok {
			t.Fatalf("run %s missing from retention window", id)
		}
	}
	if _, ok := bulkSvc.GetRun("nope"); ok {
		t.Fatal("unknown run id should not resolve")
	}
}

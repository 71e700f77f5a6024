package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/domain/statistic"
	"github.com/pitchlink/stats-engine/internal/infrastructure/repository/memory"
	"github.com/pitchlink/stats-engine/internal/platform/logging"
)

// stubStatsSource returns canned blocks, a canned error, or blocks until
// released when blockCh is set.
type stubStatsSource struct {
	mu      sync.Mutex
	blocks  []ExternalStatBlock
	err     error
	blockCh chan struct{}
	calls   int
}

func (s *stubStatsSource) PlayerSeasonStats(ctx context.Context, externalPlayerID int64, season int) ([]ExternalStatBlock, error) {
	s.mu.Lock()
	s.calls++
	blockCh := s.blockCh
	blocks, err := s.blocks, s.err
	s.mu.Unlock()

	if blockCh != nil {
		select {
		case <-blockCh:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return blocks, err
}

func (s *stubStatsSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func linkedEntity(id string, ref int64) entity.Entity {
	return entity.Entity{ID: id, DisplayName: id, ExternalPlayerRef: &ref}
}

func newSyncFixture(t *testing.T, source RemoteStatsSource, season int) (*SyncService, *memory.EntityRepository, *memory.StatisticRepository) {
	t.Helper()

	entityRepo := memory.NewEntityRepository()
	statRepo := memory.NewStatisticRepository()
	svc := NewSyncService(entityRepo, statRepo, source, SyncConfig{Season: season, RemoteTimeout: 5 * time.Second}, logging.NewNop())
	return svc, entityRepo, statRepo
}

func TestSyncServiceRefreshMergesRemoteBlocks(t *testing.T) {
	source := &stubStatsSource{blocks: []ExternalStatBlock{fullBlock()}}
	svc, entityRepo, statRepo := newSyncFixture(t, source, 2023)
	entityRepo.Put(linkedEntity("ent-leandro", 61415))

	summary, err := svc.Refresh(context.Background(), "ent-leandro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.BlocksFetched != 1 || summary.BlocksWritten != 1 || summary.BlocksSkipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.ExternalPlayerID != 61415 || summary.Season != 2023 {
		t.Fatalf("unexpected summary identity: %+v", summary)
	}

	key := statistic.Key{OwnerID: "ent-leandro", ExternalPlayerID: 61415, LeagueID: 39, TeamID: 42, Season: 2023}
	rec, ok, err := statRepo.GetByKey(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("record not stored: ok=%v err=%v", ok, err)
	}
	if rec.GoalsTotal != 5 || rec.LeagueName != "Premier League" || rec.TeamName != "Arsenal" {
		t.Fatalf("unexpected stored record: %+v", rec)
	}

	ent, _, _ := entityRepo.GetByID(context.Background(), "ent-leandro")
	if ent.LastSyncAt == nil {
		t.Fatal("last sync time not recorded")
	}
}

func TestSyncServiceRefreshIsIdempotent(t *testing.T) {
	source := &stubStatsSource{blocks: []ExternalStatBlock{fullBlock()}}
	svc, entityRepo, statRepo := newSyncFixture(t, source, 2023)
	entityRepo.Put(linkedEntity("ent-leandro", 61415))

	for i := 0; i < 3; i++ {
		if _, err := svc.Refresh(context.Background(), "ent-leandro"); err != nil {
			t.Fatalf("refresh %d failed: %v", i, err)
		}
	}

	if statRepo.Len() != 1 {
		t.Fatalf("repeated refresh duplicated records: got=%d want=1", statRepo.Len())
	}
}

func TestSyncServiceRefreshRejectsUnlinkedEntity(t *testing.T) {
	source := &stubStatsSource{}
	svc, entityRepo, _ := newSyncFixture(t, source, 2023)
	entityRepo.Put(entity.Entity{ID: "ent-scout", DisplayName: "Unlinked Scout"})

	_, err := svc.Refresh(context.Background(), "ent-scout")
	if !errors.Is(err, ErrNotLinked) {
		t.Fatalf("expected ErrNotLinked, got %v", err)
	}
	if source.callCount() != 0 {
		t.Fatal("remote source called for an unlinked entity")
	}
}

func TestSyncServiceRefreshUnknownEntity(t *testing.T) {
	svc, _, _ := newSyncFixture(t, &stubStatsSource{}, 2023)

	_, err := svc.Refresh(context.Background(), "ent-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSyncServiceRefreshRejectsConcurrentDuplicate(t *testing.T) {
	release := make(chan struct{})
	source := &stubStatsSource{blocks: []ExternalStatBlock{fullBlock()}, blockCh: release}
	svc, entityRepo, _ := newSyncFixture(t, source, 2023)
	entityRepo.Put(linkedEntity("ent-leandro", 61415))

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Refresh(context.Background(), "ent-leandro")
		firstDone <- err
	}()

	// Wait until the first refresh holds the per-entity slot.
	deadline := time.After(2 * time.Second)
	for svc.InFlight() == 0 {
		select {
		case <-deadline:
			t.Fatal("first refresh never acquired its slot")
		case <-time.After(5 * time.Millisecond):
		}
	}

	_, err := svc.Refresh(context.Background(), "ent-leandro")
	if !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}

	// The slot is free again once the first refresh finished.
	if _, err := svc.Refresh(context.Background(), "ent-leandro"); err != nil {
		t.Fatalf("refresh after release failed: %v", err)
	}
}

func TestSyncServiceRefreshReleasesSlotOnFailure(t *testing.T) {
	source := &stubStatsSource{err: errors.New("provider down")}
	svc, entityRepo, _ := newSyncFixture(t, source, 2023)
	entityRepo.Put(linkedEntity("ent-leandro", 61415))

	_, err := svc.Refresh(context.Background(), "ent-leandro")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if svc.InFlight() != 0 {
		t.Fatalf("slot leaked after failure: in_flight=%d", svc.InFlight())
	}

	// A later attempt may proceed.
	source.mu.Lock()
	source.err = nil
	source.blocks = []ExternalStatBlock{fullBlock()}
	source.mu.Unlock()

	if _, err := svc.Refresh(context.Background(), "ent-leandro"); err != nil {
		t.Fatalf("refresh after recovery failed: %v", err)
	}
}

func TestSyncServiceRefreshNoRemoteData(t *testing.T) {
	source := &stubStatsSource{blocks: nil}
	svc, entityRepo, _ := newSyncFixture(t, source, 2023)
	entityRepo.Put(linkedEntity("ent-leandro", 61415))

	_, err := svc.Refresh(context.Background(), "ent-leandro")
	if !errors.Is(err, ErrNoRemoteData) {
		t.Fatalf("expected ErrNoRemoteData, got %v", err)
	}
}

func TestSyncServiceRefreshSkipsMalformedBlocks(t *testing.T) {
	malformed := fullBlock()
	malformed.LeagueID = 0
	source := &stubStatsSource{blocks: []ExternalStatBlock{malformed, fullBlock()}}
	svc, entityRepo, statRepo := newSyncFixture(t, source, 2023)
	entityRepo.Put(linkedEntity("ent-leandro", 61415))

	summary, err := svc.Refresh(context.Background(), "ent-leandro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.BlocksFetched != 2 || summary.BlocksWritten != 1 || summary.BlocksSkipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if statRepo.Len() != 1 {
		t.Fatalf("unexpected store size: got=%d want=1", statRepo.Len())
	}
}

func TestSyncServiceRefreshAllBlocksMalformed(t *testing.T) {
	malformed := fullBlock()
	malformed.TeamID = 0
	source := &stubStatsSource{blocks: []ExternalStatBlock{malformed}}
	svc, entityRepo, _ := newSyncFixture(t, source, 2023)
	entityRepo.Put(linkedEntity("ent-leandro", 61415))

	_, err := svc.Refresh(context.Background(), "ent-leandro")
	if !errors.Is(err, ErrNoRemoteData) {
		t.Fatalf("expected ErrNoRemoteData, got %v", err)
	}
}

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		at   time.Time
		want int
	}{
		{time.Date(2023, time.August, 15, 0, 0, 0, 0, time.UTC), 2023},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 2023},
		{time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC), 2023},
	}

	for _, tc := range cases {
		if got := CurrentSeason(tc.at); got != tc.want {
			t.Fatalf("season at %s: got=%d want=%d", tc.at, got, tc.want)
		}
	}
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/entity"
	"github.com/pitchlink/stats-engine/internal/domain/statistic"
	"github.com/pitchlink/stats-engine/internal/domain/tier"
	"github.com/pitchlink/stats-engine/internal/platform/logging"
)

// EntityProfile is the public card for an entity. It never carries metric
// values, only identity and aggregate insight counts.
type EntityProfile struct {
	EntityID    string     `json:"entityId"`
	DisplayName string     `json:"displayName"`
	Tier        tier.Tier  `json:"tier"`
	Linked      bool       `json:"linked"`
	SeasonCount int        `json:"seasonCount"`
	LastSyncAt  *time.Time `json:"lastSyncAt,omitempty"`
}

type EntityService struct {
	entityRepo entity.Repository
	statRepo   statistic.Repository
	logger     *logging.Logger
}

func NewEntityService(entityRepo entity.Repository, statRepo statistic.Repository, logger *logging.Logger) *EntityService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EntityService{entityRepo: entityRepo, statRepo: statRepo, logger: logger}
}

func (s *EntityService) Profile(ctx context.Context, entityID string) (EntityProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntityService.Profile")
	defer span.End()

	if entityID == "" {
		return EntityProfile{}, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}

	ent, ok, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return EntityProfile{}, fmt.Errorf("load entity=%s: %w", entityID, err)
	}
	if !ok {
		return EntityProfile{}, fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}

	count, err := s.statRepo.CountByOwner(ctx, entityID)
	if err != nil {
		return EntityProfile{}, fmt.Errorf("count records owner=%s: %w", entityID, err)
	}

	return EntityProfile{
		EntityID:    ent.ID,
		DisplayName: ent.DisplayName,
		Tier:        ent.Tier,
		Linked:      ent.Linked(),
		SeasonCount: count,
		LastSyncAt:  ent.LastSyncAt,
	}, nil
}

// LinkExternalRef attaches a data-provider player id to the caller's entity.
// Relinking to a different id is allowed; previously merged records stay as
// they are until the next refresh writes over them.
func (s *EntityService) LinkExternalRef(ctx context.Context, entityID string, externalPlayerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntityService.LinkExternalRef")
	defer span.End()

	if entityID == "" {
		return fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}
	if externalPlayerID <= 0 {
		return fmt.Errorf("%w: external player id must be positive", ErrInvalidInput)
	}

	_, ok, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return fmt.Errorf("load entity=%s: %w", entityID, err)
	}
	if !ok {
		return fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}

	if err := s.entityRepo.SetExternalRef(ctx, entityID, externalPlayerID); err != nil {
		return fmt.Errorf("set external ref entity=%s: %w", entityID, err)
	}

	s.logger.InfoContext(ctx, "external ref linked", "entity_id", entityID, "external_player_id", externalPlayerID)
	return nil
}

// UnlinkExternalRef detaches the provider link. Stored statistics are
// retained; only future refreshes are blocked.
func (s *EntityService) UnlinkExternalRef(ctx context.Context, entityID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntityService.UnlinkExternalRef")
	defer span.End()

	if entityID == "" {
		return fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}

	_, ok, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return fmt.Errorf("load entity=%s: %w", entityID, err)
	}
	if !ok {
		return fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}

	if err := s.entityRepo.ClearExternalRef(ctx, entityID); err != nil {
		return fmt.Errorf("clear external ref entity=%s: %w", entityID, err)
	}

	s.logger.InfoContext(ctx, "external ref unlinked", "entity_id", entityID)
	return nil
}

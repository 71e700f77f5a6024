package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pitchlink/stats-engine/internal/domain/user"
	"github.com/pitchlink/stats-engine/internal/usecase"
)

type Handler struct {
	syncService   *usecase.SyncService
	bulkService   *usecase.BulkSyncService
	statsService  *usecase.StatsService
	entityService *usecase.EntityService
	warmWorkers   int
	logger        *slog.Logger
	validator     *validator.Validate
}

func NewHandler(
	syncService *usecase.SyncService,
	bulkService *usecase.BulkSyncService,
	statsService *usecase.StatsService,
	entityService *usecase.EntityService,
	warmWorkers int,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		syncService:   syncService,
		bulkService:   bulkService,
		statsService:  statsService,
		entityService: entityService,
		warmWorkers:   warmWorkers,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requirePrincipal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(r.Context(), w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return principal, true
}

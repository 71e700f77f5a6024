package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pitchlink/stats-engine/internal/usecase"
)

// RunBulkSyncJob starts a full pass over every linked entity. The pass runs
// to completion within the request; operators call this from a scheduler with
// a generous timeout.
func (h *Handler) RunBulkSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBulkSyncJob")
	defer span.End()

	run, err := h.bulkService.RunAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "bulk sync job rejected", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, run)
}

func (h *Handler) BulkSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BulkSyncStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.bulkService.Status())
}

func (h *Handler) GetBulkSyncRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBulkSyncRun")
	defer span.End()

	runID := r.PathValue("runID")
	run, ok := h.bulkService.GetRun(runID)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: bulk run %s", usecase.ErrNotFound, runID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, run)
}

func (h *Handler) RunCacheWarmJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCacheWarmJob")
	defer span.End()

	result, err := h.statsService.WarmCache(ctx, h.warmWorkers)
	if err != nil {
		h.logger.ErrorContext(ctx, "cache warm job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

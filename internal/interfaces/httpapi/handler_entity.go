package httpapi

import (
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchlink/stats-engine/internal/usecase"
)

type linkExternalRefRequest struct {
	ExternalPlayerID int64 `json:"external_player_id" validate:"required,gt=0"`
}

func (h *Handler) EntityProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EntityProfile")
	defer span.End()

	entityID := r.PathValue("entityID")
	profile, err := h.entityService.Profile(ctx, entityID)
	if err != nil {
		h.logger.WarnContext(ctx, "get entity profile failed", "entity_id", entityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) LinkMyExternalRef(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LinkMyExternalRef")
	defer span.End()

	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req linkExternalRefRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid json body", usecase.ErrInvalidInput))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: external_player_id must be positive", usecase.ErrInvalidInput))
		return
	}

	if err := h.entityService.LinkExternalRef(ctx, principal.EntityID, req.ExternalPlayerID); err != nil {
		h.logger.WarnContext(ctx, "link external ref failed", "entity_id", principal.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"entity_id":          principal.EntityID,
		"external_player_id": req.ExternalPlayerID,
	})
}

func (h *Handler) UnlinkMyExternalRef(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnlinkMyExternalRef")
	defer span.End()

	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.entityService.UnlinkExternalRef(ctx, principal.EntityID); err != nil {
		h.logger.WarnContext(ctx, "unlink external ref failed", "entity_id", principal.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"entity_id": principal.EntityID,
		"linked":    false,
	})
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/statistic"
)

type statRecordDTO struct {
	ExternalPlayerID int64     `json:"external_player_id"`
	Season           int       `json:"season"`
	PlayerName       string    `json:"player_name"`
	PlayerAge        int       `json:"player_age"`
	PlayerPhoto      string    `json:"player_photo,omitempty"`
	LeagueID         int64     `json:"league_id"`
	LeagueName       string    `json:"league_name"`
	LeagueLogo       string    `json:"league_logo,omitempty"`
	TeamID           int64     `json:"team_id"`
	TeamName         string    `json:"team_name"`
	TeamLogo         string    `json:"team_logo,omitempty"`
	Appearances      int       `json:"appearances"`
	Lineups          int       `json:"lineups"`
	Minutes          int       `json:"minutes"`
	Rating           float64   `json:"rating"`
	ShotsTotal       int       `json:"shots_total"`
	ShotsOn          int       `json:"shots_on"`
	Goals            int       `json:"goals"`
	GoalsConceded    int       `json:"goals_conceded"`
	Assists          int       `json:"assists"`
	Saves            int       `json:"saves"`
	PassesTotal      int       `json:"passes_total"`
	PassesKey        int       `json:"passes_key"`
	PassAccuracy     int       `json:"pass_accuracy"`
	Tackles          int       `json:"tackles"`
	Blocks           int       `json:"blocks"`
	Interceptions    int       `json:"interceptions"`
	DuelsTotal       int       `json:"duels_total"`
	DuelsWon         int       `json:"duels_won"`
	DribbleAttempts  int       `json:"dribble_attempts"`
	DribbleSuccess   int       `json:"dribble_success"`
	FoulsDrawn       int       `json:"fouls_drawn"`
	FoulsCommitted   int       `json:"fouls_committed"`
	YellowCards      int       `json:"yellow_cards"`
	RedCards         int       `json:"red_cards"`
	PenaltiesWon     int       `json:"penalties_won"`
	PenaltiesScored  int       `json:"penalties_scored"`
	PenaltiesMissed  int       `json:"penalties_missed"`
	PenaltiesSaved   int       `json:"penalties_saved"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func recordToDTO(rec statistic.Record) statRecordDTO {
	return statRecordDTO{
		ExternalPlayerID: rec.ExternalPlayerID,
		Season:           rec.Season,
		PlayerName:       rec.PlayerName,
		PlayerAge:        rec.PlayerAge,
		PlayerPhoto:      rec.PlayerPhoto,
		LeagueID:         rec.LeagueID,
		LeagueName:       rec.LeagueName,
		LeagueLogo:       rec.LeagueLogo,
		TeamID:           rec.TeamID,
		TeamName:         rec.TeamName,
		TeamLogo:         rec.TeamLogo,
		Appearances:      rec.Appearances,
		Lineups:          rec.Lineups,
		Minutes:          rec.Minutes,
		Rating:           rec.Rating,
		ShotsTotal:       rec.ShotsTotal,
		ShotsOn:          rec.ShotsOn,
		Goals:            rec.GoalsTotal,
		GoalsConceded:    rec.GoalsConceded,
		Assists:          rec.Assists,
		Saves:            rec.Saves,
		PassesTotal:      rec.PassesTotal,
		PassesKey:        rec.PassesKey,
		PassAccuracy:     rec.PassAccuracy,
		Tackles:          rec.TacklesTotal,
		Blocks:           rec.Blocks,
		Interceptions:    rec.Interceptions,
		DuelsTotal:       rec.DuelsTotal,
		DuelsWon:         rec.DuelsWon,
		DribbleAttempts:  rec.DribbleAttempts,
		DribbleSuccess:   rec.DribbleSuccess,
		FoulsDrawn:       rec.FoulsDrawn,
		FoulsCommitted:   rec.FoulsCommitted,
		YellowCards:      rec.YellowCards,
		RedCards:         rec.RedCards,
		PenaltiesWon:     rec.PenaltiesWon,
		PenaltiesScored:  rec.PenaltiesScored,
		PenaltiesMissed:  rec.PenaltiesMissed,
		PenaltiesSaved:   rec.PenaltiesSaved,
		UpdatedAt:        rec.UpdatedAt,
	}
}

// MyStats returns the caller's own statistics, always unprojected.
func (h *Handler) MyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MyStats")
	defer span.End()

	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	records, err := h.statsService.MyStats(ctx, principal.EntityID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my stats failed", "entity_id", principal.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, recordToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// RefreshMyStats triggers an on-demand sync for the caller's entity.
func (h *Handler) RefreshMyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshMyStats")
	defer span.End()

	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	summary, err := h.syncService.Refresh(ctx, principal.EntityID)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh failed", "entity_id", principal.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

// EntityStats returns another entity's statistics through the tier policy.
func (h *Handler) EntityStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EntityStats")
	defer span.End()

	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	entityID := r.PathValue("entityID")
	records, err := h.statsService.EntityStats(ctx, principal, entityID)
	if err != nil {
		h.logger.WarnContext(ctx, "get entity stats failed", "entity_id", entityID, "viewer_id", principal.EntityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, records)
}

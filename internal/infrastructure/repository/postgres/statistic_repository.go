package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchlink/stats-engine/internal/domain/statistic"
)

type StatisticRepository struct {
	db *sqlx.DB
}

func NewStatisticRepository(db *sqlx.DB) *StatisticRepository {
	return &StatisticRepository{db: db}
}

const statisticColumns = `
	owner_id, external_player_id, league_id, team_id, season,
	player_name, player_age, player_photo,
	league_name, league_logo, team_name, team_logo,
	appearances, lineups, minutes, rating,
	shots_total, shots_on,
	goals_total, goals_conceded, assists, saves,
	passes_total, passes_key, pass_accuracy,
	tackles_total, blocks, interceptions,
	duels_total, duels_won,
	dribble_attempts, dribble_success,
	fouls_drawn, fouls_committed,
	yellow_cards, red_cards,
	penalties_won, penalties_scored, penalties_missed, penalties_saved,
	created_at, updated_at`

func (r *StatisticRepository) Upsert(ctx context.Context, rec statistic.Record) error {
	const query = `
		INSERT INTO statistic_records (
			owner_id, external_player_id, league_id, team_id, season,
			player_name, player_age, player_photo,
			league_name, league_logo, team_name, team_logo,
			appearances, lineups, minutes, rating,
			shots_total, shots_on,
			goals_total, goals_conceded, assists, saves,
			passes_total, passes_key, pass_accuracy,
			tackles_total, blocks, interceptions,
			duels_total, duels_won,
			dribble_attempts, dribble_success,
			fouls_drawn, fouls_committed,
			yellow_cards, red_cards,
			penalties_won, penalties_scored, penalties_missed, penalties_saved
		) VALUES (
			:owner_id, :external_player_id, :league_id, :team_id, :season,
			:player_name, :player_age, :player_photo,
			:league_name, :league_logo, :team_name, :team_logo,
			:appearances, :lineups, :minutes, :rating,
			:shots_total, :shots_on,
			:goals_total, :goals_conceded, :assists, :saves,
			:passes_total, :passes_key, :pass_accuracy,
			:tackles_total, :blocks, :interceptions,
			:duels_total, :duels_won,
			:dribble_attempts, :dribble_success,
			:fouls_drawn, :fouls_committed,
			:yellow_cards, :red_cards,
			:penalties_won, :penalties_scored, :penalties_missed, :penalties_saved
		)
		ON CONFLICT (owner_id, external_player_id, league_id, team_id, season) DO UPDATE SET
			player_name      = EXCLUDED.player_name,
			player_age       = EXCLUDED.player_age,
			player_photo     = EXCLUDED.player_photo,
			league_name      = EXCLUDED.league_name,
			league_logo      = EXCLUDED.league_logo,
			team_name        = EXCLUDED.team_name,
			team_logo        = EXCLUDED.team_logo,
			appearances      = EXCLUDED.appearances,
			lineups          = EXCLUDED.lineups,
			minutes          = EXCLUDED.minutes,
			rating           = EXCLUDED.rating,
			shots_total      = EXCLUDED.shots_total,
			shots_on         = EXCLUDED.shots_on,
			goals_total      = EXCLUDED.goals_total,
			goals_conceded   = EXCLUDED.goals_conceded,
			assists          = EXCLUDED.assists,
			saves            = EXCLUDED.saves,
			passes_total     = EXCLUDED.passes_total,
			passes_key       = EXCLUDED.passes_key,
			pass_accuracy    = EXCLUDED.pass_accuracy,
			tackles_total    = EXCLUDED.tackles_total,
			blocks           = EXCLUDED.blocks,
			interceptions    = EXCLUDED.interceptions,
			duels_total      = EXCLUDED.duels_total,
			duels_won        = EXCLUDED.duels_won,
			dribble_attempts = EXCLUDED.dribble_attempts,
			dribble_success  = EXCLUDED.dribble_success,
			fouls_drawn      = EXCLUDED.fouls_drawn,
			fouls_committed  = EXCLUDED.fouls_committed,
			yellow_cards     = EXCLUDED.yellow_cards,
			red_cards        = EXCLUDED.red_cards,
			penalties_won    = EXCLUDED.penalties_won,
			penalties_scored = EXCLUDED.penalties_scored,
			penalties_missed = EXCLUDED.penalties_missed,
			penalties_saved  = EXCLUDED.penalties_saved,
			updated_at       = NOW()`

	if _, err := r.db.NamedExecContext(ctx, query, statisticModelFromDomain(rec)); err != nil {
		return fmt.Errorf("upsert statistic record: %w", err)
	}
	return nil
}

func (r *StatisticRepository) GetByKey(ctx context.Context, key statistic.Key) (statistic.Record, bool, error) {
	query := `
		SELECT ` + statisticColumns + `
		FROM statistic_records
		WHERE owner_id = $1 AND external_player_id = $2 AND league_id = $3 AND team_id = $4 AND season = $5`

	var row statisticTableModel
	err := r.db.GetContext(ctx, &row, query, key.OwnerID, key.ExternalPlayerID, key.LeagueID, key.TeamID, key.Season)
	if err != nil {
		if isNotFound(err) {
			return statistic.Record{}, false, nil
		}
		return statistic.Record{}, false, fmt.Errorf("get statistic record: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *StatisticRepository) ListByOwner(ctx context.Context, ownerID string) ([]statistic.Record, error) {
	query := `
		SELECT ` + statisticColumns + `
		FROM statistic_records
		WHERE owner_id = $1
		ORDER BY season DESC, league_id, team_id`

	var rows []statisticTableModel
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("select statistic records: %w", err)
	}

	out := make([]statistic.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StatisticRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM statistic_records WHERE owner_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, fmt.Errorf("count statistic records: %w", err)
	}
	return count, nil
}

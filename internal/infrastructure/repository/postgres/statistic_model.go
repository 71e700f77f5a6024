package postgres

import (
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/statistic"
)

type statisticTableModel struct {
	OwnerID          string  `db:"owner_id"`
	ExternalPlayerID int64   `db:"external_player_id"`
	LeagueID         int64   `db:"league_id"`
	TeamID           int64   `db:"team_id"`
	Season           int     `db:"season"`
	PlayerName       string  `db:"player_name"`
	PlayerAge        int     `db:"player_age"`
	PlayerPhoto      string  `db:"player_photo"`
	LeagueName       string  `db:"league_name"`
	LeagueLogo       string  `db:"league_logo"`
	TeamName         string  `db:"team_name"`
	TeamLogo         string  `db:"team_logo"`
	Appearances      int     `db:"appearances"`
	Lineups          int     `db:"lineups"`
	Minutes          int     `db:"minutes"`
	Rating           float64 `db:"rating"`
	ShotsTotal       int     `db:"shots_total"`
	ShotsOn          int     `db:"shots_on"`
	GoalsTotal       int     `db:"goals_total"`
	GoalsConceded    int     `db:"goals_conceded"`
	Assists          int     `db:"assists"`
	Saves            int     `db:"saves"`
	PassesTotal      int     `db:"passes_total"`
	PassesKey        int     `db:"passes_key"`
	PassAccuracy     int     `db:"pass_accuracy"`
	TacklesTotal     int     `db:"tackles_total"`
	Blocks           int     `db:"blocks"`
	Interceptions    int     `db:"interceptions"`
	DuelsTotal       int     `db:"duels_total"`
	DuelsWon         int     `db:"duels_won"`
	DribbleAttempts  int     `db:"dribble_attempts"`
	DribbleSuccess   int     `db:"dribble_success"`
	FoulsDrawn       int     `db:"fouls_drawn"`
	FoulsCommitted   int     `db:"fouls_committed"`
	YellowCards      int     `db:"yellow_cards"`
	RedCards         int     `db:"red_cards"`
	PenaltiesWon     int     `db:"penalties_won"`
	PenaltiesScored  int     `db:"penalties_scored"`
	PenaltiesMissed  int     `db:"penalties_missed"`
	PenaltiesSaved   int     `db:"penalties_saved"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func statisticModelFromDomain(rec statistic.Record) statisticTableModel {
	return statisticTableModel{
		OwnerID:          rec.OwnerID,
		ExternalPlayerID: rec.ExternalPlayerID,
		LeagueID:         rec.LeagueID,
		TeamID:           rec.TeamID,
		Season:           rec.Season,
		PlayerName:       rec.PlayerName,
		PlayerAge:        rec.PlayerAge,
		PlayerPhoto:      rec.PlayerPhoto,
		LeagueName:       rec.LeagueName,
		LeagueLogo:       rec.LeagueLogo,
		TeamName:         rec.TeamName,
		TeamLogo:         rec.TeamLogo,
		Appearances:      rec.Appearances,
		Lineups:          rec.Lineups,
		Minutes:          rec.Minutes,
		Rating:           rec.Rating,
		ShotsTotal:       rec.ShotsTotal,
		ShotsOn:          rec.ShotsOn,
		GoalsTotal:       rec.GoalsTotal,
		GoalsConceded:    rec.GoalsConceded,
		Assists:          rec.Assists,
		Saves:            rec.Saves,
		PassesTotal:      rec.PassesTotal,
		PassesKey:        rec.PassesKey,
		PassAccuracy:     rec.PassAccuracy,
		TacklesTotal:     rec.TacklesTotal,
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
	}
}

func (m statisticTableModel) toDomain() statistic.Record {
	return statistic.Record{
		Key: statistic.Key{
			OwnerID:          m.OwnerID,
			ExternalPlayerID: m.ExternalPlayerID,
			LeagueID:         m.LeagueID,
			TeamID:           m.TeamID,
			Season:           m.Season,
		},
		PlayerName:      m.PlayerName,
		PlayerAge:       m.PlayerAge,
		PlayerPhoto:     m.PlayerPhoto,
		LeagueName:      m.LeagueName,
		LeagueLogo:      m.LeagueLogo,
		TeamName:        m.TeamName,
		TeamLogo:        m.TeamLogo,
		Appearances:     m.Appearances,
		Lineups:         m.Lineups,
		Minutes:         m.Minutes,
		Rating:          m.Rating,
		ShotsTotal:      m.ShotsTotal,
		ShotsOn:         m.ShotsOn,
		GoalsTotal:      m.GoalsTotal,
		GoalsConceded:   m.GoalsConceded,
		Assists:         m.Assists,
		Saves:           m.Saves,
		PassesTotal:     m.PassesTotal,
		PassesKey:       m.PassesKey,
		PassAccuracy:    m.PassAccuracy,
		TacklesTotal:    m.TacklesTotal,
		Blocks:          m.Blocks,
		Interceptions:   m.Interceptions,
		DuelsTotal:      m.DuelsTotal,
		DuelsWon:        m.DuelsWon,
		DribbleAttempts: m.DribbleAttempts,
		DribbleSuccess:  m.DribbleSuccess,
		FoulsDrawn:      m.FoulsDrawn,
		FoulsCommitted:  m.FoulsCommitted,
		YellowCards:     m.YellowCards,
		RedCards:        m.RedCards,
		PenaltiesWon:    m.PenaltiesWon,
		PenaltiesScored: m.PenaltiesScored,
		PenaltiesMissed: m.PenaltiesMissed,
		PenaltiesSaved:  m.PenaltiesSaved,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

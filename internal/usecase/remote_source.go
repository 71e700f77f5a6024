package usecase

import "context"

// RemoteStatsSource fetches raw performance blocks for one external player and
// season. Implementations are selected once at process start; the coordinator
// never knows whether it holds the real provider or the simulated one.
//
// Returning zero blocks is normal (unknown player, off-season); absence of
// nested metric groups is normal too and collapses to zero-filled defaults at
// the merge boundary, never before.
type RemoteStatsSource interface {
	PlayerSeasonStats(ctx context.Context, externalPlayerID int64, season int) ([]ExternalStatBlock, error)
}

// ExternalStatBlock is one raw (league, team, season) statistic block as the
// remote source reports it. Metric groups are pointers: nil means the source
// omitted the whole group.
type ExternalStatBlock struct {
	LeagueID   int64
	LeagueName string
	LeagueLogo string
	TeamID     int64
	TeamName   string
	TeamLogo   string
	Season     int

	PlayerName  string
	PlayerAge   int
	PlayerPhoto string

	Games    *ExternalGamesGroup
	Shots    *ExternalShotsGroup
	Goals    *ExternalGoalsGroup
	Passes   *ExternalPassesGroup
	Tackles  *ExternalTacklesGroup
	Duels    *ExternalDuelsGroup
	Dribbles *ExternalDribblesGroup
	Fouls    *ExternalFoulsGroup
	Cards    *ExternalCardsGroup
	Penalty  *ExternalPenaltyGroup
}

type ExternalGamesGroup struct {
	Appearances int
	Lineups     int
	Minutes     int
	Rating      float64
}

type ExternalShotsGroup struct {
	Total int
	On    int
}

type ExternalGoalsGroup struct {
	Total    int
	Conceded int
	Assists  int
	Saves    int
}

type ExternalPassesGroup struct {
	Total    int
	Key      int
	Accuracy int
}

type ExternalTacklesGroup struct {
	Total         int
	Blocks        int
	Interceptions int
}

type ExternalDuelsGroup struct {
	Total int
	Won   int
}

type ExternalDribblesGroup struct {
	Attempts int
	Success  int
}

type ExternalFoulsGroup struct {
	Drawn     int
	Committed int
}

type ExternalCardsGroup struct {
	Yellow int
	Red    int
}

type ExternalPenaltyGroup struct {
	Won    int
	Scored int
	Missed int
	Saved  int
}

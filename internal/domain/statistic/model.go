package statistic

import "time"

// Key identifies one stored performance record. All four external components
// are required together: one player can appear in several leagues and teams
// within a single season (loan spells, cup competitions).
type Key struct {
	OwnerID          string
	ExternalPlayerID int64
	LeagueID         int64
	TeamID           int64
	Season           int
}

// Record is one normalized performance record for an owner in a
// (league, team, season) context. Every numeric metric defaults to zero rather
// than being absent so aggregation never needs null handling.
type Record struct {
	Key

	// Identity snapshot, denormalized at last sync.
	PlayerName  string
	PlayerAge   int
	PlayerPhoto string

	// Competition context.
	LeagueName string
	LeagueLogo string
	TeamName   string
	TeamLogo   string

	Appearances int
	Lineups     int
	Minutes     int
	Rating      float64

	ShotsTotal int
	ShotsOn    int

	GoalsTotal    int
	GoalsConceded int
	Assists       int
	Saves         int

	PassesTotal  int
	PassesKey    int
	PassAccuracy int

	TacklesTotal  int
	Blocks        int
	Interceptions int

	DuelsTotal int
	DuelsWon   int

	DribbleAttempts int
	DribbleSuccess  int

	FoulsDrawn     int
	FoulsCommitted int

	YellowCards int
	RedCards    int

	PenaltiesWon    int
	PenaltiesScored int
	PenaltiesMissed int
	PenaltiesSaved  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

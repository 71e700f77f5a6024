package usecase

import (
	"fmt"
	"strings"

	"github.com/pitchlink/stats-engine/internal/domain/statistic"
)

// mapExternalBlock transforms one raw statistic block into the normalized
// record schema. It is deterministic: the same input always produces the same
// record, so repeated application is idempotent. Absent metric groups collapse
// to zero-filled defaults here and nowhere else.
func mapExternalBlock(ownerID string, externalPlayerID int64, season int, block ExternalStatBlock) (statistic.Record, error) {
	if block.LeagueID <= 0 {
		return statistic.Record{}, fmt.Errorf("%w: missing league id", ErrMalformedBlock)
	}
	if block.TeamID <= 0 {
		return statistic.Record{}, fmt.Errorf("%w: missing team id", ErrMalformedBlock)
	}

	if block.Season > 0 {
		season = block.Season
	}

	rec := statistic.Record{
		Key: statistic.Key{
			OwnerID:          ownerID,
			ExternalPlayerID: externalPlayerID,
			LeagueID:         block.LeagueID,
			TeamID:           block.TeamID,
			Season:           season,
		},
		PlayerName:  strings.TrimSpace(block.PlayerName),
		PlayerAge:   maxInt(block.PlayerAge, 0),
		PlayerPhoto: strings.TrimSpace(block.PlayerPhoto),
		LeagueName:  strings.TrimSpace(block.LeagueName),
		LeagueLogo:  strings.TrimSpace(block.LeagueLogo),
		TeamName:    strings.TrimSpace(block.TeamName),
		TeamLogo:    strings.TrimSpace(block.TeamLogo),
	}

	if g := block.Games; g != nil {
		rec.Appearances = maxInt(g.Appearances, 0)
		rec.Lineups = maxInt(g.Lineups, 0)
		rec.Minutes = maxInt(g.Minutes, 0)
		if g.Rating > 0 {
			rec.Rating = g.Rating
		}
	}
	if g := block.Shots; g != nil {
		rec.ShotsTotal = maxInt(g.Total, 0)
		rec.ShotsOn = maxInt(g.On, 0)
	}
	if g := block.Goals; g != nil {
		rec.GoalsTotal = maxInt(g.Total, 0)
		rec.GoalsConceded = maxInt(g.Conceded, 0)
		rec.Assists = maxInt(g.Assists, 0)
		rec.Saves = maxInt(g.Saves, 0)
	}
	if g := block.Passes; g != nil {
		rec.PassesTotal = maxInt(g.Total, 0)
		rec.PassesKey = maxInt(g.Key, 0)
		rec.PassAccuracy = maxInt(g.Accuracy, 0)
	}
	if g := block.Tackles; g != nil {
		rec.TacklesTotal = maxInt(g.Total, 0)
		rec.Blocks = maxInt(g.Blocks, 0)
		rec.Interceptions = maxInt(g.Interceptions, 0)
	}
	if g := block.Duels; g != nil {
		rec.DuelsTotal = maxInt(g.Total, 0)
		rec.DuelsWon = maxInt(g.Won, 0)
	}
	if g := block.Dribbles; g != nil {
		rec.DribbleAttempts = maxInt(g.Attempts, 0)
		rec.DribbleSuccess = maxInt(g.Success, 0)
	}
	if g := block.Fouls; g != nil {
		rec.FoulsDrawn = maxInt(g.Drawn, 0)
		rec.FoulsCommitted = maxInt(g.Committed, 0)
	}
	if g := block.Cards; g != nil {
		rec.YellowCards = maxInt(g.Yellow, 0)
		rec.RedCards = maxInt(g.Red, 0)
	}
	if g := block.Penalty; g != nil {
		rec.PenaltiesWon = maxInt(g.Won, 0)
		rec.PenaltiesScored = maxInt(g.Scored, 0)
		rec.PenaltiesMissed = maxInt(g.Missed, 0)
		rec.PenaltiesSaved = maxInt(g.Saved, 0)
	}

	return rec, nil
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

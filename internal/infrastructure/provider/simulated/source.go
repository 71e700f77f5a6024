// Package simulated is an offline stand-in for the real statistics provider.
// Output is deterministic per (player, season) so local runs and tests see
// stable data across refreshes.
package simulated

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pitchlink/stats-engine/internal/usecase"
)

var leagues = []struct {
	id   int64
	name string
}{
	{39, "Premier League"},
	{140, "La Liga"},
	{2, "UEFA Champions League"},
}

var teams = []struct {
	id   int64
	name string
}{
	{42, "Arsenal"},
	{50, "Manchester City"},
	{541, "Real Madrid"},
	{529, "Barcelona"},
}

type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) PlayerSeasonStats(_ context.Context, externalPlayerID int64, season int) ([]usecase.ExternalStatBlock, error) {
	if externalPlayerID <= 0 {
		return nil, fmt.Errorf("external player id must be greater than zero")
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	rng := rand.New(rand.NewSource(externalPlayerID*1_000_003 + int64(season)))

	blockCount := 1 + rng.Intn(3)
	blocks := make([]usecase.ExternalStatBlock, 0, blockCount)
	for i := 0; i < blockCount; i++ {
		league := leagues[rng.Intn(len(leagues))]
		team := teams[rng.Intn(len(teams))]

		appearances := 5 + rng.Intn(30)
		minutes := appearances * (45 + rng.Intn(46))

		block := usecase.ExternalStatBlock{
			LeagueID:    league.id,
			LeagueName:  league.name,
			LeagueLogo:  fmt.Sprintf("https://media.api-sports.io/football/leagues/%d.png", league.id),
			TeamID:      team.id,
			TeamName:    team.name,
			TeamLogo:    fmt.Sprintf("https://media.api-sports.io/football/teams/%d.png", team.id),
			Season:      season,
			PlayerName:  fmt.Sprintf("Simulated Player %d", externalPlayerID),
			PlayerAge:   19 + rng.Intn(17),
			PlayerPhoto: fmt.Sprintf("https://media.api-sports.io/football/players/%d.png", externalPlayerID),
			Games: &usecase.ExternalGamesGroup{
				Appearances: appearances,
				Lineups:     appearances - rng.Intn(appearances/2+1),
				Minutes:     minutes,
				Rating:      5.5 + rng.Float64()*3.5,
			},
			Goals: &usecase.ExternalGoalsGroup{
				Total:   rng.Intn(20),
				Assists: rng.Intn(12),
			},
		}

		// Mimic the real provider's sparse payloads: secondary groups are
		// omitted for some blocks, also deterministically.
		if rng.Intn(3) > 0 {
			shots := 10 + rng.Intn(60)
			block.Shots = &usecase.ExternalShotsGroup{Total: shots, On: rng.Intn(shots + 1)}
		}
		if rng.Intn(3) > 0 {
			passes := 200 + rng.Intn(1200)
			block.Passes = &usecase.ExternalPassesGroup{
				Total:    passes,
				Key:      rng.Intn(50),
				Accuracy: 60 + rng.Intn(35),
			}
		}
		if rng.Intn(2) > 0 {
			block.Tackles = &usecase.ExternalTacklesGroup{
				Total:         rng.Intn(80),
				Blocks:        rng.Intn(20),
				Interceptions: rng.Intn(40),
			}
		}
		if rng.Intn(2) > 0 {
			duels := 50 + rng.Intn(300)
			block.Duels = &usecase.ExternalDuelsGroup{Total: duels, Won: rng.Intn(duels + 1)}
		}
		if rng.Intn(2) > 0 {
			attempts := rng.Intn(80)
			block.Dribbles = &usecase.ExternalDribblesGroup{Attempts: attempts, Success: rng.Intn(attempts + 1)}
		}
		if rng.Intn(2) > 0 {
			block.Fouls = &usecase.ExternalFoulsGroup{Drawn: rng.Intn(40), Committed: rng.Intn(40)}
		}
		if rng.Intn(2) > 0 {
			block.Cards = &usecase.ExternalCardsGroup{Yellow: rng.Intn(8), Red: rng.Intn(2)}
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

package apifootball

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchlink/stats-engine/internal/usecase"
)

// Wire types for the /players endpoint. Numeric leaves are pointers because
// the provider emits null for any metric it did not record. Group objects
// that are absent entirely stay nil and surface as nil groups upstream.

type playersEnvelope struct {
	Errors   json.RawMessage      `json:"errors"`
	Results  int                  `json:"results"`
	Response []playerResponseItem `json:"response"`
}

// errorText flattens the provider's "errors" node. It is an empty array on
// success and an object of field->message on failure.
func (e playersEnvelope) errorText() string {
	raw := strings.TrimSpace(string(e.Errors))
	if raw == "" || raw == "[]" || raw == "null" || raw == "{}" {
		return ""
	}

	var byField map[string]string
	if err := sonic.Unmarshal(e.Errors, &byField); err != nil {
		return raw
	}

	parts := make([]string, 0, len(byField))
	for field, msg := range byField {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

type playerResponseItem struct {
	Player     playerInfo         `json:"player"`
	Statistics []playerStatistics `json:"statistics"`
}

type playerInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   *int   `json:"age"`
	Photo string `json:"photo"`
}

type playerStatistics struct {
	Team     *wireTeam     `json:"team"`
	League   *wireLeague   `json:"league"`
	Games    *wireGames    `json:"games"`
	Shots    *wireShots    `json:"shots"`
	Goals    *wireGoals    `json:"goals"`
	Passes   *wirePasses   `json:"passes"`
	Tackles  *wireTackles  `json:"tackles"`
	Duels    *wireDuels    `json:"duels"`
	Dribbles *wireDribbles `json:"dribbles"`
	Fouls    *wireFouls    `json:"fouls"`
	Cards    *wireCards    `json:"cards"`
	Penalty  *wirePenalty  `json:"penalty"`
}

type wireTeam struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type wireLeague struct {
	ID     *int64 `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Season *int   `json:"season"`
}

type wireGames struct {
	Appearances *int    `json:"appearences"`
	Lineups     *int    `json:"lineups"`
	Minutes     *int    `json:"minutes"`
	Rating      *string `json:"rating"`
}

type wireShots struct {
	Total *int `json:"total"`
	On    *int `json:"on"`
}

type wireGoals struct {
	Total    *int `json:"total"`
	Conceded *int `json:"conceded"`
	Assists  *int `json:"assists"`
	Saves    *int `json:"saves"`
}

type wirePasses struct {
	Total    *int `json:"total"`
	Key      *int `json:"key"`
	Accuracy *int `json:"accuracy"`
}

type wireTackles struct {
	Total         *int `json:"total"`
	Blocks        *int `json:"blocks"`
	Interceptions *int `json:"interceptions"`
}

type wireDuels struct {
	Total *int `json:"total"`
	Won   *int `json:"won"`
}

type wireDribbles struct {
	Attempts *int `json:"attempts"`
	Success  *int `json:"success"`
}

type wireFouls struct {
	Drawn     *int `json:"drawn"`
	Committed *int `json:"committed"`
}

type wireCards struct {
	Yellow *int `json:"yellow"`
	Red    *int `json:"red"`
}

type wirePenalty struct {
	Won    *int `json:"won"`
	Scored *int `json:"scored"`
	Missed *int `json:"missed"`
	Saved  *int `json:"saved"`
}

func mapPlayerStatistics(player playerInfo, stat playerStatistics) usecase.ExternalStatBlock {
	block := usecase.ExternalStatBlock{
		PlayerName:  strings.TrimSpace(player.Name),
		PlayerAge:   intValue(player.Age),
		PlayerPhoto: strings.TrimSpace(player.Photo),
	}

	if stat.League != nil {
		block.LeagueID = int64Value(stat.League.ID)
		block.LeagueName = strings.TrimSpace(stat.League.Name)
		block.LeagueLogo = strings.TrimSpace(stat.League.Logo)
		block.Season = intValue(stat.League.Season)
	}
	if stat.Team != nil {
		block.TeamID = int64Value(stat.Team.ID)
		block.TeamName = strings.TrimSpace(stat.Team.Name)
		block.TeamLogo = strings.TrimSpace(stat.Team.Logo)
	}

	if stat.Games != nil {
		block.Games = &usecase.ExternalGamesGroup{
			Appearances: intValue(stat.Games.Appearances),
			Lineups:     intValue(stat.Games.Lineups),
			Minutes:     intValue(stat.Games.Minutes),
			Rating:      parseRating(stat.Games.Rating),
		}
	}
	if stat.Shots != nil {
		block.Shots = &usecase.ExternalShotsGroup{
			Total: intValue(stat.Shots.Total),
			On:    intValue(stat.Shots.On),
		}
	}
	if stat.Goals != nil {
		block.Goals = &usecase.ExternalGoalsGroup{
			Total:    intValue(stat.Goals.Total),
			Conceded: intValue(stat.Goals.Conceded),
			Assists:  intValue(stat.Goals.Assists),
			Saves:    intValue(stat.Goals.Saves),
		}
	}
	if stat.Passes != nil {
		block.Passes = &usecase.ExternalPassesGroup{
			Total:    intValue(stat.Passes.Total),
			Key:      intValue(stat.Passes.Key),
			Accuracy: intValue(stat.Passes.Accuracy),
		}
	}
	if stat.Tackles != nil {
		block.Tackles = &usecase.ExternalTacklesGroup{
			Total:         intValue(stat.Tackles.Total),
			Blocks:        intValue(stat.Tackles.Blocks),
			Interceptions: intValue(stat.Tackles.Interceptions),
		}
	}
	if stat.Duels != nil {
		block.Duels = &usecase.ExternalDuelsGroup{
			Total: intValue(stat.Duels.Total),
			Won:   intValue(stat.Duels.Won),
		}
	}
	if stat.Dribbles != nil {
		block.Dribbles = &usecase.ExternalDribblesGroup{
			Attempts: intValue(stat.Dribbles.Attempts),
			Success:  intValue(stat.Dribbles.Success),
		}
	}
	if stat.Fouls != nil {
		block.Fouls = &usecase.ExternalFoulsGroup{
			Drawn:     intValue(stat.Fouls.Drawn),
			Committed: intValue(stat.Fouls.Committed),
		}
	}
	if stat.Cards != nil {
		block.Cards = &usecase.ExternalCardsGroup{
			Yellow: intValue(stat.Cards.Yellow),
			Red:    intValue(stat.Cards.Red),
		}
	}
	if stat.Penalty != nil {
		block.Penalty = &usecase.ExternalPenaltyGroup{
			Won:    intValue(stat.Penalty.Won),
			Scored: intValue(stat.Penalty.Scored),
			Missed: intValue(stat.Penalty.Missed),
			Saved:  intValue(stat.Penalty.Saved),
		}
	}

	return block
}

func parseRating(raw *string) float64 {
	if raw == nil {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

package tier

import (
	"sort"
	"strings"
	"time"

	"github.com/pitchlink/stats-engine/internal/domain/statistic"
)

// metricFields is the single canonical mapping from exposed metric names to
// record columns. Every read path (statistics, profile, visitor insights)
// projects through this registry, so the two historic read paths can never
// drift apart on which column feeds which display field.
var metricFields = map[string]func(statistic.Record) any{
	"appearances":      func(r statistic.Record) any { return r.Appearances },
	"lineups":          func(r statistic.Record) any { return r.Lineups },
	"minutes":          func(r statistic.Record) any { return r.Minutes },
	"rating":           func(r statistic.Record) any { return r.Rating },
	"shots_total":      func(r statistic.Record) any { return r.ShotsTotal },
	"shots_on":         func(r statistic.Record) any { return r.ShotsOn },
	"goals":            func(r statistic.Record) any { return r.GoalsTotal },
	"goals_conceded":   func(r statistic.Record) any { return r.GoalsConceded },
	"assists":          func(r statistic.Record) any { return r.Assists },
	"saves":            func(r statistic.Record) any { return r.Saves },
	"passes_total":     func(r statistic.Record) any { return r.PassesTotal },
	"passes_key":       func(r statistic.Record) any { return r.PassesKey },
	"pass_accuracy":    func(r statistic.Record) any { return r.PassAccuracy },
	"tackles":          func(r statistic.Record) any { return r.TacklesTotal },
	"blocks":           func(r statistic.Record) any { return r.Blocks },
	"interceptions":    func(r statistic.Record) any { return r.Interceptions },
	"duels_total":      func(r statistic.Record) any { return r.DuelsTotal },
	"duels_won":        func(r statistic.Record) any { return r.DuelsWon },
	"dribble_attempts": func(r statistic.Record) any { return r.DribbleAttempts },
	"dribble_success":  func(r statistic.Record) any { return r.DribbleSuccess },
	"fouls_drawn":      func(r statistic.Record) any { return r.FoulsDrawn },
	"fouls_committed":  func(r statistic.Record) any { return r.FoulsCommitted },
	"yellow_cards":     func(r statistic.Record) any { return r.YellowCards },
	"red_cards":        func(r statistic.Record) any { return r.RedCards },
	"penalties_won":    func(r statistic.Record) any { return r.PenaltiesWon },
	"penalties_scored": func(r statistic.Record) any { return r.PenaltiesScored },
	"penalties_missed": func(r statistic.Record) any { return r.PenaltiesMissed },
	"penalties_saved":  func(r statistic.Record) any { return r.PenaltiesSaved },
}

// DefaultAllowlist is the metric subset visible to BASIC viewers when no
// explicit allow-list is configured.
var DefaultAllowlist = []string{"goals", "assists", "minutes", "appearances"}

// MetricNames lists every projectable metric in sorted order.
func MetricNames() []string {
	out := make([]string, 0, len(metricFields))
	for name := range metricFields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Policy decides which metric fields a viewer may see. It is pure and
// fail-closed: a metric absent from the allow-list, or an allow-list entry
// that names no known metric, is simply never emitted for BASIC viewers.
type Policy struct {
	allowed map[string]struct{}
}

func NewPolicy(allowlist []string) Policy {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, name := range allowlist {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		allowed[name] = struct{}{}
	}
	return Policy{allowed: allowed}
}

func DefaultPolicy() Policy {
	return NewPolicy(DefaultAllowlist)
}

// ProjectedRecord is a read-side view of one record. Identity and competition
// context are always present; Metrics holds only the fields the viewer's tier
// permits.
type ProjectedRecord struct {
	OwnerID          string         `json:"owner_id"`
	ExternalPlayerID int64          `json:"external_player_id"`
	Season           int            `json:"season"`
	PlayerName       string         `json:"player_name"`
	PlayerAge        int            `json:"player_age"`
	PlayerPhoto      string         `json:"player_photo,omitempty"`
	LeagueID         int64          `json:"league_id"`
	LeagueName       string         `json:"league_name"`
	LeagueLogo       string         `json:"league_logo,omitempty"`
	TeamID           int64          `json:"team_id"`
	TeamName         string         `json:"team_name"`
	TeamLogo         string         `json:"team_logo,omitempty"`
	Metrics          map[string]any `json:"metrics"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Project reduces rec to what the viewer may see. Owners and PREMIUM viewers
// always receive the full metric set; BASIC viewers receive the allow-listed
// subset only. Never returns an error: an unauthorized field is absent, not an
// error condition.
func (p Policy) Project(rec statistic.Record, viewer Tier, isOwner bool) ProjectedRecord {
	out := ProjectedRecord{
		OwnerID:          rec.OwnerID,
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
		Metrics:          make(map[string]any, len(metricFields)),
		UpdatedAt:        rec.UpdatedAt,
	}

	full := isOwner || viewer == Premium
	for name, extract := range metricFields {
		if !full {
			if _, ok := p.allowed[name]; !ok {
				continue
			}
		}
		out.Metrics[name] = extract(rec)
	}

	return out
}

// Allows reports whether the policy exposes the named metric to BASIC
// non-owner viewers.
func (p Policy) Allows(name string) bool {
	if _, known := metricFields[name]; !known {
		return false
	}
	_, ok := p.allowed[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

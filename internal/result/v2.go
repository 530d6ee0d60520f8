// Package result defines the versioned external game-output contract
// (GameResultV2), its strict validator, and the adapter that normalizes the
// engine's raw output into it.
package result

import "fmt"

// SchemaVersion is the only version this package emits or accepts.
const SchemaVersion = "2.0"

// Phase routes a game into its league accumulator container.
type Phase string

const (
	PhaseRegular   Phase = "regular"
	PhasePlayIn    Phase = "play_in"
	PhasePlayoffs  Phase = "playoffs"
	PhasePreseason Phase = "preseason"
)

// ValidPhase reports membership in the allowed phase set.
func ValidPhase(p Phase) bool {
	switch p {
	case PhaseRegular, PhasePlayIn, PhasePlayoffs, PhasePreseason:
		return true
	}
	return false
}

// GameContext identifies the scheduled matchup a raw result belongs to.
type GameContext struct {
	GameID     string `json:"game_id"`
	Date       string `json:"date"`
	SeasonID   string `json:"season_id"`
	Phase      Phase  `json:"phase"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
}

// Validate enforces the input contract on the context itself.
func (gc GameContext) Validate() error {
	switch {
	case gc.GameID == "":
		return &AdapterError{Msg: "game context missing game_id"}
	case gc.Date == "":
		return &AdapterError{Msg: "game context missing date"}
	case gc.SeasonID == "":
		return &AdapterError{Msg: "game context missing season_id"}
	case !ValidPhase(gc.Phase):
		return &AdapterError{Msg: fmt.Sprintf("game context phase %q not allowed", gc.Phase)}
	case gc.HomeTeamID == "" || gc.AwayTeamID == "":
		return &AdapterError{Msg: "game context missing team ids"}
	case gc.HomeTeamID == gc.AwayTeamID:
		return &AdapterError{Msg: fmt.Sprintf("home_team_id equals away_team_id (%s)", gc.HomeTeamID)}
	}
	return nil
}

// GameInfo is the identity block of a v2 result; all eight fields are
// required by the validator.
type GameInfo struct {
	GameID             string `json:"game_id"`
	Date               string `json:"date"`
	SeasonID           string `json:"season_id"`
	Phase              Phase  `json:"phase"`
	HomeTeamID         string `json:"home_team_id"`
	AwayTeamID         string `json:"away_team_id"`
	OvertimePeriods    int    `json:"overtime_periods"`
	PossessionsPerTeam int    `json:"possessions_per_team"`
}

// PlayerRow is one player's line inside a v2 team block.
type PlayerRow struct {
	PlayerID string             `json:"PlayerID"`
	TeamID   string             `json:"TeamID"`
	Name     string             `json:"Name,omitempty"`
	Stats    map[string]float64 `json:"stats"`
	Derived  map[string]float64 `json:"derived,omitempty"`
}

// TeamResult is one side's normalized output. Totals carries only the
// canonical counters; everything additive but non-canonical parks under
// ExtraTotals.
type TeamResult struct {
	Totals          map[string]float64            `json:"totals"`
	Breakdowns      map[string]map[string]float64 `json:"breakdowns"`
	Players         []PlayerRow                   `json:"players"`
	ExtraTotals     map[string]float64            `json:"extra_totals,omitempty"`
	ExtraBreakdowns map[string]map[string]float64 `json:"extra_breakdowns,omitempty"`
}

// GameStateV2 exposes the end-of-game counters, every map keyed by team_id.
type GameStateV2 struct {
	TeamFouls        map[string]int                `json:"team_fouls"`
	PlayerFouls      map[string]map[string]int     `json:"player_fouls"`
	Fatigue          map[string]map[string]float64 `json:"fatigue"`
	MinutesPlayedSec map[string]map[string]float64 `json:"minutes_played_sec"`
}

// Meta carries engine identity and the validation trail.
type Meta struct {
	EngineName    string   `json:"engine_name"`
	EngineVersion string   `json:"engine_version"`
	Era           string   `json:"era"`
	EraVersion    string   `json:"era_version"`
	ReplayToken   string   `json:"replay_token"`
	Validation    []string `json:"validation,omitempty"`
	InternalDebug []string `json:"internal_debug,omitempty"`
}

// GameResultV2 is the stable external contract, schema_version "2.0".
type GameResultV2 struct {
	SchemaVersion string                   `json:"schema_version"`
	Game          GameInfo                 `json:"game"`
	Final         map[string]int           `json:"final"`
	Teams         map[string]*TeamResult   `json:"teams"`
	GameState     GameStateV2              `json:"game_state"`
	Meta          Meta                     `json:"meta"`
	Debug         map[string]interface{}   `json:"debug,omitempty"`
	ReplayEvents  []map[string]interface{} `json:"replay_events,omitempty"`
}

// IsOvertime reports whether extra periods were played.
func (r *GameResultV2) IsOvertime() bool { return r.Game.OvertimePeriods > 0 }

// AdapterError reports a shape violation in a raw result or context. The
// adapter never rewrites IDs to paper over one.
type AdapterError struct {
	Msg string
}

func (e *AdapterError) Error() string {
	return "raw matchengine result invalid: " + e.Msg
}

// Canonical totals keys, in emission order.
var CanonicalTotals = []string{
	"PTS", "FGM", "FGA", "3PM", "3PA", "FTM", "FTA", "TOV", "ORB", "DRB",
	"Possessions", "AST", "PITP", "FastbreakPTS", "SecondChancePTS", "PointsOffTOV",
}

package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// EngineVersion stamps every raw result; bump on any behavior change.
const EngineVersion = "hoopsgm-engine/1.2.0"

// PlayerBoxRow is one player's finished line inside a raw result.
type PlayerBoxRow struct {
	PlayerID   string  `json:"player_id"`
	TeamID     string  `json:"team_id"`
	Name       string  `json:"name"`
	Box        BoxScore `json:"box"`
	MinutesSec float64 `json:"minutes_sec"`
	Energy     float64 `json:"energy"`
}

// RawTeamResult is one side's accumulated output.
type RawTeamResult struct {
	Totals         TeamTotals             `json:"totals"`
	ShotZones      map[ShotZone]int       `json:"shot_zones"`
	PossessionEnds map[EndClass]int       `json:"possession_ends"`
	ActionCounts   map[BaseAction]int     `json:"action_counts"`
	OutcomeCounts  map[string]int         `json:"outcome_counts"`
	PlayerBox      map[string]PlayerBoxRow `json:"player_box"`
	AvgFatigue     float64                `json:"avg_fatigue"`
}

// RawGameState exposes the final foul/fatigue/minutes maps, keyed by team_id.
type RawGameState struct {
	TeamFouls        map[string]int                `json:"team_fouls"`
	PlayerFouls      map[string]map[string]int     `json:"player_fouls"`
	Fatigue          map[string]map[string]float64 `json:"fatigue"`
	MinutesPlayedSec map[string]map[string]float64 `json:"minutes_played_sec"`
}

// RawMeta carries engine identity, era, and the validation trail.
type RawMeta struct {
	EngineVersion   string           `json:"engine_version"`
	Era             string           `json:"era"`
	EraVersion      string           `json:"era_version"`
	OvertimePeriods int              `json:"overtime_periods"`
	ReplayToken     string           `json:"replay_token"`
	Validation      ValidationReport `json:"validation"`
	InternalDebug   []string         `json:"internal_debug,omitempty"`
}

// RawGameResult is the engine's internal output contract, normalized later by
// the result adapter.
type RawGameResult struct {
	Meta               RawMeta                   `json:"meta"`
	PossessionsPerTeam int                       `json:"possessions_per_team"`
	Teams              map[string]*RawTeamResult `json:"teams"`
	GameState          RawGameState              `json:"game_state"`
	ReplayEvents       []map[string]interface{}  `json:"replay_events,omitempty"`
}

// replayToken checksums the finalized RNG stream plus the key inputs. Equal
// tokens imply equal raw results for the same engine version.
func replayToken(rng *rand.Rand, homeID, awayID, era string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%d|%d", homeID, awayID, era, rng.Int63(), rng.Int63())
	return fmt.Sprintf("rt-%016x", h.Sum64())
}

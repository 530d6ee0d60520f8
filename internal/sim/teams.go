package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jbickford/hoopsgm/internal/engine"
	"github.com/jbickford/hoopsgm/internal/ratings"
)

// PlayerPayload is one roster row in a team JSON file. Ratings carries raw
// scouting names ("Three-Point Shot", "Stamina", ...); Derived carries
// already-derived ability keys and wins when both are present.
type PlayerPayload struct {
	PID     string             `json:"pid"`
	Name    string             `json:"name"`
	Pos     string             `json:"pos"`
	Ratings map[string]float64 `json:"ratings,omitempty"`
	Derived map[string]float64 `json:"derived,omitempty"`
}

// TacticsPayload mirrors engine.Tactics with JSON-friendly keys.
type TacticsPayload struct {
	OffenseScheme string                        `json:"offense_scheme"`
	DefenseScheme string                        `json:"defense_scheme"`
	OffSharpness  float64                       `json:"off_sharpness"`
	OffStrength   float64                       `json:"off_strength"`
	DefSharpness  float64                       `json:"def_sharpness"`
	DefStrength   float64                       `json:"def_strength"`
	ActionWeights map[string]float64            `json:"action_weights,omitempty"`
	OutcomeGlobal map[string]float64            `json:"outcome_global,omitempty"`
	OutcomeByAct  map[string]map[string]float64 `json:"outcome_by_action,omitempty"`
	Context       map[string]float64            `json:"context,omitempty"`
}

// TeamPayload is the external team document consumed by the CLIs.
type TeamPayload struct {
	TeamID          string             `json:"team_id"`
	Roster          []PlayerPayload    `json:"roster"`
	Roles           map[string]string  `json:"roles,omitempty"`
	Tactics         TacticsPayload     `json:"tactics"`
	RotationTargets map[string]float64 `json:"rotation_targets_sec,omitempty"`
	RotationLocks   []string           `json:"rotation_locks,omitempty"`
}

// ToConfig converts the payload into the engine's team configuration.
func (tp *TeamPayload) ToConfig() engine.TeamConfig {
	cfg := engine.TeamConfig{
		TeamID:            tp.TeamID,
		RotationTargetSec: tp.RotationTargets,
		RotationLockPIDs:  tp.RotationLocks,
	}
	for _, pp := range tp.Roster {
		entry := engine.RosterEntry{PID: pp.PID, Name: pp.Name, Pos: pp.Pos, Raw: pp.Ratings}
		if len(pp.Derived) > 0 {
			entry.Derived = make(map[ratings.Ability]float64, len(pp.Derived))
			for k, v := range pp.Derived {
				entry.Derived[ratings.Ability(k)] = v
			}
			entry.Raw = nil
		}
		cfg.Roster = append(cfg.Roster, entry)
	}
	if len(tp.Roles) > 0 {
		cfg.Roles = make(map[engine.Role]string, len(tp.Roles))
		for role, pid := range tp.Roles {
			cfg.Roles[engine.Role(role)] = pid
		}
	}
	t := tp.Tactics
	cfg.Tactics = engine.Tactics{
		OffenseScheme: engine.OffenseScheme(t.OffenseScheme),
		DefenseScheme: engine.DefenseScheme(t.DefenseScheme),
		OffSharpness:  t.OffSharpness,
		OffStrength:   t.OffStrength,
		DefSharpness:  t.DefSharpness,
		DefStrength:   t.DefStrength,
		Context:       t.Context,
	}
	if len(t.ActionWeights) > 0 {
		cfg.Tactics.ActionWeightMult = make(map[engine.BaseAction]float64, len(t.ActionWeights))
		for k, v := range t.ActionWeights {
			cfg.Tactics.ActionWeightMult[engine.BaseAction(k)] = v
		}
	}
	cfg.Tactics.OutcomeGlobalMult = t.OutcomeGlobal
	if len(t.OutcomeByAct) > 0 {
		cfg.Tactics.OutcomeByActionMult = make(map[engine.BaseAction]map[string]float64, len(t.OutcomeByAct))
		for k, v := range t.OutcomeByAct {
			cfg.Tactics.OutcomeByActionMult[engine.BaseAction(k)] = v
		}
	}
	return cfg
}

// LoadTeamFile reads and converts a single team JSON document.
func LoadTeamFile(path string) (engine.TeamConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.TeamConfig{}, fmt.Errorf("failed to read team file %s: %w", path, err)
	}
	var tp TeamPayload
	if err := json.Unmarshal(data, &tp); err != nil {
		return engine.TeamConfig{}, fmt.Errorf("failed to parse team file %s: %w", path, err)
	}
	return tp.ToConfig(), nil
}

// DirTeamSource resolves team ids to <dir>/<team_id>.json payloads.
type DirTeamSource struct {
	Dir string
}

func (d DirTeamSource) TeamConfig(teamID string) (engine.TeamConfig, error) {
	return LoadTeamFile(filepath.Join(d.Dir, teamID+".json"))
}

// StaticTeamSource serves preloaded configs, used by tests and the seed CLI.
type StaticTeamSource map[string]engine.TeamConfig

func (s StaticTeamSource) TeamConfig(teamID string) (engine.TeamConfig, error) {
	cfg, ok := s[teamID]
	if !ok {
		return engine.TeamConfig{}, fmt.Errorf("unknown team %s", teamID)
	}
	return cfg, nil
}

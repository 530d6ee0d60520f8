package engine

import (
	"fmt"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// ValidationConfig controls how the orchestrator treats configuration
// problems. Strict refuses to simulate; permissive clamps and records a
// warning into the raw result's validation report.
type ValidationConfig struct {
	Strict bool

	// Tactic multiplier bounds enforced during sanitize.
	MultLo float64
	MultHi float64
}

// DefaultValidation matches the published multiplier window.
func DefaultValidation() ValidationConfig {
	return ValidationConfig{Strict: false, MultLo: 0.70, MultHi: 1.40}
}

// ValidationError reports a configuration problem (missing ability keys,
// unknown tactic keys, multipliers outside bounds) under strict validation.
type ValidationError struct {
	TeamID string
	Msg    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for team %s: %s", e.TeamID, e.Msg)
}

// ContractError reports an identity-contract violation (duplicate pid, pid on
// both teams, non-canonical team id). Always fatal.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string { return e.Msg }

// ValidationReport collects the warnings permissive mode swallows. It rides
// along in RawGameResult meta.
type ValidationReport struct {
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationReport) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// sanitizeTeam clamps tactic multipliers to bounds, rejects unknown scheme
// names, and verifies derived-ability coverage. Strict mode returns the first
// problem as an error; permissive mode repairs and records warnings.
func sanitizeTeam(ts *TeamState, cfg *GameConfig, vc ValidationConfig, report *ValidationReport) error {
	if _, ok := cfg.OffenseActionWeights[ts.Tactics.OffenseScheme]; !ok {
		if vc.Strict {
			return &ValidationError{TeamID: ts.TeamID, Msg: fmt.Sprintf("unknown offense scheme %q", ts.Tactics.OffenseScheme)}
		}
		report.warnf("team %s: unknown offense scheme %q, falling back to %s", ts.TeamID, ts.Tactics.OffenseScheme, OffSpreadHeavyPnR)
		ts.Tactics.OffenseScheme = OffSpreadHeavyPnR
	}
	if _, ok := cfg.DefenseRoleProfiles[ts.Tactics.DefenseScheme]; !ok {
		if vc.Strict {
			return &ValidationError{TeamID: ts.TeamID, Msg: fmt.Sprintf("unknown defense scheme %q", ts.Tactics.DefenseScheme)}
		}
		report.warnf("team %s: unknown defense scheme %q, falling back to %s", ts.TeamID, ts.Tactics.DefenseScheme, DefDrop)
		ts.Tactics.DefenseScheme = DefDrop
	}

	clampMult := func(label string, m float64) (float64, error) {
		if m >= vc.MultLo && m <= vc.MultHi {
			return m, nil
		}
		if vc.Strict {
			return m, &ValidationError{TeamID: ts.TeamID, Msg: fmt.Sprintf("%s multiplier %.3f outside [%.2f, %.2f]", label, m, vc.MultLo, vc.MultHi)}
		}
		clamped := clampF(m, vc.MultLo, vc.MultHi)
		report.warnf("team %s: %s multiplier %.3f clamped to %.3f", ts.TeamID, label, m, clamped)
		return clamped, nil
	}

	for action, m := range ts.Tactics.ActionWeightMult {
		v, err := clampMult(fmt.Sprintf("action %s", action), m)
		if err != nil {
			return err
		}
		ts.Tactics.ActionWeightMult[action] = v
	}
	for label, m := range ts.Tactics.OutcomeGlobalMult {
		v, err := clampMult(fmt.Sprintf("outcome %s", label), m)
		if err != nil {
			return err
		}
		ts.Tactics.OutcomeGlobalMult[label] = v
	}
	for action, mults := range ts.Tactics.OutcomeByActionMult {
		for label, m := range mults {
			v, err := clampMult(fmt.Sprintf("outcome %s under %s", label, action), m)
			if err != nil {
				return err
			}
			mults[label] = v
		}
	}

	for _, p := range ts.Roster {
		for _, a := range ratings.All {
			if _, ok := p.Abilities[a]; ok {
				continue
			}
			if vc.Strict {
				return &ValidationError{TeamID: ts.TeamID, Msg: fmt.Sprintf("player %s missing derived ability %s", p.PID, a)}
			}
			report.warnf("team %s: player %s missing ability %s, backfilled 50", ts.TeamID, p.PID, a)
			p.Abilities[a] = 50
		}
	}
	return nil
}

// validateIdentities enforces the hard ID contract before any possession is
// simulated.
func validateIdentities(home, away *TeamState) error {
	if home.TeamID == away.TeamID {
		return &ContractError{Msg: fmt.Sprintf("home and away share team_id %q", home.TeamID)}
	}
	for _, p := range home.Roster {
		if away.Player(p.PID) != nil {
			return &ContractError{Msg: fmt.Sprintf("player_id %s appears on both teams in a single game", p.PID)}
		}
	}
	return nil
}

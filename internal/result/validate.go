package result

import "fmt"

// Validate enforces the v2 contract. It is idempotent and read-only: calling
// it on an already-validated payload returns nil again.
func Validate(r *GameResultV2) error {
	if r == nil {
		return &AdapterError{Msg: "nil result"}
	}
	if r.SchemaVersion != SchemaVersion {
		return &AdapterError{Msg: fmt.Sprintf("schema_version %q, want %q", r.SchemaVersion, SchemaVersion)}
	}

	g := r.Game
	if g.GameID == "" || g.Date == "" || g.SeasonID == "" || g.HomeTeamID == "" || g.AwayTeamID == "" {
		return &AdapterError{Msg: "game block missing required keys"}
	}
	if !ValidPhase(g.Phase) {
		return &AdapterError{Msg: fmt.Sprintf("phase %q not in allowed set", g.Phase)}
	}
	if g.HomeTeamID == g.AwayTeamID {
		return &AdapterError{Msg: "home_team_id equals away_team_id"}
	}

	ids := []string{g.HomeTeamID, g.AwayTeamID}
	if err := exactTeamKeysInt(r.Final, ids, "final"); err != nil {
		return err
	}

	if len(r.Teams) != 2 {
		return &AdapterError{Msg: fmt.Sprintf("teams has %d entries, want 2", len(r.Teams))}
	}
	playerSets := map[string]map[string]bool{}
	for _, id := range ids {
		team, ok := r.Teams[id]
		if !ok {
			return &AdapterError{Msg: fmt.Sprintf("teams missing entry for %s", id)}
		}
		if team.Totals == nil {
			return &AdapterError{Msg: fmt.Sprintf("team %s missing totals", id)}
		}
		if _, ok := team.Totals["PTS"]; !ok {
			return &AdapterError{Msg: fmt.Sprintf("team %s totals missing PTS", id)}
		}
		if team.Players == nil {
			return &AdapterError{Msg: fmt.Sprintf("team %s missing players list", id)}
		}
		pids := map[string]bool{}
		for _, row := range team.Players {
			if row.PlayerID == "" {
				return &AdapterError{Msg: fmt.Sprintf("team %s has a player row without PlayerID", id)}
			}
			if row.TeamID != id {
				return &AdapterError{Msg: fmt.Sprintf("player row %s TeamID %q does not match team %s", row.PlayerID, row.TeamID, id)}
			}
			if pids[row.PlayerID] {
				return &AdapterError{Msg: fmt.Sprintf("team %s lists player %s twice", id, row.PlayerID)}
			}
			pids[row.PlayerID] = true
		}
		playerSets[id] = pids
	}
	for pid := range playerSets[g.HomeTeamID] {
		if playerSets[g.AwayTeamID][pid] {
			return &AdapterError{Msg: fmt.Sprintf("player %s appears on both teams", pid)}
		}
	}

	gsv := r.GameState
	if err := exactTeamKeysInt(gsv.TeamFouls, ids, "game_state.team_fouls"); err != nil {
		return err
	}
	for name, m := range map[string]map[string]map[string]int{"game_state.player_fouls": gsv.PlayerFouls} {
		if err := playerScopedInt(m, ids, playerSets, name); err != nil {
			return err
		}
	}
	for name, m := range map[string]map[string]map[string]float64{
		"game_state.fatigue":            gsv.Fatigue,
		"game_state.minutes_played_sec": gsv.MinutesPlayedSec,
	} {
		if err := playerScopedFloat(m, ids, playerSets, name); err != nil {
			return err
		}
	}

	for i, ev := range r.ReplayEvents {
		if ev == nil {
			return &AdapterError{Msg: fmt.Sprintf("replay_events[%d] is not an object", i)}
		}
	}
	return nil
}

func exactTeamKeysInt(m map[string]int, ids []string, name string) error {
	if len(m) != 2 {
		return &AdapterError{Msg: fmt.Sprintf("%s has %d keys, want 2", name, len(m))}
	}
	for _, id := range ids {
		if _, ok := m[id]; !ok {
			return &AdapterError{Msg: fmt.Sprintf("%s missing key %s", name, id)}
		}
	}
	return nil
}

func playerScopedInt(m map[string]map[string]int, ids []string, playerSets map[string]map[string]bool, name string) error {
	if len(m) != 2 {
		return &AdapterError{Msg: fmt.Sprintf("%s has %d keys, want 2", name, len(m))}
	}
	for _, id := range ids {
		inner, ok := m[id]
		if !ok {
			return &AdapterError{Msg: fmt.Sprintf("%s missing key %s", name, id)}
		}
		for pid := range inner {
			if !playerSets[id][pid] {
				return &AdapterError{Msg: fmt.Sprintf("%s[%s] references pid %s not in that team's player list", name, id, pid)}
			}
		}
	}
	return nil
}

func playerScopedFloat(m map[string]map[string]float64, ids []string, playerSets map[string]map[string]bool, name string) error {
	if len(m) != 2 {
		return &AdapterError{Msg: fmt.Sprintf("%s has %d keys, want 2", name, len(m))}
	}
	for _, id := range ids {
		inner, ok := m[id]
		if !ok {
			return &AdapterError{Msg: fmt.Sprintf("%s missing key %s", name, id)}
		}
		for pid := range inner {
			if !playerSets[id][pid] {
				return &AdapterError{Msg: fmt.Sprintf("%s[%s] references pid %s not in that team's player list", name, id, pid)}
			}
		}
	}
	return nil
}

package result

import (
	"fmt"
	"sort"

	"github.com/jbickford/hoopsgm/internal/engine"
)

// EngineName identifies the producing engine in meta.
const EngineName = "hoopsgm-matchengine"

// AdaptRaw normalizes a raw engine result into the v2 contract under a game
// context. Shape violations are fatal: the adapter never rewrites an ID.
func AdaptRaw(raw *engine.RawGameResult, gc GameContext) (*GameResultV2, error) {
	if err := gc.Validate(); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &AdapterError{Msg: "nil raw result"}
	}

	ids := []string{gc.HomeTeamID, gc.AwayTeamID}
	for _, side := range []string{"home", "away"} {
		if _, ok := raw.Teams[side]; ok {
			return nil, &AdapterError{Msg: fmt.Sprintf("teams map is side-keyed (%q); team-id keys required", side)}
		}
	}
	if len(raw.Teams) != 2 {
		return nil, &AdapterError{Msg: fmt.Sprintf("teams map has %d entries, want 2", len(raw.Teams))}
	}

	out := &GameResultV2{
		SchemaVersion: SchemaVersion,
		Game: GameInfo{
			GameID:             gc.GameID,
			Date:               gc.Date,
			SeasonID:           gc.SeasonID,
			Phase:              gc.Phase,
			HomeTeamID:         gc.HomeTeamID,
			AwayTeamID:         gc.AwayTeamID,
			OvertimePeriods:    raw.Meta.OvertimePeriods,
			PossessionsPerTeam: raw.PossessionsPerTeam,
		},
		Final: map[string]int{},
		Teams: map[string]*TeamResult{},
		GameState: GameStateV2{
			TeamFouls:        map[string]int{},
			PlayerFouls:      map[string]map[string]int{},
			Fatigue:          map[string]map[string]float64{},
			MinutesPlayedSec: map[string]map[string]float64{},
		},
		Meta: Meta{
			EngineName:    EngineName,
			EngineVersion: raw.Meta.EngineVersion,
			Era:           raw.Meta.Era,
			EraVersion:    raw.Meta.EraVersion,
			ReplayToken:   raw.Meta.ReplayToken,
			Validation:    raw.Meta.Validation.Warnings,
			InternalDebug: raw.Meta.InternalDebug,
		},
	}

	for _, id := range ids {
		rt, ok := raw.Teams[id]
		if !ok {
			return nil, &AdapterError{Msg: fmt.Sprintf("teams missing entry for %s", id)}
		}
		team, err := adaptTeam(id, rt)
		if err != nil {
			return nil, err
		}
		out.Teams[id] = team
		out.Final[id] = int(team.Totals["PTS"])
	}

	if err := adaptGameState(raw, gc, out); err != nil {
		return nil, err
	}

	if raw.ReplayEvents != nil {
		for i, ev := range raw.ReplayEvents {
			if ev == nil {
				return nil, &AdapterError{Msg: fmt.Sprintf("replay_events[%d] is not an object", i)}
			}
		}
		out.ReplayEvents = raw.ReplayEvents
	}

	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func adaptTeam(id string, rt *engine.RawTeamResult) (*TeamResult, error) {
	t := rt.Totals
	team := &TeamResult{
		Totals: map[string]float64{
			"PTS": float64(t.PTS), "FGM": float64(t.FGM), "FGA": float64(t.FGA),
			"3PM": float64(t.TPM), "3PA": float64(t.TPA),
			"FTM": float64(t.FTM), "FTA": float64(t.FTA),
			"TOV": float64(t.TOV), "ORB": float64(t.ORB), "DRB": float64(t.DRB),
			"Possessions": float64(t.Possessions), "AST": float64(t.AST),
			"PITP": float64(t.PITP), "FastbreakPTS": float64(t.FastbreakPTS),
			"SecondChancePTS": float64(t.SecondChancePTS), "PointsOffTOV": float64(t.PointsOffTOV),
		},
		Breakdowns: map[string]map[string]float64{
			"shot_zones":      {},
			"possession_ends": {},
			"action_counts":   {},
			"outcome_counts":  {},
		},
		// AvgFatigue accumulates as a sum league-side and is divided by games
		// when read.
		ExtraTotals: map[string]float64{"AvgFatigueSum": rt.AvgFatigue},
	}
	for zone, n := range rt.ShotZones {
		team.Breakdowns["shot_zones"][string(zone)] = float64(n)
	}
	for class, n := range rt.PossessionEnds {
		team.Breakdowns["possession_ends"][string(class)] = float64(n)
	}
	for action, n := range rt.ActionCounts {
		team.Breakdowns["action_counts"][string(action)] = float64(n)
	}
	for label, n := range rt.OutcomeCounts {
		team.Breakdowns["outcome_counts"][label] = float64(n)
	}

	pids := make([]string, 0, len(rt.PlayerBox))
	for pid := range rt.PlayerBox {
		pids = append(pids, pid)
	}
	sort.Strings(pids)
	for _, pid := range pids {
		row := rt.PlayerBox[pid]
		if row.TeamID != id {
			return nil, &AdapterError{Msg: fmt.Sprintf("PlayerBox row TeamID mismatch for %s: row says %q, team map says %q", pid, row.TeamID, id)}
		}
		if row.PlayerID != pid {
			return nil, &AdapterError{Msg: fmt.Sprintf("PlayerBox key %s names PlayerID %q", pid, row.PlayerID)}
		}
		b := row.Box
		pr := PlayerRow{
			PlayerID: pid,
			TeamID:   id,
			Name:     row.Name,
			Stats: map[string]float64{
				"PTS": float64(b.PTS), "FGM": float64(b.FGM), "FGA": float64(b.FGA),
				"3PM": float64(b.TPM), "3PA": float64(b.TPA),
				"FTM": float64(b.FTM), "FTA": float64(b.FTA),
				"ORB": float64(b.ORB), "DRB": float64(b.DRB),
				"AST": float64(b.AST), "STL": float64(b.STL), "BLK": float64(b.BLK),
				"TOV": float64(b.TOV), "PF": float64(b.PF),
				"MinutesSec": row.MinutesSec,
			},
			Derived: map[string]float64{},
		}
		if b.FGA > 0 {
			pr.Derived["FG%"] = float64(b.FGM) / float64(b.FGA)
		}
		if b.TPA > 0 {
			pr.Derived["3P%"] = float64(b.TPM) / float64(b.TPA)
		}
		if b.FTA > 0 {
			pr.Derived["FT%"] = float64(b.FTM) / float64(b.FTA)
		}
		team.Players = append(team.Players, pr)
	}
	return team, nil
}

// adaptGameState accepts either team-id-keyed maps or the {home, away}
// side-keyed variant some engine builds emit, mapping sides onto the two
// canonical ids. Anything else is rejected.
func adaptGameState(raw *engine.RawGameResult, gc GameContext, out *GameResultV2) error {
	resolveKey := func(k, name string) (string, error) {
		switch k {
		case gc.HomeTeamID, gc.AwayTeamID:
			return k, nil
		case "home":
			return gc.HomeTeamID, nil
		case "away":
			return gc.AwayTeamID, nil
		}
		return "", &AdapterError{Msg: fmt.Sprintf("%s keyed by %q, want team ids or home/away", name, k)}
	}

	playerSet := map[string]map[string]bool{}
	for id, rt := range raw.Teams {
		set := map[string]bool{}
		for pid := range rt.PlayerBox {
			set[pid] = true
		}
		playerSet[id] = set
	}
	checkPids := func(id, name string, pids func(yield func(string))) error {
		var err error
		pids(func(pid string) {
			if err == nil && !playerSet[id][pid] {
				err = &AdapterError{Msg: fmt.Sprintf("%s[%s] references pid %q not in that team's PlayerBox", name, id, pid)}
			}
		})
		return err
	}

	if len(raw.GameState.TeamFouls) != 2 {
		return &AdapterError{Msg: fmt.Sprintf("game_state.team_fouls has %d keys, want 2", len(raw.GameState.TeamFouls))}
	}
	for k, v := range raw.GameState.TeamFouls {
		id, err := resolveKey(k, "game_state.team_fouls")
		if err != nil {
			return err
		}
		out.GameState.TeamFouls[id] = v
	}

	if len(raw.GameState.PlayerFouls) != 2 {
		return &AdapterError{Msg: fmt.Sprintf("game_state.player_fouls has %d keys, want 2", len(raw.GameState.PlayerFouls))}
	}
	for k, inner := range raw.GameState.PlayerFouls {
		id, err := resolveKey(k, "game_state.player_fouls")
		if err != nil {
			return err
		}
		if err := checkPids(id, "game_state.player_fouls", func(yield func(string)) {
			for pid := range inner {
				yield(pid)
			}
		}); err != nil {
			return err
		}
		m := make(map[string]int, len(inner))
		for pid, n := range inner {
			m[pid] = n
		}
		out.GameState.PlayerFouls[id] = m
	}

	floatMaps := []struct {
		name string
		src  map[string]map[string]float64
		dst  map[string]map[string]float64
	}{
		{"game_state.fatigue", raw.GameState.Fatigue, out.GameState.Fatigue},
		{"game_state.minutes_played_sec", raw.GameState.MinutesPlayedSec, out.GameState.MinutesPlayedSec},
	}
	for _, fm := range floatMaps {
		if len(fm.src) != 2 {
			return &AdapterError{Msg: fmt.Sprintf("%s has %d keys, want 2", fm.name, len(fm.src))}
		}
		for k, inner := range fm.src {
			id, err := resolveKey(k, fm.name)
			if err != nil {
				return err
			}
			if err := checkPids(id, fm.name, func(yield func(string)) {
				for pid := range inner {
					yield(pid)
				}
			}); err != nil {
				return err
			}
			m := make(map[string]float64, len(inner))
			for pid, v := range inner {
				m[pid] = v
			}
			fm.dst[id] = m
		}
	}
	return nil
}

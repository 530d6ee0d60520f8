package result

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbickford/hoopsgm/internal/engine"
)

func teamConfig(teamID string, talent float64) engine.TeamConfig {
	positions := []string{"PG", "SG", "SF", "PF", "C", "PG", "SF", "C"}
	roster := make([]engine.RosterEntry, 0, len(positions))
	for i, pos := range positions {
		base := talent - float64(i)*3
		roster = append(roster, engine.RosterEntry{
			PID:  fmt.Sprintf("%s_%02d", teamID, i+1),
			Name: fmt.Sprintf("%s Player %d", teamID, i+1),
			Pos:  pos,
			Raw: map[string]float64{
				"Three-Point Shot":  base + 3,
				"Mid-Range Shot":    base,
				"Layup":             base + 2,
				"Ball Handle":       base - 2,
				"Passing Vision":    base,
				"Interior Defense":  base - 3,
				"Perimeter Defense": base - 1,
				"Defensive Rebound": base,
				"Stamina":           base + 5,
			},
		})
	}
	return engine.TeamConfig{
		TeamID: teamID,
		Roster: roster,
		Tactics: engine.Tactics{
			OffenseScheme: engine.OffSpreadHeavyPnR,
			DefenseScheme: engine.DefDrop,
			OffSharpness:  0.5, OffStrength: 0.5,
			DefSharpness: 0.5, DefStrength: 0.5,
		},
	}
}

func simulateRaw(t *testing.T, seed int64) *engine.RawGameResult {
	t.Helper()
	home, err := engine.NewTeamState(teamConfig("BOS", 78))
	require.NoError(t, err)
	away, err := engine.NewTeamState(teamConfig("LAL", 74))
	require.NoError(t, err)
	raw, err := engine.SimulateGame(rand.New(rand.NewSource(seed)), home, away, "default")
	require.NoError(t, err)
	return raw
}

func testContext() GameContext {
	return GameContext{
		GameID:     "game_0001",
		Date:       "2025-11-01",
		SeasonID:   "2025-26",
		Phase:      PhaseRegular,
		HomeTeamID: "BOS",
		AwayTeamID: "LAL",
	}
}

func TestAdaptRaw_RoundTrip(t *testing.T) {
	raw := simulateRaw(t, 11)
	out, err := AdaptRaw(raw, testContext())
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, "game_0001", out.Game.GameID)
	assert.Equal(t, "2025-26", out.Game.SeasonID)
	assert.Equal(t, PhaseRegular, out.Game.Phase)
	assert.Equal(t, "BOS", out.Game.HomeTeamID)
	assert.Equal(t, "LAL", out.Game.AwayTeamID)
	assert.Equal(t, raw.Meta.OvertimePeriods, out.Game.OvertimePeriods)

	require.Len(t, out.Teams, 2)
	for _, id := range []string{"BOS", "LAL"} {
		team := out.Teams[id]
		require.NotNil(t, team, "missing team %s", id)
		assert.Equal(t, out.Final[id], int(team.Totals["PTS"]))
		assert.Len(t, team.Players, 8)
		for _, row := range team.Players {
			assert.Equal(t, id, row.TeamID)
			assert.LessOrEqual(t, row.Stats["FGM"], row.Stats["FGA"])
		}
		assert.NotEmpty(t, team.Breakdowns["possession_ends"])
	}

	assert.Equal(t, EngineName, out.Meta.EngineName)
	assert.Equal(t, raw.Meta.ReplayToken, out.Meta.ReplayToken)
	assert.Contains(t, out.GameState.TeamFouls, "BOS")
	assert.Contains(t, out.GameState.TeamFouls, "LAL")

	// The validator is read-only and idempotent.
	require.NoError(t, Validate(out))
	require.NoError(t, Validate(out))
}

func TestAdaptRaw_PlayerBoxTeamIDMismatch(t *testing.T) {
	raw := simulateRaw(t, 3)
	row := raw.Teams["BOS"].PlayerBox["BOS_01"]
	row.TeamID = "LAL"
	raw.Teams["BOS"].PlayerBox["BOS_01"] = row

	_, err := AdaptRaw(raw, testContext())
	require.Error(t, err)
	var ae *AdapterError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, err.Error(), "PlayerBox row TeamID mismatch")
	assert.Contains(t, err.Error(), "raw matchengine result invalid: ")
}

func TestAdaptRaw_PlayerBoxKeyMismatch(t *testing.T) {
	raw := simulateRaw(t, 3)
	row := raw.Teams["BOS"].PlayerBox["BOS_01"]
	row.PlayerID = "BOS_99"
	raw.Teams["BOS"].PlayerBox["BOS_01"] = row

	_, err := AdaptRaw(raw, testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "names PlayerID")
}

func TestAdaptRaw_SideKeyedTeamsRejected(t *testing.T) {
	raw := simulateRaw(t, 5)
	raw.Teams["home"] = raw.Teams["BOS"]
	raw.Teams["away"] = raw.Teams["LAL"]
	delete(raw.Teams, "BOS")
	delete(raw.Teams, "LAL")

	_, err := AdaptRaw(raw, testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "side-keyed")
}

func TestAdaptRaw_SideKeyedGameStateAccepted(t *testing.T) {
	raw := simulateRaw(t, 5)
	rekey := func(id string) string {
		if id == "BOS" {
			return "home"
		}
		return "away"
	}
	gs := &raw.GameState
	for _, id := range []string{"BOS", "LAL"} {
		side := rekey(id)
		gs.TeamFouls[side] = gs.TeamFouls[id]
		gs.PlayerFouls[side] = gs.PlayerFouls[id]
		gs.Fatigue[side] = gs.Fatigue[id]
		gs.MinutesPlayedSec[side] = gs.MinutesPlayedSec[id]
		delete(gs.TeamFouls, id)
		delete(gs.PlayerFouls, id)
		delete(gs.Fatigue, id)
		delete(gs.MinutesPlayedSec, id)
	}

	out, err := AdaptRaw(raw, testContext())
	require.NoError(t, err)
	assert.Contains(t, out.GameState.TeamFouls, "BOS")
	assert.Contains(t, out.GameState.TeamFouls, "LAL")
	assert.NotContains(t, out.GameState.TeamFouls, "home")
}

func TestAdaptRaw_UnknownGameStateKeyRejected(t *testing.T) {
	raw := simulateRaw(t, 5)
	raw.GameState.TeamFouls["NYK"] = raw.GameState.TeamFouls["BOS"]
	delete(raw.GameState.TeamFouls, "BOS")

	_, err := AdaptRaw(raw, testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want team ids or home/away")
}

func TestAdaptRaw_MissingTeamEntry(t *testing.T) {
	raw := simulateRaw(t, 5)
	delete(raw.Teams, "LAL")
	_, err := AdaptRaw(raw, testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teams map has 1 entries")
}

func TestAdaptRaw_NilRaw(t *testing.T) {
	_, err := AdaptRaw(nil, testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil raw result")
}

func TestGameContextValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*GameContext)
		wantErr string
	}{
		{"valid", func(gc *GameContext) {}, ""},
		{"missing game id", func(gc *GameContext) { gc.GameID = "" }, "missing game_id"},
		{"missing date", func(gc *GameContext) { gc.Date = "" }, "missing date"},
		{"missing season", func(gc *GameContext) { gc.SeasonID = "" }, "missing season_id"},
		{"bad phase", func(gc *GameContext) { gc.Phase = "exhibition" }, "not allowed"},
		{"missing teams", func(gc *GameContext) { gc.HomeTeamID = "" }, "missing team ids"},
		{"self matchup", func(gc *GameContext) { gc.AwayTeamID = "BOS" }, "home_team_id equals away_team_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gc := testContext()
			tc.mutate(&gc)
			err := gc.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_CatchesTampering(t *testing.T) {
	raw := simulateRaw(t, 17)
	out, err := AdaptRaw(raw, testContext())
	require.NoError(t, err)

	t.Run("schema version", func(t *testing.T) {
		bad := *out
		bad.SchemaVersion = "1.0"
		err := Validate(&bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `schema_version "1.0"`)
	})

	t.Run("player on both teams", func(t *testing.T) {
		bad := *out
		teams := map[string]*TeamResult{}
		for id, tr := range out.Teams {
			cp := *tr
			cp.Players = append([]PlayerRow(nil), tr.Players...)
			teams[id] = &cp
		}
		bad.Teams = teams
		shared := teams["BOS"].Players[0]
		shared.TeamID = "LAL"
		teams["LAL"].Players = append(teams["LAL"].Players, shared)
		err := Validate(&bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "appears on both teams")
	})

	t.Run("foul map references unknown pid", func(t *testing.T) {
		bad := *out
		fouls := map[string]map[string]int{}
		for id, inner := range out.GameState.PlayerFouls {
			m := map[string]int{}
			for pid, n := range inner {
				m[pid] = n
			}
			fouls[id] = m
		}
		fouls["BOS"]["ghost_01"] = 2
		bad.GameState.PlayerFouls = fouls
		err := Validate(&bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not in that team's player list")
	})
}

func TestValidPhase(t *testing.T) {
	for _, p := range []Phase{PhaseRegular, PhasePlayIn, PhasePlayoffs, PhasePreseason} {
		assert.True(t, ValidPhase(p))
	}
	assert.False(t, ValidPhase("friendly"))
}

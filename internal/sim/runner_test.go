package sim

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbickford/hoopsgm/internal/engine"
	"github.com/jbickford/hoopsgm/internal/league"
	"github.com/jbickford/hoopsgm/internal/result"
)

func runnerTeamConfig(teamID string, talent float64) engine.TeamConfig {
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

func seededLeague(t *testing.T) *league.State {
	t.Helper()
	st := league.NewState()
	entries := []*league.ScheduleEntry{
		{GameID: "g1", Date: "2025-11-01", SeasonID: "2025-26", Phase: result.PhaseRegular, HomeTeamID: "BOS", AwayTeamID: "LAL"},
		{GameID: "g2", Date: "2025-11-01", SeasonID: "2025-26", Phase: result.PhaseRegular, HomeTeamID: "NYK", AwayTeamID: "MIA"},
		{GameID: "g3", Date: "2025-11-02", SeasonID: "2025-26", Phase: result.PhaseRegular, HomeTeamID: "LAL", AwayTeamID: "NYK"},
	}
	for _, e := range entries {
		require.NoError(t, st.AddScheduledGame(e))
	}
	return st
}

func testSource() StaticTeamSource {
	return StaticTeamSource{
		"BOS": runnerTeamConfig("BOS", 82),
		"LAL": runnerTeamConfig("LAL", 79),
		"NYK": runnerTeamConfig("NYK", 77),
		"MIA": runnerTeamConfig("MIA", 75),
	}
}

func TestGameSeed(t *testing.T) {
	assert.Equal(t, GameSeed(99, "g1"), GameSeed(99, "g1"))
	assert.NotEqual(t, GameSeed(99, "g1"), GameSeed(99, "g2"))
	assert.NotEqual(t, GameSeed(99, "g1"), GameSeed(100, "g1"))
	for _, id := range []string{"g1", "g2", "game_with_a_longer_id"} {
		assert.GreaterOrEqual(t, GameSeed(7, id), int64(0))
	}
}

func TestRunDate_SimulatesAndIngests(t *testing.T) {
	st := seededLeague(t)
	r := NewRunner(st, testSource(), "default", 99, 2)

	played, err := r.RunDate(context.Background(), "2025-11-01")
	require.NoError(t, err)
	assert.Equal(t, 2, played)

	for _, gameID := range []string{"g1", "g2"} {
		v2, ok := st.GameResult(gameID)
		require.True(t, ok, "game %s not ingested", gameID)
		assert.Equal(t, result.SchemaVersion, v2.SchemaVersion)
	}
	rows := st.ScheduleByDate("2025-11-01")
	for _, row := range rows {
		assert.Equal(t, "final", row.Status)
	}

	// The other date is untouched.
	_, ok := st.GameResult("g3")
	assert.False(t, ok)

	bos, ok := st.TeamStats("BOS")
	require.True(t, ok)
	assert.Equal(t, 1, bos.Games)
}

func TestRunDate_ReplaysIdentically(t *testing.T) {
	run := func() (string, string) {
		st := seededLeague(t)
		r := NewRunner(st, testSource(), "default", 1234, 4)
		_, err := r.RunDate(context.Background(), "2025-11-01")
		require.NoError(t, err)
		v1, ok := st.GameResult("g1")
		require.True(t, ok)
		v2, ok := st.GameResult("g2")
		require.True(t, ok)
		return v1.Meta.ReplayToken, v2.Meta.ReplayToken
	}

	a1, a2 := run()
	b1, b2 := run()
	assert.Equal(t, a1, b1, "replay tokens must not depend on worker scheduling")
	assert.Equal(t, a2, b2)
}

func TestRunDate_SkipsFinalGames(t *testing.T) {
	st := seededLeague(t)
	r := NewRunner(st, testSource(), "default", 99, 2)

	played, err := r.RunDate(context.Background(), "2025-11-01")
	require.NoError(t, err)
	require.Equal(t, 2, played)

	played, err = r.RunDate(context.Background(), "2025-11-01")
	require.NoError(t, err)
	assert.Zero(t, played, "finalized games must not replay")

	played, err = r.RunDate(context.Background(), "2025-12-25")
	require.NoError(t, err)
	assert.Zero(t, played, "empty dates are a no-op")
}

func TestRunDate_UnknownTeamFails(t *testing.T) {
	st := league.NewState()
	require.NoError(t, st.AddScheduledGame(&league.ScheduleEntry{
		GameID: "g1", Date: "2025-11-01", SeasonID: "2025-26",
		Phase: result.PhaseRegular, HomeTeamID: "SEA", AwayTeamID: "LAL",
	}))
	r := NewRunner(st, testSource(), "default", 99, 2)

	_, err := r.RunDate(context.Background(), "2025-11-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown team SEA")
}

func TestStaticTeamSource(t *testing.T) {
	src := testSource()
	cfg, err := src.TeamConfig("BOS")
	require.NoError(t, err)
	assert.Equal(t, "BOS", cfg.TeamID)

	_, err = src.TeamConfig("VAN")
	require.Error(t, err)
}

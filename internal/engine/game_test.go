package engine

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playTestGame simulates one game with fresh team states so callers can sweep
// seeds without sharing mutable rosters.
func playTestGame(t *testing.T, seed int64) (*RawGameResult, *TeamState, *TeamState) {
	t.Helper()
	home := mustTeam(t, testTeamConfig("BOS", 84, OffSpreadHeavyPnR, DefDrop))
	away := mustTeam(t, testTeamConfig("LAL", 80, OffDriveKick, DefSwitchEverything))
	rng := rand.New(rand.NewSource(seed))
	raw, err := SimulateGame(rng, home, away, "default")
	require.NoError(t, err)
	return raw, home, away
}

func checkGameInvariants(t *testing.T, raw *RawGameResult, home, away *TeamState) {
	t.Helper()

	for _, ts := range []*TeamState{home, away} {
		expectedPTS := 0
		for _, p := range ts.Roster {
			b := p.Box
			assert.LessOrEqual(t, b.FTM, b.FTA, "player %s FTM > FTA", p.PID)
			assert.LessOrEqual(t, b.FGM, b.FGA, "player %s FGM > FGA", p.PID)
			assert.LessOrEqual(t, b.TPM, b.TPA, "player %s 3PM > 3PA", p.PID)
			assert.LessOrEqual(t, b.TPA, b.FGA, "player %s 3PA > FGA", p.PID)
			expectedPTS += b.FTM + 2*(b.FGM-b.TPM) + 3*b.TPM
		}
		assert.Equal(t, expectedPTS, ts.Totals.PTS, "team %s points do not reconcile with player boxes", ts.TeamID)

		endSum := 0
		for _, n := range ts.PossessionEnds {
			endSum += n
		}
		assert.Equal(t, ts.Totals.Possessions, endSum, "team %s possession-end counts do not sum to possessions", ts.TeamID)
	}

	// Possession balance: each period hands the starter at most one extra
	// possession, and regulation alternates the starting side.
	diff := home.Totals.Possessions - away.Totals.Possessions
	maxDiff := 2 + raw.Meta.OvertimePeriods
	assert.LessOrEqual(t, int(math.Abs(float64(diff))), maxDiff, "possession counts diverged")

	gameSeconds := 4*720.0 + float64(raw.Meta.OvertimePeriods)*300.0
	for teamID, minutes := range raw.GameState.MinutesPlayedSec {
		for pid, sec := range minutes {
			assert.LessOrEqualf(t, sec, gameSeconds+1e-6, "player %s on %s played more than the game length", pid, teamID)
		}
	}

	for _, st := range []struct {
		side Side
		ts   *TeamState
	}{{SideHome, home}, {SideAway, away}} {
		sum := 0
		for _, n := range raw.GameState.PlayerFouls[st.ts.TeamID] {
			sum += n
		}
		assert.Equal(t, raw.GameState.TeamFouls[st.ts.TeamID], sum, "team fouls do not equal the player foul sum for %s", st.ts.TeamID)
	}
}

func TestSimulateGame_PlainMatchup(t *testing.T) {
	raw, home, away := playTestGame(t, 7)

	assert.GreaterOrEqual(t, home.Totals.PTS, 60, "home score implausibly low")
	assert.LessOrEqual(t, home.Totals.PTS, 180, "home score implausibly high")
	assert.GreaterOrEqual(t, away.Totals.PTS, 60, "away score implausibly low")
	assert.LessOrEqual(t, away.Totals.PTS, 180, "away score implausibly high")

	assert.GreaterOrEqual(t, home.Totals.Possessions, 65, "pace implausibly slow")
	assert.LessOrEqual(t, home.Totals.Possessions, 140, "pace implausibly fast")

	assert.NotEmpty(t, raw.Meta.ReplayToken)
	assert.Equal(t, EngineVersion, raw.Meta.EngineVersion)
	assert.Equal(t, "default", raw.Meta.Era)
	assert.Len(t, raw.Teams, 2)

	checkGameInvariants(t, raw, home, away)
}

func TestSimulateGame_InvariantsAcrossSeeds(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		raw, home, away := playTestGame(t, seed)
		checkGameInvariants(t, raw, home, away)
	}
}

func TestSimulateGame_Deterministic(t *testing.T) {
	run := func() ([]byte, int, int) {
		home := mustTeam(t, testTeamConfig("BOS", 84, OffSpreadHeavyPnR, DefDrop))
		away := mustTeam(t, testTeamConfig("LAL", 80, OffDriveKick, DefSwitchEverything))
		rng := rand.New(rand.NewSource(42))
		raw, err := SimulateGame(rng, home, away, "default")
		require.NoError(t, err)
		data, err := json.Marshal(raw)
		require.NoError(t, err)
		return data, home.Totals.PTS, away.Totals.PTS
	}

	data1, h1, a1 := run()
	data2, h2, a2 := run()
	assert.Equal(t, h1, h2)
	assert.Equal(t, a1, a2)
	assert.JSONEq(t, string(data1), string(data2), "identical seeds must replay identically")
}

func TestSimulateGame_OvertimeBreaksTies(t *testing.T) {
	sawOvertime := false
	for seed := int64(1); seed <= 200 && !sawOvertime; seed++ {
		raw, home, away := playTestGame(t, seed)
		if raw.Meta.OvertimePeriods == 0 {
			assert.NotEqual(t, home.Totals.PTS, away.Totals.PTS, "regulation game left tied (seed %d)", seed)
			continue
		}
		sawOvertime = true
		assert.NotEqual(t, home.Totals.PTS, away.Totals.PTS, "overtime must break the tie (seed %d)", seed)
		assert.GreaterOrEqual(t, raw.Meta.OvertimePeriods, 1)
	}
	assert.True(t, sawOvertime, "expected at least one overtime game across 200 seeds")
}

func TestSimulateGame_FoulOutZeroesEnergy(t *testing.T) {
	// Sweep seeds until somebody fouls out, then check the bookkeeping.
	sawFoulOut := false
	for seed := int64(1); seed <= 120 && !sawFoulOut; seed++ {
		raw, home, away := playTestGame(t, seed)
		for _, ts := range []*TeamState{home, away} {
			for pid, n := range raw.GameState.PlayerFouls[ts.TeamID] {
				require.LessOrEqual(t, n, 6, "player %s exceeded the foul limit", pid)
				if n == 6 {
					sawFoulOut = true
					assert.Zero(t, ts.Player(pid).Energy, "fouled-out player %s retains energy", pid)
				}
			}
		}
	}
	assert.True(t, sawFoulOut, "expected at least one foul-out across 120 seeds")
}

func TestSimulateGame_SharedPIDRefused(t *testing.T) {
	homeCfg := testTeamConfig("BOS", 84, OffSpreadHeavyPnR, DefDrop)
	awayCfg := testTeamConfig("LAL", 80, OffDriveKick, DefDrop)
	homeCfg.Roster[3].PID = "player_dup"
	awayCfg.Roster[7].PID = "player_dup"

	home := mustTeam(t, homeCfg)
	away := mustTeam(t, awayCfg)

	_, err := SimulateGame(rand.New(rand.NewSource(1)), home, away, "default")
	require.Error(t, err)
	var ce *ContractError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), "player_id player_dup appears on both teams in a single game")
}

func TestSimulateGame_StrictValidationRefusesUnknownScheme(t *testing.T) {
	cfg := testTeamConfig("BOS", 84, "Seven_Seconds_Or_Less", DefDrop)
	home := mustTeam(t, cfg)
	away := mustTeam(t, testTeamConfig("LAL", 80, OffDriveKick, DefDrop))

	vc := DefaultValidation()
	vc.Strict = true
	_, err := SimulateGame(rand.New(rand.NewSource(1)), home, away, "default", WithValidation(vc))
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "BOS", ve.TeamID)
}

func TestSimulateGame_PermissiveValidationClampsAndWarns(t *testing.T) {
	cfg := testTeamConfig("BOS", 84, OffSpreadHeavyPnR, DefDrop)
	cfg.Tactics.ActionWeightMult = map[BaseAction]float64{ActionPnR: 2.5}
	home := mustTeam(t, cfg)
	away := mustTeam(t, testTeamConfig("LAL", 80, OffDriveKick, DefDrop))

	raw, err := SimulateGame(rand.New(rand.NewSource(1)), home, away, "default")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Meta.Validation.Warnings)
	assert.InDelta(t, 1.40, home.Tactics.ActionWeightMult[ActionPnR], 1e-9, "out-of-bounds multiplier should clamp to the upper bound")
}

func TestSimulateGame_UnknownEra(t *testing.T) {
	home := mustTeam(t, testTeamConfig("BOS", 84, OffSpreadHeavyPnR, DefDrop))
	away := mustTeam(t, testTeamConfig("LAL", 80, OffDriveKick, DefDrop))
	_, err := SimulateGame(rand.New(rand.NewSource(1)), home, away, "steam_age")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown era")
}

func TestPeriodStartSide(t *testing.T) {
	assert.Equal(t, SideHome, periodStartSide(1))
	assert.Equal(t, SideAway, periodStartSide(2))
	assert.Equal(t, SideHome, periodStartSide(3))
	assert.Equal(t, SideAway, periodStartSide(4))
}

func BenchmarkSimulateGame(b *testing.B) {
	homeCfg := testTeamConfig("BOS", 84, OffSpreadHeavyPnR, DefDrop)
	awayCfg := testTeamConfig("LAL", 80, OffDriveKick, DefSwitchEverything)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		home, _ := NewTeamState(homeCfg)
		away, _ := NewTeamState(awayCfg)
		rng := rand.New(rand.NewSource(int64(i)))
		if _, err := SimulateGame(rng, home, away, "default"); err != nil {
			b.Fatal(err)
		}
	}
}

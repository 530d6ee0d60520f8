package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

func TestNewTeamState_RejectsBadTeamID(t *testing.T) {
	cfg := testTeamConfig("BOSTON", 80, OffSpreadHeavyPnR, DefDrop)
	_, err := NewTeamState(cfg)
	require.Error(t, err)
	var ce *ContractError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), "not a canonical 3-letter code")
}

func TestNewTeamState_RejectsShortRoster(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	cfg.Roster = cfg.Roster[:4]
	_, err := NewTeamState(cfg)
	require.Error(t, err)
	var ce *ContractError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), "need at least 5")
}

func TestNewTeamState_RejectsDuplicatePID(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	cfg.Roster[1].PID = cfg.Roster[0].PID
	_, err := NewTeamState(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate player_id")
}

func TestNewTeamState_RejectsEmptyPID(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	cfg.Roster[2].PID = ""
	_, err := NewTeamState(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty pid")
}

func TestNewTeamState_RejectsUnknownRole(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	cfg.Roles = map[Role]string{Role("Chaos_Agent"): cfg.Roster[0].PID}
	_, err := NewTeamState(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestNewTeamState_RejectsRoleForMissingPlayer(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	cfg.Roles = map[Role]string{RoleInitiatorPrimary: "ghost_01"}
	_, err := NewTeamState(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not on team")
}

func TestNewTeamState_AutoAssignsEveryRole(t *testing.T) {
	ts := mustTeam(t, testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop))
	for _, role := range AllRoles {
		pid := ts.Roles[role]
		require.NotEmpty(t, pid, "role %s left unassigned", role)
		assert.NotNil(t, ts.Player(pid), "role %s names pid %q not on the roster", role, pid)
	}
	assert.NotEqual(t, ts.Roles[RoleInitiatorPrimary], ts.Roles[RoleInitiatorSecondary],
		"the two initiator roles must be held by different players")
}

func TestNewTeamState_PinnedRolesSurviveAutoAssignment(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	benchPID := cfg.Roster[9].PID
	cfg.Roles = map[Role]string{RolePostHub: benchPID}
	ts := mustTeam(t, cfg)
	assert.Equal(t, benchPID, ts.Roles[RolePostHub])
}

func TestNewTeamState_RotationTargetsCoverRegulationMinutes(t *testing.T) {
	ts := mustTeam(t, testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop))
	sum := 0.0
	for _, p := range ts.Roster {
		sec, ok := ts.RotationTargetSec[p.PID]
		require.True(t, ok, "player %s has no rotation target", p.PID)
		sum += sec
	}
	// Ten defaults split the 240 player-minutes of a regulation game.
	assert.InDelta(t, 14400, sum, 1e-9)
}

func TestNewTeamState_ExplicitRotationTargetsWin(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	star := cfg.Roster[0].PID
	cfg.RotationTargetSec = map[string]float64{star: 2220}
	ts := mustTeam(t, cfg)
	assert.Equal(t, 2220.0, ts.RotationTargetSec[star])
}

func TestNewTeamState_RotationLocks(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	cfg.RotationLockPIDs = []string{cfg.Roster[0].PID, "nobody_here"}
	ts := mustTeam(t, cfg)
	assert.True(t, ts.RotationLocks[cfg.Roster[0].PID])
	assert.False(t, ts.RotationLocks["nobody_here"], "locks for unknown pids are dropped")
}

func TestNewTeamState_DerivedAbilitiesWinOverRaw(t *testing.T) {
	cfg := testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop)
	derived := map[ratings.Ability]float64{}
	for _, a := range ratings.All {
		derived[a] = 63
	}
	cfg.Roster[0].Derived = derived
	ts := mustTeam(t, cfg)
	p := ts.Player(cfg.Roster[0].PID)
	require.NotNil(t, p)
	assert.Equal(t, 63.0, p.Ability(ratings.Shot3CS), "pre-derived abilities bypass scouting derivation")
}

func TestNewTeamState_RawRatingsAreDerived(t *testing.T) {
	ts := mustTeam(t, testTeamConfig("BOS", 80, OffSpreadHeavyPnR, DefDrop))
	p := ts.Roster[0]
	require.NotEmpty(t, p.Abilities)
	for _, a := range ratings.All {
		v := p.Ability(a)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	assert.Equal(t, 1.0, p.Energy, "players start fresh")
}

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, SideAway, SideHome.Opponent())
	assert.Equal(t, SideHome, SideAway.Opponent())
}

func TestProfileScore(t *testing.T) {
	p := Profile{ratings.DefRim: 0.6, ratings.DefPost: 0.4}
	abilities := map[ratings.Ability]float64{ratings.DefRim: 80}
	// Missing abilities contribute the neutral 50.
	assert.InDelta(t, 0.6*80+0.4*50, p.Score(abilities), 1e-9)
	assert.Equal(t, 50.0, Profile{}.Score(abilities))
}

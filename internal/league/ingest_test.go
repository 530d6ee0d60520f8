package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbickford/hoopsgm/internal/result"
)

// makeV2 hand-builds a minimal contract-complete result so ingest tests don't
// have to run the match engine.
func makeV2(gameID, date, seasonID string, phase result.Phase, homeID, awayID string, homePts, awayPts int) *result.GameResultV2 {
	team := func(id string, pts int) *result.TeamResult {
		pids := []string{id + "_01", id + "_02"}
		players := make([]result.PlayerRow, 0, len(pids))
		for i, pid := range pids {
			players = append(players, result.PlayerRow{
				PlayerID: pid,
				TeamID:   id,
				Name:     pid,
				Stats: map[string]float64{
					"PTS": float64(pts / 2), "FGA": 40, "FGM": 18,
					"MinutesSec": 1440 + float64(i)*60,
				},
			})
		}
		return &result.TeamResult{
			Totals: map[string]float64{
				"PTS": float64(pts), "FGA": 80, "FGM": 36, "Possessions": 98,
			},
			Breakdowns: map[string]map[string]float64{
				"possession_ends": {"FGA": 80, "TOV": 12},
			},
			Players:     players,
			ExtraTotals: map[string]float64{"AvgFatigueSum": 0.62},
		}
	}

	perPlayer := func(id string, v float64) map[string]float64 {
		return map[string]float64{id + "_01": v, id + "_02": v}
	}
	perPlayerInt := func(id string, v int) map[string]int {
		return map[string]int{id + "_01": v, id + "_02": v}
	}

	return &result.GameResultV2{
		SchemaVersion: result.SchemaVersion,
		Game: result.GameInfo{
			GameID: gameID, Date: date, SeasonID: seasonID, Phase: phase,
			HomeTeamID: homeID, AwayTeamID: awayID, PossessionsPerTeam: 98,
		},
		Final: map[string]int{homeID: homePts, awayID: awayPts},
		Teams: map[string]*result.TeamResult{homeID: team(homeID, homePts), awayID: team(awayID, awayPts)},
		GameState: result.GameStateV2{
			TeamFouls:   map[string]int{homeID: 18, awayID: 21},
			PlayerFouls: map[string]map[string]int{homeID: perPlayerInt(homeID, 3), awayID: perPlayerInt(awayID, 4)},
			Fatigue:     map[string]map[string]float64{homeID: perPlayer(homeID, 0.55), awayID: perPlayer(awayID, 0.48)},
			MinutesPlayedSec: map[string]map[string]float64{
				homeID: perPlayer(homeID, 1440), awayID: perPlayer(awayID, 1440),
			},
		},
		Meta: result.Meta{
			EngineName: "hoopsgm-matchengine", EngineVersion: "test",
			Era: "default", EraVersion: "test", ReplayToken: "tok-" + gameID,
		},
	}
}

func TestIngestGameResult_Accumulates(t *testing.T) {
	st := NewState()
	require.NoError(t, st.AddScheduledGame(&ScheduleEntry{
		GameID: "g1", Date: "2025-11-01", SeasonID: "2025-26",
		Phase: result.PhaseRegular, HomeTeamID: "BOS", AwayTeamID: "LAL",
	}))

	require.NoError(t, st.IngestGameResult(makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 112, 104)))
	require.NoError(t, st.IngestGameResult(makeV2("g2", "2025-11-03", "2025-26", result.PhaseRegular, "LAL", "BOS", 99, 108)))

	bos, ok := st.TeamStats("BOS")
	require.True(t, ok)
	assert.Equal(t, 2, bos.Games)
	assert.Equal(t, 220.0, bos.Totals["PTS"])
	assert.Equal(t, 196.0, bos.Totals["Possessions"])
	assert.Equal(t, 160.0, bos.Breakdowns["possession_ends"]["FGA"])

	ps, ok := st.PlayerStats("BOS_01")
	require.True(t, ok)
	assert.Equal(t, 2, ps.Games)
	assert.Equal(t, "BOS", ps.TeamID)
	assert.Equal(t, float64(112/2+108/2), ps.Totals["PTS"])
	assert.Equal(t, 2880.0, ps.Totals["MinutesSec"])

	stored, ok := st.GameResult("g1")
	require.True(t, ok)
	assert.Equal(t, "g1", stored.Game.GameID)

	// The scheduled row g1 was finalized in place.
	rows := st.ScheduleByDate("2025-11-01")
	require.Len(t, rows, 1)
	assert.Equal(t, "final", rows[0].Status)
	assert.Equal(t, 112, rows[0].HomeScore)
	assert.Equal(t, 104, rows[0].AwayScore)

	assert.Equal(t, 2, st.Turn)
}

func TestIngestGameResult_DuplicateGameID(t *testing.T) {
	st := NewState()
	v2 := makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 112, 104)
	require.NoError(t, st.IngestGameResult(v2))

	err := st.IngestGameResult(makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 100, 90))
	require.Error(t, err)
	var ie *IngestError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, err.Error(), "already ingested")

	// The dup never double-counted.
	bos, _ := st.TeamStats("BOS")
	assert.Equal(t, 1, bos.Games)
}

func TestIngestGameResult_RejectsInvalidPayload(t *testing.T) {
	st := NewState()
	v2 := makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 112, 104)
	v2.SchemaVersion = "1.0"
	err := st.IngestGameResult(v2)
	require.Error(t, err)
	var ae *result.AdapterError
	assert.ErrorAs(t, err, &ae)
}

func TestIngestGameResult_PhaseRouting(t *testing.T) {
	st := NewState()
	require.NoError(t, st.IngestGameResult(makeV2("p1", "2026-04-20", "2025-26", result.PhasePlayoffs, "BOS", "LAL", 120, 110)))

	_, ok := st.TeamStats("BOS")
	assert.False(t, ok, "playoff games must not leak into the regular-season slice")

	sl := st.PhaseContainers[result.PhasePlayoffs]
	require.NotNil(t, sl)
	require.NotNil(t, sl.TeamStats["BOS"])
	assert.Equal(t, 120.0, sl.TeamStats["BOS"].Totals["PTS"])

	stored, ok := st.GameResult("p1")
	require.True(t, ok)
	assert.Equal(t, result.PhasePlayoffs, stored.Game.Phase)
}

func TestIngestGameResult_SeasonRollover(t *testing.T) {
	st := NewState()
	require.NoError(t, st.IngestGameResult(makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 112, 104)))
	require.NoError(t, st.IngestGameResult(makeV2("p1", "2026-05-01", "2025-26", result.PhasePlayoffs, "BOS", "LAL", 101, 99)))
	assert.Equal(t, "2025-26", st.ActiveSeasonID)

	require.NoError(t, st.IngestGameResult(makeV2("g100", "2026-10-25", "2026-27", result.PhaseRegular, "LAL", "NYK", 95, 102)))

	assert.Equal(t, "2026-27", st.ActiveSeasonID)
	archive := st.SeasonHistory["2025-26"]
	require.NotNil(t, archive, "outgoing season must be archived")
	assert.Equal(t, 2, archive.ArchivedAtTurn)
	assert.Equal(t, 112.0, archive.Regular.TeamStats["BOS"].Totals["PTS"])
	assert.Equal(t, 101.0, archive.PhaseContainers[result.PhasePlayoffs].TeamStats["BOS"].Totals["PTS"])

	// Live accumulators carry only the new season.
	_, ok := st.TeamStats("BOS")
	assert.False(t, ok)
	lal, ok := st.TeamStats("LAL")
	require.True(t, ok)
	assert.Equal(t, 1, lal.Games)
	assert.Equal(t, 95.0, lal.Totals["PTS"])
}

func TestMasterSchedule_AddGameAndReindex(t *testing.T) {
	ms := NewMasterSchedule()
	e := &ScheduleEntry{GameID: "g1", Date: "2025-11-01", HomeTeamID: "BOS", AwayTeamID: "LAL"}
	require.NoError(t, ms.AddGame(e))

	err := ms.AddGame(&ScheduleEntry{GameID: "g1", Date: "2025-11-02", HomeTeamID: "NYK", AwayTeamID: "MIA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate schedule game_id")

	err = ms.AddGame(&ScheduleEntry{Date: "2025-11-02"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing game_id")

	ms.Reindex()
	assert.Same(t, e, ms.ByID["g1"])
	assert.Len(t, ms.ByTeam["BOS"], 1)
	assert.Len(t, ms.ByDate["2025-11-01"], 1)
}

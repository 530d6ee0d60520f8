package league

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jbickford/hoopsgm/internal/result"
)

func testStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "league.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	st := NewStore(db)
	require.NoError(t, st.Migrate())
	return st, db
}

func TestStore_LoadEmptyDatabase(t *testing.T) {
	store, _ := testStore(t)
	st, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, st.ActiveSeasonID)
	assert.Zero(t, st.Turn)
	assert.Empty(t, st.Regular.Games)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, db := testStore(t)

	st := NewState()
	require.NoError(t, st.AddScheduledGame(&ScheduleEntry{
		GameID: "g1", Date: "2025-11-01", SeasonID: "2025-26",
		Phase: result.PhaseRegular, HomeTeamID: "BOS", AwayTeamID: "LAL",
	}))
	require.NoError(t, st.AddScheduledGame(&ScheduleEntry{
		GameID: "g2", Date: "2025-11-03", SeasonID: "2025-26",
		Phase: result.PhaseRegular, HomeTeamID: "LAL", AwayTeamID: "BOS",
	}))
	require.NoError(t, st.IngestGameResult(makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 112, 104)))
	require.NoError(t, st.IngestGameResult(makeV2("p1", "2026-05-01", "2025-26", result.PhasePlayoffs, "BOS", "LAL", 101, 99)))

	require.NoError(t, store.Save(st))

	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, "2025-26", loaded.ActiveSeasonID)
	assert.Equal(t, 2, loaded.Turn)

	bos, ok := loaded.TeamStats("BOS")
	require.True(t, ok)
	assert.Equal(t, 1, bos.Games)
	assert.Equal(t, 112.0, bos.Totals["PTS"])

	ps, ok := loaded.PlayerStats("LAL_02")
	require.True(t, ok)
	assert.Equal(t, "LAL", ps.TeamID)

	stored, ok := loaded.GameResult("g1")
	require.True(t, ok)
	assert.Equal(t, "tok-g1", stored.Meta.ReplayToken)

	playoffs := loaded.PhaseContainers[result.PhasePlayoffs]
	require.NotNil(t, playoffs)
	require.Len(t, playoffs.Games, 1)
	assert.Equal(t, "p1", playoffs.Games[0].GameID)

	// Schedule indices are rebuilt on load.
	require.NotNil(t, loaded.MasterSchedule.ByID["g2"])
	assert.Equal(t, "scheduled", loaded.MasterSchedule.ByID["g2"].Status)
	assert.Equal(t, "final", loaded.MasterSchedule.ByID["g1"].Status)
	assert.Len(t, loaded.ScheduleByTeam("BOS"), 2)

	// The finalized schedule row records who appeared; scheduled rows stay
	// empty until their game is ingested.
	var finalRow ScheduleRecord
	require.NoError(t, db.Where("game_id = ?", "g1").First(&finalRow).Error)
	assert.Equal(t, []string{"BOS_01", "BOS_02", "LAL_01", "LAL_02"}, []string(finalRow.RosterPIDs))

	var pendingRow ScheduleRecord
	require.NoError(t, db.Where("game_id = ?", "g2").First(&pendingRow).Error)
	assert.Empty(t, pendingRow.RosterPIDs)
}

func TestStore_LatestSnapshotWins(t *testing.T) {
	store, _ := testStore(t)

	st := NewState()
	require.NoError(t, st.IngestGameResult(makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 112, 104)))
	require.NoError(t, store.Save(st))

	require.NoError(t, st.IngestGameResult(makeV2("g2", "2025-11-03", "2025-26", result.PhaseRegular, "LAL", "BOS", 99, 108)))
	require.NoError(t, store.Save(st))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Turn)
	assert.Len(t, loaded.Regular.Games, 2)
}

func TestStore_RolloverSurvivesPersistence(t *testing.T) {
	store, _ := testStore(t)

	st := NewState()
	require.NoError(t, st.IngestGameResult(makeV2("g1", "2025-11-01", "2025-26", result.PhaseRegular, "BOS", "LAL", 112, 104)))
	require.NoError(t, st.IngestGameResult(makeV2("g100", "2026-10-25", "2026-27", result.PhaseRegular, "LAL", "NYK", 95, 102)))
	require.NoError(t, store.Save(st))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "2026-27", loaded.ActiveSeasonID)
	archive := loaded.SeasonHistory["2025-26"]
	require.NotNil(t, archive)
	assert.Equal(t, 1, archive.ArchivedAtTurn)
	assert.Equal(t, 112.0, archive.Regular.TeamStats["BOS"].Totals["PTS"])
}

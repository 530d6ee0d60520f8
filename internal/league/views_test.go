package league

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbickford/hoopsgm/internal/result"
)

// Without a reachable redis the views must degrade to recompute-on-read; the
// tests run them in exactly that mode.
func degradedViews() *Views { return NewViews(nil, time.Minute) }

func viewsLeague(t *testing.T) *State {
	t.Helper()
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
	return st
}

func TestViews_ScoreboardWithoutRedis(t *testing.T) {
	st := viewsLeague(t)
	rows, err := degradedViews().Scoreboard(context.Background(), st, "2025-11-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "g1", rows[0].GameID)
	assert.Equal(t, 112, rows[0].HomeScore)
	assert.Equal(t, 104, rows[0].AwayScore)

	empty, err := degradedViews().Scoreboard(context.Background(), st, "2025-12-25")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestViews_TeamScheduleWithoutRedis(t *testing.T) {
	st := viewsLeague(t)
	rows, err := degradedViews().TeamSchedule(context.Background(), st, "BOS")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "g1", rows[0].GameID)
	assert.Equal(t, "final", rows[0].Status)
	assert.Equal(t, "g2", rows[1].GameID)
	assert.Equal(t, "scheduled", rows[1].Status)
}

func TestViews_PointsLeadersWithoutRedis(t *testing.T) {
	st := viewsLeague(t)
	rows, err := degradedViews().PointsLeaders(context.Background(), st, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Home players scored 56 each, away 52 each; ties break on pid.
	assert.Equal(t, "BOS_01", rows[0].PlayerID)
	assert.Equal(t, 56.0, rows[0].PPG)
	assert.Equal(t, "BOS_02", rows[1].PlayerID)
}

func TestViews_NilReceiverSafeInvalidation(t *testing.T) {
	st := viewsLeague(t)
	v := degradedViews()
	v2, ok := st.GameResult("g1")
	require.True(t, ok)
	// Must not panic with no backing client.
	v.InvalidateGame(context.Background(), v2)
	v.InvalidateAll(context.Background())
}

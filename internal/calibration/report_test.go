package calibration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbickford/hoopsgm/internal/engine"
)

func calibrationTeam(teamID string, talent float64) engine.TeamConfig {
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

func TestReport(t *testing.T) {
	seeds := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	summary, err := Report("default", seeds, Matchup{
		Home: calibrationTeam("BOS", 80),
		Away: calibrationTeam("LAL", 77),
	})
	require.NoError(t, err)

	assert.Equal(t, len(seeds), summary.Games)
	assert.Greater(t, summary.TeamPoints.Mean, 50.0)
	assert.Less(t, summary.TeamPoints.Mean, 200.0)
	assert.LessOrEqual(t, summary.TeamPoints.P10, summary.TeamPoints.P50)
	assert.LessOrEqual(t, summary.TeamPoints.P50, summary.TeamPoints.P90)

	assert.Greater(t, summary.Possessions.Mean, 60.0)
	assert.Less(t, summary.Possessions.Mean, 150.0)

	assert.GreaterOrEqual(t, summary.ThreeRate.Mean, 0.0)
	assert.LessOrEqual(t, summary.ThreeRate.Mean, 1.0)
	assert.GreaterOrEqual(t, summary.FTTripRate.Mean, 0.0)
	assert.LessOrEqual(t, summary.FTTripRate.Mean, 1.0)

	assert.GreaterOrEqual(t, summary.OvertimeGames, 0)
	assert.LessOrEqual(t, summary.OvertimeGames, len(seeds))
	assert.NotNil(t, summary.BadOutcomesByGrade)
}

func TestReport_Deterministic(t *testing.T) {
	matchup := Matchup{Home: calibrationTeam("BOS", 80), Away: calibrationTeam("LAL", 77)}
	s1, err := Report("default", []int64{42, 43}, matchup)
	require.NoError(t, err)
	s2, err := Report("default", []int64{42, 43}, matchup)
	require.NoError(t, err)
	assert.Equal(t, s1.TeamPoints, s2.TeamPoints)
	assert.Equal(t, s1.Possessions, s2.Possessions)
}

func TestReport_NoSeeds(t *testing.T) {
	_, err := Report("default", nil, Matchup{
		Home: calibrationTeam("BOS", 80),
		Away: calibrationTeam("LAL", 77),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one seed")
}

func TestReport_UnknownEra(t *testing.T) {
	_, err := Report("steam_age", []int64{1}, Matchup{
		Home: calibrationTeam("BOS", 80),
		Away: calibrationTeam("LAL", 77),
	})
	require.Error(t, err)
}

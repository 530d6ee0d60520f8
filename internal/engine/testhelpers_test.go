package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRoster builds a ten-man roster from raw scouting ratings centered on a
// talent level, starters strongest.
func testRoster(teamID string, talent float64) []RosterEntry {
	positions := []string{"PG", "SG", "SF", "PF", "C", "PG", "SF", "PF", "C", "SG"}
	entries := make([]RosterEntry, 0, len(positions))
	for i, pos := range positions {
		base := talent - float64(i)*2.5
		entries = append(entries, RosterEntry{
			PID:  fmt.Sprintf("%s_%02d", teamID, i+1),
			Name: fmt.Sprintf("%s Player %d", teamID, i+1),
			Pos:  pos,
			Raw: map[string]float64{
				"Three-Point Shot":  base + 4,
				"Mid-Range Shot":    base,
				"Close Shot":        base + 2,
				"Layup":             base + 2,
				"Free Throw":        base + 3,
				"Ball Handle":       base - float64(i%3)*4,
				"Passing Accuracy":  base - 2,
				"Passing Vision":    base - 2,
				"Speed":             base,
				"Agility":           base - 1,
				"Strength":          base - 4 + float64(i%5)*3,
				"Vertical":          base - 2,
				"Stamina":           base + 5,
				"Interior Defense":  base - 5 + float64(i%5)*3,
				"Perimeter Defense": base - float64(i%4)*2,
				"Steal":             base - 6,
				"Block":             base - 8 + float64(i%5)*4,
				"Offensive Rebound": base - 8 + float64(i%5)*4,
				"Defensive Rebound": base - 4 + float64(i%5)*3,
			},
		})
	}
	return entries
}

func testTeamConfig(teamID string, talent float64, off OffenseScheme, def DefenseScheme) TeamConfig {
	return TeamConfig{
		TeamID: teamID,
		Roster: testRoster(teamID, talent),
		Tactics: Tactics{
			OffenseScheme: off,
			DefenseScheme: def,
			OffSharpness:  0.6,
			OffStrength:   0.6,
			DefSharpness:  0.5,
			DefStrength:   0.5,
		},
	}
}

func mustTeam(t *testing.T, cfg TeamConfig) *TeamState {
	t.Helper()
	ts, err := NewTeamState(cfg)
	require.NoError(t, err)
	return ts
}

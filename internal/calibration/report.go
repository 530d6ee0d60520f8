// Package calibration batch-simulates seeded games and summarizes the score,
// pace, and shot-diet distributions the tuning surface is judged against.
package calibration

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jbickford/hoopsgm/internal/engine"
)

// Matchup pairs the two team payloads a calibration batch replays.
type Matchup struct {
	Home engine.TeamConfig
	Away engine.TeamConfig
}

// SeriesSummary describes one observed metric across the batch.
type SeriesSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	P10    float64 `json:"p10"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// Summary is the calibration report for a batch.
type Summary struct {
	Games              int                         `json:"games"`
	TeamPoints         SeriesSummary               `json:"team_points"`
	Possessions        SeriesSummary               `json:"possessions"`
	ThreeRate          SeriesSummary               `json:"three_rate"`
	FTTripRate         SeriesSummary               `json:"ft_trip_rate"`
	OvertimeGames      int                         `json:"overtime_games"`
	BadOutcomesByGrade map[engine.FitGrade]int     `json:"bad_outcomes_by_grade"`
}

func summarize(values []float64) SeriesSummary {
	if len(values) == 0 {
		return SeriesSummary{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return SeriesSummary{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		P10:    stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:    stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// Report replays the matchup once per seed and aggregates distributions.
func Report(era string, seeds []int64, matchup Matchup) (*Summary, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("calibration needs at least one seed")
	}

	var points, possessions, threeRate, ftRate []float64
	badByGrade := map[engine.FitGrade]int{}
	overtimes := 0

	for _, seed := range seeds {
		home, err := engine.NewTeamState(matchup.Home)
		if err != nil {
			return nil, err
		}
		away, err := engine.NewTeamState(matchup.Away)
		if err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(seed))
		raw, err := engine.SimulateGame(rng, home, away, era)
		if err != nil {
			return nil, fmt.Errorf("calibration game (seed %d) failed: %w", seed, err)
		}
		if raw.Meta.OvertimePeriods > 0 {
			overtimes++
		}
		for _, ts := range []*engine.TeamState{home, away} {
			t := ts.Totals
			points = append(points, float64(t.PTS))
			possessions = append(possessions, float64(t.Possessions))
			if t.FGA > 0 {
				threeRate = append(threeRate, float64(t.TPA)/float64(t.FGA))
			}
			if t.Possessions > 0 {
				ftRate = append(ftRate, float64(ts.PossessionEnds[engine.EndClassFTTrip])/float64(t.Possessions))
			}
			for grade, n := range ts.BadOutcomesByGrade {
				badByGrade[grade] += n
			}
		}
	}

	return &Summary{
		Games:              len(seeds),
		TeamPoints:         summarize(points),
		Possessions:        summarize(possessions),
		ThreeRate:          summarize(threeRate),
		FTTripRate:         summarize(ftRate),
		OvertimeGames:      overtimes,
		BadOutcomesByGrade: badByGrade,
	}, nil
}

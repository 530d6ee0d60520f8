// Package sim fans simulated games out across workers and funnels results
// into the league. Each game gets its own RNG seeded from (league seed,
// game id) so a slate replays identically regardless of worker scheduling.
package sim

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jbickford/hoopsgm/internal/engine"
	"github.com/jbickford/hoopsgm/internal/league"
	"github.com/jbickford/hoopsgm/internal/result"
)

// TeamSource hands the runner a team payload for a scheduled side.
type TeamSource interface {
	TeamConfig(teamID string) (engine.TeamConfig, error)
}

// Runner simulates every scheduled game for a date and ingests the results.
type Runner struct {
	League  *league.State
	Teams   TeamSource
	Era     string
	Seed    int64
	Workers int
	// Limiter paces game starts; nil means unpaced.
	Limiter *rate.Limiter
	Logger  *logrus.Entry
}

// NewRunner applies the defaults the slate CLI relies on.
func NewRunner(st *league.State, teams TeamSource, era string, seed int64, workers int) *Runner {
	if workers <= 0 {
		workers = 4
	}
	return &Runner{
		League:  st,
		Teams:   teams,
		Era:     era,
		Seed:    seed,
		Workers: workers,
		Logger:  logrus.WithField("component", "slate_runner"),
	}
}

// GameSeed derives a deterministic per-game seed from the league seed.
func GameSeed(leagueSeed int64, gameID string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s", leagueSeed, gameID)
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// RunDate simulates all scheduled games on a date. Simulation runs in
// parallel; ingest serializes on the league's write lock in completion order.
func (r *Runner) RunDate(ctx context.Context, date string) (int, error) {
	entries := r.League.ScheduleByDate(date)
	if len(entries) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	played := 0
	for _, entry := range entries {
		if entry.Status == "final" {
			continue
		}
		entry := entry
		played++
		g.Go(func() error {
			if r.Limiter != nil {
				if err := r.Limiter.Wait(gctx); err != nil {
					return err
				}
			}
			return r.runGame(entry)
		})
	}
	if err := g.Wait(); err != nil {
		return played, err
	}
	r.Logger.WithFields(logrus.Fields{"date": date, "games": played}).Info("slate complete")
	return played, nil
}

func (r *Runner) runGame(entry *league.ScheduleEntry) error {
	homeCfg, err := r.Teams.TeamConfig(entry.HomeTeamID)
	if err != nil {
		return fmt.Errorf("failed to load home team %s: %w", entry.HomeTeamID, err)
	}
	awayCfg, err := r.Teams.TeamConfig(entry.AwayTeamID)
	if err != nil {
		return fmt.Errorf("failed to load away team %s: %w", entry.AwayTeamID, err)
	}
	home, err := engine.NewTeamState(homeCfg)
	if err != nil {
		return err
	}
	away, err := engine.NewTeamState(awayCfg)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(GameSeed(r.Seed, entry.GameID)))
	raw, err := engine.SimulateGame(rng, home, away, r.Era,
		engine.WithLogger(r.Logger.WithField("game_id", entry.GameID)))
	if err != nil {
		return fmt.Errorf("game %s failed: %w", entry.GameID, err)
	}

	v2, err := result.AdaptRaw(raw, result.GameContext{
		GameID:     entry.GameID,
		Date:       entry.Date,
		SeasonID:   entry.SeasonID,
		Phase:      entry.Phase,
		HomeTeamID: entry.HomeTeamID,
		AwayTeamID: entry.AwayTeamID,
	})
	if err != nil {
		return err
	}
	return r.League.IngestGameResult(v2)
}

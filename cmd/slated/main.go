// Command slated advances the league by simulating every scheduled game for
// a date. One-shot with -date, or a cron daemon with -daemon.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jbickford/hoopsgm/internal/calibration"
	"github.com/jbickford/hoopsgm/internal/league"
	"github.com/jbickford/hoopsgm/internal/sim"
	"github.com/jbickford/hoopsgm/pkg/config"
	"github.com/jbickford/hoopsgm/pkg/database"
	"github.com/jbickford/hoopsgm/pkg/logger"
)

func main() {
	var (
		date      = flag.String("date", "", "simulate all scheduled games on this date (YYYY-MM-DD)")
		daemon    = flag.Bool("daemon", false, "run on the SLATE_CRON schedule, advancing one slate date per tick")
		teamsDir  = flag.String("teams", "teams", "directory of <team_id>.json roster payloads")
		calibrate = flag.String("calibrate", "", "instead of a slate, run a calibration batch: HOME,AWAY team ids")
		calGames  = flag.Int("calibrate-games", 200, "seeds per calibration batch")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	teams := sim.DirTeamSource{Dir: *teamsDir}

	if *calibrate != "" {
		if err := runCalibration(cfg, teams, *calibrate, *calGames); err != nil {
			logrus.Fatalf("Calibration failed: %v", err)
		}
		return
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	store := league.NewStore(db.DB)
	st, err := store.Load()
	if err != nil {
		logrus.Fatalf("Failed to load league state: %v", err)
	}

	if opts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logrus.Warnf("Invalid REDIS_URL, derived views disabled: %v", err)
	} else {
		st.AttachViews(league.NewViews(redis.NewClient(opts), cfg.ViewCacheTTL))
	}

	runner := sim.NewRunner(st, teams, cfg.Era, cfg.LeagueSeed, cfg.SlateWorkers)
	if cfg.SlateRate > 0 {
		runner.Limiter = rate.NewLimiter(rate.Limit(cfg.SlateRate), 1)
	}

	runSlate := func(ctx context.Context, d string) {
		played, err := runner.RunDate(ctx, d)
		if err != nil {
			logrus.WithField("date", d).Errorf("Slate failed: %v", err)
			return
		}
		if played == 0 {
			logrus.WithField("date", d).Info("No games scheduled")
			return
		}
		if err := store.Save(st); err != nil {
			logrus.Errorf("Failed to persist league state: %v", err)
		}
	}

	if *daemon {
		if cfg.SlateCron == "" {
			logrus.Fatal("daemon mode requires SLATE_CRON")
		}
		c := cron.New()
		_, err := c.AddFunc(cfg.SlateCron, func() {
			d := nextUnplayedDate(st)
			if d == "" {
				logrus.Info("Schedule exhausted, nothing to advance")
				return
			}
			runSlate(context.Background(), d)
		})
		if err != nil {
			logrus.Fatalf("Invalid SLATE_CRON %q: %v", cfg.SlateCron, err)
		}
		c.Start()
		logrus.WithField("cron", cfg.SlateCron).Info("Slate daemon started")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		ctx := c.Stop()
		<-ctx.Done()
		logrus.Info("Slate daemon stopped")
		return
	}

	if *date == "" {
		logrus.Fatal("either -date or -daemon is required")
	}
	runSlate(context.Background(), *date)
}

// nextUnplayedDate scans the master schedule for the earliest date that still
// has a non-final entry.
func nextUnplayedDate(st *league.State) string {
	best := ""
	for _, e := range st.MasterSchedule.Games {
		if e.Status == "final" {
			continue
		}
		if best == "" || e.Date < best {
			best = e.Date
		}
	}
	return best
}

func runCalibration(cfg *config.Config, teams sim.DirTeamSource, matchup string, games int) error {
	var homeID, awayID string
	if n, err := fmt.Sscanf(matchup, "%3s,%3s", &homeID, &awayID); err != nil || n != 2 {
		return fmt.Errorf("-calibrate wants HOME,AWAY team ids, got %q", matchup)
	}
	homeCfg, err := teams.TeamConfig(homeID)
	if err != nil {
		return err
	}
	awayCfg, err := teams.TeamConfig(awayID)
	if err != nil {
		return err
	}
	seeds := make([]int64, games)
	for i := range seeds {
		seeds[i] = cfg.LeagueSeed + int64(i)
	}
	start := time.Now()
	summary, err := calibration.Report(cfg.Era, seeds, calibration.Matchup{Home: homeCfg, Away: awayCfg})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"games":   summary.Games,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("Calibration batch complete")
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

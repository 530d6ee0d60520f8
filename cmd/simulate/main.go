// Command simulate plays a single game between two team payload files and
// emits the finished GameResultV2 as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jbickford/hoopsgm/internal/engine"
	"github.com/jbickford/hoopsgm/internal/league"
	"github.com/jbickford/hoopsgm/internal/result"
	"github.com/jbickford/hoopsgm/internal/sim"
	"github.com/jbickford/hoopsgm/pkg/config"
	"github.com/jbickford/hoopsgm/pkg/database"
	"github.com/jbickford/hoopsgm/pkg/logger"
)

func main() {
	var (
		homePath = flag.String("home", "", "path to home team JSON payload")
		awayPath = flag.String("away", "", "path to away team JSON payload")
		seed     = flag.Int64("seed", 0, "game RNG seed (0 = time-based)")
		era      = flag.String("era", "", "era config name (default from config)")
		out      = flag.String("out", "", "write result JSON here instead of stdout")
		ingest   = flag.Bool("ingest", false, "also ingest the result into the league store")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	if *homePath == "" || *awayPath == "" {
		logrus.Fatal("both -home and -away team files are required")
	}
	if *era == "" {
		*era = cfg.Era
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	homeCfg, err := sim.LoadTeamFile(*homePath)
	if err != nil {
		logrus.Fatalf("Failed to load home team: %v", err)
	}
	awayCfg, err := sim.LoadTeamFile(*awayPath)
	if err != nil {
		logrus.Fatalf("Failed to load away team: %v", err)
	}

	home, err := engine.NewTeamState(homeCfg)
	if err != nil {
		logrus.Fatalf("Invalid home team: %v", err)
	}
	away, err := engine.NewTeamState(awayCfg)
	if err != nil {
		logrus.Fatalf("Invalid away team: %v", err)
	}

	opts := []engine.Option{engine.WithLogger(logrus.WithField("cmd", "simulate"))}
	if cfg.StrictValidation {
		vc := engine.DefaultValidation()
		vc.Strict = true
		opts = append(opts, engine.WithValidation(vc))
	}

	rng := rand.New(rand.NewSource(*seed))
	raw, err := engine.SimulateGame(rng, home, away, *era, opts...)
	if err != nil {
		logrus.Fatalf("Simulation failed: %v", err)
	}

	gameID := uuid.NewString()
	v2, err := result.AdaptRaw(raw, result.GameContext{
		GameID:     gameID,
		Date:       time.Now().UTC().Format("2006-01-02"),
		SeasonID:   "adhoc",
		Phase:      result.PhaseRegular,
		HomeTeamID: home.TeamID,
		AwayTeamID: away.TeamID,
	})
	if err != nil {
		logrus.Fatalf("Result adaptation failed: %v", err)
	}

	data, err := json.MarshalIndent(v2, "", "  ")
	if err != nil {
		logrus.Fatalf("Failed to encode result: %v", err)
	}
	if *out != "" {
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			logrus.Fatalf("Failed to write %s: %v", *out, err)
		}
	} else {
		fmt.Println(string(data))
	}

	if *ingest {
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
		if err := st.IngestGameResult(v2); err != nil {
			logrus.Fatalf("Ingest failed: %v", err)
		}
		if err := store.Save(st); err != nil {
			logrus.Fatalf("Failed to persist league state: %v", err)
		}
		logrus.WithField("game_id", gameID).Info("Result ingested")
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jbickford/hoopsgm/internal/league"
	"github.com/jbickford/hoopsgm/internal/result"
	"github.com/jbickford/hoopsgm/internal/sim"
	"github.com/jbickford/hoopsgm/pkg/config"
	"github.com/jbickford/hoopsgm/pkg/database"
	"github.com/jbickford/hoopsgm/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := league.NewStore(db.DB)

	switch command := os.Args[1]; command {
	case "up":
		if err := store.Migrate(); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(store); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func dropTables(db *database.DB) error {
	// Reverse order so postgres foreign keys don't complain.
	tables := []string{
		"league_schedule",
		"league_player_seasons",
		"league_team_seasons",
		"league_games",
		"league_snapshots",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

// seedData loads a two-team demo: roster payload files under ./teams and a
// short home-and-home schedule in the league store.
func seedData(store *league.Store) error {
	if err := store.Migrate(); err != nil {
		return err
	}

	if err := os.MkdirAll("teams", 0o755); err != nil {
		return fmt.Errorf("failed to create teams dir: %w", err)
	}
	for _, tp := range []sim.TeamPayload{demoTeam("BOS", 86), demoTeam("LAL", 82)} {
		data, err := json.MarshalIndent(tp, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join("teams", tp.TeamID+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write roster %s: %w", path, err)
		}
		logrus.WithField("team_id", tp.TeamID).Info("Seeded roster payload")
	}

	st := league.NewState()
	dates := []string{"2025-10-21", "2025-10-23"}
	for i, date := range dates {
		home, away := "BOS", "LAL"
		if i%2 == 1 {
			home, away = away, home
		}
		entry := &league.ScheduleEntry{
			GameID:     uuid.NewString(),
			Date:       date,
			SeasonID:   "2025-26",
			Phase:      result.PhaseRegular,
			HomeTeamID: home,
			AwayTeamID: away,
			Status:     "scheduled",
		}
		if err := st.AddScheduledGame(entry); err != nil {
			return err
		}
	}
	if err := store.Save(st); err != nil {
		return fmt.Errorf("failed to save seeded state: %w", err)
	}
	logrus.Infof("Seeded %d scheduled games", len(dates))
	return nil
}

// demoTeam builds a ten-man roster around a talent center point. Ratings are
// raw scouting names so the derive path gets exercised end to end.
func demoTeam(teamID string, talent float64) sim.TeamPayload {
	names := []string{"Guard One", "Guard Two", "Wing One", "Forward One", "Center One",
		"Guard Three", "Wing Two", "Forward Two", "Center Two", "Wing Three"}
	positions := []string{"PG", "SG", "SF", "PF", "C", "PG", "SF", "PF", "C", "SG"}

	tp := sim.TeamPayload{
		TeamID: teamID,
		Tactics: sim.TacticsPayload{
			OffenseScheme: "Spread_HeavyPnR",
			DefenseScheme: "Drop",
			OffSharpness:  0.6,
			OffStrength:   0.6,
			DefSharpness:  0.5,
			DefStrength:   0.5,
		},
	}
	for i, name := range names {
		spread := float64(i) * 2.5 // starters strongest, bench tapering
		base := talent - spread
		tp.Roster = append(tp.Roster, sim.PlayerPayload{
			PID:  fmt.Sprintf("%s_%02d", teamID, i+1),
			Name: name,
			Pos:  positions[i],
			Ratings: map[string]float64{
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
	return tp
}

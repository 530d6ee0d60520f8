package league

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jbickford/hoopsgm/internal/result"
)

// Views maintains redis-cached derived reads (scoreboards, team schedules,
// leaderboards) so standings pages never contend with the ingest write lock.
// Every redis call goes through a circuit breaker: when the cache is down,
// reads degrade to recompute-on-read against the league state.
type Views struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
	ttl    time.Duration
	logger *logrus.Entry
}

// NewViews wires the cached-views layer.
func NewViews(client *redis.Client, ttl time.Duration) *Views {
	return &Views{
		client: client,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "league-views",
			Timeout: 15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		ttl:    ttl,
		logger: logrus.WithField("component", "league_views"),
	}
}

func scoreboardKey(date string) string     { return fmt.Sprintf("views:scoreboard:%s", date) }
func teamScheduleKey(teamID string) string { return fmt.Sprintf("views:schedule:%s", teamID) }
func leadersKey() string                   { return "views:leaders:pts" }

func (v *Views) do(op func() error) {
	if v == nil || v.client == nil {
		return
	}
	if _, err := v.cb.Execute(func() (interface{}, error) {
		return nil, op()
	}); err != nil {
		v.logger.WithError(err).Warn("cached view operation failed")
	}
}

// InvalidateGame drops every cached view a finalized game touches.
func (v *Views) InvalidateGame(ctx context.Context, v2 *result.GameResultV2) {
	v.do(func() error {
		return v.client.Del(ctx,
			scoreboardKey(v2.Game.Date),
			teamScheduleKey(v2.Game.HomeTeamID),
			teamScheduleKey(v2.Game.AwayTeamID),
			leadersKey(),
		).Err()
	})
}

// InvalidateAll flushes the views namespace, used at season rollover.
func (v *Views) InvalidateAll(ctx context.Context) {
	v.do(func() error {
		iter := v.client.Scan(ctx, 0, "views:*", 0).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return v.client.Del(ctx, keys...).Err()
	})
}

// ScoreboardRow is one finished game on a date's scoreboard view.
type ScoreboardRow struct {
	GameID     string `json:"game_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	IsOvertime bool   `json:"is_overtime"`
}

// Scoreboard returns the finished games for a date, cache-first.
func (v *Views) Scoreboard(ctx context.Context, s *State, date string) ([]ScoreboardRow, error) {
	key := scoreboardKey(date)
	if rows, ok := v.fetch(ctx, key, &[]ScoreboardRow{}); ok {
		return *rows.(*[]ScoreboardRow), nil
	}
	rows := buildScoreboard(s, date)
	v.store(ctx, key, rows)
	return rows, nil
}

func buildScoreboard(s *State, date string) []ScoreboardRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []ScoreboardRow
	collect := func(sl *Slice) {
		for _, g := range sl.Games {
			if g.Date != date {
				continue
			}
			rows = append(rows, ScoreboardRow{
				GameID:     g.GameID,
				HomeTeamID: g.HomeTeamID,
				AwayTeamID: g.AwayTeamID,
				HomeScore:  g.HomeScore,
				AwayScore:  g.AwayScore,
				IsOvertime: g.IsOvertime,
			})
		}
	}
	collect(s.Regular)
	for _, sl := range s.PhaseContainers {
		collect(sl)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].GameID < rows[j].GameID })
	return rows
}

// TeamSchedule returns a team's schedule rows, cache-first.
func (v *Views) TeamSchedule(ctx context.Context, s *State, teamID string) ([]ScheduleEntry, error) {
	key := teamScheduleKey(teamID)
	if rows, ok := v.fetch(ctx, key, &[]ScheduleEntry{}); ok {
		return *rows.(*[]ScheduleEntry), nil
	}
	var rows []ScheduleEntry
	for _, e := range s.ScheduleByTeam(teamID) {
		rows = append(rows, *e)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].GameID < rows[j].GameID
	})
	v.store(ctx, key, rows)
	return rows, nil
}

// LeaderRow is one entry on the points leaderboard view.
type LeaderRow struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	TeamID   string  `json:"team_id"`
	Games    int     `json:"games"`
	PPG      float64 `json:"ppg"`
}

// PointsLeaders returns the top-n scorers by points per game, cache-first.
func (v *Views) PointsLeaders(ctx context.Context, s *State, n int) ([]LeaderRow, error) {
	key := leadersKey()
	if rows, ok := v.fetch(ctx, key, &[]LeaderRow{}); ok {
		cached := *rows.(*[]LeaderRow)
		if len(cached) >= n {
			return cached[:n], nil
		}
	}
	rows := buildLeaders(s)
	v.store(ctx, key, rows)
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows, nil
}

func buildLeaders(s *State) []LeaderRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]LeaderRow, 0, len(s.Regular.PlayerStats))
	for pid, ps := range s.Regular.PlayerStats {
		if ps.Games == 0 {
			continue
		}
		rows = append(rows, LeaderRow{
			PlayerID: pid,
			Name:     ps.Name,
			TeamID:   ps.TeamID,
			Games:    ps.Games,
			PPG:      ps.Totals["PTS"] / float64(ps.Games),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PPG != rows[j].PPG {
			return rows[i].PPG > rows[j].PPG
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows
}

func (v *Views) fetch(ctx context.Context, key string, dest interface{}) (interface{}, bool) {
	if v == nil || v.client == nil {
		return nil, false
	}
	hit := false
	v.do(func() error {
		data, err := v.client.Get(ctx, key).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(data), dest); err != nil {
			return err
		}
		hit = true
		return nil
	})
	if !hit {
		return nil, false
	}
	return dest, true
}

func (v *Views) store(ctx context.Context, key string, value interface{}) {
	v.do(func() error {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return v.client.Set(ctx, key, data, v.ttl).Err()
	})
}

package league

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jbickford/hoopsgm/internal/result"
)

// Persistence: the season-level league state is the unit of persistence. A
// full JSON snapshot row round-trips every field the core owns; normalized
// rows alongside it keep team/player/game data queryable.

// SnapshotRecord holds the authoritative serialized state, latest row wins.
type SnapshotRecord struct {
	ID             uint   `gorm:"primaryKey"`
	ActiveSeasonID string `gorm:"index"`
	Turn           int
	Data           datatypes.JSON
	CreatedAt      time.Time
}

func (SnapshotRecord) TableName() string { return "league_snapshots" }

// GameRecord is one finalized game with its full v2 payload.
type GameRecord struct {
	ID         uint   `gorm:"primaryKey"`
	GameID     string `gorm:"uniqueIndex;size:64"`
	SeasonID   string `gorm:"index;size:16"`
	Date       string `gorm:"index;size:16"`
	Phase      string `gorm:"size:16"`
	HomeTeamID string `gorm:"size:8"`
	AwayTeamID string `gorm:"size:8"`
	HomeScore  int
	AwayScore  int
	IsOvertime bool
	Payload    datatypes.JSON
	CreatedAt  time.Time
}

func (GameRecord) TableName() string { return "league_games" }

// TeamSeasonRecord is a team's accumulated season line per phase.
type TeamSeasonRecord struct {
	ID         uint   `gorm:"primaryKey"`
	SeasonID   string `gorm:"uniqueIndex:idx_team_season;size:16"`
	TeamID     string `gorm:"uniqueIndex:idx_team_season;size:8"`
	Phase      string `gorm:"uniqueIndex:idx_team_season;size:16"`
	Games      int
	Totals     datatypes.JSON
	Breakdowns datatypes.JSON
	UpdatedAt  time.Time
}

func (TeamSeasonRecord) TableName() string { return "league_team_seasons" }

// PlayerSeasonRecord is a player's accumulated season line per phase.
type PlayerSeasonRecord struct {
	ID        uint   `gorm:"primaryKey"`
	SeasonID  string `gorm:"uniqueIndex:idx_player_season;size:16"`
	PlayerID  string `gorm:"uniqueIndex:idx_player_season;size:64"`
	Phase     string `gorm:"uniqueIndex:idx_player_season;size:16"`
	Name      string
	TeamID    string `gorm:"size:8"`
	Games     int
	Totals    datatypes.JSON
	UpdatedAt time.Time
}

func (PlayerSeasonRecord) TableName() string { return "league_player_seasons" }

// ScheduleRecord is one master-schedule row. RosterPIDs keeps the pids that
// actually appeared, for quick availability queries.
type ScheduleRecord struct {
	ID         uint   `gorm:"primaryKey"`
	GameID     string `gorm:"uniqueIndex;size:64"`
	SeasonID   string `gorm:"index;size:16"`
	Date       string `gorm:"index;size:16"`
	Phase      string `gorm:"size:16"`
	HomeTeamID string `gorm:"index;size:8"`
	AwayTeamID string `gorm:"index;size:8"`
	Status     string `gorm:"size:16"`
	HomeScore  int
	AwayScore  int
	RosterPIDs pq.StringArray `gorm:"column:roster_pids;type:text[]"`
	UpdatedAt  time.Time
}

func (ScheduleRecord) TableName() string { return "league_schedule" }

// Models lists every table the store owns, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&SnapshotRecord{}, &GameRecord{}, &TeamSeasonRecord{},
		&PlayerSeasonRecord{}, &ScheduleRecord{},
	}
}

// Store persists league state through gorm (postgres in deploys, sqlite in
// tests and local runs).
type Store struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle.
func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// Migrate creates or updates the store's tables.
func (st *Store) Migrate() error {
	return st.db.AutoMigrate(Models()...)
}

// snapshot is the serialized form of State.
type snapshot struct {
	ActiveSeasonID  string                    `json:"active_season_id"`
	Regular         *Slice                    `json:"regular"`
	PhaseContainers map[result.Phase]*Slice   `json:"phase_containers"`
	SeasonHistory   map[string]*SeasonArchive `json:"season_history"`
	MasterSchedule  *MasterSchedule           `json:"master_schedule"`
	Turn            int                       `json:"turn"`
}

// Save writes the full snapshot plus refreshed normalized rows in one
// transaction.
func (st *Store) Save(s *State) error {
	s.mu.RLock()
	snap := snapshot{
		ActiveSeasonID:  s.ActiveSeasonID,
		Regular:         s.Regular,
		PhaseContainers: s.PhaseContainers,
		SeasonHistory:   s.SeasonHistory,
		MasterSchedule:  s.MasterSchedule,
		Turn:            s.Turn,
	}
	data, err := json.Marshal(snap)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal league snapshot: %w", err)
	}

	return st.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&SnapshotRecord{
			ActiveSeasonID: snap.ActiveSeasonID,
			Turn:           snap.Turn,
			Data:           datatypes.JSON(data),
		}).Error; err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		if err := st.saveNormalized(tx, &snap); err != nil {
			return err
		}
		return nil
	})
}

func (st *Store) saveNormalized(tx *gorm.DB, snap *snapshot) error {
	writeSlice := func(phase result.Phase, sl *Slice) error {
		for teamID, ts := range sl.TeamStats {
			totals, _ := json.Marshal(ts.Totals)
			breakdowns, _ := json.Marshal(ts.Breakdowns)
			rec := TeamSeasonRecord{
				SeasonID: snap.ActiveSeasonID, TeamID: teamID, Phase: string(phase),
				Games: ts.Games, Totals: totals, Breakdowns: breakdowns,
			}
			if err := tx.Where("season_id = ? AND team_id = ? AND phase = ?", rec.SeasonID, teamID, rec.Phase).
				Assign(map[string]interface{}{"games": rec.Games, "totals": rec.Totals, "breakdowns": rec.Breakdowns}).
				FirstOrCreate(&rec).Error; err != nil {
				return fmt.Errorf("failed to save team season %s: %w", teamID, err)
			}
		}
		for pid, ps := range sl.PlayerStats {
			totals, _ := json.Marshal(ps.Totals)
			rec := PlayerSeasonRecord{
				SeasonID: snap.ActiveSeasonID, PlayerID: pid, Phase: string(phase),
				Name: ps.Name, TeamID: ps.TeamID, Games: ps.Games, Totals: totals,
			}
			if err := tx.Where("season_id = ? AND player_id = ? AND phase = ?", rec.SeasonID, pid, rec.Phase).
				Assign(map[string]interface{}{"name": rec.Name, "team_id": rec.TeamID, "games": rec.Games, "totals": rec.Totals}).
				FirstOrCreate(&rec).Error; err != nil {
				return fmt.Errorf("failed to save player season %s: %w", pid, err)
			}
		}
		for _, g := range sl.Games {
			payload, _ := json.Marshal(sl.GameResults[g.GameID])
			rec := GameRecord{
				GameID: g.GameID, SeasonID: g.SeasonID, Date: g.Date, Phase: string(g.Phase),
				HomeTeamID: g.HomeTeamID, AwayTeamID: g.AwayTeamID,
				HomeScore: g.HomeScore, AwayScore: g.AwayScore,
				IsOvertime: g.IsOvertime, Payload: payload,
			}
			if err := tx.Where("game_id = ?", g.GameID).FirstOrCreate(&rec).Error; err != nil {
				return fmt.Errorf("failed to save game %s: %w", g.GameID, err)
			}
		}
		return nil
	}

	if err := writeSlice(result.PhaseRegular, snap.Regular); err != nil {
		return err
	}
	for phase, sl := range snap.PhaseContainers {
		if err := writeSlice(phase, sl); err != nil {
			return err
		}
	}

	// Finalized schedule rows carry the pids that actually appeared, taken
	// from the ingested v2 payloads.
	appearedPIDs := map[string]pq.StringArray{}
	collectPIDs := func(sl *Slice) {
		for gameID, v2 := range sl.GameResults {
			var pids []string
			for _, tr := range v2.Teams {
				for _, row := range tr.Players {
					pids = append(pids, row.PlayerID)
				}
			}
			sort.Strings(pids)
			appearedPIDs[gameID] = pids
		}
	}
	collectPIDs(snap.Regular)
	for _, sl := range snap.PhaseContainers {
		collectPIDs(sl)
	}

	for _, e := range snap.MasterSchedule.Games {
		rec := ScheduleRecord{
			GameID: e.GameID, SeasonID: e.SeasonID, Date: e.Date, Phase: string(e.Phase),
			HomeTeamID: e.HomeTeamID, AwayTeamID: e.AwayTeamID,
			Status: e.Status, HomeScore: e.HomeScore, AwayScore: e.AwayScore,
			RosterPIDs: appearedPIDs[e.GameID],
		}
		if err := tx.Where("game_id = ?", e.GameID).
			Assign(map[string]interface{}{
				"status": rec.Status, "home_score": rec.HomeScore,
				"away_score": rec.AwayScore, "roster_pids": rec.RosterPIDs,
			}).
			FirstOrCreate(&rec).Error; err != nil {
			return fmt.Errorf("failed to save schedule entry %s: %w", e.GameID, err)
		}
	}
	return nil
}

// Load restores the latest snapshot into a fresh State. A missing snapshot
// yields an empty league, not an error.
func (st *Store) Load() (*State, error) {
	var rec SnapshotRecord
	err := st.db.Order("id DESC").First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load league snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(rec.Data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode league snapshot: %w", err)
	}

	s := NewState()
	s.ActiveSeasonID = snap.ActiveSeasonID
	s.Turn = snap.Turn
	if snap.Regular != nil {
		s.Regular = snap.Regular
	}
	for phase, sl := range snap.PhaseContainers {
		s.PhaseContainers[phase] = sl
	}
	if snap.SeasonHistory != nil {
		s.SeasonHistory = snap.SeasonHistory
	}
	if snap.MasterSchedule != nil {
		s.MasterSchedule = snap.MasterSchedule
		s.MasterSchedule.Reindex()
	}
	return s, nil
}

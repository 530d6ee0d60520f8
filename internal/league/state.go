// Package league owns the long-lived season state: accumulated player and
// team statistics, finalized games, the master schedule, season history, and
// the cached derived views. All mutation funnels through IngestGameResult.
package league

import (
	"sync"

	"github.com/jbickford/hoopsgm/internal/result"
)

// TeamSeason is one team's accumulated line for a season slice.
type TeamSeason struct {
	Games      int                           `json:"games"`
	Totals     map[string]float64            `json:"totals"`
	Breakdowns map[string]map[string]float64 `json:"breakdowns"`
}

// PlayerSeason is one player's accumulated line. Name and TeamID track the
// latest ingested game.
type PlayerSeason struct {
	Name   string             `json:"name"`
	TeamID string             `json:"team_id"`
	Games  int                `json:"games"`
	Totals map[string]float64 `json:"totals"`
}

// GameSummary is the compact finalized-game record appended per ingest.
type GameSummary struct {
	GameID     string       `json:"game_id"`
	Date       string       `json:"date"`
	HomeTeamID string       `json:"home_team_id"`
	AwayTeamID string       `json:"away_team_id"`
	HomeScore  int          `json:"home_score"`
	AwayScore  int          `json:"away_score"`
	Status     string       `json:"status"`
	IsOvertime bool         `json:"is_overtime"`
	Phase      result.Phase `json:"phase"`
	SeasonID   string       `json:"season_id"`
}

// Slice is one accumulator container: the regular season uses the top-level
// slice, each non-regular phase gets its own.
type Slice struct {
	PlayerStats map[string]*PlayerSeason          `json:"player_stats"`
	TeamStats   map[string]*TeamSeason            `json:"team_stats"`
	Games       []GameSummary                     `json:"games"`
	GameResults map[string]*result.GameResultV2   `json:"game_results"`
}

// NewSlice returns an empty accumulator container.
func NewSlice() *Slice {
	return &Slice{
		PlayerStats: map[string]*PlayerSeason{},
		TeamStats:   map[string]*TeamSeason{},
		GameResults: map[string]*result.GameResultV2{},
	}
}

func (s *Slice) empty() bool {
	return len(s.PlayerStats) == 0 && len(s.TeamStats) == 0 && len(s.Games) == 0
}

// SeasonArchive snapshots a finished season at rollover.
type SeasonArchive struct {
	Regular         *Slice                        `json:"regular"`
	PhaseContainers map[result.Phase]*Slice       `json:"phase_containers"`
	ArchivedAtTurn  int                           `json:"archived_at_turn"`
}

// ScheduleEntry is one master-schedule row.
type ScheduleEntry struct {
	GameID     string       `json:"game_id"`
	Date       string       `json:"date"`
	SeasonID   string       `json:"season_id"`
	Phase      result.Phase `json:"phase"`
	HomeTeamID string       `json:"home_team_id"`
	AwayTeamID string       `json:"away_team_id"`
	Status     string       `json:"status"`
	HomeScore  int          `json:"home_score"`
	AwayScore  int          `json:"away_score"`
	GameDate   string       `json:"game_date,omitempty"`
}

// MasterSchedule holds schedule rows plus the three derived indices, kept
// consistent by AddGame.
type MasterSchedule struct {
	Games  []*ScheduleEntry            `json:"games"`
	ByID   map[string]*ScheduleEntry   `json:"-"`
	ByTeam map[string][]*ScheduleEntry `json:"-"`
	ByDate map[string][]*ScheduleEntry `json:"-"`
}

// NewMasterSchedule returns an empty indexed schedule.
func NewMasterSchedule() *MasterSchedule {
	return &MasterSchedule{
		ByID:   map[string]*ScheduleEntry{},
		ByTeam: map[string][]*ScheduleEntry{},
		ByDate: map[string][]*ScheduleEntry{},
	}
}

// AddGame appends an entry and maintains the indices. Duplicate game ids are
// rejected so the global-uniqueness invariant holds.
func (ms *MasterSchedule) AddGame(e *ScheduleEntry) error {
	if e.GameID == "" {
		return &IngestError{Msg: "schedule entry missing game_id"}
	}
	if _, dup := ms.ByID[e.GameID]; dup {
		return &IngestError{Msg: "duplicate schedule game_id " + e.GameID}
	}
	ms.Games = append(ms.Games, e)
	ms.ByID[e.GameID] = e
	ms.ByTeam[e.HomeTeamID] = append(ms.ByTeam[e.HomeTeamID], e)
	ms.ByTeam[e.AwayTeamID] = append(ms.ByTeam[e.AwayTeamID], e)
	ms.ByDate[e.Date] = append(ms.ByDate[e.Date], e)
	return nil
}

// Reindex rebuilds the derived indices from Games, used after loading a
// persisted snapshot.
func (ms *MasterSchedule) Reindex() {
	ms.ByID = map[string]*ScheduleEntry{}
	ms.ByTeam = map[string][]*ScheduleEntry{}
	ms.ByDate = map[string][]*ScheduleEntry{}
	for _, e := range ms.Games {
		ms.ByID[e.GameID] = e
		ms.ByTeam[e.HomeTeamID] = append(ms.ByTeam[e.HomeTeamID], e)
		ms.ByTeam[e.AwayTeamID] = append(ms.ByTeam[e.AwayTeamID], e)
		ms.ByDate[e.Date] = append(ms.ByDate[e.Date], e)
	}
}

// IngestError reports a league-side problem with an ingest or schedule
// mutation.
type IngestError struct {
	Msg string
}

func (e *IngestError) Error() string { return e.Msg }

// State is the sole shared mutable resource of the core. Writers hold mu;
// readers take RLock or hit the cached views.
type State struct {
	mu sync.RWMutex

	ActiveSeasonID  string
	Regular         *Slice
	PhaseContainers map[result.Phase]*Slice
	SeasonHistory   map[string]*SeasonArchive
	MasterSchedule  *MasterSchedule

	// Turn counts ingests, stamped onto archives at rollover.
	Turn int

	views *Views
}

// NewState returns an empty league.
func NewState() *State {
	return &State{
		Regular: NewSlice(),
		PhaseContainers: map[result.Phase]*Slice{
			result.PhasePreseason: NewSlice(),
			result.PhasePlayIn:    NewSlice(),
			result.PhasePlayoffs:  NewSlice(),
		},
		SeasonHistory:  map[string]*SeasonArchive{},
		MasterSchedule: NewMasterSchedule(),
	}
}

// AttachViews wires the cached-views layer; invalidation runs inside the
// ingest critical section.
func (s *State) AttachViews(v *Views) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = v
}

// sliceFor routes a phase to its accumulator container.
func (s *State) sliceFor(phase result.Phase) *Slice {
	if phase == result.PhaseRegular {
		return s.Regular
	}
	if sl, ok := s.PhaseContainers[phase]; ok {
		return sl
	}
	sl := NewSlice()
	s.PhaseContainers[phase] = sl
	return sl
}

// Schedule-side helpers, read-locked.

// ScheduleByDate returns the schedule rows for a date.
func (s *State) ScheduleByDate(date string) []*ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.MasterSchedule.ByDate[date]
	out := make([]*ScheduleEntry, len(entries))
	copy(out, entries)
	return out
}

// ScheduleByTeam returns the schedule rows involving a team.
func (s *State) ScheduleByTeam(teamID string) []*ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.MasterSchedule.ByTeam[teamID]
	out := make([]*ScheduleEntry, len(entries))
	copy(out, entries)
	return out
}

// AddScheduledGame registers an upcoming game on the master schedule.
func (s *State) AddScheduledGame(e *ScheduleEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Status == "" {
		e.Status = "scheduled"
	}
	return s.MasterSchedule.AddGame(e)
}

// TeamStats reads one team's regular-season accumulators.
func (s *State) TeamStats(teamID string) (TeamSeason, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.Regular.TeamStats[teamID]
	if !ok {
		return TeamSeason{}, false
	}
	return *ts, true
}

// PlayerStats reads one player's regular-season accumulators.
func (s *State) PlayerStats(playerID string) (PlayerSeason, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ps, ok := s.Regular.PlayerStats[playerID]
	if !ok {
		return PlayerSeason{}, false
	}
	return *ps, true
}

// GameResult reads back a stored v2 payload from any live slice.
func (s *State) GameResult(gameID string) (*result.GameResultV2, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.Regular.GameResults[gameID]; ok {
		return r, true
	}
	for _, sl := range s.PhaseContainers {
		if r, ok := sl.GameResults[gameID]; ok {
			return r, true
		}
	}
	return nil, false
}

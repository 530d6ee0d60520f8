package league

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jbickford/hoopsgm/internal/result"
)

// IngestGameResult folds a validated v2 result into the season accumulators.
// A season-id mismatch triggers a rollover (archive + reset) before the
// ingest proceeds; the caller never sees that as an error.
func (s *State) IngestGameResult(v2 *result.GameResultV2) error {
	if err := result.Validate(v2); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seasonID := v2.Game.SeasonID
	if s.ActiveSeasonID == "" {
		s.ActiveSeasonID = seasonID
	} else if s.ActiveSeasonID != seasonID {
		s.rolloverLocked(seasonID)
	}

	slice := s.sliceFor(v2.Game.Phase)
	if _, dup := slice.GameResults[v2.Game.GameID]; dup {
		return &IngestError{Msg: "game " + v2.Game.GameID + " already ingested"}
	}

	for teamID, team := range v2.Teams {
		ts := slice.TeamStats[teamID]
		if ts == nil {
			ts = &TeamSeason{Totals: map[string]float64{}, Breakdowns: map[string]map[string]float64{}}
			slice.TeamStats[teamID] = ts
		}
		ts.Games++
		for k, v := range team.Totals {
			ts.Totals[k] += v
		}
		for k, v := range team.ExtraTotals {
			ts.Totals[k] += v
		}
		for group, inner := range team.Breakdowns {
			dst := ts.Breakdowns[group]
			if dst == nil {
				dst = map[string]float64{}
				ts.Breakdowns[group] = dst
			}
			for k, v := range inner {
				dst[k] += v
			}
		}

		for _, row := range team.Players {
			ps := slice.PlayerStats[row.PlayerID]
			if ps == nil {
				ps = &PlayerSeason{Totals: map[string]float64{}}
				slice.PlayerStats[row.PlayerID] = ps
			}
			ps.Name = row.Name
			ps.TeamID = teamID
			ps.Games++
			for k, v := range row.Stats {
				ps.Totals[k] += v
			}
		}
	}

	summary := GameSummary{
		GameID:     v2.Game.GameID,
		Date:       v2.Game.Date,
		HomeTeamID: v2.Game.HomeTeamID,
		AwayTeamID: v2.Game.AwayTeamID,
		HomeScore:  v2.Final[v2.Game.HomeTeamID],
		AwayScore:  v2.Final[v2.Game.AwayTeamID],
		Status:     "final",
		IsOvertime: v2.IsOvertime(),
		Phase:      v2.Game.Phase,
		SeasonID:   seasonID,
	}
	slice.Games = append(slice.Games, summary)
	slice.GameResults[v2.Game.GameID] = v2

	if entry, ok := s.MasterSchedule.ByID[v2.Game.GameID]; ok {
		entry.Status = "final"
		entry.HomeScore = summary.HomeScore
		entry.AwayScore = summary.AwayScore
		entry.GameDate = v2.Game.Date
	}

	s.Turn++

	if s.views != nil {
		s.views.InvalidateGame(context.Background(), v2)
	}

	logrus.WithFields(logrus.Fields{
		"game_id":    v2.Game.GameID,
		"phase":      v2.Game.Phase,
		"season_id":  seasonID,
		"home":       v2.Game.HomeTeamID,
		"away":       v2.Game.AwayTeamID,
		"home_score": summary.HomeScore,
		"away_score": summary.AwayScore,
	}).Info("game ingested")
	return nil
}

// rolloverLocked archives the live slices under the outgoing season and
// resets the accumulators. Caller holds the write lock.
func (s *State) rolloverLocked(nextSeasonID string) {
	archive := &SeasonArchive{
		Regular:         s.Regular,
		PhaseContainers: s.PhaseContainers,
		ArchivedAtTurn:  s.Turn,
	}
	s.SeasonHistory[s.ActiveSeasonID] = archive

	s.Regular = NewSlice()
	s.PhaseContainers = map[result.Phase]*Slice{
		result.PhasePreseason: NewSlice(),
		result.PhasePlayIn:    NewSlice(),
		result.PhasePlayoffs:  NewSlice(),
	}
	logrus.WithFields(logrus.Fields{
		"from": s.ActiveSeasonID,
		"to":   nextSeasonID,
		"turn": s.Turn,
	}).Info("season rollover")
	s.ActiveSeasonID = nextSeasonID

	if s.views != nil {
		s.views.InvalidateAll(context.Background())
	}
}

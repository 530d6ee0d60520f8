package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// Option tweaks a single SimulateGame call.
type Option func(*gameOptions)

type gameOptions struct {
	validation ValidationConfig
	logger     *logrus.Entry
}

// WithValidation overrides the default permissive validation.
func WithValidation(vc ValidationConfig) Option {
	return func(o *gameOptions) { o.validation = vc }
}

// WithLogger attaches a structured logger; the engine logs game boundaries at
// Info and validation clamps at Warn.
func WithLogger(entry *logrus.Entry) Option {
	return func(o *gameOptions) { o.logger = entry }
}

// SimulateGame runs a full game between two prepared team states and emits
// the raw result. All randomness flows from rng; identical (seed, config,
// rosters, tactics) yield identical output.
func SimulateGame(rng *rand.Rand, home, away *TeamState, era string, opts ...Option) (*RawGameResult, error) {
	o := gameOptions{validation: DefaultValidation()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	cfg, err := LoadEra(era)
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{}
	if err := sanitizeTeam(home, cfg, o.validation, report); err != nil {
		return nil, err
	}
	if err := sanitizeTeam(away, cfg, o.validation, report); err != nil {
		return nil, err
	}
	for _, w := range report.Warnings {
		log.WithFields(logrus.Fields{"home": home.TeamID, "away": away.TeamID}).Warn(w)
	}
	if err := validateIdentities(home, away); err != nil {
		return nil, err
	}

	gs := NewGameState(cfg, home, away)
	enforcePrimaryInitiatorStart(gs, SideHome, home)
	enforcePrimaryInitiatorStart(gs, SideAway, away)
	rules := RulesFrom(cfg)

	teamFor := func(side Side) *TeamState {
		if side == SideHome {
			return home
		}
		return away
	}

	var debugTrail []string

	playPeriod := func(offSide Side) {
		start := StartQuarter
		for gs.ClockSec > 0 {
			gs.ShotClockSec = cfg.Knobs.ShotClockSec
			clockBefore := gs.ClockSec

			off := teamFor(offSide)
			def := teamFor(offSide.Opponent())
			ctx := NewPossessionContext(rng, offSide, start)
			res := SimulatePossession(off, def, gs, rules, ctx, cfg)
			if len(ctx.Errors) > 0 {
				debugTrail = append(debugTrail, ctx.Errors...)
			}

			elapsed := clockBefore - gs.ClockSec
			applyMinutes(gs, elapsed)
			applyFatigue(off, gs, offSide, elapsed, res.FatigueIntensity, cfg, rules.FoulOutLimit)
			applyFatigue(def, gs, offSide.Opponent(), elapsed, res.FatigueIntensity*0.9, cfg, rules.FoulOutLimit)

			off.Totals.Possessions++
			off.PossessionEnds[classify(res)]++
			if start == StartAfterTOV || start == StartAfterTOVDead {
				off.Totals.PointsOffTOV += res.Points
			}
			if (start == StartAfterTOV || start == StartAfterDRB) &&
				res.FirstFGAShotClock >= cfg.Knobs.FastbreakShotClock {
				off.Totals.FastbreakPTS += res.Points
			}
			off.Totals.SecondChancePTS += res.PointsAfterORB

			rotate(home, gs, SideHome, cfg, rules.FoulOutLimit)
			rotate(away, gs, SideAway, cfg, rules.FoulOutLimit)

			if res.EndReason == EndPeriodEnd {
				return
			}
			offSide = offSide.Opponent()
			start = res.NextStart
		}
	}

	for q := 1; q <= cfg.Knobs.RegulationQuarters; q++ {
		gs.Quarter = q
		gs.ClockSec = cfg.Knobs.QuarterLengthSec
		gs.PeriodFouls = map[Side]int{SideHome: 0, SideAway: 0}
		playPeriod(periodStartSide(q))
		if q < cfg.Knobs.RegulationQuarters {
			applyRest(home, gs, SideHome, cfg.Knobs.RestBetweenPeriods, rules.FoulOutLimit)
			applyRest(away, gs, SideAway, cfg.Knobs.RestBetweenPeriods, rules.FoulOutLimit)
		}
	}

	overtimes := 0
	for home.Totals.PTS == away.Totals.PTS {
		overtimes++
		gs.Quarter = cfg.Knobs.RegulationQuarters + overtimes
		gs.ClockSec = cfg.Knobs.OvertimeLengthSec
		gs.PeriodFouls = map[Side]int{SideHome: 0, SideAway: 0}
		applyRest(home, gs, SideHome, cfg.Knobs.RestPreOvertime, rules.FoulOutLimit)
		applyRest(away, gs, SideAway, cfg.Knobs.RestPreOvertime, rules.FoulOutLimit)
		playPeriod(overtimeStartSide(rng, gs, home, away, cfg))
	}

	log.WithFields(logrus.Fields{
		"home":      home.TeamID,
		"away":      away.TeamID,
		"home_pts":  home.Totals.PTS,
		"away_pts":  away.Totals.PTS,
		"overtimes": overtimes,
	}).Info("game complete")

	return assembleRaw(rng, gs, home, away, cfg, report, overtimes, debugTrail), nil
}

// classify buckets a finished possession for the offense's accumulators.
func classify(res PossessionResult) EndClass {
	if res.FTTrip {
		return EndClassFTTrip
	}
	switch res.EndReason {
	case EndScore, EndDRB:
		return EndClassFGA
	case EndTurnover, EndShotClock:
		return EndClassTOV
	default:
		return EndClassOther
	}
}

// periodStartSide: Q1/Q3 home ball, Q2/Q4 away ball.
func periodStartSide(q int) Side {
	if q%2 == 1 {
		return SideHome
	}
	return SideAway
}

// overtimeStartSide settles OT possession by jumpball when the era plays one:
// each side's best rebounding+physical on-court score through a sigmoid.
func overtimeStartSide(rng *rand.Rand, gs *GameState, home, away *TeamState, cfg *GameConfig) Side {
	if !cfg.Knobs.OTJumpball {
		if rng.Float64() < 0.5 {
			return SideHome
		}
		return SideAway
	}
	best := func(side Side, ts *TeamState) float64 {
		top := 0.0
		for _, p := range gs.Lineup(side, ts) {
			s := (p.Ability(ratings.RebDR) + p.Ability(ratings.Physical)) / 2
			if s > top {
				top = s
			}
		}
		return top
	}
	pHome := sigmoid((best(SideHome, home) - best(SideAway, away)) / cfg.Knobs.JumpballSigmoidScale)
	if rng.Float64() < pHome {
		return SideHome
	}
	return SideAway
}

func assembleRaw(rng *rand.Rand, gs *GameState, home, away *TeamState, cfg *GameConfig, report *ValidationReport, overtimes int, debugTrail []string) *RawGameResult {
	raw := &RawGameResult{
		Meta: RawMeta{
			EngineVersion:   EngineVersion,
			Era:             cfg.Era,
			EraVersion:      cfg.EraVersion,
			OvertimePeriods: overtimes,
			ReplayToken:     replayToken(rng, home.TeamID, away.TeamID, cfg.Era),
			Validation:      *report,
			InternalDebug:   debugTrail,
		},
		PossessionsPerTeam: (home.Totals.Possessions + away.Totals.Possessions) / 2,
		Teams:              map[string]*RawTeamResult{},
		GameState: RawGameState{
			TeamFouls:        map[string]int{},
			PlayerFouls:      map[string]map[string]int{},
			Fatigue:          map[string]map[string]float64{},
			MinutesPlayedSec: map[string]map[string]float64{},
		},
	}

	for _, sideTeam := range []struct {
		side Side
		ts   *TeamState
	}{{SideHome, home}, {SideAway, away}} {
		side, ts := sideTeam.side, sideTeam.ts

		box := map[string]PlayerBoxRow{}
		energySum := 0.0
		for _, p := range ts.Roster {
			box[p.PID] = PlayerBoxRow{
				PlayerID:   p.PID,
				TeamID:     ts.TeamID,
				Name:       p.Name,
				Box:        p.Box,
				MinutesSec: gs.MinutesSec[side][p.PID],
				Energy:     p.Energy,
			}
			energySum += p.Energy
		}

		raw.Teams[ts.TeamID] = &RawTeamResult{
			Totals:         ts.Totals,
			ShotZones:      ts.ShotZones,
			PossessionEnds: ts.PossessionEnds,
			ActionCounts:   ts.ActionCounts,
			OutcomeCounts:  ts.OutcomeCounts,
			PlayerBox:      box,
			AvgFatigue:     energySum / float64(len(ts.Roster)),
		}

		fouls := map[string]int{}
		for pid, n := range gs.PlayerFouls[side] {
			fouls[pid] = n
		}
		fatigue := map[string]float64{}
		minutes := map[string]float64{}
		for _, p := range ts.Roster {
			fatigue[p.PID] = p.Energy
		}
		for pid, sec := range gs.MinutesSec[side] {
			minutes[pid] = sec
		}
		raw.GameState.TeamFouls[ts.TeamID] = gs.TeamFouls[side]
		raw.GameState.PlayerFouls[ts.TeamID] = fouls
		raw.GameState.Fatigue[ts.TeamID] = fatigue
		raw.GameState.MinutesPlayedSec[ts.TeamID] = minutes
	}

	return raw
}

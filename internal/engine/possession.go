package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// Rules carries the per-game rule snapshot the possession loop consults.
// Derived once from the era knobs so a config swap mid-game is impossible.
type Rules struct {
	BonusThreshold      int
	FoulOutLimit        int
	BonusNonShootingFTs bool
}

// RulesFrom snapshots the foul rules out of an era config.
func RulesFrom(cfg *GameConfig) Rules {
	return Rules{
		BonusThreshold:      cfg.Knobs.BonusThreshold,
		FoulOutLimit:        cfg.Knobs.FoulOutLimit,
		BonusNonShootingFTs: cfg.Knobs.BonusNonShootingFTs,
	}
}

// PossessionContext is scratch state for one possession plus the handful of
// signals that persist across steps (carry delta, pass chain). The Errors
// slice collects resolution warnings that must never abort a game.
type PossessionContext struct {
	Rng     *rand.Rand
	OffSide Side
	Start   PossessionStart

	Style *ShotDietStyle

	// CarryLogitDelta is bequeathed by the previous completed pass and
	// consumed exactly once by the next shot, pass, or foul-draw check.
	CarryLogitDelta float64
	// RoleLogitDelta is set by the role-fit grade of the action executor.
	RoleLogitDelta float64

	PassChain     int
	LastPasserPID string

	Errors []string

	defAssign *defenseAssignment

	fatigueIntensity  float64
	firstFGAShotClock float64
	hadORB            bool
	pointsAfterORB    int
	ftTrip            bool
}

// NewPossessionContext resets per-possession scratch; carry state never
// outlives a possession.
func NewPossessionContext(rng *rand.Rand, offSide Side, start PossessionStart) *PossessionContext {
	return &PossessionContext{
		Rng:               rng,
		OffSide:           offSide,
		Start:             start,
		firstFGAShotClock: -1,
	}
}

func (ctx *PossessionContext) warnf(format string, args ...interface{}) {
	ctx.Errors = append(ctx.Errors, fmt.Sprintf(format, args...))
}

// consumeCarry hands out the pass carry delta exactly once.
func (ctx *PossessionContext) consumeCarry() float64 {
	d := ctx.CarryLogitDelta
	ctx.CarryLogitDelta = 0
	return d
}

func (ctx *PossessionContext) consumeRoleDelta() float64 {
	d := ctx.RoleLogitDelta
	ctx.RoleLogitDelta = 0
	return d
}

// defenseAssignmentFor lazily solves the defensive role assignment for this
// possession's lineup. A panic inside the solver degrades to neutral fit.
func (ctx *PossessionContext) defenseAssignmentFor(def *TeamState, defLineup []*Player, cfg *GameConfig) *defenseAssignment {
	if ctx.defAssign != nil {
		return ctx.defAssign
	}
	da := func() (out defenseAssignment) {
		defer func() {
			if r := recover(); r != nil {
				ctx.warnf("defense assignment solve failed: %v", r)
				out = defenseAssignment{FitByRole: map[string]float64{}, AvgFit: 50}
			}
		}()
		return solveDefenseAssignment(defLineup, cfg.DefenseRoleProfiles[def.Tactics.DefenseScheme])
	}()
	ctx.defAssign = &da
	return ctx.defAssign
}

// orOne treats an unset sharpness/strength scalar as neutral.
func orOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// followupBias overlays extra weight on specific actions after a pass or an
// offensive rebound.
type followupBias map[BaseAction]float64

var (
	biasAfterKick = followupBias{ActionSpotUp: 2.4, ActionExtraPass: 1.7}
	biasShortRoll = followupBias{ActionDrive: 2.0, ActionKickout: 1.7}
	biasAfterORB  = followupBias{ActionKickout: 1.8, ActionExtraPass: 1.6, ActionDrive: 1.5}
)

// sampleAction builds the action distribution for one step: scheme prior,
// defensive scheme skew, shot-diet log multipliers, persistent team biases,
// then the transition boost when the ball just changed hands live.
func sampleAction(off, def *TeamState, cfg *GameConfig, ctx *PossessionContext, start PossessionStart, bias followupBias) BaseAction {
	prior := cfg.OffenseActionWeights[off.Tactics.OffenseScheme]
	defMults := cfg.DefenseActionMults[def.Tactics.DefenseScheme]
	alpha := cfg.AlphaFor(off.Tactics.OffenseScheme)
	alphaAction := alpha.Action * orOne(off.Tactics.OffSharpness)

	weights := make([]float64, len(AllActions))
	for i, action := range AllActions {
		w := prior[action]
		if w <= 0 {
			w = 0.01
		}
		if m, ok := defMults[action]; ok {
			w *= m
		}

		m := 1.0
		// Style coefs are keyed pre-alias: HornsSet reads its own row even
		// though its priors and time costs resolve through PnR.
		if coefs, ok := cfg.ActionStyleCoefs[action]; ok && ctx.Style != nil {
			m *= expSafe(ctx.Style.ActionLogMult(coefs))
		}
		if tm, ok := off.Tactics.ActionWeightMult[action]; ok {
			m *= tm
		}
		if cb, ok := off.Tactics.Context["action_bias_"+string(action)]; ok {
			m *= cb
		}
		w *= clampMultLog(m, cfg.Knobs.ActionMultLo, cfg.Knobs.ActionMultHi, alphaAction)

		if action == ActionTransitionEarly && (start == StartAfterTOV || start == StartAfterDRB) {
			w *= cfg.Knobs.TransitionBoost
		}
		if b, ok := bias[action]; ok {
			w *= b
		}
		weights[i] = w
	}
	return AllActions[sampleIndex(ctx.Rng, weights)]
}

// sampleOutcome builds the outcome distribution for a chosen action and
// executor: config prior, shot-diet and scheme multipliers, team overrides,
// role-fit negative amplification, and defensive turnover pressure.
func sampleOutcome(off, def *TeamState, cfg *GameConfig, ctx *PossessionContext, action BaseAction, grade FitGrade, toPressure float64) (Outcome, bool) {
	base := cfg.BaseFor(action)
	priors := cfg.OutcomePriors[base]
	if len(priors) == 0 {
		return Outcome{}, false
	}
	alpha := cfg.AlphaFor(off.Tactics.OffenseScheme)
	alphaOutcome := alpha.Outcome * orOne(off.Tactics.OffStrength)
	negMult, _ := fitPenalty(grade)
	defMults := cfg.SchemeOutcomeMults[def.Tactics.DefenseScheme]
	offMults := cfg.OffSchemeOutcomeMults[off.Tactics.OffenseScheme]

	weights := make([]float64, len(priors))
	for i, wo := range priors {
		label := wo.Outcome.Label()
		m := 1.0
		if coefs, ok := cfg.OutcomeStyleCoefs[label]; ok && ctx.Style != nil {
			m *= expSafe(ctx.Style.ActionLogMult(coefs))
		}
		if dm, ok := defMults[label]; ok {
			m *= dm
		}
		if om, ok := offMults[label]; ok {
			m *= om
		}
		if gm, ok := off.Tactics.OutcomeGlobalMult[label]; ok {
			m *= gm
		}
		if byAction, ok := off.Tactics.OutcomeByActionMult[action]; ok {
			if am, ok := byAction[label]; ok {
				m *= am
			}
		}
		w := wo.Weight * clampMultLog(m, cfg.Knobs.OutcomeMultLo, cfg.Knobs.OutcomeMultHi, alphaOutcome)
		if negativeOutcome(wo.Outcome) {
			w *= negMult
		}
		if wo.Outcome.Kind == OutTurnover {
			w *= toPressure
		}
		weights[i] = w
	}
	chosen := priors[sampleIndex(ctx.Rng, weights)].Outcome
	return chosen, negativeOutcome(chosen)
}

func expSafe(lm float64) float64 {
	return math.Exp(clampF(lm, -1.5, 1.5))
}

// attemptInbound samples an inbound turnover against the best on-ball
// pressure defender. Returns true when the ball was lost.
func attemptInbound(off, def *TeamState, gs *GameState, ctx *PossessionContext, cfg *GameConfig, offLineup, defLineup []*Player) bool {
	inbounder := pickInbounder(offLineup)
	if inbounder == nil {
		return false
	}
	bestSteal := 0.0
	for _, p := range defLineup {
		if s := p.Ability(ratings.DefSteal); s > bestSteal {
			bestSteal = s
		}
	}
	passSafe := inbounder.Ability(ratings.PassCreate)*0.5 + inbounder.Ability(ratings.HandleSafe)*0.5
	p := clampF(cfg.Knobs.InboundTOVBase+(bestSteal-passSafe)*0.0004, cfg.Knobs.InboundTOVMin, cfg.Knobs.InboundTOVMax)
	if ctx.Rng.Float64() >= p {
		return false
	}
	inbounder.Box.TOV++
	off.Totals.TOV++
	off.OutcomeCounts[TOInbound.String()]++
	if stealer := pickStealer(ctx.Rng, defLineup); stealer != nil {
		stealer.Box.STL++
	}
	return true
}

// SimulatePossession runs one possession to its terminal event. It owns all
// stat accrual for the possession; the orchestrator only folds the returned
// summary into clocks, minutes, and classification counters.
func SimulatePossession(off, def *TeamState, gs *GameState, rules Rules, ctx *PossessionContext, cfg *GameConfig) PossessionResult {
	gs.Possession++
	startPTS := off.Totals.PTS

	finish := func(reason EndReason, next PossessionStart) PossessionResult {
		return PossessionResult{
			EndReason:         reason,
			NextStart:         next,
			Points:            off.Totals.PTS - startPTS,
			HadORB:            ctx.hadORB,
			PointsAfterORB:    ctx.pointsAfterORB,
			FTTrip:            ctx.ftTrip,
			FirstFGAShotClock: ctx.firstFGAShotClock,
			FatigueIntensity:  ctx.fatigueIntensity,
		}
	}

	offLineup := gs.Lineup(ctx.OffSide, off)
	defLineup := gs.Lineup(ctx.OffSide.Opponent(), def)

	if ctx.Start.DeadBall() {
		if attemptInbound(off, def, gs, ctx, cfg, offLineup, defLineup) {
			return finish(EndTurnover, StartAfterTOV)
		}
	}

	ctx.Style = styleFor(off, def, offLineup, defLineup)
	da := ctx.defenseAssignmentFor(def, defLineup, cfg)
	// Defensive scheme fit leans on ball security: a locked-in defense
	// squeezes extra turnovers out of every action.
	toPressure := clampF(1+(da.AvgFit-50)/200, 0.85, 1.20)

	posStart := ctx.Start
	var bias followupBias
	// Stall guard: only steps that fail to move the game clock count toward
	// the bailout; any clock consumption resets the run.
	stallSteps := 0
	lastClockSec := math.Inf(1)

	for {
		if gs.ClockSec >= lastClockSec {
			stallSteps++
		} else {
			stallSteps = 0
		}
		lastClockSec = gs.ClockSec

		var action BaseAction
		var cost float64
		if stallSteps >= cfg.Knobs.MaxSteps {
			action = ActionSpotUp
			cost = cfg.Knobs.BailoutTimeCost
		} else {
			if ctx.PassChain >= cfg.Knobs.PassChainForceSpot {
				action = ActionSpotUp
			} else {
				action = sampleAction(off, def, cfg, ctx, posStart, bias)
			}
			cost = cfg.ActionTimeCosts[cfg.BaseFor(action)].Sample(ctx.Rng) * cfg.Knobs.TempoMult
		}
		bias = nil
		off.ActionCounts[action]++
		ctx.fatigueIntensity += cfg.ActionFatigue[action]

		gs.ClockSec -= cost
		gs.ShotClockSec -= cost
		if gs.ClockSec <= 0 {
			gs.ClockSec = 0
			return finish(EndPeriodEnd, StartQuarter)
		}
		if gs.ShotClockSec <= 0 {
			executor := pickBallHandler(ctx.Rng, off, offLineup, action)
			executor.Box.TOV++
			off.Totals.TOV++
			off.OutcomeCounts[TOShotClock.String()]++
			return finish(EndShotClock, StartAfterTOVDead)
		}

		executor := pickBallHandler(ctx.Rng, off, offLineup, action)
		grade := gradeActionFit(executor, action)
		_, roleDelta := fitPenalty(grade)
		ctx.RoleLogitDelta = roleDelta

		outcome, isNegative := sampleOutcome(off, def, cfg, ctx, action, grade, toPressure)
		if isNegative {
			off.BadOutcomesByGrade[grade]++
		}
		off.OutcomeCounts[outcome.Label()]++

		res := resolveOutcome(off, def, gs, rules, ctx, cfg, action, outcome, executor, offLineup, defLineup)

		switch res.terminal {
		case termScore:
			return finish(EndScore, StartAfterScore)
		case termTurnover:
			next := StartAfterTOVDead
			if res.liveBall {
				next = StartAfterTOV
			}
			return finish(EndTurnover, next)
		case termDRB:
			return finish(EndDRB, StartAfterDRB)
		case termFoulNoShots:
			gs.ClockSec -= cfg.Knobs.DeadBallTimeCost
			if gs.ClockSec <= 0 {
				gs.ClockSec = 0
				return finish(EndPeriodEnd, StartQuarter)
			}
			if gs.ShotClockSec < cfg.Knobs.FoulResetSec {
				gs.ShotClockSec = cfg.Knobs.FoulResetSec
			}
			if attemptInbound(off, def, gs, ctx, cfg, offLineup, defLineup) {
				return finish(EndTurnover, StartAfterTOV)
			}
			posStart = StartAfterFoul
		case termORB:
			if res.afterFT {
				if gs.ShotClockSec < cfg.Knobs.FoulResetSec {
					gs.ShotClockSec = cfg.Knobs.FoulResetSec
				}
			} else if gs.ShotClockSec < cfg.Knobs.OrbResetSec {
				gs.ShotClockSec = cfg.Knobs.OrbResetSec
			}
			ctx.hadORB = true
			bias = biasAfterORB
			posStart = StartAfterFoul
		case termReset:
			gs.ClockSec -= cfg.Knobs.ResetTimeCost
			gs.ShotClockSec -= cfg.Knobs.ResetTimeCost
			if gs.ClockSec <= 0 {
				gs.ClockSec = 0
				return finish(EndPeriodEnd, StartQuarter)
			}
			if gs.ShotClockSec <= 0 {
				executor.Box.TOV++
				off.Totals.TOV++
				off.OutcomeCounts[TOShotClock.String()]++
				return finish(EndShotClock, StartAfterTOVDead)
			}
		case termContinue:
			ctx.PassChain++
			passCost := cfg.PassTimeCosts[res.passKind].Sample(ctx.Rng) * cfg.Knobs.TempoMult
			gs.ClockSec -= passCost
			gs.ShotClockSec -= passCost
			if gs.ClockSec <= 0 {
				gs.ClockSec = 0
				return finish(EndPeriodEnd, StartQuarter)
			}
			if gs.ShotClockSec <= 0 {
				executor.Box.TOV++
				off.Totals.TOV++
				off.OutcomeCounts[TOShotClock.String()]++
				return finish(EndShotClock, StartAfterTOVDead)
			}
			if res.passKind == PassShortRoll {
				bias = biasShortRoll
			} else {
				bias = biasAfterKick
			}
		}
	}
}

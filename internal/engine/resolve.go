package engine

import (
	"github.com/jbickford/hoopsgm/internal/ratings"
)

// resolution terminal states for a single outcome step.
type terminal uint8

const (
	termScore terminal = iota
	termTurnover
	termDRB
	termFoulNoShots
	termORB
	termReset
	termContinue
)

type resolution struct {
	terminal terminal
	liveBall bool
	passKind PassKind
	// afterFT marks an ORB terminal that followed a missed free throw, which
	// resets the shot clock with foul_reset instead of orb_reset.
	afterFT bool
}

// defenseSnapshot averages the defensive lineup's abilities into one virtual
// defender used by the profile scoring.
func defenseSnapshot(defLineup []*Player) map[ratings.Ability]float64 {
	snap := make(map[ratings.Ability]float64, len(ratings.All))
	if len(defLineup) == 0 {
		return snap
	}
	for _, a := range ratings.All {
		sum := 0.0
		for _, p := range defLineup {
			sum += p.Ability(a)
		}
		snap[a] = sum / float64(len(defLineup))
	}
	return snap
}

// addPoints accrues points on the player and team, splitting the
// second-chance slice when the possession already had an offensive board.
func addPoints(off *TeamState, ctx *PossessionContext, shooter *Player, pts int) {
	shooter.Box.PTS += pts
	off.Totals.PTS += pts
	if ctx.hadORB {
		ctx.pointsAfterORB += pts
	}
}

// shotMakeProb implements the logistic shot model. Everything that can panic
// (missing profiles, empty lineups) degrades to the neutral base probability.
func shotMakeProb(off, def *TeamState, ctx *PossessionContext, cfg *GameConfig, kind ShotKind, shooter *Player, defLineup []*Player) float64 {
	label := kind.String()
	base := cfg.ShotBase[kind]
	switch {
	case kind == ShotRim || kind == ShotClose:
		base *= cfg.Knobs.RimBaseMult
	case kind == ShotMid || kind == ShotPost:
		base *= cfg.Knobs.MidBaseMult
	case kind.IsThree():
		base *= cfg.Knobs.ThreeBaseMult
	}

	offScore := cfg.OffenseProfiles[label].Score(shooter.Abilities)
	defScore := cfg.DefenseProfiles[label].Score(defenseSnapshot(defLineup))
	// Dampen the lineup defense term: the role-fit q_delta already prices in
	// how well this five fits its scheme.
	defMixed := 50 + (defScore-50)*cfg.Knobs.MixDefScoreForShot

	da := ctx.defAssign
	qDelta := 0.0
	if da != nil {
		qDelta = qualityScore(offScore, da.AvgFit) * cfg.Knobs.QualityLogitScale
	}
	fatigueDelta := -(1 - clampF(shooter.Energy, 0, 1)) * cfg.Knobs.FatigueLogitMax

	x := logit(base) +
		(offScore-defMixed)/cfg.Knobs.LogisticSlope +
		ctx.consumeRoleDelta() +
		ctx.consumeCarry() +
		qDelta +
		fatigueDelta

	variance := cfg.Knobs.VarianceMin + ctx.Rng.Float64()*(cfg.Knobs.VarianceMax-cfg.Knobs.VarianceMin)
	return clampF(sigmoid(x)*variance, cfg.Knobs.PMin, cfg.Knobs.PMax)
}

// recordShotAttempt books the FGA-side counters and the shot zone.
func recordShotAttempt(off *TeamState, ctx *PossessionContext, cfg *GameConfig, gs *GameState, action BaseAction, kind ShotKind, shooter *Player) {
	shooter.Box.FGA++
	off.Totals.FGA++
	if kind.IsThree() {
		shooter.Box.TPA++
		off.Totals.TPA++
	}
	if ctx.firstFGAShotClock < 0 {
		ctx.firstFGAShotClock = gs.ShotClockSec
	}
	zone := ZoneMid
	switch {
	case kind == ShotRim:
		zone = ZoneRim
	case kind == ShotClose || kind == ShotPost:
		zone = ZonePaint
	case kind.IsThree():
		zone = ZoneAbove3
		if ctx.Rng.Float64() < cfg.Corner3GivenAction[cfg.BaseFor(action)] {
			zone = ZoneCorner3
		}
	}
	off.ShotZones[zone]++
}

// recordShotMake books the make-side counters, points, and assist credit.
func recordShotMake(off *TeamState, ctx *PossessionContext, kind ShotKind, shooter *Player, offLineup []*Player) {
	shooter.Box.FGM++
	off.Totals.FGM++
	pts := 2
	if kind.IsThree() {
		shooter.Box.TPM++
		off.Totals.TPM++
		pts = 3
	}
	if kind.IsPaint() {
		off.Totals.PITP += pts
	}
	addPoints(off, ctx, shooter, pts)
	if ctx.PassChain > 0 || ctx.LastPasserPID != "" {
		if assister := pickAssister(ctx.Rng, off, offLineup, shooter, ctx.LastPasserPID); assister != nil {
			assister.Box.AST++
			off.Totals.AST++
		}
	}
}

// liveRebound settles a live miss: offensive board keeps the possession
// alive, defensive board ends it.
func liveRebound(off, def *TeamState, ctx *PossessionContext, offLineup, defLineup []*Player) bool {
	pORB := 0.27
	if ctx.Style != nil {
		pORB = clampF(0.27+(ctx.Style.Feature(FeatOffGlass)-ctx.Style.Feature(FeatDefGlass))*0.25, 0.12, 0.45)
	}
	if ctx.Rng.Float64() < pORB {
		if r := pickRebounder(ctx.Rng, offLineup, true); r != nil {
			r.Box.ORB++
		}
		off.Totals.ORB++
		return true
	}
	if r := pickRebounder(ctx.Rng, defLineup, false); r != nil {
		r.Box.DRB++
	}
	def.Totals.DRB++
	return false
}

// chargeFoul attributes a defensive foul, updating personal and team
// counters. Foul-out zeroes energy so the rotation pass benches the player.
func chargeFoul(gs *GameState, rules Rules, ctx *PossessionContext, def *TeamState, defLineup []*Player) {
	defSide := ctx.OffSide.Opponent()
	fouler := pickFouler(ctx.Rng, gs, defSide, defLineup, rules.FoulOutLimit)
	if fouler == nil {
		return
	}
	fouler.Box.PF++
	gs.PlayerFouls[defSide][fouler.PID]++
	gs.TeamFouls[defSide]++
	gs.PeriodFouls[defSide]++
	if gs.PlayerFouls[defSide][fouler.PID] >= rules.FoulOutLimit {
		fouler.Energy = 0
	}
}

// freeThrowProb maps the FT ability onto a make probability.
func freeThrowProb(shooter *Player) float64 {
	return clampF(0.40+shooter.Ability(ratings.ShotFT)*0.0055, 0.40, 0.95)
}

// shootFreeThrows runs an FT trip. Returns whether the final attempt was
// made; a missed final attempt goes to the glass.
func shootFreeThrows(off *TeamState, ctx *PossessionContext, shooter *Player, n int) (lastMade bool) {
	ctx.ftTrip = true
	p := freeThrowProb(shooter)
	for i := 0; i < n; i++ {
		shooter.Box.FTA++
		off.Totals.FTA++
		made := ctx.Rng.Float64() < p
		if made {
			shooter.Box.FTM++
			off.Totals.FTM++
			addPoints(off, ctx, shooter, 1)
		}
		lastMade = made
	}
	return lastMade
}

// foulTargetShot maps a drawn shooting foul to its would-be shot kind. When
// the era carries a foul-target row for the action, the realized target is
// sampled from it; jumper fouls then split mid vs three by how
// perimeter-oriented the action is.
func foulTargetShot(ctx *PossessionContext, cfg *GameConfig, action BaseAction, target FoulTarget) ShotKind {
	if dist := cfg.FoulTargetProbs[cfg.BaseFor(action)]; len(dist) > 0 {
		weights := make([]float64, len(AllFoulTargets))
		for i, ft := range AllFoulTargets {
			weights[i] = dist[ft]
		}
		target = AllFoulTargets[sampleIndex(ctx.Rng, weights)]
	}
	switch target {
	case FoulTargetPost:
		return ShotPost
	case FoulTargetRim:
		return ShotRim
	}
	threeProb := 0.35
	switch action {
	case ActionSpotUp, ActionKickout, ActionExtraPass:
		threeProb = 0.75
	}
	if ctx.Rng.Float64() < threeProb {
		if action == ActionSpotUp || action == ActionKickout || action == ActionExtraPass {
			return ShotCS3
		}
		return ShotOD3
	}
	return ShotMid
}

// contactPenalty samples the contact bucket for a fouled shot.
func contactPenalty(ctx *PossessionContext, cfg *GameConfig) float64 {
	r := ctx.Rng.Float64()
	switch {
	case r < 0.35:
		return cfg.Knobs.FoulContactHard
	case r < 0.80:
		return cfg.Knobs.FoulContactNormal
	default:
		return cfg.Knobs.FoulContactSoft
	}
}

func resolveOutcome(off, def *TeamState, gs *GameState, rules Rules, ctx *PossessionContext, cfg *GameConfig, action BaseAction, outcome Outcome, executor *Player, offLineup, defLineup []*Player) resolution {
	switch outcome.Kind {
	case OutShot:
		return resolveShot(off, def, gs, rules, ctx, cfg, action, outcome.Shot, offLineup, defLineup)
	case OutPass:
		return resolvePass(off, def, ctx, cfg, outcome.Pass, offLineup, defLineup)
	case OutTurnover:
		return resolveTurnover(off, gs, rules, ctx, outcome.Turnover, executor, defLineup)
	case OutFoulDraw:
		return resolveFoulDraw(off, def, gs, rules, ctx, cfg, action, outcome.Target, offLineup, defLineup)
	case OutFoulReach:
		return resolveFoulReach(off, def, gs, rules, ctx, cfg, executor, offLineup, defLineup)
	case OutReset:
		ctx.consumeCarry()
		return resolution{terminal: termReset}
	}
	ctx.warnf("unhandled outcome kind %d, treating as reset", outcome.Kind)
	return resolution{terminal: termReset}
}

func resolveShot(off, def *TeamState, gs *GameState, rules Rules, ctx *PossessionContext, cfg *GameConfig, action BaseAction, kind ShotKind, offLineup, defLineup []*Player) resolution {
	shooter := pickShooter(ctx.Rng, off, offLineup, kind)
	if shooter == nil {
		ctx.warnf("no shooter available for %s", kind)
		return resolution{terminal: termReset}
	}
	p := shotMakeProb(off, def, ctx, cfg, kind, shooter, defLineup)
	recordShotAttempt(off, ctx, cfg, gs, action, kind, shooter)
	if ctx.Rng.Float64() < p {
		recordShotMake(off, ctx, kind, shooter, offLineup)
		return resolution{terminal: termScore}
	}
	// Rim pressure invites rejections.
	if kind.IsPaint() && ctx.Rng.Float64() < 0.10 {
		if blocker := weightedPick(ctx.Rng, defLineup, func(p *Player) float64 {
			return p.Ability(ratings.DefRim) - 15
		}); blocker != nil {
			blocker.Box.BLK++
		}
	}
	if liveRebound(off, def, ctx, offLineup, defLineup) {
		return resolution{terminal: termORB}
	}
	return resolution{terminal: termDRB}
}

func resolvePass(off, def *TeamState, ctx *PossessionContext, cfg *GameConfig, kind PassKind, offLineup, defLineup []*Player) resolution {
	passer := pickPasser(ctx.Rng, off, offLineup, kind)
	if passer == nil {
		return resolution{terminal: termReset}
	}
	label := kind.String()
	offScore := cfg.OffenseProfiles[label].Score(passer.Abilities)
	defScore := cfg.DefenseProfiles[label].Score(defenseSnapshot(defLineup))

	qScore := 0.0
	if da := ctx.defAssign; da != nil {
		qScore = qualityScore(offScore, da.AvgFit)
	}

	slope := cfg.Knobs.PassSigmoidSlope
	if ctx.Rng.Float64() < sigmoid(slope*(cfg.Knobs.PassTOMid-qScore)) {
		return passTurnover(off, ctx, passer, defLineup)
	}
	if ctx.Rng.Float64() < sigmoid(slope*(cfg.Knobs.PassResetMid-qScore)) {
		ctx.consumeCarry()
		return resolution{terminal: termReset}
	}

	fatigueDelta := -(1 - clampF(passer.Energy, 0, 1)) * cfg.Knobs.FatigueLogitMax
	x := logit(cfg.PassBase[kind]) +
		(offScore-defScore)/cfg.Knobs.LogisticSlope +
		ctx.consumeRoleDelta() +
		ctx.consumeCarry() +
		fatigueDelta
	if ctx.Rng.Float64() >= clampF(sigmoid(x), cfg.Knobs.PMin, 0.995) {
		return passTurnover(off, ctx, passer, defLineup)
	}

	// Completed: classify the advantage carried into the next touch.
	pPos, _, pNeg := softmax3(qScore*0.8, 0.3, -qScore*0.8)
	r := ctx.Rng.Float64()
	switch {
	case r < pPos:
		ctx.CarryLogitDelta = cfg.Knobs.CarryPosLogit
	case r < pPos+pNeg:
		ctx.CarryLogitDelta = cfg.Knobs.CarryNegLogit
	default:
		ctx.CarryLogitDelta = 0
	}
	ctx.LastPasserPID = passer.PID
	return resolution{terminal: termContinue, passKind: kind}
}

func passTurnover(off *TeamState, ctx *PossessionContext, passer *Player, defLineup []*Player) resolution {
	passer.Box.TOV++
	off.Totals.TOV++
	if stealer := pickStealer(ctx.Rng, defLineup); stealer != nil {
		stealer.Box.STL++
	}
	return resolution{terminal: termTurnover, liveBall: true}
}

func resolveTurnover(off *TeamState, gs *GameState, rules Rules, ctx *PossessionContext, kind TurnoverKind, executor *Player, defLineup []*Player) resolution {
	executor.Box.TOV++
	off.Totals.TOV++
	if kind.Live() {
		if stealer := pickStealer(ctx.Rng, defLineup); stealer != nil {
			stealer.Box.STL++
		}
	}
	if kind == TOOffensiveFoul {
		executor.Box.PF++
		gs.PlayerFouls[ctx.OffSide][executor.PID]++
		gs.TeamFouls[ctx.OffSide]++
		gs.PeriodFouls[ctx.OffSide]++
		if gs.PlayerFouls[ctx.OffSide][executor.PID] >= rules.FoulOutLimit {
			executor.Energy = 0
		}
	}
	ctx.consumeCarry()
	return resolution{terminal: termTurnover, liveBall: kind.Live()}
}

func resolveFoulDraw(off, def *TeamState, gs *GameState, rules Rules, ctx *PossessionContext, cfg *GameConfig, action BaseAction, target FoulTarget, offLineup, defLineup []*Player) resolution {
	kind := foulTargetShot(ctx, cfg, action, target)
	shooter := pickShooter(ctx.Rng, off, offLineup, kind)
	if shooter == nil {
		return resolution{terminal: termReset}
	}
	chargeFoul(gs, rules, ctx, def, defLineup)

	p := shotMakeProb(off, def, ctx, cfg, kind, shooter, defLineup) * contactPenalty(ctx, cfg)
	if ctx.Rng.Float64() < p {
		// And-one.
		recordShotAttempt(off, ctx, cfg, gs, action, kind, shooter)
		recordShotMake(off, ctx, kind, shooter, offLineup)
		if shootFreeThrows(off, ctx, shooter, 1) {
			return resolution{terminal: termScore}
		}
	} else {
		fts := 2
		if kind.IsThree() {
			fts = 3
		}
		if shootFreeThrows(off, ctx, shooter, fts) {
			return resolution{terminal: termScore}
		}
	}
	if liveRebound(off, def, ctx, offLineup, defLineup) {
		return resolution{terminal: termORB, afterFT: true}
	}
	return resolution{terminal: termDRB}
}

func resolveFoulReach(off, def *TeamState, gs *GameState, rules Rules, ctx *PossessionContext, cfg *GameConfig, executor *Player, offLineup, defLineup []*Player) resolution {
	chargeFoul(gs, rules, ctx, def, defLineup)
	defSide := ctx.OffSide.Opponent()
	inBonus := gs.PeriodFouls[defSide] >= rules.BonusThreshold
	if inBonus && rules.BonusNonShootingFTs {
		if shootFreeThrows(off, ctx, executor, 2) {
			return resolution{terminal: termScore}
		}
		if liveRebound(off, def, ctx, offLineup, defLineup) {
			return resolution{terminal: termORB, afterFT: true}
		}
		return resolution{terminal: termDRB}
	}
	return resolution{terminal: termFoulNoShots}
}

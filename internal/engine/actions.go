// Package engine implements the possession-level match simulator: action and
// outcome sampling, shot/pass/foul resolution, fatigue and clock accounting,
// rotation, and the per-game orchestrator that emits a RawGameResult.
package engine

// BaseAction is the offensive set call sampled at the top of each possession
// step.
type BaseAction string

const (
	ActionPnR             BaseAction = "PnR"
	ActionDrive           BaseAction = "Drive"
	ActionDHO             BaseAction = "DHO"
	ActionSpotUp          BaseAction = "SpotUp"
	ActionKickout         BaseAction = "Kickout"
	ActionExtraPass       BaseAction = "ExtraPass"
	ActionCut             BaseAction = "Cut"
	ActionPostUp          BaseAction = "PostUp"
	ActionHornsSet        BaseAction = "HornsSet"
	ActionTransitionEarly BaseAction = "TransitionEarly"
)

// AllActions lists every base action in sampling order. Distribution builders
// iterate this slice so weight ordering is deterministic.
var AllActions = []BaseAction{
	ActionPnR, ActionDrive, ActionDHO, ActionSpotUp, ActionKickout,
	ActionExtraPass, ActionCut, ActionPostUp, ActionHornsSet, ActionTransitionEarly,
}

// OffenseScheme and DefenseScheme name the fixed tactic families config
// tables are keyed by.
type OffenseScheme string

type DefenseScheme string

const (
	OffSpreadHeavyPnR  OffenseScheme = "Spread_HeavyPnR"
	OffFiveOut         OffenseScheme = "FiveOut"
	OffDriveKick       OffenseScheme = "Drive_Kick"
	OffMotionSplitCut  OffenseScheme = "Motion_SplitCut"
	OffDHOChicago      OffenseScheme = "DHO_Chicago"
	OffPostInsideOut   OffenseScheme = "Post_InsideOut"
	OffHornsElbow      OffenseScheme = "Horns_Elbow"
	OffTransitionEarly OffenseScheme = "Transition_Early"

	DefDrop             DefenseScheme = "Drop"
	DefSwitchEverything DefenseScheme = "Switch_Everything"
	DefZone             DefenseScheme = "Zone"
	DefHedgeShow        DefenseScheme = "Hedge_Show"
	DefGapPack          DefenseScheme = "Gap_Pack"
)

// ShotKind classifies a field-goal attempt.
type ShotKind uint8

const (
	ShotRim ShotKind = iota
	ShotClose
	ShotMid
	ShotCS3
	ShotOD3
	ShotPost
)

func (k ShotKind) String() string {
	switch k {
	case ShotRim:
		return "SHOT_RIM"
	case ShotClose:
		return "SHOT_CLOSE"
	case ShotMid:
		return "SHOT_MID"
	case ShotCS3:
		return "SHOT_3_CS"
	case ShotOD3:
		return "SHOT_3_OD"
	case ShotPost:
		return "SHOT_POST"
	}
	return "SHOT_UNKNOWN"
}

// IsThree reports whether the attempt counts as a three-point shot. Corner
// threes are a zone refinement of CS3/OD3, not a separate kind.
func (k ShotKind) IsThree() bool { return k == ShotCS3 || k == ShotOD3 }

// IsPaint reports whether a make scores points in the paint.
func (k ShotKind) IsPaint() bool { return k == ShotRim || k == ShotClose || k == ShotPost }

// PassKind classifies an advantage-creating pass.
type PassKind uint8

const (
	PassKickout PassKind = iota
	PassSkip
	PassExtra
	PassShortRoll
)

func (k PassKind) String() string {
	switch k {
	case PassKickout:
		return "PASS_KICKOUT"
	case PassSkip:
		return "PASS_SKIP"
	case PassExtra:
		return "PASS_EXTRA"
	case PassShortRoll:
		return "PASS_SHORTROLL"
	}
	return "PASS_UNKNOWN"
}

// TurnoverKind classifies a turnover. Live-ball turnovers feed transition for
// the other side; dead-ball ones force an inbound.
type TurnoverKind uint8

const (
	TOBadPass TurnoverKind = iota
	TOHandle
	TOOffensiveFoul
	TOInbound
	TOShotClock
)

func (k TurnoverKind) String() string {
	switch k {
	case TOBadPass:
		return "TO_BAD_PASS"
	case TOHandle:
		return "TO_HANDLE"
	case TOOffensiveFoul:
		return "TO_OFF_FOUL"
	case TOInbound:
		return "TO_INBOUND"
	case TOShotClock:
		return "TO_SHOTCLOCK"
	}
	return "TO_UNKNOWN"
}

// Live reports whether the turnover keeps the ball live (steal-and-go).
func (k TurnoverKind) Live() bool { return k == TOBadPass || k == TOHandle || k == TOInbound }

// FoulTarget is the would-be shot attached to a drawn shooting foul.
type FoulTarget uint8

const (
	FoulTargetJumper FoulTarget = iota
	FoulTargetPost
	FoulTargetRim
)

// AllFoulTargets lists the foul targets in sampling order.
var AllFoulTargets = []FoulTarget{FoulTargetJumper, FoulTargetPost, FoulTargetRim}

func (t FoulTarget) String() string {
	switch t {
	case FoulTargetJumper:
		return "FOUL_DRAW_JUMPER"
	case FoulTargetPost:
		return "FOUL_DRAW_POST"
	case FoulTargetRim:
		return "FOUL_DRAW_RIM"
	}
	return "FOUL_DRAW_UNKNOWN"
}

// ResetKind classifies a dead-end step that keeps the possession alive.
type ResetKind uint8

const (
	ResetSwing ResetKind = iota
	ResetBroken
)

func (k ResetKind) String() string {
	if k == ResetBroken {
		return "RESET_BROKEN"
	}
	return "RESET_SWING"
}

// OutcomeKind discriminates the Outcome sum type.
type OutcomeKind uint8

const (
	OutShot OutcomeKind = iota
	OutPass
	OutTurnover
	OutFoulDraw
	OutFoulReach
	OutReset
)

// Outcome is the terminal event of one step within a possession. Exactly one
// of the kind-specific fields is meaningful, selected by Kind. The zero value
// is a rim shot; resolvers must switch on Kind rather than compare structs.
type Outcome struct {
	Kind     OutcomeKind
	Shot     ShotKind
	Pass     PassKind
	Turnover TurnoverKind
	Target   FoulTarget
	Reset    ResetKind
}

func ShotOutcome(k ShotKind) Outcome         { return Outcome{Kind: OutShot, Shot: k} }
func PassOutcome(k PassKind) Outcome         { return Outcome{Kind: OutPass, Pass: k} }
func TurnoverOutcome(k TurnoverKind) Outcome { return Outcome{Kind: OutTurnover, Turnover: k} }
func FoulDrawOutcome(t FoulTarget) Outcome   { return Outcome{Kind: OutFoulDraw, Target: t} }
func FoulReachOutcome() Outcome              { return Outcome{Kind: OutFoulReach} }
func ResetOutcome(k ResetKind) Outcome       { return Outcome{Kind: OutReset, Reset: k} }

// Label renders the histogram key for an outcome.
func (o Outcome) Label() string {
	switch o.Kind {
	case OutShot:
		return o.Shot.String()
	case OutPass:
		return o.Pass.String()
	case OutTurnover:
		return o.Turnover.String()
	case OutFoulDraw:
		return o.Target.String()
	case OutFoulReach:
		return "FOUL_REACH_TRAP"
	case OutReset:
		return o.Reset.String()
	}
	return "OUTCOME_UNKNOWN"
}

// PossessionStart tags how a possession (or a mid-possession reloop) began.
type PossessionStart string

const (
	StartQuarter      PossessionStart = "start_q"
	StartAfterScore   PossessionStart = "after_score"
	StartAfterTOVDead PossessionStart = "after_tov_dead"
	StartAfterTOV     PossessionStart = "after_tov"
	StartAfterDRB     PossessionStart = "after_drb"
	StartAfterFoul    PossessionStart = "after_foul"
)

// DeadBall reports whether the start requires an inbound pass.
func (s PossessionStart) DeadBall() bool {
	return s == StartQuarter || s == StartAfterScore || s == StartAfterTOVDead
}

// EndReason is the terminal classification of a whole possession.
type EndReason string

const (
	EndScore     EndReason = "SCORE"
	EndTurnover  EndReason = "TURNOVER"
	EndDRB       EndReason = "DRB"
	EndPeriodEnd EndReason = "PERIOD_END"
	EndShotClock EndReason = "SHOTCLOCK"
)

// EndClass buckets possession ends for team accumulators.
type EndClass string

const (
	EndClassFGA    EndClass = "FGA"
	EndClassTOV    EndClass = "TOV"
	EndClassFTTrip EndClass = "FT_TRIP"
	EndClassOther  EndClass = "OTHER"
)

// PossessionResult is what SimulatePossession hands back to the orchestrator.
type PossessionResult struct {
	EndReason EndReason
	NextStart PossessionStart
	Points    int
	HadORB    bool
	// PointsAfterORB is the slice of Points scored after an offensive board,
	// feeding the second-chance accumulator.
	PointsAfterORB int
	// FTTrip marks a possession that ended at the line, whichever way the
	// last free throw went.
	FTTrip bool
	// FirstFGAShotClock is the shot-clock reading when the first field-goal
	// attempt of the possession went up, or -1 if no shot was attempted.
	FirstFGAShotClock float64
	// FatigueIntensity is the summed action-intensity of the possession,
	// consumed by the orchestrator's fatigue pass.
	FatigueIntensity float64
}

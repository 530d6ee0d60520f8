// Package ratings turns raw scouting ratings into the derived abilities the
// match engine consumes. The weight table is the authoritative tuning surface
// for ability synthesis; rows are frozen per engine version.
package ratings

// Ability is a derived, action-specific skill in [0,100].
type Ability string

const (
	FinRim         Ability = "FIN_RIM"
	FinContact     Ability = "FIN_CONTACT"
	Shot3CS        Ability = "SHOT_3_CS"
	Shot3OD        Ability = "SHOT_3_OD"
	ShotMid        Ability = "SHOT_MID"
	ShotFT         Ability = "SHOT_FT"
	DriveCreate    Ability = "DRIVE_CREATE"
	PullupThreat   Ability = "PULLUP_THREAT"
	PassCreate     Ability = "PASS_CREATE"
	HandleSafe     Ability = "HANDLE_SAFE"
	PnRRead        Ability = "PNR_READ"
	SealPower      Ability = "SEAL_POWER"
	ShortRollPlay  Ability = "SHORTROLL_PLAY"
	RollFinish     Ability = "ROLL_FINISH"
	PopSpace       Ability = "POP_SPACE"
	PostScore      Ability = "POST_SCORE"
	PostPass       Ability = "POST_PASS"
	CutTiming      Ability = "CUT_TIMING"
	MoveShoot      Ability = "MOVE_SHOOT"
	TransitionPush Ability = "TRANSITION_PUSH"
	DefPOA         Ability = "DEF_POA"
	DefHelp        Ability = "DEF_HELP"
	DefRim         Ability = "DEF_RIM"
	DefPost        Ability = "DEF_POST"
	DefSteal       Ability = "DEF_STEAL"
	RebOR          Ability = "REB_OR"
	RebDR          Ability = "REB_DR"
	Physical       Ability = "PHYSICAL"
	Endurance      Ability = "ENDURANCE"
)

// All lists every derived ability in table order.
var All = []Ability{
	FinRim, FinContact, Shot3CS, Shot3OD, ShotMid, ShotFT,
	DriveCreate, PullupThreat, PassCreate, HandleSafe, PnRRead,
	SealPower, ShortRollPlay, RollFinish, PopSpace,
	PostScore, PostPass, CutTiming, MoveShoot, TransitionPush,
	DefPOA, DefHelp, DefRim, DefPost, DefSteal,
	RebOR, RebDR, Physical, Endurance,
}

// Raw rating names as they arrive from roster data. Missing names default to
// defaultRaw when deriving.
const (
	rawCloseShot     = "Close Shot"
	rawMidRange      = "Mid-Range Shot"
	rawThree         = "Three-Point Shot"
	rawFreeThrow     = "Free Throw"
	rawShotIQ        = "Shot IQ"
	rawOffConsist    = "Offensive Consistency"
	rawLayup         = "Layup"
	rawDrivingDunk   = "Driving Dunk"
	rawStandingDunk  = "Standing Dunk"
	rawPostHook      = "Post Hook"
	rawPostFade      = "Post Fade"
	rawPostControl   = "Post Control"
	rawDrawFoul      = "Draw Foul"
	rawHands         = "Hands"
	rawBallHandle    = "Ball Handle"
	rawSpeedWithBall = "Speed with Ball"
	rawPassAccuracy  = "Passing Accuracy"
	rawPassVision    = "Passing Vision"
	rawPassIQ        = "Passing IQ"
	rawIntDefense    = "Interior Defense"
	rawPerimDefense  = "Perimeter Defense"
	rawSteal         = "Steal"
	rawBlock         = "Block"
	rawHelpIQ        = "Help Defense IQ"
	rawDefConsist    = "Defensive Consistency"
	rawSpeed         = "Speed"
	rawAgility       = "Agility"
	rawStrength      = "Strength"
	rawVertical      = "Vertical"
	rawStamina       = "Stamina"
	rawHustle        = "Hustle"
	rawPassPerceive  = "Pass Perception"
	rawOffRebound    = "Offensive Rebound"
	rawDefRebound    = "Defensive Rebound"
	rawIntangibles   = "Intangibles"
)

const defaultRaw = 50.0

type term struct {
	raw    string
	weight float64
}

// formulaTable holds the 29 derivation rows. Weights within a row sum to 1.
var formulaTable = map[Ability][]term{
	FinRim:         {{rawLayup, 0.35}, {rawDrivingDunk, 0.25}, {rawCloseShot, 0.25}, {rawVertical, 0.15}},
	FinContact:     {{rawDrawFoul, 0.30}, {rawStrength, 0.25}, {rawLayup, 0.25}, {rawDrivingDunk, 0.20}},
	Shot3CS:        {{rawThree, 0.60}, {rawOffConsist, 0.20}, {rawShotIQ, 0.20}},
	Shot3OD:        {{rawThree, 0.45}, {rawBallHandle, 0.25}, {rawSpeedWithBall, 0.10}, {rawShotIQ, 0.20}},
	ShotMid:        {{rawMidRange, 0.60}, {rawShotIQ, 0.25}, {rawOffConsist, 0.15}},
	ShotFT:         {{rawFreeThrow, 0.85}, {rawOffConsist, 0.15}},
	DriveCreate:    {{rawSpeedWithBall, 0.30}, {rawBallHandle, 0.30}, {rawLayup, 0.20}, {rawAgility, 0.20}},
	PullupThreat:   {{rawMidRange, 0.35}, {rawThree, 0.30}, {rawBallHandle, 0.20}, {rawShotIQ, 0.15}},
	PassCreate:     {{rawPassVision, 0.40}, {rawPassIQ, 0.35}, {rawPassAccuracy, 0.25}},
	HandleSafe:     {{rawBallHandle, 0.40}, {rawPassAccuracy, 0.25}, {rawHands, 0.20}, {rawStrength, 0.15}},
	PnRRead:        {{rawPassIQ, 0.35}, {rawPassVision, 0.35}, {rawShotIQ, 0.30}},
	SealPower:      {{rawStrength, 0.45}, {rawPostControl, 0.30}, {rawStandingDunk, 0.25}},
	ShortRollPlay:  {{rawPassIQ, 0.35}, {rawHands, 0.25}, {rawCloseShot, 0.20}, {rawPassVision, 0.20}},
	RollFinish:     {{rawStandingDunk, 0.30}, {rawVertical, 0.25}, {rawHands, 0.25}, {rawCloseShot, 0.20}},
	PopSpace:       {{rawThree, 0.50}, {rawMidRange, 0.30}, {rawOffConsist, 0.20}},
	PostScore:      {{rawPostHook, 0.30}, {rawPostFade, 0.30}, {rawPostControl, 0.25}, {rawStrength, 0.15}},
	PostPass:       {{rawPostControl, 0.30}, {rawPassVision, 0.35}, {rawPassIQ, 0.35}},
	CutTiming:      {{rawShotIQ, 0.35}, {rawAgility, 0.30}, {rawHands, 0.20}, {rawSpeed, 0.15}},
	MoveShoot:      {{rawThree, 0.40}, {rawAgility, 0.25}, {rawOffConsist, 0.20}, {rawStamina, 0.15}},
	TransitionPush: {{rawSpeed, 0.35}, {rawSpeedWithBall, 0.30}, {rawPassVision, 0.20}, {rawHustle, 0.15}},
	DefPOA:         {{rawPerimDefense, 0.40}, {rawAgility, 0.25}, {rawSpeed, 0.20}, {rawDefConsist, 0.15}},
	DefHelp:        {{rawHelpIQ, 0.40}, {rawDefConsist, 0.25}, {rawHustle, 0.20}, {rawSpeed, 0.15}},
	DefRim:         {{rawBlock, 0.40}, {rawIntDefense, 0.35}, {rawVertical, 0.15}, {rawStrength, 0.10}},
	DefPost:        {{rawIntDefense, 0.40}, {rawStrength, 0.35}, {rawDefConsist, 0.25}},
	DefSteal:       {{rawSteal, 0.50}, {rawPassPerceive, 0.30}, {rawAgility, 0.20}},
	RebOR:          {{rawOffRebound, 0.50}, {rawHustle, 0.20}, {rawVertical, 0.15}, {rawStrength, 0.15}},
	RebDR:          {{rawDefRebound, 0.55}, {rawStrength, 0.20}, {rawHelpIQ, 0.15}, {rawVertical, 0.10}},
	Physical:       {{rawSpeed, 0.25}, {rawStrength, 0.25}, {rawAgility, 0.25}, {rawVertical, 0.25}},
	Endurance:      {{rawStamina, 0.70}, {rawHustle, 0.15}, {rawIntangibles, 0.15}},
}

// Derive computes all 29 derived abilities from raw scouting ratings. Missing
// raw names default to 50; every output is clamped to [0,100].
func Derive(raw map[string]float64) map[Ability]float64 {
	out := make(map[Ability]float64, len(formulaTable))
	for ability, terms := range formulaTable {
		sum := 0.0
		for _, t := range terms {
			v, ok := raw[t.raw]
			if !ok {
				v = defaultRaw
			}
			sum += clamp(v, 0, 100) * t.weight
		}
		out[ability] = clamp(sum, 0, 100)
	}
	return out
}

// OVR collapses a derived-ability map into a single overall number. It is a
// plain average over the table rows and is only used for ranking players
// during role assignment and lineup fills, never inside outcome math.
func OVR(derived map[Ability]float64) float64 {
	if len(derived) == 0 {
		return 0
	}
	sum := 0.0
	n := 0
	for _, a := range All {
		if v, ok := derived[a]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Composite sums the named abilities, defaulting absent keys to 50. Role
// auto-assignment ranks candidates on composites like PNR_READ+DRIVE_CREATE.
func Composite(derived map[Ability]float64, abilities ...Ability) float64 {
	sum := 0.0
	for _, a := range abilities {
		if v, ok := derived[a]; ok {
			sum += v
		} else {
			sum += defaultRaw
		}
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

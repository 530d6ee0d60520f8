package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// Profile weights derived abilities for one side of an outcome check. Scores
// are weighted averages, so weights within a profile should sum to 1.
type Profile map[ratings.Ability]float64

// Score folds a derived-abilities map through the profile. Missing abilities
// contribute the neutral 50.
func (p Profile) Score(abilities map[ratings.Ability]float64) float64 {
	if len(p) == 0 {
		return 50
	}
	sum, wsum := 0.0, 0.0
	for ability, w := range p {
		v, ok := abilities[ability]
		if !ok {
			v = 50
		}
		sum += v * w
		wsum += w
	}
	if wsum == 0 {
		return 50
	}
	return sum / wsum
}

// AlphaPair tightens the log-space clamp bounds per tactic: 0 collapses every
// multiplier to 1, 1 leaves the published bounds untouched.
type AlphaPair struct {
	Action  float64
	Outcome float64
}

// TimeRange is a uniform time-cost band in seconds.
type TimeRange struct {
	Min float64
	Max float64
}

// Sample draws a cost from the band using the game RNG.
func (t TimeRange) Sample(rng *rand.Rand) float64 {
	if t.Max <= t.Min {
		return t.Min
	}
	return t.Min + rng.Float64()*(t.Max-t.Min)
}

// Knobs collects the scalar tuning surface of an era.
type Knobs struct {
	// Logistic shot model.
	LogisticSlope   float64
	PMin            float64
	PMax            float64
	VarianceMin     float64
	VarianceMax     float64
	RimBaseMult     float64
	MidBaseMult     float64
	ThreeBaseMult   float64
	FatigueLogitMax float64
	// Dampening applied to def_score inside the shot logistic so the role-fit
	// quality delta does not double-count lineup defense.
	MixDefScoreForShot float64
	QualityLogitScale  float64

	// Multiplier clamp bounds (log-space).
	ActionMultLo  float64
	ActionMultHi  float64
	OutcomeMultLo float64
	OutcomeMultHi float64

	// Pass model sigmoids.
	PassSigmoidSlope float64
	PassTOMid        float64
	PassResetMid     float64
	CarryPosLogit    float64
	CarryNegLogit    float64

	// Foul mechanics.
	FoulContactHard     float64
	FoulContactNormal   float64
	FoulContactSoft     float64
	BonusThreshold      int
	FoulOutLimit        int
	BonusNonShootingFTs bool
	DeadBallTimeCost    float64

	// Clocks.
	QuarterLengthSec   float64
	OvertimeLengthSec  float64
	RegulationQuarters int
	ShotClockSec       float64
	FoulResetSec       float64
	OrbResetSec        float64
	TempoMult          float64

	// Possession loop.
	MaxSteps            int
	BailoutTimeCost     float64
	ResetTimeCost       float64
	PassChainForceSpot  int
	InboundTOVBase      float64
	InboundTOVMin       float64
	InboundTOVMax       float64
	TransitionBoost     float64
	FastbreakShotClock  float64

	// Fatigue and rest.
	FatigueBasePerSec    float64
	FatigueEnduranceSave float64
	RestBetweenPeriods   float64
	RestPreOvertime      float64
	BenchRecoverPerSec   float64

	// Overtime start.
	OTJumpball           bool
	JumpballSigmoidScale float64
}

// GameConfig is the immutable per-era table set. Loaded once, shared by
// reference across concurrent games, never mutated after registration.
type GameConfig struct {
	Era        string
	EraVersion string

	// ActionAliases maps actions onto the base action whose outcome tables
	// they borrow.
	ActionAliases map[BaseAction]BaseAction

	// OffenseActionWeights are the per-scheme base action priors.
	OffenseActionWeights map[OffenseScheme]map[BaseAction]float64

	// DefenseActionMults skew the opponent's action prior per defensive
	// scheme (a Drop defense concedes PnR pull-ups, a Zone invites skips).
	DefenseActionMults map[DefenseScheme]map[BaseAction]float64

	// OutcomePriors give the per-action outcome distribution before
	// modifiers.
	OutcomePriors map[BaseAction][]WeightedOutcome

	// OffenseProfiles and DefenseProfiles weight derived abilities per
	// outcome label for the off_score/def_score pair.
	OffenseProfiles map[string]Profile
	DefenseProfiles map[string]Profile

	// ShotBase and PassBase are base make/completion probabilities.
	ShotBase map[ShotKind]float64
	PassBase map[PassKind]float64

	// Corner3GivenAction is P(corner 3 | 3PA) keyed by base action, used for
	// shot-zone bookkeeping.
	Corner3GivenAction map[BaseAction]float64

	// SchemeOutcomeMults bias outcome priors per defensive scheme, keyed by
	// outcome label.
	SchemeOutcomeMults map[DefenseScheme]map[string]float64

	// OffSchemeOutcomeMults bias outcome priors per offensive scheme.
	OffSchemeOutcomeMults map[OffenseScheme]map[string]float64

	// TacticAlphas tighten multiplier clamps per offensive scheme.
	TacticAlphas map[OffenseScheme]AlphaPair

	// ActionTimeCosts and PassTimeCosts are uniform sampling bands.
	ActionTimeCosts map[BaseAction]TimeRange
	PassTimeCosts   map[PassKind]TimeRange

	// ActionFatigue scales per-possession energy drain by set intensity.
	ActionFatigue map[BaseAction]float64

	// ActionStyleCoefs and OutcomeStyleCoefs translate shot-diet features
	// into log-space multipliers.
	ActionStyleCoefs  map[BaseAction]map[StyleFeature]float64
	OutcomeStyleCoefs map[string]map[StyleFeature]float64

	// FoulTargetProbs distributes a drawn shooting foul over its would-be
	// shot targets, keyed by the fouled action.
	FoulTargetProbs map[BaseAction]map[FoulTarget]float64

	// DefenseRoleProfiles define the ~5 defensive roles per scheme for the
	// role-fit quality subsystem.
	DefenseRoleProfiles map[DefenseScheme][]DefenseRoleProfile

	Knobs Knobs
}

// WeightedOutcome pairs an outcome with its prior weight. Priors are stored
// as slices, not maps, so sampling iterates in a fixed order.
type WeightedOutcome struct {
	Outcome Outcome
	Weight  float64
}

// DefenseRoleProfile is one scheme-defined defensive assignment.
type DefenseRoleProfile struct {
	Name    string
	Profile Profile
}

// BaseFor resolves an action through the alias table.
func (c *GameConfig) BaseFor(a BaseAction) BaseAction {
	if base, ok := c.ActionAliases[a]; ok {
		return base
	}
	return a
}

// AlphaFor returns the clamp-tightening pair for a scheme, defaulting to the
// widest published bounds.
func (c *GameConfig) AlphaFor(s OffenseScheme) AlphaPair {
	if a, ok := c.TacticAlphas[s]; ok {
		return a
	}
	return AlphaPair{Action: 1, Outcome: 1}
}

var (
	eraMu  sync.RWMutex
	eraLib = map[string]*GameConfig{}
)

// RegisterEra adds a config to the era library. Later registrations under the
// same name win, which is how tests install trimmed eras.
func RegisterEra(cfg *GameConfig) {
	eraMu.Lock()
	defer eraMu.Unlock()
	eraLib[cfg.Era] = cfg
}

// LoadEra fetches an immutable era config by name.
func LoadEra(name string) (*GameConfig, error) {
	if name == "" {
		name = "default"
	}
	eraMu.RLock()
	cfg, ok := eraLib[name]
	eraMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown era %q", name)
	}
	return cfg, nil
}

// Eras lists registered era names, sorted.
func Eras() []string {
	eraMu.RLock()
	defer eraMu.RUnlock()
	names := make([]string, 0, len(eraLib))
	for name := range eraLib {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterEra(defaultEra())
}

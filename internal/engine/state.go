package engine

import (
	"fmt"
	"sort"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// Role is one of the twelve canonical offensive roles.
type Role string

const (
	RoleInitiatorPrimary   Role = "Initiator_Primary"
	RoleInitiatorSecondary Role = "Initiator_Secondary"
	RoleTransitionHandler  Role = "Transition_Handler"
	RoleShotCreator        Role = "Shot_Creator"
	RoleRimAttacker        Role = "Rim_Attacker"
	RoleSpacerCatchShoot   Role = "Spacer_CatchShoot"
	RoleSpacerMovement     Role = "Spacer_Movement"
	RoleConnectorPlaymaker Role = "Connector_Playmaker"
	RoleRollerFinisher     Role = "Roller_Finisher"
	RoleShortRollPlaymaker Role = "ShortRoll_Playmaker"
	RolePopSpacerBig       Role = "Pop_Spacer_Big"
	RolePostHub            Role = "Post_Hub"
)

// AllRoles lists the canonical roles in assignment order.
var AllRoles = []Role{
	RoleInitiatorPrimary, RoleInitiatorSecondary, RoleTransitionHandler,
	RoleShotCreator, RoleRimAttacker, RoleSpacerCatchShoot, RoleSpacerMovement,
	RoleConnectorPlaymaker, RoleRollerFinisher, RoleShortRollPlaymaker,
	RolePopSpacerBig, RolePostHub,
}

// roleComposites drive auto-assignment: each role ranks candidates on a
// derived-ability composite.
var roleComposites = map[Role][]ratings.Ability{
	RoleInitiatorPrimary:   {ratings.PnRRead, ratings.DriveCreate, ratings.PassCreate, ratings.HandleSafe},
	RoleInitiatorSecondary: {ratings.PassCreate, ratings.HandleSafe, ratings.PullupThreat},
	RoleTransitionHandler:  {ratings.TransitionPush, ratings.HandleSafe, ratings.PassCreate},
	RoleShotCreator:        {ratings.PullupThreat, ratings.Shot3OD, ratings.ShotMid},
	RoleRimAttacker:        {ratings.DriveCreate, ratings.FinRim, ratings.FinContact},
	RoleSpacerCatchShoot:   {ratings.Shot3CS, ratings.PopSpace},
	RoleSpacerMovement:     {ratings.MoveShoot, ratings.Shot3CS, ratings.CutTiming},
	RoleConnectorPlaymaker: {ratings.PassCreate, ratings.PnRRead, ratings.HandleSafe},
	RoleRollerFinisher:     {ratings.RollFinish, ratings.Physical, ratings.SealPower},
	RoleShortRollPlaymaker: {ratings.Physical, ratings.SealPower, ratings.ShortRollPlay},
	RolePopSpacerBig:       {ratings.PopSpace, ratings.Shot3CS, ratings.SealPower},
	RolePostHub:            {ratings.PostScore, ratings.PostPass, ratings.SealPower},
}

// BoxScore is a player's mutable per-game stat line.
type BoxScore struct {
	PTS int
	FGM int
	FGA int
	TPM int
	TPA int
	FTM int
	FTA int
	ORB int
	DRB int
	AST int
	STL int
	BLK int
	TOV int
	PF  int
}

// Player is a roster member plus mutable per-game state. Identity and
// abilities never change inside a game; Box and Energy do.
type Player struct {
	PID       string
	Name      string
	Pos       string
	Abilities map[ratings.Ability]float64

	Box    BoxScore
	Energy float64
}

// Ability reads a derived ability, defaulting to the neutral 50.
func (p *Player) Ability(a ratings.Ability) float64 {
	if v, ok := p.Abilities[a]; ok {
		return v
	}
	return 50
}

// Tactics is a team's scheme selection plus multiplier overrides.
type Tactics struct {
	OffenseScheme OffenseScheme
	DefenseScheme DefenseScheme

	// Sharpness/strength pairs tighten or loosen the alpha clamp per side.
	OffSharpness float64
	OffStrength  float64
	DefSharpness float64
	DefStrength  float64

	// ActionWeightMult overrides bias the action prior per base action.
	ActionWeightMult map[BaseAction]float64
	// OutcomeGlobalMult biases every outcome label uniformly.
	OutcomeGlobalMult map[string]float64
	// OutcomeByActionMult biases outcome labels only under a given action.
	OutcomeByActionMult map[BaseAction]map[string]float64
	// Context carries free-form persistent team biases.
	Context map[string]float64
}

// TeamTotals are the team-level accumulated counters.
type TeamTotals struct {
	PTS             int
	FGM             int
	FGA             int
	TPM             int
	TPA             int
	FTM             int
	FTA             int
	TOV             int
	ORB             int
	DRB             int
	AST             int
	PITP            int
	FastbreakPTS    int
	SecondChancePTS int
	PointsOffTOV    int
	Possessions     int
}

// ShotZone buckets field-goal attempts for the zone breakdown.
type ShotZone string

const (
	ZoneRim     ShotZone = "rim"
	ZonePaint   ShotZone = "paint_non_rim"
	ZoneMid     ShotZone = "mid"
	ZoneCorner3 ShotZone = "corner_3"
	ZoneAbove3  ShotZone = "above_break_3"
)

// TeamConfig is the external roster+tactics payload one side presents.
type TeamConfig struct {
	TeamID   string
	Roster   []RosterEntry
	Roles    map[Role]string
	Tactics  Tactics
	RotationTargetSec map[string]float64
	RotationLockPIDs  []string
}

// RosterEntry is one player in a TeamConfig. Either Derived or Raw must be
// set; Raw is run through ratings.Derive.
type RosterEntry struct {
	PID     string
	Name    string
	Pos     string
	Derived map[ratings.Ability]float64
	Raw     map[string]float64
}

// TeamState is the per-game mutable container for one side.
type TeamState struct {
	TeamID  string
	Roster  []*Player
	Roles   map[Role]string
	Tactics Tactics

	RotationTargetSec map[string]float64
	RotationLocks     map[string]bool

	Totals            TeamTotals
	ShotZones         map[ShotZone]int
	PossessionEnds    map[EndClass]int
	ActionCounts      map[BaseAction]int
	OutcomeCounts     map[string]int
	BadOutcomesByGrade map[FitGrade]int

	byPID map[string]*Player
}

// Player looks up a roster member by pid.
func (t *TeamState) Player(pid string) *Player {
	return t.byPID[pid]
}

// RolePID returns the pid holding a role, or "".
func (t *TeamState) RolePID(r Role) string { return t.Roles[r] }

// NewTeamState builds the per-game container from an external payload. Roles
// the caller did not pin are auto-assigned; the Initiator_Primary starting
// constraint is applied later by the orchestrator once the starting five is
// known.
func NewTeamState(cfg TeamConfig) (*TeamState, error) {
	if len(cfg.TeamID) != 3 {
		return nil, &ContractError{Msg: fmt.Sprintf("team_id %q is not a canonical 3-letter code", cfg.TeamID)}
	}
	if len(cfg.Roster) < 5 {
		return nil, &ContractError{Msg: fmt.Sprintf("team %s roster has %d players, need at least 5", cfg.TeamID, len(cfg.Roster))}
	}

	ts := &TeamState{
		TeamID:            cfg.TeamID,
		Roles:             map[Role]string{},
		Tactics:           cfg.Tactics,
		RotationTargetSec: map[string]float64{},
		RotationLocks:     map[string]bool{},
		ShotZones:         map[ShotZone]int{},
		PossessionEnds:    map[EndClass]int{},
		ActionCounts:      map[BaseAction]int{},
		OutcomeCounts:     map[string]int{},
		BadOutcomesByGrade: map[FitGrade]int{},
		byPID:             map[string]*Player{},
	}

	for _, entry := range cfg.Roster {
		if entry.PID == "" {
			return nil, &ContractError{Msg: fmt.Sprintf("team %s has a roster entry with empty pid", cfg.TeamID)}
		}
		if _, dup := ts.byPID[entry.PID]; dup {
			return nil, &ContractError{Msg: fmt.Sprintf("duplicate player_id %q on team %s", entry.PID, cfg.TeamID)}
		}
		derived := entry.Derived
		if derived == nil {
			derived = ratings.Derive(entry.Raw)
		}
		p := &Player{
			PID:       entry.PID,
			Name:      entry.Name,
			Pos:       entry.Pos,
			Abilities: derived,
			Energy:    1.0,
		}
		ts.Roster = append(ts.Roster, p)
		ts.byPID[entry.PID] = p
	}

	for role, pid := range cfg.Roles {
		if _, ok := roleComposites[role]; !ok {
			return nil, &ContractError{Msg: fmt.Sprintf("unknown role %q for team %s", role, cfg.TeamID)}
		}
		if ts.byPID[pid] == nil {
			return nil, &ContractError{Msg: fmt.Sprintf("role %s names pid %q not on team %s", role, pid, cfg.TeamID)}
		}
		ts.Roles[role] = pid
	}
	ts.autoAssignRoles()

	for pid, sec := range cfg.RotationTargetSec {
		if ts.byPID[pid] != nil {
			ts.RotationTargetSec[pid] = sec
		}
	}
	for _, pid := range cfg.RotationLockPIDs {
		if ts.byPID[pid] != nil {
			ts.RotationLocks[pid] = true
		}
	}
	ts.fillRotationTargets()

	return ts, nil
}

// autoAssignRoles fills unpinned roles by ranking the five highest-OVR
// players on each role's composite. A player may hold multiple roles, but the
// two initiator roles must differ.
func (ts *TeamState) autoAssignRoles() {
	top := ts.topByOVR(5)
	for _, role := range AllRoles {
		if _, pinned := ts.Roles[role]; pinned {
			continue
		}
		best, bestScore := "", -1.0
		for _, p := range top {
			if role == RoleInitiatorSecondary && ts.Roles[RoleInitiatorPrimary] == p.PID {
				continue
			}
			score := ratings.Composite(p.Abilities, roleComposites[role]...)
			if score > bestScore {
				best, bestScore = p.PID, score
			}
		}
		if best != "" {
			ts.Roles[role] = best
		}
	}
}

// topByOVR returns the n highest-overall roster players, ties broken by pid
// for determinism.
func (ts *TeamState) topByOVR(n int) []*Player {
	sorted := make([]*Player, len(ts.Roster))
	copy(sorted, ts.Roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := ratings.OVR(sorted[i].Abilities), ratings.OVR(sorted[j].Abilities)
		if oi != oj {
			return oi > oj
		}
		return sorted[i].PID < sorted[j].PID
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// fillRotationTargets backfills rotation minute targets so the ten deepest
// players split the 240 player-minutes of a regulation game, starters heavy.
func (ts *TeamState) fillRotationTargets() {
	depth := ts.topByOVR(len(ts.Roster))
	defaults := []float64{2100, 2040, 1920, 1800, 1680, 1440, 1200, 1020, 840, 360}
	i := 0
	for _, p := range depth {
		if _, ok := ts.RotationTargetSec[p.PID]; ok {
			continue
		}
		if i < len(defaults) {
			ts.RotationTargetSec[p.PID] = defaults[i]
		} else {
			ts.RotationTargetSec[p.PID] = 0
		}
		i++
	}
}

// Side tags home or away inside a game.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// GameState carries the clocks, foul counters, and on-court lineups for one
// simulated game. Owned exclusively by a single SimulateGame call.
type GameState struct {
	Quarter      int
	ClockSec     float64
	ShotClockSec float64
	Possession   int

	TeamFouls map[Side]int
	// PeriodFouls resets every period and drives the bonus rule.
	PeriodFouls map[Side]int
	PlayerFouls map[Side]map[string]int
	MinutesSec  map[Side]map[string]float64

	OnCourt map[Side][]string
}

// NewGameState seeds clocks and per-side maps with the starting fives.
func NewGameState(cfg *GameConfig, home, away *TeamState) *GameState {
	gs := &GameState{
		Quarter:      1,
		ClockSec:     cfg.Knobs.QuarterLengthSec,
		ShotClockSec: cfg.Knobs.ShotClockSec,
		TeamFouls:    map[Side]int{SideHome: 0, SideAway: 0},
		PeriodFouls:  map[Side]int{SideHome: 0, SideAway: 0},
		PlayerFouls:  map[Side]map[string]int{SideHome: {}, SideAway: {}},
		MinutesSec:   map[Side]map[string]float64{SideHome: {}, SideAway: {}},
		OnCourt:      map[Side][]string{},
	}
	gs.OnCourt[SideHome] = startingFive(home)
	gs.OnCourt[SideAway] = startingFive(away)
	return gs
}

// startingFive is the five highest-OVR players, later adjusted for the
// Initiator_Primary constraint.
func startingFive(ts *TeamState) []string {
	top := ts.topByOVR(5)
	pids := make([]string, len(top))
	for i, p := range top {
		pids[i] = p.PID
	}
	return pids
}

// Lineup materializes the on-court players for one side.
func (gs *GameState) Lineup(side Side, ts *TeamState) []*Player {
	out := make([]*Player, 0, 5)
	for _, pid := range gs.OnCourt[side] {
		if p := ts.Player(pid); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// enforcePrimaryInitiatorStart applies the best-effort constraint: when the
// roster carries an Initiator_Primary, exactly one such player starts. The
// swap preserves rotation targets by exchanging the lowest-target starter.
func enforcePrimaryInitiatorStart(gs *GameState, side Side, ts *TeamState) {
	primary := ts.Roles[RoleInitiatorPrimary]
	if primary == "" {
		return
	}
	oncourt := gs.OnCourt[side]
	for _, pid := range oncourt {
		if pid == primary {
			return
		}
	}
	// Primary is on the bench: swap in for the starter with the lowest
	// rotation target.
	lowIdx, lowTarget := -1, -1.0
	for i, pid := range oncourt {
		t := ts.RotationTargetSec[pid]
		if lowIdx == -1 || t < lowTarget {
			lowIdx, lowTarget = i, t
		}
	}
	if lowIdx >= 0 {
		oncourt[lowIdx] = primary
	}
}

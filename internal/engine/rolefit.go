package engine

import (
	"github.com/jbickford/hoopsgm/internal/ratings"
)

// FitGrade grades how well the executing player matches the action's role
// demands. D-grade possessions bleed turnovers and resets.
type FitGrade string

const (
	GradeA FitGrade = "A"
	GradeB FitGrade = "B"
	GradeC FitGrade = "C"
	GradeD FitGrade = "D"
)

// actionFitAbilities name the abilities an action's executor is graded on.
var actionFitAbilities = map[BaseAction][]ratings.Ability{
	ActionPnR:             {ratings.PnRRead, ratings.HandleSafe, ratings.PassCreate},
	ActionDrive:           {ratings.DriveCreate, ratings.HandleSafe, ratings.FinRim},
	ActionDHO:             {ratings.MoveShoot, ratings.HandleSafe, ratings.PullupThreat},
	ActionSpotUp:          {ratings.Shot3CS, ratings.PopSpace},
	ActionKickout:         {ratings.Shot3CS, ratings.MoveShoot},
	ActionExtraPass:       {ratings.PassCreate, ratings.Shot3CS},
	ActionCut:             {ratings.CutTiming, ratings.FinRim},
	ActionPostUp:          {ratings.PostScore, ratings.SealPower},
	ActionHornsSet:        {ratings.PnRRead, ratings.ShotMid, ratings.PassCreate},
	ActionTransitionEarly: {ratings.TransitionPush, ratings.HandleSafe},
}

// gradeActionFit grades the executor against the action's ability demands.
func gradeActionFit(p *Player, action BaseAction) FitGrade {
	abilities := actionFitAbilities[action]
	if len(abilities) == 0 {
		return GradeB
	}
	score := ratings.Composite(p.Abilities, abilities...) / float64(len(abilities))
	switch {
	case score >= 72:
		return GradeA
	case score >= 62:
		return GradeB
	case score >= 52:
		return GradeC
	default:
		return GradeD
	}
}

// fitPenalty returns the negative-outcome prior amplifier and the logit delta
// applied to the executor's next scoring check.
func fitPenalty(g FitGrade) (negMult, logitDelta float64) {
	switch g {
	case GradeA:
		return 1.00, 0.02
	case GradeB:
		return 1.03, 0
	case GradeC:
		return 1.10, -0.05
	default:
		return 1.22, -0.12
	}
}

// negativeOutcome reports whether an outcome is amplified by a poor role fit.
func negativeOutcome(o Outcome) bool {
	return o.Kind == OutTurnover || o.Kind == OutReset
}

// defenseAssignment is the solved player-to-role mapping for the defensive
// five under one scheme, plus its average fit.
type defenseAssignment struct {
	FitByRole map[string]float64
	AvgFit    float64
}

// perms5 enumerates the 120 orderings of [0,5). Brute force beats carrying a
// Hungarian solver at this size.
var perms5 = buildPerms5()

func buildPerms5() [][5]int {
	var out [][5]int
	var rec func(cur []int, used [5]bool)
	rec = func(cur []int, used [5]bool) {
		if len(cur) == 5 {
			var p [5]int
			copy(p[:], cur)
			out = append(out, p)
			return
		}
		for i := 0; i < 5; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			rec(append(cur, i), used)
			used[i] = false
		}
	}
	rec(nil, [5]bool{})
	return out
}

// solveDefenseAssignment finds the role permutation maximizing total fit for
// the defensive lineup under the scheme's ~5 role profiles.
func solveDefenseAssignment(defLineup []*Player, profiles []DefenseRoleProfile) defenseAssignment {
	da := defenseAssignment{FitByRole: map[string]float64{}, AvgFit: 50}
	if len(defLineup) < 5 || len(profiles) == 0 {
		return da
	}
	// Score matrix: player i in role j.
	var scores [5][]float64
	for i := 0; i < 5; i++ {
		scores[i] = make([]float64, len(profiles))
		for j, rp := range profiles {
			scores[i][j] = rp.Profile.Score(defLineup[i].Abilities)
		}
	}
	bestTotal := -1.0
	var best [5]int
	for _, perm := range perms5 {
		total := 0.0
		for j := range profiles {
			total += scores[perm[j]][j]
		}
		if total > bestTotal {
			bestTotal = total
			best = perm
		}
	}
	for j, rp := range profiles {
		da.FitByRole[rp.Name] = scores[best[j]][j]
	}
	da.AvgFit = bestTotal / float64(len(profiles))
	return da
}

// qualityScore maps an offense-vs-defense-fit gap onto the [-2.5, 2.5]
// quality band used by pass resolution and shot q_delta.
func qualityScore(offScore, defFit float64) float64 {
	return clampF((offScore-defFit)/20.0, -2.5, 2.5)
}

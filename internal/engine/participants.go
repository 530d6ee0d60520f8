package engine

import (
	"math/rand"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// Participant selection is role-aware weighted sampling: every on-court
// player gets a weight from the abilities the outcome exercises, and holders
// of matching roles get a flat boost so the offense runs through its
// designated actors.

const roleBoost = 1.6

// shotSelectionAbility maps a shot kind to the ability its shooter is picked
// on.
func shotSelectionAbility(k ShotKind) ratings.Ability {
	switch k {
	case ShotRim, ShotClose:
		return ratings.FinRim
	case ShotMid:
		return ratings.ShotMid
	case ShotCS3:
		return ratings.Shot3CS
	case ShotOD3:
		return ratings.Shot3OD
	case ShotPost:
		return ratings.PostScore
	}
	return ratings.ShotMid
}

// shotSelectionRoles lists roles boosted when picking the shooter.
func shotSelectionRoles(k ShotKind) []Role {
	switch k {
	case ShotRim, ShotClose:
		return []Role{RoleRimAttacker, RoleRollerFinisher}
	case ShotMid:
		return []Role{RoleShotCreator}
	case ShotCS3:
		return []Role{RoleSpacerCatchShoot, RoleSpacerMovement, RolePopSpacerBig}
	case ShotOD3:
		return []Role{RoleInitiatorPrimary, RoleShotCreator}
	case ShotPost:
		return []Role{RolePostHub}
	}
	return nil
}

func weightedPick(rng *rand.Rand, lineup []*Player, weight func(*Player) float64) *Player {
	if len(lineup) == 0 {
		return nil
	}
	weights := make([]float64, len(lineup))
	for i, p := range lineup {
		w := weight(p)
		if w < 0.01 {
			w = 0.01
		}
		weights[i] = w
	}
	return lineup[sampleIndex(rng, weights)]
}

func hasRole(ts *TeamState, p *Player, roles ...Role) bool {
	for _, r := range roles {
		if ts.Roles[r] == p.PID {
			return true
		}
	}
	return false
}

// pickShooter selects the player attempting a shot of the given kind.
func pickShooter(rng *rand.Rand, off *TeamState, lineup []*Player, kind ShotKind) *Player {
	ability := shotSelectionAbility(kind)
	roles := shotSelectionRoles(kind)
	return weightedPick(rng, lineup, func(p *Player) float64 {
		w := p.Ability(ability) - 20
		if hasRole(off, p, roles...) {
			w *= roleBoost
		}
		return w
	})
}

// pickPasser selects who throws an advantage pass; initiators dominate.
func pickPasser(rng *rand.Rand, off *TeamState, lineup []*Player, kind PassKind) *Player {
	return weightedPick(rng, lineup, func(p *Player) float64 {
		w := p.Ability(ratings.PassCreate) - 20
		switch kind {
		case PassShortRoll:
			if hasRole(off, p, RoleShortRollPlaymaker, RoleRollerFinisher) {
				w = p.Ability(ratings.ShortRollPlay) * roleBoost
			}
		default:
			if hasRole(off, p, RoleInitiatorPrimary) {
				w *= 2.0
			} else if hasRole(off, p, RoleInitiatorSecondary, RoleConnectorPlaymaker) {
				w *= roleBoost
			}
		}
		return w
	})
}

// pickBallHandler selects who commits a handling turnover or draws the foul
// on an action: weighted toward the initiators running the set.
func pickBallHandler(rng *rand.Rand, off *TeamState, lineup []*Player, action BaseAction) *Player {
	return weightedPick(rng, lineup, func(p *Player) float64 {
		w := p.Ability(ratings.HandleSafe) - 20
		switch action {
		case ActionPostUp:
			if hasRole(off, p, RolePostHub) {
				w *= 2.2
			}
		case ActionCut:
			if hasRole(off, p, RoleSpacerMovement, RoleRimAttacker) {
				w *= roleBoost
			}
		case ActionTransitionEarly:
			if hasRole(off, p, RoleTransitionHandler, RoleInitiatorPrimary) {
				w *= 2.0
			}
		default:
			if hasRole(off, p, RoleInitiatorPrimary) {
				w *= 2.2
			} else if hasRole(off, p, RoleInitiatorSecondary) {
				w *= roleBoost
			}
		}
		return w
	})
}

// pickRebounder selects the board winner on either end.
func pickRebounder(rng *rand.Rand, lineup []*Player, offensive bool) *Player {
	ability := ratings.RebDR
	if offensive {
		ability = ratings.RebOR
	}
	return weightedPick(rng, lineup, func(p *Player) float64 {
		return p.Ability(ability) - 15
	})
}

// pickFouler attributes a foul to a random defender with fouls to give.
// Falls back to the full lineup when everyone is at the limit (the game must
// go on).
func pickFouler(rng *rand.Rand, gs *GameState, defSide Side, lineup []*Player, foulOutLimit int) *Player {
	eligible := make([]*Player, 0, 5)
	for _, p := range lineup {
		if gs.PlayerFouls[defSide][p.PID] < foulOutLimit {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		eligible = lineup
	}
	return eligible[rng.Intn(len(eligible))]
}

// pickStealer credits a live-ball takeaway.
func pickStealer(rng *rand.Rand, lineup []*Player) *Player {
	return weightedPick(rng, lineup, func(p *Player) float64 {
		return p.Ability(ratings.DefSteal) - 15
	})
}

// pickInbounder is the safest passer on the floor.
func pickInbounder(lineup []*Player) *Player {
	var best *Player
	bestScore := -1.0
	for _, p := range lineup {
		s := p.Ability(ratings.PassCreate)*0.6 + p.Ability(ratings.HandleSafe)*0.4
		if s > bestScore || (s == bestScore && best != nil && p.PID < best.PID) {
			best, bestScore = p, s
		}
	}
	return best
}

// pickAssister credits the assist on a made shot off a pass chain: the last
// passer when known, otherwise a playmaker other than the shooter.
func pickAssister(rng *rand.Rand, off *TeamState, lineup []*Player, shooter *Player, lastPasser string) *Player {
	if lastPasser != "" && lastPasser != shooter.PID {
		for _, p := range lineup {
			if p.PID == lastPasser {
				return p
			}
		}
	}
	others := make([]*Player, 0, 4)
	for _, p := range lineup {
		if p != shooter {
			others = append(others, p)
		}
	}
	return weightedPick(rng, others, func(p *Player) float64 {
		w := p.Ability(ratings.PassCreate) - 20
		if hasRole(off, p, RoleInitiatorPrimary) {
			w *= 2.0
		}
		return w
	})
}

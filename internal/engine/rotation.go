package engine

import (
	"sort"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// Minutes, fatigue, and substitution accounting. The rotation pass runs after
// every possession and keeps accumulated floor time tracking each player's
// pro-rated target.

// applyMinutes credits elapsed floor time to both on-court fives.
func applyMinutes(gs *GameState, elapsed float64) {
	for _, side := range []Side{SideHome, SideAway} {
		for _, pid := range gs.OnCourt[side] {
			gs.MinutesSec[side][pid] += elapsed
		}
	}
}

// applyFatigue drains on-court energy by elapsed time scaled with the
// possession's action intensity, and lets the bench recover. Fouled-out
// players stay at zero.
func applyFatigue(ts *TeamState, gs *GameState, side Side, elapsed, intensity float64, cfg *GameConfig, foulOutLimit int) {
	if intensity <= 0 {
		intensity = 1
	}
	oncourt := map[string]bool{}
	for _, pid := range gs.OnCourt[side] {
		oncourt[pid] = true
	}
	for _, p := range ts.Roster {
		if gs.PlayerFouls[side][p.PID] >= foulOutLimit {
			continue
		}
		if oncourt[p.PID] {
			save := 1 - p.Ability(ratings.Endurance)*cfg.Knobs.FatigueEnduranceSave
			if save < 0.5 {
				save = 0.5
			}
			p.Energy = clampF(p.Energy-elapsed*cfg.Knobs.FatigueBasePerSec*intensity*save, 0, 1)
		} else {
			p.Energy = clampF(p.Energy+elapsed*cfg.Knobs.BenchRecoverPerSec, 0, 1)
		}
	}
}

// applyRest recovers energy at period breaks. Fouled-out players stay down.
func applyRest(ts *TeamState, gs *GameState, side Side, mult float64, foulOutLimit int) {
	for _, p := range ts.Roster {
		if gs.PlayerFouls[side][p.PID] >= foulOutLimit {
			continue
		}
		p.Energy = clampF(p.Energy+(1-p.Energy)*mult, 0, 1)
	}
}

// gameFraction estimates how much of the scheduled game has elapsed,
// saturating at 1 in overtime.
func gameFraction(gs *GameState, cfg *GameConfig) float64 {
	total := float64(cfg.Knobs.RegulationQuarters) * cfg.Knobs.QuarterLengthSec
	played := float64(gs.Quarter-1)*cfg.Knobs.QuarterLengthSec + (cfg.Knobs.QuarterLengthSec - gs.ClockSec)
	if gs.Quarter > cfg.Knobs.RegulationQuarters {
		return 1
	}
	return clampF(played/total, 0, 1)
}

const subSwapThresholdSec = 45

// rotate runs the substitution pass for one side: forced subs first
// (foul-outs, spent legs), then minute-balancing swaps against pro-rated
// targets. Locked players never leave the floor voluntarily.
func rotate(ts *TeamState, gs *GameState, side Side, cfg *GameConfig, foulOutLimit int) {
	oncourt := gs.OnCourt[side]
	progress := gameFraction(gs, cfg)

	onFloor := map[string]bool{}
	for _, pid := range oncourt {
		onFloor[pid] = true
	}

	available := func(p *Player) bool {
		return !onFloor[p.PID] &&
			gs.PlayerFouls[side][p.PID] < foulOutLimit &&
			p.Energy > 0.05
	}

	// Bench candidates sorted by minutes deficit, biggest first.
	bench := make([]*Player, 0, len(ts.Roster))
	for _, p := range ts.Roster {
		if available(p) {
			bench = append(bench, p)
		}
	}
	deficit := func(pid string) float64 {
		return ts.RotationTargetSec[pid]*progress - gs.MinutesSec[side][pid]
	}
	sort.SliceStable(bench, func(i, j int) bool {
		di, dj := deficit(bench[i].PID), deficit(bench[j].PID)
		if di != dj {
			return di > dj
		}
		return bench[i].PID < bench[j].PID
	})

	takeBench := func() *Player {
		if len(bench) == 0 {
			return nil
		}
		p := bench[0]
		bench = bench[1:]
		return p
	}

	for i, pid := range oncourt {
		p := ts.Player(pid)
		if p == nil {
			continue
		}
		fouledOut := gs.PlayerFouls[side][pid] >= foulOutLimit
		gassed := p.Energy <= 0.05
		if fouledOut || gassed {
			if sub := takeBench(); sub != nil {
				oncourt[i] = sub.PID
				onFloor[sub.PID] = true
				delete(onFloor, pid)
			}
			continue
		}
		if ts.RotationLocks[pid] {
			continue
		}
		over := -deficit(pid)
		if over < subSwapThresholdSec {
			continue
		}
		if len(bench) == 0 || deficit(bench[0].PID) < subSwapThresholdSec {
			continue
		}
		sub := takeBench()
		oncourt[i] = sub.PID
		onFloor[sub.PID] = true
		delete(onFloor, pid)
	}
}

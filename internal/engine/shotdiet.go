package engine

import (
	"container/list"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/jbickford/hoopsgm/internal/ratings"
)

// StyleFeature names one lineup-derived bias signal. Offensive features read
// the offensive five, defensive features the defensive five; all are
// normalized to [0,1] with 0.5 as the league-average baseline.
type StyleFeature string

const (
	FeatBHPnRCraft          StyleFeature = "BH_PNR_CRAFT"
	FeatBHDrivePressure     StyleFeature = "BH_DRIVE_PRESSURE"
	FeatBHPullupThreat      StyleFeature = "BH_PULLUP_THREAT"
	FeatBHPassSkill         StyleFeature = "BH_PASS_SKILL"
	FeatSafeHandle          StyleFeature = "SAFE_HANDLE"
	FeatScreenerRollGravity StyleFeature = "SCREENER_ROLL_GRAVITY"
	FeatScreenerShortRoll   StyleFeature = "SCREENER_SHORT_ROLL"
	FeatScreenerPopGravity  StyleFeature = "SCREENER_POP_GRAVITY"
	FeatTeamSpacing         StyleFeature = "TEAM_SPACING"
	FeatTeamMovement        StyleFeature = "TEAM_MOVEMENT"
	FeatTeamCutThreat       StyleFeature = "TEAM_CUT_THREAT"
	FeatRimPressure         StyleFeature = "RIM_PRESSURE"
	FeatPostGravity         StyleFeature = "POST_GRAVITY"
	FeatPostPlaymaking      StyleFeature = "POST_PLAYMAKING"
	FeatPacePush            StyleFeature = "PACE_PUSH"
	FeatOffGlass            StyleFeature = "OFF_GLASS"
	FeatFoulMagnet          StyleFeature = "FOUL_MAGNET"

	FeatDefRimProtect    StyleFeature = "DEF_RIM_PROTECT"
	FeatDefPOAContain    StyleFeature = "DEF_POA_CONTAIN"
	FeatDefHelpCloseout  StyleFeature = "DEF_HELP_CLOSEOUT"
	FeatDefStealPressure StyleFeature = "DEF_STEAL_PRESSURE"
	FeatDefPostWall      StyleFeature = "DEF_POST_WALL"
	FeatDefGlass         StyleFeature = "DEF_GLASS"
)

// ShotDietStyle is the cached feature vector for one on-court matchup.
type ShotDietStyle struct {
	Features     map[StyleFeature]float64
	PrimaryPID   string
	SecondaryPID string
}

// Feature reads a feature with the neutral 0.5 fallback.
func (s *ShotDietStyle) Feature(f StyleFeature) float64 {
	if v, ok := s.Features[f]; ok {
		return v
	}
	return 0.5
}

// ActionLogMult folds the style vector through an action's coefficient row
// into a log-space multiplier.
func (s *ShotDietStyle) ActionLogMult(coefs map[StyleFeature]float64) float64 {
	lm := 0.0
	for feat, c := range coefs {
		lm += c * (s.Feature(feat) - 0.5) * 2
	}
	return lm
}

// norm maps a 0-100 ability average onto [0,1].
func norm(v float64) float64 { return clampF(v/100, 0, 1) }

// lineupAvg averages one ability over a lineup.
func lineupAvg(lineup []*Player, a ratings.Ability) float64 {
	if len(lineup) == 0 {
		return 50
	}
	sum := 0.0
	for _, p := range lineup {
		sum += p.Ability(a)
	}
	return sum / float64(len(lineup))
}

// lineupTopK averages the k best values of an ability over a lineup,
// capturing "does anyone on the floor do this" signals.
func lineupTopK(lineup []*Player, a ratings.Ability, k int) float64 {
	if len(lineup) == 0 {
		return 50
	}
	vals := make([]float64, 0, len(lineup))
	for _, p := range lineup {
		vals = append(vals, p.Ability(a))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	if k > len(vals) {
		k = len(vals)
	}
	sum := 0.0
	for _, v := range vals[:k] {
		sum += v
	}
	return sum / float64(k)
}

// pickInitiators resolves the primary and secondary ball-handlers from role
// assignments, falling back to ranking on-ball ability.
func pickInitiators(off *TeamState, lineup []*Player) (primary, secondary *Player) {
	find := func(pid string) *Player {
		for _, p := range lineup {
			if p.PID == pid {
				return p
			}
		}
		return nil
	}
	primary = find(off.Roles[RoleInitiatorPrimary])
	secondary = find(off.Roles[RoleInitiatorSecondary])
	if primary != nil && secondary != nil && primary != secondary {
		return primary, secondary
	}

	ranked := make([]*Player, len(lineup))
	copy(ranked, lineup)
	sort.SliceStable(ranked, func(i, j int) bool {
		ci := ratings.Composite(ranked[i].Abilities, ratings.PnRRead, ratings.DriveCreate, ratings.PassCreate, ratings.HandleSafe)
		cj := ratings.Composite(ranked[j].Abilities, ratings.PnRRead, ratings.DriveCreate, ratings.PassCreate, ratings.HandleSafe)
		if ci != cj {
			return ci > cj
		}
		return ranked[i].PID < ranked[j].PID
	})
	if primary == nil {
		primary = ranked[0]
	}
	if secondary == nil || secondary == primary {
		for _, p := range ranked {
			if p != primary {
				secondary = p
				break
			}
		}
	}
	return primary, secondary
}

// computeStyle derives the full feature vector for a matchup. Usage-weighted
// means the primary initiator counts double and the secondary 1.5x in
// ball-handler features.
func computeStyle(off, def *TeamState, offLineup, defLineup []*Player) *ShotDietStyle {
	primary, secondary := pickInitiators(off, offLineup)
	bh := func(a ratings.Ability) float64 {
		num := primary.Ability(a) * 2.0
		den := 2.0
		if secondary != nil {
			num += secondary.Ability(a) * 1.5
			den += 1.5
		}
		return num / den
	}

	screenerPID := off.Roles[RoleRollerFinisher]
	var screener *Player
	for _, p := range offLineup {
		if p.PID == screenerPID {
			screener = p
			break
		}
	}
	scr := func(a ratings.Ability) float64 {
		if screener != nil {
			return screener.Ability(a)
		}
		return lineupTopK(offLineup, a, 1)
	}

	f := map[StyleFeature]float64{
		FeatBHPnRCraft:      norm(bh(ratings.PnRRead)),
		FeatBHDrivePressure: norm(bh(ratings.DriveCreate)),
		FeatBHPullupThreat:  norm(bh(ratings.PullupThreat)),
		FeatBHPassSkill:     norm(bh(ratings.PassCreate)),
		FeatSafeHandle:      norm(bh(ratings.HandleSafe)),

		FeatScreenerRollGravity: norm(scr(ratings.RollFinish)),
		FeatScreenerShortRoll:   norm(scr(ratings.ShortRollPlay)),
		FeatScreenerPopGravity:  norm(scr(ratings.PopSpace)),

		FeatTeamSpacing:    norm(lineupTopK(offLineup, ratings.Shot3CS, 3)),
		FeatTeamMovement:   norm(lineupAvg(offLineup, ratings.MoveShoot)),
		FeatTeamCutThreat:  norm(lineupTopK(offLineup, ratings.CutTiming, 2)),
		FeatRimPressure:    norm(lineupTopK(offLineup, ratings.FinRim, 2)),
		FeatPostGravity:    norm(lineupTopK(offLineup, ratings.PostScore, 1)),
		FeatPostPlaymaking: norm(lineupTopK(offLineup, ratings.PostPass, 1)),
		FeatPacePush:       norm(lineupAvg(offLineup, ratings.TransitionPush)),
		FeatOffGlass:       norm(lineupTopK(offLineup, ratings.RebOR, 2)),
		FeatFoulMagnet:     norm(lineupTopK(offLineup, ratings.FinContact, 2)),

		FeatDefRimProtect:    norm(lineupTopK(defLineup, ratings.DefRim, 1)),
		FeatDefPOAContain:    norm(lineupTopK(defLineup, ratings.DefPOA, 2)),
		FeatDefHelpCloseout:  norm(lineupAvg(defLineup, ratings.DefHelp)),
		FeatDefStealPressure: norm(lineupTopK(defLineup, ratings.DefSteal, 2)),
		FeatDefPostWall:      norm(lineupTopK(defLineup, ratings.DefPost, 1)),
		FeatDefGlass:         norm(lineupTopK(defLineup, ratings.RebDR, 3)),
	}

	style := &ShotDietStyle{Features: f, PrimaryPID: primary.PID}
	if secondary != nil {
		style.SecondaryPID = secondary.PID
	}
	return style
}

// styleCache is a bounded LRU over matchup keys. The style is a pure function
// of its key, so cross-game sharing is safe.
type styleCache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List
	items map[string]*list.Element
}

type styleEntry struct {
	key   string
	style *ShotDietStyle
}

func newStyleCache(capacity int) *styleCache {
	return &styleCache{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[string]*list.Element, capacity),
	}
}

func (c *styleCache) get(key string) (*ShotDietStyle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*styleEntry).style, true
}

func (c *styleCache) put(key string, style *ShotDietStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*styleEntry).style = style
		return
	}
	c.items[key] = c.ll.PushFront(&styleEntry{key: key, style: style})
	for c.ll.Len() > c.cap {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*styleEntry).key)
	}
}

func (c *styleCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// process-wide cache, capacity 2048 per the sizing note in the cache design.
var sharedStyleCache = newStyleCache(2048)

// styleKey buckets both lineups' energies to tenths so fatigue drift on
// either side re-keys the style without exploding the cache.
func styleKey(off, def *TeamState, offLineup, defLineup []*Player) string {
	var b strings.Builder
	offPids := make([]string, 0, 5)
	for _, p := range offLineup {
		offPids = append(offPids, fmt.Sprintf("%s@%d", p.PID, int(math.Round(p.Energy*10))))
	}
	sort.Strings(offPids)
	defPids := make([]string, 0, 5)
	for _, p := range defLineup {
		defPids = append(defPids, fmt.Sprintf("%s@%d", p.PID, int(math.Round(p.Energy*10))))
	}
	sort.Strings(defPids)

	b.WriteString(strings.Join(offPids, ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(defPids, ","))
	b.WriteByte('|')
	for _, role := range AllRoles {
		b.WriteString(off.Roles[role])
		b.WriteByte(';')
	}
	b.WriteByte('|')
	b.WriteString(string(off.Tactics.OffenseScheme))
	b.WriteByte('|')
	b.WriteString(string(def.Tactics.DefenseScheme))
	return b.String()
}

// styleFor returns the cached matchup style, computing on miss.
func styleFor(off, def *TeamState, offLineup, defLineup []*Player) *ShotDietStyle {
	key := styleKey(off, def, offLineup, defLineup)
	if s, ok := sharedStyleCache.get(key); ok {
		return s
	}
	s := computeStyle(off, def, offLineup, defLineup)
	sharedStyleCache.put(key, s)
	return s
}

package trap

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
)

// TriggerOpening is the trigger of door and chest traps.
const TriggerOpening = "Opening or tampering"

// maxNesting bounds recursive effect references
const maxNesting = 4

// damageDice is the die size used for each damage type; d6 otherwise.
var damageDice = map[string]int{
	"acid":   4,
	"poison": 8,
	"cold":   8,
}

var (
	placeholderRegex = regexp.MustCompile(`\{[^}]+\}`)
	damageRegex      = regexp.MustCompile(`\{DAM[^}]*\}`)
	offsetRegex      = regexp.MustCompile(`^\s*([+\-*])\s*(\d+)\s*$`)
)

// Generator creates traps for a floor of a given level.
type Generator struct {
	rng   *rand.Rand
	pools *catalog.TrapPools
	level int
}

// NewGenerator returns a Generator for the party level.
func NewGenerator(rng *rand.Rand, pools *catalog.TrapPools, level int) *Generator {
	return &Generator{rng: rng, pools: pools, level: max(1, level)}
}

func (g *Generator) newTrap(kind OwnerKind, index int) *Trap {
	return &Trap{
		Kind:       kind,
		OwnerIndex: index,
		NoticeDC:   g.RandomDC(),
		DisarmDC:   g.RandomDC(),
	}
}

// build picks a trigger (from pools when trigger is empty) and an effect.
func (g *Generator) build(t *Trap, trigger string, triggerPools, effectPools []string) (*Trap, error) {
	if trigger == "" {
		var err error
		if trigger, err = g.pools.Pick(g.rng, triggerPools...); err != nil {
			return nil, err
		}
	}
	tmpl, err := g.pools.Pick(g.rng, effectPools...)
	if err != nil {
		return nil, err
	}
	effect, err := g.Eval(tmpl, t.Kind)
	if err != nil {
		return nil, err
	}
	t.Trigger, t.Effect = trigger, effect
	return t, nil
}

// Room creates a trap covering a room. Enclosed rooms can also get
// "doors shut and lock" effects.
func (g *Generator) Room(index int, enclosed bool) (*Trap, error) {
	effects := []string{catalog.PoolOneOffDamage, catalog.PoolSlowDamage, catalog.PoolMisc, catalog.PoolMiscRoomOrCorridor}
	if enclosed {
		effects = append(effects, catalog.PoolEnclosedDoors)
	}
	return g.build(g.newTrap(OwnerRoom, index), "", []string{catalog.PoolAreaTriggers}, effects)
}

// Corridor creates a trap covering a corridor.
func (g *Generator) Corridor(index int, enclosed, hasDoors bool) (*Trap, error) {
	effects := []string{catalog.PoolOneOffDamage, catalog.PoolMisc, catalog.PoolMiscRoomOrCorridor}
	if enclosed {
		effects = append(effects, catalog.PoolEnclosedDoors)
	}
	if hasDoors {
		effects = append(effects, catalog.PoolMiscCorridor)
	}
	triggers := []string{catalog.PoolAreaTriggers, catalog.PoolCorridorTriggers}
	return g.build(g.newTrap(OwnerCorridor, index), "", triggers, effects)
}

// Door creates a trap on a door.
func (g *Generator) Door(index, x, y int) (*Trap, error) {
	t := g.newTrap(OwnerDoor, index)
	t.X, t.Y = x, y
	return g.build(t, TriggerOpening, nil, []string{catalog.PoolOneOffDamage, catalog.PoolMisc})
}

// Chest creates a trap on a chest, bookshelf or mimic at x, y.
func (g *Generator) Chest(x, y int) (*Trap, error) {
	t := g.newTrap(OwnerChest, -1)
	t.X, t.Y = x, y
	effects := []string{catalog.PoolOneOffDamage, catalog.PoolMisc, catalog.PoolMediumDebuff, catalog.PoolLongDebuff}
	return g.build(t, TriggerOpening, nil, effects)
}

// Eval resolves the placeholders of a template. Unknown placeholders are
// left as written.
func (g *Generator) Eval(tmpl string, kind OwnerKind) (string, error) {
	return g.eval(tmpl, kind, 0)
}

func (g *Generator) eval(tmpl string, kind OwnerKind, depth int) (string, error) {
	numDamage := len(damageRegex.FindAllString(tmpl, -1))
	var evalErr error
	out := placeholderRegex.ReplaceAllStringFunc(tmpl, func(m string) string {
		if evalErr != nil {
			return m
		}
		s, err := g.placeholder(m, kind, numDamage, depth)
		if err != nil {
			evalErr = err
			return m
		}
		return s
	})
	if evalErr != nil {
		return "", evalErr
	}
	return out, nil
}

func (g *Generator) placeholder(m string, kind OwnerKind, numDamage, depth int) (string, error) {
	body := strings.TrimSpace(m[1 : len(m)-1])
	cmd, modStr, _ := strings.Cut(body, ":")
	cmd = strings.TrimSpace(cmd)
	upper := strings.ToUpper(cmd)

	switch {
	case upper == "DISEASE":
		return g.pools.Pick(g.rng, catalog.PoolDiseases)

	case strings.HasPrefix(upper, "DC"):
		dc, ok := applyOffset(g.RandomDC(), cmd[2:])
		if !ok {
			return m, nil
		}
		return fmt.Sprintf("DC:%d", dc), nil

	case strings.HasPrefix(upper, "AB"):
		ab, ok := applyOffset(g.RandomHitBonus(), cmd[2:])
		if !ok {
			return m, nil
		}
		return fmt.Sprintf("%+d", ab), nil

	case upper == "AREA":
		return g.RandomArea(kind), nil

	case upper == "DAM":
		slow, dtype := false, "force"
		for _, mod := range strings.Split(modStr, ",") {
			mod = strings.TrimSpace(mod)
			switch {
			case mod == "":
			case strings.EqualFold(mod, "slow"):
				slow = true
			default:
				dtype = mod
			}
		}
		avg := g.RandomAvgDamage(slow) / float64(max(1, numDamage))
		d, ok := damageDice[dtype]
		if !ok {
			d = 6
		}
		return fmt.Sprintf("%s %s damage", DamageDiceExpr(d, avg), dtype), nil

	case upper == "SHORT_DEBUFF_TRAP_EFFECT", upper == "SLOW_DAMAGE_TRAP_EFFECT":
		if depth >= maxNesting {
			return m, nil
		}
		pool := catalog.PoolShortDebuff
		if upper == "SLOW_DAMAGE_TRAP_EFFECT" {
			pool = catalog.PoolSlowDamage
		}
		tmpl, err := g.pools.Pick(g.rng, pool)
		if err != nil {
			return "", err
		}
		return g.eval(tmpl, kind, depth+1)
	}
	return m, nil
}

// applyOffset applies a "+n", "-n" or "*n" suffix; an empty suffix is a
// no-op.
func applyOffset(v int, suffix string) (int, bool) {
	if strings.TrimSpace(suffix) == "" {
		return v, true
	}
	m := offsetRegex.FindStringSubmatch(suffix)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[2])
	switch m[1] {
	case "+":
		return v + n, true
	case "-":
		return v - n, true
	default:
		return v * n, true
	}
}

// RandomDC draws a difficulty from [floor(.7l+8), ceil(.8l+12)).
func (g *Generator) RandomDC() int {
	l := float64(g.level)
	lo := int(math.Floor(l*0.7 + 8))
	hi := int(math.Ceil(l*0.8 + 12))
	return lo + g.rng.Intn(hi-lo)
}

// RandomHitBonus draws an attack bonus around .65l+2.5, spread by 2+l/10.
func (g *Generator) RandomHitBonus() int {
	l := float64(g.level)
	mid := l*0.65 + 2.5
	spread := 2 + l/10
	return int(math.Round(mid + g.rng.Float64()*spread*2 - spread))
}

// RandomArea is a radius that grows with level. Room and corridor traps
// cover the whole location half the time.
func (g *Generator) RandomArea(kind OwnerKind) string {
	switch kind {
	case OwnerRoom:
		if g.rng.Intn(2) == 0 {
			return "whole room"
		}
	case OwnerCorridor:
		if g.rng.Intn(2) == 0 {
			return "whole corridor"
		}
	}
	radius := 5 * (1 + g.rng.Intn(g.level/5+3))
	return fmt.Sprintf("%d' radius", radius)
}

// RandomAvgDamage draws a damage average from [3l, 8l), quartered for
// effects that repeat every turn.
func (g *Generator) RandomAvgDamage(slow bool) float64 {
	lo, hi := g.level*3, g.level*8
	avg := float64(lo + g.rng.Intn(hi-lo))
	if slow {
		avg /= 4
	}
	return avg
}

// DamageDiceExpr converts an average into a dice expression using dN.
// Averages too small for even one dN fall back to a single smaller die.
func DamageDiceExpr(d int, avg float64) string {
	half := float64(d) / 2
	if avg < half-1 {
		switch {
		case avg <= 1:
			return "1"
		case avg <= 3:
			return "1d4"
		case avg <= 4:
			return "1d6"
		case avg <= 5:
			return "1d8"
		case avg <= 6:
			return "1d10"
		default:
			return "1d12"
		}
	}
	n := max(1, int(math.Round(avg/(half+0.5))))
	return fmt.Sprintf("%dd%d", n, d)
}

package stats

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ErrBadDice is returned for dice expressions that cannot be parsed.
var ErrBadDice = errors.New("stats: malformed dice expression")

// Upper bounds on a single NdM term.
const (
	MaxDiceCount = 1000
	MaxDiceSides = 1000
)

func checkDice(count, sides int) error {
	if count < 0 || count > MaxDiceCount {
		return fmt.Errorf("%w: %d dice (max %d)", ErrBadDice, count, MaxDiceCount)
	}
	if sides < 1 || sides > MaxDiceSides {
		return fmt.Errorf("%w: d%d", ErrBadDice, sides)
	}
	return nil
}

// rngRoller satisfies dice.Roller on top of a caller-seeded source so that
// floors are reproducible from a seed.
type rngRoller struct {
	rng *rand.Rand
}

// NewRandRoller returns a dice.Roller backed by rng.
func NewRandRoller(rng *rand.Rand) dice.Roller {
	return &rngRoller{rng: rng}
}

func (r *rngRoller) Roll(size int) (int, error) {
	if err := checkDice(1, size); err != nil {
		return 0, err
	}
	return r.rng.Intn(size) + 1, nil
}

func (r *rngRoller) RollN(count, size int) ([]int, error) {
	if err := checkDice(count, size); err != nil {
		return nil, err
	}
	rolls := make([]int, count)
	for i := range rolls {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		rolls[i] = v
	}
	return rolls, nil
}

// Dice rolls dice and evaluates dice expressions through a dice.Roller.
type Dice struct {
	roller dice.Roller
}

// NewDice wraps any dice.Roller, e.g. dice.DefaultRoller.
func NewDice(roller dice.Roller) *Dice {
	return &Dice{roller: roller}
}

// NewSeededDice returns Dice drawing from rng.
func NewSeededDice(rng *rand.Rand) *Dice {
	return NewDice(NewRandRoller(rng))
}

// Roll rolls n dice with the specified number of sides and returns the total
func (d *Dice) Roll(n, sides int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	if err := checkDice(n, sides); err != nil {
		return 0, err
	}
	rolls, err := d.roller.RollN(n, sides)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, v := range rolls {
		total += v
	}
	return total, nil
}

// D20 rolls a 20-sided die (1-20)
func (d *Dice) D20() int {
	v, err := d.roller.Roll(20)
	if err != nil {
		return 10
	}
	return v
}

// Eval evaluates expressions such as "3d6", "1d3-1" or "-1+2d4".
func (d *Dice) Eval(expr string) (int, error) {
	return EvalDice(expr, d.roller)
}

// MustEval is Eval for expressions known to be valid, such as literals in code.
func (d *Dice) MustEval(expr string) int {
	v, err := d.Eval(expr)
	if err != nil {
		panic(err)
	}
	return v
}

// diceTermRegex matches one NdM term; N defaults to 1
var diceTermRegex = regexp.MustCompile(`^(\d*)[dD](\d+)$`)

// DiceTerm is one signed addend of a dice expression.
type DiceTerm struct {
	Count int // dice to roll, 0 for a constant
	Sides int
	Const int
	Neg   bool
}

// ParseDice splits an expression into signed terms.
// "-" is treated as "+-" so "1d3-1" is the sum of 1d3 and -1.
func ParseDice(expr string) ([]DiceTerm, error) {
	s := strings.ReplaceAll(strings.TrimSpace(expr), " ", "")
	if s == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrBadDice)
	}
	s = strings.ReplaceAll(s, "-", "+-")

	var terms []DiceTerm
	for _, raw := range strings.Split(s, "+") {
		if raw == "" {
			continue
		}
		term := DiceTerm{}
		if strings.HasPrefix(raw, "-") {
			term.Neg = true
			raw = raw[1:]
		}
		if m := diceTermRegex.FindStringSubmatch(raw); m != nil {
			term.Count = 1
			if m[1] != "" {
				n, err := strconv.Atoi(m[1])
				if err != nil {
					return nil, fmt.Errorf("%w: %q", ErrBadDice, expr)
				}
				term.Count = n
			}
			sides, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadDice, expr)
			}
			term.Sides = sides
			if err := checkDice(term.Count, term.Sides); err != nil {
				return nil, fmt.Errorf("%q: %w", expr, err)
			}
		} else {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadDice, expr)
			}
			term.Const = n
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: %q has no terms", ErrBadDice, expr)
	}
	return terms, nil
}

// EvalDice rolls a dice expression with roller.
func EvalDice(expr string, roller dice.Roller) (int, error) {
	terms, err := ParseDice(expr)
	if err != nil {
		return 0, err
	}
	d := NewDice(roller)
	total := 0
	for _, t := range terms {
		v := t.Const
		if t.Count > 0 {
			v, err = d.Roll(t.Count, t.Sides)
			if err != nil {
				return 0, err
			}
		}
		if t.Neg {
			v = -v
		}
		total += v
	}
	return total, nil
}

// DiceRange returns the minimum and maximum possible totals of an expression.
func DiceRange(expr string) (lo, hi int, err error) {
	terms, err := ParseDice(expr)
	if err != nil {
		return 0, 0, err
	}
	for _, t := range terms {
		tlo, thi := t.Const, t.Const
		if t.Count > 0 {
			tlo, thi = t.Count, t.Count*t.Sides
		}
		if t.Neg {
			tlo, thi = -thi, -tlo
		}
		lo += tlo
		hi += thi
	}
	return lo, hi, nil
}

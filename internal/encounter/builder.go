package encounter

import (
	"math"
	"math/rand"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

const (
	buildAttempts   = 100
	attemptSteps    = 100
	minBuildScore   = 0.0001
	overshootFactor = 1.3
)

// varieties is the distribution of distinct species per encounter.
var varieties = []int{1, 2, 2, 3, 3, 3, 4, 4}

// Options tunes a single Build call.
type Options struct {
	// Variety is the number of distinct species; 0 draws one at random.
	Variety int
	// PrevCounts holds how many of each species the floor already has.
	PrevCounts map[string]int
	// MaxSpace caps TotalSpace; 0 means unlimited.
	MaxSpace int
}

// Builder searches for encounters near a target XP.
type Builder struct {
	rng  *rand.Rand
	dice *stats.Dice
}

// NewBuilder returns a Builder drawing from rng.
func NewBuilder(rng *rand.Rand) *Builder {
	return &Builder{rng: rng, dice: stats.NewSeededDice(rng)}
}

// Build runs a best-of-100 search and returns the highest scoring
// encounter. When nothing scores above a small floor the encounter is
// empty; callers skip the room.
func (b *Builder) Build(infos []*catalog.MonsterInfo, targetXP int, opts Options) (*Encounter, error) {
	variety := opts.Variety
	if variety <= 0 {
		variety = varieties[b.rng.Intn(len(varieties))]
	}

	var pool []*catalog.MonsterInfo
	for _, mi := range infos {
		if mi.XP > 0 && float64(mi.XP) <= float64(targetXP)*overshootFactor && mi.Frequency > 0 {
			pool = append(pool, mi)
		}
	}
	variety = min(variety, len(pool))
	if targetXP <= 0 || variety == 0 {
		return &Encounter{}, nil
	}

	var best []*catalog.MonsterInfo
	bestScore := minBuildScore
	for i := 0; i < buildAttempts; i++ {
		group := b.attempt(pool, targetXP, variety, opts)
		if score := ScoreGroup(group, targetXP, opts.PrevCounts); score > bestScore {
			best, bestScore = group, score
		}
	}

	enc := &Encounter{}
	for _, mi := range best {
		m, err := NewMonster(mi, b.dice)
		if err != nil {
			return nil, err
		}
		enc.Monsters = append(enc.Monsters, m)
	}
	return enc, nil
}

// attempt greedily grows one candidate group.
func (b *Builder) attempt(pool []*catalog.MonsterInfo, targetXP, variety int, opts Options) []*catalog.MonsterInfo {
	var group []*catalog.MonsterInfo
	counts := make(map[string]int)
	prevXP := -1000000
	improves := func(xp int) bool {
		return abs(targetXP-xp) < abs(targetXP-prevXP)
	}

	// Phase 1: try new species until the variety is reached
	remaining := append([]*catalog.MonsterInfo(nil), pool...)
	weights := frequencies(remaining)
	var eligible []*catalog.MonsterInfo
	tried := 0
	for step := 0; step < attemptSteps; step++ {
		if len(eligible) >= variety || tried >= len(pool) {
			break
		}
		ix := stats.Choice(b.rng, weights)
		if ix < 0 {
			break
		}
		mi := remaining[ix]
		remaining = append(remaining[:ix], remaining[ix+1:]...)
		weights = append(weights[:ix], weights[ix+1:]...)
		tried++

		if variety != 1 && mi.HasKeyword("Homogenous") {
			continue
		}
		if mi.Capped() && opts.PrevCounts[mi.Name] >= mi.MaxPerFloor {
			continue
		}
		if opts.MaxSpace > 0 && GroupSpace(group)+mi.Diameter*mi.Diameter > opts.MaxSpace {
			continue
		}
		candidate := append(group, mi)
		if xp := GroupXP(candidate); improves(xp) {
			group = candidate
			eligible = append(eligible, mi)
			counts[mi.Name]++
			prevXP = xp
		}
	}

	// Phase 2: add more of the accepted species while it helps
	eligibleWeights := frequencies(eligible)
	for step := 0; step < attemptSteps && len(eligible) > 0; step++ {
		ix := stats.Choice(b.rng, eligibleWeights)
		if ix < 0 {
			break
		}
		mi := eligible[ix]
		candidate := append(group, mi)
		xp := GroupXP(candidate)
		ok := improves(xp)
		if opts.MaxSpace > 0 && GroupSpace(candidate) > opts.MaxSpace {
			ok = false
		}
		if mi.Capped() && opts.PrevCounts[mi.Name]+counts[mi.Name]+1 > mi.MaxPerFloor {
			ok = false
		}
		if ok {
			group = candidate
			counts[mi.Name]++
			prevXP = xp
			continue
		}
		eligible = append(eligible[:ix], eligible[ix+1:]...)
		eligibleWeights = append(eligibleWeights[:ix], eligibleWeights[ix+1:]...)
	}
	return group
}

// Score rates an encounter against a target; higher is better.
func Score(e *Encounter, targetXP int, prevCounts map[string]int) float64 {
	return ScoreGroup(e.Infos(), targetXP, prevCounts)
}

// ScoreGroup rates a group of catalog entries:
//   - 1 - |xp-target|/target to start
//   - halved when every species is Backline or every species is Frontline
//   - halved when a species is missing its synergy partner, otherwise
//     multiplied by 1 + the number of species with synergies
//   - divided by 10 for each species pushed over its per-floor cap
//   - multiplied by 1 + the number of species new to the floor
func ScoreGroup(group []*catalog.MonsterInfo, targetXP int, prevCounts map[string]int) float64 {
	if len(group) == 0 || targetXP <= 0 {
		return 0
	}
	xp := GroupXP(group)
	score := 1 - math.Abs(float64(xp-targetXP))/float64(targetXP)

	species := make(map[string]*catalog.MonsterInfo)
	counts := make(map[string]int)
	var order []string
	for _, mi := range group {
		if _, seen := species[mi.Name]; !seen {
			order = append(order, mi.Name)
		}
		species[mi.Name] = mi
		counts[mi.Name]++
	}

	allBackline, allFrontline := true, true
	for _, mi := range species {
		allBackline = allBackline && mi.HasKeyword("Backline")
		allFrontline = allFrontline && mi.HasKeyword("Frontline")
	}
	if allBackline || allFrontline {
		score /= 2
	}

	hasSynergies, foundSynergies := 0, 0
	for _, mi := range species {
		if len(mi.Synergies) == 0 {
			continue
		}
		hasSynergies++
		for _, s := range mi.Synergies {
			if _, ok := species[s]; ok {
				foundSynergies++
				break
			}
		}
	}
	if hasSynergies > foundSynergies {
		score /= 2
	} else {
		score *= 1 + float64(hasSynergies)
	}

	newSpecies := 0
	for _, name := range order {
		mi := species[name]
		if prevCounts[name] == 0 {
			newSpecies++
		}
		if mi.Capped() && counts[name]+prevCounts[name] > mi.MaxPerFloor {
			score /= 10
		}
	}
	return score * (1 + float64(newSpecies))
}

func frequencies(infos []*catalog.MonsterInfo) []float64 {
	w := make([]float64, len(infos))
	for i, mi := range infos {
		w[i] = mi.Frequency
	}
	return w
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package dungeon

import (
	"sort"

	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

const (
	featureTrials = 100
	// percent rolls are taken out of 99.9 so 100 always succeeds
	featurePercentScale = 99.9
)

// rollFeatures decides which features this floor gets.
func (g *Generator) rollFeatures() ([]*Feature, error) {
	var features []*Feature
	if g.rng.Float64() < g.cfg.BlacksmithPercent/featurePercentScale {
		ft := &Feature{Kind: FeatureBlacksmith, Room: -1, offset: g.rng.Float64()}
		for _, npc := range g.cat.NPCs {
			if npc.Name == blacksmithName {
				ft.Smith = npc
				break
			}
		}
		features = append(features, ft)
	}

	names := make([]string, 0, len(g.cfg.AltarPercents))
	for name := range g.cfg.AltarPercents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if g.rng.Float64() >= g.cfg.AltarPercents[name]/featurePercentScale {
			continue
		}
		deity, err := g.cat.Deity(name)
		if err != nil {
			return nil, err
		}
		features = append(features, &Feature{
			Kind:   FeatureAltar,
			Room:   -1,
			Deity:  deity,
			Rite:   deity.RollRite(g.rng),
			offset: g.rng.Float64(),
		})
	}
	return features, nil
}

// placeFeatures gives each rolled feature its own room. Rooms are drawn by
// score over a number of trials and the assignment with the best product of
// scores wins.
func (g *Generator) placeFeatures(f *Floor) error {
	features, err := g.rollFeatures()
	if err != nil {
		return err
	}
	if len(features) == 0 {
		return nil
	}

	type candidates struct {
		rooms  []int
		scores []float64
	}
	cands := make([]candidates, len(features))
	for i, ft := range features {
		for _, room := range f.Rooms {
			if room.IsTrivial() {
				continue
			}
			if score := ft.scoreRoom(f, room); score > 0 {
				cands[i].rooms = append(cands[i].rooms, room.Index)
				cands[i].scores = append(cands[i].scores, score)
			}
		}
		if len(cands[i].rooms) == 0 {
			return ErrFeaturePlacement
		}
	}

	var best []int
	bestScore := 0.0
	order := make([]int, len(features))
	for i := range order {
		order[i] = i
	}
	for trial := 0; trial < featureTrials; trial++ {
		used := make(map[int]bool)
		choice := make([]int, len(features))
		score := 1.0
		g.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, fix := range order {
			c := cands[fix]
			choice[fix] = -1
			k := min(len(used)+1, len(c.rooms))
			picks, err := stats.Samples(g.rng, c.scores, k)
			if err != nil {
				return err
			}
			for _, pick := range picks {
				if rix := c.rooms[pick]; !used[rix] {
					choice[fix] = rix
					score *= c.scores[pick]
					used[rix] = true
					break
				}
			}
			if choice[fix] < 0 {
				score = 0
				break
			}
		}
		if score > bestScore {
			best, bestScore = choice, score
		}
	}
	if best == nil {
		return ErrFeaturePlacement
	}

	for fix, rix := range best {
		ft := features[fix]
		room := f.Rooms[rix]
		ft.Room = rix
		ft.Spots = ft.spots(f, room)
		for _, p := range ft.Spots {
			f.reserved.Put(p)
		}
		room.Features = append(room.Features, fix)
	}
	f.Features = features
	for _, ft := range features {
		ft.postProcess(f)
	}
	logger.Debug("Placed special features", "count", len(features))
	return nil
}

package dungeon

import (
	"sort"

	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

// majorityShare is how dominant a neighbouring style must be to be copied
// outright instead of drawn at random.
const majorityShare = 0.7

// stylizeTiles tags every tile with a style. Rooms and corridors paint
// their own tiles and the ring around them, dungeon style winning over
// cavern where they meet. The remaining solid rock takes its style from its
// neighbours and is marked interior.
func (g *Generator) stylizeTiles(f *Floor) error {
	for _, r := range f.Rooms {
		style := r.Style()
		for _, p := range r.TileCoords() {
			f.tiles[p.X][p.Y].Style = style
			for _, n := range f.Neighbors(p.X, p.Y, true) {
				if n.Style == "" || style == StyleDungeon {
					n.Style = style
				}
			}
		}
	}
	for _, c := range f.Corridors {
		style := c.Style()
		for _, p := range c.TileCoords(f, true) {
			f.tiles[p.X][p.Y].Style = style
			for _, n := range f.Neighbors(p.X, p.Y, true) {
				if n.Kind != TileCorridorFloor && !n.IsWall() {
					continue
				}
				if n.Style == "" || style == StyleDungeon {
					n.Style = style
				}
			}
		}
	}

	var unstyled []*Tile
	f.TileIter(func(t *Tile) {
		if t.Style == "" {
			unstyled = append(unstyled, t)
		}
	})
	for len(unstyled) > 0 {
		var left []*Tile
		for _, t := range unstyled {
			if !g.inferStyle(f, t) {
				left = append(left, t)
			}
		}
		if len(left) == len(unstyled) {
			// nothing styled anywhere to spread from
			break
		}
		unstyled = left
	}
	return nil
}

// inferStyle styles t from its cardinal neighbours and reports whether any
// of them had a style to give.
func (g *Generator) inferStyle(f *Floor, t *Tile) bool {
	counts := make(map[string]int)
	total := 0
	for _, n := range f.Neighbors(t.X, t.Y, false) {
		if n.Style != "" {
			counts[n.Style]++
			total++
		}
	}
	if total == 0 {
		return false
	}
	styles := make([]string, 0, len(counts))
	for s := range counts {
		styles = append(styles, s)
	}
	sort.SliceStable(styles, func(i, j int) bool {
		if counts[styles[i]] != counts[styles[j]] {
			return counts[styles[i]] < counts[styles[j]]
		}
		return styles[i] < styles[j]
	})
	top := styles[len(styles)-1]
	if float64(counts[top])/float64(total) > majorityShare {
		t.Style = top
	} else {
		weights := make([]float64, len(styles))
		for i, s := range styles {
			weights[i] = float64(counts[s])
		}
		t.Style = styles[stats.Choice(g.rng, weights)]
	}
	t.Interior = true
	return true
}

package dungeon

import (
	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

// placeRivers carves num_rivers rivers across the finished layout.
func (g *Generator) placeRivers(f *Floor) error {
	for i := 0; i < g.cfg.NumRivers; i++ {
		f.carveRiver(proposeRiver(g.rng, f, riverDiameter))
	}
	if len(f.Rivers) > 0 {
		logger.Debug("Carved rivers", "count", len(f.Rivers))
	}
	return nil
}

// lit is a room or corridor being lit.
type lit struct {
	room, corridor int
	light          string
	cavern         bool
	coords         []Point
}

// placeLights copies every room's and corridor's light level onto its
// tiles, then adds light sources to those that are not dark: glowing
// mushrooms in caverns and wall sconces elsewhere.
func (g *Generator) placeLights(f *Floor) error {
	var owners []lit
	for _, r := range f.Rooms {
		owners = append(owners, lit{r.Index, -1, r.Light, r.Kind == RoomCavernous, r.TileCoords()})
	}
	for _, c := range f.Corridors {
		owners = append(owners, lit{-1, c.Index, c.Light, c.Kind == CorridorCavernous, c.TileCoords(f, true)})
	}

	for _, o := range owners {
		for _, p := range o.coords {
			f.tiles[p.X][p.Y].Light = o.light
		}
		if o.light == config.LightDark {
			continue
		}
		kind, denom := LightWallSconce, 6
		if o.cavern {
			kind, denom = LightGlowingMushrooms, 20
		}
		if o.light == config.LightBright {
			denom /= 2
		}

		var spots []Point
		for _, p := range o.coords {
			t := f.tiles[p.X][p.Y]
			if t.Kind == TileDoor || t.Kind == TileWater {
				continue
			}
			if kind == LightWallSconce && !g.touchesWall(f, p) {
				continue
			}
			spots = append(spots, p)
		}
		if len(spots) == 0 {
			continue
		}
		spots = stats.Shuffled(g.rng, spots)
		for _, p := range spots[:max(1, len(spots)/denom)] {
			f.Lights = append(f.Lights, &LightSource{Kind: kind, X: p.X, Y: p.Y, Room: o.room, Corridor: o.corridor})
		}
	}
	logger.Debug("Placed lights", "count", len(f.Lights))
	return nil
}

func (g *Generator) touchesWall(f *Floor, p Point) bool {
	for _, n := range f.neighborsOrWall(p.X, p.Y, false) {
		if n.IsWall() {
			return true
		}
	}
	return false
}

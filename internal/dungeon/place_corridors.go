package dungeon

import (
	"fmt"
	"sort"

	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"github.com/zyedidia/generic/mapset"
)

// corridorSignature identifies an attempted corridor so it is never tried
// twice.
type corridorSignature struct {
	room1, room2    int
	width           int
	horizontalFirst bool
}

// placeCorridors joins random room pairs until the rooms are connected (if
// required) and there are enough corridors per room.
func (g *Generator) placeCorridors(f *Floor) error {
	connected := make(Graph)
	fullyConnected := false
	tried := mapset.New[corridorSignature]()
	widths := g.cfg.CorridorWidthWeights()
	minCorridors := float64(len(f.Rooms)) * g.cfg.MinCorridorsPerRoom

	for i := 0; i < g.cfg.MaxCorridorAttempts; i++ {
		if (fullyConnected || !g.cfg.PreferFullConnection) && float64(len(f.Corridors)) >= minCorridors {
			break
		}
		r1, r2 := g.rng.Intn(len(f.Rooms)), g.rng.Intn(len(f.Rooms))
		if r1 == r2 {
			continue
		}
		if r1 > r2 {
			r1, r2 = r2, r1
		}
		if s, ok := connected[r1]; ok && s.Has(r2) {
			continue
		}
		horizontalFirst := g.rng.Intn(2) == 1
		width := 1 + max(0, stats.Choice(g.rng, widths))
		sig := corridorSignature{r1, r2, width, horizontalFirst}
		if tried.Has(sig) {
			continue
		}
		tried.Put(sig)

		room1, room2 := f.Rooms[r1], f.Rooms[r2]
		kind := CorridorDungeon
		if room1.Kind == RoomCavernous && room2.Kind == RoomCavernous {
			kind = CorridorCavernous
		}
		c := newCorridor(kind, room1, room2, horizontalFirst, width)
		if !g.corridorValid(f, c) {
			continue
		}

		c.Light = g.corridorLight(room1.Light, room2.Light)
		linkGraph(connected, r1, r2)
		f.addCorridor(c)
		if !fullyConnected && Reachable(connected, r1).Size() == len(f.Rooms) {
			fullyConnected = true
		}
	}

	if g.cfg.PreferFullConnection && Reachable(f.RoomNeighbors, 0).Size() < len(f.Rooms) {
		return fmt.Errorf("%w: %d corridors left rooms disconnected", ErrCorridorConnectivity, len(f.Corridors))
	}
	g.nameCorridors(f)
	logger.Debug("Placed corridors", "count", len(f.Corridors))
	return nil
}

// corridorValid walks the corridor's interior and rejects it if it would
// cut into another corridor, cross more than one wall layer into a room, or
// run alongside anything other than solid wall.
func (g *Generator) corridorValid(f *Floor, c *Corridor) bool {
	coords := c.Walk(0)
	wallEntries := 0
	for i := 1; i < len(coords)-1; i++ {
		p, prev, next := coords[i], coords[i-1], coords[i+1]
		if max(abs(prev.X-p.X), abs(prev.Y-p.Y), abs(next.X-p.X), abs(next.Y-p.Y)) > 1 {
			// jumping between tracks
			wallEntries = 0
			continue
		}
		t := f.tiles[p.X][p.Y]
		pt := f.tiles[prev.X][prev.Y]
		nt := f.tiles[next.X][next.Y]
		if !g.cfg.AllowCorridorIntersection && t.IsCorridorFloor() {
			return false
		}
		if !t.IsRoomFloor() && pt.IsRoomFloor() {
			wallEntries++
			if wallEntries > 1 {
				return false
			}
		}
		if !t.IsWall() {
			continue
		}
		if g.bordersOpenRoom(f, pt, nt) {
			continue
		}

		var required []Point
		pdx, pdy := p.X-prev.X, p.Y-prev.Y
		ndx, ndy := next.X-p.X, next.Y-p.Y
		if pdx == ndx && pdy == ndy {
			required = []Point{{p.X + ndy, p.Y + ndx}, {p.X - ndy, p.Y - ndx}}
		} else {
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					required = append(required, Point{p.X + dx, p.Y + dy})
				}
			}
		}
		for _, q := range required {
			if t := f.Tile(q.X, q.Y); t == nil || !t.IsWall() {
				return false
			}
		}
	}
	return true
}

// bordersOpenRoom reports whether a wall tile between prev and next opens
// onto a room that does not want doors, which exempts it from the wall
// buffer rule.
func (g *Generator) bordersOpenRoom(f *Floor, prev, next *Tile) bool {
	var prevRoom, nextRoom *Room
	if prev.IsRoomFloor() && prev.RoomIndex >= 0 {
		prevRoom = f.Rooms[prev.RoomIndex]
	}
	if next.IsRoomFloor() && next.RoomIndex >= 0 {
		nextRoom = f.Rooms[next.RoomIndex]
	}
	switch {
	case prevRoom != nil && nextRoom != nil:
		return !prevRoom.FullyEnclosedByDoors() && !nextRoom.FullyEnclosedByDoors()
	case prevRoom != nil:
		return !prevRoom.FullyEnclosedByDoors()
	case nextRoom != nil:
		return !nextRoom.FullyEnclosedByDoors()
	}
	return false
}

// corridorLight is one of the two rooms' levels; a corridor between a
// bright and a dark room is dim.
func (g *Generator) corridorLight(a, b string) string {
	if (a == config.LightBright && b == config.LightDark) || (a == config.LightDark && b == config.LightBright) {
		return config.LightDim
	}
	if g.rng.Intn(2) == 0 {
		return a
	}
	return b
}

// nameCorridors numbers nontrivial corridors top to bottom, left to right.
func (g *Generator) nameCorridors(f *Floor) {
	type named struct {
		c   *Corridor
		mid Point
	}
	var list []named
	for _, c := range f.Corridors {
		if !c.IsNontrivial(f) {
			continue
		}
		if mid, ok := c.MiddleCoords(f); ok {
			list = append(list, named{c, mid})
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].mid.Y != list[j].mid.Y {
			return list[i].mid.Y > list[j].mid.Y
		}
		return list[i].mid.X < list[j].mid.X
	})
	for i, n := range list {
		n.c.Name = fmt.Sprintf("C%d", i+1)
	}
}

func linkGraph(g Graph, a, b int) {
	for _, pair := range [][2]int{{a, b}, {b, a}} {
		s, ok := g[pair[0]]
		if !ok {
			s = mapset.New[int]()
			g[pair[0]] = s
		}
		s.Put(pair[1])
	}
}

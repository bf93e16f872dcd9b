package dungeon

import (
	"github.com/lawnchairsociety/cavernforge/internal/fog"
)

// collectFogBits fogs every tile of the grid. On top of that it covers
// each room with its tiles plus a one-tile border, the room centre taking
// priority, and each corridor with its carved tiles and the walls touching
// them. Corridors that are all door get no corridor fog.
func (f *Floor) collectFogBits() *fog.Collector {
	c := fog.NewCollector()
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			c.AddTile(x, y)
		}
	}
	for _, r := range f.Rooms {
		for _, p := range r.TileCoords() {
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					x, y := p.X+dx, p.Y+dy
					priority := 1
					if x == r.X && y == r.Y {
						priority = 2
					}
					c.AddRoom(x, y, r.Index, priority)
				}
			}
		}
	}

	for _, cor := range f.Corridors {
		var bits []Point
		open := 0
		for _, p := range cor.Walk(0) {
			t := f.tiles[p.X][p.Y]
			if !t.IsCorridorFloor() {
				continue
			}
			if t.Kind != TileDoor {
				open++
			}
			bits = append(bits, p)
			for _, n := range f.Neighbors(p.X, p.Y, true) {
				if n.IsWall() {
					bits = append(bits, Point{n.X, n.Y})
				}
			}
		}
		if open == 0 {
			continue
		}
		for _, p := range bits {
			c.AddCorridor(p.X, p.Y, cor.Index)
		}
	}
	return c
}

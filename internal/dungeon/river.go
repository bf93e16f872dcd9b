package dungeon

import (
	"math"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

const (
	riverDiameter = 2
	riverMaxSteps = 10000
	riverStep     = 0.1
)

// River is a band of water tiles crossing the floor.
type River struct {
	Index    int
	Diameter int
	Coords   []Point
}

// proposeRiver traces a meandering line through a random point until it
// leaves the grid in both directions, then widens it to diameter.
func proposeRiver(rng *rand.Rand, f *Floor, diameter int) *River {
	startX := 2 + rng.Float64()*float64(f.Width-4)
	startY := 2 + rng.Float64()*float64(f.Height-4)
	startAngle := rng.Float64() * math.Pi
	period := 2 + rng.Float64()*7
	amplitude := 1.5 * rng.Float64() / period
	phase := rng.Float64() * 2 * math.Pi
	jitter := rng.Float64() / 5

	core := mapset.New[Point]()
	step := func(x, y, angle float64, i int, d float64) (float64, float64, float64, bool) {
		angle += (rng.Float64() - 0.5) * jitter * d
		angle += amplitude * math.Sin(phase+float64(i)*d/period) * d
		x += d * math.Cos(angle)
		y += d * math.Sin(angle)
		core.Put(Point{int(x), int(y)})
		margin := float64(diameter + 1)
		done := x+margin < 0 || x-margin > float64(f.Width) ||
			y+margin < 0 || y-margin > float64(f.Height)
		return x, y, angle, done
	}

	x, y, angle := startX, startY, startAngle
	for i := 0; i < riverMaxSteps; i++ {
		var done bool
		if x, y, angle, done = step(x, y, angle, i, riverStep); done {
			break
		}
	}
	x, y, angle = startX, startY, startAngle
	for i := 1; i < riverMaxSteps; i++ {
		var done bool
		if x, y, angle, done = step(x, y, angle, i, -riverStep); done {
			break
		}
	}

	lo := -(diameter - 1) / 2
	hi := diameter / 2
	tiles := mapset.New[Point]()
	core.Each(func(p Point) {
		for dx := lo; dx <= hi; dx++ {
			for dy := lo; dy <= hi; dy++ {
				if f.InBounds(p.X+dx, p.Y+dy) {
					tiles.Put(Point{p.X + dx, p.Y + dy})
				}
			}
		}
	})
	r := &River{Index: -1, Diameter: diameter}
	tiles.Each(func(p Point) {
		r.Coords = append(r.Coords, p)
	})
	sort.Slice(r.Coords, func(i, j int) bool {
		if r.Coords[i].X != r.Coords[j].X {
			return r.Coords[i].X < r.Coords[j].X
		}
		return r.Coords[i].Y < r.Coords[j].Y
	})
	return r
}

// carvable reports whether water may replace the tile at p. Doors, ladders,
// chests and anything a monster or feature stands on are kept.
func (f *Floor) carvable(p Point) bool {
	t := f.Tile(p.X, p.Y)
	switch t.Kind {
	case TileWall, TileRoomFloor, TileCorridorFloor, TileWater:
	default:
		return false
	}
	return f.MonsterAt(p.X, p.Y) == nil && !f.reserved.Has(p)
}

// carveRiver turns the river's tiles into water. Water keeps the owners,
// light and style of the tile it replaces.
func (f *Floor) carveRiver(r *River) {
	r.Index = len(f.Rivers)
	f.Rivers = append(f.Rivers, r)
	kept := r.Coords[:0]
	for _, p := range r.Coords {
		if !f.carvable(p) {
			continue
		}
		old := f.tiles[p.X][p.Y]
		t := newTile(TileWater, p.X, p.Y)
		t.RoomIndex, t.CorridorIndex = old.RoomIndex, old.CorridorIndex
		t.Light, t.Style = old.Light, old.Style
		old.Rivers.Each(func(ix int) { t.Rivers.Put(ix) })
		t.Rivers.Put(r.Index)
		f.tiles[p.X][p.Y] = t
		kept = append(kept, p)
	}
	r.Coords = kept
}

package dungeon

import (
	"math/rand"
)

const pickTileTries = 100

// PickOptions constrains PickTile.
type PickOptions struct {
	// Unoccupied rejects tiles under monsters, feature spots and blocking
	// tiles
	Unoccupied    bool
	AvoidCorridor bool
	PreferWall    bool
	AvoidWall     bool
	// Diameter is the footprint size: 1, 2 or 3
	Diameter int
}

// PickTile draws random tiles of room until one whose whole footprint
// satisfies opts, giving up after 100 tries.
func (f *Floor) PickTile(rng *rand.Rand, room *Room, opts PickOptions) (Point, bool) {
	coords := room.TileCoords()
	if len(coords) == 0 {
		return Point{}, false
	}
	for i := 0; i < pickTileTries; i++ {
		p := coords[rng.Intn(len(coords))]
		if f.fits(p, opts) {
			return p, true
		}
	}
	return Point{}, false
}

func (f *Floor) fits(p Point, opts PickOptions) bool {
	for _, c := range footprint(p, opts.Diameter) {
		t := f.Tile(c.X, c.Y)
		if t == nil {
			return false
		}
		if opts.Unoccupied && (f.MonsterAt(c.X, c.Y) != nil || f.reserved.Has(c)) {
			return false
		}
		if (opts.Unoccupied && t.MoveBlocking()) || t.IsFeature() {
			return false
		}
		if !opts.AvoidCorridor && !opts.PreferWall && !opts.AvoidWall {
			continue
		}
		foundWall := false
		for _, n := range f.neighborsOrWall(c.X, c.Y, false) {
			if n.IsCorridorFloor() && opts.AvoidCorridor {
				return false
			}
			if n.IsWall() {
				if opts.AvoidWall {
					return false
				}
				foundWall = true
			}
		}
		if opts.PreferWall && !foundWall {
			return false
		}
	}
	return true
}

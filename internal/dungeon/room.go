package dungeon

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lawnchairsociety/cavernforge/internal/encounter"
	"github.com/zyedidia/generic/mapset"
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// RoomKind is the shape of a room
type RoomKind int

const (
	RoomRect RoomKind = iota
	RoomCavernous
	// RoomMazeJunction is a single-tile junction between corridors
	RoomMazeJunction
)

func (k RoomKind) String() string {
	switch k {
	case RoomRect:
		return "rect"
	case RoomCavernous:
		return "cavernous"
	case RoomMazeJunction:
		return "maze_junction"
	default:
		return "unknown"
	}
}

// Room is a placed room. RW and RH are half extents.
type Room struct {
	Index         int
	Kind          RoomKind
	X, Y          int
	RW, RH        int
	Light         string
	HasUpLadder   bool
	HasDownLadder bool
	Doors         mapset.Set[int]
	Corridors     mapset.Set[int]
	Traps         mapset.Set[int]
	Features      []int
	Encounter     *encounter.Encounter
	Biome         string

	// coords holds the cavern footprint once computed; erosion extends it
	coords []Point
}

func newRoom(kind RoomKind, x, y, rw, rh int) *Room {
	return &Room{
		Index:     -1,
		Kind:      kind,
		X:         x,
		Y:         y,
		RW:        max(rw, 1),
		RH:        max(rh, 1),
		Doors:     mapset.New[int](),
		Corridors: mapset.New[int](),
		Traps:     mapset.New[int](),
	}
}

// embiggened returns a copy grown by 0 or 1 on each axis. Junctions never
// grow.
func (r *Room) embiggened(rng *rand.Rand) *Room {
	if r.Kind == RoomMazeJunction {
		return newRoom(r.Kind, r.X, r.Y, r.RW, r.RH)
	}
	return newRoom(r.Kind, r.X, r.Y, r.RW+rng.Intn(2), r.RH+rng.Intn(2))
}

// wiggled returns a copy moved by -1..1 on each axis.
func (r *Room) wiggled(rng *rand.Rand) *Room {
	return newRoom(r.Kind, r.X+rng.Intn(3)-1, r.Y+rng.Intn(3)-1, r.RW, r.RH)
}

// TileCoords lists the room's floor tiles.
func (r *Room) TileCoords() []Point {
	switch r.Kind {
	case RoomMazeJunction:
		return []Point{{r.X, r.Y}}
	case RoomCavernous:
		if r.coords == nil {
			ew := float64(r.RW) + 0.5
			eh := float64(r.RH) + 0.5
			for x := r.X - r.RW; x <= r.X+r.RW; x++ {
				for y := r.Y - r.RH; y <= r.Y+r.RH; y++ {
					dx := math.Pow(float64(x-r.X), 2) / (ew * ew)
					dy := math.Pow(float64(y-r.Y), 2) / (eh * eh)
					if dx+dy <= 1.0 {
						r.coords = append(r.coords, Point{x, y})
					}
				}
			}
		}
		return r.coords
	}
	coords := make([]Point, 0, r.TotalSpace())
	for x := r.X - r.RW; x <= r.X+r.RW; x++ {
		for y := r.Y - r.RH; y <= r.Y+r.RH; y++ {
			coords = append(coords, Point{x, y})
		}
	}
	return coords
}

// TotalSpace is the number of floor tiles.
func (r *Room) TotalSpace() int {
	if r.Kind == RoomRect {
		return (1 + r.RW*2) * (1 + r.RH*2)
	}
	return len(r.TileCoords())
}

// HasLadder reports whether either ladder is in the room.
func (r *Room) HasLadder() bool {
	return r.HasUpLadder || r.HasDownLadder
}

// IsTrivial rooms are skipped by ladders, features and naming.
func (r *Room) IsTrivial() bool {
	return r.Kind == RoomMazeJunction
}

// FullyEnclosedByDoors reports whether the room wants doors on its
// corridors.
func (r *Room) FullyEnclosedByDoors() bool {
	return r.Kind == RoomRect
}

// Style is the tile style of the room's floor.
func (r *Room) Style() string {
	if r.Kind == RoomCavernous {
		return StyleCavern
	}
	return StyleDungeon
}

// Features never share a room with treasure, enemies or traps.
func (r *Room) AllowsTreasure() bool  { return !r.HasLadder() && len(r.Features) == 0 }
func (r *Room) AllowsEnemies() bool   { return !r.HasLadder() && len(r.Features) == 0 }
func (r *Room) AllowsTraps() bool     { return !r.HasLadder() && len(r.Features) == 0 }
func (r *Room) AllowsBookshelf() bool { return r.AllowsTreasure() && r.Kind != RoomCavernous }

// Name is the room's label on maps and notes.
func (r *Room) Name() string {
	return fmt.Sprintf("Room %d", r.Index)
}

// overlaps applies the one-tile wall separation rule.
func (r *Room) overlaps(o *Room) bool {
	return abs(r.X-o.X) <= r.RW+o.RW+1 && abs(r.Y-o.Y) <= r.RH+o.RH+1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

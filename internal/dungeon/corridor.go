package dungeon

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// nontrivialLength is the usable, width-normalised length above which a
// corridor gets a name.
const nontrivialLength = 2.5

// CorridorKind distinguishes dug corridors from cave passages.
type CorridorKind int

const (
	CorridorDungeon CorridorKind = iota
	// CorridorCavernous joins two cavernous rooms and never has doors
	CorridorCavernous
)

func (k CorridorKind) String() string {
	switch k {
	case CorridorDungeon:
		return "dungeon"
	case CorridorCavernous:
		return "cavernous"
	default:
		return "unknown"
	}
}

// Corridor is an L-shaped passage between two room centres, one to three
// tracks wide.
type Corridor struct {
	Index           int
	Kind            CorridorKind
	Room1, Room2    int
	X1, Y1          int
	X2, Y2          int
	Width           int
	HorizontalFirst bool
	Light           string
	Doors           mapset.Set[int]
	Traps           mapset.Set[int]
	// Name is set on nontrivial corridors, C1, C2...
	Name string
}

func newCorridor(kind CorridorKind, r1, r2 *Room, horizontalFirst bool, width int) *Corridor {
	return &Corridor{
		Index:           -1,
		Kind:            kind,
		Room1:           r1.Index,
		Room2:           r2.Index,
		X1:              r1.X,
		Y1:              r1.Y,
		X2:              r2.X,
		Y2:              r2.Y,
		Width:           width,
		HorizontalFirst: horizontalFirst,
		Doors:           mapset.New[int](),
		Traps:           mapset.New[int](),
	}
}

// Walk returns the coordinates visited by the first tracks tracks, track
// after track; 0 walks every track. Track 0 runs centre to centre; tracks
// 1 and 2 are offset perpendicular to the first leg, with the end of that
// leg pulled in or pushed out so the tracks stay parallel. Start points are
// not included.
func (c *Corridor) Walk(tracks int) []Point {
	if tracks <= 0 || tracks > c.Width {
		tracks = c.Width
	}
	var out []Point
	for track := 0; track < tracks; track++ {
		out = append(out, c.walkTrack(track)...)
	}
	return out
}

// walkTrack returns the coordinates of a single track.
func (c *Corridor) walkTrack(track int) []Point {
	dx, dy := direction(c.X2-c.X1), direction(c.Y2-c.Y1)
	x, y, x2, y2 := c.X1, c.Y1, c.X2, c.Y2
	horizontal := c.HorizontalFirst
	switch track {
	case 1:
		if horizontal {
			y += dy
			x2 -= dx
		} else {
			x += dx
			y2 -= dy
		}
	case 2:
		if horizontal {
			y -= dy
			x2 += dx
		} else {
			x -= dx
			y2 += dy
		}
	}

	var out []Point
	for x != x2 || y != y2 {
		if x == x2 && horizontal {
			horizontal = false
		}
		if y == y2 && !horizontal {
			horizontal = true
		}
		if horizontal {
			x += direction(x2 - x)
		} else {
			y += direction(y2 - y)
		}
		out = append(out, Point{x, y})
	}
	return out
}

// direction is the unit step towards a difference; zero counts as positive.
func direction(d int) int {
	if d < 0 {
		return -1
	}
	return 1
}

// FullyEnclosedByDoors reports whether the corridor can be shut at both
// ends.
func (c *Corridor) FullyEnclosedByDoors() bool {
	return c.Kind != CorridorCavernous && c.Doors.Size() >= 2
}

// Style is the tile style of the corridor's floor.
func (c *Corridor) Style() string {
	if c.Kind == CorridorCavernous {
		return StyleCavern
	}
	return StyleDungeon
}

// TileCoords lists the carved tiles the corridor walks over, optionally
// including door tiles.
func (c *Corridor) TileCoords(f *Floor, includeDoors bool) []Point {
	var out []Point
	for _, p := range c.Walk(0) {
		t := f.Tile(p.X, p.Y)
		if t.Kind == TileDoor && !includeDoors {
			continue
		}
		if t.IsCorridorFloor() {
			out = append(out, p)
		}
	}
	return out
}

// IsNontrivial reports whether the corridor has enough usable floor to be
// worth naming.
func (c *Corridor) IsNontrivial(f *Floor) bool {
	usable := 0.0
	for _, p := range c.Walk(0) {
		if f.Tile(p.X, p.Y).Kind == TileCorridorFloor {
			usable += 1.0 / float64(c.Width)
		}
	}
	return usable > nontrivialLength
}

// MiddleCoords is roughly the midpoint of the corridor's first carved run.
func (c *Corridor) MiddleCoords(f *Floor) (Point, bool) {
	var run []Point
	for _, p := range c.Walk(0) {
		if f.Tile(p.X, p.Y).IsCorridorFloor() {
			run = append(run, p)
		} else if len(run) > 0 {
			break
		}
	}
	if len(run) == 0 {
		return Point{}, false
	}
	mid := int(math.RoundToEven(float64(len(run)) / 2))
	return run[min(mid, len(run)-1)], true
}

// DoorCoords lists one coordinate per door record, searching every track
// up to the point where it leaves the corridor.
func (c *Corridor) DoorCoords(f *Floor) []Point {
	var out []Point
	seen := make(map[int]bool)
	for track := 0; track < c.Width; track++ {
		inCorridor := false
		for _, p := range c.walkTrack(track) {
			if !f.InBounds(p.X, p.Y) {
				break
			}
			t := f.Tile(p.X, p.Y)
			if t.Kind == TileDoor && !seen[t.DoorIndex] {
				seen[t.DoorIndex] = true
				out = append(out, p)
			}
			if t.IsCorridorFloor() {
				inCorridor = true
			} else if inCorridor {
				break
			}
		}
	}
	return out
}

package dungeon

import (
	"math/rand"
	"strings"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/encounter"
	"github.com/lawnchairsociety/cavernforge/internal/fog"
	"github.com/lawnchairsociety/cavernforge/internal/trap"
	"github.com/zyedidia/generic/mapset"
)

// Floor is one generated dungeon level. Rooms, corridors, doors and the
// rest are arenas; everything refers to them by index.
type Floor struct {
	Width, Height int
	Level         int
	Players       int
	Biome         string

	// tiles is column-major: tiles[x][y]
	tiles [][]*Tile

	Rooms     []*Room
	Corridors []*Corridor
	Doors     []*Door
	Features  []*Feature
	Monsters  []*encounter.Monster
	Traps     []*trap.Trap
	Lights    []*LightSource
	NPCs      []*catalog.NPC
	Rivers    []*River

	// RoomNeighbors is the room adjacency graph built by corridors.
	RoomNeighbors Graph
	// LaddersStrict is false when ladders had to ignore the distance rule
	LaddersStrict bool

	monsterAt map[Point]*encounter.Monster
	// reserved holds feature spots such as altars and anvils
	reserved mapset.Set[Point]
	fogSeed  int64
}

// NewFloor returns a floor of solid wall.
func NewFloor(width, height int) *Floor {
	f := &Floor{
		Width:         width,
		Height:        height,
		tiles:         make([][]*Tile, width),
		RoomNeighbors: make(Graph),
		LaddersStrict: true,
		monsterAt:     make(map[Point]*encounter.Monster),
		reserved:      mapset.New[Point](),
	}
	for x := range f.tiles {
		f.tiles[x] = make([]*Tile, height)
		for y := range f.tiles[x] {
			f.tiles[x][y] = newTile(TileWall, x, y)
		}
	}
	return f
}

// InBounds reports whether x, y is on the grid.
func (f *Floor) InBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Tile returns the tile at x, y, or nil off the grid.
func (f *Floor) Tile(x, y int) *Tile {
	if !f.InBounds(x, y) {
		return nil
	}
	return f.tiles[x][y]
}

// setTile replaces the tile at x, y. A tile without owners inherits the
// previous tile's room and corridor.
func (f *Floor) setTile(x, y int, kind TileKind, room, corridor int) *Tile {
	t := newTile(kind, x, y)
	t.RoomIndex, t.CorridorIndex = room, corridor
	if room < 0 && corridor < 0 {
		prev := f.tiles[x][y]
		t.RoomIndex, t.CorridorIndex = prev.RoomIndex, prev.CorridorIndex
	}
	f.tiles[x][y] = t
	return t
}

var (
	cardinalOffsets = []Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalOffsets = []Point{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Neighbors returns the on-grid neighbours of x, y; diagonal adds the four
// corners.
func (f *Floor) Neighbors(x, y int, diagonal bool) []*Tile {
	out := make([]*Tile, 0, 8)
	for _, d := range neighborOffsets(diagonal) {
		if t := f.Tile(x+d.X, y+d.Y); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// neighborsOrWall is Neighbors with off-grid cells reported as wall.
func (f *Floor) neighborsOrWall(x, y int, diagonal bool) []*Tile {
	out := make([]*Tile, 0, 8)
	for _, d := range neighborOffsets(diagonal) {
		t := f.Tile(x+d.X, y+d.Y)
		if t == nil {
			t = newTile(TileWall, x+d.X, y+d.Y)
		}
		out = append(out, t)
	}
	return out
}

func neighborOffsets(diagonal bool) []Point {
	if !diagonal {
		return cardinalOffsets
	}
	return append(append([]Point(nil), cardinalOffsets...), diagonalOffsets...)
}

// TileIter visits every tile top row first, left to right.
func (f *Floor) TileIter(fn func(t *Tile)) {
	for y := f.Height - 1; y >= 0; y-- {
		for x := 0; x < f.Width; x++ {
			fn(f.tiles[x][y])
		}
	}
}

func (f *Floor) addRoom(r *Room) {
	r.Index = len(f.Rooms)
	f.Rooms = append(f.Rooms, r)
	for _, p := range r.TileCoords() {
		t := f.setTile(p.X, p.Y, TileRoomFloor, r.Index, -1)
		t.Style = r.Style()
	}
}

func (f *Floor) addCorridor(c *Corridor) {
	c.Index = len(f.Corridors)
	f.Corridors = append(f.Corridors, c)
	linkGraph(f.RoomNeighbors, c.Room1, c.Room2)
	f.Rooms[c.Room1].Corridors.Put(c.Index)
	f.Rooms[c.Room2].Corridors.Put(c.Index)
	for _, p := range c.Walk(0) {
		if f.tiles[p.X][p.Y].IsWall() {
			f.setTile(p.X, p.Y, TileCorridorFloor, -1, c.Index)
		}
	}
}

func (f *Floor) addDoor(d *Door) {
	d.Index = len(f.Doors)
	f.Doors = append(f.Doors, d)
}

// addMonster records m and the tiles its footprint covers.
func (f *Floor) addMonster(m *encounter.Monster) {
	f.Monsters = append(f.Monsters, m)
	for _, p := range footprint(Point{m.X, m.Y}, m.Info.Diameter) {
		f.monsterAt[p] = m
	}
}

func (f *Floor) addTrap(t *trap.Trap) int {
	f.Traps = append(f.Traps, t)
	return len(f.Traps) - 1
}

// MonsterAt returns the monster covering x, y, if any.
func (f *Floor) MonsterAt(x, y int) *encounter.Monster {
	return f.monsterAt[Point{x, y}]
}

// footprint lists the tiles covered by a creature of the given diameter
// anchored at p: 2x2 grows right and up, 3x3 is centred.
func footprint(p Point, diameter int) []Point {
	switch diameter {
	case 2:
		return []Point{p, {p.X + 1, p.Y}, {p.X, p.Y + 1}, {p.X + 1, p.Y + 1}}
	case 3:
		out := make([]Point, 0, 9)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				out = append(out, Point{p.X + dx, p.Y + dy})
			}
		}
		return out
	}
	return []Point{p}
}

// Chests lists every chest, bookshelf and mimic tile.
func (f *Floor) Chests() []*Tile {
	var out []*Tile
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			if t := f.tiles[x][y]; t.IsChest() {
				out = append(out, t)
			}
		}
	}
	return out
}

// Ladders returns the up and down ladder tiles.
func (f *Floor) Ladders() (up, down []*Tile) {
	f.TileIter(func(t *Tile) {
		switch t.Kind {
		case TileLadderUp:
			up = append(up, t)
		case TileLadderDown:
			down = append(down, t)
		}
	})
	return up, down
}

// ASCII renders the floor with monsters and feature spots drawn over the
// tiles, top row first.
func (f *Floor) ASCII() string {
	chars := make([][]byte, f.Width)
	for x := range chars {
		chars[x] = make([]byte, f.Height)
		for y := range chars[x] {
			chars[x][y] = f.tiles[x][y].Kind.Char()
		}
	}
	for _, m := range f.Monsters {
		if c := m.Char(); c != "" {
			chars[m.X][m.Y] = c[0]
		}
	}
	for _, ft := range f.Features {
		for i, p := range ft.Spots {
			c := byte('&')
			if ft.Kind == FeatureBlacksmith && i == 1 {
				c = ']'
			}
			chars[p.X][p.Y] = c
		}
	}
	var sb strings.Builder
	for y := f.Height - 1; y >= 0; y-- {
		for x := 0; x < f.Width; x++ {
			sb.WriteByte(chars[x][y])
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FogRegions computes the fog rectangles for the floor. The result is the
// same on every call.
func (f *Floor) FogRegions() []fog.Region {
	return fog.Merge(rand.New(rand.NewSource(f.fogSeed)), f.collectFogBits().Bits())
}

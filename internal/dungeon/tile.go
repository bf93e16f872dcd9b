package dungeon

import (
	"github.com/lawnchairsociety/cavernforge/internal/encounter"
	"github.com/zyedidia/generic/mapset"
)

// TileKind is the type of a grid cell
type TileKind int

const (
	TileWall TileKind = iota
	TileRoomFloor
	TileCorridorFloor
	TileDoor
	TileLadderUp
	TileLadderDown
	TileChest
	TileBookshelf
	TileMimic
	TileWater
)

// Tile styles
const (
	StyleDungeon = "dungeon"
	StyleCavern  = "cavern"
)

// capabilities describes how a tile kind behaves during placement
type capabilities struct {
	name          string
	char          byte
	moveBlocking  bool
	feature       bool
	ladder        bool
	chest         bool
	roomFloor     bool
	corridorFloor bool
}

var tileCapabilities = [...]capabilities{
	TileWall:          {name: "wall", char: '#', moveBlocking: true},
	TileRoomFloor:     {name: "room_floor", char: '.', roomFloor: true},
	TileCorridorFloor: {name: "corridor_floor", char: ',', corridorFloor: true},
	TileDoor:          {name: "door", char: '+', moveBlocking: true, corridorFloor: true},
	TileLadderUp:      {name: "ladder_up", char: '<', moveBlocking: true, ladder: true, roomFloor: true},
	TileLadderDown:    {name: "ladder_down", char: '>', moveBlocking: true, ladder: true, roomFloor: true},
	TileChest:         {name: "chest", char: '$', moveBlocking: true, feature: true, chest: true, roomFloor: true},
	TileBookshelf:     {name: "bookshelf", char: 'B', feature: true, chest: true, roomFloor: true},
	TileMimic:         {name: "mimic", char: 'm', moveBlocking: true, feature: true, chest: true, roomFloor: true},
	TileWater:         {name: "water", char: '~', moveBlocking: true},
}

func (k TileKind) caps() capabilities {
	if k < 0 || int(k) >= len(tileCapabilities) {
		return capabilities{name: "unknown", char: '?', moveBlocking: true}
	}
	return tileCapabilities[k]
}

// String returns the string representation of a TileKind
func (k TileKind) String() string { return k.caps().name }

// Char is the ASCII map glyph.
func (k TileKind) Char() byte { return k.caps().char }

func (k TileKind) MoveBlocking() bool    { return k.caps().moveBlocking }
func (k TileKind) IsFeature() bool       { return k.caps().feature }
func (k TileKind) IsLadder() bool        { return k.caps().ladder }
func (k TileKind) IsChest() bool         { return k.caps().chest }
func (k TileKind) IsRoomFloor() bool     { return k.caps().roomFloor }
func (k TileKind) IsCorridorFloor() bool { return k.caps().corridorFloor }

// Tile is one grid cell. Owner indices are -1 when unset.
type Tile struct {
	Kind          TileKind
	X, Y          int
	RoomIndex     int
	CorridorIndex int
	DoorIndex     int
	Light         string
	Style         string
	// Interior tiles had their style inferred from neighbours
	Interior bool
	Traps    mapset.Set[int]
	Rivers   mapset.Set[int]
	// Contents of chests and bookshelves, one entry per line
	Contents []string
	// Mimic is the monster hiding as a chest
	Mimic *encounter.Monster
}

func newTile(kind TileKind, x, y int) *Tile {
	return &Tile{
		Kind:          kind,
		X:             x,
		Y:             y,
		RoomIndex:     -1,
		CorridorIndex: -1,
		DoorIndex:     -1,
		Traps:         mapset.New[int](),
		Rivers:        mapset.New[int](),
	}
}

func (t *Tile) MoveBlocking() bool    { return t.Kind.MoveBlocking() }
func (t *Tile) IsFeature() bool       { return t.Kind.IsFeature() }
func (t *Tile) IsLadder() bool        { return t.Kind.IsLadder() }
func (t *Tile) IsChest() bool         { return t.Kind.IsChest() }
func (t *Tile) IsRoomFloor() bool     { return t.Kind.IsRoomFloor() }
func (t *Tile) IsCorridorFloor() bool { return t.Kind.IsCorridorFloor() }
func (t *Tile) IsWall() bool          { return t.Kind == TileWall }

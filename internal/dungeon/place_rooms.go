package dungeon

import (
	"fmt"
	"sort"

	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

const erosionChance = 0.25

// randomRoom samples a minimum-size room somewhere inside the border.
func (g *Generator) randomRoom() *Room {
	r := max(1, g.cfg.MinRoomRadius)
	kind := RoomRect
	switch {
	case g.rng.Float64()*100 < g.cfg.CavernousRoomPercent:
		kind = RoomCavernous
	case g.rng.Float64()*100 < g.cfg.MazeJunctionPercent:
		kind = RoomMazeJunction
	}
	x := 1 + r + g.rng.Intn(max(1, g.cfg.Width-2-2*r))
	y := 1 + r + g.rng.Intn(max(1, g.cfg.Height-2-2*r))
	return newRoom(kind, x, y, r, r)
}

// roomValid reports whether room fits inside the border and keeps a wall
// between itself and every room except rooms[ignore]. Pass -1 to check
// against all rooms.
func (g *Generator) roomValid(room *Room, rooms []*Room, ignore int) bool {
	w, h := g.cfg.Width, g.cfg.Height
	if room.X-room.RW < 1 || room.Y-room.RH < 1 || room.X+room.RW >= w-1 || room.Y+room.RH >= h-1 {
		return false
	}
	for i, other := range rooms {
		if i == ignore {
			continue
		}
		if room.overlaps(other) {
			return false
		}
	}
	return true
}

// placeRooms samples rooms until num_rooms fit, then grows and shifts them
// at random while they stay valid.
func (g *Generator) placeRooms(f *Floor) error {
	var rooms []*Room
	for i := 0; i < g.cfg.MaxRoomAttempts*g.cfg.NumRooms && len(rooms) < g.cfg.NumRooms; i++ {
		room := g.randomRoom()
		if g.roomValid(room, rooms, -1) {
			rooms = append(rooms, room)
			continue
		}
		if len(rooms) > 0 {
			ix := g.rng.Intn(len(rooms))
			if moved := rooms[ix].wiggled(g.rng); g.roomValid(moved, rooms, ix) {
				rooms[ix] = moved
			}
		}
	}
	if len(rooms) < g.cfg.NumRooms {
		return fmt.Errorf("%w: placed %d of %d rooms", ErrRoomPlacement, len(rooms), g.cfg.NumRooms)
	}

	const embiggen, wiggle = true, false
	ops := make([]bool, 0, (g.cfg.NumRoomEmbiggenings+g.cfg.NumRoomWiggles)*g.cfg.NumRooms)
	for i := 0; i < g.cfg.NumRoomEmbiggenings*g.cfg.NumRooms; i++ {
		ops = append(ops, embiggen)
	}
	for i := 0; i < g.cfg.NumRoomWiggles*g.cfg.NumRooms; i++ {
		ops = append(ops, wiggle)
	}
	g.rng.Shuffle(len(ops), func(i, j int) { ops[i], ops[j] = ops[j], ops[i] })
	for _, op := range ops {
		ix := g.rng.Intn(len(rooms))
		var changed *Room
		if op == embiggen {
			changed = rooms[ix].embiggened(g.rng)
		} else {
			changed = rooms[ix].wiggled(g.rng)
		}
		if g.roomValid(changed, rooms, ix) {
			rooms[ix] = changed
		}
	}

	levels := config.LightLevels()
	weights := g.cfg.RoomLightWeights()
	for _, room := range rooms {
		room.Light = levels[max(0, stats.Choice(g.rng, weights))]
		room.Biome = f.Biome
	}
	// top to bottom, then left to right, so indices read naturally on a map
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].Y != rooms[j].Y {
			return rooms[i].Y > rooms[j].Y
		}
		return rooms[i].X < rooms[j].X
	})
	for _, room := range rooms {
		f.addRoom(room)
	}
	logger.Debug("Placed rooms", "count", len(rooms))
	return nil
}

// erodeCaverns roughens the edges of cavernous rooms.
func (g *Generator) erodeCaverns(f *Floor) error {
	for _, room := range f.Rooms {
		if room.Kind != RoomCavernous {
			continue
		}
		for i := 0; i < g.cfg.NumErosionSteps; i++ {
			g.erodeOnce(f, room)
		}
	}
	return nil
}

// erodeOnce turns some of the walls touching the cavern into floor. A wall
// only erodes when its 3x3 neighbourhood is inside the border and touches no
// other room floor.
func (g *Generator) erodeOnce(f *Floor, room *Room) {
	outer := make(map[Point]bool)
	var walls []Point
	seenWall := make(map[Point]bool)
	for _, p := range room.TileCoords() {
		for _, d := range cardinalOffsets {
			q := Point{p.X + d.X, p.Y + d.Y}
			if t := f.Tile(q.X, q.Y); t != nil && t.IsWall() {
				outer[p] = true
				if !seenWall[q] {
					seenWall[q] = true
					walls = append(walls, q)
				}
			}
		}
	}

	var erodable []Point
	for _, w := range walls {
		safe := true
		for dx := -1; dx <= 1 && safe; dx++ {
			for dy := -1; dy <= 1; dy++ {
				q := Point{w.X + dx, w.Y + dy}
				if q.X <= 0 || q.X >= f.Width-1 || q.Y <= 0 || q.Y >= f.Height-1 {
					safe = false
					break
				}
				if outer[q] {
					continue
				}
				if f.tiles[q.X][q.Y].IsRoomFloor() {
					safe = false
					break
				}
			}
		}
		if safe {
			erodable = append(erodable, w)
		}
	}
	for _, p := range erodable {
		if g.rng.Float64() < erosionChance {
			room.coords = append(room.coords, p)
			t := f.setTile(p.X, p.Y, TileRoomFloor, room.Index, -1)
			t.Style = room.Style()
		}
	}
}

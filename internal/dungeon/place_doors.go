package dungeon

import (
	"github.com/lawnchairsociety/cavernforge/internal/logger"
)

// doorway is a new door tile and the direction the walk entered it from.
type doorway struct {
	x, y, dx, dy int
}

// placeDoors puts doors where corridors meet rooms that want them. Doors
// are found on the primary track and mirrored across the corridor's width,
// so each door record covers the whole opening.
func (g *Generator) placeDoors(f *Floor) error {
	traps := g.traps(f)
	for _, c := range f.Corridors {
		if c.Kind == CorridorCavernous {
			continue
		}
		room1, room2 := f.Rooms[c.Room1], f.Rooms[c.Room2]
		coords := c.Walk(1)
		var doorways []doorway
		for i := 1; i < len(coords)-1; i++ {
			p, prev, next := coords[i], coords[i-1], coords[i+1]
			t := f.tiles[p.X][p.Y]
			pt := f.tiles[prev.X][prev.Y]
			nt := f.tiles[next.X][next.Y]
			if !t.IsCorridorFloor() {
				continue
			}
			leavingRoom1 := pt.RoomIndex == room1.Index && room1.FullyEnclosedByDoors()
			enteringRoom2 := pt.Kind != TileDoor && nt.RoomIndex == room2.Index && room2.FullyEnclosedByDoors()
			if leavingRoom1 || enteringRoom2 {
				f.setTile(p.X, p.Y, TileDoor, -1, c.Index)
				doorways = append(doorways, doorway{p.X, p.Y, p.X - prev.X, p.Y - prev.Y})
			}
		}

		for _, d := range doorways {
			sides := []Point{{d.x + 1, d.y}, {d.x - 1, d.y}}
			if d.dx != 0 {
				sides = []Point{{d.x, d.y + 1}, {d.x, d.y - 1}}
			}
			for _, s := range sides {
				if t := f.Tile(s.X, s.Y); t != nil && t.Kind == TileCorridorFloor {
					f.setTile(s.X, s.Y, TileDoor, -1, c.Index)
				}
			}
		}

		for _, p := range c.Walk(1) {
			if f.tiles[p.X][p.Y].Kind != TileDoor {
				continue
			}
			door := newDoor(p.X, p.Y, c.Index, DoorStrengthForRoll(f.Level, g.dice.D20()))
			if g.rng.Float64()*100 < g.cfg.DoorLockPercent {
				door.LockDC = traps.RandomDC()
			}
			f.addDoor(door)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					t := f.Tile(p.X+dx, p.Y+dy)
					switch {
					case t == nil:
					case t.Kind == TileDoor:
						t.DoorIndex = door.Index
					case t.IsRoomFloor():
						door.Rooms.Put(t.RoomIndex)
					}
				}
			}
			c.Doors.Put(door.Index)
			door.Rooms.Each(func(ix int) {
				f.Rooms[ix].Doors.Put(door.Index)
			})
		}
	}
	logger.Debug("Placed doors", "count", len(f.Doors))
	return nil
}

package dungeon

import (
	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

// placeTraps traps a percentage of rooms, nontrivial corridors, doors and
// chests. A door is never trapped when its corridor already is.
func (g *Generator) placeTraps(f *Floor) error {
	traps := g.traps(f)

	var rooms []*Room
	for _, room := range stats.Shuffled(g.rng, f.Rooms) {
		if room.AllowsTraps() {
			rooms = append(rooms, room)
		}
	}
	numRooms := int(float64(len(f.Rooms)) * g.cfg.RoomTrapPercent / 100)
	for _, room := range rooms[:min(numRooms, len(rooms))] {
		t, err := traps.Room(room.Index, room.FullyEnclosedByDoors())
		if err != nil {
			return err
		}
		room.Traps.Put(f.addTrap(t))
	}

	var corridors []*Corridor
	for _, c := range f.Corridors {
		if c.IsNontrivial(f) {
			corridors = append(corridors, c)
		}
	}
	numCorridors := int(float64(len(corridors)) * g.cfg.CorridorTrapPercent / 100)
	corridors = stats.Shuffled(g.rng, corridors)[:numCorridors]
	trapped := make(map[int]bool, len(corridors))
	for _, c := range corridors {
		t, err := traps.Corridor(c.Index, c.FullyEnclosedByDoors(), c.Doors.Size() > 0)
		if err != nil {
			return err
		}
		c.Traps.Put(f.addTrap(t))
		trapped[c.Index] = true
	}

	numDoors := int(float64(len(f.Doors)) * g.cfg.DoorTrapPercent / 100)
	doorTraps := 0
	for _, d := range stats.Shuffled(g.rng, f.Doors) {
		if doorTraps >= numDoors {
			break
		}
		if trapped[d.Corridor] {
			continue
		}
		t, err := traps.Door(d.Index, d.X, d.Y)
		if err != nil {
			return err
		}
		d.Traps.Put(f.addTrap(t))
		doorTraps++
	}

	chests := f.Chests()
	numChests := int(float64(len(chests)) * g.cfg.ChestTrapPercent / 100)
	for _, tile := range stats.Shuffled(g.rng, chests)[:numChests] {
		t, err := traps.Chest(tile.X, tile.Y)
		if err != nil {
			return err
		}
		tile.Traps.Put(f.addTrap(t))
	}

	logger.Debug("Placed traps", "count", len(f.Traps))
	return nil
}

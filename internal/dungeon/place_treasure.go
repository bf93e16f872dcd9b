package dungeon

import (
	"math"

	"github.com/lawnchairsociety/cavernforge/internal/encounter"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
)

const (
	mimicName = "Mimic"
	// emptyChest is written into chests whose hoard rolled nothing
	emptyChest = "Nothing!"
)

var treasurePick = PickOptions{Unoccupied: true, AvoidCorridor: true, PreferWall: true}

// placeTreasure drops chests, mimics and bookshelves against the walls of
// rooms that allow treasure. Dead-end rooms and large rooms are favoured.
func (g *Generator) placeTreasure(f *Floor) error {
	var rooms, shelfRooms []*Room
	var weights, shelfWeights []float64
	for _, room := range f.Rooms {
		if !room.AllowsTreasure() || room.Corridors.Size() == 0 {
			continue
		}
		w := math.Sqrt(float64(room.TotalSpace()))
		if room.Corridors.Size() == 1 {
			w *= 5
		}
		rooms = append(rooms, room)
		weights = append(weights, w)
		if room.AllowsBookshelf() {
			shelfRooms = append(shelfRooms, room)
			shelfWeights = append(shelfWeights, w)
		}
	}

	numChests, err := g.evalCount("num_treasures", g.cfg.NumTreasures)
	if err != nil {
		return err
	}
	numMimics, err := g.evalCount("num_mimics", g.cfg.NumMimics)
	if err != nil {
		return err
	}
	numShelves, err := g.evalCount("num_bookshelves", g.cfg.NumBookshelves)
	if err != nil {
		return err
	}

	chests, err := g.scatter(f, rooms, weights, numChests, func(room *Room, p Point) error {
		contents, err := g.cat.Treasure.GenHoard(g.rng, f.Level, f.Players)
		if err != nil {
			return err
		}
		if len(contents) == 0 {
			contents = []string{emptyChest}
		}
		f.setTile(p.X, p.Y, TileChest, room.Index, -1).Contents = contents
		return nil
	})
	if err != nil {
		return err
	}

	mimics := 0
	if numMimics > 0 {
		info, lookupErr := g.cat.Monsters.Get(mimicName)
		if lookupErr != nil {
			logger.Warning("Mimics requested but the catalog has none", "error", lookupErr)
		} else {
			mimics, err = g.scatter(f, rooms, weights, numMimics, func(room *Room, p Point) error {
				m, err := encounter.NewMonster(info, g.dice)
				if err != nil {
					return err
				}
				if m, err = m.AdjustCR(float64(f.Level)); err != nil {
					return err
				}
				m.X, m.Y, m.RoomIndex = p.X, p.Y, room.Index
				f.setTile(p.X, p.Y, TileMimic, room.Index, -1).Mimic = m
				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	shelves, err := g.scatter(f, shelfRooms, shelfWeights, numShelves, func(room *Room, p Point) error {
		contents, err := g.cat.Treasure.GenBookshelfHoard(g.rng, f.Level, f.Players)
		if err != nil {
			return err
		}
		if len(contents) == 0 {
			contents = []string{emptyChest}
		}
		f.setTile(p.X, p.Y, TileBookshelf, room.Index, -1).Contents = contents
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug("Placed treasure", "chests", chests, "mimics", mimics, "bookshelves", shelves)
	return nil
}

// scatter tries up to ten times per wanted item to find a spot in a
// weighted random room and calls place there. It returns how many were
// placed.
func (g *Generator) scatter(f *Floor, rooms []*Room, weights []float64, want int, place func(*Room, Point) error) (int, error) {
	placed := 0
	for i := 0; i < want*10 && placed < want && len(rooms) > 0; i++ {
		room, err := g.weightedRoom(rooms, weights)
		if err != nil {
			return placed, err
		}
		p, ok := f.PickTile(g.rng, room, treasurePick)
		if !ok {
			continue
		}
		if err := place(room, p); err != nil {
			return placed, err
		}
		placed++
	}
	return placed, nil
}

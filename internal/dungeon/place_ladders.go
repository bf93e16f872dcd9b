package dungeon

import (
	"sort"

	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

const ladderAttempts = 50

// placeLadders puts each ladder in its own room, favouring small rooms and
// keeping ladder rooms min_ladder_distance apart in the room graph. The
// distance rule is dropped for the second half of the attempts.
func (g *Generator) placeLadders(f *Floor) error {
	want := g.cfg.NumUpLadders + g.cfg.NumDownLadders
	if want == 0 {
		return nil
	}
	maxDepth := g.cfg.MinLadderDistance - 1

	var rooms []*Room
	for _, r := range stats.Shuffled(g.rng, f.Rooms) {
		if !r.IsTrivial() {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) == 0 {
		return nil
	}
	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].TotalSpace() < rooms[j].TotalSpace()
	})
	// pad with the smallest rooms again to bias the draw towards them
	for len(rooms) < 2*len(f.Rooms)-3 {
		n := min((2*len(f.Rooms)-len(rooms))/2+1, len(rooms))
		rooms = append(rooms, rooms[:n]...)
	}

	var chosen []int
	spots := make(map[int]Point)
	strict := true
	for attempt := 0; attempt < ladderAttempts && len(chosen) < want; attempt++ {
		chosen = chosen[:0]
		clear(spots)
		strict = attempt*2 < ladderAttempts
		for draw := 0; draw < 10*want && len(chosen) < want; draw++ {
			room := rooms[g.rng.Intn(len(rooms))]
			if _, taken := spots[room.Index]; taken {
				continue
			}
			if strict && g.nearLadder(f, room.Index, maxDepth, spots) {
				continue
			}
			p, ok := f.PickTile(g.rng, room, PickOptions{Unoccupied: true, AvoidCorridor: true, AvoidWall: true})
			if !ok {
				continue
			}
			chosen = append(chosen, room.Index)
			spots[room.Index] = p
		}
	}

	up := 0
	for _, ix := range stats.Shuffled(g.rng, chosen) {
		p := spots[ix]
		if up < g.cfg.NumUpLadders {
			f.setTile(p.X, p.Y, TileLadderUp, ix, -1)
			f.Rooms[ix].HasUpLadder = true
			up++
		} else {
			f.setTile(p.X, p.Y, TileLadderDown, ix, -1)
			f.Rooms[ix].HasDownLadder = true
		}
	}
	f.LaddersStrict = strict
	if len(chosen) < want {
		logger.Debug("Placed fewer ladders than requested", "placed", len(chosen), "want", want)
	}
	return nil
}

// nearLadder reports whether another room holding a ladder lies within
// maxDepth hops of room.
func (g *Generator) nearLadder(f *Floor, room, maxDepth int, ladders map[int]Point) bool {
	if maxDepth <= 0 {
		return false
	}
	for _, layer := range BFSLayers(f.RoomNeighbors, room, maxDepth) {
		for _, ix := range layer {
			if _, ok := ladders[ix]; ok {
				return true
			}
		}
	}
	return false
}

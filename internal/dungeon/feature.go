package dungeon

import (
	"fmt"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/config"
)

// blacksmithName is the catalog NPC who runs the forge.
const blacksmithName = "Andrus of Eastora"

// FeatureKind is the type of a special feature
type FeatureKind int

const (
	FeatureBlacksmith FeatureKind = iota
	FeatureAltar
)

func (k FeatureKind) String() string {
	switch k {
	case FeatureBlacksmith:
		return "blacksmith"
	case FeatureAltar:
		return "altar"
	default:
		return "unknown"
	}
}

// Feature is a special feature that takes over a whole room.
type Feature struct {
	Kind FeatureKind
	Room int
	// Spots are the smith and anvil for a blacksmith, the altar for an altar
	Spots []Point
	// Deity and Rite are set on altars
	Deity *catalog.Deity
	Rite  catalog.AltarRite
	// Smith is the blacksmith NPC, when the catalog has one
	Smith *catalog.NPC

	// offset rotates the room scan so features do not always hug the
	// same corner
	offset float64
}

// Name is a short label for the feature.
func (ft *Feature) Name() string {
	if ft.Kind == FeatureAltar && ft.Deity != nil {
		return "Altar to " + ft.Deity.Name
	}
	return "Blacksmith"
}

// Description is the room note for the feature.
func (ft *Feature) Description() string {
	switch ft.Kind {
	case FeatureBlacksmith:
		name := blacksmithName
		if ft.Smith != nil {
			name = ft.Smith.Name
		}
		return fmt.Sprintf("The blacksmith %s has set up shop here.", name)
	case FeatureAltar:
		return "An altar to " + ft.Deity.Name
	}
	return ""
}

// Details is the verbose note: the altar's rite, or the smith's stat block.
func (ft *Feature) Details() string {
	switch ft.Kind {
	case FeatureBlacksmith:
		if ft.Smith != nil {
			return ft.Smith.Description()
		}
	case FeatureAltar:
		s := fmt.Sprintf("An altar to %s\n%s\nRequest: %s", ft.Deity.Title(), ft.Rite.Description, ft.Rite.Request)
		if ft.Rite.Boon.Header != "" {
			s += fmt.Sprintf("\nBoon: %s\n%s\n%s", ft.Rite.Boon.SuccessDescription, ft.Rite.Boon.Header, ft.Rite.Boon.Body)
		}
		return s
	}
	return ""
}

// rotated returns the room's tiles starting at a feature-specific offset.
func (ft *Feature) rotated(room *Room) []Point {
	coords := room.TileCoords()
	n := int(ft.offset * float64(len(coords)))
	out := make([]Point, 0, len(coords))
	out = append(out, coords[n:]...)
	return append(out, coords[:n]...)
}

// spots finds where the feature's things go in room, or nil.
func (ft *Feature) spots(f *Floor, room *Room) []Point {
	if ft.Kind == FeatureAltar {
		return ft.altarSpot(f, room)
	}
	return ft.smithSpots(f, room)
}

// smithSpots wants the smith against a wall and away from corridors, with
// the anvil on a cardinal neighbour that has clear space around it.
func (ft *Feature) smithSpots(f *Floor, room *Room) []Point {
	for _, s := range ft.rotated(room) {
		if f.Tile(s.X, s.Y).MoveBlocking() {
			continue
		}
		nearWall, nearCorridor := false, false
		for _, n := range f.Neighbors(s.X, s.Y, false) {
			nearWall = nearWall || n.IsWall()
		}
		for _, n := range f.Neighbors(s.X, s.Y, true) {
			nearCorridor = nearCorridor || n.IsCorridorFloor()
		}
		if nearCorridor || !nearWall {
			continue
		}
		for _, a := range f.Neighbors(s.X, s.Y, false) {
			obstructed := a.MoveBlocking()
			for _, n := range f.Neighbors(a.X, a.Y, true) {
				obstructed = obstructed || n.MoveBlocking()
			}
			if !obstructed {
				return []Point{s, {a.X, a.Y}}
			}
		}
	}
	return nil
}

// altarSpot prefers open floor over wall-adjacent floor and never sits
// next to a corridor.
func (ft *Feature) altarSpot(f *Floor, room *Room) []Point {
	var best Point
	bestScore := 0.0
	for _, p := range ft.rotated(room) {
		if f.Tile(p.X, p.Y).MoveBlocking() {
			continue
		}
		nearWall, nearCorridor := false, false
		for _, n := range f.Neighbors(p.X, p.Y, true) {
			nearWall = nearWall || n.IsWall()
			nearCorridor = nearCorridor || n.IsCorridorFloor()
		}
		score := 1.0
		if nearCorridor {
			score = 0
		}
		if nearWall {
			score *= 0.5
		}
		if score > bestScore {
			best, bestScore = p, score
		}
		if score >= 1.0 {
			break
		}
	}
	if bestScore > 0 {
		return []Point{best}
	}
	return nil
}

// scoreRoom rates room for the feature; rooms scoring <= 0 are unusable.
// Enclosed, bright and small rooms are preferred.
func (ft *Feature) scoreRoom(f *Floor, room *Room) float64 {
	if ft.Kind == FeatureAltar && room.HasLadder() {
		return -1
	}
	if ft.spots(f, room) == nil {
		return -1
	}
	score := 1.0
	if room.Style() != StyleDungeon {
		score *= 0.5
	}
	if !room.FullyEnclosedByDoors() {
		score *= 0.4
	}
	switch {
	case ft.Kind == FeatureAltar && ft.Deity.PreferDark:
		switch room.Light {
		case config.LightBright:
			score *= 0
		case config.LightDim:
			score *= 0.3
		}
	case ft.Kind == FeatureBlacksmith:
		switch room.Light {
		case config.LightDark:
			score *= 0.1
		case config.LightDim:
			score *= 0.3
		}
	}
	return score * 9.0 / float64(room.TotalSpace())
}

// postProcess applies the feature's effect on the rest of the floor.
func (ft *Feature) postProcess(f *Floor) {
	if ft.Kind != FeatureAltar || ft.Deity.MinimumDoorStrength == nil {
		return
	}
	strength := *ft.Deity.MinimumDoorStrength
	f.Rooms[ft.Room].Doors.Each(func(ix int) {
		f.Doors[ix].ApplyMinimumStrength(strength)
	})
}

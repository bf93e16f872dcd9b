package dungeon

import (
	"math"
	"sort"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/encounter"
	"github.com/lawnchairsociety/cavernforge/internal/leveling"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

// placeMonsters builds an encounter for a share of the rooms that allow
// enemies and places its monsters, largest XP first.
func (g *Generator) placeMonsters(f *Floor) error {
	infos, err := g.cat.Monsters.GetMonsterInfos(g.cfg.MonsterFilter, &catalog.CRRange{Min: 0, Max: leveling.MaxEncounterCR(f.Level)})
	if err != nil {
		return err
	}
	lowestXP := 0
	for _, mi := range infos {
		if mi.XP > 0 && (lowestXP == 0 || mi.XP < lowestXP) {
			lowestXP = mi.XP
		}
	}
	if lowestXP == 0 {
		logger.Debug("No monsters match the filter", "filter", g.cfg.MonsterFilter)
		return nil
	}

	target := int(math.Round(float64(len(f.Rooms)) * g.cfg.RoomEncounterPercent / 100))
	var rooms []*Room
	for _, room := range stats.Shuffled(g.rng, f.Rooms) {
		if room.AllowsEnemies() {
			rooms = append(rooms, room)
		}
	}
	rooms = rooms[:min(target, len(rooms))]
	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].TotalSpace() < rooms[j].TotalSpace()
	})

	type roomEncounter struct {
		room *Room
		enc  *encounter.Encounter
	}
	builder := encounter.NewBuilder(g.rng)
	med := float64(leveling.MedTargetXP(f.Level, f.Players))
	lo, hi := g.cfg.EncounterXPLowPercent, g.cfg.EncounterXPHighPercent
	counts := make(map[string]int)
	var built []roomEncounter
	for _, room := range rooms {
		percent := lo + g.rng.Float64()*math.Abs(hi-lo)
		targetXP := max(int(math.Round(med*percent*0.01)), lowestXP)
		enc, err := builder.Build(infos, targetXP, encounter.Options{
			PrevCounts: counts,
			MaxSpace:   room.TotalSpace(),
		})
		if err != nil {
			return err
		}
		if enc.Len() == 0 {
			continue
		}
		for name, n := range enc.Counts() {
			counts[name] += n
		}
		built = append(built, roomEncounter{room, enc})
	}

	// biggest groups go to the biggest rooms that got one
	encs := make([]*encounter.Encounter, len(built))
	for i, b := range built {
		encs[i] = b.enc
	}
	sort.SliceStable(encs, func(i, j int) bool {
		return encs[i].TotalSpace() < encs[j].TotalSpace()
	})

	for i, b := range built {
		room, enc := b.room, encs[i]
		room.Encounter = enc
		monsters := stats.Shuffled(g.rng, enc.Monsters)
		sort.SliceStable(monsters, func(i, j int) bool {
			return monsters[i].Info.XP > monsters[j].Info.XP
		})
		for _, m := range monsters {
			p, ok := f.PickTile(g.rng, room, PickOptions{Unoccupied: true, Diameter: m.Info.Diameter})
			if !ok {
				continue
			}
			m.X, m.Y, m.RoomIndex = p.X, p.Y, room.Index
			f.addMonster(m)
		}
	}
	logger.Debug("Placed monsters", "encounters", len(built), "monsters", len(f.Monsters))
	return nil
}

package dungeon

import (
	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

// addNPCs picks num_misc_npcs distinct wandering NPCs from the catalog.
func (g *Generator) addNPCs(f *Floor) error {
	n, err := g.evalCount("num_misc_npcs", g.cfg.NumMiscNPCs)
	if err != nil {
		return err
	}
	n = min(n, len(g.cat.NPCs))
	picks, err := stats.Samples(g.rng, stats.Uniform(len(g.cat.NPCs)), n)
	if err != nil {
		return err
	}
	for _, ix := range picks {
		f.NPCs = append(f.NPCs, g.cat.NPCs[ix])
	}
	if len(f.NPCs) > 0 {
		logger.Debug("Added NPCs", "count", len(f.NPCs))
	}
	return nil
}

// Package dungeon generates dungeon floors: rooms joined by corridors, with
// doors, ladders, special features, treasure, monsters, traps, lights and
// fog regions.
package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"github.com/lawnchairsociety/cavernforge/internal/trap"
)

// Generator builds floors from a config and catalog. It is not safe for
// concurrent use; callers seed rng for reproducible floors.
type Generator struct {
	cfg  *config.DungeonConfig
	cat  *catalog.Catalog
	rng  *rand.Rand
	dice *stats.Dice

	// Biome tags rooms of generated floors
	Biome string
}

// NewGenerator creates a new floor generator
func NewGenerator(cfg *config.DungeonConfig, cat *catalog.Catalog, rng *rand.Rand) *Generator {
	return &Generator{
		cfg:  cfg,
		cat:  cat,
		rng:  rng,
		dice: stats.NewSeededDice(rng),
	}
}

// stage is one step of the pipeline.
type stage struct {
	name string
	run  func(f *Floor) error
}

func (g *Generator) stages() []stage {
	return []stage{
		{"rooms", g.placeRooms},
		{"erosion", g.erodeCaverns},
		{"corridors", g.placeCorridors},
		{"doors", g.placeDoors},
		{"ladders", g.placeLadders},
		{"features", g.placeFeatures},
		{"treasure", g.placeTreasure},
		{"monsters", g.placeMonsters},
		{"traps", g.placeTraps},
		{"rivers", g.placeRivers},
		{"lights", g.placeLights},
		{"style", g.stylizeTiles},
		{"npcs", g.addNPCs},
	}
}

// Generate runs the whole pipeline, restarting from an empty grid whenever a
// stage fails with a retriable error. Any other error is returned at once.
func (g *Generator) Generate() (*Floor, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	attempts := g.cfg.MaxGenerationAttempts
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		f, err := g.attempt()
		if err == nil {
			logger.Info("Generated dungeon floor",
				"attempts", attempt,
				"rooms", len(f.Rooms),
				"corridors", len(f.Corridors),
				"monsters", len(f.Monsters),
				"traps", len(f.Traps))
			return f, nil
		}
		if !IsRetriable(err) {
			return nil, err
		}
		logger.Debug("Floor generation attempt failed", "attempt", attempt, "error", err)
		lastErr = err
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

func (g *Generator) attempt() (*Floor, error) {
	f := g.newFloor()
	for _, s := range g.stages() {
		if err := s.run(f); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return f, nil
}

func (g *Generator) newFloor() *Floor {
	f := NewFloor(g.cfg.Width, g.cfg.Height)
	f.Level = g.cfg.TargetCharacterLevel
	f.Players = g.cfg.NumPlayerCharacters
	f.Biome = g.Biome
	f.fogSeed = g.rng.Int63()
	return f
}

// traps returns a trap generator for the floor's level.
func (g *Generator) traps(f *Floor) *trap.Generator {
	return trap.NewGenerator(g.rng, g.cat.Traps, f.Level)
}

// evalCount rolls a count expression from the config, never below zero.
func (g *Generator) evalCount(name, expr string) (int, error) {
	n, err := g.dice.Eval(expr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return max(n, 0), nil
}

// weightedRoom picks one of rooms by weight.
func (g *Generator) weightedRoom(rooms []*Room, weights []float64) (*Room, error) {
	ix := stats.Choice(g.rng, weights)
	if ix < 0 {
		return nil, errors.New("no room has positive weight")
	}
	return rooms[ix], nil
}

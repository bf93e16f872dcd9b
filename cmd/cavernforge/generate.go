package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/cavernforge/internal/dungeon"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
)

var (
	seed      int64
	biome     string
	outFile   string
	asciiOnly bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon floor",
	Long: `Generate one dungeon floor and print its map. The floor's notes are written
as YAML to --out, or to stdout when --out is not set.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 picks one from the clock)")
	generateCmd.Flags().StringVar(&biome, "biome", "", "Biome whose overrides apply to this floor")
	generateCmd.Flags().StringVarP(&outFile, "out", "o", "", "YAML output file")
	generateCmd.Flags().BoolVar(&asciiOnly, "ascii", false, "Print only the map")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadInputs()
	if err != nil {
		return err
	}
	if biome != "" {
		if cfg, err = cfg.ForBiome(biome); err != nil {
			return err
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Generating floor", "seed", seed, "rooms", cfg.NumRooms, "biome", biome)

	g := dungeon.NewGenerator(cfg, cat, rand.New(rand.NewSource(seed)))
	g.Biome = biome
	floor, err := g.Generate()
	if err != nil {
		logger.Error("Generation failed", "seed", seed, "error", err)
		return fmt.Errorf("generation failed: %w", err)
	}
	logger.Info("Floor generated",
		"seed", seed,
		"rooms", len(floor.Rooms),
		"corridors", len(floor.Corridors),
		"monsters", len(floor.Monsters),
		"traps", len(floor.Traps))

	out := cmd.OutOrStdout()
	if asciiOnly {
		fmt.Fprintln(out, floor.ASCII())
		return nil
	}

	summary := NewFloorYAML(floor, seed)
	if outFile == "" {
		return WriteFloorYAML(summary, out)
	}
	if err := WriteFloorYAMLFile(summary, outFile); err != nil {
		return err
	}
	fmt.Fprintln(out, floor.ASCII())
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outFile)
	return nil
}

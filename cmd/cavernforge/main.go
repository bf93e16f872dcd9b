// Package main is the cavernforge command line tool
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/lawnchairsociety/cavernforge/internal/logger"
)

var (
	configFile        string
	loggingConfigFile string
	catalogDir        string
)

var rootCmd = &cobra.Command{
	Use:   "cavernforge",
	Short: "Procedural dungeon floor generator",
	Long: `cavernforge generates dungeon floors: rooms joined by corridors, with doors,
ladders, special features, treasure, monster encounters, traps and lights.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logConfig, _ := logger.LoadConfig(loggingConfigFile)
		return logger.Initialize(logConfig)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Dungeon config YAML file (defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&loggingConfigFile, "logging-config", "", "Logging config YAML file")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "Directory overriding the built-in catalog files")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(monstersCmd)
	rootCmd.AddCommand(diceCmd)
}

// loadInputs reads the dungeon config and catalog named by the global flags.
func loadInputs() (*config.DungeonConfig, *catalog.Catalog, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dungeon config: %w", err)
	}

	var cat *catalog.Catalog
	if catalogDir != "" {
		cat, err = catalog.LoadDir(catalogDir)
	} else {
		cat, err = catalog.LoadDefault()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cfg, cat, nil
}

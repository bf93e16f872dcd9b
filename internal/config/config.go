package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid dungeon configuration")

// Light levels accepted for rooms and corridors.
const (
	LightBright = "bright"
	LightDim    = "dim"
	LightDark   = "dark"
)

// DungeonConfig holds every knob of floor generation.
type DungeonConfig struct {
	// Grid
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Rooms
	NumRooms             int     `yaml:"num_rooms"`
	MinRoomRadius        int     `yaml:"min_room_radius"`
	NumRoomEmbiggenings  int     `yaml:"num_room_embiggenings"`
	NumRoomWiggles       int     `yaml:"num_room_wiggles"`
	CavernousRoomPercent float64 `yaml:"cavernous_room_percent"`
	MazeJunctionPercent  float64 `yaml:"maze_junction_percent"`
	NumErosionSteps      int     `yaml:"num_erosion_steps"`
	RoomBrightRatio      float64 `yaml:"room_bright_ratio"`
	RoomDimRatio         float64 `yaml:"room_dim_ratio"`
	RoomDarkRatio        float64 `yaml:"room_dark_ratio"`
	MaxRoomAttempts      int     `yaml:"max_room_attempts"`

	// Corridors
	PreferFullConnection      bool    `yaml:"prefer_full_connection"`
	MinCorridorsPerRoom       float64 `yaml:"min_corridors_per_room"`
	CorridorWidth1Ratio       float64 `yaml:"corridor_width_1_ratio"`
	CorridorWidth2Ratio       float64 `yaml:"corridor_width_2_ratio"`
	CorridorWidth3Ratio       float64 `yaml:"corridor_width_3_ratio"`
	AllowCorridorIntersection bool    `yaml:"allow_corridor_intersection"`
	MaxCorridorAttempts       int     `yaml:"max_corridor_attempts"`

	// Ladders
	NumUpLadders      int `yaml:"num_up_ladders"`
	NumDownLadders    int `yaml:"num_down_ladders"`
	MinLadderDistance int `yaml:"min_ladder_distance"`

	// Party
	TargetCharacterLevel int `yaml:"target_character_level"`
	NumPlayerCharacters  int `yaml:"num_player_characters"`

	// Dice expressions such as "2d4" or "1d3-1"
	NumTreasures   string `yaml:"num_treasures"`
	NumMimics      string `yaml:"num_mimics"`
	NumBookshelves string `yaml:"num_bookshelves"`
	NumMiscNPCs    string `yaml:"num_misc_npcs"`

	// Encounters
	RoomEncounterPercent   float64 `yaml:"room_encounter_percent"`
	EncounterXPLowPercent  float64 `yaml:"encounter_xp_low_percent"`
	EncounterXPHighPercent float64 `yaml:"encounter_xp_high_percent"`
	MonsterFilter          string  `yaml:"monster_filter"`

	// Traps and doors
	RoomTrapPercent     float64 `yaml:"room_trap_percent"`
	CorridorTrapPercent float64 `yaml:"corridor_trap_percent"`
	DoorTrapPercent     float64 `yaml:"door_trap_percent"`
	ChestTrapPercent    float64 `yaml:"chest_trap_percent"`
	DoorLockPercent     float64 `yaml:"door_lock_percent"`

	// Special features; AltarPercents is keyed by deity name
	BlacksmithPercent float64            `yaml:"blacksmith_percent"`
	AltarPercents     map[string]float64 `yaml:"altar_percents"`

	NumRivers int `yaml:"num_rivers"`

	// MaxGenerationAttempts bounds full-pipeline restarts.
	MaxGenerationAttempts int `yaml:"max_generation_attempts"`

	Biomes []Biome `yaml:"biomes"`
}

// Biome is a named partial override of generation parameters.
// Nil fields leave the base value untouched.
type Biome struct {
	Name                 string   `yaml:"name"`
	CavernousRoomPercent *float64 `yaml:"cavernous_room_percent"`
	MonsterFilter        *string  `yaml:"monster_filter"`
	RoomEncounterPercent *float64 `yaml:"room_encounter_percent"`
}

// DefaultConfig returns the stock generation parameters.
func DefaultConfig() *DungeonConfig {
	return &DungeonConfig{
		Width:  35,
		Height: 35,

		NumRooms:             12,
		MinRoomRadius:        1,
		NumRoomEmbiggenings:  5,
		NumRoomWiggles:       5,
		CavernousRoomPercent: 50,
		MazeJunctionPercent:  0,
		NumErosionSteps:      4,
		RoomBrightRatio:      5,
		RoomDimRatio:         2,
		RoomDarkRatio:        1,
		MaxRoomAttempts:      10,

		PreferFullConnection:      true,
		MinCorridorsPerRoom:       1.1,
		CorridorWidth1Ratio:       1,
		CorridorWidth2Ratio:       5,
		CorridorWidth3Ratio:       2,
		AllowCorridorIntersection: false,
		MaxCorridorAttempts:       30000,

		NumUpLadders:      1,
		NumDownLadders:    1,
		MinLadderDistance: 2,

		TargetCharacterLevel: 7,
		NumPlayerCharacters:  5,

		NumTreasures:   "2d4",
		NumMimics:      "1d3-1",
		NumBookshelves: "1d4",
		NumMiscNPCs:    "1d2-1",

		RoomEncounterPercent:   70,
		EncounterXPLowPercent:  50,
		EncounterXPHighPercent: 200,
		MonsterFilter:          "Undead or Flesh Golem",

		RoomTrapPercent:     30,
		CorridorTrapPercent: 30,
		DoorTrapPercent:     15,
		ChestTrapPercent:    30,
		DoorLockPercent:     20,

		BlacksmithPercent: 30,
		AltarPercents: map[string]float64{
			"Kryxix":    20,
			"Ssarthaxx": 20,
		},

		NumRivers: 0,

		MaxGenerationAttempts: 100,
	}
}

// LoadConfig loads a dungeon configuration from a YAML file on top of the defaults.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*DungeonConfig, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return config, err
			}
		} else if err := yaml.Unmarshal(data, config); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse dungeon config: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// applyEnvOverrides lets CI and the CLI tweak the common knobs without a file
func applyEnvOverrides(c *DungeonConfig) {
	intVars := []struct {
		name string
		dst  *int
	}{
		{"CAVERNFORGE_WIDTH", &c.Width},
		{"CAVERNFORGE_HEIGHT", &c.Height},
		{"CAVERNFORGE_NUM_ROOMS", &c.NumRooms},
		{"CAVERNFORGE_LEVEL", &c.TargetCharacterLevel},
	}
	for _, v := range intVars {
		if s := os.Getenv(v.name); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				*v.dst = n
			}
		}
	}
	if filter, ok := os.LookupEnv("CAVERNFORGE_MONSTER_FILTER"); ok {
		c.MonsterFilter = filter
	}
}

// Validate reports the first impossible setting.
func (c *DungeonConfig) Validate() error {
	switch {
	case c.Width < 5 || c.Height < 5:
		return fmt.Errorf("%w: grid %dx%d is smaller than 5x5", ErrInvalid, c.Width, c.Height)
	case c.NumRooms < 1:
		return fmt.Errorf("%w: num_rooms must be positive, got %d", ErrInvalid, c.NumRooms)
	case c.MaxRoomAttempts < 1:
		return fmt.Errorf("%w: max_room_attempts must be positive", ErrInvalid)
	case c.MaxCorridorAttempts < 0:
		return fmt.Errorf("%w: max_corridor_attempts must not be negative", ErrInvalid)
	case c.CorridorWidth1Ratio < 0 || c.CorridorWidth2Ratio < 0 || c.CorridorWidth3Ratio < 0:
		return fmt.Errorf("%w: corridor width ratios must not be negative", ErrInvalid)
	case c.CorridorWidth1Ratio+c.CorridorWidth2Ratio+c.CorridorWidth3Ratio <= 0:
		return fmt.Errorf("%w: at least one corridor width ratio must be positive", ErrInvalid)
	case c.RoomBrightRatio+c.RoomDimRatio+c.RoomDarkRatio <= 0:
		return fmt.Errorf("%w: at least one room light ratio must be positive", ErrInvalid)
	case c.TargetCharacterLevel < 1 || c.TargetCharacterLevel > 20:
		return fmt.Errorf("%w: target_character_level must be 1-20, got %d", ErrInvalid, c.TargetCharacterLevel)
	case c.NumPlayerCharacters < 1:
		return fmt.Errorf("%w: num_player_characters must be positive", ErrInvalid)
	case c.NumUpLadders < 0 || c.NumDownLadders < 0:
		return fmt.Errorf("%w: ladder counts must not be negative", ErrInvalid)
	case c.MaxGenerationAttempts < 1:
		return fmt.Errorf("%w: max_generation_attempts must be positive", ErrInvalid)
	}
	return nil
}

// CorridorWidthWeights returns the weights for widths 1, 2 and 3.
func (c *DungeonConfig) CorridorWidthWeights() []float64 {
	return []float64{c.CorridorWidth1Ratio, c.CorridorWidth2Ratio, c.CorridorWidth3Ratio}
}

// RoomLightWeights returns weights aligned with LightLevels().
func (c *DungeonConfig) RoomLightWeights() []float64 {
	return []float64{c.RoomBrightRatio, c.RoomDimRatio, c.RoomDarkRatio}
}

// LightLevels lists light levels from brightest to darkest.
func LightLevels() []string {
	return []string{LightBright, LightDim, LightDark}
}

// Clone returns a deep copy.
func (c *DungeonConfig) Clone() *DungeonConfig {
	out := *c
	out.AltarPercents = make(map[string]float64, len(c.AltarPercents))
	for k, v := range c.AltarPercents {
		out.AltarPercents[k] = v
	}
	out.Biomes = append([]Biome(nil), c.Biomes...)
	return &out
}

// ForBiome returns a copy of the config with the named biome's overrides applied.
func (c *DungeonConfig) ForBiome(name string) (*DungeonConfig, error) {
	for _, b := range c.Biomes {
		if b.Name != name {
			continue
		}
		out := c.Clone()
		if b.CavernousRoomPercent != nil {
			out.CavernousRoomPercent = *b.CavernousRoomPercent
		}
		if b.MonsterFilter != nil {
			out.MonsterFilter = *b.MonsterFilter
		}
		if b.RoomEncounterPercent != nil {
			out.RoomEncounterPercent = *b.RoomEncounterPercent
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unknown biome %q", ErrInvalid, name)
}

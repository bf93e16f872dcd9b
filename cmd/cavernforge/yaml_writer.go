package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/cavernforge/internal/dungeon"
)

// FloorYAML is the summary of a generated floor written by generate
type FloorYAML struct {
	Seed          int64
	Level         int
	Players       int
	Biome         string
	Width, Height int
	LaddersStrict bool
	Map           string
	Rooms         []*RoomYAML
	Corridors     []*CorridorYAML
	Traps         []string
	NPCs          []string
	Fog           []string
}

// RoomYAML is one room's notes
type RoomYAML struct {
	Name      string
	Kind      string
	Center    string
	Light     string
	Biome     string
	Ladders   []string
	Features  []string
	Encounter string
	Chests    []string
	Exits     map[string]string
}

// CorridorYAML is one nontrivial corridor's notes
type CorridorYAML struct {
	Name  string
	Kind  string
	Width int
	Light string
	Doors []string
}

// NewFloorYAML summarises f for output.
func NewFloorYAML(f *dungeon.Floor, seed int64) *FloorYAML {
	out := &FloorYAML{
		Seed:          seed,
		Level:         f.Level,
		Players:       f.Players,
		Biome:         f.Biome,
		Width:         f.Width,
		Height:        f.Height,
		LaddersStrict: f.LaddersStrict,
		Map:           f.ASCII(),
	}

	chests := make(map[int][]string)
	for _, tile := range f.Chests() {
		chests[tile.RoomIndex] = append(chests[tile.RoomIndex], chestNote(tile))
	}

	for _, r := range f.Rooms {
		room := &RoomYAML{
			Name:   r.Name(),
			Kind:   r.Kind.String(),
			Center: fmt.Sprintf("%d,%d", r.X, r.Y),
			Light:  r.Light,
			Biome:  r.Biome,
			Chests: chests[r.Index],
			Exits:  make(map[string]string),
		}
		if r.HasUpLadder {
			room.Ladders = append(room.Ladders, "up")
		}
		if r.HasDownLadder {
			room.Ladders = append(room.Ladders, "down")
		}
		for _, ix := range r.Features {
			room.Features = append(room.Features, f.Features[ix].Details())
		}
		if r.Encounter != nil {
			room.Encounter = r.Encounter.Description(f.Level, f.Players)
		}
		r.Corridors.Each(func(ix int) {
			c := f.Corridors[ix]
			other := c.Room1
			if other == r.Index {
				other = c.Room2
			}
			room.Exits[corridorLabel(c)] = f.Rooms[other].Name()
		})
		out.Rooms = append(out.Rooms, room)
	}

	for _, c := range f.Corridors {
		if c.Name == "" {
			continue
		}
		corridor := &CorridorYAML{
			Name:  c.Name,
			Kind:  c.Kind.String(),
			Width: c.Width,
			Light: c.Light,
		}
		listed := make(map[int]bool)
		for _, p := range c.DoorCoords(f) {
			ix := f.Tile(p.X, p.Y).DoorIndex
			if ix >= 0 && c.Doors.Has(ix) {
				listed[ix] = true
				corridor.Doors = append(corridor.Doors, f.Doors[ix].Description())
			}
		}
		// Doors the walk missed follow in index order.
		var rest []int
		c.Doors.Each(func(ix int) {
			if !listed[ix] {
				rest = append(rest, ix)
			}
		})
		sort.Ints(rest)
		for _, ix := range rest {
			corridor.Doors = append(corridor.Doors, f.Doors[ix].Description())
		}
		out.Corridors = append(out.Corridors, corridor)
	}

	for _, t := range f.Traps {
		out.Traps = append(out.Traps, t.Description())
	}
	for _, n := range f.NPCs {
		out.NPCs = append(out.NPCs, n.Description())
	}
	for _, reg := range f.FogRegions() {
		out.Fog = append(out.Fog, fmt.Sprintf("%d,%d-%d,%d", reg.X1, reg.Y1, reg.X2, reg.Y2))
	}
	return out
}

func corridorLabel(c *dungeon.Corridor) string {
	if c.Name != "" {
		return c.Name
	}
	return "corridor " + strconv.Itoa(c.Index)
}

func chestNote(tile *dungeon.Tile) string {
	at := fmt.Sprintf("%s at %d,%d", tile.Kind, tile.X, tile.Y)
	if tile.Mimic != nil {
		return at + ": " + tile.Mimic.Name
	}
	if len(tile.Contents) == 0 {
		return at
	}
	return at + ":\n" + strings.Join(tile.Contents, "\n")
}

// WriteFloorYAMLFile writes a floor summary to a YAML file
func WriteFloorYAMLFile(floor *FloorYAML, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	return WriteFloorYAML(floor, f)
}

// WriteFloorYAML writes a floor summary as YAML
func WriteFloorYAML(floor *FloorYAML, w io.Writer) error {
	// Write header comment
	fmt.Fprintf(w, "# Dungeon floor for %d level %d characters\n", floor.Players, floor.Level)
	fmt.Fprintf(w, "# Generated with seed: %d\n", floor.Seed)
	fmt.Fprintf(w, "# Room count: %d\n\n", len(floor.Rooms))

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(floorNode(floor)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// floorNode builds the document by hand so fields keep a readable order and
// multi-line notes come out as literal blocks
func floorNode(floor *FloorYAML) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	addStringField(node, "seed", strconv.FormatInt(floor.Seed, 10))
	addStringField(node, "level", strconv.Itoa(floor.Level))
	addStringField(node, "players", strconv.Itoa(floor.Players))
	if floor.Biome != "" {
		addStringField(node, "biome", floor.Biome)
	}
	addStringField(node, "size", fmt.Sprintf("%dx%d", floor.Width, floor.Height))
	addStringField(node, "ladders_strict", strconv.FormatBool(floor.LaddersStrict))
	addStringField(node, "map", floor.Map)

	rooms := &yaml.Node{Kind: yaml.SequenceNode}
	for _, room := range floor.Rooms {
		valueNode := &yaml.Node{Kind: yaml.MappingNode}
		addStringField(valueNode, "name", room.Name)
		addStringField(valueNode, "kind", room.Kind)
		addStringField(valueNode, "center", room.Center)
		addStringField(valueNode, "light", room.Light)
		if room.Biome != "" {
			addStringField(valueNode, "biome", room.Biome)
		}
		if len(room.Ladders) > 0 {
			addSequenceField(valueNode, "ladders", room.Ladders)
		}
		if len(room.Features) > 0 {
			addSequenceField(valueNode, "features", room.Features)
		}
		if room.Encounter != "" {
			addStringField(valueNode, "encounter", room.Encounter)
		}
		if len(room.Chests) > 0 {
			addSequenceField(valueNode, "chests", room.Chests)
		}
		if len(room.Exits) > 0 {
			addMapField(valueNode, "exits", room.Exits)
		}
		rooms.Content = append(rooms.Content, valueNode)
	}
	addNodeField(node, "rooms", rooms)

	corridors := &yaml.Node{Kind: yaml.SequenceNode}
	for _, c := range floor.Corridors {
		valueNode := &yaml.Node{Kind: yaml.MappingNode}
		addStringField(valueNode, "name", c.Name)
		addStringField(valueNode, "kind", c.Kind)
		addStringField(valueNode, "width", strconv.Itoa(c.Width))
		addStringField(valueNode, "light", c.Light)
		if len(c.Doors) > 0 {
			addSequenceField(valueNode, "doors", c.Doors)
		}
		corridors.Content = append(corridors.Content, valueNode)
	}
	addNodeField(node, "corridors", corridors)

	if len(floor.Traps) > 0 {
		addSequenceField(node, "traps", floor.Traps)
	}
	if len(floor.NPCs) > 0 {
		addSequenceField(node, "npcs", floor.NPCs)
	}
	addSequenceField(node, "fog", floor.Fog)
	return node
}

func scalar(value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if strings.Contains(value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

func addNodeField(node *yaml.Node, key string, value *yaml.Node) {
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}

func addStringField(node *yaml.Node, key, value string) {
	addNodeField(node, key, scalar(value))
}

func addSequenceField(node *yaml.Node, key string, values []string) {
	seqNode := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		seqNode.Content = append(seqNode.Content, scalar(v))
	}
	addNodeField(node, key, seqNode)
}

func addMapField(node *yaml.Node, key string, values map[string]string) {
	// Named corridors first, then by name
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, nj := len(keys[i]) > 0 && keys[i][0] == 'C', len(keys[j]) > 0 && keys[j][0] == 'C'
		if ni != nj {
			return ni
		}
		return keys[i] < keys[j]
	})

	mapNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		mapNode.Content = append(mapNode.Content, scalar(k), scalar(values[k]))
	}
	addNodeField(node, key, mapNode)
}

package main

import (
	"bytes"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/lawnchairsociety/cavernforge/internal/dungeon"
)

func testFloor(t *testing.T, seed int64) *dungeon.Floor {
	t.Helper()
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)
	floor, err := dungeon.NewGenerator(config.DefaultConfig(), cat, rand.New(rand.NewSource(seed))).Generate()
	require.NoError(t, err)
	return floor
}

func TestWriteFloorYAML(t *testing.T) {
	floor := testFloor(t, 3)
	summary := NewFloorYAML(floor, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteFloorYAML(summary, &buf))
	cfg := config.DefaultConfig()
	assert.True(t, strings.HasPrefix(buf.String(), fmt.Sprintf("# Dungeon floor for %d level %d characters\n", cfg.NumPlayerCharacters, cfg.TargetCharacterLevel)))
	assert.Contains(t, buf.String(), "# Generated with seed: 3\n")

	var doc struct {
		Seed  int64  `yaml:"seed"`
		Size  string `yaml:"size"`
		Map   string `yaml:"map"`
		Rooms []struct {
			Name  string            `yaml:"name"`
			Kind  string            `yaml:"kind"`
			Exits map[string]string `yaml:"exits"`
		} `yaml:"rooms"`
		Fog []string `yaml:"fog"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, int64(3), doc.Seed)
	assert.Equal(t, fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), doc.Size)
	assert.Equal(t, floor.ASCII(), doc.Map)
	require.Len(t, doc.Rooms, len(floor.Rooms))
	for i, r := range doc.Rooms {
		assert.Equal(t, floor.Rooms[i].Name(), r.Name)
		assert.Equal(t, floor.Rooms[i].Corridors.Size(), len(r.Exits), "room %d exits", i)
	}
	assert.Len(t, doc.Fog, len(floor.FogRegions()))
}

func TestWriteFloorYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floor.yaml")
	require.NoError(t, WriteFloorYAMLFile(NewFloorYAML(testFloor(t, 5), 5), path))
	assert.FileExists(t, path)
}

func TestAddMapFieldOrdersNamedCorridorsFirst(t *testing.T) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	addMapField(node, "exits", map[string]string{
		"corridor 4": "Room 2",
		"C2":         "Room 5",
		"C1":         "Room 3",
	})
	require.Len(t, node.Content, 2)
	exits := node.Content[1]
	var keys []string
	for i := 0; i < len(exits.Content); i += 2 {
		keys = append(keys, exits.Content[i].Value)
	}
	assert.Equal(t, []string{"C1", "C2", "corridor 4"}, keys)
}

func TestScalarUsesLiteralStyleForMultiline(t *testing.T) {
	assert.Equal(t, yaml.LiteralStyle, scalar("a\nb").Style)
	assert.Zero(t, scalar("ab").Style)
}

func TestDiceCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"dice", "2d4+1", "-n", "3"})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2d4+1: 3..9", lines[0])
}

func TestCorridorYAMLListsEveryDoor(t *testing.T) {
	floor := testFloor(t, 11)
	summary := NewFloorYAML(floor, 11)

	want := 0
	for _, c := range floor.Corridors {
		if c.Name != "" {
			want += c.Doors.Size()
		}
	}
	got := 0
	for _, c := range summary.Corridors {
		got += len(c.Doors)
	}
	assert.Equal(t, want, got)
}

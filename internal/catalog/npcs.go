package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"gopkg.in/yaml.v3"
)

// NPC is a non-hostile character that may wander onto a floor.
type NPC struct {
	Name        string              `yaml:"name"`
	Race        string              `yaml:"race"`
	Class       string              `yaml:"class"`
	Level       int                 `yaml:"level"`
	HitPoints   int                 `yaml:"hit_points"`
	ArmorClass  int                 `yaml:"armor_class"`
	Scores      stats.AbilityScores `yaml:"ability_scores"`
	Skills      []string            `yaml:"skills"`
	Abilities   []string            `yaml:"abilities"`
	Spells      []string            `yaml:"spells"`
	Attacks     []string            `yaml:"attacks"`
	Appearance  string              `yaml:"appearance"`
	Voice       string              `yaml:"voice"`
	Personality string              `yaml:"personality"`
	Quirks      []string            `yaml:"quirks"`
	Motivation  string              `yaml:"motivation"`
	Activities  []string            `yaml:"activities"`
}

// Overview is the one-line "Level 3 Dwarf Cleric" summary.
func (n *NPC) Overview() string {
	var parts []string
	if n.Level > 0 {
		parts = append(parts, fmt.Sprintf("Level %d", n.Level))
	}
	if n.Race != "" {
		parts = append(parts, n.Race)
	}
	if n.Class != "" {
		parts = append(parts, n.Class)
	}
	return strings.Join(parts, " ")
}

// Description renders the roleplaying notes and stat block.
func (n *NPC) Description() string {
	var lines []string
	if o := n.Overview(); o != "" {
		lines = append(lines, o)
	}
	if n.HitPoints > 0 {
		lines = append(lines, fmt.Sprintf("Hit Points: %d", n.HitPoints))
	}
	if n.ArmorClass > 0 {
		lines = append(lines, fmt.Sprintf("Armor Class: %d", n.ArmorClass))
	}
	if n.Appearance != "" {
		lines = append(lines, "Appearance: "+n.Appearance)
	}
	if n.Voice != "" {
		lines = append(lines, "Voice: "+n.Voice)
	}
	if n.Personality != "" {
		lines = append(lines, "Personality: "+n.Personality)
	}
	lines = appendList(lines, "Quirk", "Quirks", n.Quirks)
	if n.Motivation != "" {
		lines = append(lines, "Motivation: "+n.Motivation)
	}
	lines = appendList(lines, "Activity", "Activities", n.Activities)
	if block := n.Scores.Block(); block != "" {
		lines = append(lines, "Ability Scores", block)
	}
	return strings.Join(lines, "\n")
}

func appendList(lines []string, singular, plural string, items []string) []string {
	switch len(items) {
	case 0:
		return lines
	case 1:
		return append(lines, singular+": "+items[0])
	}
	lines = append(lines, plural+":")
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return lines
}

// NPCsConfig represents the structure of npcs.yaml
type NPCsConfig struct {
	NPCs []*NPC `yaml:"npcs"`
}

// LoadNPCsFromYAML loads NPC definitions from a YAML file
func LoadNPCsFromYAML(filename string) ([]*NPC, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read NPCs file: %w", err)
	}
	return ParseNPCs(data)
}

// ParseNPCs reads npcs.yaml content, dropping unnamed entries.
func ParseNPCs(data []byte) ([]*NPC, error) {
	var config NPCsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse NPCs YAML: %w", err)
	}
	out := config.NPCs[:0]
	for _, n := range config.NPCs {
		if n != nil && n.Name != "" {
			out = append(out, n)
		}
	}
	return out, nil
}

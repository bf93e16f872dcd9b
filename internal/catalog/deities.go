package catalog

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Boon is granted by a deity's altar when its request is fulfilled.
type Boon struct {
	SuccessDescription string `yaml:"success_description"`
	Header             string `yaml:"header"`
	Body               string `yaml:"body"`
}

// Deity can be honoured by an altar feature.
type Deity struct {
	Name      string `yaml:"name"`
	FullTitle string `yaml:"full_title"`
	// MinimumDoorStrength indexes the door material table; nil leaves doors alone
	MinimumDoorStrength *int     `yaml:"minimum_door_strength"`
	PreferDark          bool     `yaml:"prefer_dark"`
	AltarDescriptions   []string `yaml:"altar_descriptions"`
	Requests            []string `yaml:"requests"`
	Boons               []Boon   `yaml:"boons"`
}

// Title returns the full title, falling back to the name.
func (d *Deity) Title() string {
	if d.FullTitle != "" {
		return d.FullTitle
	}
	return d.Name
}

// AltarRite is one concrete altar: its description, request and boon.
type AltarRite struct {
	Description string
	Request     string
	Boon        Boon
}

// RollRite picks an altar description, request and boon.
func (d *Deity) RollRite(rng *rand.Rand) AltarRite {
	var rite AltarRite
	if n := len(d.AltarDescriptions); n > 0 {
		rite.Description = d.AltarDescriptions[rng.Intn(n)]
	}
	if n := len(d.Requests); n > 0 {
		rite.Request = d.Requests[rng.Intn(n)]
	}
	if n := len(d.Boons); n > 0 {
		rite.Boon = d.Boons[rng.Intn(n)]
	}
	return rite
}

// DeitiesConfig represents the structure of deities.yaml
type DeitiesConfig struct {
	Deities []*Deity `yaml:"deities"`
}

// LoadDeitiesFromYAML loads deities from a YAML file
func LoadDeitiesFromYAML(filename string) (map[string]*Deity, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read deities file: %w", err)
	}
	return ParseDeities(data)
}

// ParseDeities indexes deities.yaml content by name.
func ParseDeities(data []byte) (map[string]*Deity, error) {
	var config DeitiesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse deities YAML: %w", err)
	}
	out := make(map[string]*Deity, len(config.Deities))
	for _, d := range config.Deities {
		if d == nil || d.Name == "" {
			return nil, fmt.Errorf("failed to parse deities YAML: deity without a name")
		}
		out[d.Name] = d
	}
	return out, nil
}

func sortedDeityNames(deities map[string]*Deity) []string {
	names := make([]string, 0, len(deities))
	for name := range deities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

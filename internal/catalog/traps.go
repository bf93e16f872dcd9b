package catalog

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"gopkg.in/yaml.v3"
)

// Trap template pool names.
const (
	PoolAreaTriggers       = "area_triggers"
	PoolCorridorTriggers   = "corridor_triggers"
	PoolOneOffDamage       = "one_off_damage"
	PoolSlowDamage         = "slow_damage"
	PoolMisc               = "misc"
	PoolMiscRoomOrCorridor = "misc_room_or_corridor"
	PoolEnclosedDoors      = "enclosed_doors"
	PoolMiscCorridor       = "misc_corridor"
	PoolShortDebuff        = "short_debuff"
	PoolMediumDebuff       = "medium_debuff"
	PoolLongDebuff         = "long_debuff"
	PoolDiseases           = "diseases"
)

// Template is a weighted trap text. Entries may be written as a bare string
// (weight 1) or as {text, weight}.
type Template struct {
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (t *Template) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Text, t.Weight = value.Value, 1
		return nil
	}
	type plain Template
	raw := plain{Weight: 1}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*t = Template(raw)
	return nil
}

// TrapPools holds the template pools trap text is assembled from.
type TrapPools struct {
	pools map[string][]Template
}

// TrapsConfig represents the structure of traps.yaml
type TrapsConfig struct {
	Pools map[string][]Template `yaml:"pools"`
}

// LoadTrapsFromYAML loads trap template pools from a YAML file
func LoadTrapsFromYAML(filename string) (*TrapPools, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read traps file: %w", err)
	}
	return ParseTraps(data)
}

// ParseTraps reads traps.yaml content.
func ParseTraps(data []byte) (*TrapPools, error) {
	var config TrapsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse traps YAML: %w", err)
	}
	for name, pool := range config.Pools {
		for _, t := range pool {
			if t.Weight < 0 {
				return nil, fmt.Errorf("failed to parse traps YAML: pool %q has a negative weight", name)
			}
		}
	}
	return &TrapPools{pools: config.Pools}, nil
}

// Pool returns the named pool.
func (p *TrapPools) Pool(name string) ([]Template, error) {
	pool, ok := p.pools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPool, name)
	}
	return pool, nil
}

// Pick draws one template by weight from the union of the named pools.
func (p *TrapPools) Pick(rng *rand.Rand, names ...string) (string, error) {
	var texts []string
	var weights []float64
	for _, name := range names {
		pool, err := p.Pool(name)
		if err != nil {
			return "", err
		}
		for _, t := range pool {
			texts = append(texts, t.Text)
			weights = append(weights, t.Weight)
		}
	}
	i := stats.Choice(rng, weights)
	if i < 0 {
		return "", fmt.Errorf("%w: %v has no weighted templates", ErrUnknownPool, names)
	}
	return texts[i], nil
}

package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lawnchairsociety/cavernforge/internal/logger"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"gopkg.in/yaml.v3"
)

// sizeDiameters is the footprint, in tiles, of each creature size
var sizeDiameters = map[string]int{
	"tiny":       1,
	"small":      1,
	"medium":     1,
	"large":      2,
	"huge":       3,
	"gargantuan": 3,
}

// MonsterInfo is an immutable catalog entry. Placed monsters refer to it and
// scaling produces a modified copy via Clone.
type MonsterInfo struct {
	Name           string
	Keywords       []string
	Synergies      []string // names of species this one wants alongside it
	AsciiChar      string
	Size           string
	Diameter       int
	Health         int    // average hit points
	HitDiceFormula string // e.g. "9d8+18"; preferred over Health when set

	// Rated is false for entries without a challenge rating; they never
	// appear in encounters.
	Rated           bool
	ChallengeRating float64
	XP              int

	MaxPerFloor int     // 0 means uncapped
	Frequency   float64 // relative pick weight; 0 excludes from encounters
}

// monsterInfoYAML is the on-disk form
type monsterInfoYAML struct {
	Name            string    `yaml:"name"`
	Keywords        []string  `yaml:"keywords"`
	Synergies       []string  `yaml:"synergies"`
	AsciiChar       string    `yaml:"ascii_char"`
	Size            string    `yaml:"size"`
	Health          int       `yaml:"health"`
	HitDiceFormula  string    `yaml:"hit_dice_formula"`
	ChallengeRating yaml.Node `yaml:"challenge_rating"`
	MaxPerFloor     int       `yaml:"max_per_floor"`
	Frequency       *float64  `yaml:"frequency"`
}

// UnmarshalYAML fills defaults and derives diameter and XP.
// challenge_rating may be written as 2, 0.25 or "1/4".
func (m *MonsterInfo) UnmarshalYAML(value *yaml.Node) error {
	var raw monsterInfoYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*m = MonsterInfo{
		Name:           raw.Name,
		Keywords:       raw.Keywords,
		Synergies:      raw.Synergies,
		AsciiChar:      raw.AsciiChar,
		Size:           strings.ToLower(raw.Size),
		Health:         raw.Health,
		HitDiceFormula: raw.HitDiceFormula,
		MaxPerFloor:    raw.MaxPerFloor,
		Frequency:      1.0,
	}
	if m.Name == "" {
		m.Name = "Unnamed Monster"
	}
	if m.AsciiChar == "" {
		m.AsciiChar = "e"
	}
	if m.Size == "" {
		m.Size = "medium"
	}
	if raw.Frequency != nil {
		m.Frequency = *raw.Frequency
	}

	diameter, ok := sizeDiameters[m.Size]
	if !ok {
		return fmt.Errorf("monster %q: unknown size %q", m.Name, raw.Size)
	}
	m.Diameter = diameter

	if raw.ChallengeRating.Kind == yaml.ScalarNode && raw.ChallengeRating.ShortTag() != "!!null" {
		cr, err := ParseCR(raw.ChallengeRating.Value)
		if err != nil {
			return fmt.Errorf("monster %q: %w", m.Name, err)
		}
		m.Rated = true
		m.ChallengeRating = cr
		m.XP, _ = XPForCR(cr)
	}
	if m.HitDiceFormula != "" {
		if _, err := stats.ParseDice(m.HitDiceFormula); err != nil {
			return fmt.Errorf("monster %q: %w", m.Name, err)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (m *MonsterInfo) Clone() *MonsterInfo {
	out := *m
	out.Keywords = append([]string(nil), m.Keywords...)
	out.Synergies = append([]string(nil), m.Synergies...)
	return &out
}

// HasKeyword compares case-insensitively.
func (m *MonsterInfo) HasKeyword(k string) bool {
	for _, k2 := range m.Keywords {
		if strings.EqualFold(k, k2) {
			return true
		}
	}
	return false
}

// HasKeywordOrName matches either the species name or one of its keywords.
func (m *MonsterInfo) HasKeywordOrName(kn string) bool {
	return strings.EqualFold(m.Name, kn) || m.HasKeyword(kn)
}

// Capped reports whether a per-floor limit applies.
func (m *MonsterInfo) Capped() bool {
	return m.MaxPerFloor > 0
}

// CRRange bounds a monster query inclusively.
type CRRange struct {
	Min float64
	Max float64
}

// MonsterLibrary is a named, read-only set of monster entries.
type MonsterLibrary struct {
	Name   string
	Infos  []*MonsterInfo
	byName map[string]*MonsterInfo
}

// MonstersConfig represents the structure of monsters.yaml
type MonstersConfig struct {
	Name     string         `yaml:"name"`
	Monsters []*MonsterInfo `yaml:"monsters"`
}

// LoadMonstersFromYAML loads a monster library from a YAML file
func LoadMonstersFromYAML(filename string) (*MonsterLibrary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read monsters file: %w", err)
	}
	return ParseMonsters(data)
}

// ParseMonsters builds a library from monsters.yaml content.
func ParseMonsters(data []byte) (*MonsterLibrary, error) {
	var config MonstersConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse monsters YAML: %w", err)
	}

	lib := &MonsterLibrary{Name: config.Name, byName: make(map[string]*MonsterInfo)}
	for _, m := range config.Monsters {
		if m == nil {
			continue
		}
		if _, dup := lib.byName[strings.ToUpper(m.Name)]; dup {
			logger.Warning("Duplicate monster entry ignored", "monster", m.Name, "library", config.Name)
			continue
		}
		if m.Frequency < 0 {
			logger.Warning("Monster auto-correction applied",
				"monster", m.Name,
				"issue", "negative frequency",
				"action", "set frequency=0")
			m.Frequency = 0
		}
		lib.byName[strings.ToUpper(m.Name)] = m
		lib.Infos = append(lib.Infos, m)
	}

	sort.SliceStable(lib.Infos, func(i, j int) bool {
		a, b := lib.Infos[i], lib.Infos[j]
		if a.ChallengeRating != b.ChallengeRating {
			return a.ChallengeRating < b.ChallengeRating
		}
		return a.Name < b.Name
	})
	return lib, nil
}

// Get finds an entry by name, case-insensitively.
func (l *MonsterLibrary) Get(name string) (*MonsterInfo, error) {
	m, ok := l.byName[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMonster, name)
	}
	return m, nil
}

// GetMonsterInfos returns entries whose name or keywords satisfy filter and,
// when cr is given, whose rating lies in the range. Unrated entries never
// satisfy a CR range.
func (l *MonsterLibrary) GetMonsterInfos(filter string, cr *CRRange) ([]*MonsterInfo, error) {
	expr, err := stats.ParseKeywordExpr(filter)
	if err != nil {
		return nil, err
	}

	var out []*MonsterInfo
	for _, m := range l.Infos {
		if !expr.Match(stats.KeywordSet(append([]string{m.Name}, m.Keywords...))) {
			continue
		}
		if cr != nil {
			if !m.Rated || m.ChallengeRating < cr.Min || m.ChallengeRating > cr.Max {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

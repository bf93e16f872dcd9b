// Package catalog is the read-only content the generator draws from:
// monsters, treasure tables, deities, NPCs and trap templates.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/lawnchairsociety/cavernforge/internal/logger"
)

//go:embed data/*.yaml
var embedded embed.FS

// Catalog files, relative to a catalog directory.
const (
	MonstersFile = "monsters.yaml"
	TreasureFile = "treasure.yaml"
	DeitiesFile  = "deities.yaml"
	NPCsFile     = "npcs.yaml"
	TrapsFile    = "traps.yaml"
)

// Catalog is loaded once and shared read-only by every generation.
type Catalog struct {
	Monsters *MonsterLibrary
	Treasure *TreasureLibrary
	Deities  map[string]*Deity
	NPCs     []*NPC
	Traps    *TrapPools
}

// LoadDefault loads the catalog shipped with the binary.
func LoadDefault() (*Catalog, error) {
	return Load(nil)
}

// LoadDir loads catalog files from dir. Files missing from dir fall back to
// the built-in data.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads each catalog file from fsys, or from the built-in data when
// fsys is nil or lacks the file.
func Load(fsys fs.FS) (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		if fsys != nil {
			data, err := fs.ReadFile(fsys, name)
			if err == nil {
				logger.Debug("Loaded catalog file", "file", name)
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}
		}
		return embedded.ReadFile("data/" + name)
	}

	c := &Catalog{}
	steps := []struct {
		file  string
		parse func([]byte) error
	}{
		{MonstersFile, func(b []byte) (err error) { c.Monsters, err = ParseMonsters(b); return }},
		{TreasureFile, func(b []byte) (err error) { c.Treasure, err = ParseTreasure(b); return }},
		{DeitiesFile, func(b []byte) (err error) { c.Deities, err = ParseDeities(b); return }},
		{NPCsFile, func(b []byte) (err error) { c.NPCs, err = ParseNPCs(b); return }},
		{TrapsFile, func(b []byte) (err error) { c.Traps, err = ParseTraps(b); return }},
	}
	for _, step := range steps {
		data, err := read(step.file)
		if err != nil {
			return nil, err
		}
		if err := step.parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", step.file, err)
		}
	}

	logger.Debug("Catalog loaded",
		"monsters", len(c.Monsters.Infos),
		"deities", len(c.Deities),
		"npcs", len(c.NPCs))
	return c, nil
}

// Deity looks up a deity by name.
func (c *Catalog) Deity(name string) (*Deity, error) {
	d, ok := c.Deities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeity, name)
	}
	return d, nil
}

// DeityNames returns deity names in sorted order.
func (c *Catalog) DeityNames() []string {
	return sortedDeityNames(c.Deities)
}

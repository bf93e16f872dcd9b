package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"gopkg.in/yaml.v3"
)

// Table names the hoard generator rolls on.
const (
	TableAdventuringGear = "Adventuring Gear"
	TableTrinkets        = "Trinkets"
	TableCuriousTrinkets = "Curious Trinkets"
)

// MagicItemTable returns the name of magic item table A through I.
func MagicItemTable(letter string) string {
	return "Magic Item Table " + letter
}

// TableRow maps an inclusive d100 range to a result.
type TableRow struct {
	Roll string `yaml:"roll"` // "17" or "01-16"
	Item string `yaml:"item"`
	lo   int
	hi   int
}

// TreasureTable is a d100 roll table.
type TreasureTable struct {
	Name string     `yaml:"name"`
	Rows []TableRow `yaml:"rows"`
}

// TreasureItem lists concrete variants of a generic table result,
// e.g. "Potion of resistance" -> "Potion of fire resistance".
type TreasureItem struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
}

// Variant is a named substitution list used as "{name}" inside results.
type Variant struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
}

// ValuedNames groups gemstones or art objects of one gold value.
type ValuedNames struct {
	Gold  int      `yaml:"gold"`
	Names []string `yaml:"names"`
}

// Book is a title that can turn up on bookshelves.
type Book struct {
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

// TreasureConfig represents the structure of treasure.yaml
type TreasureConfig struct {
	Name       string          `yaml:"name"`
	Tables     []TreasureTable `yaml:"tables"`
	Items      []TreasureItem  `yaml:"items"`
	Variants   []Variant       `yaml:"variants"`
	ArtObjects []ValuedNames   `yaml:"art_objects"`
	Gemstones  []ValuedNames   `yaml:"gemstones"`
	Books      []Book          `yaml:"books"`
}

// TreasureLibrary rolls hoards from read-only tables.
type TreasureLibrary struct {
	Name       string
	tables     map[string]*TreasureTable
	items      map[string][]string
	variants   map[string][]string
	artObjects map[int][]string
	gemstones  map[int][]string
	books      []Book
}

// LoadTreasureFromYAML loads treasure tables from a YAML file
func LoadTreasureFromYAML(filename string) (*TreasureLibrary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read treasure file: %w", err)
	}
	return ParseTreasure(data)
}

// ParseTreasure builds a library from treasure.yaml content.
func ParseTreasure(data []byte) (*TreasureLibrary, error) {
	var config TreasureConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse treasure YAML: %w", err)
	}

	lib := &TreasureLibrary{
		Name:       config.Name,
		tables:     make(map[string]*TreasureTable),
		items:      make(map[string][]string),
		variants:   make(map[string][]string),
		artObjects: make(map[int][]string),
		gemstones:  make(map[int][]string),
		books:      config.Books,
	}
	for i := range config.Tables {
		t := &config.Tables[i]
		for j := range t.Rows {
			lo, hi, err := parseRollRange(t.Rows[j].Roll)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", t.Name, err)
			}
			t.Rows[j].lo, t.Rows[j].hi = lo, hi
		}
		lib.tables[strings.ToUpper(t.Name)] = t
	}
	for _, it := range config.Items {
		lib.items[strings.ToUpper(it.Name)] = it.Variants
	}
	for _, v := range config.Variants {
		lib.variants[strings.ToUpper(v.Name)] = v.Variants
	}
	for _, v := range config.ArtObjects {
		lib.artObjects[v.Gold] = append(lib.artObjects[v.Gold], v.Names...)
	}
	for _, v := range config.Gemstones {
		lib.gemstones[v.Gold] = append(lib.gemstones[v.Gold], v.Names...)
	}
	sort.Slice(lib.books, func(i, j int) bool { return lib.books[i].Title < lib.books[j].Title })
	return lib, nil
}

func parseRollRange(s string) (lo, hi int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	lo, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad roll range %q", s)
	}
	hi = lo
	if len(parts) == 2 {
		if hi, err = strconv.Atoi(parts[1]); err != nil || hi < lo {
			return 0, 0, fmt.Errorf("bad roll range %q", s)
		}
	}
	return lo, hi, nil
}

// HasTable reports whether a table exists.
func (l *TreasureLibrary) HasTable(name string) bool {
	_, ok := l.tables[strings.ToUpper(name)]
	return ok
}

// RollOnTable rolls d100 on the named table and expands the result.
// A roll no row covers yields "".
func (l *TreasureLibrary) RollOnTable(rng *rand.Rand, name string) (string, error) {
	table, ok := l.tables[strings.ToUpper(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	roll := rng.Intn(100) + 1
	for _, row := range table.Rows {
		if roll >= row.lo && roll <= row.hi {
			return l.expandItem(rng, row.Item), nil
		}
	}
	return "", nil
}

func (l *TreasureLibrary) expandItem(rng *rand.Rand, item string) string {
	if variants := l.items[strings.ToUpper(item)]; len(variants) > 0 {
		item = variants[rng.Intn(len(variants))]
	}
	return l.expandVariants(rng, item)
}

var variantRegex = regexp.MustCompile(`\{[^}]+\}`)

// expandVariants replaces each {name} with a random member of that variant list
func (l *TreasureLibrary) expandVariants(rng *rand.Rand, item string) string {
	return variantRegex.ReplaceAllStringFunc(item, func(m string) string {
		key := strings.ToUpper(strings.TrimSpace(m[1 : len(m)-1]))
		if variants := l.variants[key]; len(variants) > 0 {
			return variants[rng.Intn(len(variants))]
		}
		return m
	})
}

// hoardTableUse gives per-mille odds of each magic item table per roll.
func hoardTableUse(level int) []struct {
	table    string
	perMille int
} {
	return []struct {
		table    string
		perMille int
	}{
		{"A", 80},
		{"B", min(20+level*5, 50)},
		{"C", min(25+level*3, 70)},
		{"D", min((level-4)*8, 108)},
		{"E", min((level-10)*10, 77)},
		{"F", 30},
		{"G", min(level*2, 10)},
		{"H", min((level-4)*4, 25)},
		{"I", min((level-10)*5, 50)},
	}
}

// GenHoard rolls a chest's contents for a party of the given size and level.
func (l *TreasureLibrary) GenHoard(rng *rand.Rand, level, players int) ([]string, error) {
	var contents []string
	seen := make(map[string]bool)

	for _, use := range hoardTableUse(level) {
		var batch []string
		for i := 0; i < 2*players; i++ {
			if rng.Intn(1000) >= use.perMille {
				continue
			}
			item, err := l.RollOnTable(rng, MagicItemTable(use.table))
			if err != nil {
				return nil, err
			}
			if !seen[item] {
				seen[item] = true
				batch = append(batch, item)
			}
		}
		sort.Strings(batch)
		contents = append(contents, batch...)
	}

	for i := rng.Intn(4) + 1; i > 0; i-- {
		if rng.Float64() < 0.25 {
			gear, err := l.RollOnTable(rng, TableAdventuringGear)
			if err != nil {
				return nil, err
			}
			contents = append(contents, "Adventuring Gear: "+gear)
		}
	}
	for _, table := range []string{TableTrinkets, TableCuriousTrinkets} {
		if rng.Float64() < 0.1 {
			trinket, err := l.RollOnTable(rng, table)
			if err != nil {
				return nil, err
			}
			contents = append(contents, "Trinket: "+trinket)
		}
	}
	if rng.Float64() < 0.7 {
		gp := l.hoardGold(rng, level, players) * rng.Float64() * rng.Float64()
		contents = append(contents, l.GoldToTreasure(rng, gp)...)
	}
	return nonEmpty(contents), nil
}

// hoardGold is a rough hoard value in gold for a level, jittered by up to
// three levels either way.
func (l *TreasureLibrary) hoardGold(rng *rand.Rand, level, players int) float64 {
	jittered := float64(level) + 3.0*(rng.Float64()*2-1)
	return math.Pow(2, jittered/2.5) * 15.0 * float64(players)
}

// GoldToTreasure converts a gold value into gemstones or art objects of
// catalogued values, rounding probabilistically so the expected total
// matches gp.
func (l *TreasureLibrary) GoldToTreasure(rng *rand.Rand, gp float64) []string {
	kind, values := "Gemstone", l.gemstones
	if rng.Intn(2) == 1 {
		kind, values = "Art Object", l.artObjects
	}
	if len(values) == 0 || gp <= 0 {
		return nil
	}

	keys := make([]int, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	// Nearest catalogued values at or below and at or above gp
	kLo, kHi := keys[0], keys[len(keys)-1]
	for _, k := range keys {
		fk := float64(k)
		if fk <= gp {
			kLo = k
		}
		if fk >= gp && k < kHi {
			kHi = k
		}
	}

	var picks []int
	switch lo, hi := float64(kLo), float64(kHi); {
	case gp < lo:
		if rng.Float64() < gp/lo {
			picks = append(picks, kLo)
		}
	case gp > hi:
		n := int(math.Floor(gp / hi))
		if rng.Float64() < math.Mod(gp, hi)/hi {
			n++
		}
		for i := 0; i < n; i++ {
			picks = append(picks, kHi)
		}
	case gp == lo:
		picks = append(picks, kLo)
	case gp == hi:
		picks = append(picks, kHi)
	default:
		if rng.Float64() < (gp-lo)/(hi-lo) {
			picks = append(picks, kHi)
		} else {
			picks = append(picks, kLo)
		}
	}

	out := make([]string, 0, len(picks))
	for _, k := range picks {
		names := values[k]
		out = append(out, fmt.Sprintf("%s (%d gp): %s", kind, k, names[rng.Intn(len(names))]))
	}
	sort.Strings(out)
	return out
}

var scrollTemplates = []string{
	"Spell scroll (cantrip): {spell-lvl0}",
	"Spell scroll (1st level): {spell-lvl1}",
	"Spell scroll (2nd level): {spell-lvl2}",
	"Spell scroll (3rd level): {spell-lvl3}",
	"Spell scroll (4th level): {spell-lvl4}",
	"Spell scroll (5th level): {spell-lvl5}",
	"Spell scroll (6th level): {spell-lvl6}",
	"Spell scroll (7th level): {spell-lvl7}",
	"Spell scroll (8th level): {spell-lvl8}",
	"Spell scroll (9th level): {spell-lvl9}",
}

// GenBookshelfHoard rolls spell scrolls weighted toward spell levels a
// caster of the party's level could use, keeps the highest 2d4 of them and
// adds 1d4-1 books.
func (l *TreasureLibrary) GenBookshelfHoard(rng *rand.Rand, level, players int) ([]string, error) {
	casterLevel := float64(level+1) / 2
	const perMille = 50.0

	var contents []string
	seen := make(map[string]bool)
	for spellLevel, tmpl := range scrollTemplates {
		p := perMille * math.Min(1+(casterLevel-float64(spellLevel))/2, 1)
		var batch []string
		for i := 0; i < 2*players; i++ {
			if float64(rng.Intn(1000)) >= p {
				continue
			}
			item := l.expandItem(rng, tmpl)
			if !seen[item] {
				seen[item] = true
				batch = append(batch, item)
			}
		}
		sort.Strings(batch)
		contents = append(contents, batch...)
	}
	contents = nonEmpty(contents)

	d := stats.NewSeededDice(rng)
	maxSize, err := d.Eval("2d4")
	if err != nil {
		return nil, err
	}
	if len(contents) > maxSize {
		contents = contents[len(contents)-maxSize:]
	}

	numBooks, err := d.Eval("1d4-1")
	if err != nil {
		return nil, err
	}
	for i := 0; i < numBooks && len(l.books) > 0; i++ {
		line := "Book: " + l.books[rng.Intn(len(l.books))].Title
		if !seen[line] {
			seen[line] = true
			contents = append(contents, line)
		}
	}
	return contents, nil
}

// BookTitles returns every book title in sorted order.
func (l *TreasureLibrary) BookTitles() []string {
	titles := make([]string, len(l.books))
	for i, b := range l.books {
		titles[i] = b.Title
	}
	return titles
}

func nonEmpty(items []string) []string {
	out := items[:0]
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

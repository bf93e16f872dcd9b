package catalog

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadDefault()
	require.NoError(t, err)
	return c
}

func TestLoadDefault(t *testing.T) {
	c := loadDefault(t)

	assert.NotEmpty(t, c.Monsters.Infos)
	assert.NotEmpty(t, c.NPCs)
	assert.Equal(t, []string{"Kryxix", "Ssarthaxx"}, c.DeityNames())

	for _, letter := range strings.Split("ABCDEFGHI", "") {
		assert.True(t, c.Treasure.HasTable(MagicItemTable(letter)), "table %s", letter)
	}
	assert.True(t, c.Treasure.HasTable(TableAdventuringGear))
	assert.True(t, c.Treasure.HasTable(TableTrinkets))
	assert.True(t, c.Treasure.HasTable(TableCuriousTrinkets))

	for _, pool := range []string{
		PoolAreaTriggers, PoolCorridorTriggers, PoolOneOffDamage, PoolSlowDamage,
		PoolMisc, PoolMiscRoomOrCorridor, PoolEnclosedDoors, PoolMiscCorridor,
		PoolShortDebuff, PoolMediumDebuff, PoolLongDebuff, PoolDiseases,
	} {
		p, err := c.Traps.Pool(pool)
		require.NoError(t, err, pool)
		assert.NotEmpty(t, p, pool)
	}
}

func TestEmbeddedTablesCoverD100(t *testing.T) {
	c := loadDefault(t)
	for name, table := range c.Treasure.tables {
		covered := make([]bool, 101)
		for _, row := range table.Rows {
			for r := row.lo; r <= row.hi; r++ {
				assert.False(t, covered[r], "%s: roll %d covered twice", name, r)
				covered[r] = true
			}
		}
		for r := 1; r <= 100; r++ {
			assert.True(t, covered[r], "%s: roll %d not covered", name, r)
		}
	}
}

func TestMonsterLibraryOrderAndDefaults(t *testing.T) {
	c := loadDefault(t)
	infos := c.Monsters.Infos
	for i := 1; i < len(infos); i++ {
		a, b := infos[i-1], infos[i]
		assert.True(t, a.ChallengeRating < b.ChallengeRating ||
			(a.ChallengeRating == b.ChallengeRating && a.Name <= b.Name),
			"%s before %s", a.Name, b.Name)
	}

	mimic, err := c.Monsters.Get("mimic")
	require.NoError(t, err)
	assert.Equal(t, 2.0, mimic.ChallengeRating)
	assert.Equal(t, 450, mimic.XP)
	assert.Equal(t, "9d8+18", mimic.HitDiceFormula)
	assert.Zero(t, mimic.Frequency)

	horror, err := c.Monsters.Get("Unnamed Horror")
	require.NoError(t, err)
	assert.False(t, horror.Rated)
	assert.Equal(t, 3, horror.Diameter)

	_, err = c.Monsters.Get("Tarrasque")
	assert.ErrorIs(t, err, ErrUnknownMonster)
}

func TestGetMonsterInfos(t *testing.T) {
	c := loadDefault(t)

	t.Run("default filter", func(t *testing.T) {
		infos, err := c.Monsters.GetMonsterInfos("Undead or Flesh Golem", nil)
		require.NoError(t, err)
		require.NotEmpty(t, infos)
		sawGolem := false
		for _, m := range infos {
			if m.Name == "Flesh Golem" {
				sawGolem = true
				continue
			}
			assert.True(t, m.HasKeyword("undead"), m.Name)
		}
		assert.True(t, sawGolem)
	})

	t.Run("cr range", func(t *testing.T) {
		infos, err := c.Monsters.GetMonsterInfos("", &CRRange{Min: 1, Max: 3})
		require.NoError(t, err)
		require.NotEmpty(t, infos)
		for _, m := range infos {
			assert.True(t, m.Rated)
			assert.GreaterOrEqual(t, m.ChallengeRating, 1.0)
			assert.LessOrEqual(t, m.ChallengeRating, 3.0)
		}
	})

	t.Run("unrated excluded by range", func(t *testing.T) {
		all, err := c.Monsters.GetMonsterInfos("Aberration", nil)
		require.NoError(t, err)
		ranged, err := c.Monsters.GetMonsterInfos("Aberration", &CRRange{Min: 0, Max: 30})
		require.NoError(t, err)
		assert.Greater(t, len(all), len(ranged))
	})

	t.Run("bad filter", func(t *testing.T) {
		_, err := c.Monsters.GetMonsterInfos("(undead", nil)
		assert.ErrorIs(t, err, stats.ErrBadKeywordExpr)
	})
}

func TestParseMonsters(t *testing.T) {
	data := []byte(`
name: test
monsters:
  - name: Rat
    challenge_rating: 0
    keywords: [Beast]
  - name: Rat
    challenge_rating: 1
  - name: Brute
    challenge_rating: 1/2
    size: large
    frequency: -3
  - size: tiny
`)
	lib, err := ParseMonsters(data)
	require.NoError(t, err)
	require.Len(t, lib.Infos, 3)

	rat, err := lib.Get("rat")
	require.NoError(t, err)
	assert.Equal(t, 0.0, rat.ChallengeRating)
	assert.Equal(t, 10, rat.XP)
	assert.Equal(t, 1.0, rat.Frequency)
	assert.Equal(t, "e", rat.AsciiChar)

	brute, err := lib.Get("Brute")
	require.NoError(t, err)
	assert.Equal(t, 2, brute.Diameter)
	assert.Zero(t, brute.Frequency)

	_, err = lib.Get("Unnamed Monster")
	assert.NoError(t, err)
}

func TestParseMonstersErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad size", "monsters:\n  - name: X\n    size: colossal\n"},
		{"bad cr", "monsters:\n  - name: X\n    challenge_rating: 1/3\n"},
		{"bad dice", "monsters:\n  - name: X\n    hit_dice_formula: 2q6\n"},
		{"not yaml", "monsters: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMonsters([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestCRHelpers(t *testing.T) {
	for _, s := range []string{"1/8", "1/4", "1/2", "0", "1", "13", "30"} {
		cr, err := ParseCR(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, FormatCR(cr))
	}

	_, err := ParseCR("31")
	assert.ErrorIs(t, err, ErrUnknownCR)
	_, err = XPForCR(0.3)
	assert.ErrorIs(t, err, ErrUnknownCR)

	xp, err := XPForCR(5)
	require.NoError(t, err)
	assert.Equal(t, 1800, xp)

	scale, err := HPScale(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, scale)
	scale, err = HPScale(1, 5)
	require.NoError(t, err)
	assert.Greater(t, scale, 1.0)
}

func TestRollOnTable(t *testing.T) {
	c := loadDefault(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		item, err := c.Treasure.RollOnTable(rng, MagicItemTable("B"))
		require.NoError(t, err)
		assert.NotEmpty(t, item)
		assert.NotContains(t, item, "{")
		assert.NotEqual(t, "Potion of resistance", item, "items must expand to a variant")
	}

	_, err := c.Treasure.RollOnTable(rng, "Magic Item Table Z")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestGenHoard(t *testing.T) {
	c := loadDefault(t)
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		hoard, err := c.Treasure.GenHoard(rng, 7, 5)
		require.NoError(t, err)
		seen := make(map[string]bool)
		for _, item := range hoard {
			assert.NotEmpty(t, item)
			assert.NotContains(t, item, "{")
			if !strings.HasPrefix(item, "Gemstone") && !strings.HasPrefix(item, "Art Object") &&
				!strings.HasPrefix(item, "Adventuring Gear") {
				assert.False(t, seen[item], "duplicate %q", item)
			}
			seen[item] = true
		}
	}
}

func TestGenBookshelfHoard(t *testing.T) {
	c := loadDefault(t)
	titles := make(map[string]bool)
	for _, title := range c.Treasure.BookTitles() {
		titles["Book: "+title] = true
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		shelf, err := c.Treasure.GenBookshelfHoard(rng, 5, 4)
		require.NoError(t, err)

		scrolls := 0
		for _, item := range shelf {
			switch {
			case strings.HasPrefix(item, "Spell scroll"):
				scrolls++
				assert.NotContains(t, item, "{")
			case strings.HasPrefix(item, "Book: "):
				assert.True(t, titles[item], item)
			default:
				t.Errorf("unexpected bookshelf item %q", item)
			}
		}
		assert.LessOrEqual(t, scrolls, 8)
	}
}

func TestGoldToTreasure(t *testing.T) {
	c := loadDefault(t)
	rng := rand.New(rand.NewSource(3))

	assert.Empty(t, c.Treasure.GoldToTreasure(rng, 0))

	for i := 0; i < 50; i++ {
		for _, item := range c.Treasure.GoldToTreasure(rng, 100) {
			assert.True(t,
				strings.HasPrefix(item, "Gemstone (") || strings.HasPrefix(item, "Art Object ("), item)
		}
	}

	// A value far above the largest entry splits into several pieces
	big := c.Treasure.GoldToTreasure(rng, 40000)
	assert.GreaterOrEqual(t, len(big), 5)
}

func TestDeities(t *testing.T) {
	c := loadDefault(t)

	kryxix, err := c.Deity("Kryxix")
	require.NoError(t, err)
	assert.True(t, kryxix.PreferDark)
	require.NotNil(t, kryxix.MinimumDoorStrength)

	ss, err := c.Deity("Ssarthaxx")
	require.NoError(t, err)
	assert.Nil(t, ss.MinimumDoorStrength)
	assert.Contains(t, ss.Title(), "Ssarthaxx")

	rite := kryxix.RollRite(rand.New(rand.NewSource(1)))
	assert.NotEmpty(t, rite.Description)
	assert.NotEmpty(t, rite.Request)
	assert.NotEmpty(t, rite.Boon.Header)

	_, err = c.Deity("Nobody")
	assert.ErrorIs(t, err, ErrUnknownDeity)

	_, err = ParseDeities([]byte("deities:\n  - full_title: Nameless\n"))
	assert.Error(t, err)
}

func TestNPCDescription(t *testing.T) {
	c := loadDefault(t)
	var andrus *NPC
	for _, n := range c.NPCs {
		if n.Name == "Andrus of Eastora" {
			andrus = n
		}
	}
	require.NotNil(t, andrus)

	assert.Equal(t, "Level 5 Human Fighter", andrus.Overview())
	desc := andrus.Description()
	assert.Contains(t, desc, "Hit Points: 44")
	assert.Contains(t, desc, "Quirk: Names every hammer he owns")
	assert.Contains(t, desc, "Activities:\n- Repairing a dented shield")
	assert.Contains(t, desc, "Str Con Dex Int Wis Cha")

	bare := &NPC{Name: "Nobody"}
	assert.Empty(t, bare.Overview())
	assert.Empty(t, bare.Description())
}

func TestTrapTemplates(t *testing.T) {
	pools, err := ParseTraps([]byte(`
pools:
  a:
    - plain text
    - {text: heavy, weight: 0}
  b:
    - text: weighted
      weight: 3
`))
	require.NoError(t, err)

	a, err := pools.Pool("a")
	require.NoError(t, err)
	assert.Equal(t, []Template{{Text: "plain text", Weight: 1}, {Text: "heavy", Weight: 0}}, a)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		s, err := pools.Pick(rng, "a", "b")
		require.NoError(t, err)
		assert.NotEqual(t, "heavy", s)
	}

	_, err = pools.Pick(rng, "missing")
	assert.ErrorIs(t, err, ErrUnknownPool)

	_, err = ParseTraps([]byte("pools:\n  a:\n    - {text: x, weight: -1}\n"))
	assert.Error(t, err)
}

func TestLoadDirOverride(t *testing.T) {
	dir := t.TempDir()
	monsters := `
name: override
monsters:
  - name: Mimic
    challenge_rating: 2
  - name: Cave Rat
    challenge_rating: 1/8
    keywords: [Beast]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, MonstersFile), []byte(monsters), 0644))

	c, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "override", c.Monsters.Name)
	assert.Len(t, c.Monsters.Infos, 2)
	// Files missing from the directory come from the built-in data
	assert.True(t, c.Treasure.HasTable(TableTrinkets))
	assert.NotEmpty(t, c.NPCs)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, TrapsFile), []byte("pools: [\n"), 0644))
	_, err = LoadDir(dir)
	assert.Error(t, err)
}

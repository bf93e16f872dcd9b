package encounter

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func info(name string, cr float64, keywords ...string) *catalog.MonsterInfo {
	xp, err := catalog.XPForCR(cr)
	if err != nil {
		panic(err)
	}
	return &catalog.MonsterInfo{
		Name:            name,
		AsciiChar:       strings.ToLower(name[:1]),
		Size:            "medium",
		Diameter:        1,
		Health:          20,
		Rated:           true,
		ChallengeRating: cr,
		XP:              xp,
		Frequency:       1,
		Keywords:        keywords,
	}
}

func group(infos ...*catalog.MonsterInfo) []*catalog.MonsterInfo { return infos }

func TestGroupXP(t *testing.T) {
	ghoul := info("Ghoul", 1)
	zombie := info("Zombie", 0.25)
	wight := info("Wight", 3)
	lich := info("Lich", 21)

	assert.Equal(t, 0, GroupXP(nil))
	assert.Equal(t, 200, GroupXP(group(ghoul)))
	// 400 * sqrt(2)
	assert.Equal(t, 565, GroupXP(group(ghoul, ghoul)))
	// Both within two CR of the top: counted fully, 900 * sqrt(2)
	assert.Equal(t, 1272, GroupXP(group(wight, ghoul)))
	// A zombie next to a lich counts as 1/sqrt(21-1-0.25) of a monster
	withLich := GroupXP(group(lich, zombie))
	assert.Equal(t, 36579, withLich)
	assert.Less(t, withLich, GroupXP(group(lich, info("Lich", 21))))
}

func TestGroupSpace(t *testing.T) {
	big := info("Ogre", 2)
	big.Diameter = 2
	assert.Equal(t, 0, GroupSpace(nil))
	assert.Equal(t, 6, GroupSpace(group(big, info("Rat", 0), info("Rat", 0))))
}

func TestScoreGroup(t *testing.T) {
	front := info("Zombie", 1, "Frontline")
	back := info("Skeleton", 1, "Backline")

	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, ScoreGroup(nil, 500, nil))
	})

	t.Run("mixed lines beat all frontline", func(t *testing.T) {
		mixed := ScoreGroup(group(front, back), 565, nil)
		same := ScoreGroup(group(front, front), 565, nil)
		assert.InDelta(t, 3.0, mixed, 1e-9) // exact XP, two new species
		assert.InDelta(t, 1.0, same, 1e-9)  // halved, one new species
	})

	t.Run("synergy", func(t *testing.T) {
		ghast := info("Ghast", 2, "Frontline")
		ghoul := info("Ghoul", 1, "Backline")
		ghoul.Synergies = []string{"Ghast"}
		with := ScoreGroup(group(ghoul, ghast), 1000, nil)
		without := ScoreGroup(group(ghoul, back), 1000, nil)
		assert.Greater(t, with, without)
	})

	t.Run("cap exceeded", func(t *testing.T) {
		capped := info("Wraith", 1, "Frontline", "Backline")
		capped.MaxPerFloor = 1
		under := ScoreGroup(group(capped), 200, nil)
		over := ScoreGroup(group(capped), 200, map[string]int{"Wraith": 1})
		// over loses the new-species bonus and takes the cap penalty
		assert.InDelta(t, under/20, over, 1e-9)
	})
}

// Scenario C: one CR 1 species capped at 4 against a 500 XP target
func TestBuildSingleSpecies(t *testing.T) {
	ghoul := info("Ghoul", 1, "Frontline", "Backline")
	ghoul.MaxPerFloor = 4
	b := NewBuilder(rand.New(rand.NewSource(42)))

	enc, err := b.Build(group(ghoul), 500, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, enc.Len())
	assert.Equal(t, 565, enc.TotalXP())

	prev := make(map[string]int)
	for i := 0; i < 10; i++ {
		enc, err := b.Build(group(ghoul), 500, Options{PrevCounts: prev})
		require.NoError(t, err)
		for name, n := range enc.Counts() {
			prev[name] += n
		}
		assert.LessOrEqual(t, prev["Ghoul"], 4)
	}
	assert.Equal(t, 4, prev["Ghoul"])
}

func TestBuildRespectsCaps(t *testing.T) {
	c, err := catalog.LoadDefault()
	require.NoError(t, err)
	infos, err := c.Monsters.GetMonsterInfos("Undead or Flesh Golem", &catalog.CRRange{Min: 0, Max: 10})
	require.NoError(t, err)

	for seed := int64(0); seed < 5; seed++ {
		b := NewBuilder(rand.New(rand.NewSource(seed)))
		prev := make(map[string]int)
		for room := 0; room < 12; room++ {
			enc, err := b.Build(infos, 3750, Options{PrevCounts: prev, MaxSpace: 12})
			require.NoError(t, err)
			assert.LessOrEqual(t, enc.TotalSpace(), 12)
			for name, n := range enc.Counts() {
				prev[name] += n
			}
		}
		for _, mi := range infos {
			if mi.Capped() {
				assert.LessOrEqual(t, prev[mi.Name], mi.MaxPerFloor, mi.Name)
			}
		}
	}
}

func TestBuildNothingFits(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))

	enc, err := b.Build(group(info("Lich", 21)), 500, Options{})
	require.NoError(t, err)
	assert.Zero(t, enc.Len())

	enc, err = b.Build(group(info("Ghoul", 1)), 0, Options{})
	require.NoError(t, err)
	assert.Zero(t, enc.Len())

	zero := info("Mimic", 2)
	zero.Frequency = 0
	enc, err = b.Build(group(zero), 500, Options{})
	require.NoError(t, err)
	assert.Zero(t, enc.Len())
}

func TestBuildHomogenousOnlyAlone(t *testing.T) {
	banshee := info("Banshee", 4, "Backline", "Homogenous")
	ghoul := info("Ghoul", 1, "Frontline")
	b := NewBuilder(rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		enc, err := b.Build(group(banshee, ghoul), 1500, Options{Variety: 2})
		require.NoError(t, err)
		assert.NotContains(t, enc.Counts(), "Banshee")
	}
}

func TestNewMonster(t *testing.T) {
	mi := info("Mimic", 2)
	mi.HitDiceFormula = "9d8+18"
	d := stats.NewSeededDice(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		m, err := NewMonster(mi, d)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.Health, 27)
		assert.LessOrEqual(t, m.Health, 90)
		assert.Equal(t, -1, m.RoomIndex)
	}

	m, err := NewMonster(info("Ghoul", 1), nil)
	require.NoError(t, err)
	assert.Equal(t, 20, m.Health)
	assert.Equal(t, "20/20 Ghoul", m.Label())
}

func TestAdjustCR(t *testing.T) {
	mi := info("Mimic", 2)
	mi.Health = 93
	m, err := NewMonster(mi, nil)
	require.NoError(t, err)

	up, err := m.AdjustCR(5)
	require.NoError(t, err)
	assert.Equal(t, "Mimic (CR 5)", up.Name)
	assert.Equal(t, 138, up.Health)
	assert.Equal(t, 1800, up.Info.XP)
	assert.Equal(t, 5.0, up.Info.ChallengeRating)
	// The catalog entry is never modified
	assert.Equal(t, 2.0, mi.ChallengeRating)
	assert.Equal(t, 450, mi.XP)

	down, err := up.AdjustCR(0.25)
	require.NoError(t, err)
	assert.Equal(t, "Mimic (CR 1/4)", down.Name)
	assert.Contains(t, []int{42, 43}, down.Health)

	same, err := m.AdjustCR(2)
	require.NoError(t, err)
	assert.Equal(t, "Mimic", same.Name)

	_, err = m.AdjustCR(2.5)
	assert.ErrorIs(t, err, catalog.ErrUnknownCR)
}

func TestSummaryAndDescription(t *testing.T) {
	ghoul := info("Ghoul", 1)
	ghast := info("Ghast", 2)
	ghast.AsciiChar = "G"
	enc := &Encounter{}
	for _, mi := range group(ghoul, ghast, ghoul) {
		m, err := NewMonster(mi, nil)
		require.NoError(t, err)
		enc.Monsters = append(enc.Monsters, m)
	}

	assert.Equal(t, "Ghast (G) x1\nGhoul (g) x2", enc.Summary())
	desc := enc.Description(7, 5)
	assert.True(t, strings.HasPrefix(desc, "Monster encounter (~1,472 xp; ~39% of Medium):\n"), desc)

	var empty *Encounter
	assert.Zero(t, empty.Len())
	assert.Zero(t, empty.TotalXP())
}

func TestCommaInt(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4500: "-4,500"}
	for n, want := range tests {
		assert.Equal(t, want, commaInt(n))
	}
}

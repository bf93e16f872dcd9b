package encounter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/leveling"
)

// Encounter is an ordered group of monsters sharing a room.
type Encounter struct {
	Monsters []*Monster
}

// Len returns the number of monsters.
func (e *Encounter) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Monsters)
}

// Infos returns the catalog entry of every monster, in order.
func (e *Encounter) Infos() []*catalog.MonsterInfo {
	if e == nil {
		return nil
	}
	infos := make([]*catalog.MonsterInfo, len(e.Monsters))
	for i, m := range e.Monsters {
		infos[i] = m.Info
	}
	return infos
}

// TotalXP is the adjusted XP of the group. See GroupXP.
func (e *Encounter) TotalXP() int {
	return GroupXP(e.Infos())
}

// TotalSpace is the number of tiles the group occupies.
func (e *Encounter) TotalSpace() int {
	return GroupSpace(e.Infos())
}

// Counts tallies monsters by species name.
func (e *Encounter) Counts() map[string]int {
	counts := make(map[string]int)
	for _, m := range e.Monsters {
		counts[m.Info.Name]++
	}
	return counts
}

// Summary lists "Name (char) xN" per species, sorted by name.
func (e *Encounter) Summary() string {
	return Summarize(e.Monsters)
}

// Description is the room note for the encounter, relating its XP to a
// medium encounter for the party.
func (e *Encounter) Description(level, players int) string {
	xp := e.TotalXP()
	pct := leveling.DifficultyPercent(xp, level, players)
	return fmt.Sprintf("Monster encounter (~%s xp; ~%d%% of Medium):\n%s", commaInt(xp), pct, e.Summary())
}

// Summarize lists "Name (char) xN" per species, sorted by name.
func Summarize(monsters []*Monster) string {
	counts := make(map[string]int)
	chars := make(map[string]string)
	for _, m := range monsters {
		counts[m.Info.Name]++
		chars[m.Info.Name] = m.Info.AsciiChar
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%s (%s) x%d", name, chars[name], counts[name])
	}
	return strings.Join(lines, "\n")
}

// GroupXP sums the XP of a group and scales it by the square root of the
// group size, approximating the tabletop multiple-monster multiplier.
// Monsters more than two CR below the strongest member count as
// 1/sqrt(hiCR-1-CR) of a monster. An empty group is worth 0.
func GroupXP(infos []*catalog.MonsterInfo) int {
	if len(infos) == 0 {
		return 0
	}
	sum := 0
	hiCR := infos[0].ChallengeRating
	for _, mi := range infos {
		sum += mi.XP
		hiCR = math.Max(hiCR, mi.ChallengeRating)
	}
	count := 0.0
	for _, mi := range infos {
		d := 1.0
		if mi.ChallengeRating < hiCR-2 {
			d /= math.Sqrt(hiCR - 1 - mi.ChallengeRating)
		}
		count += d
	}
	return int(float64(sum) * math.Sqrt(count))
}

// GroupSpace sums the squared diameters of a group.
func GroupSpace(infos []*catalog.MonsterInfo) int {
	space := 0
	for _, mi := range infos {
		space += mi.Diameter * mi.Diameter
	}
	return space
}

func commaInt(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

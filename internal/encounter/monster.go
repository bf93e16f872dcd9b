// Package encounter builds groups of monsters whose combined XP lands close
// to a target while respecting per-floor caps and room space.
package encounter

import (
	"fmt"
	"math"
	"regexp"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/stats"
)

// Monster is a placed instance of a catalog entry.
type Monster struct {
	Info      *catalog.MonsterInfo
	Name      string
	Health    int
	X, Y      int
	RoomIndex int // -1 until placed
}

// NewMonster creates an unplaced monster, rolling its hit dice when the
// entry has a formula and using the average health otherwise.
func NewMonster(info *catalog.MonsterInfo, d *stats.Dice) (*Monster, error) {
	m := &Monster{Info: info, Name: info.Name, Health: info.Health, RoomIndex: -1}
	if info.HitDiceFormula != "" && d != nil {
		hp, err := d.Eval(info.HitDiceFormula)
		if err != nil {
			return nil, fmt.Errorf("monster %q: %w", info.Name, err)
		}
		m.Health = max(1, hp)
	}
	return m, nil
}

// Char is the map symbol for this monster.
func (m *Monster) Char() string {
	return m.Info.AsciiChar
}

// Label is the "hp/hp Name" token label.
func (m *Monster) Label() string {
	if m.Health > 0 {
		return fmt.Sprintf("%d/%d %s", m.Health, m.Health, m.Name)
	}
	return m.Name
}

var crSuffixRegex = regexp.MustCompile(` \(CR [0-9/]+\)`)

// AdjustCR returns a copy of m rescaled to newCR. The catalog entry is
// cloned, never modified; health scales by the typical hit point ratio of
// the two ratings and the name gains a "(CR x)" suffix.
func (m *Monster) AdjustCR(newCR float64) (*Monster, error) {
	out := *m
	if m.Info.Rated && m.Info.ChallengeRating == newCR {
		return &out, nil
	}
	xp, err := catalog.XPForCR(newCR)
	if err != nil {
		return nil, err
	}

	info := m.Info.Clone()
	info.Rated = true
	info.ChallengeRating = newCR
	info.XP = xp
	out.Info = info

	if m.Health > 0 && m.Info.Rated {
		ratio, err := catalog.HPScale(m.Info.ChallengeRating, newCR)
		if err != nil {
			return nil, err
		}
		out.Health = max(1, int(math.Round(float64(m.Health)*ratio)))
	}
	if out.Name != "" {
		out.Name = crSuffixRegex.ReplaceAllString(out.Name, "") + " (CR " + catalog.FormatCR(newCR) + ")"
	}
	return &out, nil
}

package stats

import (
	"fmt"
	"strings"
)

// AbilityScores holds the six core D&D-style ability scores
type AbilityScores struct {
	Strength     int `yaml:"strength"`
	Constitution int `yaml:"constitution"`
	Dexterity    int `yaml:"dexterity"`
	Intelligence int `yaml:"intelligence"`
	Wisdom       int `yaml:"wisdom"`
	Charisma     int `yaml:"charisma"`
}

// AbilityAbbrevs in stat-block order
var AbilityAbbrevs = []string{"Str", "Con", "Dex", "Int", "Wis", "Cha"}

// Modifier calculates the D&D-style modifier using floor division
// Formula: floor((score - 10) / 2)
// Examples: 8=-1, 9=-1, 10=0, 11=0, 12=+1, 14=+2, 16=+3, 18=+4
func Modifier(score int) int {
	diff := score - 10
	if diff >= 0 {
		return diff / 2
	}
	// Floor division for negative numbers
	return (diff - 1) / 2
}

// FormatModifier renders a modifier with an explicit sign ("+2", "-1", "+0").
func FormatModifier(mod int) string {
	if mod < 0 {
		return fmt.Sprintf("%d", mod)
	}
	return fmt.Sprintf("+%d", mod)
}

// IsZero reports whether no scores were provided.
func (a *AbilityScores) IsZero() bool {
	return a == nil || *a == AbilityScores{}
}

// Values returns the scores in AbilityAbbrevs order.
func (a *AbilityScores) Values() []int {
	return []int{a.Strength, a.Constitution, a.Dexterity, a.Intelligence, a.Wisdom, a.Charisma}
}

// Block renders a three-line stat block: abbreviations, modifiers and scores,
// each cell centred in a column as wide as its widest entry.
func (a *AbilityScores) Block() string {
	if a.IsZero() {
		return ""
	}
	var rows [3][]string
	for i, v := range a.Values() {
		cells := []string{AbilityAbbrevs[i], FormatModifier(Modifier(v)), fmt.Sprintf("%d", v)}
		width := 0
		for _, c := range cells {
			width = max(width, len(c))
		}
		for r, c := range cells {
			rows[r] = append(rows[r], centre(c, width))
		}
	}
	lines := make([]string, len(rows))
	for r := range rows {
		lines[r] = strings.Join(rows[r], " ")
	}
	return strings.Join(lines, "\n")
}

// centre pads s to width, putting the odd space on the right
func centre(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

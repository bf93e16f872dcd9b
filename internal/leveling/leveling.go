package leveling

import "math"

// Party level bounds
const (
	MinCharacterLevel = 1
	MaxCharacterLevel = 20
)

// medXPPerCharacter is the XP of a medium-difficulty encounter for one
// character of each level.
var medXPPerCharacter = [MaxCharacterLevel + 1]int{
	0,
	50, 100, 150, 250, 500,
	600, 750, 900, 1100, 1200,
	1600, 2000, 2200, 2500, 2800,
	3200, 3900, 4200, 4900, 5700,
}

// clampLevel keeps a level on the table
func clampLevel(level int) int {
	return max(MinCharacterLevel, min(level, MaxCharacterLevel))
}

// MedXPPerCharacter returns the medium encounter XP for a single character.
func MedXPPerCharacter(level int) int {
	return medXPPerCharacter[clampLevel(level)]
}

// MedTargetXP returns the XP of a medium-difficulty encounter for a party.
func MedTargetXP(level, players int) int {
	return MedXPPerCharacter(level) * players
}

// MaxEncounterCR is the highest challenge rating allowed into encounters
// for a party of the given level: ceil(level * 7/5).
func MaxEncounterCR(level int) float64 {
	return math.Ceil(float64(clampLevel(level)) * 7 / 5)
}

// DifficultyPercent expresses xp as a percentage of a medium encounter.
func DifficultyPercent(xp, level, players int) int {
	med := MedTargetXP(level, players)
	if med == 0 {
		return 0
	}
	return int(math.Round(100 * float64(xp) / float64(med)))
}

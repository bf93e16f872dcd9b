package leveling

import "testing"

func TestMedTargetXP(t *testing.T) {
	tests := []struct {
		level   int
		players int
		want    int
	}{
		{1, 1, 50},
		{1, 4, 200},
		{5, 4, 2000},
		{7, 5, 3750},
		{20, 3, 17100},
		{0, 2, 100},   // clamped to level 1
		{25, 1, 5700}, // clamped to level 20
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := MedTargetXP(tt.level, tt.players); got != tt.want {
			t.Errorf("MedTargetXP(%d, %d) = %d, want %d", tt.level, tt.players, got, tt.want)
		}
	}
}

func TestMedXPIncreasesWithLevel(t *testing.T) {
	for level := MinCharacterLevel + 1; level <= MaxCharacterLevel; level++ {
		if MedXPPerCharacter(level) <= MedXPPerCharacter(level-1) {
			t.Errorf("level %d XP %d is not above level %d", level, MedXPPerCharacter(level), level-1)
		}
	}
}

func TestMaxEncounterCR(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 2},
		{5, 7},
		{7, 10},
		{20, 28},
	}

	for _, tt := range tests {
		if got := MaxEncounterCR(tt.level); got != tt.want {
			t.Errorf("MaxEncounterCR(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestDifficultyPercent(t *testing.T) {
	if got := DifficultyPercent(3750, 7, 5); got != 100 {
		t.Errorf("DifficultyPercent = %d, want 100", got)
	}
	if got := DifficultyPercent(1875, 7, 5); got != 50 {
		t.Errorf("DifficultyPercent = %d, want 50", got)
	}
	if got := DifficultyPercent(100, 7, 0); got != 0 {
		t.Errorf("DifficultyPercent with no players = %d, want 0", got)
	}
}

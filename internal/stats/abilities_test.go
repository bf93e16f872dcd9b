package stats

import (
	"strings"
	"testing"
)

func TestModifier(t *testing.T) {
	// D&D formula: floor((score - 10) / 2)
	// Uses floor division so odd scores round down (toward negative infinity)
	tests := []struct {
		score    int
		expected int
	}{
		{1, -5},
		{6, -2},
		{7, -2},
		{8, -1},
		{9, -1},
		{10, 0},
		{11, 0},
		{12, 1},
		{13, 1},
		{18, 4},
		{19, 4},
		{20, 5},
		{30, 10},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			result := Modifier(tt.score)
			if result != tt.expected {
				t.Errorf("Modifier(%d) = %d, expected %d", tt.score, result, tt.expected)
			}
		})
	}
}

func TestFormatModifier(t *testing.T) {
	tests := map[int]string{-3: "-3", 0: "+0", 4: "+4"}
	for mod, want := range tests {
		if got := FormatModifier(mod); got != want {
			t.Errorf("FormatModifier(%d) = %q, want %q", mod, got, want)
		}
	}
}

func TestBlock(t *testing.T) {
	scores := &AbilityScores{Strength: 8, Constitution: 14, Dexterity: 10, Intelligence: 18, Wisdom: 12, Charisma: 3}

	lines := strings.Split(scores.Block(), "\n")
	if len(lines) != 3 {
		t.Fatalf("Block() has %d lines, want 3", len(lines))
	}
	if lines[0] != "Str Con Dex Int Wis Cha" {
		t.Errorf("header row = %q", lines[0])
	}
	if lines[1] != "-1  +2  +0  +4  +1  -4 " {
		t.Errorf("modifier row = %q", lines[1])
	}
	if lines[2] != " 8  14  10  18  12   3 " {
		t.Errorf("score row = %q", lines[2])
	}
}

func TestBlockEmpty(t *testing.T) {
	var scores *AbilityScores
	if scores.Block() != "" {
		t.Error("nil scores should render nothing")
	}
	if (&AbilityScores{}).Block() != "" {
		t.Error("zero scores should render nothing")
	}
}

package dungeon

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// maxDoorRoll is the top of the clamped level+d20 door roll.
const maxDoorRoll = 30

// DoorMaterial is one row of the door strength table.
type DoorMaterial struct {
	Name            string
	Thickness       int // inches
	DamageThreshold int
	AC              int
	HP              int
}

// DoorMaterials is ordered weakest to strongest; door strengths index it.
var DoorMaterials = []DoorMaterial{
	{"Rotted wood", 1, 0, 11, 5},
	{"Wood", 2, 0, 15, 10},
	{"Reinforced wood", 3, 5, 15, 18},
	{"Banded wood", 4, 5, 16, 27},
	{"Stone", 4, 10, 17, 27},
	{"Iron", 2, 10, 19, 36},
	{"Thick iron", 4, 15, 19, 45},
	{"Mithral", 2, 15, 21, 54},
	{"Adamantine", 2, 20, 23, 72},
}

// DoorStrengthForRoll maps level+d20 to a row of DoorMaterials.
func DoorStrengthForRoll(level, d20 int) int {
	roll := min(max(level+d20-5, 0), maxDoorRoll)
	return roll * (len(DoorMaterials) - 1) / maxDoorRoll
}

// Door is a door cluster across a corridor. A door on a wide corridor spans
// several door tiles that all carry its index.
type Door struct {
	Index    int
	X, Y     int
	Corridor int
	// Rooms holds the one or two rooms the door opens onto
	Rooms    mapset.Set[int]
	Strength int
	// LockDC is zero when the door is not locked
	LockDC int
	Traps  mapset.Set[int]
}

func newDoor(x, y, corridor, strength int) *Door {
	return &Door{
		Index:    -1,
		X:        x,
		Y:        y,
		Corridor: corridor,
		Rooms:    mapset.New[int](),
		Strength: strength,
		Traps:    mapset.New[int](),
	}
}

// Material is the door's row in DoorMaterials.
func (d *Door) Material() DoorMaterial {
	return DoorMaterials[min(max(d.Strength, 0), len(DoorMaterials)-1)]
}

// Locked reports whether the door needs a check to open.
func (d *Door) Locked() bool {
	return d.LockDC > 0
}

// ApplyMinimumStrength upgrades the door to at least strength.
func (d *Door) ApplyMinimumStrength(strength int) {
	if d.Strength < strength {
		d.Strength = min(strength, len(DoorMaterials)-1)
	}
}

// Description summarises the door's material and lock.
func (d *Door) Description() string {
	m := d.Material()
	s := fmt.Sprintf("%s door (%d\" thick, DT %d, AC %d, HP %d)", m.Name, m.Thickness, m.DamageThreshold, m.AC, m.HP)
	if d.Locked() {
		s += fmt.Sprintf(", locked (DC %d)", d.LockDC)
	}
	return s
}

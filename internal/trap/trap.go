// Package trap assembles level-scaled trap text from template pools.
package trap

import (
	"fmt"
)

// OwnerKind is what a trap is attached to.
type OwnerKind int

const (
	OwnerRoom OwnerKind = iota
	OwnerCorridor
	OwnerDoor
	OwnerChest
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerRoom:
		return "Room"
	case OwnerCorridor:
		return "Corridor"
	case OwnerDoor:
		return "Door"
	case OwnerChest:
		return "Chest"
	}
	return fmt.Sprintf("OwnerKind(%d)", int(k))
}

// Trap is a generated trap. OwnerIndex is the room, corridor or door
// index; chest traps use -1 and are located by X, Y.
type Trap struct {
	Kind       OwnerKind
	OwnerIndex int
	X, Y       int
	NoticeDC   int
	DisarmDC   int
	Trigger    string
	Effect     string
}

// Description is the note text for the trap.
func (t *Trap) Description() string {
	return fmt.Sprintf("%s Trap (find DC:%d, disarm DC:%d)\nTrigger: %s\n%s",
		t.Kind, t.NoticeDC, t.DisarmDC, t.Trigger, t.Effect)
}

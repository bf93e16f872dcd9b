package dungeon

// LightKind is the type of a light source
type LightKind int

const (
	LightWallSconce LightKind = iota
	LightGlowingMushrooms
)

func (k LightKind) String() string {
	switch k {
	case LightWallSconce:
		return "wall_sconce"
	case LightGlowingMushrooms:
		return "glowing_mushrooms"
	default:
		return "unknown"
	}
}

// LightSource lights a room or corridor. The unused owner index is -1.
type LightSource struct {
	Kind     LightKind
	X, Y     int
	Room     int
	Corridor int
}

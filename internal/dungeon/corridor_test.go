package dungeon

import (
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRoomFloor places 3x3 rooms centred on (4,3) and (9,8).
func twoRoomFloor(t *testing.T) (*Generator, *Floor) {
	t.Helper()
	g := NewGenerator(config.DefaultConfig(), nil, rand.New(rand.NewSource(1)))
	f := NewFloor(16, 12)
	f.addRoom(newRoom(RoomRect, 4, 3, 1, 1))
	f.addRoom(newRoom(RoomRect, 9, 8, 1, 1))
	require.True(t, g.roomValid(f.Rooms[1], f.Rooms[:1], -1))
	return g, f
}

func TestWalkHorizontalFirst(t *testing.T) {
	c := &Corridor{X1: 0, Y1: 0, X2: 2, Y2: 2, Width: 1, HorizontalFirst: true}
	assert.Equal(t, []Point{{1, 0}, {2, 0}, {2, 1}, {2, 2}}, c.Walk(0))

	c.HorizontalFirst = false
	assert.Equal(t, []Point{{0, 1}, {0, 2}, {1, 2}, {2, 2}}, c.Walk(0))
}

func TestWalkParallelTracks(t *testing.T) {
	c := &Corridor{X1: 0, Y1: 0, X2: 4, Y2: 4, Width: 2, HorizontalFirst: true}

	primary := c.Walk(1)
	all := c.Walk(0)
	require.Greater(t, len(all), len(primary))
	assert.Equal(t, primary, all[:len(primary)])

	// the second track starts one step up and turns one column early
	second := all[len(primary):]
	assert.Equal(t, Point{1, 1}, second[0])
	assert.Equal(t, Point{3, 4}, second[len(second)-1])
	for _, p := range second {
		assert.LessOrEqual(t, p.X, 3)
	}
}

func TestCorridorElbowIsWallBuffered(t *testing.T) {
	g, f := twoRoomFloor(t)
	c := newCorridor(CorridorDungeon, f.Rooms[0], f.Rooms[1], true, 1)
	require.True(t, g.corridorValid(f, c))
	f.addCorridor(c)

	path := append([]Point{{c.X1, c.Y1}}, c.Walk(1)...)
	var elbows []Point
	for i := 1; i < len(path)-1; i++ {
		in := Point{path[i].X - path[i-1].X, path[i].Y - path[i-1].Y}
		out := Point{path[i+1].X - path[i].X, path[i+1].Y - path[i].Y}
		if in != out {
			elbows = append(elbows, path[i])
		}
	}
	require.Equal(t, []Point{{9, 3}}, elbows)
	assert.Equal(t, TileCorridorFloor, f.Tile(9, 3).Kind)

	for _, p := range []Point{{8, 2}, {9, 2}, {10, 2}, {10, 3}, {10, 4}, {8, 4}} {
		assert.True(t, f.Tile(p.X, p.Y).IsWall(), "expected wall at %v", p)
	}
	assert.Equal(t, TileCorridorFloor, f.Tile(8, 3).Kind)
	assert.Equal(t, TileCorridorFloor, f.Tile(9, 4).Kind)

	assert.True(t, f.RoomNeighbors[0].Has(1))
	assert.True(t, f.Rooms[0].Corridors.Has(c.Index))
	assert.True(t, f.Rooms[1].Corridors.Has(c.Index))
}

func TestCorridorRejectsUnbufferedElbow(t *testing.T) {
	g, f := twoRoomFloor(t)
	// something already carved diagonally off the elbow
	f.setTile(10, 2, TileCorridorFloor, -1, 7)

	c := newCorridor(CorridorDungeon, f.Rooms[0], f.Rooms[1], true, 1)
	assert.False(t, g.corridorValid(f, c))
}

func TestCorridorRejectsIntersection(t *testing.T) {
	g, f := twoRoomFloor(t)
	f.setTile(7, 3, TileCorridorFloor, -1, 7)

	c := newCorridor(CorridorDungeon, f.Rooms[0], f.Rooms[1], true, 1)
	assert.False(t, g.corridorValid(f, c))

	g.cfg.AllowCorridorIntersection = true
	assert.True(t, g.corridorValid(f, c))
}

func TestCorridorNontrivialAndMiddle(t *testing.T) {
	_, f := twoRoomFloor(t)
	c := newCorridor(CorridorDungeon, f.Rooms[0], f.Rooms[1], true, 1)
	f.addCorridor(c)

	// (6,3)..(9,3) then (9,4)..(9,6) are carved
	assert.Len(t, c.TileCoords(f, true), 7)
	assert.True(t, c.IsNontrivial(f))
	mid, ok := c.MiddleCoords(f)
	require.True(t, ok)
	assert.Equal(t, Point{9, 4}, mid)
	assert.False(t, c.FullyEnclosedByDoors())
}

func TestCorridorLight(t *testing.T) {
	g := NewGenerator(config.DefaultConfig(), nil, rand.New(rand.NewSource(3)))
	assert.Equal(t, config.LightDim, g.corridorLight(config.LightBright, config.LightDark))
	assert.Equal(t, config.LightDim, g.corridorLight(config.LightDark, config.LightBright))
	for i := 0; i < 20; i++ {
		l := g.corridorLight(config.LightBright, config.LightDim)
		assert.Contains(t, []string{config.LightBright, config.LightDim}, l)
	}
}

func TestDoorCoordsSearchesEveryTrack(t *testing.T) {
	f := NewFloor(10, 6)
	c := &Corridor{X1: 1, Y1: 2, X2: 8, Y2: 2, Width: 2, HorizontalFirst: true}
	for _, p := range c.Walk(0) {
		f.setTile(p.X, p.Y, TileCorridorFloor, -1, 0)
	}
	door := func(x, y, ix int) {
		f.setTile(x, y, TileDoor, -1, 0).DoorIndex = ix
	}
	// a two-wide door on both tracks, and one only on the second track
	door(3, 2, 0)
	door(3, 3, 0)
	door(5, 3, 1)

	assert.Equal(t, []Point{{3, 2}, {5, 3}}, c.DoorCoords(f))
	for _, p := range c.Walk(1) {
		assert.NotEqual(t, Point{5, 3}, p)
	}
}

package dungeon

import (
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/cavernforge/internal/catalog"
	"github.com/lawnchairsociety/cavernforge/internal/encounter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneRoomFloor() (*Floor, *Room) {
	f := NewFloor(11, 11)
	f.addRoom(newRoom(RoomRect, 5, 5, 1, 1))
	return f, f.Rooms[0]
}

func TestPickTileAvoidWall(t *testing.T) {
	f, room := oneRoomFloor()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		p, ok := f.PickTile(rng, room, PickOptions{Unoccupied: true, AvoidWall: true})
		require.True(t, ok)
		assert.Equal(t, Point{5, 5}, p)
	}
}

func TestPickTilePreferWall(t *testing.T) {
	f, room := oneRoomFloor()
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		p, ok := f.PickTile(rng, room, PickOptions{Unoccupied: true, PreferWall: true})
		require.True(t, ok)
		assert.NotEqual(t, Point{5, 5}, p)
	}
}

func TestPickTileLargeFootprint(t *testing.T) {
	f, room := oneRoomFloor()
	rng := rand.New(rand.NewSource(3))
	p, ok := f.PickTile(rng, room, PickOptions{Unoccupied: true, Diameter: 3})
	require.True(t, ok)
	assert.Equal(t, Point{5, 5}, p)

	// a 2x2 grows right and up, so only the lower-left quarter can anchor it
	for i := 0; i < 10; i++ {
		p, ok := f.PickTile(rng, room, PickOptions{Unoccupied: true, Diameter: 2})
		require.True(t, ok)
		assert.LessOrEqual(t, p.X, 5)
		assert.LessOrEqual(t, p.Y, 5)
	}
}

func TestPickTileSkipsOccupied(t *testing.T) {
	f, room := oneRoomFloor()
	m := &encounter.Monster{Info: &catalog.MonsterInfo{Name: "Ghoul", Diameter: 1}, X: 5, Y: 5, RoomIndex: 0}
	f.addMonster(m)
	assert.Same(t, m, f.MonsterAt(5, 5))

	rng := rand.New(rand.NewSource(4))
	_, ok := f.PickTile(rng, room, PickOptions{Unoccupied: true, AvoidWall: true})
	assert.False(t, ok)

	// occupancy only matters when asked for
	p, ok := f.PickTile(rng, room, PickOptions{AvoidWall: true})
	require.True(t, ok)
	assert.Equal(t, Point{5, 5}, p)
}

func TestPickTileSkipsReservedAndFeatures(t *testing.T) {
	f, room := oneRoomFloor()
	f.reserved.Put(Point{5, 5})
	rng := rand.New(rand.NewSource(5))
	_, ok := f.PickTile(rng, room, PickOptions{Unoccupied: true, AvoidWall: true})
	assert.False(t, ok)

	f, room = oneRoomFloor()
	f.setTile(5, 5, TileBookshelf, room.Index, -1)
	_, ok = f.PickTile(rng, room, PickOptions{AvoidWall: true})
	assert.False(t, ok)
}

func TestFootprint(t *testing.T) {
	assert.Len(t, footprint(Point{1, 1}, 1), 1)
	assert.ElementsMatch(t, []Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}}, footprint(Point{1, 1}, 2))
	assert.Len(t, footprint(Point{1, 1}, 3), 9)
}

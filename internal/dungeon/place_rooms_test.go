package dungeon

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/cavernforge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallRoomConfig() *config.DungeonConfig {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	cfg.NumRooms = 3
	cfg.MinRoomRadius = 1
	return cfg
}

func TestPlaceRoomsSmallGrid(t *testing.T) {
	placed := 0
	for seed := int64(1); seed <= 40; seed++ {
		g := NewGenerator(smallRoomConfig(), nil, rand.New(rand.NewSource(seed)))
		f := g.newFloor()
		if err := g.placeRooms(f); err != nil {
			require.True(t, errors.Is(err, ErrRoomPlacement), "seed %d: %v", seed, err)
			continue
		}
		placed++

		require.Len(t, f.Rooms, 3, "seed %d", seed)
		for i, r := range f.Rooms {
			assert.Equal(t, i, r.Index)
			assert.True(t, r.X >= 2 && r.X <= 7, "seed %d room %d x=%d", seed, i, r.X)
			assert.True(t, r.Y >= 2 && r.Y <= 7, "seed %d room %d y=%d", seed, i, r.Y)
			assert.True(t, g.roomValid(r, f.Rooms, i), "seed %d room %d overlaps", seed, i)
			assert.Contains(t, config.LightLevels(), r.Light)
		}
		// top to bottom, then left to right
		for i := 1; i < len(f.Rooms); i++ {
			a, b := f.Rooms[i-1], f.Rooms[i]
			assert.True(t, a.Y > b.Y || (a.Y == b.Y && a.X < b.X), "seed %d: rooms out of order", seed)
		}
	}
	assert.Positive(t, placed, "no seed placed all rooms")
}

func TestPlaceRoomsTooDense(t *testing.T) {
	cfg := smallRoomConfig()
	cfg.NumRooms = 20
	g := NewGenerator(cfg, nil, rand.New(rand.NewSource(1)))
	err := g.placeRooms(g.newFloor())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoomPlacement)
	assert.True(t, IsRetriable(err))
}

func TestRoomValid(t *testing.T) {
	g := NewGenerator(smallRoomConfig(), nil, rand.New(rand.NewSource(1)))
	a := newRoom(RoomRect, 3, 3, 1, 1)

	assert.True(t, g.roomValid(a, nil, -1))
	assert.False(t, g.roomValid(newRoom(RoomRect, 1, 3, 1, 1), nil, -1), "touches the border")
	assert.False(t, g.roomValid(newRoom(RoomRect, 8, 3, 1, 1), nil, -1), "touches the border")

	// centres must be more than rw1+rw2+1 apart on some axis
	assert.False(t, g.roomValid(newRoom(RoomRect, 6, 3, 1, 1), []*Room{a}, -1))
	assert.True(t, g.roomValid(newRoom(RoomRect, 7, 3, 1, 1), []*Room{a}, -1))
	assert.True(t, g.roomValid(newRoom(RoomRect, 6, 3, 1, 1), []*Room{a}, 0))
}

func TestErodeCavernStaysInside(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 15, 15
	g := NewGenerator(cfg, nil, rand.New(rand.NewSource(9)))
	f := g.newFloor()
	f.addRoom(newRoom(RoomCavernous, 7, 7, 2, 2))
	before := f.Rooms[0].TotalSpace()

	require.NoError(t, g.erodeCaverns(f))
	room := f.Rooms[0]
	assert.GreaterOrEqual(t, room.TotalSpace(), before)
	for _, p := range room.TileCoords() {
		assert.True(t, p.X >= 1 && p.X <= 13 && p.Y >= 1 && p.Y <= 13, "eroded onto the border at %v", p)
		assert.Equal(t, TileRoomFloor, f.Tile(p.X, p.Y).Kind)
		assert.Equal(t, 0, f.Tile(p.X, p.Y).RoomIndex)
	}
}

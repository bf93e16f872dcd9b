// Package fog merges per-tile visibility bits into rectangular fog regions.
// Each region hides tiles that belong to the same rooms and corridors, so
// revealing a room or corridor reveals exactly its regions.
package fog

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// maxExpansions bounds how often a single region may grow.
const maxExpansions = 500

type point struct{ x, y int }

// Bit is a single fogged tile and the rooms and corridors it belongs to.
type Bit struct {
	X, Y      int
	Rooms     mapset.Set[int]
	Corridors mapset.Set[int]
	Priority  int
}

// NewBit returns an unowned bit at x, y.
func NewBit(x, y, priority int) *Bit {
	return &Bit{
		X:         x,
		Y:         y,
		Rooms:     mapset.New[int](),
		Corridors: mapset.New[int](),
		Priority:  priority,
	}
}

// Signature identifies the set of owners; bits only merge with bits of the
// same signature.
func (b *Bit) Signature() string {
	var sb strings.Builder
	sb.WriteString("r")
	for i, ix := range sortedKeys(b.Rooms) {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(ix))
	}
	sb.WriteString("|c")
	for i, ix := range sortedKeys(b.Corridors) {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(ix))
	}
	return sb.String()
}

// Region is an inclusive rectangle of fog.
type Region struct {
	X1, Y1, X2, Y2 int
	Rooms          []int
	Corridors      []int
	Priority       int
}

// Width in tiles.
func (r Region) Width() int { return r.X2 - r.X1 + 1 }

// Height in tiles.
func (r Region) Height() int { return r.Y2 - r.Y1 + 1 }

// Area in tiles.
func (r Region) Area() int { return r.Width() * r.Height() }

// Contains reports whether x, y lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Collector accumulates bits by coordinate. Bits added twice at the same
// coordinate are combined: owners are unioned and the highest priority
// wins.
type Collector struct {
	bits  map[point]*Bit
	order []point
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{bits: make(map[point]*Bit)}
}

func (c *Collector) bit(x, y, priority int) *Bit {
	p := point{x, y}
	b, ok := c.bits[p]
	if !ok {
		b = NewBit(x, y, priority)
		c.bits[p] = b
		c.order = append(c.order, p)
	}
	b.Priority = max(b.Priority, priority)
	return b
}

// AddTile fogs x, y without giving it an owner.
func (c *Collector) AddTile(x, y int) {
	c.bit(x, y, 1)
}

// AddRoom marks x, y as belonging to room.
func (c *Collector) AddRoom(x, y, room, priority int) {
	c.bit(x, y, priority).Rooms.Put(room)
}

// AddCorridor marks x, y as belonging to corridor.
func (c *Collector) AddCorridor(x, y, corridor int) {
	c.bit(x, y, 1).Corridors.Put(corridor)
}

// Len is the number of distinct coordinates collected.
func (c *Collector) Len() int { return len(c.order) }

// Bits returns the collected bits in insertion order.
func (c *Collector) Bits() []*Bit {
	out := make([]*Bit, 0, len(c.order))
	for _, p := range c.order {
		out = append(out, c.bits[p])
	}
	return out
}

// Merge greedily combines bits into rectangles. Bits are grouped by
// signature; within a group the highest-priority bit left seeds a region,
// which then repeatedly annexes the longest full edge strip of unclaimed
// bits in a random direction. The regions of a group never overlap and
// together cover exactly the group's bits.
func Merge(rng *rand.Rand, bits []*Bit) []Region {
	type group struct {
		sig   string
		bits  map[point]*Bit
		order []point
	}
	groups := make(map[string]*group)
	var sigs []string
	for _, b := range bits {
		sig := b.Signature()
		g, ok := groups[sig]
		if !ok {
			g = &group{sig: sig, bits: make(map[point]*Bit)}
			groups[sig] = g
			sigs = append(sigs, sig)
		}
		p := point{b.X, b.Y}
		if _, dup := g.bits[p]; !dup {
			g.order = append(g.order, p)
		}
		g.bits[p] = b
	}

	var out []Region
	for _, sig := range sigs {
		g := groups[sig]
		for len(g.bits) > 0 {
			var seed *Bit
			for _, p := range g.order {
				if b, ok := g.bits[p]; ok && (seed == nil || b.Priority > seed.Priority) {
					seed = b
				}
			}
			delete(g.bits, point{seed.X, seed.Y})
			r := Region{
				X1: seed.X, Y1: seed.Y, X2: seed.X, Y2: seed.Y,
				Rooms:     sortedKeys(seed.Rooms),
				Corridors: sortedKeys(seed.Corridors),
				Priority:  seed.Priority,
			}
			for i := 0; i < maxExpansions; i++ {
				annex := bestStrip(rng, r, g.bits)
				if len(annex) == 0 {
					break
				}
				for _, p := range annex {
					delete(g.bits, p)
					r.X1, r.X2 = min(r.X1, p.x), max(r.X2, p.x)
					r.Y1, r.Y2 = min(r.Y1, p.y), max(r.Y2, p.y)
				}
			}
			out = append(out, r)
		}
	}
	return out
}

// bestStrip returns the longest edge strip next to r whose cells are all
// still unclaimed, trying the four directions in random order.
func bestStrip(rng *rand.Rand, r Region, free map[point]*Bit) []point {
	dirs := []point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	var best []point
	for _, d := range dirs {
		var strip []point
		switch {
		case d.x < 0:
			for y := r.Y1; y <= r.Y2; y++ {
				strip = append(strip, point{r.X1 - 1, y})
			}
		case d.x > 0:
			for y := r.Y1; y <= r.Y2; y++ {
				strip = append(strip, point{r.X2 + 1, y})
			}
		case d.y < 0:
			for x := r.X1; x <= r.X2; x++ {
				strip = append(strip, point{x, r.Y1 - 1})
			}
		default:
			for x := r.X1; x <= r.X2; x++ {
				strip = append(strip, point{x, r.Y2 + 1})
			}
		}
		full := true
		for _, p := range strip {
			if _, ok := free[p]; !ok {
				full = false
				break
			}
		}
		if full && len(strip) > len(best) {
			best = strip
		}
	}
	return best
}

func sortedKeys(s mapset.Set[int]) []int {
	keys := make([]int, 0, s.Size())
	s.Each(func(k int) {
		keys = append(keys, k)
	})
	sort.Ints(keys)
	return keys
}

package dungeon

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Graph is an undirected adjacency map of room indices.
type Graph map[int]mapset.Set[int]

// BFSLayers returns the breadth-first layers around start: layer 0 is start
// itself and layer i holds the nodes i hops away. Layers past maxDepth are
// not explored; a negative maxDepth returns nil and maxDepth 0 means no
// limit.
func BFSLayers(g Graph, start, maxDepth int) [][]int {
	if maxDepth < 0 {
		return nil
	}
	layers := [][]int{{start}}
	seen := mapset.New[int]()
	seen.Put(start)
	for maxDepth == 0 || len(layers) <= maxDepth {
		var next []int
		for _, n := range layers[len(layers)-1] {
			neighbors, ok := g[n]
			if !ok {
				continue
			}
			for _, m := range sortedInts(neighbors) {
				if seen.Has(m) {
					continue
				}
				seen.Put(m)
				next = append(next, m)
			}
		}
		if len(next) == 0 {
			break
		}
		layers = append(layers, next)
	}
	return layers
}

// Reachable returns every node connected to start, start included.
func Reachable(g Graph, start int) mapset.Set[int] {
	seen := mapset.New[int]()
	stack := []int{start}
	seen.Put(start)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if neighbors, ok := g[n]; ok {
			neighbors.Each(func(m int) {
				if !seen.Has(m) {
					seen.Put(m)
					stack = append(stack, m)
				}
			})
		}
	}
	return seen
}

// HopDistance is the number of corridors between two rooms, or -1 when
// they are not connected.
func HopDistance(g Graph, a, b int) int {
	for depth, layer := range BFSLayers(g, a, 0) {
		for _, n := range layer {
			if n == b {
				return depth
			}
		}
	}
	return -1
}

func sortedInts(s mapset.Set[int]) []int {
	out := make([]int, 0, s.Size())
	s.Each(func(n int) {
		out = append(out, n)
	})
	sort.Ints(out)
	return out
}

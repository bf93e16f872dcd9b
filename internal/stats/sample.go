package stats

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrSampleSize is returned when more samples are requested than exist.
var ErrSampleSize = errors.New("stats: sample larger than population")

// Choice returns an index drawn with probability proportional to weights,
// or -1 if no weight is positive. Negative weights count as zero.
func Choice(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	target := rng.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return i
		}
		target -= w
	}
	return last
}

// WeightTree is a Fenwick tree over item weights supporting weighted picks
// with removal in O(log n).
type WeightTree struct {
	tree    []float64 // 1-based partial sums
	weights []float64
	total   float64
	left    int // items with positive weight
	topBit  int
}

// NewWeightTree builds a tree over weights. A nil slice of length n should be
// passed as Uniform(n).
func NewWeightTree(weights []float64) *WeightTree {
	n := len(weights)
	t := &WeightTree{
		tree:    make([]float64, n+1),
		weights: make([]float64, n),
	}
	for i, w := range weights {
		if w > 0 {
			t.weights[i] = w
			t.total += w
			t.left++
		}
		t.tree[i+1] += t.weights[i]
		if parent := i + 1 + (i+1)&-(i+1); parent <= n {
			t.tree[parent] += t.tree[i+1]
		}
	}
	for t.topBit = 1; t.topBit*2 <= n; t.topBit *= 2 {
	}
	return t
}

// Uniform returns n equal weights.
func Uniform(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// Len is the number of items that can still be picked.
func (t *WeightTree) Len() int { return t.left }

// Total is the remaining weight.
func (t *WeightTree) Total() float64 { return t.total }

func (t *WeightTree) add(i int, delta float64) {
	for j := i + 1; j < len(t.tree); j += j & -j {
		t.tree[j] += delta
	}
}

// find returns the item whose cumulative weight range contains target
func (t *WeightTree) find(target float64) int {
	pos := 0
	for step := t.topBit; step > 0; step >>= 1 {
		if next := pos + step; next < len(t.tree) && t.tree[next] <= target {
			pos = next
			target -= t.tree[next]
		}
	}
	// Rounding can walk past the last positive weight
	for pos >= len(t.weights) || t.weights[pos] <= 0 {
		pos--
		if pos < 0 {
			return -1
		}
	}
	return pos
}

// Pop picks an item by weight and removes it. ok is false once every
// positive weight has been taken.
func (t *WeightTree) Pop(rng *rand.Rand) (idx int, ok bool) {
	if t.left == 0 {
		return -1, false
	}
	idx = t.find(rng.Float64() * t.total)
	if idx < 0 {
		return -1, false
	}
	w := t.weights[idx]
	t.add(idx, -w)
	t.weights[idx] = 0
	t.total -= w
	t.left--
	if t.left == 0 {
		t.total = 0
	}
	return idx, true
}

// Samples draws k distinct indices without replacement, each pick
// proportional to the remaining weights. Zero-weight items are never drawn,
// so fewer than k indices come back when too few weights are positive.
func Samples(rng *rand.Rand, weights []float64, k int) ([]int, error) {
	if k <= 0 {
		return nil, nil
	}
	if k > len(weights) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSampleSize, k, len(weights))
	}
	if k == 1 {
		if i := Choice(rng, weights); i >= 0 {
			return []int{i}, nil
		}
		return nil, nil
	}
	t := NewWeightTree(weights)
	out := make([]int, 0, k)
	for len(out) < k {
		idx, ok := t.Pop(rng)
		if !ok {
			break
		}
		out = append(out, idx)
	}
	return out, nil
}

// Shuffled returns a random permutation of items, leaving items untouched.
func Shuffled[T any](rng *rand.Rand, items []T) []T {
	out := append([]T(nil), items...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

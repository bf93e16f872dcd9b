package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, -1, Choice(rng, nil))
	assert.Equal(t, -1, Choice(rng, []float64{0, 0, -1}))

	for i := 0; i < 200; i++ {
		assert.Equal(t, 2, Choice(rng, []float64{0, 0, 3, 0}))
	}

	counts := make([]int, 3)
	for i := 0; i < 6000; i++ {
		counts[Choice(rng, []float64{1, 2, 3})]++
	}
	assert.InDelta(t, 1000, counts[0], 200)
	assert.InDelta(t, 2000, counts[1], 250)
	assert.InDelta(t, 3000, counts[2], 250)
}

func TestSamplesDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	weights := []float64{5, 1, 1, 1, 1, 1, 1, 9, 0.5, 2, 3}

	for trial := 0; trial < 100; trial++ {
		got, err := Samples(rng, weights, len(weights))
		require.NoError(t, err)
		require.Len(t, got, len(weights))
		seen := map[int]bool{}
		for _, idx := range got {
			assert.False(t, seen[idx], "index %d drawn twice", idx)
			seen[idx] = true
		}
	}
}

func TestSamplesSkipsZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	got, err := Samples(rng, []float64{0, 4, 0, 1, 0}, 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, got)
}

func TestSamplesTooMany(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	_, err := Samples(rng, Uniform(3), 4)
	assert.ErrorIs(t, err, ErrSampleSize)

	got, err := Samples(rng, Uniform(3), 0)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSamplesFavourHeavyItems(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	first := 0
	for i := 0; i < 1000; i++ {
		got, err := Samples(rng, []float64{1, 1, 1, 97}, 2)
		require.NoError(t, err)
		if got[0] == 3 || got[1] == 3 {
			first++
		}
	}
	assert.Greater(t, first, 950)
}

func TestWeightTreePop(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	tree := NewWeightTree([]float64{1, 2, 3, 4, 5, 6, 7})
	assert.Equal(t, 7, tree.Len())
	assert.InDelta(t, 28, tree.Total(), 1e-9)

	for tree.Len() > 0 {
		_, ok := tree.Pop(rng)
		require.True(t, ok)
	}
	_, ok := tree.Pop(rng)
	assert.False(t, ok)
	assert.Zero(t, tree.Total())
}

func TestShuffled(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := []int{1, 2, 3, 4, 5}
	out := Shuffled(rng, items)
	assert.ElementsMatch(t, items, out)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrides(t *testing.T) {
	t.Parallel()
	shape := Cell{3, 4, 5}
	assert.Equal(t, Cell{1, 3, 12}, Strides(3, shape))
	assert.Equal(t, Cell{1}, Strides(1, shape))
	assert.Equal(t, 60, Volume(3, shape))
}

func TestLinearRoundTrip(t *testing.T) {
	t.Parallel()
	shape := Cell{3, 4, 2, 2}
	strides := Strides(4, shape)
	n := Volume(4, shape)
	for k := 0; k < n; k++ {
		idx := FromLinear(4, k, shape)
		require.Equal(t, k, ToLinear(4, idx, shape))
		dot := 0
		for i := 0; i < 4; i++ {
			dot += idx[i] * strides[i]
		}
		require.Equal(t, k, dot)
	}
	assert.Equal(t, Cell{1, 0, 0, 0}, FromLinear(4, 1, shape))
	assert.Equal(t, Cell{0, 1, 0, 0}, FromLinear(4, 3, shape))
}

func TestNeighborhood(t *testing.T) {
	t.Parallel()
	for dims, want := range map[int]int{1: 3, 2: 9, 3: 27, 4: 81} {
		offs := Neighborhood(dims)
		assert.Len(t, offs, want, "dims %d", dims)

		seen := make(map[Cell]bool)
		for _, o := range offs {
			assert.False(t, seen[o], "duplicate offset %v", o)
			seen[o] = true
			for i := dims; i < MaxDim; i++ {
				assert.Zero(t, o[i])
			}
		}
		assert.True(t, seen[Cell{}], "zero offset missing for dims %d", dims)
	}

	two := Neighborhood(2)
	assert.Equal(t, Cell{-1, -1}, two[0])
	assert.Equal(t, Cell{0, -1}, two[1])
	assert.Equal(t, Cell{1, 1}, two[8])
}

func TestCheckDims_Panics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { Strides(0, Cell{}) })
	assert.Panics(t, func() { Neighborhood(MaxDim + 1) })
}

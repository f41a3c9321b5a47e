package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachLatticePoint(t *testing.T) {
	t.Parallel()

	var got []Vec2
	ForEachLatticePoint(Vec2{0.5, 0.25}, Vec2{1, 0.5}, Vec2{2, 2}, Vec2{4, 4}, func(p Vec2) {
		got = append(got, p)
	})

	// x in {2.5, 3.5}, y in {2.25, 2.75, 3.25, 3.75}, axis 0 fastest.
	want := []Vec2{
		{2.5, 2.25}, {3.5, 2.25},
		{2.5, 2.75}, {3.5, 2.75},
		{2.5, 3.25}, {3.5, 3.25},
		{2.5, 3.75}, {3.5, 3.75},
	}
	assert.Equal(t, want, got)
}

func TestForEachLatticePoint_HalfOpen(t *testing.T) {
	t.Parallel()

	var got []Vec1
	ForEachLatticePoint(Vec1{0}, Vec1{1}, Vec1{-2}, Vec1{0}, func(p Vec1) {
		got = append(got, p)
	})
	assert.Equal(t, []Vec1{{-2}, {-1}}, got)
}

func TestForEachLatticePoint_CoarserThanRect(t *testing.T) {
	t.Parallel()

	n := 0
	ForEachLatticePoint(Vec2{0, 0}, Vec2{10, 10}, Vec2{1, 1}, Vec2{3, 3}, func(Vec2) { n++ })
	assert.Zero(t, n)

	assert.Panics(t, func() {
		ForEachLatticePoint(Vec2{}, Vec2{1, 0}, Vec2{}, Vec2{1, 1}, func(Vec2) {})
	})
}

func TestForEachLatticePoint_AdjacentBoxes(t *testing.T) {
	t.Parallel()

	// 0.1 does not divide the box edges exactly; neighbouring boxes must
	// still not emit near-duplicate points.
	const size = 0.3
	var got []float64
	for c := range 10 {
		lo, hi := float64(c)*size, float64(c+1)*size
		ForEachLatticePoint(Vec1{0}, Vec1{0.1}, Vec1{lo}, Vec1{hi}, func(p Vec1) {
			got = append(got, p[0])
		})
	}

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i]-got[i-1], 0.05, "points %d and %d", i-1, i)
	}
	assert.Len(t, got, 30)
	assert.InDelta(t, 0.0, got[0], 1e-12)
	assert.Less(t, got[len(got)-1], 3.0)
}

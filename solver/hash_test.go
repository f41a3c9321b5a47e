package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/prism/geom"
)

func TestSpatialHash_Neighbors(t *testing.T) {
	t.Parallel()
	h := newSpatialHash[geom.Vec2](1)
	pts := []geom.Vec2{
		{0.5, 0.5},  // 0: self
		{0.9, 0.1},  // 1: same cell
		{1.5, 1.5},  // 2: diagonal neighbour
		{-0.5, 0.2}, // 3: left neighbour
		{2.5, 0.5},  // 4: two cells away
		{0.5, -1.5}, // 5: two cells below
	}
	h.build(pts)

	var got []int
	h.forEachNeighbor(pts[0], 0, func(j int) { got = append(got, j) })
	assert.ElementsMatch(t, []int{1, 2, 3}, got)

	// Rebuilding forgets old positions.
	h.build(pts[:1])
	got = got[:0]
	h.forEachNeighbor(pts[0], 0, func(j int) { got = append(got, j) })
	assert.Empty(t, got)
}

func TestSpatialHash_ThreeDimensions(t *testing.T) {
	t.Parallel()
	h := newSpatialHash[geom.Vec3](2)
	assert.Len(t, h.offsets, 27)

	h.build([]geom.Vec3{{1, 1, 1}, {-1, -1, -1}, {3, 3, 3}, {5, 1, 1}})
	var got []int
	h.forEachNeighbor(geom.Vec3{1, 1, 1}, 0, func(j int) { got = append(got, j) })
	assert.ElementsMatch(t, []int{1, 2}, got)
}

package solver

import "github.com/banshee-data/prism/geom"

// EstimatedPointsPerCell sizes the hash map on rebuild.
const EstimatedPointsPerCell = 2

// spatialHash maps a cell to the indices of the points currently inside it.
// Contents are only valid between a build and the next position update.
type spatialHash[V geom.Vector] struct {
	cellSize float64
	cells    map[geom.Cell][]int32
	offsets  []geom.Cell // 3^N neighbourhood, zero offset included
}

func newSpatialHash[V geom.Vector](cellSize float64) *spatialHash[V] {
	return &spatialHash[V]{
		cellSize: cellSize,
		cells:    make(map[geom.Cell][]int32),
		offsets:  geom.Neighborhood(geom.Dims[V]()),
	}
}

// build discards the previous contents and indexes points by cell.
func (h *spatialHash[V]) build(points []V) {
	h.cells = make(map[geom.Cell][]int32, len(points)/EstimatedPointsPerCell+1)
	for i, p := range points {
		c := geom.CellOf(p, h.cellSize)
		h.cells[c] = append(h.cells[c], int32(i))
	}
}

// forEachNeighbor calls fn with the index of every point other than self
// located in the 3^N cells around p. Cells are visited in offset order and
// points within a cell in insertion order, so iteration is deterministic.
func (h *spatialHash[V]) forEachNeighbor(p V, self int, fn func(j int)) {
	base := geom.CellOf(p, h.cellSize)
	for _, off := range h.offsets {
		for _, j := range h.cells[base.Add(off)] {
			if int(j) != self {
				fn(int(j))
			}
		}
	}
}

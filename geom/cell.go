package geom

import "math"

// Cell is an integer grid coordinate. Only the first N entries are used for
// an N-dimensional grid; the remainder must stay zero so that equal cells
// compare equal.
type Cell [MaxDim]int

// Add returns c+o.
func (c Cell) Add(o Cell) Cell {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

// Sub returns c-o.
func (c Cell) Sub(o Cell) Cell {
	for i := range c {
		c[i] -= o[i]
	}
	return c
}

// CellOf returns the cell of side size containing p, i.e. floor(p/size).
func CellOf[V Vector](p V, size float64) Cell {
	var c Cell
	for i := range len(p) {
		c[i] = int(math.Floor(p[i] / size))
	}
	return c
}

// CeilCell returns ceil(p/size) per axis.
func CeilCell[V Vector](p V, size float64) Cell {
	var c Cell
	for i := range len(p) {
		c[i] = int(math.Ceil(p[i] / size))
	}
	return c
}

// CellVector converts the first N entries of c to a vector.
func CellVector[V Vector](c Cell) V {
	var v V
	for i := range len(v) {
		v[i] = float64(c[i])
	}
	return v
}

// CellOrigin returns the minimum corner of cell c for cells of side size.
func CellOrigin[V Vector](c Cell, size float64) V {
	return Scale(CellVector[V](c), size)
}

// CellCenter returns the centre of cell c for cells of side size.
func CellCenter[V Vector](c Cell, size float64) V {
	return Scale(Add(CellVector[V](c), Repeat[V](0.5)), size)
}

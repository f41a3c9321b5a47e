package grid

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/banshee-data/prism/field"
	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/internal/monitoring"
)

// MaxCells caps the number of cells a single grid may allocate.
const MaxCells = 1 << 28

// bandScale converts a centre distance into cell units for the three-way
// band test. It is √2 for every dimension: exact for the half-diagonal of a
// 2D cell, slightly too small above that, so in 3D and higher a cell marked
// Inside can poke a little outside the region.
const bandScale = math.Sqrt2

var (
	// ErrInvalidCellSize is returned when the cell size is not a positive finite number.
	ErrInvalidCellSize = errors.New("grid: cell size must be positive")
	// ErrInvalidBounds is returned when the field reports an empty or inverted bounding box.
	ErrInvalidBounds = errors.New("grid: invalid field bounds")
	// ErrTooManyCells is returned when the requested resolution exceeds MaxCells.
	ErrTooManyCells = errors.New("grid: too many cells")
)

// Class is the classification of a grid cell.
type Class uint8

const (
	// Outside cells lie entirely outside the region.
	Outside Class = iota
	// Inside cells lie entirely inside the region.
	Inside
	// Border cells may be crossed by the region boundary.
	Border
)

func (c Class) String() string {
	switch c {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case Border:
		return "border"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Grid is an immutable classification of the cells covering a field's
// bounding box. Cell coordinates are absolute: cell c spans
// [c*size, (c+1)*size) on every axis.
type Grid[V geom.Vector] struct {
	field    field.Field[V]
	cellSize float64
	offset   geom.Cell
	cells    *Array[Class]
	inside   []geom.Cell
	border   []geom.Cell
}

// New samples f at the centre of every cell of side cellSize covering its
// bounding box and classifies each cell.
func New[V geom.Vector](f field.Field[V], cellSize float64) (*Grid[V], error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCellSize, cellSize)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: nil field", ErrInvalidBounds)
	}
	lo, hi := f.MinBound(), f.MaxBound()
	if err := field.ValidateBounds(lo, hi); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBounds, err)
	}

	dims := geom.Dims[V]()
	offset := geom.CellOf(lo, cellSize)
	shape := geom.CeilCell(hi, cellSize).Sub(offset)
	total := 1
	for i := 0; i < dims; i++ {
		if shape[i] <= 0 {
			return nil, fmt.Errorf("%w: empty extent on axis %d", ErrInvalidBounds, i)
		}
		if total > MaxCells/shape[i] {
			return nil, fmt.Errorf("%w: shape %v at cell size %v", ErrTooManyCells, shape[:dims], cellSize)
		}
		total *= shape[i]
	}

	g := &Grid[V]{
		field:    f,
		cellSize: cellSize,
		offset:   offset,
	}
	g.cells = NewArray(dims, shape, func(idx geom.Cell) Class {
		c := idx.Add(offset)
		class := classify(f.Distance(geom.CellCenter[V](c, cellSize)), cellSize)
		switch class {
		case Inside:
			g.inside = append(g.inside, c)
		case Border:
			g.border = append(g.border, c)
		}
		return class
	})

	monitoring.Debugf("grid: %d cells (%d inside, %d border) at cell size %g",
		total, len(g.inside), len(g.border), cellSize)
	return g, nil
}

// classify applies the three-way band test to a centre distance.
func classify(distance, cellSize float64) Class {
	d := distance * bandScale / cellSize
	switch {
	case d < -1:
		return Inside
	case d > 1:
		return Outside
	default:
		return Border
	}
}

// Field returns the field the grid was built from.
func (g *Grid[V]) Field() field.Field[V] { return g.field }

// CellSize returns the side length of a cell.
func (g *Grid[V]) CellSize() float64 { return g.cellSize }

// Offset returns the absolute coordinate of the first stored cell.
func (g *Grid[V]) Offset() geom.Cell { return g.offset }

// Shape returns the number of cells along each axis.
func (g *Grid[V]) Shape() geom.Cell { return g.cells.Shape() }

// Dims returns the dimension count.
func (g *Grid[V]) Dims() int { return g.cells.Dims() }

// NumInside returns the number of Inside cells.
func (g *Grid[V]) NumInside() int { return len(g.inside) }

// NumBorder returns the number of Border cells.
func (g *Grid[V]) NumBorder() int { return len(g.border) }

// InsideCell returns the i-th Inside cell.
func (g *Grid[V]) InsideCell(i int) geom.Cell { return g.inside[i] }

// BorderCell returns the i-th Border cell.
func (g *Grid[V]) BorderCell(i int) geom.Cell { return g.border[i] }

// InsideCells returns a copy of the Inside cell list.
func (g *Grid[V]) InsideCells() []geom.Cell { return slices.Clone(g.inside) }

// BorderCells returns a copy of the Border cell list.
func (g *Grid[V]) BorderCells() []geom.Cell { return slices.Clone(g.border) }

// CellOf returns the absolute cell containing p. The result need not lie
// within the grid.
func (g *Grid[V]) CellOf(p V) geom.Cell {
	return geom.CellOf(p, g.cellSize)
}

// CellOrigin returns the minimum corner of cell c.
func (g *Grid[V]) CellOrigin(c geom.Cell) V {
	return geom.CellOrigin[V](c, g.cellSize)
}

// CellBounds returns the minimum and maximum corners of cell c. Neighbouring
// cells report bitwise-identical shared corners.
func (g *Grid[V]) CellBounds(c geom.Cell) (V, V) {
	var lo, hi V
	for i := range len(lo) {
		lo[i] = float64(c[i]) * g.cellSize
		hi[i] = float64(c[i]+1) * g.cellSize
	}
	return lo, hi
}

// InBounds reports whether c is one of the stored cells.
func (g *Grid[V]) InBounds(c geom.Cell) bool {
	return g.cells.Contains(c.Sub(g.offset))
}

// Class returns the classification of cell c. It panics when c is outside
// the grid.
func (g *Grid[V]) Class(c geom.Cell) Class {
	return g.cells.At(c.Sub(g.offset))
}

// ClassAt returns the classification of the cell containing p. It panics
// when p is outside the grid.
func (g *Grid[V]) ClassAt(p V) Class {
	return g.Class(g.CellOf(p))
}

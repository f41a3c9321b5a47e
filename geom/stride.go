package geom

import "fmt"

// Strides returns the row-major strides of shape over the first dims axes.
// Axis 0 varies fastest: strides[0] == 1 and strides[i+1] == strides[i]*shape[i].
func Strides(dims int, shape Cell) Cell {
	checkDims(dims)
	var s Cell
	s[0] = 1
	for i := 0; i+1 < dims; i++ {
		s[i+1] = s[i] * shape[i]
	}
	return s
}

// Volume returns the number of elements addressed by shape.
func Volume(dims int, shape Cell) int {
	checkDims(dims)
	n := 1
	for i := 0; i < dims; i++ {
		n *= shape[i]
	}
	return n
}

// ToLinear maps idx to its row-major position within shape.
func ToLinear(dims int, idx, shape Cell) int {
	checkDims(dims)
	linear, step := 0, 1
	for i := 0; i < dims; i++ {
		linear += idx[i] * step
		step *= shape[i]
	}
	return linear
}

// FromLinear is the inverse of ToLinear.
func FromLinear(dims int, linear int, shape Cell) Cell {
	checkDims(dims)
	var idx Cell
	for i := 0; i < dims; i++ {
		idx[i] = linear % shape[i]
		linear /= shape[i]
	}
	return idx
}

// Neighborhood returns the 3^dims offsets in {-1,0,1}^dims, enumerated as
// mixed-radix numbers with axis 0 varying fastest. The zero offset is
// included.
func Neighborhood(dims int) []Cell {
	checkDims(dims)
	var three Cell
	for i := 0; i < dims; i++ {
		three[i] = 3
	}
	n := Volume(dims, three)
	offsets := make([]Cell, n)
	for i := range offsets {
		o := FromLinear(dims, i, three)
		for a := 0; a < dims; a++ {
			o[a]--
		}
		offsets[i] = o
	}
	return offsets
}

func checkDims(dims int) {
	if dims < 1 || dims > MaxDim {
		panic(fmt.Sprintf("geom: dimension %d out of range [1, %d]", dims, MaxDim))
	}
}

package geom

import (
	"fmt"
	"math"
)

// ForEachLatticePoint calls fn for every point of the lattice
// {origin + k*spacing : k integer} lying in the half-open box
// [rectMin, rectMax). Points are produced in row-major order with axis 0
// varying fastest. Every spacing component must be positive.
func ForEachLatticePoint[V Vector](origin, spacing, rectMin, rectMax V, fn func(V)) {
	dims := len(origin)
	var first V
	var shape Cell
	for i := range dims {
		s := spacing[i]
		if !(s > 0) || math.IsInf(s, 0) {
			panic(fmt.Sprintf("geom: lattice spacing %v must be positive on axis %d", s, i))
		}
		lo := firstIndex(origin[i], s, rectMin[i])
		n := int(firstIndex(origin[i], s, rectMax[i]) - lo)
		if n <= 0 {
			return
		}
		first[i] = lo
		shape[i] = n
	}

	total := Volume(dims, shape)
	for k := 0; k < total; k++ {
		idx := FromLinear(dims, k, shape)
		var p V
		for i := range dims {
			p[i] = origin[i] + (first[i]+float64(idx[i]))*spacing[i]
		}
		fn(p)
	}
}

// firstIndex returns the smallest k with origin+k*spacing >= x. It is the
// only rounding site, so boxes sharing an edge x never both visit the
// lattice point nearest to it.
func firstIndex(origin, spacing, x float64) float64 {
	return math.Ceil((x - origin) / spacing)
}

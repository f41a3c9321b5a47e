package field

import (
	"math"

	"github.com/banshee-data/prism/geom"
)

// Box is an axis-aligned box [min, max].
type Box[V geom.Vector] struct {
	min, max V
}

var (
	_ Field[geom.Vec2] = (*Box[geom.Vec2])(nil)
	_ Field[geom.Vec3] = (*Box[geom.Vec3])(nil)
)

// NewBox returns the box spanning min..max. Every axis must satisfy min < max.
func NewBox[V geom.Vector](min, max V) (*Box[V], error) {
	if err := ValidateBounds(min, max); err != nil {
		return nil, err
	}
	return &Box[V]{min: min, max: max}, nil
}

// NewCenteredBox returns the box center ± halfSize.
func NewCenteredBox[V geom.Vector](center, halfSize V) (*Box[V], error) {
	return NewBox(geom.Sub(center, halfSize), geom.Add(center, halfSize))
}

// slab returns, per axis, the signed distance to the slab [min_i, max_i] and
// whether the max face is the nearer one.
func (b *Box[V]) slab(p V, i int) (float64, bool) {
	below := b.min[i] - p[i]
	above := p[i] - b.max[i]
	if above >= below {
		return above, true
	}
	return below, false
}

// Distance is the exact Euclidean signed distance to the box surface.
func (b *Box[V]) Distance(p V) float64 {
	var outside float64
	inside := math.Inf(-1)
	for i := range len(p) {
		q, _ := b.slab(p, i)
		if q > 0 {
			outside += q * q
		}
		inside = math.Max(inside, q)
	}
	if outside > 0 {
		return math.Sqrt(outside)
	}
	return inside
}

// Gradient points away from the nearest face (inside) or from the nearest
// surface point (outside).
func (b *Box[V]) Gradient(p V) V {
	var g V
	anyOutside := false
	for i := range len(p) {
		q, upper := b.slab(p, i)
		if q > 0 {
			anyOutside = true
			if upper {
				g[i] = q
			} else {
				g[i] = -q
			}
		}
	}
	if anyOutside {
		return geom.NormalizeOr(g, geom.Unit[V](0))
	}

	axis, best, upper := 0, math.Inf(-1), true
	for i := range len(p) {
		q, u := b.slab(p, i)
		if q > best {
			axis, best, upper = i, q, u
		}
	}
	g = geom.Unit[V](axis)
	if !upper {
		g = geom.Scale(g, -1)
	}
	return g
}

// Contains reports whether p lies within the box, faces included.
func (b *Box[V]) Contains(p V) bool {
	return b.Distance(p) <= 0
}

// MinBound returns the lower corner.
func (b *Box[V]) MinBound() V { return b.min }

// MaxBound returns the upper corner.
func (b *Box[V]) MaxBound() V { return b.max }

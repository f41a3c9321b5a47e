package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/prism/geom"
)

// PolygonBuilder accumulates closed loops for a Polygon. Every method
// returns a new builder; a builder value is never modified after creation,
// so earlier values can be reused freely.
type PolygonBuilder struct {
	loops    [][]r2.Vec
	min, max r2.Vec
}

// NewPolygonBuilder returns an empty builder.
func NewPolygonBuilder() PolygonBuilder {
	return PolygonBuilder{
		min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// AddLoop appends a closed loop; the last vertex connects back to the first.
// Loops are combined with the even-odd rule, so a loop nested inside another
// cuts a hole.
func (b PolygonBuilder) AddLoop(vertices ...geom.Vec2) PolygonBuilder {
	loop := make([]r2.Vec, len(vertices))
	lo, hi := b.min, b.max
	for i, v := range vertices {
		p := r2.Vec{X: v[0], Y: v[1]}
		loop[i] = p
		lo = r2.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = r2.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}

	loops := make([][]r2.Vec, len(b.loops), len(b.loops)+1)
	copy(loops, b.loops)
	loops = append(loops, loop)
	return PolygonBuilder{loops: loops, min: lo, max: hi}
}

// AddRect appends the rectangle center ± halfSize.
func (b PolygonBuilder) AddRect(halfSize, center geom.Vec2) PolygonBuilder {
	return b.AddLoop(
		geom.Vec2{center[0] - halfSize[0], center[1] - halfSize[1]},
		geom.Vec2{center[0] + halfSize[0], center[1] - halfSize[1]},
		geom.Vec2{center[0] + halfSize[0], center[1] + halfSize[1]},
		geom.Vec2{center[0] - halfSize[0], center[1] + halfSize[1]},
	)
}

// Len returns the number of loops added so far.
func (b PolygonBuilder) Len() int { return len(b.loops) }

// Build validates the accumulated loops and returns the polygon.
func (b PolygonBuilder) Build() (*Polygon, error) {
	if len(b.loops) == 0 {
		return nil, ErrEmptyPolygon
	}
	for i, loop := range b.loops {
		if len(loop) < 3 {
			return nil, fmt.Errorf("%w: loop %d has %d", ErrDegenerateLoop, i, len(loop))
		}
	}
	lo, hi := geom.Vec2{b.min.X, b.min.Y}, geom.Vec2{b.max.X, b.max.Y}
	if err := ValidateBounds(lo, hi); err != nil {
		return nil, err
	}
	return &Polygon{loops: b.loops, min: lo, max: hi}, nil
}

// Polygon is a planar region bounded by one or more closed loops.
type Polygon struct {
	loops    [][]r2.Vec
	min, max geom.Vec2
}

var _ Field[geom.Vec2] = (*Polygon)(nil)

// Distance returns the distance to the nearest edge, negated inside.
func (pg *Polygon) Distance(p geom.Vec2) float64 {
	x := r2.Vec{X: p[0], Y: p[1]}
	d := pg.nearest(x).dist
	if pg.crossings(x) {
		return -d
	}
	return d
}

// Gradient points from the nearest boundary point toward increasing
// distance. On the boundary itself it is the outward normal of the nearest
// edge.
func (pg *Polygon) Gradient(p geom.Vec2) geom.Vec2 {
	x := r2.Vec{X: p[0], Y: p[1]}
	e := pg.nearest(x)
	dir := r2.Sub(x, e.point)
	if pg.crossings(x) {
		dir = r2.Scale(-1, dir)
	}
	return geom.NormalizeOr(geom.Vec2{dir.X, dir.Y}, pg.outwardNormal(e.a, e.b))
}

// Contains reports whether p is inside the polygon or on its boundary.
func (pg *Polygon) Contains(p geom.Vec2) bool {
	if p[0] < pg.min[0] || p[1] < pg.min[1] || p[0] > pg.max[0] || p[1] > pg.max[1] {
		return false
	}
	return pg.Distance(p) <= 0
}

// MinBound returns the lower corner of the vertex bounds.
func (pg *Polygon) MinBound() geom.Vec2 { return pg.min }

// MaxBound returns the upper corner of the vertex bounds.
func (pg *Polygon) MaxBound() geom.Vec2 { return pg.max }

// crossings applies the even-odd rule across every loop.
func (pg *Polygon) crossings(x r2.Vec) bool {
	interior := false
	for _, loop := range pg.loops {
		b := loop[len(loop)-1]
		for _, a := range loop {
			if (a.Y > x.Y) != (b.Y > x.Y) &&
				x.X < (b.X-a.X)*(x.Y-a.Y)/(b.Y-a.Y)+a.X {
				interior = !interior
			}
			b = a
		}
	}
	return interior
}

// edgeHit is the closest point of edge ab to a query point.
type edgeHit struct {
	a, b  r2.Vec
	point r2.Vec
	dist  float64
}

// nearest returns the closest boundary point to x along with its edge.
func (pg *Polygon) nearest(x r2.Vec) edgeHit {
	best := edgeHit{dist: math.Inf(1)}
	for _, loop := range pg.loops {
		b := loop[len(loop)-1]
		for _, a := range loop {
			q := projectSegment(a, b, x)
			if d := r2.Norm(r2.Sub(x, q)); d <= best.dist {
				best = edgeHit{a: a, b: b, point: q, dist: d}
			}
			b = a
		}
	}
	return best
}

// outwardNormal returns the unit normal of edge ab facing away from the
// interior. The side is found by testing a point just off the edge midpoint.
// A zero-length edge yields the first axis.
func (pg *Polygon) outwardNormal(a, b r2.Vec) geom.Vec2 {
	ab := r2.Sub(b, a)
	l := r2.Norm(ab)
	if !(l > geom.Epsilon) {
		return geom.Unit[geom.Vec2](0)
	}
	n := r2.Vec{X: ab.Y / l, Y: -ab.X / l}
	mid := r2.Add(a, r2.Scale(0.5, ab))
	if pg.crossings(r2.Add(mid, r2.Scale(1e-6*l, n))) {
		n = r2.Scale(-1, n)
	}
	return geom.Vec2{n.X, n.Y}
}

// projectSegment returns the point of segment ab closest to x.
func projectSegment(a, b, x r2.Vec) r2.Vec {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return a
	}
	t := r2.Dot(r2.Sub(x, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return r2.Add(a, r2.Scale(t, ab))
}

package field

import "github.com/banshee-data/prism/geom"

// Pad offsets an inner field's distance by a constant. A positive offset
// shrinks the region, leaving a margin of that width inside the original
// boundary; a negative offset grows it.
type Pad[V geom.Vector] struct {
	inner  Field[V]
	offset float64
}

var _ Field[geom.Vec2] = (*Pad[geom.Vec2])(nil)

// NewPad wraps inner with the given offset.
func NewPad[V geom.Vector](inner Field[V], offset float64) *Pad[V] {
	return &Pad[V]{inner: inner, offset: offset}
}

// Offset returns the distance offset.
func (p *Pad[V]) Offset() float64 { return p.offset }

// Inner returns the wrapped field.
func (p *Pad[V]) Inner() Field[V] { return p.inner }

// Distance returns the inner distance plus the offset.
func (p *Pad[V]) Distance(x V) float64 {
	return p.inner.Distance(x) + p.offset
}

// Gradient delegates to the inner field.
func (p *Pad[V]) Gradient(x V) V {
	return p.inner.Gradient(x)
}

// Contains reports whether the padded distance is non-positive.
func (p *Pad[V]) Contains(x V) bool {
	return p.Distance(x) <= 0
}

// MinBound moves the inner lower corner inward by the offset.
func (p *Pad[V]) MinBound() V {
	return geom.Add(p.inner.MinBound(), geom.Repeat[V](p.offset))
}

// MaxBound moves the inner upper corner inward by the offset.
func (p *Pad[V]) MaxBound() V {
	return geom.Sub(p.inner.MaxBound(), geom.Repeat[V](p.offset))
}

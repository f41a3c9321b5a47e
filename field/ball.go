package field

import (
	"fmt"
	"math"

	"github.com/banshee-data/prism/geom"
)

// Ball is the solid N-ball of a given radius around a centre.
type Ball[V geom.Vector] struct {
	center V
	radius float64
}

var (
	_ Field[geom.Vec2] = (*Ball[geom.Vec2])(nil)
	_ Field[geom.Vec3] = (*Ball[geom.Vec3])(nil)
)

// NewBall returns a ball centred at center.
func NewBall[V geom.Vector](center V, radius float64) (*Ball[V], error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if !geom.IsFinite(center) {
		return nil, fmt.Errorf("%w: non-finite centre %v", ErrInvalidBounds, center)
	}
	return &Ball[V]{center: center, radius: radius}, nil
}

// Center returns the ball centre.
func (b *Ball[V]) Center() V { return b.center }

// Radius returns the ball radius.
func (b *Ball[V]) Radius() float64 { return b.radius }

// Distance returns |p-c| - r.
func (b *Ball[V]) Distance(p V) float64 {
	return geom.Distance(p, b.center) - b.radius
}

// Gradient returns the radial direction, or the first axis at the centre.
func (b *Ball[V]) Gradient(p V) V {
	return geom.NormalizeOr(geom.Sub(p, b.center), geom.Unit[V](0))
}

// Contains reports whether p is inside or on the sphere.
func (b *Ball[V]) Contains(p V) bool {
	return b.Distance(p) <= 0
}

// MinBound returns c - r on every axis.
func (b *Ball[V]) MinBound() V {
	return geom.Sub(b.center, geom.Repeat[V](b.radius))
}

// MaxBound returns c + r on every axis.
func (b *Ball[V]) MaxBound() V {
	return geom.Add(b.center, geom.Repeat[V](b.radius))
}

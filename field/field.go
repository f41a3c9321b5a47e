// Package field defines the signed distance field contract that every
// region implements, together with the concrete regions and wrappers the
// rest of the library is exercised against.
//
// Distances are negative inside a region and positive outside. Gradients
// point toward increasing distance and are unit length, or the zero vector
// where no single direction exists. For every implementation in this package
// Contains(p) holds exactly when Distance(p) <= 0.
package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/prism/geom"
)

var (
	// ErrInvalidBounds is returned when a region's bounds are empty or inverted.
	ErrInvalidBounds = errors.New("field: invalid bounds")
	// ErrInvalidRadius is returned for a non-positive ball radius.
	ErrInvalidRadius = errors.New("field: radius must be positive")
	// ErrEmptyPolygon is returned when building a polygon with no loops.
	ErrEmptyPolygon = errors.New("field: polygon has no loops")
	// ErrDegenerateLoop is returned for a polygon loop with fewer than three vertices.
	ErrDegenerateLoop = errors.New("field: polygon loop needs at least 3 vertices")
)

// Field is a region described by a signed distance function.
type Field[V geom.Vector] interface {
	// Distance returns the signed distance from p to the region boundary.
	Distance(p V) float64
	// Gradient returns the unit direction of increasing distance at p, or
	// the zero vector when it is undefined.
	Gradient(p V) V
	// Contains reports whether p lies inside or on the boundary.
	Contains(p V) bool
	// MinBound returns the lower corner of the axis-aligned bounding box.
	MinBound() V
	// MaxBound returns the upper corner of the axis-aligned bounding box.
	MaxBound() V
}

// ValidateBounds checks that min < max on every axis and both are finite.
func ValidateBounds[V geom.Vector](min, max V) error {
	for i := range len(min) {
		lo, hi := min[i], max[i]
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return fmt.Errorf("%w: axis %d has non-finite bound [%v, %v]", ErrInvalidBounds, i, lo, hi)
		}
		if lo >= hi {
			return fmt.Errorf("%w: axis %d min %v >= max %v", ErrInvalidBounds, i, lo, hi)
		}
	}
	return nil
}

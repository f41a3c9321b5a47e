package field

import (
	"fmt"
	"math"

	"github.com/banshee-data/prism/geom"
)

// Extrude lifts a planar region into 3D by sweeping it over z in [lo, hi].
type Extrude struct {
	base   Field[geom.Vec2]
	lo, hi float64
}

var _ Field[geom.Vec3] = (*Extrude)(nil)

// NewExtrude returns the prism base × [lo, hi].
func NewExtrude(base Field[geom.Vec2], lo, hi float64) (*Extrude, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base field", ErrInvalidBounds)
	}
	if err := ValidateBounds(geom.Vec1{lo}, geom.Vec1{hi}); err != nil {
		return nil, fmt.Errorf("extrusion interval: %w", err)
	}
	return &Extrude{base: base, lo: lo, hi: hi}, nil
}

func (e *Extrude) terms(p geom.Vec3) (base, axial float64) {
	base = e.base.Distance(geom.Vec2{p[0], p[1]})
	axial = math.Max(e.lo-p[2], p[2]-e.hi)
	return base, axial
}

// Distance returns the larger of the base-plane and interval distances.
// Outside both it is a lower bound on the Euclidean distance; the sign is
// always exact.
func (e *Extrude) Distance(p geom.Vec3) float64 {
	base, axial := e.terms(p)
	return math.Max(base, axial)
}

// Gradient follows whichever term dominates Distance.
func (e *Extrude) Gradient(p geom.Vec3) geom.Vec3 {
	base, axial := e.terms(p)
	if base >= axial {
		g := e.base.Gradient(geom.Vec2{p[0], p[1]})
		return geom.Vec3{g[0], g[1], 0}
	}
	if p[2]-e.hi >= e.lo-p[2] {
		return geom.Vec3{0, 0, 1}
	}
	return geom.Vec3{0, 0, -1}
}

// Contains reports whether p is inside the base and within the interval.
func (e *Extrude) Contains(p geom.Vec3) bool {
	return e.Distance(p) <= 0
}

// MinBound returns the base lower corner with z = lo.
func (e *Extrude) MinBound() geom.Vec3 {
	m := e.base.MinBound()
	return geom.Vec3{m[0], m[1], e.lo}
}

// MaxBound returns the base upper corner with z = hi.
func (e *Extrude) MaxBound() geom.Vec3 {
	m := e.base.MaxBound()
	return geom.Vec3{m[0], m[1], e.hi}
}

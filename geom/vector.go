package geom

import "math"

// MaxDim is the largest dimension count supported by Vector and Cell.
const MaxDim = 4

// Epsilon is the magnitude below which a vector is treated as zero-length
// when normalising.
const Epsilon = 1e-9

// Vector is the set of coordinate types the library is generic over.
type Vector interface {
	~[1]float64 | ~[2]float64 | ~[3]float64 | ~[4]float64
}

// Vec1 is a point on a line.
type Vec1 [1]float64

// Vec2 is a point in the plane.
type Vec2 [2]float64

// Vec3 is a point in space.
type Vec3 [3]float64

// Vec4 is a point in four dimensions.
type Vec4 [4]float64

// Dims returns the number of components of V.
func Dims[V Vector]() int {
	var v V
	return len(v)
}

// Repeat returns a vector with every component set to x.
func Repeat[V Vector](x float64) V {
	var v V
	for i := range len(v) {
		v[i] = x
	}
	return v
}

// Unit returns the basis vector along axis.
func Unit[V Vector](axis int) V {
	var v V
	v[axis] = 1
	return v
}

// Add returns a+b.
func Add[V Vector](a, b V) V {
	for i := range len(a) {
		a[i] += b[i]
	}
	return a
}

// Sub returns a-b.
func Sub[V Vector](a, b V) V {
	for i := range len(a) {
		a[i] -= b[i]
	}
	return a
}

// Scale returns v*s.
func Scale[V Vector](v V, s float64) V {
	for i := range len(v) {
		v[i] *= s
	}
	return v
}

// AddScaled returns a + b*s.
func AddScaled[V Vector](a, b V, s float64) V {
	for i := range len(a) {
		a[i] += b[i] * s
	}
	return a
}

// Dot returns the inner product of a and b.
func Dot[V Vector](a, b V) float64 {
	var sum float64
	for i := range len(a) {
		sum += a[i] * b[i]
	}
	return sum
}

// NormSquared returns |v|².
func NormSquared[V Vector](v V) float64 {
	return Dot(v, v)
}

// Norm returns |v|.
func Norm[V Vector](v V) float64 {
	return math.Sqrt(NormSquared(v))
}

// Distance returns |a-b|.
func Distance[V Vector](a, b V) float64 {
	return Norm(Sub(a, b))
}

// NormalizeOr returns v scaled to unit length. When |v| is not above Epsilon
// (or is not finite) fallback is returned unchanged, so callers never see NaN.
func NormalizeOr[V Vector](v V, fallback V) V {
	n := Norm(v)
	if !(n > Epsilon) || math.IsInf(n, 0) {
		return fallback
	}
	return Scale(v, 1/n)
}

// Min returns the component-wise minimum of a and b.
func Min[V Vector](a, b V) V {
	for i := range len(a) {
		a[i] = math.Min(a[i], b[i])
	}
	return a
}

// Max returns the component-wise maximum of a and b.
func Max[V Vector](a, b V) V {
	for i := range len(a) {
		a[i] = math.Max(a[i], b[i])
	}
	return a
}

// MinComponent returns the smallest component of v.
func MinComponent[V Vector](v V) float64 {
	m := math.Inf(1)
	for i := range len(v) {
		m = math.Min(m, v[i])
	}
	return m
}

// MaxComponent returns the largest component of v.
func MaxComponent[V Vector](v V) float64 {
	m := math.Inf(-1)
	for i := range len(v) {
		m = math.Max(m, v[i])
	}
	return m
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite[V Vector](v V) bool {
	for i := range len(v) {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}

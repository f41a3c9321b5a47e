// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math/rand"
	"testing"

	"github.com/banshee-data/prism/field"
	"github.com/banshee-data/prism/geom"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewRand returns a deterministic random source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Square returns the axis-aligned square [lo, hi]².
func Square(t testing.TB, lo, hi float64) *field.Box[geom.Vec2] {
	t.Helper()
	b, err := field.NewBox(geom.Vec2{lo, lo}, geom.Vec2{hi, hi})
	AssertNoError(t, err)
	return b
}

// Ball returns a ball of radius r centred on the origin.
func Ball[V geom.Vector](t testing.TB, r float64) *field.Ball[V] {
	t.Helper()
	var centre V
	b, err := field.NewBall(centre, r)
	AssertNoError(t, err)
	return b
}

// AssertInside fails the test for every point with field distance above tol.
func AssertInside[V geom.Vector](t testing.TB, f field.Field[V], pts []V, tol float64) {
	t.Helper()
	bad := 0
	for _, p := range pts {
		if d := f.Distance(p); d > tol {
			if bad < 5 {
				t.Errorf("point %v lies %g outside the region", p, d)
			}
			bad++
		}
	}
	if bad > 0 {
		t.Errorf("%d of %d points outside the region", bad, len(pts))
	}
}

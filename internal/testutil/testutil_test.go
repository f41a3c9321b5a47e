package testutil

import (
	"errors"
	"testing"

	"github.com/banshee-data/prism/geom"
)

// TestAssertNoError_NilErr tests nil error path.
func TestAssertNoError_NilErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertNoError(fakeT, nil)
	if fakeT.Failed() {
		t.Error("expected no failure for nil error")
	}
}

// TestAssertError_WithErr tests non-nil error path.
func TestAssertError_WithErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertError(fakeT, errors.New("something wrong"))
	if fakeT.Failed() {
		t.Error("expected no failure when error is present")
	}
}

func TestNewRand_Deterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for i := 0; i < 10; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
	}
}

func TestFixtures(t *testing.T) {
	sq := Square(t, 0, 10)
	if !sq.Contains(geom.Vec2{5, 5}) || sq.Contains(geom.Vec2{11, 5}) {
		t.Error("square containment is wrong")
	}
	b := Ball[geom.Vec3](t, 2)
	if !b.Contains(geom.Vec3{1, 1, 1}) || b.Contains(geom.Vec3{2, 2, 0}) {
		t.Error("ball containment is wrong")
	}
	AssertInside[geom.Vec2](t, sq, []geom.Vec2{{0, 0}, {10, 10}, {3, 7}}, 0)
}

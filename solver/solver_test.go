package solver

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/prism/field"
	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/grid"
	"github.com/banshee-data/prism/internal/testutil"
	"github.com/banshee-data/prism/sampler"
)

func newSquareGrid(t *testing.T, size, cellSize float64) *grid.Grid[geom.Vec2] {
	t.Helper()
	g, err := grid.New[geom.Vec2](testutil.Square(t, 0, size), cellSize)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Parallel()
	g := newSquareGrid(t, 10, 2)
	pts := []geom.Vec2{{1, 1}}

	s, err := New(g, pts, 1)
	require.NoError(t, err)
	assert.Same(t, g, s.Grid())
	assert.True(t, math.IsInf(s.MaxPenetration, 1))
	assert.True(t, math.IsInf(s.BoundaryPenetration, 1))
	assert.False(t, s.Converged(0.1))

	pts[0] = geom.Vec2{9, 9}
	assert.Equal(t, geom.Vec2{1, 1}, s.Points[0], "solver keeps its own copy")

	_, err = New(g, pts, 0)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, err = New(g, pts, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, err = New[geom.Vec2](nil, pts, 1)
	assert.Error(t, err)
}

func TestStepCollisions(t *testing.T) {
	t.Parallel()
	g := newSquareGrid(t, 10, 2)

	tests := []struct {
		name    string
		points  []geom.Vec2
		want    []geom.Vec2
		wantPen float64
	}{
		{
			name:    "isolated point",
			points:  []geom.Vec2{{5, 5}},
			want:    []geom.Vec2{{5, 5}},
			wantPen: 0,
		},
		{
			name:    "overlapping pair",
			points:  []geom.Vec2{{4, 5}, {5, 5}},
			want:    []geom.Vec2{{3.5, 5}, {5.5, 5}},
			wantPen: 1,
		},
		{
			name:    "touching pair",
			points:  []geom.Vec2{{4, 5}, {6, 5}},
			want:    []geom.Vec2{{4, 5}, {6, 5}},
			wantPen: 0,
		},
		{
			name:    "separated neighbours",
			points:  []geom.Vec2{{2.5, 5}, {5.5, 5}},
			want:    []geom.Vec2{{2.5, 5}, {5.5, 5}},
			wantPen: -1,
		},
		{
			name:    "coincident pair",
			points:  []geom.Vec2{{5, 5}, {5, 5}},
			want:    []geom.Vec2{{6, 5}, {4, 5}},
			wantPen: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(g, tt.points, 1)
			require.NoError(t, err)
			s.StepCollisions(1)

			assert.InDelta(t, tt.wantPen, s.MaxPenetration, 1e-12)
			for i := range tt.want {
				assert.InDeltaSlice(t, tt.want[i][:], s.Points[i][:], 1e-12, "point %d", i)
			}
		})
	}
}

func TestStepCollisions_Symmetric(t *testing.T) {
	t.Parallel()
	g := newSquareGrid(t, 10, 2)
	s, err := New(g, []geom.Vec2{{5, 5}, {5.6, 5.8}, {4.4, 5.8}}, 1)
	require.NoError(t, err)

	before := centroid(s.Points)
	s.StepCollisions(CollisionFactor)
	after := centroid(s.Points)
	assert.InDeltaSlice(t, before[:], after[:], 1e-12, "pairwise pushes cancel")
}

func centroid(pts []geom.Vec2) geom.Vec2 {
	var c geom.Vec2
	for _, p := range pts {
		c = geom.Add(c, p)
	}
	return geom.Scale(c, 1/float64(len(pts)))
}

func TestStepBoundary(t *testing.T) {
	t.Parallel()
	g := newSquareGrid(t, 10, 2)
	s, err := New(g, []geom.Vec2{{12, 5}, {5, 5}, {-1, 5}}, 1)
	require.NoError(t, err)

	s.StepBoundary(BoundaryFactor)
	assert.Equal(t, geom.Vec2{10, 5}, s.Points[0])
	assert.Equal(t, geom.Vec2{5, 5}, s.Points[1], "inside points do not move")
	assert.Equal(t, geom.Vec2{0, 5}, s.Points[2])
	assert.Zero(t, s.BoundaryPenetration)

	// A second projection is a no-op.
	settled := append([]geom.Vec2(nil), s.Points...)
	s.StepBoundary(BoundaryFactor)
	assert.Equal(t, settled, s.Points)
	assert.Zero(t, s.BoundaryPenetration)
}

func TestSolve_PointOnPolygonEdge(t *testing.T) {
	t.Parallel()
	pg, err := field.NewPolygonBuilder().AddRect(geom.Vec2{10, 10}, geom.Vec2{10, 10}).Build()
	require.NoError(t, err)
	g, err := grid.New[geom.Vec2](field.NewPad[geom.Vec2](pg, 1), 2)
	require.NoError(t, err)

	s, err := New(g, []geom.Vec2{{0, 10}}, 1)
	require.NoError(t, err)
	n := s.Solve(50, 0.1)

	assert.True(t, s.Converged(0.1), "after %d iterations: boundary %g", n, s.BoundaryPenetration)
	assert.Less(t, n, 50)
	assert.InDelta(t, 1.0, s.Points[0][0], 1e-9)
	assert.InDelta(t, 10.0, s.Points[0][1], 1e-9)
}

func TestSolve_NoIterations(t *testing.T) {
	t.Parallel()
	s, err := New(newSquareGrid(t, 10, 2), []geom.Vec2{{5, 5}}, 1)
	require.NoError(t, err)

	assert.Zero(t, s.Solve(0, 0.1))
	assert.True(t, math.IsInf(s.MaxPenetration, 1))
}

func TestSolve_AlreadySettled(t *testing.T) {
	t.Parallel()
	var seen []Iteration
	s, err := New(newSquareGrid(t, 10, 2), []geom.Vec2{{2, 2}, {8, 8}}, 1,
		WithObserver(func(it Iteration) { seen = append(seen, it) }))
	require.NoError(t, err)

	assert.Equal(t, 1, s.Solve(100, 0.1))
	assert.True(t, s.Converged(0.1))
	require.Len(t, seen, 1)
	assert.Equal(t, Iteration{Index: 0, MaxPenetration: 0, BoundaryPenetration: 0}, seen[0])
}

func TestSolve_Scenario(t *testing.T) {
	t.Parallel()
	const r = 5.0
	box := testutil.Square(t, 0, 100)
	g, err := grid.New[geom.Vec2](field.NewPad[geom.Vec2](box, r), 2*r)
	require.NoError(t, err)

	rng := testutil.NewRand(2024)
	seeds := sampler.New(g, rng).RandomizedGridPoints(1)
	require.GreaterOrEqual(t, len(seeds), 50)
	pts := make([]geom.Vec2, 50)
	for i, k := range rng.Perm(len(seeds))[:50] {
		pts[i] = seeds[k]
	}

	var iters []Iteration
	s, err := New(g, pts, r, WithObserver(func(it Iteration) { iters = append(iters, it) }))
	require.NoError(t, err)
	n := s.Solve(1000, 0.1)

	require.True(t, s.Converged(0.1), "after %d iterations: pen %g, boundary %g", n, s.MaxPenetration, s.BoundaryPenetration)
	assert.LessOrEqual(t, s.MaxPenetration, 0.5)
	assert.LessOrEqual(t, s.BoundaryPenetration, 5e-4)
	assert.Len(t, iters, n)
	for i, it := range iters {
		assert.Equal(t, i, it.Index)
	}

	testutil.AssertInside[geom.Vec2](t, box, s.Points, 0)
	for i := range s.Points {
		for j := i + 1; j < len(s.Points); j++ {
			d := geom.Distance(s.Points[i], s.Points[j])
			assert.GreaterOrEqual(t, d, 9.0, "points %d and %d", i, j)
		}
	}
}

func TestSolve_ParallelMatchesSerial(t *testing.T) {
	t.Parallel()
	g := newSquareGrid(t, 200, 2)
	seeds := sampler.New(g, testutil.NewRand(8)).RandomizedGridPoints(0.5)
	require.Greater(t, len(seeds), 4*minChunk)

	run := func(workers int) *Solver[geom.Vec2] {
		s, err := New(g, seeds, 1, WithWorkers(workers))
		require.NoError(t, err)
		s.Solve(20, 0.1)
		return s
	}
	serial, parallel := run(1), run(4)

	if diff := cmp.Diff(serial.Points, parallel.Points); diff != "" {
		t.Errorf("points mismatch (-serial +parallel):\n%s", diff)
	}
	assert.Equal(t, serial.MaxPenetration, parallel.MaxPenetration)
	assert.Equal(t, serial.BoundaryPenetration, parallel.BoundaryPenetration)
}

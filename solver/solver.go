package solver

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/grid"
	"github.com/banshee-data/prism/internal/monitoring"
)

const (
	// CollisionFactor is the delta factor Solve passes to StepCollisions.
	CollisionFactor = 2.0
	// BoundaryFactor is the delta factor Solve passes to StepBoundary.
	BoundaryFactor = 1.0
	// BoundaryTolerance is the residual boundary penetration, relative to the
	// radius, that Solve accepts as settled.
	BoundaryTolerance = 1e-4

	// minChunk is the smallest number of points handed to one worker.
	minChunk = 256
)

// ErrInvalidRadius is returned for a non-positive or non-finite radius.
var ErrInvalidRadius = errors.New("solver: radius must be positive")

// Solver relaxes equal-radius particles inside the region of a grid.
type Solver[V geom.Vector] struct {
	// Points holds the current particle centres. Indices are stable.
	Points []V
	// Radius is the particle radius.
	Radius float64
	// MaxPenetration is the worst pairwise overlap (2r - d) seen by the last
	// collision step. +Inf before the first step.
	MaxPenetration float64
	// BoundaryPenetration is the worst field distance left after the last
	// boundary step. +Inf before the first step.
	BoundaryPenetration float64

	grid   *grid.Grid[V]
	hash   *spatialHash[V]
	deltas []V
	opts   options
}

// New returns a solver over g starting from a copy of points.
func New[V geom.Vector](g *grid.Grid[V], points []V, radius float64, opts ...Option) (*Solver[V], error) {
	if g == nil {
		return nil, errors.New("solver: nil grid")
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if g.CellSize() < 2*radius {
		monitoring.Logf("solver: cell size %g is below particle diameter %g; overlaps spanning more than one cell will be missed",
			g.CellSize(), 2*radius)
	}

	s := &Solver[V]{
		Points:              slices.Clone(points),
		Radius:              radius,
		MaxPenetration:      math.Inf(1),
		BoundaryPenetration: math.Inf(1),
		grid:                g,
		hash:                newSpatialHash[V](g.CellSize()),
	}
	for _, o := range opts {
		o(&s.opts)
	}
	return s, nil
}

// Grid returns the grid the solver projects against.
func (s *Solver[V]) Grid() *grid.Grid[V] { return s.grid }

// StepCollisions pushes overlapping pairs apart. Every pair closer than
// 2*Radius contributes (2*Radius - d)/2 along its separating direction to
// each point; contributions are summed from a snapshot and then applied
// scaled by deltaFactor.
func (s *Solver[V]) StepCollisions(deltaFactor float64) {
	s.hash.build(s.Points)

	n := len(s.Points)
	if cap(s.deltas) < n {
		s.deltas = make([]V, n)
	}
	s.deltas = s.deltas[:n]

	worst := s.parallel(n, math.Inf(-1), func(lo, hi int) float64 {
		w := math.Inf(-1)
		for i := lo; i < hi; i++ {
			var pen float64
			s.deltas[i], pen = s.collide(i)
			w = max(w, pen)
		}
		return w
	})

	for i := range s.Points {
		s.Points[i] = geom.AddScaled(s.Points[i], s.deltas[i], deltaFactor)
	}
	if math.IsInf(worst, -1) {
		worst = 0
	}
	s.MaxPenetration = worst
}

// collide returns the summed correction for point i and the worst
// penetration among the pairs it was evaluated against (-Inf if none).
func (s *Solver[V]) collide(i int) (V, float64) {
	var delta V
	worst := math.Inf(-1)
	p := s.Points[i]
	diameter := 2 * s.Radius
	s.hash.forEachNeighbor(p, i, func(j int) {
		diff := geom.Sub(p, s.Points[j])
		d := geom.Norm(diff)
		pen := diameter - d
		worst = max(worst, pen)
		if pen > 0 {
			delta = geom.AddScaled(delta, separation(diff, d, i, j), pen/2)
		}
	})
	return delta, worst
}

// separation returns the unit direction pushing point i away from point j.
// Coincident points have no direction of their own; the lower index is sent
// along +x and the higher along -x so the pair still splits symmetrically.
func separation[V geom.Vector](diff V, d float64, i, j int) V {
	if d > geom.Epsilon {
		return geom.Scale(diff, 1/d)
	}
	if i < j {
		return geom.Unit[V](0)
	}
	return geom.Scale(geom.Unit[V](0), -1)
}

// StepBoundary moves every point with positive field distance d by
// -gradient*d*deltaFactor. Points on or inside the surface are untouched.
func (s *Solver[V]) StepBoundary(deltaFactor float64) {
	f := s.grid.Field()
	s.BoundaryPenetration = s.parallel(len(s.Points), 0, func(lo, hi int) float64 {
		w := 0.0
		for i := lo; i < hi; i++ {
			p := s.Points[i]
			d := f.Distance(p)
			if d > 0 {
				p = geom.AddScaled(p, f.Gradient(p), -d*deltaFactor)
				s.Points[i] = p
				w = max(w, f.Distance(p))
			}
		}
		return w
	})
}

// Solve alternates StepCollisions(CollisionFactor) and
// StepBoundary(BoundaryFactor) until Converged(cutoff) or maxIters
// iterations have run, and returns the number of iterations used.
func (s *Solver[V]) Solve(maxIters int, cutoff float64) int {
	iters := 0
	for !s.Converged(cutoff) && iters < maxIters {
		s.StepCollisions(CollisionFactor)
		s.StepBoundary(BoundaryFactor)
		if s.opts.observer != nil {
			s.opts.observer(Iteration{
				Index:               iters,
				MaxPenetration:      s.MaxPenetration,
				BoundaryPenetration: s.BoundaryPenetration,
			})
		}
		iters++
	}
	return iters
}

// Converged reports whether the last steps left pairwise penetration at or
// below cutoff*Radius and boundary penetration at or below
// BoundaryTolerance*Radius.
func (s *Solver[V]) Converged(cutoff float64) bool {
	return s.MaxPenetration <= cutoff*s.Radius &&
		s.BoundaryPenetration <= BoundaryTolerance*s.Radius
}

// parallel runs fn over [0, n) in contiguous chunks and returns the maximum
// of init and every chunk result. Chunks write disjoint indices only.
func (s *Solver[V]) parallel(n int, init float64, fn func(lo, hi int) float64) float64 {
	workers := s.opts.workers
	if workers < 2 || n < 2*minChunk {
		return max(init, fn(0, n))
	}

	chunk := max(minChunk, (n+workers-1)/workers)
	results := make([]float64, (n+chunk-1)/chunk)
	var wg sync.WaitGroup
	for k := range results {
		lo := k * chunk
		hi := min(lo+chunk, n)
		wg.Go(func() {
			results[k] = fn(lo, hi)
		})
	}
	wg.Wait()

	worst := init
	for _, r := range results {
		worst = max(worst, r)
	}
	return worst
}

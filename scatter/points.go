package scatter

import (
	"fmt"

	"github.com/banshee-data/prism/field"
	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/grid"
	"github.com/banshee-data/prism/internal/monitoring"
	"github.com/banshee-data/prism/sampler"
	"github.com/banshee-data/prism/solver"
)

// Packed is the result of PackedPoints.
type Packed[V geom.Vector] struct {
	Points              []V
	Iters               int
	MaxPenetration      float64
	BoundaryPenetration float64
	Converged           bool
}

func padded[V geom.Vector](f field.Field[V], offset float64) field.Field[V] {
	if offset == 0 {
		return f
	}
	return field.NewPad(f, offset)
}

// GridPoints returns the lattice points of s that fall inside f.
func GridPoints[V geom.Vector](f field.Field[V], s GridSettings[V]) ([]V, error) {
	for i := range len(s.GridSize) {
		if !(s.GridSize[i] > 0) {
			return nil, fmt.Errorf("%w: grid size must be positive on every axis, got %v", ErrInvalidSettings, s.GridSize)
		}
	}
	domain := padded(f, s.BorderAdjust)
	g, err := grid.New(domain, s.cellSize())
	if err != nil {
		return nil, fmt.Errorf("grid points: %w", err)
	}

	offset := geom.Add(domain.MinBound(), geom.Repeat[V](gridOffsetNudge))
	if s.GridOffset != nil {
		offset = *s.GridOffset
	}
	// The lattice never draws from the random source.
	return sampler.New(g, nil).GridPoints(s.GridSize, offset), nil
}

// RandomPoints draws count uniform samples from f. A cellSize of zero picks
// a resolution from the smallest extent of f's bounds.
func RandomPoints[V geom.Vector](f field.Field[V], count int, cellSize float64, rng sampler.RNG) ([]V, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidSettings, count)
	}
	if cellSize == 0 {
		cellSize = geom.MinComponent(geom.Sub(f.MaxBound(), f.MinBound())) / randomCellDivisor
	}
	g, err := grid.New(f, cellSize)
	if err != nil {
		return nil, fmt.Errorf("random points: %w", err)
	}

	smp := sampler.New(g, rng)
	pts := make([]V, 0, count)
	for range count {
		p, err := smp.SampleWhite()
		if err != nil {
			return pts, fmt.Errorf("random points: %w", err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// PackedPoints seeds f with a randomized grid and relaxes the seeds into a
// packing of balls of the configured radius.
func PackedPoints[V geom.Vector](f field.Field[V], s PackedSettings, rng sampler.RNG) (*Packed[V], error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	r := s.Particle.Radius
	domain := f
	if s.Particle.PadBorder {
		domain = field.NewPad(f, r)
	}

	g, err := grid.New(domain, 2*r)
	if err != nil {
		return nil, fmt.Errorf("packed points: %w", err)
	}
	density := s.Density
	if density == 0 {
		density = DefaultPackedDensity(geom.Dims[V]())
	}
	seeds := sampler.New(g, rng).RandomizedGridPoints(density)

	opts := []solver.Option{solver.WithWorkers(s.Workers)}
	if s.Observer != nil {
		opts = append(opts, solver.WithObserver(s.Observer))
	}
	sol, err := solver.New(g, seeds, r, opts...)
	if err != nil {
		return nil, fmt.Errorf("packed points: %w", err)
	}
	iters := sol.Solve(s.MaxIters, s.Cutoff)

	res := &Packed[V]{
		Points:              sol.Points,
		Iters:               iters,
		MaxPenetration:      sol.MaxPenetration,
		BoundaryPenetration: sol.BoundaryPenetration,
		Converged:           sol.Converged(s.Cutoff),
	}
	if !res.Converged {
		monitoring.Logf("scatter: packing of %d points did not settle after %d iterations (max penetration %.4g, boundary %.4g)",
			len(res.Points), iters, res.MaxPenetration, res.BoundaryPenetration)
	}
	return res, nil
}

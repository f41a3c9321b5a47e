// Package sampler draws point sets that respect a grid's classification:
// white-noise samples, regular lattices and jittered per-cell seeding.
package sampler

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/grid"
)

const (
	// MaxBorderRedraws is how many times SampleWhite redraws inside one
	// border cell before choosing a different cell.
	MaxBorderRedraws = 64
	// MaxRejections bounds the total number of rejected draws in a single
	// SampleWhite call.
	MaxRejections = 1 << 20
)

var (
	// ErrEmptyRegion is returned when the grid has no inside or border cells.
	ErrEmptyRegion = errors.New("sampler: region has no inside or border cells")
	// ErrSampleExhausted is returned when rejection sampling gives up.
	ErrSampleExhausted = errors.New("sampler: rejection budget exhausted")
)

// RNG is the random source a Sampler draws from. *math/rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// Sampler produces points inside the region a grid was built from.
type Sampler[V geom.Vector] struct {
	grid *grid.Grid[V]
	rng  RNG
}

// New returns a sampler over g drawing randomness from rng.
func New[V geom.Vector](g *grid.Grid[V], rng RNG) *Sampler[V] {
	return &Sampler[V]{grid: g, rng: rng}
}

// Grid returns the underlying grid.
func (s *Sampler[V]) Grid() *grid.Grid[V] { return s.grid }

// Contains reports whether p is in the region, consulting the field only for
// points in border cells. Points outside the grid are not contained.
func (s *Sampler[V]) Contains(p V) bool {
	c := s.grid.CellOf(p)
	if !s.grid.InBounds(c) {
		return false
	}
	switch s.grid.Class(c) {
	case grid.Inside:
		return true
	case grid.Border:
		return s.grid.Field().Contains(p)
	default:
		return false
	}
}

// SampleWhite returns one uniformly jittered point. A cell is chosen with
// equal probability among inside and border cells (not weighted by usable
// area). Points in inside cells are returned as drawn; border cells are
// rejection sampled against the field.
func (s *Sampler[V]) SampleWhite() (V, error) {
	var zero V
	nIn, nBorder := s.grid.NumInside(), s.grid.NumBorder()
	total := nIn + nBorder
	if total == 0 {
		return zero, ErrEmptyRegion
	}

	f := s.grid.Field()
	rejections := 0
	for {
		i := s.rng.Intn(total)
		if i < nIn {
			return s.pointIn(s.grid.InsideCell(i)), nil
		}
		cell := s.grid.BorderCell(i - nIn)
		for attempt := 0; attempt < MaxBorderRedraws; attempt++ {
			p := s.pointIn(cell)
			if f.Contains(p) {
				return p, nil
			}
			rejections++
			if rejections >= MaxRejections {
				return zero, fmt.Errorf("%w after %d draws", ErrSampleExhausted, rejections)
			}
		}
	}
}

// GenerateGrid calls fn for every point of the lattice anchored at offset
// with the given per-axis spacing that falls inside the region. The lattice
// may be finer than the grid's cells. Border-cell points are filtered
// through the field; the random source is not used.
func (s *Sampler[V]) GenerateGrid(spacing, offset V, fn func(V)) {
	for i := 0; i < s.grid.NumInside(); i++ {
		lo, hi := s.grid.CellBounds(s.grid.InsideCell(i))
		geom.ForEachLatticePoint(offset, spacing, lo, hi, fn)
	}
	f := s.grid.Field()
	for i := 0; i < s.grid.NumBorder(); i++ {
		lo, hi := s.grid.CellBounds(s.grid.BorderCell(i))
		geom.ForEachLatticePoint(offset, spacing, lo, hi, func(p V) {
			if f.Contains(p) {
				fn(p)
			}
		})
	}
}

// GenerateRandomizedGrid seeds every inside and border cell with
// floor(density) uniform samples plus one more with probability equal to the
// fractional part of density, so each cell receives density samples on
// average before border filtering.
func (s *Sampler[V]) GenerateRandomizedGrid(density float64, fn func(V)) {
	if !(density >= 0) || math.IsInf(density, 0) {
		panic(fmt.Sprintf("sampler: density %v must be a non-negative finite number", density))
	}
	whole, frac := math.Modf(density)
	n := int(whole)

	for i := 0; i < s.grid.NumInside(); i++ {
		cell := s.grid.InsideCell(i)
		for k := s.count(n, frac); k > 0; k-- {
			fn(s.pointIn(cell))
		}
	}
	f := s.grid.Field()
	for i := 0; i < s.grid.NumBorder(); i++ {
		cell := s.grid.BorderCell(i)
		for k := s.count(n, frac); k > 0; k-- {
			if p := s.pointIn(cell); f.Contains(p) {
				fn(p)
			}
		}
	}
}

// GridPoints collects GenerateGrid output.
func (s *Sampler[V]) GridPoints(spacing, offset V) []V {
	var pts []V
	s.GenerateGrid(spacing, offset, func(p V) { pts = append(pts, p) })
	return pts
}

// RandomizedGridPoints collects GenerateRandomizedGrid output.
func (s *Sampler[V]) RandomizedGridPoints(density float64) []V {
	var pts []V
	s.GenerateRandomizedGrid(density, func(p V) { pts = append(pts, p) })
	return pts
}

func (s *Sampler[V]) count(whole int, frac float64) int {
	if s.rng.Float64() < frac {
		return whole + 1
	}
	return whole
}

// pointIn draws a uniform point in the half-open cell c.
func (s *Sampler[V]) pointIn(c geom.Cell) V {
	size := s.grid.CellSize()
	p := s.grid.CellOrigin(c)
	for i := range len(p) {
		p[i] += s.rng.Float64() * size
	}
	return p
}

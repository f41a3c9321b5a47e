package scatter

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/internal/config"
	"github.com/banshee-data/prism/solver"
)

const (
	// borderAdjustFraction scales the radius used to pad lattices so that
	// points exactly one radius from the boundary survive float rounding.
	borderAdjustFraction = 0.9999
	// gridOffsetNudge shifts the default lattice origin off the min bound.
	gridOffsetNudge = 1e-4
	// randomCellDivisor sets RandomPoints' default cell size relative to the
	// smallest extent of the region.
	randomCellDivisor = 9.99
)

// ErrInvalidSettings is returned when settings cannot produce a point set.
var ErrInvalidSettings = errors.New("scatter: invalid settings")

// ParticleSettings describes the particles being placed.
type ParticleSettings struct {
	Radius float64
	// PadBorder shrinks the region by Radius before sampling so particles
	// keep a full radius of clearance from the boundary.
	PadBorder bool
}

// DefaultParticleSettings returns unit-radius, padded particles.
func DefaultParticleSettings() ParticleSettings {
	return ParticleSettings{Radius: 1, PadBorder: true}
}

// Particles returns padded particles of the given radius.
func Particles(radius float64) ParticleSettings {
	return ParticleSettings{Radius: radius, PadBorder: true}
}

func (p ParticleSettings) validate() error {
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidSettings, p.Radius)
	}
	return nil
}

// GridSettings controls GridPoints.
type GridSettings[V geom.Vector] struct {
	// BorderAdjust pads the region by this distance before sampling.
	BorderAdjust float64
	// GridSize is the lattice spacing on each axis.
	GridSize V
	// CellSize overrides the classification grid resolution. Zero uses the
	// largest GridSize component.
	CellSize float64
	// GridOffset anchors the lattice. Nil uses the (padded) region's min
	// bound plus a small nudge.
	GridOffset *V
}

// GridSettingsFor derives lattice settings from particle settings: spacing
// of one diameter, padded by just under one radius when PadBorder is set.
func GridSettingsFor[V geom.Vector](p ParticleSettings) GridSettings[V] {
	s := GridSettings[V]{GridSize: geom.Repeat[V](2 * p.Radius)}
	if p.PadBorder {
		s.BorderAdjust = p.Radius * borderAdjustFraction
	}
	return s
}

func (s GridSettings[V]) cellSize() float64 {
	if s.CellSize > 0 {
		return s.CellSize
	}
	return geom.MaxComponent(s.GridSize)
}

// PackedSettings controls PackedPoints.
type PackedSettings struct {
	Particle ParticleSettings
	MaxIters int
	// Cutoff is the accepted pairwise penetration relative to Radius.
	Cutoff float64
	// Density is the expected number of seeds per cell. Zero selects
	// DefaultPackedDensity for the dimension.
	Density float64
	// Workers is passed to solver.WithWorkers.
	Workers int
	// Observer, when set, receives every solver iteration.
	Observer func(solver.Iteration)
}

// DefaultPackedSettings returns the default packing settings.
func DefaultPackedSettings() PackedSettings {
	return PackedSettings{
		Particle: DefaultParticleSettings(),
		MaxIters: 500,
		Cutoff:   0.1,
		Density:  0,
		Workers:  1,
	}
}

// PackedSettingsFor returns the default packing settings for radius.
func PackedSettingsFor(radius float64) PackedSettings {
	s := DefaultPackedSettings()
	s.Particle.Radius = radius
	return s
}

func (s PackedSettings) validate() error {
	if err := s.Particle.validate(); err != nil {
		return err
	}
	if s.MaxIters < 0 {
		return fmt.Errorf("%w: max iterations must be non-negative, got %d", ErrInvalidSettings, s.MaxIters)
	}
	if s.Cutoff < 0 || math.IsNaN(s.Cutoff) {
		return fmt.Errorf("%w: cutoff must be non-negative, got %v", ErrInvalidSettings, s.Cutoff)
	}
	if s.Density < 0 || math.IsNaN(s.Density) || math.IsInf(s.Density, 0) {
		return fmt.Errorf("%w: density must be non-negative, got %v", ErrInvalidSettings, s.Density)
	}
	return nil
}

// DefaultPackedDensity returns the default seeds per cell for a dimension.
// 2D tolerates up to about 1.2 before the solver struggles.
func DefaultPackedDensity(dims int) float64 {
	switch dims {
	case 3:
		return 1.5
	default:
		return 1.0
	}
}

// ParticleSettingsFromConfig builds ParticleSettings from a loaded config.
func ParticleSettingsFromConfig(cfg *config.ScatterConfig) ParticleSettings {
	return ParticleSettings{
		Radius:    cfg.GetRadius(),
		PadBorder: cfg.GetPadBorder(),
	}
}

// PackedSettingsFromConfig builds PackedSettings from a loaded config.
func PackedSettingsFromConfig(cfg *config.ScatterConfig) PackedSettings {
	return PackedSettings{
		Particle: ParticleSettingsFromConfig(cfg),
		MaxIters: cfg.GetMaxIters(),
		Cutoff:   cfg.GetCutoff(),
		Density:  cfg.GetDensity(),
		Workers:  cfg.GetWorkers(),
	}
}

// GridSettingsFromConfig builds GridSettings from a loaded config. A
// grid_size or grid_offset with a single component applies to every axis;
// otherwise it must have one component per axis.
func GridSettingsFromConfig[V geom.Vector](cfg *config.ScatterConfig) (GridSettings[V], error) {
	s := GridSettingsFor[V](ParticleSettingsFromConfig(cfg))
	s.CellSize = cfg.GetCellSize()
	if len(cfg.GridSize) > 0 {
		size, err := vectorFromConfig[V]("grid_size", cfg.GridSize)
		if err != nil {
			return s, err
		}
		s.GridSize = size
	}
	if len(cfg.GridOffset) > 0 {
		offset, err := vectorFromConfig[V]("grid_offset", cfg.GridOffset)
		if err != nil {
			return s, err
		}
		s.GridOffset = &offset
	}
	return s, nil
}

func vectorFromConfig[V geom.Vector](name string, vals []float64) (V, error) {
	var v V
	switch len(vals) {
	case 1:
		return geom.Repeat[V](vals[0]), nil
	case len(v):
		for i := range len(v) {
			v[i] = vals[i]
		}
		return v, nil
	default:
		return v, fmt.Errorf("%w: %s has %d components, want 1 or %d", ErrInvalidSettings, name, len(vals), len(v))
	}
}

// RandFromConfig returns a generator seeded from the config, or from the
// clock when no seed is configured.
func RandFromConfig(cfg *config.ScatterConfig) *rand.Rand {
	seed, ok := cfg.GetSeed()
	if !ok {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

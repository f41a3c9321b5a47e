// Package config loads the JSON settings consumed by the scatter helpers.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical scatter defaults file.
const DefaultConfigPath = "config/scatter.defaults.json"

// maxConfigDims matches the largest vector size the library supports.
const maxConfigDims = 4

// ScatterConfig is the root configuration for point generation. Every field
// is optional; the Get* accessors supply the defaults for omitted fields, so
// partial documents are safe.
type ScatterConfig struct {
	// Particle settings
	Radius        *float64 `json:"radius,omitempty"`
	MinRadius     *float64 `json:"min_radius,omitempty"` // alias of radius
	PadBorder     *bool    `json:"pad_border,omitempty"`
	ExcludeBorder *bool    `json:"exclude_border,omitempty"` // inverse of pad_border

	// Lattice settings
	GridSize   []float64 `json:"grid_size,omitempty"`
	CellSize   *float64  `json:"cell_size,omitempty"` // 0 derives it from grid_size
	GridOffset []float64 `json:"grid_offset,omitempty"`

	// Packing settings
	MaxIters *int     `json:"max_iters,omitempty"`
	Cutoff   *float64 `json:"cutoff,omitempty"`
	Density  *float64 `json:"density,omitempty"` // 0 selects the per-dimension default
	Seed     *int64   `json:"seed,omitempty"`
	Workers  *int     `json:"workers,omitempty"`
}

// EmptyScatterConfig returns a ScatterConfig with all fields unset.
func EmptyScatterConfig() *ScatterConfig {
	return &ScatterConfig{}
}

// LoadScatterConfig loads a ScatterConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadScatterConfig(path string) (*ScatterConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseScatterConfig(data)
}

// ParseScatterConfig decodes and validates a JSON document.
func ParseScatterConfig(data []byte) (*ScatterConfig, error) {
	cfg := EmptyScatterConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents up to the repository root.
// Panics if the file cannot be loaded; intended for tests.
func MustLoadDefaultConfig() *ScatterConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from scatter/
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from internal/store/sqlite/
	}
	for _, path := range candidates {
		if cfg, err := LoadScatterConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable.
func (c *ScatterConfig) Validate() error {
	if c.Radius != nil && !positiveFinite(*c.Radius) {
		return fmt.Errorf("radius must be positive, got %v", *c.Radius)
	}
	if c.MinRadius != nil && !positiveFinite(*c.MinRadius) {
		return fmt.Errorf("min_radius must be positive, got %v", *c.MinRadius)
	}
	if c.Radius != nil && c.MinRadius != nil && *c.Radius != *c.MinRadius {
		return fmt.Errorf("radius (%v) and min_radius (%v) disagree", *c.Radius, *c.MinRadius)
	}
	if c.PadBorder != nil && c.ExcludeBorder != nil && *c.PadBorder == *c.ExcludeBorder {
		return fmt.Errorf("pad_border (%v) and exclude_border (%v) contradict each other", *c.PadBorder, *c.ExcludeBorder)
	}

	if len(c.GridSize) > maxConfigDims {
		return fmt.Errorf("grid_size has %d components (max %d)", len(c.GridSize), maxConfigDims)
	}
	for i, s := range c.GridSize {
		if !positiveFinite(s) {
			return fmt.Errorf("grid_size[%d] must be positive, got %v", i, s)
		}
	}
	if len(c.GridOffset) > maxConfigDims {
		return fmt.Errorf("grid_offset has %d components (max %d)", len(c.GridOffset), maxConfigDims)
	}
	for i, o := range c.GridOffset {
		if math.IsNaN(o) || math.IsInf(o, 0) {
			return fmt.Errorf("grid_offset[%d] must be finite, got %v", i, o)
		}
	}
	if c.CellSize != nil && (*c.CellSize < 0 || math.IsNaN(*c.CellSize) || math.IsInf(*c.CellSize, 0)) {
		return fmt.Errorf("cell_size must be non-negative, got %v", *c.CellSize)
	}

	if c.MaxIters != nil && *c.MaxIters < 0 {
		return fmt.Errorf("max_iters must be non-negative, got %d", *c.MaxIters)
	}
	if c.Cutoff != nil && (*c.Cutoff < 0 || math.IsNaN(*c.Cutoff) || math.IsInf(*c.Cutoff, 0)) {
		return fmt.Errorf("cutoff must be non-negative, got %v", *c.Cutoff)
	}
	if c.Density != nil && (*c.Density < 0 || math.IsNaN(*c.Density) || math.IsInf(*c.Density, 0)) {
		return fmt.Errorf("density must be non-negative, got %v", *c.Density)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// GetRadius returns radius, falling back to min_radius, or the default.
func (c *ScatterConfig) GetRadius() float64 {
	if c.Radius != nil {
		return *c.Radius
	}
	if c.MinRadius != nil {
		return *c.MinRadius
	}
	return 1.0
}

// GetPadBorder returns pad_border, falling back to the negation of
// exclude_border, or the default.
func (c *ScatterConfig) GetPadBorder() bool {
	if c.PadBorder != nil {
		return *c.PadBorder
	}
	if c.ExcludeBorder != nil {
		return !*c.ExcludeBorder
	}
	return true
}

// GetCellSize returns the cell_size value or 0 (derive from grid_size).
func (c *ScatterConfig) GetCellSize() float64 {
	if c.CellSize == nil {
		return 0
	}
	return *c.CellSize
}

// GetMaxIters returns the max_iters value or the default.
func (c *ScatterConfig) GetMaxIters() int {
	if c.MaxIters == nil {
		return 500
	}
	return *c.MaxIters
}

// GetCutoff returns the cutoff value or the default.
func (c *ScatterConfig) GetCutoff() float64 {
	if c.Cutoff == nil {
		return 0.1
	}
	return *c.Cutoff
}

// GetDensity returns the density value or 0 (per-dimension default).
func (c *ScatterConfig) GetDensity() float64 {
	if c.Density == nil {
		return 0
	}
	return *c.Density
}

// GetSeed returns the seed and whether one was configured.
func (c *ScatterConfig) GetSeed() (int64, bool) {
	if c.Seed == nil {
		return 0, false
	}
	return *c.Seed, true
}

// GetWorkers returns the workers value or the default.
func (c *ScatterConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

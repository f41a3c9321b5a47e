package scatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/internal/config"
)

func TestGridSettingsFor(t *testing.T) {
	t.Parallel()
	s := GridSettingsFor[geom.Vec3](Particles(2))
	assert.InDelta(t, 1.9998, s.BorderAdjust, 1e-12)
	assert.Equal(t, geom.Vec3{4, 4, 4}, s.GridSize)
	assert.Nil(t, s.GridOffset)
	assert.Equal(t, 4.0, s.cellSize())

	unpadded := GridSettingsFor[geom.Vec2](ParticleSettings{Radius: 1})
	assert.Zero(t, unpadded.BorderAdjust)
}

func TestDefaultPackedDensity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1.0, DefaultPackedDensity(1))
	assert.Equal(t, 1.0, DefaultPackedDensity(2))
	assert.Equal(t, 1.5, DefaultPackedDensity(3))
	assert.Equal(t, 1.0, DefaultPackedDensity(4))
}

func TestSettingsFromConfig(t *testing.T) {
	t.Parallel()
	cfg, err := config.ParseScatterConfig([]byte(`{
		"radius": 0.5,
		"pad_border": false,
		"grid_size": [2],
		"grid_offset": [0.1, 0.2],
		"max_iters": 50,
		"cutoff": 0.05,
		"density": 1.2,
		"seed": 11,
		"workers": 3
	}`))
	require.NoError(t, err)

	p := PackedSettingsFromConfig(cfg)
	assert.Equal(t, ParticleSettings{Radius: 0.5}, p.Particle)
	assert.Equal(t, 50, p.MaxIters)
	assert.Equal(t, 0.05, p.Cutoff)
	assert.Equal(t, 1.2, p.Density)
	assert.Equal(t, 3, p.Workers)

	g, err := GridSettingsFromConfig[geom.Vec2](cfg)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2{2, 2}, g.GridSize)
	require.NotNil(t, g.GridOffset)
	assert.Equal(t, geom.Vec2{0.1, 0.2}, *g.GridOffset)

	_, err = GridSettingsFromConfig[geom.Vec3](cfg)
	assert.ErrorIs(t, err, ErrInvalidSettings)

	a, b := RandFromConfig(cfg), RandFromConfig(cfg)
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestSettingsFromConfig_Aliases(t *testing.T) {
	t.Parallel()
	cfg, err := config.ParseScatterConfig([]byte(`{"min_radius": 5, "exclude_border": true}`))
	require.NoError(t, err)

	assert.Equal(t, ParticleSettings{Radius: 5}, ParticleSettingsFromConfig(cfg))
	g, err := GridSettingsFromConfig[geom.Vec2](cfg)
	require.NoError(t, err)
	assert.Zero(t, g.BorderAdjust)
	assert.Equal(t, geom.Vec2{10, 10}, g.GridSize)

	cfg, err = config.ParseScatterConfig([]byte(`{"min_radius": 5, "exclude_border": false}`))
	require.NoError(t, err)
	g, err = GridSettingsFromConfig[geom.Vec2](cfg)
	require.NoError(t, err)
	assert.InDelta(t, 4.9995, g.BorderAdjust, 1e-12)
}

func TestDefaultsFileMatchesDefaults(t *testing.T) {
	t.Parallel()
	cfg := config.MustLoadDefaultConfig()

	assert.Equal(t, DefaultParticleSettings(), ParticleSettingsFromConfig(cfg))
	got := PackedSettingsFromConfig(cfg)
	want := DefaultPackedSettings()
	assert.Equal(t, want.Particle, got.Particle)
	assert.Equal(t, want.MaxIters, got.MaxIters)
	assert.Equal(t, want.Cutoff, got.Cutoff)
	assert.Equal(t, want.Density, got.Density)
	assert.Equal(t, want.Workers, got.Workers)

	g, err := GridSettingsFromConfig[geom.Vec2](cfg)
	require.NoError(t, err)
	assert.Equal(t, GridSettingsFor[geom.Vec2](DefaultParticleSettings()), g)
}

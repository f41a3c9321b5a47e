package monitor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/grid"
	"github.com/banshee-data/prism/internal/testutil"
	"github.com/banshee-data/prism/solver"
)

func TestPlotGrid2D(t *testing.T) {
	t.Parallel()
	ball := testutil.Ball[geom.Vec2](t, 5)
	g, err := grid.New[geom.Vec2](ball, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plots", "grid.png")
	require.NoError(t, PlotGrid2D(g, []geom.Vec2{{0, 0}, {2, 1}}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, PlotGrid2D(nil, nil, path))
}

func TestConvergenceChart(t *testing.T) {
	t.Parallel()
	iters := []solver.Iteration{
		{Index: 0, MaxPenetration: 1.5, BoundaryPenetration: 0.2},
		{Index: 1, MaxPenetration: 0.4, BoundaryPenetration: 0},
	}
	html, err := ConvergenceChart("test run", iters)
	require.NoError(t, err)

	out := string(html)
	assert.True(t, strings.Contains(out, "test run"))
	assert.True(t, strings.Contains(out, "max penetration"))
	assert.True(t, strings.Contains(out, "boundary penetration"))
}

func TestConvergenceRecorder(t *testing.T) {
	t.Parallel()
	rec := NewConvergenceRecorder()
	sq := testutil.Square(t, 0, 10)
	g, err := grid.New[geom.Vec2](sq, 2)
	require.NoError(t, err)

	s, err := solver.New(g, []geom.Vec2{{5, 5}, {5.5, 5}}, 1, solver.WithObserver(rec.Observe))
	require.NoError(t, err)
	n := s.Solve(50, 0.1)

	iters := rec.Iterations()
	require.Len(t, iters, n)
	assert.Equal(t, 0, iters[0].Index)

	path := filepath.Join(t.TempDir(), "convergence.html")
	require.NoError(t, rec.SaveChart(path, "two points"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "two points")

	rec.Reset()
	assert.Empty(t, rec.Iterations())
}

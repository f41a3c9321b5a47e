// Package monitor renders diagnostic views of grids, point sets and solver
// runs: PNG plots via gonum/plot and interactive HTML charts via go-echarts.
package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/grid"
)

var (
	insideColor = color.RGBA{R: 0xb5, G: 0xde, B: 0x2b, A: 255}
	borderColor = color.RGBA{R: 0xf5, G: 0x8c, B: 0x2b, A: 255}
	pointColor  = color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 255}
)

// PlotGrid2D writes a PNG showing the centres of g's inside and border cells
// and, when given, the points on top. The parent directory is created if
// needed.
func PlotGrid2D(g *grid.Grid[geom.Vec2], points []geom.Vec2, path string) error {
	if g == nil {
		return fmt.Errorf("plot grid: nil grid")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Grid (cell %g): %d inside, %d border, %d points",
		g.CellSize(), g.NumInside(), g.NumBorder(), len(points))
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	cellGlyph := vg.Points(2)
	if err := addCells(p, g, g.InsideCells(), "inside", insideColor, cellGlyph); err != nil {
		return err
	}
	if err := addCells(p, g, g.BorderCells(), "border", borderColor, cellGlyph); err != nil {
		return err
	}

	if len(points) > 0 {
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("points: %w", err)
		}
		sc.GlyphStyle.Color = pointColor
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add("points", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save grid plot: %w", err)
	}
	return nil
}

func addCells(p *plot.Plot, g *grid.Grid[geom.Vec2], cells []geom.Cell, label string, c color.Color, radius vg.Length) error {
	if len(cells) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(cells))
	for i, cell := range cells {
		centre := geom.CellCenter[geom.Vec2](cell, g.CellSize())
		xys[i] = plotter.XY{X: centre[0], Y: centre[1]}
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("%s cells: %w", label, err)
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = radius
	sc.GlyphStyle.Shape = draw.BoxGlyph{}
	p.Add(sc)
	p.Legend.Add(label, sc)
	return nil
}

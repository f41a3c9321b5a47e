package monitor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/prism/solver"
)

// ConvergenceRecorder collects solver iterations. Pass Observe to
// solver.WithObserver or scatter.PackedSettings.Observer.
type ConvergenceRecorder struct {
	mu    sync.Mutex
	iters []solver.Iteration
}

// NewConvergenceRecorder returns an empty recorder.
func NewConvergenceRecorder() *ConvergenceRecorder {
	return &ConvergenceRecorder{}
}

// Observe records one iteration.
func (r *ConvergenceRecorder) Observe(it solver.Iteration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.iters = append(r.iters, it)
}

// Iterations returns a copy of everything recorded so far.
func (r *ConvergenceRecorder) Iterations() []solver.Iteration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]solver.Iteration(nil), r.iters...)
}

// Reset discards recorded iterations.
func (r *ConvergenceRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.iters = nil
}

// SaveChart writes ConvergenceChart output for the recorded iterations.
func (r *ConvergenceRecorder) SaveChart(path, title string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	html, err := ConvergenceChart(title, r.Iterations())
	if err != nil {
		return err
	}
	return os.WriteFile(path, html, 0644)
}

// ConvergenceChart renders an HTML line chart of the per-iteration pairwise
// and boundary penetration.
func ConvergenceChart(title string, iters []solver.Iteration) ([]byte, error) {
	x := make([]int, len(iters))
	pen := make([]opts.LineData, len(iters))
	boundary := make([]opts.LineData, len(iters))
	for i, it := range iters {
		x[i] = it.Index
		pen[i] = opts.LineData{Value: it.MaxPenetration}
		boundary[i] = opts.LineData{Value: it.BoundaryPenetration}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Packing convergence", Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("iterations=%d", len(iters))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Iteration", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Penetration", NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(x).
		AddSeries("max penetration", pen).
		AddSeries("boundary penetration", boundary)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, fmt.Errorf("render convergence chart: %w", err)
	}
	return buf.Bytes(), nil
}

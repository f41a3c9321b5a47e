package scatter

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/prism/field"
	"github.com/banshee-data/prism/geom"
)

// Report summarises the quality of a packing.
type Report struct {
	Count int
	// MinSeparation is the smallest centre-to-centre distance. +Inf for
	// fewer than two points.
	MinSeparation float64
	// MeanNearest and StdDevNearest describe each point's nearest-neighbour
	// distance.
	MeanNearest   float64
	StdDevNearest float64
	// Overlaps counts pairs closer than 2r(1-cutoff).
	Overlaps int
	// Outside counts points with positive field distance; MaxOutside is the
	// largest such distance.
	Outside    int
	MaxOutside float64
}

// Evaluate measures points against radius r and region f. Pairs are
// compared exhaustively, so it is intended for tests and offline checks.
func Evaluate[V geom.Vector](points []V, r, cutoff float64, f field.Field[V]) Report {
	rep := Report{Count: len(points), MinSeparation: math.Inf(1)}

	minAllowed := 2 * r * (1 - cutoff)
	nearest := make([]float64, len(points))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := geom.Distance(points[i], points[j])
			nearest[i] = min(nearest[i], d)
			nearest[j] = min(nearest[j], d)
			if d < minAllowed {
				rep.Overlaps++
			}
		}
	}
	if len(points) >= 2 {
		rep.MinSeparation = floats.Min(nearest)
		rep.MeanNearest, rep.StdDevNearest = stat.MeanStdDev(nearest, nil)
	}

	if f != nil {
		for _, p := range points {
			if d := f.Distance(p); d > 0 {
				rep.Outside++
				rep.MaxOutside = max(rep.MaxOutside, d)
			}
		}
	}
	return rep
}

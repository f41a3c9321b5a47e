package solver

// Iteration carries the metrics of one Solve iteration to an observer.
type Iteration struct {
	Index               int
	MaxPenetration      float64
	BoundaryPenetration float64
}

// Option configures a Solver.
type Option func(*options)

type options struct {
	workers  int
	observer func(Iteration)
}

// WithWorkers splits per-point work across up to n goroutines. Values below
// 2 keep the solver single-threaded. Results are identical either way.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithObserver registers fn to be called after every Solve iteration.
func WithObserver(fn func(Iteration)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Package solver relaxes a set of equal-radius particles inside a region.
//
// Each iteration of Solve performs a collision step, which rebuilds a spatial
// hash keyed by grid cell and pushes overlapping pairs apart, followed by a
// boundary step that projects escaped particles back across the field's
// surface. The collision step is Jacobi-style: all corrections are computed
// from a snapshot of positions before any is applied, so the result does not
// depend on point order and the work can be split across goroutines.
//
// The solver is a bounded, damped relaxation. Solve returns the number of
// iterations used; a count equal to the budget with residual penetration
// means the configuration did not settle, which is not treated as an error.
package solver

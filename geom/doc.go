// Package geom holds the small numeric building blocks shared by the field,
// grid, sampler and solver packages.
//
// Vectors are fixed-size float64 arrays (Vec1 through Vec4). Code that must
// work for any dimension is written against the Vector constraint and loops
// over len(v), so no per-dimension unrolling is needed. Integer cell
// coordinates use Cell, a MaxDim-wide array whose unused trailing entries
// stay zero; that keeps cells comparable and usable as map keys regardless of
// the dimension in play.
package geom

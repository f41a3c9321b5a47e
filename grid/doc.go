// Package grid classifies space around a distance field into inside,
// border and outside cells.
//
// A Grid is built once per (field, cell size) pair by evaluating the field at
// every cell centre and is read-only afterwards. The sampler and the packing
// solver both consume it. Array is the dense, bounds-checked N-dimensional
// storage underneath.
package grid

// Package scatter is the high-level entry point: it turns a distance field
// and a handful of settings into a point set.
//
//   - GridPoints lays a regular lattice over the region.
//   - RandomPoints draws white-noise samples.
//   - PackedPoints seeds the region with jittered samples and relaxes them
//     into a non-overlapping packing of equal discs/balls.
//
// By default particle helpers pad the region by the particle radius so that
// whole particles, not just their centres, stay inside the boundary.
package scatter

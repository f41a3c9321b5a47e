package grid

import (
	"fmt"

	"github.com/banshee-data/prism/geom"
)

// Array is a dense N-dimensional array stored in row-major order with axis 0
// varying fastest. Indexing outside the shape panics.
type Array[T any] struct {
	dims    int
	shape   geom.Cell
	strides geom.Cell
	data    []T
}

// NewArray allocates an array of the given shape and fills it by calling fn
// once per index, in storage order. Every extent must be positive.
func NewArray[T any](dims int, shape geom.Cell, fn func(idx geom.Cell) T) *Array[T] {
	if dims < 1 || dims > geom.MaxDim {
		panic(fmt.Sprintf("grid: dimension %d out of range [1, %d]", dims, geom.MaxDim))
	}
	for i := 0; i < geom.MaxDim; i++ {
		if i < dims && shape[i] <= 0 {
			panic(fmt.Sprintf("grid: non-positive extent %d on axis %d", shape[i], i))
		}
		if i >= dims && shape[i] != 0 {
			panic(fmt.Sprintf("grid: extent %d set on unused axis %d", shape[i], i))
		}
	}

	n := geom.Volume(dims, shape)
	a := &Array[T]{
		dims:    dims,
		shape:   shape,
		strides: geom.Strides(dims, shape),
		data:    make([]T, n),
	}
	if fn != nil {
		for i := range a.data {
			a.data[i] = fn(geom.FromLinear(dims, i, shape))
		}
	}
	return a
}

// Dims returns the number of axes.
func (a *Array[T]) Dims() int { return a.dims }

// Shape returns the extent of every axis.
func (a *Array[T]) Shape() geom.Cell { return a.shape }

// Strides returns the linear step of every axis.
func (a *Array[T]) Strides() geom.Cell { return a.strides }

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.data) }

// Contains reports whether idx addresses an element.
func (a *Array[T]) Contains(idx geom.Cell) bool {
	for i := 0; i < geom.MaxDim; i++ {
		if i < a.dims {
			if idx[i] < 0 || idx[i] >= a.shape[i] {
				return false
			}
		} else if idx[i] != 0 {
			return false
		}
	}
	return true
}

// At returns the element at idx.
func (a *Array[T]) At(idx geom.Cell) T {
	return a.data[a.linear(idx)]
}

// Set stores v at idx.
func (a *Array[T]) Set(idx geom.Cell, v T) {
	a.data[a.linear(idx)] = v
}

func (a *Array[T]) linear(idx geom.Cell) int {
	if !a.Contains(idx) {
		panic(fmt.Sprintf("grid: index %v out of range for shape %v", idx[:a.dims], a.shape[:a.dims]))
	}
	off := 0
	for i := 0; i < a.dims; i++ {
		off += idx[i] * a.strides[i]
	}
	return off
}

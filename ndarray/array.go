// Package ndarray provides the raw numeric array container consumed by the
// schema conversion layer.
//
// An Array is a dense, row-major buffer with an explicit shape and element
// type. Acquisition pipelines hand these to analyses; the conversion layer
// reads shape and buffer together so that schema objects can never carry a
// buffer/shape mismatch.
package ndarray

import "fmt"

// DType identifies the element type of an Array.
type DType int

const (
	Bool DType = iota
	Uint8
	Uint16
	Float32
	Float64
)

// String returns the dtype name.
func (d DType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", int(d))
	}
}

// Array is a dense n-dimensional numeric array. Values are stored row-major
// in a flat float64 buffer regardless of dtype; Bool elements are stored as
// 0 or 1. The shape is fixed at construction.
type Array struct {
	dtype DType
	shape []int
	data  []float64
}

// New creates a zero-filled array with the given dtype and shape.
// It panics if the shape is empty or has a non-positive axis: shapes are
// produced by acquisition code, not end users, so a bad shape is a
// programming error.
func New(dtype DType, shape ...int) *Array {
	n := checkShape(shape)
	return &Array{
		dtype: dtype,
		shape: append([]int(nil), shape...),
		data:  make([]float64, n),
	}
}

// Zeros is an alias for New kept for readability at call sites.
func Zeros(dtype DType, shape ...int) *Array {
	return New(dtype, shape...)
}

// Ones creates an array with every element set to one.
func Ones(dtype DType, shape ...int) *Array {
	a := New(dtype, shape...)
	for i := range a.data {
		a.data[i] = 1
	}
	return a
}

// FromFloat64s creates an array that adopts the given row-major buffer.
// The buffer length must equal the product of the shape.
func FromFloat64s(dtype DType, data []float64, shape ...int) (*Array, error) {
	n := checkShape(shape)
	if len(data) != n {
		return nil, fmt.Errorf("buffer length %d does not match shape %v (want %d)", len(data), shape, n)
	}
	return &Array{
		dtype: dtype,
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
	}, nil
}

// FromBools creates a Bool array from a row-major bool buffer.
func FromBools(data []bool, shape ...int) (*Array, error) {
	n := checkShape(shape)
	if len(data) != n {
		return nil, fmt.Errorf("buffer length %d does not match shape %v (want %d)", len(data), shape, n)
	}
	a := New(Bool, shape...)
	for i, v := range data {
		if v {
			a.data[i] = 1
		}
	}
	return a, nil
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// NDim returns the number of axes.
func (a *Array) NDim() int { return len(a.shape) }

// Shape returns a copy of the axis sizes.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the total element count.
func (a *Array) Len() int { return len(a.data) }

// At returns the element at the given index. The number of indices must
// equal the array rank; violations panic.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

// Float64s returns a copy of the flat row-major buffer.
func (a *Array) Float64s() []float64 {
	return append([]float64(nil), a.data...)
}

// Bools returns a copy of the flat buffer as booleans. Valid only for
// dtype Bool; other dtypes panic.
func (a *Array) Bools() []bool {
	if a.dtype != Bool {
		panic(fmt.Sprintf("ndarray: Bools called on %s array", a.dtype))
	}
	out := make([]bool, len(a.data))
	for i, v := range a.data {
		out[i] = v != 0
	}
	return out
}

// Max returns the largest element. Panics on an empty array, which New
// cannot produce.
func (a *Array) Max() float64 {
	max := a.data[0]
	for _, v := range a.data[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Min returns the smallest element.
func (a *Array) Min() float64 {
	min := a.data[0]
	for _, v := range a.data[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: %d indices for rank-%d array", len(idx), len(a.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d (size %d)", x, i, a.shape[i]))
		}
		off = off*a.shape[i] + x
	}
	return off
}

func checkShape(shape []int) int {
	if len(shape) == 0 {
		panic("ndarray: empty shape")
	}
	n := 1
	for i, s := range shape {
		if s <= 0 {
			panic(fmt.Sprintf("ndarray: non-positive size %d for axis %d", s, i))
		}
		n *= s
	}
	return n
}

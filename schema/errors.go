package schema

import (
	"fmt"

	"github.com/scopemetrics/scopemetrics/ndarray"
)

// DimensionalityError reports an input array whose rank is not supported by
// the requested conversion. It carries the offending rank for diagnostics.
type DimensionalityError struct {
	// Got is the rank of the rejected array.
	Got int
	// Want lists the ranks the conversion accepts.
	Want []int
}

func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("unsupported array dimensionality %d (want one of %v)", e.Got, e.Want)
}

// DTypeError reports an input array whose element type cannot be coerced to
// the kind required by the conversion.
type DTypeError struct {
	// Got is the dtype of the rejected array.
	Got ndarray.DType
	// Want describes the acceptable element kind.
	Want string
}

func (e *DTypeError) Error() string {
	return fmt.Sprintf("array dtype %s cannot be coerced to %s", e.Got, e.Want)
}

// RaggedTableError reports columns of unequal length at table construction.
type RaggedTableError struct {
	// Column is the name of the first column whose length disagrees.
	Column string
	// Len is that column's length.
	Len int
	// Want is the length established by the first column.
	Want int
}

func (e *RaggedTableError) Error() string {
	return fmt.Sprintf("column %q has %d values, want %d", e.Column, e.Len, e.Want)
}

// DuplicateColumnError reports a repeated column name at table construction.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column name %q", e.Column)
}

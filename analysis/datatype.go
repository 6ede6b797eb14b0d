package analysis

import (
	"fmt"
	"strings"

	"github.com/scopemetrics/scopemetrics/ndarray"
)

// DataType describes the type a requirement expects its bound value to
// carry. The set of types is closed: scalar kinds, arrays of a fixed or
// unconstrained rank, fixed-shape tuples and homogeneous lists. Bind checks
// values against the declared type, so a mistyped input fails at binding
// instead of deep inside an analysis.
type DataType interface {
	// String returns a human-readable type name for requirement listings.
	String() string

	// Check reports whether v is acceptable for this type.
	Check(v any) error
}

type scalarType int

const (
	// Int accepts Go int and int64 values.
	Int scalarType = iota
	// Float accepts float64 and int values (ints widen).
	Float
	// String accepts string values.
	String
	// Bool accepts bool values.
	Bool
)

func (s scalarType) String() string {
	switch s {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("scalar(%d)", int(s))
	}
}

func (s scalarType) Check(v any) error {
	switch s {
	case Int:
		switch v.(type) {
		case int, int64:
			return nil
		}
	case Float:
		switch v.(type) {
		case float64, float32, int:
			return nil
		}
	case String:
		if _, ok := v.(string); ok {
			return nil
		}
	case Bool:
		if _, ok := v.(bool); ok {
			return nil
		}
	}
	return fmt.Errorf("want %s, got %T", s, v)
}

// ArrayType accepts *ndarray.Array values, optionally of a fixed rank.
type ArrayType struct {
	// NDim is the required rank; zero accepts any rank.
	NDim int
}

// ArrayOf returns an ArrayType requiring the given rank. ArrayOf(0) accepts
// any rank.
func ArrayOf(ndim int) ArrayType { return ArrayType{NDim: ndim} }

func (a ArrayType) String() string {
	if a.NDim == 0 {
		return "array"
	}
	return fmt.Sprintf("array[%dd]", a.NDim)
}

func (a ArrayType) Check(v any) error {
	arr, ok := v.(*ndarray.Array)
	if !ok {
		return fmt.Errorf("want %s, got %T", a, v)
	}
	if a.NDim != 0 && arr.NDim() != a.NDim {
		return fmt.Errorf("want rank-%d array, got rank-%d", a.NDim, arr.NDim())
	}
	return nil
}

// TupleType accepts []any values whose elements match a fixed sequence of
// types, e.g. a (min, max) pair of floats.
type TupleType struct {
	Elements []DataType
}

// TupleOf returns a TupleType over the given element types.
func TupleOf(elems ...DataType) TupleType { return TupleType{Elements: elems} }

func (t TupleType) String() string {
	names := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		names[i] = e.String()
	}
	return "tuple[" + strings.Join(names, ", ") + "]"
}

func (t TupleType) Check(v any) error {
	vals, ok := v.([]any)
	if !ok {
		return fmt.Errorf("want %s, got %T", t, v)
	}
	if len(vals) != len(t.Elements) {
		return fmt.Errorf("want %d-element tuple, got %d elements", len(t.Elements), len(vals))
	}
	for i, e := range t.Elements {
		if err := e.Check(vals[i]); err != nil {
			return fmt.Errorf("tuple element %d: %w", i, err)
		}
	}
	return nil
}

// ListType accepts []any values whose elements all match one type.
type ListType struct {
	Element DataType
}

// ListOf returns a ListType over the given element type.
func ListOf(elem DataType) ListType { return ListType{Element: elem} }

func (l ListType) String() string {
	return "list[" + l.Element.String() + "]"
}

func (l ListType) Check(v any) error {
	vals, ok := v.([]any)
	if !ok {
		return fmt.Errorf("want %s, got %T", l, v)
	}
	for i, e := range vals {
		if err := l.Element.Check(e); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}
	return nil
}

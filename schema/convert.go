package schema

import (
	"sort"

	"github.com/scopemetrics/scopemetrics/ndarray"
)

// MaskFromArray converts a 2D boolean array to a Mask. Arrays of dtype
// Uint8 are coerced elementwise, nonzero mapping to true; any other dtype
// is rejected with a DTypeError. Axis sizes are read from the array shape
// as (y, x).
func MaskFromArray(a *ndarray.Array, name, description, imageURL string, sourceImageURLs []string) (*Mask, error) {
	if a.NDim() != 2 {
		return nil, &DimensionalityError{Got: a.NDim(), Want: []int{2}}
	}

	var data []bool
	switch a.DType() {
	case ndarray.Bool:
		data = a.Bools()
	case ndarray.Uint8:
		flat := a.Float64s()
		data = make([]bool, len(flat))
		for i, v := range flat {
			data[i] = v != 0
		}
	default:
		return nil, &DTypeError{Got: a.DType(), Want: "bool"}
	}

	shape := a.Shape()
	return &Mask{
		Name:            name,
		Description:     description,
		ImageURL:        imageURL,
		SourceImageURLs: sourceImageURLs,
		Data:            data,
		Y:               shape[0],
		X:               shape[1],
	}, nil
}

// ImageFromArray converts a numeric array to an image artifact. Rank-5
// arrays are interpreted as (t, z, y, x, c) and produce an Image5D; rank-2
// arrays as (y, x) and produce an Image2D. Any other rank is rejected with
// a DimensionalityError carrying the offending rank. The buffer is the
// row-major flattening of the input; axis sizes always come from the array
// shape.
func ImageFromArray(a *ndarray.Array, name, description, imageURL string, sourceImageURLs []string) (Artifact, error) {
	shape := a.Shape()
	switch a.NDim() {
	case 5:
		return &Image5D{
			Name:            name,
			Description:     description,
			ImageURL:        imageURL,
			SourceImageURLs: sourceImageURLs,
			Data:            a.Float64s(),
			T:               shape[0],
			Z:               shape[1],
			Y:               shape[2],
			X:               shape[3],
			C:               shape[4],
		}, nil
	case 2:
		return &Image2D{
			Name:            name,
			Description:     description,
			ImageURL:        imageURL,
			SourceImageURLs: sourceImageURLs,
			Data:            a.Float64s(),
			Y:               shape[0],
			X:               shape[1],
		}, nil
	default:
		return nil, &DimensionalityError{Got: a.NDim(), Want: []int{2, 5}}
	}
}

// TableFromColumns builds a Table from caller-ordered columns. Duplicate
// column names and unequal column lengths are rejected.
func TableFromColumns(name, description string, cols []Column) (*Table, error) {
	t := &Table{
		Name:        name,
		Description: description,
		Columns:     append([]Column(nil), cols...),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// TableFromMap builds a Table from a column map. Go maps carry no order, so
// columns are sorted by name for determinism; callers that need a specific
// column order should use TableFromColumns.
func TableFromMap(name, description string, m map[string][]any) (*Table, error) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	cols := make([]Column, 0, len(names))
	for _, k := range names {
		cols = append(cols, Column{Name: k, Values: m[k]})
	}
	return TableFromColumns(name, description, cols)
}

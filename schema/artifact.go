// Package schema defines the self-describing output artifacts an analysis
// produces (images, masks, tables) and the conversion functions that build
// them from raw arrays.
//
// Artifacts carry their own axis sizes, read from the source array at
// conversion time and never settable independently, so a well-formed
// artifact cannot carry a buffer/shape mismatch. Downstream storage and
// upload collaborators must only consume artifacts produced through this
// package.
package schema

import "fmt"

// Artifact is a structured analysis output.
type Artifact interface {
	// Kind returns the artifact kind: "image2d", "image5d", "mask" or "table".
	Kind() string

	// ArtifactName returns the caller-assigned name.
	ArtifactName() string

	// Validate checks the artifact's structural invariants.
	Validate() error
}

// Image2D is a single-plane image with y/x axis sizes and a row-major
// flattened pixel buffer.
type Image2D struct {
	Name            string
	Description     string
	ImageURL        string
	SourceImageURLs []string

	Data []float64
	Y    int
	X    int
}

// Kind returns "image2d".
func (im *Image2D) Kind() string { return "image2d" }

// ArtifactName returns the image name.
func (im *Image2D) ArtifactName() string { return im.Name }

// Validate checks that the buffer length matches the declared axis sizes.
func (im *Image2D) Validate() error {
	if want := im.Y * im.X; len(im.Data) != want {
		return fmt.Errorf("image2d %q: buffer length %d != y*x (%d)", im.Name, len(im.Data), want)
	}
	return nil
}

// Image5D is a full acquisition image with t/z/y/x/c axis sizes and a
// row-major flattened pixel buffer.
type Image5D struct {
	Name            string
	Description     string
	ImageURL        string
	SourceImageURLs []string

	Data []float64
	T    int
	Z    int
	Y    int
	X    int
	C    int
}

// Kind returns "image5d".
func (im *Image5D) Kind() string { return "image5d" }

// ArtifactName returns the image name.
func (im *Image5D) ArtifactName() string { return im.Name }

// Validate checks that the buffer length matches the declared axis sizes.
func (im *Image5D) Validate() error {
	if want := im.T * im.Z * im.Y * im.X * im.C; len(im.Data) != want {
		return fmt.Errorf("image5d %q: buffer length %d != t*z*y*x*c (%d)", im.Name, len(im.Data), want)
	}
	return nil
}

// Mask is a 2D boolean image, typically a segmentation or saturation map,
// with optional provenance links to the images it was derived from.
type Mask struct {
	Name            string
	Description     string
	ImageURL        string
	SourceImageURLs []string

	Data []bool
	Y    int
	X    int
}

// Kind returns "mask".
func (m *Mask) Kind() string { return "mask" }

// ArtifactName returns the mask name.
func (m *Mask) ArtifactName() string { return m.Name }

// Validate checks that the buffer length matches the declared axis sizes.
func (m *Mask) Validate() error {
	if want := m.Y * m.X; len(m.Data) != want {
		return fmt.Errorf("mask %q: buffer length %d != y*x (%d)", m.Name, len(m.Data), want)
	}
	return nil
}

// Column is one named, ordered column of a Table.
type Column struct {
	Name   string
	Values []any
}

// Table is an ordered collection of named columns of equal length.
type Table struct {
	Name        string
	Description string
	Columns     []Column
}

// Kind returns "table".
func (t *Table) Kind() string { return "table" }

// ArtifactName returns the table name.
func (t *Table) ArtifactName() string { return t.Name }

// Validate checks column name uniqueness and equal column lengths.
func (t *Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	for i, col := range t.Columns {
		if _, dup := seen[col.Name]; dup {
			return &DuplicateColumnError{Column: col.Name}
		}
		seen[col.Name] = struct{}{}
		if i > 0 && len(col.Values) != len(t.Columns[0].Values) {
			return &RaggedTableError{
				Column: col.Name,
				Len:    len(col.Values),
				Want:   len(t.Columns[0].Values),
			}
		}
	}
	return nil
}

// Rows returns the table's row count, zero for an empty table.
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Column returns the named column and whether it exists.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

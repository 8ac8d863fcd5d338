// Package tensor provides a dense, row-major, multi-dimensional numeric array.
package tensor

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

var (
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")
	ErrOutOfBounds       = errors.New("tensor: index out of bounds")
	ErrBadExtents        = errors.New("tensor: invalid extents")
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Dense is a row-major buffer indexed by one coordinate per axis.
type Dense[T Number] struct {
	extents []int
	strides []int
	data    []T
}

// New creates a zero-filled tensor with the given per-axis extents.
func New[T Number](extents ...int) (*Dense[T], error) {
	if len(extents) == 0 {
		return nil, fmt.Errorf("no extents given: %w", ErrBadExtents)
	}
	size := 1
	for i, e := range extents {
		if e <= 0 {
			return nil, fmt.Errorf("extent %d is %d: %w", i, e, ErrBadExtents)
		}
		size *= e
	}
	t := &Dense[T]{
		extents: append([]int(nil), extents...),
		strides: make([]int, len(extents)),
		data:    make([]T, size),
	}
	stride := 1
	for i := len(extents) - 1; i >= 0; i-- {
		t.strides[i] = stride
		stride *= extents[i]
	}
	return t, nil
}

// FromRows builds a rank-2 tensor from equal-length rows.
func FromRows[T Number](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty rows: %w", ErrBadExtents)
	}
	t, err := New[T](len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), len(rows[0]), ErrDimensionMismatch)
		}
		copy(t.data[r*t.strides[0]:], row)
	}
	return t, nil
}

func (t *Dense[T]) Rank() int {
	return len(t.extents)
}

// Extents returns a copy of the per-axis extents.
func (t *Dense[T]) Extents() []int {
	return append([]int(nil), t.extents...)
}

// Len is the total number of elements.
func (t *Dense[T]) Len() int {
	return len(t.data)
}

// Data exposes the flat row-major buffer. Writes are visible through At.
func (t *Dense[T]) Data() []T {
	return t.data
}

func (t *Dense[T]) offset(idx []int) (int, error) {
	if len(idx) != len(t.extents) {
		return 0, fmt.Errorf("index has %d components, tensor has rank %d: %w", len(idx), len(t.extents), ErrDimensionMismatch)
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.extents[i] {
			return 0, fmt.Errorf("index %d on axis %d with extent %d: %w", v, i, t.extents[i], ErrOutOfBounds)
		}
		off += v * t.strides[i]
	}
	return off, nil
}

// At returns the element at idx.
func (t *Dense[T]) At(idx ...int) (T, error) {
	off, err := t.offset(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.data[off], nil
}

// Set stores v at idx.
func (t *Dense[T]) Set(v T, idx ...int) error {
	off, err := t.offset(idx)
	if err != nil {
		return err
	}
	t.data[off] = v
	return nil
}

// Row returns a view of row r of a rank-2 tensor.
func (t *Dense[T]) Row(r int) ([]T, error) {
	if len(t.extents) != 2 {
		return nil, fmt.Errorf("row of rank %d tensor: %w", len(t.extents), ErrDimensionMismatch)
	}
	if r < 0 || r >= t.extents[0] {
		return nil, fmt.Errorf("row %d of %d: %w", r, t.extents[0], ErrOutOfBounds)
	}
	return t.data[r*t.strides[0] : (r+1)*t.strides[0]], nil
}

// Equal reports whether o has the same extents and elements.
func (t *Dense[T]) Equal(o *Dense[T]) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.extents) != len(o.extents) {
		return false
	}
	for i := range t.extents {
		if t.extents[i] != o.extents[i] {
			return false
		}
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (t *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{
		extents: append([]int(nil), t.extents...),
		strides: append([]int(nil), t.strides...),
		data:    append([]T(nil), t.data...),
	}
}

// String formats rank-2 tensors as rows, anything else as a flat list.
func (t *Dense[T]) String() string {
	if len(t.extents) != 2 {
		return fmt.Sprint(t.data)
	}
	var sb strings.Builder
	for r := 0; r < t.extents[0]; r++ {
		fmt.Fprintln(&sb, t.data[r*t.strides[0]:(r+1)*t.strides[0]])
	}
	return sb.String()
}

// Package grid computes which cells of a row to draw for a horizontal
// scroll position, keeping frozen columns pinned.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a column window does not fit the column list.
var ErrInvalidRange = errors.New("invalid column range")

// Column describes one grid column. Columns are treated as read-only for the
// duration of a render pass.
type Column struct {
	Key    string
	Name   string
	Idx    int
	Width  int
	Frozen bool

	// Left is the offset of the column inside its strip: frozen columns are
	// measured from the left edge of the frozen strip, scrollable columns
	// from the start of the scrollable strip.
	Left int
}

// Row maps column keys to cell values. The grid never mutates it.
type Row map[string]string

// Value returns the cell value for key, or "" when the row has none.
func (r Row) Value(key string) string {
	return r[key]
}

// Range is an inclusive window of column indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// Contains reports whether idx falls inside the range.
func (r Range) Contains(idx int) bool {
	return idx >= r.Start && idx <= r.End
}

// Validate checks the range against a column list of length n.
func (r Range) Validate(n int) error {
	switch {
	case r.Start < 0:
		return fmt.Errorf("%w: start %d is negative", ErrInvalidRange, r.Start)
	case r.Start > r.End:
		return fmt.Errorf("%w: start %d is after end %d", ErrInvalidRange, r.Start, r.End)
	case r.End >= n:
		return fmt.Errorf("%w: end %d is beyond the last column %d", ErrInvalidRange, r.End, n-1)
	}
	return nil
}

// FrozenSet returns the frozen columns in their original order.
func FrozenSet(columns []Column) []Column {
	var frozen []Column
	for _, c := range columns {
		if c.Frozen {
			frozen = append(frozen, c)
		}
	}
	return frozen
}
